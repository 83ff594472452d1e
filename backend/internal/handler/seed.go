package handler

import (
	"bytes"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/meetiosdev/topics-api/backend/internal/service"
	"github.com/meetiosdev/topics-api/shared/api"
	"github.com/meetiosdev/topics-api/shared/domain"
	"github.com/meetiosdev/topics-api/shared/errors"
	"github.com/meetiosdev/topics-api/shared/utils"
)

// Seed wipes the store and reloads it. An empty body reloads the bundled fixtures,
// otherwise the body holds the records (bare array or {"records": [...]}).
// A body that decodes to no records at all (null, {}) also falls back to the fixtures.
func (h *Handler) Seed(w http.ResponseWriter, r *http.Request) {
	records, err := h.readFixtures(w, r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	summary, err := h.seed.Reseed(r.Context(), records)
	if err != nil {
		if stderrors.Is(err, service.ErrSeedFailed) {
			utils.WriteJSON(w, http.StatusInternalServerError, api.Response{Error: "Failed to seed database"})
			return
		}
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.Response{
		Success: true,
		Message: "Database seeded successfully",
		Data:    api.SeedResponse{TopicsCreated: summary.TopicsCreated, PostsCreated: summary.PostsCreated},
	})
}

func (h *Handler) readFixtures(w http.ResponseWriter, r *http.Request) (domain.FixtureSet, error) {
	if r.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.cfg.Public.HTTP.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, &errors.ErrorWithStatusCode{Message: "Request body too large", StatusCode: http.StatusRequestEntityTooLarge}
		}
		return nil, errors.BadRequest("Failed to read request body")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	var records domain.FixtureSet
	if err := utils.Decode(io.NopCloser(bytes.NewReader(body)), &records); err != nil {
		return nil, err
	}
	return records, nil
}
