// Package handler turns HTTP requests into service calls and writes the JSON envelope back.
package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/meetiosdev/topics-api/backend/internal/service"
	"github.com/meetiosdev/topics-api/shared/api"
	"github.com/meetiosdev/topics-api/shared/config"
	"github.com/meetiosdev/topics-api/shared/utils"
)

// HealthChecker reports whether the store answers.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	topic   service.TopicService
	seed    service.SeedService
	health  HealthChecker
	cfg     *config.Config
	docs    *docs
	started time.Time
	now     func() time.Time
}

func New(topic service.TopicService, seed service.SeedService, health HealthChecker, cfg *config.Config) *Handler {
	return &Handler{
		topic:   topic,
		seed:    seed,
		health:  health,
		cfg:     cfg,
		docs:    newDocs(),
		started: time.Now(),
		now:     time.Now,
	}
}

// NotFound answers every unknown route.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusNotFound, api.Response{
		Error:   "Route not found",
		Message: fmt.Sprintf("Cannot %s %s", r.Method, r.URL.RequestURI()),
	})
}

func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusMethodNotAllowed, api.Response{
		Error:   "Method not allowed",
		Message: fmt.Sprintf("Cannot %s %s", r.Method, r.URL.RequestURI()),
	})
}
