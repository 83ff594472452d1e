package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/meetiosdev/topics-api/shared/api"
	"github.com/meetiosdev/topics-api/shared/logger"
	"github.com/meetiosdev/topics-api/shared/utils"
)

const readyTimeout = 2 * time.Second

// Health is a liveness probe endpoint.
// Returns 200 OK if the server is running.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	utils.WriteJSON(w, http.StatusOK, api.HealthResponse{
		Success:     true,
		Message:     "API is healthy",
		Timestamp:   now.UTC().Format(time.RFC3339Nano),
		Uptime:      now.Sub(h.started).Seconds(),
		Environment: h.cfg.Public.Env,
	})
}

// Ready is a readiness probe endpoint.
// Returns 503 Service Unavailable if the store does not answer in time.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := h.health.Ping(ctx); err != nil {
		logger.Log.Warn("readiness check failed", "error", err)
		utils.WriteJSON(w, http.StatusServiceUnavailable, api.Response{Error: "database unavailable"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.Response{Success: true, Message: "ok"})
}
