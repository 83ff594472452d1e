package handler

import (
	"net/http"

	"github.com/meetiosdev/topics-api/shared/api"
	"github.com/meetiosdev/topics-api/shared/utils"
)

func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, api.InfoResponse{
		Success:       true,
		Message:       "Topics API is running",
		Version:       h.cfg.Public.Version,
		Documentation: "/api-docs",
		Endpoints: map[string]string{
			"health": "/api/health",
			"topics": "/api/topics",
			"seed":   "/api/seed",
		},
	})
}
