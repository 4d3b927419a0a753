package api

import (
	"net/http"

	"github.com/civicmatch/eventfinder/internal/api/respond"
)

// HealthHandler reports service liveness and catalog size.
type HealthHandler struct {
	eventCount int
}

func NewHealthHandler(eventCount int) *HealthHandler {
	return &HealthHandler{eventCount: eventCount}
}

func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"events": h.eventCount,
	})
}
