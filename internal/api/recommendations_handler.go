package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/civicmatch/eventfinder/internal/api/respond"
	"github.com/civicmatch/eventfinder/internal/services"
)

// RecommendationsHandler handles POST /api/recommendations
// (profile-to-corpus recommendations).
type RecommendationsHandler struct {
	svc *services.EventService
}

func NewRecommendationsHandler(svc *services.EventService) *RecommendationsHandler {
	return &RecommendationsHandler{svc: svc}
}

type recommendationsRequest struct {
	Themes []string `json:"themes"`
	Moods  []string `json:"moods"`
	K      int      `json:"k"`
}

func (h *RecommendationsHandler) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req recommendationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "invalid request body")
		return
	}
	if len(req.Themes) == 0 && len(req.Moods) == 0 {
		respond.WriteBadRequest(w, "at least one theme or mood is required")
		return
	}

	recs := h.svc.RecommendForProfile(r.Context(), req.Themes, req.Moods, req.K)
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"events": recs,
		"count":  len(recs),
	})
}
