package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/civicmatch/eventfinder/internal/api/respond"
	"github.com/civicmatch/eventfinder/internal/model"
	"github.com/civicmatch/eventfinder/internal/services"
)

// SearchHandler handles POST /api/search.
type SearchHandler struct {
	svc *services.EventService
}

func NewSearchHandler(svc *services.EventService) *SearchHandler {
	return &SearchHandler{svc: svc}
}

type searchRequest struct {
	Query   string        `json:"query"`
	Filters model.Filters `json:"filters"`
	Profile model.Profile `json:"profile"`
	TopK    int           `json:"topK"`
}

func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "invalid request body")
		return
	}
	if req.TopK < 0 {
		respond.WriteBadRequest(w, "topK must not be negative")
		return
	}

	res := h.svc.Search(r.Context(), req.Query, req.Filters, req.Profile, req.TopK)

	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"events": res.Events,
		"ranked": res.Ranked,
		"count":  len(res.Events),
	})
}
