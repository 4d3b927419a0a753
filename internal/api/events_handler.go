package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/civicmatch/eventfinder/internal/api/respond"
	"github.com/civicmatch/eventfinder/internal/model"
	"github.com/civicmatch/eventfinder/internal/services"
)

// EventsHandler serves the catalog and the recommendation endpoints.
type EventsHandler struct {
	svc *services.EventService
}

func NewEventsHandler(svc *services.EventService) *EventsHandler {
	return &EventsHandler{svc: svc}
}

// ListEvents handles GET /api/events.
func (h *EventsHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events := h.svc.Events()
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"count":  len(events),
	})
}

// GetEvent handles GET /api/events/{eventId}.
func (h *EventsHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]
	ev, err := h.svc.Get(eventID)
	if err != nil {
		respond.WriteNotFound(w, "event not found")
		return
	}
	respond.WriteJSON(w, http.StatusOK, ev)
}

// GetSimilar handles GET /api/events/{eventId}/similar?k=N.
func (h *EventsHandler) GetSimilar(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]
	k, ok := queryInt(r, "k")
	if !ok {
		respond.WriteBadRequest(w, "k must be an integer")
		return
	}

	similar, err := h.svc.RecommendSimilar(r.Context(), eventID, k)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			respond.WriteNotFound(w, "event not found")
			return
		}
		respond.WriteInternalError(w, "recommendation failed")
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"events": similar,
		"count":  len(similar),
	})
}

// queryInt parses an optional integer query parameter; absent means 0.
func queryInt(r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
