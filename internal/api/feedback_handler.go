package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"github.com/civicmatch/eventfinder/internal/api/respond"
	"github.com/civicmatch/eventfinder/internal/model"
	"github.com/civicmatch/eventfinder/internal/services"
)

// FeedbackHandler handles feedback submission and rating lookup.
type FeedbackHandler struct {
	svc *services.EventService
}

func NewFeedbackHandler(svc *services.EventService) *FeedbackHandler {
	return &FeedbackHandler{svc: svc}
}

type feedbackRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// SubmitFeedback handles POST /api/events/{eventId}/feedback.
func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]

	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "invalid request body")
		return
	}

	err := h.svc.SubmitFeedback(r.Context(), eventID, req.Rating, req.Comment)
	switch {
	case errors.Is(err, model.ErrValidation):
		respond.WriteBadRequest(w, err.Error())
	case errors.Is(err, model.ErrNotFound):
		respond.WriteNotFound(w, "event not found")
	case err != nil:
		respond.WriteInternalError(w, "failed to store feedback")
	default:
		respond.WriteJSON(w, http.StatusCreated, map[string]string{"status": "stored"})
	}
}

// GetRating handles GET /api/events/{eventId}/rating.
func (h *FeedbackHandler) GetRating(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]

	if _, err := h.svc.Get(eventID); err != nil {
		respond.WriteNotFound(w, "event not found")
		return
	}

	sum, ok, err := h.svc.GetRating(r.Context(), eventID)
	if err != nil {
		respond.WriteInternalError(w, "failed to read feedback")
		return
	}
	if !ok {
		respond.WriteNotFound(w, "no feedback for event")
		return
	}
	respond.WriteJSON(w, http.StatusOK, sum)
}
