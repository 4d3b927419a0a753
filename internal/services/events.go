// Package services orchestrates the query interface consumed by the HTTP
// layer: search, recommendations, feedback submission and rating lookup.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/civicmatch/eventfinder/internal/embeddings"
	"github.com/civicmatch/eventfinder/internal/feedback"
	"github.com/civicmatch/eventfinder/internal/index"
	"github.com/civicmatch/eventfinder/internal/metrics"
	"github.com/civicmatch/eventfinder/internal/model"
	"github.com/civicmatch/eventfinder/internal/recommend"
	"github.com/civicmatch/eventfinder/internal/search"
)

// EventService holds the immutable per-session context: the canonical event
// table, the similarity index and the optional embedding artifacts. They are
// built once at startup and threaded through every call; nothing here is
// global or mutated between requests.
type EventService struct {
	events      []model.Event
	byID        map[string]int
	ix          *index.Index
	scorer      *search.Scorer
	fb          feedback.Store
	defaultTopK int
	log         zerolog.Logger
}

// NewEventService wires the service. provider and eventVecs may be nil; the
// scorer then runs lexical-only.
func NewEventService(events []model.Event, ix *index.Index, provider embeddings.Provider, eventVecs [][]float32, fb feedback.Store, defaultTopK int, log zerolog.Logger) (*EventService, error) {
	if ix.Size() != len(events) {
		return nil, fmt.Errorf("index size %d does not match event table size %d", ix.Size(), len(events))
	}
	byID := make(map[string]int, len(events))
	for i, ev := range events {
		byID[ev.EventID] = i
	}
	return &EventService{
		events:      events,
		byID:        byID,
		ix:          ix,
		scorer:      search.New(events, provider, eventVecs, log),
		fb:          fb,
		defaultTopK: defaultTopK,
		log:         log,
	}, nil
}

// Events returns the canonical table in load order.
func (s *EventService) Events() []model.Event { return s.events }

// Get returns the event with the given id.
func (s *EventService) Get(eventID string) (model.Event, error) {
	i, ok := s.byID[eventID]
	if !ok {
		return model.Event{}, fmt.Errorf("%w: event %s", model.ErrNotFound, eventID)
	}
	return s.events[i], nil
}

// Search ranks the catalog against the query, filters and profile. A failure
// to read feedback degrades to rating-free scoring rather than failing the
// whole request.
func (s *EventService) Search(ctx context.Context, query string, filters model.Filters, profile model.Profile, topK int) model.SearchResult {
	metrics.SearchRequestsTotal.Inc()

	var ratings map[string]model.RatingSummary
	if recs, err := s.fb.All(ctx); err != nil {
		s.log.Warn().Err(err).Msg("feedback read failed, scoring without rating boost")
	} else {
		ratings = feedback.Aggregate(recs)
	}

	res := s.scorer.Score(ctx, query, filters, profile, ratings)
	if topK <= 0 {
		topK = s.defaultTopK
	}
	if res.Ranked && len(res.Events) > topK {
		res.Events = res.Events[:topK]
	}
	return res
}

// RecommendSimilar returns the top k events most similar to the given event.
// Unknown ids are ErrNotFound; an id that maps outside the matrix bounds
// yields an empty list, not an error.
func (s *EventService) RecommendSimilar(ctx context.Context, eventID string, k int) ([]model.ScoredEvent, error) {
	i, ok := s.byID[eventID]
	if !ok {
		return nil, fmt.Errorf("%w: event %s", model.ErrNotFound, eventID)
	}
	metrics.RecommendationsTotal.WithLabelValues("similar").Inc()
	if k <= 0 {
		k = s.defaultTopK
	}
	return recommend.SimilarTo(s.events, s.ix, i, k), nil
}

// RecommendForProfile returns the top k events for the declared themes and
// moods.
func (s *EventService) RecommendForProfile(ctx context.Context, themes, moods []string, k int) []model.ScoredEvent {
	metrics.RecommendationsTotal.WithLabelValues("profile").Inc()
	if k <= 0 {
		k = s.defaultTopK
	}
	return recommend.ForProfile(s.events, s.ix, themes, moods, k)
}

// SubmitFeedback validates and stores one review, overwriting any earlier
// review for the same event.
func (s *EventService) SubmitFeedback(ctx context.Context, eventID string, rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5, got %d", model.ErrValidation, rating)
	}
	if _, ok := s.byID[eventID]; !ok {
		return fmt.Errorf("%w: event %s", model.ErrNotFound, eventID)
	}
	rec := model.Feedback{
		EventID:   eventID,
		Rating:    rating,
		Comment:   comment,
		Timestamp: time.Now().UTC(),
	}
	if err := s.fb.Upsert(ctx, rec); err != nil {
		return fmt.Errorf("store feedback: %w", err)
	}
	metrics.FeedbackSubmittedTotal.Inc()
	return nil
}

// GetRating returns the aggregated rating for an event; ok is false when the
// event has no feedback.
func (s *EventService) GetRating(ctx context.Context, eventID string) (model.RatingSummary, bool, error) {
	recs, err := s.fb.All(ctx)
	if err != nil {
		return model.RatingSummary{}, false, err
	}
	sum, ok := feedback.Aggregate(recs)[eventID]
	return sum, ok, nil
}
