// Package search implements the relevance scorer: hard filtering followed by
// an additive composite score per event (lexical match, optional semantic
// similarity, preference boosts, community-rating boost).
package search

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/civicmatch/eventfinder/internal/embeddings"
	"github.com/civicmatch/eventfinder/internal/model"
)

// Scoring weights. The exact-phrase bonus dominates individual token hits so
// verbatim matches always rank first among lexical candidates.
const (
	phraseWeight    = 10.0
	tokenWeight     = 1.0
	semanticWeight  = 5.0
	themeWeight     = 2.0
	locationWeight  = 1.0
	ratingScale     = 0.5
	ratingMidpoint  = 3.0
	reviewCountStep = 0.1
	reviewCountCap  = 1.0
)

// Scorer ranks the canonical event table against free-text queries. It is
// stateless per call: the table, embeddings and logger are the only fields
// and all of them are immutable after construction.
type Scorer struct {
	events    []model.Event
	provider  embeddings.Provider // nil when semantic scoring is disabled
	eventVecs [][]float32         // one per event, nil without a provider
	log       zerolog.Logger
}

// New creates a Scorer. provider and eventVecs may be nil; scoring then
// degrades to lexical-only.
func New(events []model.Event, provider embeddings.Provider, eventVecs [][]float32, log zerolog.Logger) *Scorer {
	return &Scorer{events: events, provider: provider, eventVecs: eventVecs, log: log}
}

// Score filters the table and returns the candidates ranked by composite
// relevance. A blank query skips ranking entirely and returns the filtered
// set in table order with Ranked=false. Scoring never mutates the table.
func (s *Scorer) Score(ctx context.Context, query string, filters model.Filters, profile model.Profile, ratings map[string]model.RatingSummary) model.SearchResult {
	candidates := s.filter(filters)

	rawQuery := strings.ToLower(strings.TrimSpace(query))
	if rawQuery == "" {
		out := make([]model.ScoredEvent, 0, len(candidates))
		for _, i := range candidates {
			out = append(out, model.ScoredEvent{Event: s.events[i]})
		}
		return model.SearchResult{Events: out, Ranked: false}
	}

	queryWords := strings.Fields(ExpandQuery(rawQuery))
	queryVec := s.embedQuery(ctx, rawQuery)

	scored := make([]model.ScoredEvent, 0, len(candidates))
	for _, i := range candidates {
		ev := s.events[i]
		score := s.lexicalScore(ev, rawQuery, queryWords)
		if queryVec != nil && s.eventVecs[i] != nil {
			score += semanticWeight * embeddings.Cosine(queryVec, s.eventVecs[i])
		}
		score += preferenceBoost(ev, profile)
		score += ratingBoost(ratings[ev.EventID])
		scored = append(scored, model.ScoredEvent{Event: ev, Score: score})
	}

	// Stable sort keeps table order as the tie-break, so identical inputs
	// always produce identical rankings.
	sort.SliceStable(scored, func(a, b int) bool { return scored[a].Score > scored[b].Score })
	return model.SearchResult{Events: scored, Ranked: true}
}

// filter applies each active filter as a hard restriction. A filter that
// matches nothing yields an empty candidate set, never an error.
func (s *Scorer) filter(filters model.Filters) []int {
	location := strings.ToLower(filters.Location)
	theme := strings.ToLower(filters.Theme)
	mood := strings.ToLower(filters.Mood)

	candidates := make([]int, 0, len(s.events))
	for i, ev := range s.events {
		if location != "" && !strings.Contains(strings.ToLower(ev.LocationDisplay), location) {
			continue
		}
		if theme != "" && !strings.Contains(strings.ToLower(ev.Theme), theme) {
			continue
		}
		if mood != "" && !strings.Contains(strings.ToLower(ev.Mood), mood) {
			continue
		}
		if filters.UpcomingOnly && !ev.IsUpcoming {
			continue
		}
		candidates = append(candidates, i)
	}
	return candidates
}

// lexicalScore awards the verbatim-phrase bonus plus one point per expanded
// token found in the combined text. A word can count twice, once inside the
// phrase match and once as a token; the double weighting favors exact
// phrase matches on purpose.
func (s *Scorer) lexicalScore(ev model.Event, rawQuery string, queryWords []string) float64 {
	var score float64
	if strings.Contains(ev.CombinedText, rawQuery) {
		score += phraseWeight
	}
	for _, word := range queryWords {
		if strings.Contains(ev.CombinedText, word) {
			score += tokenWeight
		}
	}
	return score
}

// embedQuery returns the query embedding, or nil when semantic scoring is
// unavailable. Provider failures are logged and degrade to lexical-only.
func (s *Scorer) embedQuery(ctx context.Context, query string) []float32 {
	if s.provider == nil || len(s.eventVecs) != len(s.events) {
		return nil
	}
	vec, err := s.provider.Embed(ctx, query)
	if err != nil {
		s.log.Warn().Err(err).Msg("query embedding failed, semantic term omitted")
		return nil
	}
	return vec
}

func preferenceBoost(ev model.Event, profile model.Profile) float64 {
	var boost float64
	for _, theme := range profile.Themes {
		if theme != "" && strings.Contains(ev.CombinedText, strings.ToLower(theme)) {
			boost += themeWeight
		}
	}
	location := strings.ToLower(ev.LocationDisplay)
	for _, loc := range profile.Locations {
		if loc != "" && strings.Contains(location, strings.ToLower(loc)) {
			boost += locationWeight
		}
	}
	return boost
}

// ratingBoost centers on the rating midpoint, so below-midpoint events are
// penalized, and caps the review-count term so volume alone cannot dominate.
func ratingBoost(sum model.RatingSummary) float64 {
	if sum.Count == 0 {
		return 0
	}
	return (sum.Mean-ratingMidpoint)*ratingScale + math.Min(float64(sum.Count)*reviewCountStep, reviewCountCap)
}
