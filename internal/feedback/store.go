// Package feedback persists community reviews and aggregates them into
// per-event rating summaries for the scorer.
package feedback

import (
	"context"

	"github.com/civicmatch/eventfinder/internal/model"
)

// Store exposes the persistence operations the service needs. Semantics are
// update-by-key: at most one live record per event id, last write wins.
// Implementations live under internal/feedback/<driver>/.
type Store interface {
	// Upsert inserts the record or overwrites the existing record with the
	// same event id.
	Upsert(ctx context.Context, rec model.Feedback) error
	// All returns every record currently in the store.
	All(ctx context.Context) ([]model.Feedback, error)
}

// Aggregate computes the mean rating and review count per event over the
// given rows. Events with no rows are simply absent from the result.
func Aggregate(recs []model.Feedback) map[string]model.RatingSummary {
	sums := make(map[string]int, len(recs))
	counts := make(map[string]int, len(recs))
	for _, rec := range recs {
		sums[rec.EventID] += rec.Rating
		counts[rec.EventID]++
	}

	out := make(map[string]model.RatingSummary, len(counts))
	for id, count := range counts {
		out[id] = model.RatingSummary{
			Mean:  float64(sums[id]) / float64(count),
			Count: count,
		}
	}
	return out
}
