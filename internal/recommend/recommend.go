// Package recommend implements the two recommendation paths over the
// similarity index: item-to-item from the precomputed cosine matrix, and
// profile-to-corpus through the fitted vectorizer. Both are stateless per
// call and never mutate the index or the event table.
package recommend

import (
	"sort"
	"strings"

	"github.com/civicmatch/eventfinder/internal/index"
	"github.com/civicmatch/eventfinder/internal/model"
)

// SimilarTo returns the top k events most similar to the event at position i,
// excluding the event itself. An out-of-range i returns an empty list.
func SimilarTo(events []model.Event, ix *index.Index, i, k int) []model.ScoredEvent {
	if i < 0 || i >= len(ix.Matrix) || len(events) != len(ix.Matrix) {
		return nil
	}

	row := ix.Matrix[i]
	order := make([]int, 0, len(row)-1)
	for j := range row {
		if j != i {
			order = append(order, j)
		}
	}
	sort.SliceStable(order, func(a, b int) bool { return row[order[a]] > row[order[b]] })

	return takeTop(events, order, row, k)
}

// ForProfile synthesizes a pseudo-document from the selected themes and
// moods, transforms it through the vectorizer fitted at index build time,
// and returns the top k events by cosine similarity. Using any other
// vectorizer would break comparability with the indexed vectors.
func ForProfile(events []model.Event, ix *index.Index, themes, moods []string, k int) []model.ScoredEvent {
	if len(events) != len(ix.DocVectors) {
		return nil
	}

	terms := make([]string, 0, len(themes)+len(moods))
	terms = append(terms, themes...)
	terms = append(terms, moods...)
	pseudoDoc := strings.Join(terms, " ")
	if strings.TrimSpace(pseudoDoc) == "" {
		return nil
	}

	profileVec := ix.Vectorizer.Transform(pseudoDoc)

	sims := make([]float64, len(events))
	order := make([]int, len(events))
	for j := range events {
		sims[j] = index.Dot(profileVec, ix.DocVectors[j])
		order[j] = j
	}
	sort.SliceStable(order, func(a, b int) bool { return sims[order[a]] > sims[order[b]] })

	return takeTop(events, order, sims, k)
}

func takeTop(events []model.Event, order []int, sims []float64, k int) []model.ScoredEvent {
	if k > 0 && len(order) > k {
		order = order[:k]
	}
	out := make([]model.ScoredEvent, 0, len(order))
	for _, j := range order {
		out = append(out, model.ScoredEvent{Event: events[j], Score: sims[j]})
	}
	return out
}
