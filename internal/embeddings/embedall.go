package embeddings

import (
	"context"
	"fmt"

	"github.com/civicmatch/eventfinder/internal/model"
)

// EmbedAll embeds every text in order. Any provider failure makes the whole
// batch unusable for similarity, so the first error aborts and is reported
// as model-unavailable; callers degrade to lexical-only scoring.
func EmbedAll(ctx context.Context, p Provider, texts []string) ([][]float32, error) {
	if p == nil {
		return nil, model.ErrModelUnavailable
	}
	vecs := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := p.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("%w: embedding document %d: %v", model.ErrModelUnavailable, i, err)
		}
		vecs[i] = vec
	}
	return vecs, nil
}
