// Package embeddings defines the optional dense-embedding capability used to
// augment lexical scoring. Providers are best-effort: any failure disables
// the semantic term and the engine degrades to lexical-only scoring.
package embeddings

import (
	"context"
	"math"
)

// Provider produces vector representations for text.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Cosine returns the cosine similarity of two embedding vectors, or 0 when
// either vector is empty, mismatched or zero.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
