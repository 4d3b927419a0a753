// Package index builds the content-similarity artifacts: a TF-IDF vector
// space over the combined text of all events and the pairwise cosine matrix
// on top of it. The artifacts are a pure function of the combined-text
// column; any new data load invalidates them.
package index

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Index holds the fitted vectorizer, the per-document vectors and the N×N
// cosine-similarity matrix. It is immutable once built.
type Index struct {
	Fingerprint string         `json:"fingerprint"`
	Vectorizer  *Vectorizer    `json:"vectorizer"`
	DocVectors  []SparseVector `json:"docVectors"`
	Matrix      [][]float64    `json:"matrix"`
}

// Fingerprint identifies a corpus by size and content. Keying the cache on
// row count alone would collide on different corpora of equal size.
func Fingerprint(docs []string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%d\n", len(docs))
	for _, doc := range docs {
		fmt.Fprintf(h, "%d:", len(doc))
		h.Write([]byte(doc))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Build fits the vectorizer over the documents and computes the similarity
// matrix. The matrix is symmetric with a 1.0 diagonal and entries in [0,1].
func Build(docs []string) *Index {
	v := FitVectorizer(docs)

	vectors := make([]SparseVector, len(docs))
	for i, doc := range docs {
		vectors[i] = v.Transform(doc)
	}

	n := len(docs)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		matrix[i][i] = 1.0
		for j := i + 1; j < n; j++ {
			sim := Dot(vectors[i], vectors[j])
			matrix[i][j] = sim
			matrix[j][i] = sim
		}
	}

	return &Index{
		Fingerprint: Fingerprint(docs),
		Vectorizer:  v,
		DocVectors:  vectors,
		Matrix:      matrix,
	}
}

// Size returns the number of indexed documents.
func (ix *Index) Size() int { return len(ix.DocVectors) }
