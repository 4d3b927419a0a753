package index

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/civicmatch/eventfinder/internal/model"
)

// The cache is two blobs persisted side by side. Both must be present and
// carry the expected fingerprint to skip a rebuild; anything less is a miss.
const (
	vectorizerFile = "index_vectorizer.json"
	matrixFile     = "index_matrix.json"
)

type vectorizerBlob struct {
	Fingerprint string         `json:"fingerprint"`
	Vectorizer  *Vectorizer    `json:"vectorizer"`
	DocVectors  []SparseVector `json:"docVectors"`
}

type matrixBlob struct {
	Fingerprint string      `json:"fingerprint"`
	Matrix      [][]float64 `json:"matrix"`
}

// Save persists the index artifacts into dir.
func Save(ix *Index, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	vb := vectorizerBlob{Fingerprint: ix.Fingerprint, Vectorizer: ix.Vectorizer, DocVectors: ix.DocVectors}
	if err := writeBlob(filepath.Join(dir, vectorizerFile), vb); err != nil {
		return err
	}
	mb := matrixBlob{Fingerprint: ix.Fingerprint, Matrix: ix.Matrix}
	return writeBlob(filepath.Join(dir, matrixFile), mb)
}

// Load restores cached artifacts for the corpus identified by fingerprint.
// Missing or unreadable blobs and fingerprint mismatches all come back as
// model.ErrCacheMiss so the caller can rebuild.
func Load(dir, fingerprint string) (*Index, error) {
	var vb vectorizerBlob
	if err := readBlob(filepath.Join(dir, vectorizerFile), &vb); err != nil {
		return nil, fmt.Errorf("%w: vectorizer blob: %v", model.ErrCacheMiss, err)
	}
	var mb matrixBlob
	if err := readBlob(filepath.Join(dir, matrixFile), &mb); err != nil {
		return nil, fmt.Errorf("%w: matrix blob: %v", model.ErrCacheMiss, err)
	}
	if vb.Fingerprint != fingerprint || mb.Fingerprint != fingerprint {
		return nil, fmt.Errorf("%w: fingerprint mismatch", model.ErrCacheMiss)
	}
	if vb.Vectorizer == nil || len(mb.Matrix) != len(vb.DocVectors) {
		return nil, fmt.Errorf("%w: inconsistent artifacts", model.ErrCacheMiss)
	}
	return &Index{
		Fingerprint: fingerprint,
		Vectorizer:  vb.Vectorizer,
		DocVectors:  vb.DocVectors,
		Matrix:      mb.Matrix,
	}, nil
}

func writeBlob(path string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func readBlob(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
