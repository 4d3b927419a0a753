// Package csv implements the default file-backed feedback store: one CSV
// table read in full and rewritten in full on every update.
//
// Known race: writes are read-modify-write over a shared file. Two
// near-simultaneous submissions for the same event id can race and the last
// writer wins with no merge. Acceptable for low-concurrency community use.
package csv

import (
	"context"
	enccsv "encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/civicmatch/eventfinder/internal/feedback"
	"github.com/civicmatch/eventfinder/internal/model"
)

var header = []string{"event_id", "rating", "comment", "timestamp"}

// Store is a CSV-file feedback store. The file is created empty (header
// only) on first use if absent.
type Store struct {
	mu   sync.Mutex
	path string
}

var _ feedback.Store = (*Store)(nil)

// Open prepares a store at path, creating the file if it does not exist.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	s := &Store{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.writeAll(nil); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	return s, nil
}

// Upsert overwrites any existing record for the same event id, otherwise
// appends.
func (s *Store) Upsert(ctx context.Context, rec model.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.readAll()
	if err != nil {
		return err
	}

	replaced := false
	for i := range recs {
		if recs[i].EventID == rec.EventID {
			recs[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		recs = append(recs, rec)
	}
	return s.writeAll(recs)
}

// All returns every record in file order.
func (s *Store) All(ctx context.Context) ([]model.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll()
}

func (s *Store) readAll() ([]model.Feedback, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	rows, err := enccsv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read feedback table: %w", err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	recs := make([]model.Feedback, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < 4 {
			continue
		}
		rating, err := strconv.Atoi(row[1])
		if err != nil {
			continue
		}
		ts, err := time.Parse(time.RFC3339, row[3])
		if err != nil {
			continue
		}
		recs = append(recs, model.Feedback{
			EventID:   row[0],
			Rating:    rating,
			Comment:   row[2],
			Timestamp: ts,
		})
	}
	return recs, nil
}

func (s *Store) writeAll(recs []model.Feedback) error {
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	w := enccsv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return err
	}
	for _, rec := range recs {
		row := []string{rec.EventID, strconv.Itoa(rec.Rating), rec.Comment, rec.Timestamp.UTC().Format(time.RFC3339)}
		if err := w.Write(row); err != nil {
			_ = f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
