package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/civicmatch/eventfinder/internal/model"
)

func TestUpsert_UpdateByKey(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "feedback.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = s.Close() }()

	ctx := context.Background()
	ts := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	if err := s.Upsert(ctx, model.Feedback{EventID: "e1", Rating: 5, Comment: "first", Timestamp: ts}); err != nil {
		t.Fatal(err)
	}
	if err := s.Upsert(ctx, model.Feedback{EventID: "e1", Rating: 1, Comment: "second", Timestamp: ts.Add(time.Hour)}); err != nil {
		t.Fatal(err)
	}
	if err := s.Upsert(ctx, model.Feedback{EventID: "e2", Rating: 4, Timestamp: ts}); err != nil {
		t.Fatal(err)
	}

	recs, err := s.All(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	// ORDER BY event_id puts e1 first.
	if recs[0].EventID != "e1" || recs[0].Rating != 1 || recs[0].Comment != "second" {
		t.Fatalf("e1 should carry the second submission: %+v", recs[0])
	}
}
