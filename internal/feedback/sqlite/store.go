// Package sqlite implements a SQLite-backed feedback store for deployments
// that outgrow the flat CSV table.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/civicmatch/eventfinder/internal/feedback"
	"github.com/civicmatch/eventfinder/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS feedback (
    event_id  TEXT PRIMARY KEY,
    rating    INTEGER NOT NULL,
    comment   TEXT NOT NULL DEFAULT '',
    timestamp TEXT NOT NULL
);`

// Store is a SQLite feedback store. The event_id primary key enforces the
// one-live-record-per-event invariant at the schema level.
type Store struct {
	db *sql.DB
}

var _ feedback.Store = (*Store)(nil)

// Open opens (or creates) the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Upsert(ctx context.Context, rec model.Feedback) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO feedback (event_id, rating, comment, timestamp)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(event_id) DO UPDATE SET
            rating = excluded.rating,
            comment = excluded.comment,
            timestamp = excluded.timestamp
    `, rec.EventID, rec.Rating, rec.Comment, rec.Timestamp.UTC().Format(time.RFC3339))
	return err
}

func (s *Store) All(ctx context.Context) ([]model.Feedback, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT event_id, rating, comment, timestamp FROM feedback ORDER BY event_id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var recs []model.Feedback
	for rows.Next() {
		var rec model.Feedback
		var ts string
		if err := rows.Scan(&rec.EventID, &rec.Rating, &rec.Comment, &ts); err != nil {
			return nil, err
		}
		if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
			rec.Timestamp = parsed
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
