// Package postgres implements a Postgres-backed feedback store using the
// pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/civicmatch/eventfinder/internal/feedback"
	"github.com/civicmatch/eventfinder/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS feedback (
    event_id  TEXT PRIMARY KEY,
    rating    INTEGER NOT NULL,
    comment   TEXT NOT NULL DEFAULT '',
    timestamp TIMESTAMPTZ NOT NULL
);`

// Store is a Postgres feedback store.
type Store struct {
	db *sql.DB
}

var _ feedback.Store = (*Store)(nil)

// Open connects to Postgres, verifies connectivity and ensures the schema.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
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
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (event_id) DO UPDATE SET
            rating = EXCLUDED.rating,
            comment = EXCLUDED.comment,
            timestamp = EXCLUDED.timestamp
    `, rec.EventID, rec.Rating, rec.Comment, rec.Timestamp.UTC())
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
		var ts time.Time
		if err := rows.Scan(&rec.EventID, &rec.Rating, &rec.Comment, &ts); err != nil {
			return nil, err
		}
		rec.Timestamp = ts
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
