package factory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/civicmatch/eventfinder/internal/config"
	"github.com/civicmatch/eventfinder/internal/feedback"
	feedbackcsv "github.com/civicmatch/eventfinder/internal/feedback/csv"
	feedbackpg "github.com/civicmatch/eventfinder/internal/feedback/postgres"
	feedbacksqlite "github.com/civicmatch/eventfinder/internal/feedback/sqlite"
)

// NewFeedbackStore returns the feedback store selected by configuration.
func NewFeedbackStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (feedback.Store, error) {
	switch cfg.FeedbackDriver {
	case "csv":
		return feedbackcsv.Open(cfg.FeedbackCSVPath())
	case "sqlite":
		return feedbacksqlite.Open(cfg.SQLiteDBPath())
	case "postgres":
		store, err := feedbackpg.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		log.Debug().Msg("postgres feedback store ready")
		return store, nil
	default:
		return nil, fmt.Errorf("unknown FEEDBACK_DRIVER: %s", cfg.FeedbackDriver)
	}
}
