package config

import (
	"fmt"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the configuration for the event finder service.
// Environment variables are parsed from the EVENTFINDER_ prefix.
type Config struct {
	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Data sources. PrimaryCSV is required for a real catalog; when it is
	// missing the service serves the synthetic demo dataset instead.
	DataDir      string `envconfig:"DATA_DIR" default:"./data"`
	PrimaryCSV   string `envconfig:"PRIMARY_CSV" default:"events.csv"`
	SecondaryCSV string `envconfig:"SECONDARY_CSV" default:"locations.csv"`

	// Feedback store
	FeedbackDriver string `envconfig:"FEEDBACK_DRIVER" default:"csv"`
	FeedbackCSV    string `envconfig:"FEEDBACK_CSV" default:"feedback.csv"`
	SQLitePath     string `envconfig:"SQLITE_PATH" default:"feedback.db"`
	PostgresDSN    string `envconfig:"POSTGRES_DSN" default:""`

	// Embedding / semantic search. Provider "none" disables the semantic
	// scoring term entirely.
	EmbedProvider string `envconfig:"EMBED_PROVIDER" default:"none"`
	EmbedModel    string `envconfig:"EMBED_MODEL" default:"mxbai-embed-large"`

	// Index artifact cache. Empty disables on-disk caching.
	IndexCacheDir string `envconfig:"INDEX_CACHE_DIR" default:""`

	// Search defaults
	DefaultTopK int `envconfig:"DEFAULT_TOP_K" default:"10"`
}

// ResolveDefaults validates driver/provider selections.
func (c *Config) ResolveDefaults() error {
	allowedStores := map[string]bool{"csv": true, "sqlite": true, "postgres": true}
	if !allowedStores[c.FeedbackDriver] {
		return fmt.Errorf("unsupported FEEDBACK_DRIVER: %s", c.FeedbackDriver)
	}
	if c.FeedbackDriver == "postgres" && c.PostgresDSN == "" {
		return fmt.Errorf("EVENTFINDER_POSTGRES_DSN is required when FEEDBACK_DRIVER=postgres")
	}
	switch c.EmbedProvider {
	case "none", "ollama":
	default:
		return fmt.Errorf("unsupported EMBED_PROVIDER: %s", c.EmbedProvider)
	}
	if c.DefaultTopK <= 0 {
		return fmt.Errorf("DEFAULT_TOP_K must be positive, got %d", c.DefaultTopK)
	}
	return nil
}

// PrimaryPath returns the primary source path joined with the data dir.
func (c *Config) PrimaryPath() string { return filepath.Join(c.DataDir, c.PrimaryCSV) }

// SecondaryPath returns the secondary source path joined with the data dir.
func (c *Config) SecondaryPath() string { return filepath.Join(c.DataDir, c.SecondaryCSV) }

// FeedbackCSVPath returns the CSV feedback store path joined with the data dir.
func (c *Config) FeedbackCSVPath() string { return filepath.Join(c.DataDir, c.FeedbackCSV) }

// SQLiteDBPath returns the SQLite feedback store path joined with the data dir.
func (c *Config) SQLiteDBPath() string { return filepath.Join(c.DataDir, c.SQLitePath) }

// New creates a new Config by parsing environment variables.
// Environment variables are prefixed with EVENTFINDER_,
// e.g. EVENTFINDER_HTTP_PORT, EVENTFINDER_EMBED_PROVIDER.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("EVENTFINDER", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
