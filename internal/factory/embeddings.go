package factory

import (
	"github.com/rs/zerolog"

	"github.com/civicmatch/eventfinder/internal/config"
	emb "github.com/civicmatch/eventfinder/internal/embeddings"
	"github.com/civicmatch/eventfinder/internal/embeddings/ollama"
)

// NewEmbeddingProvider creates an embedding provider based on config, or nil
// when semantic scoring is disabled. The provider is best-effort: callers
// treat any later failure as model-unavailable and keep lexical scoring.
func NewEmbeddingProvider(cfg *config.Config, log zerolog.Logger) emb.Provider {
	switch cfg.EmbedProvider {
	case "ollama":
		log.Info().Str("model", cfg.EmbedModel).Msg("ollama embedding provider configured")
		return ollama.New(cfg.EmbedModel)
	default:
		return nil
	}
}
