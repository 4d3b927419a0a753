// Package eventservice wires the event finder service together and runs the
// HTTP server.
package eventservice

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/civicmatch/eventfinder/internal/api"
	"github.com/civicmatch/eventfinder/internal/config"
	emb "github.com/civicmatch/eventfinder/internal/embeddings"
	"github.com/civicmatch/eventfinder/internal/factory"
	"github.com/civicmatch/eventfinder/internal/index"
	"github.com/civicmatch/eventfinder/internal/ingest"
	"github.com/civicmatch/eventfinder/internal/logger"
	"github.com/civicmatch/eventfinder/internal/metrics"
	"github.com/civicmatch/eventfinder/internal/model"
	"github.com/civicmatch/eventfinder/internal/services"
)

// Run starts the event finder HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("eventfinder")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Int("http_port", cfg.HTTPPort).
		Str("feedback_driver", cfg.FeedbackDriver).
		Str("embed_provider", cfg.EmbedProvider).
		Str("data_dir", cfg.DataDir).
		Msg("Event finder starting")

	ctx, stop := newServerContext()
	defer stop()

	svc, err := initService(ctx, cfg, log)
	if err != nil {
		return err
	}

	router := buildRouter(svc)
	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Err(err).Msg("HTTP server failed")
		return err
	}
}

// initService loads the event table, builds or restores the similarity
// index, and wires the embedding provider and feedback store.
func initService(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*services.EventService, error) {
	now := time.Now().UTC()

	events, err := ingest.Load(cfg.PrimaryPath(), cfg.SecondaryPath(), now, log)
	if err != nil {
		if !errors.Is(err, model.ErrDataUnavailable) {
			return nil, err
		}
		log.Warn().Err(err).Msg("primary source unavailable, serving the synthetic demo catalog")
		events = ingest.DemoEvents(now)
	}

	ix := buildOrLoadIndex(events, cfg, log)
	provider, eventVecs := buildEventEmbeddings(ctx, events, cfg, log)

	fb, err := factory.NewFeedbackStore(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("Feedback store unavailable")
		return nil, err
	}

	return services.NewEventService(events, ix, provider, eventVecs, fb, cfg.DefaultTopK, log)
}

// buildOrLoadIndex restores cached artifacts when both blobs are present and
// match the corpus fingerprint; any miss rebuilds from scratch.
func buildOrLoadIndex(events []model.Event, cfg *config.Config, log zerolog.Logger) *index.Index {
	docs := make([]string, len(events))
	for i, ev := range events {
		docs[i] = ev.CombinedText
	}
	fingerprint := index.Fingerprint(docs)

	if cfg.IndexCacheDir != "" {
		if ix, err := index.Load(cfg.IndexCacheDir, fingerprint); err == nil {
			log.Info().Int("events", ix.Size()).Msg("similarity index restored from cache")
			return ix
		} else {
			log.Info().Err(err).Msg("index cache unusable, rebuilding")
		}
	}

	start := time.Now()
	ix := index.Build(docs)
	metrics.IndexBuildSeconds.Observe(time.Since(start).Seconds())
	log.Info().Int("events", ix.Size()).Dur("took", time.Since(start)).Msg("similarity index built")

	if cfg.IndexCacheDir != "" {
		if err := index.Save(ix, cfg.IndexCacheDir); err != nil {
			log.Warn().Err(err).Msg("failed to persist index cache")
		}
	}
	return ix
}

// buildEventEmbeddings computes one dense vector per event. Any failure
// disables semantic scoring for the session; lexical scoring is unaffected.
func buildEventEmbeddings(ctx context.Context, events []model.Event, cfg *config.Config, log zerolog.Logger) (emb.Provider, [][]float32) {
	provider := factory.NewEmbeddingProvider(cfg, log)
	if provider == nil {
		return nil, nil
	}

	docs := make([]string, len(events))
	for i, ev := range events {
		docs[i] = ev.CombinedText
	}
	vecs, err := emb.EmbedAll(ctx, provider, docs)
	if err != nil {
		log.Warn().Err(err).Msg("event embeddings unavailable, semantic scoring disabled")
		return nil, nil
	}
	log.Info().Int("events", len(vecs)).Msg("event embeddings ready")
	return provider, vecs
}

// buildRouter wires HTTP routes to handlers.
func buildRouter(svc *services.EventService) *mux.Router {
	root := mux.NewRouter()
	root.Use(api.Recover)

	events := api.NewEventsHandler(svc)
	root.HandleFunc("/api/events", events.ListEvents).Methods("GET")
	root.HandleFunc("/api/events/{eventId}", events.GetEvent).Methods("GET")
	root.HandleFunc("/api/events/{eventId}/similar", events.GetSimilar).Methods("GET")

	search := api.NewSearchHandler(svc)
	root.HandleFunc("/api/search", search.HandleSearch).Methods("POST")

	recs := api.NewRecommendationsHandler(svc)
	root.HandleFunc("/api/recommendations", recs.HandleRecommendations).Methods("POST")

	fb := api.NewFeedbackHandler(svc)
	root.HandleFunc("/api/events/{eventId}/feedback", fb.SubmitFeedback).Methods("POST")
	root.HandleFunc("/api/events/{eventId}/rating", fb.GetRating).Methods("GET")

	health := api.NewHealthHandler(len(svc.Events()))
	root.HandleFunc("/api/health", health.CheckHealth).Methods("GET")

	root.Handle("/metrics", metrics.Handler()).Methods("GET")
	return root
}

func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}
