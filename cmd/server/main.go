// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/cinemonth/internal/api"
	"github.com/tomtom215/cinemonth/internal/cache"
	"github.com/tomtom215/cinemonth/internal/config"
	"github.com/tomtom215/cinemonth/internal/ingest"
	"github.com/tomtom215/cinemonth/internal/logging"
	"github.com/tomtom215/cinemonth/internal/metrics"
	"github.com/tomtom215/cinemonth/internal/poster"
	"github.com/tomtom215/cinemonth/internal/recommend"
	"github.com/tomtom215/cinemonth/internal/recommend/reranking"
	"github.com/tomtom215/cinemonth/internal/supervisor"
	"github.com/tomtom215/cinemonth/internal/supervisor/services"
)

// Set at build time with -ldflags "-X main.version=...".
var version = "dev"

const (
	corsMaxAge           = 86400
	cacheSweepInterval   = 10 * time.Minute
	defaultRequestBudget = 30 * time.Second
)

// app is the assembled server, ready to be supervised.
type app struct {
	engine   *recommend.Engine
	enricher *poster.Enricher
	server   *http.Server
	tree     *supervisor.SupervisorTree
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logging.Init(cfg.LoggerConfig())

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Cinemonth")

	a, err := buildApp(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", a.server.Addr).Msg("Supervisor tree starting")
	if err := a.tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree stopped with error")
	}

	if report, err := a.tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		logging.Warn().Int("count", len(report)).Msg("Services failed to stop within the shutdown timeout")
	}
	logging.Info().Msg("Shutdown complete")
}

// buildApp loads the datasets and wires the engine, poster chain, HTTP
// router and supervisor tree. Nothing is started.
func buildApp(cfg *config.Config) (*app, error) {
	engineCfg := cfg.RecommendEngineConfig()

	state, err := loadState(cfg, engineCfg)
	if err != nil {
		return nil, err
	}

	var opts []recommend.Option
	if engineCfg.Selection == recommend.SelectionMMR {
		opts = append(opts, recommend.WithSelector(reranking.NewMMR(engineCfg.MMRLambda)))
	}
	engine, err := recommend.NewEngine(engineCfg, state, logging.Logger(), opts...)
	if err != nil {
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}
	stats := engine.Stats()
	metrics.SetDatasetSizes(stats.Catalog, stats.Candidates, stats.History, stats.Months)

	enricher, mode, breakerState := newPosterChain(&cfg.Poster)

	requestTimeout := cfg.Server.Timeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestBudget
	}
	handler := api.NewHandler(api.Dependencies{
		Engine:         engine,
		Enricher:       enricher,
		Version:        version,
		PosterMode:     mode,
		BreakerState:   breakerState,
		UploadMaxBytes: cfg.Data.UploadMaxBytes,
		RequestTimeout: requestTimeout,
	})
	router := api.NewRouter(handler, &api.ChiMiddlewareConfig{
		CORSAllowedOrigins: cfg.Security.CORSOrigins,
		CORSMaxAge:         corsMaxAge,
		RateLimitRequests:  cfg.Security.RateLimitReqs,
		RateLimitWindow:    cfg.Security.RateLimitWindow,
		RateLimitDisabled:  cfg.Security.RateLimitDisabled,
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       requestTimeout,
		WriteTimeout:      requestTimeout + 5*time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	tree, err := supervisor.NewSupervisorTree(
		slog.New(logging.NewSlogHandler(logging.WithComponent("supervisor"))),
		supervisor.TreeConfig{ShutdownTimeout: cfg.Server.ShutdownTimeout},
	)
	if err != nil {
		return nil, fmt.Errorf("create supervisor tree: %w", err)
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	tree.AddMaintenanceService(cache.NewJanitor(enricher.Cache(), cacheSweepInterval))

	return &app{
		engine:   engine,
		enricher: enricher,
		server:   server,
		tree:     tree,
	}, nil
}

// loadState reads the catalog and watch log and freezes them into a State.
func loadState(cfg *config.Config, engineCfg *recommend.Config) (*recommend.State, error) {
	logger := logging.WithComponent("loader")

	catalogRows, err := ingest.LoadCatalog(cfg.Data.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	catalog, cstats := recommend.CatalogFromRows(catalogRows, engineCfg.CatalogOptions())
	metrics.RecordLoad("catalog", cstats.Kept, map[string]int{
		"type":      cstats.DroppedType,
		"rating":    cstats.DroppedRating,
		"unmatched": cstats.DroppedUnmatched,
		"key":       cstats.DroppedKey,
		"duplicate": cstats.DroppedDuplicate,
	})
	logger.Info().
		Str("path", cfg.Data.CatalogPath).
		Int("rows", len(catalogRows)).
		Int("kept", cstats.Kept).
		Int("dropped_rating", cstats.DroppedRating).
		Int("dropped_duplicate", cstats.DroppedDuplicate).
		Msg("Catalog loaded")
	if catalog.Len() == 0 {
		logger.Warn().Msg("Catalog is empty, every recommendation will be empty")
	}

	watchRows, err := ingest.LoadWatched(cfg.Data.WatchedPath)
	if err != nil {
		return nil, fmt.Errorf("load watch history: %w", err)
	}
	history, hstats := recommend.BuildHistory(watchRows, catalog, engineCfg.EpochYear)
	metrics.RecordLoad("history", hstats.Kept, map[string]int{
		"date": hstats.DroppedDate,
		"key":  hstats.DroppedKey,
	})
	logger.Info().
		Str("path", cfg.Data.WatchedPath).
		Int("rows", hstats.Rows).
		Int("kept", hstats.Kept).
		Int("with_genres", hstats.WithGenres).
		Int("pre_epoch", hstats.PreEpoch).
		Int("catalog_miss", hstats.CatalogMiss).
		Msg("Watch history loaded")

	return recommend.NewState(catalog, history, engineCfg.EpochYear), nil
}

// newPosterChain builds TMDb -> circuit breaker -> cached enricher, or a
// placeholder-only enricher when TMDb is disabled or has no key.
func newPosterChain(cfg *config.PosterConfig) (*poster.Enricher, string, func() string) {
	enricherCfg := poster.EnricherConfig{
		PlaceholderBaseURL: cfg.PlaceholderBaseURL,
		Timeout:            cfg.EnrichTimeout,
		MaxConcurrency:     cfg.MaxConcurrency,
		CacheTTL:           cfg.CacheTTL,
	}

	if !cfg.Enabled || cfg.APIKey == "" {
		if cfg.Enabled {
			logging.Warn().Msg("Poster lookups enabled without an API key, serving placeholders")
		}
		return poster.NewEnricher(nil, enricherCfg), api.PosterModePlaceholder, nil
	}

	client := poster.NewTMDbClient(poster.TMDbConfig{
		APIKey:       cfg.APIKey,
		BaseURL:      cfg.BaseURL,
		ImageBaseURL: cfg.ImageBaseURL,
		Timeout:      cfg.RequestTimeout,
		RateLimit:    cfg.RateLimit,
		RateBurst:    cfg.RateBurst,
	})
	breaker := poster.NewBreakerResolver(client, poster.BreakerConfig{
		Name:        "tmdb",
		Timeout:     cfg.BreakerTimeout,
		MinRequests: cfg.BreakerMinRequests,
		FailRatio:   cfg.BreakerFailRatio,
	})
	logging.Info().Str("base_url", cfg.BaseURL).Msg("TMDb poster lookups enabled")
	return poster.NewEnricher(breaker, enricherCfg), api.PosterModeTMDb, breaker.State
}
