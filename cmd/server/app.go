// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moviematch/internal/api"
	"github.com/tomtom215/moviematch/internal/cache"
	"github.com/tomtom215/moviematch/internal/config"
	"github.com/tomtom215/moviematch/internal/database"
	"github.com/tomtom215/moviematch/internal/events"
	"github.com/tomtom215/moviematch/internal/logging"
	"github.com/tomtom215/moviematch/internal/models"
	"github.com/tomtom215/moviematch/internal/recommend"
	"github.com/tomtom215/moviematch/internal/supervisor"
	"github.com/tomtom215/moviematch/internal/supervisor/services"
	"github.com/tomtom215/moviematch/internal/upstream"
)

const (
	detailCacheSize  = 1000
	popularCacheSize = 4
)

// app holds the wired server components.
type app struct {
	store     database.Store
	publisher *events.SwipePublisher
	router    http.Handler
	server    *http.Server
	tree      *supervisor.SupervisorTree
}

// newApp opens the store, builds the upstream clients and the router, and
// registers every long-lived component with a new supervisor tree.
func newApp(ctx context.Context, cfg *config.Config, version string) (*app, error) {
	store, err := database.Open(ctx, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	logging.Info().Str("driver", store.Driver()).Msg("Swipe store ready")

	publisher, err := events.NewFromConfig(ctx, &cfg.NATS, logging.NewWatermillAdapter())
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("create swipe publisher: %w", err)
	}

	details := cache.New[json.RawMessage]("tmdb_details", detailCacheSize, cfg.TMDB.CacheTTL)
	popular := cache.New[[]models.SwipeMovie]("tmdb_popular", popularCacheSize, cfg.TMDB.CacheTTL)

	tmdbBreaker := upstream.NewCircuitBreakerTMDB(upstream.NewTMDBClient(&cfg.TMDB))
	recsBreaker := upstream.NewCircuitBreakerRecommender(upstream.NewRecommenderClient(&cfg.Recommender))

	handler := api.NewHandler(&api.HandlerDeps{
		TMDB:        upstream.NewCachedTMDB(tmdbBreaker, details, popular),
		Recommender: recsBreaker,
		Store:       store,
		Publisher:   publisher,
		Breakers:    []api.BreakerReporter{tmdbBreaker, recsBreaker, publisher},
		Feed: api.FeedConfig{
			Options: recommend.Options{
				TargetCount:     cfg.Recs.TargetCount,
				InitialPageSize: cfg.Recs.InitialPageSize,
				PageIncrement:   cfg.Recs.PageIncrement,
			},
			MaxPages: cfg.Recs.MaxPages,
			Timeout:  cfg.Recs.FetchTimeout,
		},
		Version: version,
	})
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(&cfg.Security)))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		_ = publisher.Close()
		_ = store.Close()
		return nil, fmt.Errorf("create supervisor tree: %w", err)
	}

	tree.AddDataService(details)
	tree.AddDataService(popular)
	tree.AddDataService(services.NewStoreMonitor(store, services.DefaultStoreCheckInterval))
	tree.AddMessagingService(services.NewPublisherService(publisher))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	return &app{
		store:     store,
		publisher: publisher,
		router:    router,
		server:    server,
		tree:      tree,
	}, nil
}

// Close releases the store and the publisher. Closing the publisher twice is
// harmless.
func (a *app) Close() {
	if err := a.publisher.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing swipe publisher")
	}
	if err := a.store.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing store")
	}
}
