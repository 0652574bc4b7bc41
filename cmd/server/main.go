// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

// Package main is the entry point of the MovieMatch proxy server.
//
// The proxy fronts TMDB and the external recommendation service for the
// MovieMatch clients, stores swipes and the Firebase UID to user id mapping,
// and publishes swipe.recorded events.
//
// Services run under a suture v4 tree:
//
//	RootSupervisor ("moviematch")
//	├── DataSupervisor ("data-layer")
//	│   ├── cache janitors
//	│   └── store monitor
//	├── MessagingSupervisor ("messaging-layer")
//	│   └── swipe publisher
//	└── APISupervisor ("api-layer")
//	    └── HTTP server
//
// Configuration is layered with koanf (defaults, config.yaml, environment).
// The server exits when TMDB_API_KEY or the recommender URL and key are missing.
//
// SIGINT and SIGTERM stop the tree; the HTTP server drains in-flight requests
// for SERVER_SHUTDOWN_TIMEOUT before the store is closed.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/moviematch/internal/config"
	"github.com/tomtom215/moviematch/internal/logging"
	"github.com/tomtom215/moviematch/internal/metrics"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
		Output: os.Stderr,
	})
	metrics.SetAppInfo(version)

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("db_driver", cfg.Database.Driver).
		Bool("nats_enabled", cfg.NATS.Enabled).
		Msg("Starting MovieMatch proxy")

	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows every origin in production; set CORS_ORIGINS")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := newApp(ctx, cfg, version)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize server")
	}
	defer app.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", cfg.Server.Addr()).Msg("Starting supervisor tree")
	errCh := app.tree.ServeBackground(ctx)

	// The tree reports exactly once, after every layer has stopped.
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	if unstopped, _ := app.tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}
	logging.Info().Msg("MovieMatch proxy stopped")
}
