// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

/*
Package supervisor runs the proxy's long-lived services under a suture v4 tree.

The tree has three layers so that a failing layer restarts on its own:

	RootSupervisor ("moviematch")
	├── DataSupervisor ("data-layer")
	│   ├── cache janitors (TMDB detail and popular caches)
	│   └── StoreMonitor
	├── MessagingSupervisor ("messaging-layer")
	│   └── PublisherService (swipe.recorded publisher)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Supervisor events (service failures, restarts, backoff) are logged through
sutureslog on top of the zerolog backed slog handler from package logging.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddAPIService(services.NewHTTPServerService(srv, cfg.Server.ShutdownTimeout))
	errCh := tree.ServeBackground(ctx)

Service implementations live in the services subpackage.
*/
package supervisor
