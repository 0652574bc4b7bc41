// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

// Package logging provides centralized zerolog-based structured logging for MovieMatch.
//
// Both binaries (the proxy server and the terminal client) log through this
// package so that output format, level handling and request correlation are
// identical everywhere.
//
// # Overview
//
// The package provides:
//   - A global zerolog logger configured once via Init
//   - JSON output for production, console output for development
//   - Context-aware logging with request and correlation ID propagation
//   - An slog adapter used by the suture supervisor event hook
//   - A Watermill logger adapter used by the swipe event publisher
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Int("port", 3000).Msg("Server starting")
//	logging.Ctx(ctx).Warn().Err(err).Str("source", "hybrid").Msg("Source degraded")
//
// Always terminate log chains with .Msg() or .Send(); an unterminated event
// is never written.
package logging
