// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

// Package services adapts the proxy's components to suture.Service.
//
// Every service blocks in Serve until its context is canceled, then cleans up
// with a fresh timeout context. String names the service in supervisor logs.
package services
