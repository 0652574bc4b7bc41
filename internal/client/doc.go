// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

// Package client talks to the MovieMatch proxy over its legacy routes.
//
// Client covers the swipe deck, movie detail, swipes and the user id mapping,
// and implements recommend.Fetcher so the terminal client can run the same
// aggregator the proxy's feed endpoint uses.
package client
