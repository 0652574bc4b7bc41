// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

/*
Package api implements the HTTP surface of the MovieMatch proxy.

Movie routes keep the bare JSON bodies the mobile app already understands:

	GET  /movie/{id}                          TMDB detail pass-through, 500 {} on failure
	GET  /movies                              popular swipe deck, 500 [] on failure
	POST /swipes                              {success}
	POST /users/importOrGetId                 {userId} or {error}
	GET  /recommendations/{type}/{userId}     content, cf or hybrid list, [] on failure
	GET  /recommendations/feed/{userId}       merged and backfilled feed

Operational routes use the models.APIResponse envelope:

	GET  /api/v1/health/live
	GET  /api/v1/health/ready
	GET  /metrics

Middleware order: RequestID, RealIP, Recoverer, CORS, then per-group rate
limiting, Prometheus metrics and access logging.
*/
package api
