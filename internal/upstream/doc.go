// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

/*
Package upstream provides the HTTP clients for the services the proxy fronts.

Clients:
  - TMDBClient: movie detail pass-through and the popular swipe deck
  - RecommenderClient: content, collaborative and hybrid lists with bearer auth

Resilience:
  - Outbound token bucket (golang.org/x/time/rate) for TMDB
  - HTTP 429 retries with exponential backoff (1s, 2s, 4s, 8s, 16s), honouring Retry-After
  - One circuit breaker per upstream (tmdb-api, recommender-api)
  - Error bodies read up to 64KB

Non-2xx answers are returned as *StatusError so the API layer can forward the
upstream status. CachedTMDB keeps successful TMDB answers in memory, and
Fetcher adapts both clients to recommend.Fetcher for the server-side feed.
*/
package upstream
