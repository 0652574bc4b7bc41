// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

/*
Package middleware provides the HTTP middleware stacked in front of the proxy
routes.

  - RequestID: honours or assigns X-Request-ID and seeds the logging context
    with request and correlation ids
  - PrometheusMetrics: request count, latency and in-flight gauge labelled by
    chi route pattern, so /movie/{id} is one series
  - AccessLog: one structured line per request, warning on slow requests

All middleware uses the func(http.Handler) http.Handler shape accepted by
chi.Router.Use.
*/
package middleware
