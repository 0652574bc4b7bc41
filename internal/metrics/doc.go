// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

/*
Package metrics defines the Prometheus metrics exported by the MovieMatch
proxy on /metrics.

All collectors are registered on the default registry through promauto at
package init, so callers only use the exported variables or the Record*
helpers.

Metric families:

  - api_*: inbound HTTP requests (count, latency, in-flight, rate limited)
  - upstream_*: outbound calls to TMDB and the recommender
  - circuit_breaker_*: gobreaker state per upstream
  - cache_*: in-memory response cache efficiency
  - db_*: swipe/user store query latency and errors
  - recs_*: recommendation aggregation cycles, degraded sources, fallback use
  - swipes_recorded_total, events_*: swipe ingestion and event publishing

Example alert:

	- alert: CircuitBreakerOpen
	  expr: circuit_breaker_state == 2
	  for: 5m
	  annotations:
	    summary: "{{ $labels.name }} circuit breaker is open"
*/
package metrics
