// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Upstream Metrics
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Duration of outbound upstream requests in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"upstream", "outcome"}, // outcome: "success", "error", "status"
	)

	UpstreamRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_rate_limit_retries_total",
			Help: "Total number of retries after upstream HTTP 429 responses",
		},
		[]string{"upstream"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cache entries",
		},
		[]string{"cache"},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Duration of store queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"driver", "operation"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of store query errors",
		},
		[]string{"driver", "operation"},
	)

	// Recommendation Aggregation Metrics
	RecsCycles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recs_load_cycles_total",
			Help: "Total number of recommendation load cycles by outcome",
		},
		[]string{"outcome"}, // "complete", "superseded"
	)

	RecsSourceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recs_source_failures_total",
			Help: "Total number of recommendation sources that degraded to empty",
		},
		[]string{"source"},
	)

	RecsFallbackInvocations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recs_fallback_invocations_total",
			Help: "Total number of times the fallback pool was fetched",
		},
	)

	RecsListSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recs_list_size",
			Help:    "Size of the published recommendation list",
			Buckets: []float64{0, 5, 11, 20, 30, 40, 50},
		},
	)

	// Swipe and Event Metrics
	SwipesRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swipes_recorded_total",
			Help: "Total number of swipes stored",
		},
		[]string{"direction"},
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of events published",
		},
		[]string{"topic"},
	)

	EventsPublishFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_publish_failures_total",
			Help: "Total number of events that failed to publish",
		},
		[]string{"topic"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordUpstreamRequest records an outbound request by outcome.
func RecordUpstreamRequest(upstream, outcome string, duration time.Duration) {
	UpstreamRequestDuration.WithLabelValues(upstream, outcome).Observe(duration.Seconds())
}

// RecordDBQuery records a store query metric.
func RecordDBQuery(driver, operation string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(driver, operation).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(driver, operation).Inc()
	}
}

// RecordCacheLookup records a hit or a miss for the named cache.
func RecordCacheLookup(cache string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cache).Inc()
	} else {
		CacheMisses.WithLabelValues(cache).Inc()
	}
}

// RecordPublish records the outcome of an event publish.
func RecordPublish(topic string, err error) {
	if err != nil {
		EventsPublishFailures.WithLabelValues(topic).Inc()
		return
	}
	EventsPublished.WithLabelValues(topic).Inc()
}

// SetAppInfo exports the running version.
func SetAppInfo(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}
