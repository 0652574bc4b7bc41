// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package events

import (
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/moviematch/internal/logging"
	"github.com/tomtom215/moviematch/internal/metrics"
)

// PublisherBreakerName labels the publish breaker in metrics.
const PublisherBreakerName = "nats-publisher"

// failureThreshold consecutive publish failures open the breaker.
const failureThreshold = 5

// NewCircuitBreaker creates the breaker guarding publishes. It opens after
// failureThreshold consecutive failures and probes again after 30s.
func NewCircuitBreaker(name string) *gobreaker.CircuitBreaker[interface{}] {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			switch to {
			case gobreaker.StateClosed:
				metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
			case gobreaker.StateHalfOpen:
				metrics.CircuitBreakerState.WithLabelValues(name).Set(1)
			case gobreaker.StateOpen:
				metrics.CircuitBreakerState.WithLabelValues(name).Set(2)
			}
		},
	})
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
