// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package upstream

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/moviematch/internal/logging"
	"github.com/tomtom215/moviematch/internal/metrics"
	"github.com/tomtom215/moviematch/internal/models"
	"github.com/tomtom215/moviematch/internal/recommend"
)

// Breaker names as exported in the circuit breaker metrics.
const (
	TMDBBreakerName        = "tmdb-api"
	RecommenderBreakerName = "recommender-api"
)

// breaker wraps a gobreaker instance with metrics and logging.
//
// Configuration:
//   - MaxRequests: 3 probes allowed in half-open state
//   - Interval: counts reset every minute while closed
//   - Timeout: 2 minutes open before probing again
//   - ReadyToTrip: at least 10 requests and a 60% failure ratio
//
// 4xx responses other than 429 are the caller's fault and count as successes.
type breaker struct {
	cb   *gobreaker.CircuitBreaker[interface{}]
	name string
}

func newBreaker(name string) *breaker {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0) // 0 = closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Warn().
					Str("breaker", name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		IsSuccessful: func(err error) bool {
			return err == nil || isClientError(err) || errors.Is(err, context.Canceled)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()

			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &breaker{cb: cb, name: name}
}

func (b *breaker) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := b.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			logging.Warn().Err(err).Str("breaker", b.name).Msg("[CIRCUIT BREAKER] Request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
			counts := b.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(counts.ConsecutiveFailures))
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)
	return result, nil
}

func (b *breaker) state() string {
	return stateToString(b.cb.State())
}

// castResult converts a breaker result back to its concrete type.
func castResult[T any](result interface{}, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if result == nil {
		return zero, nil
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
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

// CircuitBreakerTMDB guards a TMDBAPI.
type CircuitBreakerTMDB struct {
	api TMDBAPI
	b   *breaker
}

// NewCircuitBreakerTMDB wraps api with the tmdb-api breaker.
func NewCircuitBreakerTMDB(api TMDBAPI) *CircuitBreakerTMDB {
	return &CircuitBreakerTMDB{api: api, b: newBreaker(TMDBBreakerName)}
}

// MovieDetail implements TMDBAPI.
func (c *CircuitBreakerTMDB) MovieDetail(ctx context.Context, id int) (json.RawMessage, error) {
	return castResult[json.RawMessage](c.b.execute(func() (interface{}, error) {
		return c.api.MovieDetail(ctx, id)
	}))
}

// Popular implements TMDBAPI.
func (c *CircuitBreakerTMDB) Popular(ctx context.Context) ([]models.SwipeMovie, error) {
	return castResult[[]models.SwipeMovie](c.b.execute(func() (interface{}, error) {
		return c.api.Popular(ctx)
	}))
}

// BreakerName returns the breaker label.
func (c *CircuitBreakerTMDB) BreakerName() string { return c.b.name }

// BreakerState returns closed, half-open or open.
func (c *CircuitBreakerTMDB) BreakerState() string { return c.b.state() }

// CircuitBreakerRecommender guards a RecommenderAPI.
type CircuitBreakerRecommender struct {
	api RecommenderAPI
	b   *breaker
}

// NewCircuitBreakerRecommender wraps api with the recommender-api breaker.
func NewCircuitBreakerRecommender(api RecommenderAPI) *CircuitBreakerRecommender {
	return &CircuitBreakerRecommender{api: api, b: newBreaker(RecommenderBreakerName)}
}

// Recommendations implements RecommenderAPI.
func (c *CircuitBreakerRecommender) Recommendations(ctx context.Context, source recommend.Source, userID int) (json.RawMessage, error) {
	return castResult[json.RawMessage](c.b.execute(func() (interface{}, error) {
		return c.api.Recommendations(ctx, source, userID)
	}))
}

// Movies implements RecommenderAPI.
func (c *CircuitBreakerRecommender) Movies(ctx context.Context, source recommend.Source, userID int) ([]models.Movie, error) {
	return castResult[[]models.Movie](c.b.execute(func() (interface{}, error) {
		return c.api.Movies(ctx, source, userID)
	}))
}

// BreakerName returns the breaker label.
func (c *CircuitBreakerRecommender) BreakerName() string { return c.b.name }

// BreakerState returns closed, half-open or open.
func (c *CircuitBreakerRecommender) BreakerState() string { return c.b.state() }
