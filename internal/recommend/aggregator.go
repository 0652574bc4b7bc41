// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package recommend

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moviematch/internal/metrics"
	"github.com/tomtom215/moviematch/internal/models"
)

// Aggregator owns the recommendation feed of one user session.
// It is safe for concurrent use.
type Aggregator struct {
	fetcher Fetcher
	opts    Options
	logger  zerolog.Logger

	mu          sync.Mutex
	full        []models.Movie
	shown       int // Shown is full[:shown]
	loadingFull bool
	loadingMore bool
	generation  uint64
	cancelCycle context.CancelFunc
	observer    func(State)
}

// NewAggregator creates an aggregator. A nil opts uses DefaultOptions.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewAggregator(fetcher Fetcher, opts *Options, logger zerolog.Logger) (*Aggregator, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	return &Aggregator{
		fetcher: fetcher,
		opts:    *opts,
		logger:  logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// OnChange registers fn to receive every state transition. fn runs outside
// the aggregator lock and may call back into the aggregator.
func (a *Aggregator) OnChange(fn func(State)) {
	a.mu.Lock()
	a.observer = fn
	a.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (a *Aggregator) Snapshot() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

func (a *Aggregator) snapshotLocked() State {
	full := make([]models.Movie, len(a.full))
	copy(full, a.full)
	return State{
		Full:        full,
		Shown:       full[:a.shown:a.shown],
		LoadingFull: a.loadingFull,
		LoadingMore: a.loadingMore,
	}
}

// notify must be called without a.mu held.
func (a *Aggregator) notify(s State) {
	a.mu.Lock()
	fn := a.observer
	a.mu.Unlock()
	if fn != nil {
		fn(s)
	}
}

// LoadAll runs a full load cycle for userID and returns the published state.
//
// A userID <= 0 returns ErrMissingIdentity without touching the state. If a
// newer LoadAll starts before this one finishes, this cycle's result is
// dropped and ErrSuperseded is returned together with the current state.
func (a *Aggregator) LoadAll(ctx context.Context, userID int) (State, error) {
	if userID <= 0 {
		return a.Snapshot(), ErrMissingIdentity
	}

	cycleCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.mu.Lock()
	if a.cancelCycle != nil {
		a.cancelCycle()
	}
	a.generation++
	gen := a.generation
	a.cancelCycle = cancel
	a.full = nil
	a.shown = 0
	a.loadingMore = false
	a.loadingFull = true
	started := a.snapshotLocked()
	a.mu.Unlock()
	a.notify(started)

	logger := a.logger.With().Int("user_id", userID).Uint64("cycle", gen).Logger()
	full := a.collect(cycleCtx, userID, &logger)

	a.mu.Lock()
	if gen != a.generation {
		current := a.snapshotLocked()
		a.mu.Unlock()
		metrics.RecsCycles.WithLabelValues("superseded").Inc()
		logger.Debug().Msg("Discarding superseded recommendation cycle")
		return current, ErrSuperseded
	}
	a.full = full
	a.shown = min(a.opts.InitialPageSize, len(full))
	a.loadingFull = false
	a.cancelCycle = nil
	published := a.snapshotLocked()
	a.mu.Unlock()

	metrics.RecsCycles.WithLabelValues("complete").Inc()
	metrics.RecsListSize.Observe(float64(len(full)))
	logger.Debug().Int("total", len(full)).Int("shown", len(published.Shown)).Msg("Recommendations loaded")

	a.notify(published)
	return published, nil
}

// LoadMore reveals the next page. It returns false without changing
// anything while a load is running, while another LoadMore is in progress,
// or when every movie is already shown.
func (a *Aggregator) LoadMore() bool {
	a.mu.Lock()
	if a.loadingMore || a.loadingFull || a.shown >= len(a.full) {
		a.mu.Unlock()
		return false
	}
	gen := a.generation
	a.loadingMore = true
	pending := a.snapshotLocked()
	a.mu.Unlock()
	a.notify(pending)

	a.mu.Lock()
	if gen != a.generation {
		// A new cycle started meanwhile and already reset the flags.
		a.mu.Unlock()
		return false
	}
	a.shown += min(a.opts.PageIncrement, len(a.full)-a.shown)
	a.loadingMore = false
	done := a.snapshotLocked()
	a.mu.Unlock()

	a.notify(done)
	return true
}

// collect fetches, merges and backfills. Failures degrade to fewer movies.
func (a *Aggregator) collect(ctx context.Context, userID int, logger *zerolog.Logger) []models.Movie {
	results := make([][]models.Movie, len(PrimarySources))
	var wg sync.WaitGroup

	for i, src := range PrimarySources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			results[idx] = a.fetchSource(ctx, s, userID, logger)
		}(i, src)
	}
	wg.Wait()

	merged := Merge(results...)
	if len(merged) >= a.opts.TargetCount {
		return merged
	}
	if ctx.Err() != nil {
		return merged
	}

	metrics.RecsFallbackInvocations.Inc()
	fetchCtx, cancel := a.sourceContext(ctx)
	defer cancel()

	pool, err := a.fetcher.FetchFallback(fetchCtx)
	if err != nil {
		metrics.RecsSourceFailures.WithLabelValues(string(SourceFallback)).Inc()
		logger.Warn().Err(err).Str("source", string(SourceFallback)).Msg("Fallback pool unavailable")
		return merged
	}

	fallback := make([]models.Movie, len(pool))
	for i, sm := range pool {
		fallback[i] = FromSwipeMovie(sm)
	}
	return Backfill(merged, fallback, a.opts.TargetCount)
}

func (a *Aggregator) fetchSource(ctx context.Context, s Source, userID int, logger *zerolog.Logger) []models.Movie {
	fetchCtx, cancel := a.sourceContext(ctx)
	defer cancel()

	movies, err := a.fetcher.FetchRecommendations(fetchCtx, s, userID)
	if err != nil {
		metrics.RecsSourceFailures.WithLabelValues(string(s)).Inc()
		logger.Warn().Err(err).Str("source", string(s)).Msg("Recommendation source degraded to empty")
		return nil
	}
	return movies
}

func (a *Aggregator) sourceContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.opts.SourceTimeout > 0 {
		return context.WithTimeout(ctx, a.opts.SourceTimeout)
	}
	return context.WithCancel(ctx)
}
