// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/moviematch/internal/models"
)

var (
	// ErrMissingIdentity is returned by LoadAll when no user is known.
	ErrMissingIdentity = errors.New("recommend: missing user identity")

	// ErrSuperseded is returned by a cycle that finished after a newer one started.
	ErrSuperseded = errors.New("recommend: load cycle superseded")
)

// Source names a ranked candidate list.
type Source string

const (
	SourceContent       Source = "content"
	SourceCollaborative Source = "collaborative"
	SourceHybrid        Source = "hybrid"
	SourceFallback      Source = "fallback"
)

// PrimarySources lists the sources fetched on every cycle, highest priority first.
var PrimarySources = []Source{SourceContent, SourceCollaborative, SourceHybrid}

// Path returns the URL segment used by the recommendation endpoints.
func (s Source) Path() string {
	if s == SourceCollaborative {
		return "cf"
	}
	return string(s)
}

// ParseSource maps a URL segment or name back to a primary source.
func ParseSource(s string) (Source, bool) {
	switch s {
	case "content":
		return SourceContent, true
	case "cf", "collaborative":
		return SourceCollaborative, true
	case "hybrid":
		return SourceHybrid, true
	default:
		return "", false
	}
}

// Fetcher retrieves candidate lists. Implementations exist for the proxy
// server (direct upstream calls) and the terminal client (proxy routes).
type Fetcher interface {
	// FetchRecommendations returns the ranked list of one primary source.
	FetchRecommendations(ctx context.Context, source Source, userID int) ([]models.Movie, error)

	// FetchFallback returns the popular swipe deck.
	FetchFallback(ctx context.Context) ([]models.SwipeMovie, error)
}

// Options tunes the aggregation.
type Options struct {
	// TargetCount is the size the fallback pool fills up to.
	TargetCount int

	// InitialPageSize is the number of movies shown after a load.
	InitialPageSize int

	// PageIncrement is the number of movies revealed by each LoadMore.
	PageIncrement int

	// SourceTimeout bounds each individual fetch; 0 leaves it to ctx.
	SourceTimeout time.Duration
}

// DefaultOptions returns the standard feed shape: 50 movies, 11 shown, 6 per page.
func DefaultOptions() *Options {
	return &Options{
		TargetCount:     50,
		InitialPageSize: 11,
		PageIncrement:   6,
	}
}

// Validate rejects non-positive sizes.
func (o *Options) Validate() error {
	if o.TargetCount < 1 {
		return fmt.Errorf("target count must be positive, got %d", o.TargetCount)
	}
	if o.InitialPageSize < 1 {
		return fmt.Errorf("initial page size must be positive, got %d", o.InitialPageSize)
	}
	if o.PageIncrement < 1 {
		return fmt.Errorf("page increment must be positive, got %d", o.PageIncrement)
	}
	if o.SourceTimeout < 0 {
		return fmt.Errorf("source timeout must not be negative, got %v", o.SourceTimeout)
	}
	return nil
}

// State is a snapshot of the aggregated feed. Shown is always a prefix of
// Full, and the slices are copies owned by the caller.
type State struct {
	Full        []models.Movie
	Shown       []models.Movie
	LoadingFull bool
	LoadingMore bool
}

// HasMore reports whether LoadMore would reveal further movies.
func (s State) HasMore() bool {
	return len(s.Shown) < len(s.Full)
}
