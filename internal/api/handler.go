// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package api

import (
	"context"
	"time"

	"github.com/tomtom215/moviematch/internal/database"
	"github.com/tomtom215/moviematch/internal/models"
	"github.com/tomtom215/moviematch/internal/recommend"
	"github.com/tomtom215/moviematch/internal/upstream"
)

// SwipeEventPublisher publishes stored swipes to the event bus.
type SwipeEventPublisher interface {
	PublishSwipe(ctx context.Context, ev models.SwipeRecordedEvent) error
}

// BreakerReporter exposes a circuit breaker state for the readiness probe.
type BreakerReporter interface {
	BreakerName() string
	BreakerState() string
}

// FeedConfig bounds the feed endpoint.
type FeedConfig struct {
	Options  recommend.Options
	MaxPages int
	Timeout  time.Duration
}

// Handler holds the dependencies of every route.
type Handler struct {
	tmdb      upstream.TMDBAPI
	recs      upstream.RecommenderAPI
	store     database.Store
	publisher SwipeEventPublisher
	breakers  []BreakerReporter
	feed      FeedConfig

	version      string
	startTime    time.Time
	publishAsync bool
}

// HandlerDeps groups the constructor arguments of NewHandler.
type HandlerDeps struct {
	TMDB        upstream.TMDBAPI
	Recommender upstream.RecommenderAPI
	Store       database.Store
	Publisher   SwipeEventPublisher // nil disables swipe events
	Breakers    []BreakerReporter
	Feed        FeedConfig
	Version     string
}

// NewHandler creates a handler. Zero feed settings fall back to
// recommend.DefaultOptions, 10 pages and a 20s timeout.
func NewHandler(deps *HandlerDeps) *Handler {
	feed := deps.Feed
	if feed.Options.TargetCount == 0 {
		feed.Options = *recommend.DefaultOptions()
	}
	if feed.MaxPages <= 0 {
		feed.MaxPages = 10
	}
	if feed.Timeout <= 0 {
		feed.Timeout = 20 * time.Second
	}

	return &Handler{
		tmdb:         deps.TMDB,
		recs:         deps.Recommender,
		store:        deps.Store,
		publisher:    deps.Publisher,
		breakers:     deps.Breakers,
		feed:         feed,
		version:      deps.Version,
		startTime:    time.Now(),
		publishAsync: true,
	}
}
