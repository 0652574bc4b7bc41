// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package upstream

import (
	"context"

	"github.com/tomtom215/moviematch/internal/models"
	"github.com/tomtom215/moviematch/internal/recommend"
)

// Fetcher feeds the server-side aggregator straight from the upstreams.
type Fetcher struct {
	recs RecommenderAPI
	tmdb TMDBAPI
}

var _ recommend.Fetcher = (*Fetcher)(nil)

// NewFetcher creates a fetcher over the two upstreams.
func NewFetcher(recs RecommenderAPI, tmdb TMDBAPI) *Fetcher {
	return &Fetcher{recs: recs, tmdb: tmdb}
}

// FetchRecommendations implements recommend.Fetcher.
func (f *Fetcher) FetchRecommendations(ctx context.Context, source recommend.Source, userID int) ([]models.Movie, error) {
	return f.recs.Movies(ctx, source, userID)
}

// FetchFallback implements recommend.Fetcher.
func (f *Fetcher) FetchFallback(ctx context.Context) ([]models.SwipeMovie, error) {
	return f.tmdb.Popular(ctx)
}
