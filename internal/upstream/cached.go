// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package upstream

import (
	"context"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moviematch/internal/cache"
	"github.com/tomtom215/moviematch/internal/models"
)

const popularKey = "popular:1"

// CachedTMDB serves repeated TMDB lookups from memory. Failures are never cached.
type CachedTMDB struct {
	api     TMDBAPI
	details *cache.Cache[json.RawMessage]
	popular *cache.Cache[[]models.SwipeMovie]
}

// NewCachedTMDB wraps api with the given caches.
func NewCachedTMDB(api TMDBAPI, details *cache.Cache[json.RawMessage], popular *cache.Cache[[]models.SwipeMovie]) *CachedTMDB {
	return &CachedTMDB{api: api, details: details, popular: popular}
}

// MovieDetail implements TMDBAPI.
func (c *CachedTMDB) MovieDetail(ctx context.Context, id int) (json.RawMessage, error) {
	v, _, err := c.details.GetOrLoad(ctx, "movie:"+strconv.Itoa(id), func(ctx context.Context) (json.RawMessage, error) {
		return c.api.MovieDetail(ctx, id)
	})
	return v, err
}

// Popular implements TMDBAPI. The returned slice is a copy.
func (c *CachedTMDB) Popular(ctx context.Context) ([]models.SwipeMovie, error) {
	v, _, err := c.popular.GetOrLoad(ctx, popularKey, c.api.Popular)
	if err != nil {
		return nil, err
	}
	out := make([]models.SwipeMovie, len(v))
	copy(out, v)
	return out, nil
}
