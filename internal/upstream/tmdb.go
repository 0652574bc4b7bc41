// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package upstream

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/moviematch/internal/config"
	"github.com/tomtom215/moviematch/internal/models"
)

// TMDBName labels TMDB in metrics and errors.
const TMDBName = "tmdb"

// TMDBAPI is the subset of the TMDB API used by the proxy.
type TMDBAPI interface {
	// MovieDetail returns the raw TMDB movie document.
	MovieDetail(ctx context.Context, id int) (json.RawMessage, error)

	// Popular returns the first page of popular movies as swipe deck items.
	Popular(ctx context.Context) ([]models.SwipeMovie, error)
}

// TMDBClient talks to api.themoviedb.org using API key query authentication.
type TMDBClient struct {
	t            *transport
	baseURL      string
	apiKey       string
	language     string
	imageBaseURL string
	posterSize   string
}

// NewTMDBClient creates a client from configuration.
func NewTMDBClient(cfg *config.TMDBConfig) *TMDBClient {
	t := newTransport(TMDBName, cfg.Timeout)
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		t.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	imageBase := cfg.ImageBaseURL
	if imageBase == "" {
		imageBase = models.DefaultImageBaseURL
	}
	size := cfg.PosterSize
	if size == "" {
		size = models.DefaultPosterSize
	}
	lang := cfg.Language
	if lang == "" {
		lang = "en-US"
	}

	return &TMDBClient{
		t:            t,
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:       cfg.APIKey,
		language:     lang,
		imageBaseURL: imageBase,
		posterSize:   size,
	}
}

func (c *TMDBClient) endpoint(path string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)
	return fmt.Sprintf("%s/3%s?%s", c.baseURL, path, params.Encode())
}

// MovieDetail fetches /3/movie/{id} and returns the body untouched.
func (c *TMDBClient) MovieDetail(ctx context.Context, id int) (json.RawMessage, error) {
	resp, err := c.t.get(ctx, c.endpoint("/movie/"+strconv.Itoa(id), nil))
	if err != nil {
		return nil, fmt.Errorf("movie detail %d: %w", id, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("movie detail %d: failed to read body: %w", id, err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("movie detail %d: response is not valid JSON", id)
	}
	return json.RawMessage(body), nil
}

// Popular fetches page 1 of /3/movie/popular projected to swipe deck items.
func (c *TMDBClient) Popular(ctx context.Context) ([]models.SwipeMovie, error) {
	var page models.TMDBPage
	if err := c.t.getJSON(ctx, c.endpoint("/movie/popular", url.Values{"page": {"1"}}), &page); err != nil {
		return nil, fmt.Errorf("popular movies: %w", err)
	}

	out := make([]models.SwipeMovie, 0, len(page.Results))
	for _, m := range page.Results {
		out = append(out, models.SwipeMovie{
			ID:        m.ID,
			Title:     m.Title,
			PosterURL: models.PosterURL(c.imageBaseURL, c.posterSize, m.PosterPath),
		})
	}
	return out, nil
}
