// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package upstream

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moviematch/internal/config"
	"github.com/tomtom215/moviematch/internal/models"
	"github.com/tomtom215/moviematch/internal/recommend"
)

// RecommenderName labels the recommendation service in metrics and errors.
const RecommenderName = "recommender"

// RecommenderAPI is the external recommendation service.
type RecommenderAPI interface {
	// Recommendations returns the raw list for source, for pass-through proxying.
	Recommendations(ctx context.Context, source recommend.Source, userID int) (json.RawMessage, error)

	// Movies returns the decoded list for source.
	Movies(ctx context.Context, source recommend.Source, userID int) ([]models.Movie, error)
}

// RecommenderClient calls {base}/recommendations/{type}/{userId} with bearer auth.
type RecommenderClient struct {
	t       *transport
	baseURL string
}

// NewRecommenderClient creates a client from configuration.
func NewRecommenderClient(cfg *config.RecommenderConfig) *RecommenderClient {
	t := newTransport(RecommenderName, cfg.Timeout)
	t.header.Set("Authorization", "Bearer "+cfg.APIKey)
	return &RecommenderClient{
		t:       t,
		baseURL: strings.TrimRight(cfg.URL, "/"),
	}
}

func (c *RecommenderClient) endpoint(source recommend.Source, userID int) string {
	return c.baseURL + "/recommendations/" + source.Path() + "/" + strconv.Itoa(userID)
}

// Recommendations returns the upstream body untouched.
func (c *RecommenderClient) Recommendations(ctx context.Context, source recommend.Source, userID int) (json.RawMessage, error) {
	resp, err := c.t.get(ctx, c.endpoint(source, userID))
	if err != nil {
		return nil, fmt.Errorf("%s recommendations for user %d: %w", source, userID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s recommendations for user %d: failed to read body: %w", source, userID, err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%s recommendations for user %d: response is not valid JSON", source, userID)
	}
	return json.RawMessage(body), nil
}

// Movies decodes the list for source.
func (c *RecommenderClient) Movies(ctx context.Context, source recommend.Source, userID int) ([]models.Movie, error) {
	var movies []models.Movie
	if err := c.t.getJSON(ctx, c.endpoint(source, userID), &movies); err != nil {
		return nil, fmt.Errorf("%s recommendations for user %d: %w", source, userID, err)
	}
	return movies, nil
}
