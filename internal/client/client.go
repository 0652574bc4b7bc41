// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moviematch/internal/config"
	"github.com/tomtom215/moviematch/internal/logging"
	"github.com/tomtom215/moviematch/internal/models"
	"github.com/tomtom215/moviematch/internal/recommend"
)

// maxErrorBodySize bounds how much of an error response is kept.
const maxErrorBodySize = 4 << 10

// ErrMissingUser is returned by calls that need a user id when none is set.
var ErrMissingUser = errors.New("no user id; run `moviematch login` first")

// ResponseError is a non-2xx answer from the proxy.
type ResponseError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *ResponseError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Client calls the proxy. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for cfg.BaseURL.
func New(cfg *config.ClientConfig) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		return nil, errors.New("client base URL is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// Movies returns the popular swipe deck.
func (c *Client) Movies(ctx context.Context) ([]models.SwipeMovie, error) {
	var deck []models.SwipeMovie
	if err := c.do(ctx, http.MethodGet, "/movies", nil, &deck); err != nil {
		return nil, err
	}
	return deck, nil
}

// MovieDetail returns the metadata of one movie.
func (c *Client) MovieDetail(ctx context.Context, movieID int) (*models.Movie, error) {
	var m models.Movie
	if err := c.do(ctx, http.MethodGet, "/movie/"+strconv.Itoa(movieID), nil, &m); err != nil {
		return nil, err
	}
	if m.ID == 0 {
		return nil, fmt.Errorf("movie %d: empty response", movieID)
	}
	return &m, nil
}

// SendSwipe records a like or dislike.
func (c *Client) SendSwipe(ctx context.Context, userID, movieID int, direction string) error {
	if userID <= 0 {
		return ErrMissingUser
	}
	req := models.SwipeRequest{UserID: userID, MovieID: movieID, Direction: direction}
	var resp models.SwipeResponse
	if err := c.do(ctx, http.MethodPost, "/swipes", req, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("swipe rejected: %s", resp.Error)
	}
	return nil
}

// ImportOrGetID maps a Firebase UID to the proxy's integer user id.
func (c *Client) ImportOrGetID(ctx context.Context, firebaseUID, displayName string) (int, error) {
	req := models.ImportUserRequest{FirebaseUID: firebaseUID, DisplayName: displayName}
	var resp models.ImportUserResponse
	if err := c.do(ctx, http.MethodPost, "/users/importOrGetId", req, &resp); err != nil {
		return 0, err
	}
	return resp.UserID, nil
}

// Feed returns the proxy side aggregation for userID.
func (c *Client) Feed(ctx context.Context, userID, pages int) (*models.FeedResponse, error) {
	if userID <= 0 {
		return nil, ErrMissingUser
	}
	path := fmt.Sprintf("/recommendations/feed/%d?pages=%d", userID, pages)
	var feed models.FeedResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &feed); err != nil {
		return nil, err
	}
	return &feed, nil
}

// FetchRecommendations implements recommend.Fetcher.
func (c *Client) FetchRecommendations(ctx context.Context, source recommend.Source, userID int) ([]models.Movie, error) {
	if userID <= 0 {
		return nil, ErrMissingUser
	}
	path := fmt.Sprintf("/recommendations/%s/%d", source.Path(), userID)
	var list []models.Movie
	if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// FetchFallback implements recommend.Fetcher with the swipe deck.
func (c *Client) FetchFallback(ctx context.Context) ([]models.SwipeMovie, error) {
	return c.Movies(ctx)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := logging.RequestIDFromContext(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	logging.Ctx(ctx).Debug().Str("method", method).Str("path", path).Msg("Calling proxy")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return &ResponseError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(data)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
