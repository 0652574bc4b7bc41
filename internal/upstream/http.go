// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package upstream

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/moviematch/internal/metrics"
)

const (
	defaultTimeout        = 30 * time.Second
	defaultMaxRetries     = 5
	defaultRetryBaseDelay = time.Second
)

// transport performs GET requests against one upstream with an optional
// outbound limiter and HTTP 429 backoff.
type transport struct {
	name           string
	client         *http.Client
	limiter        *rate.Limiter // nil = unlimited
	header         http.Header
	maxRetries     int
	retryBaseDelay time.Duration
}

func newTransport(name string, timeout time.Duration) *transport {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &transport{
		name:           name,
		client:         &http.Client{Timeout: timeout},
		header:         http.Header{},
		maxRetries:     defaultMaxRetries,
		retryBaseDelay: defaultRetryBaseDelay,
	}
}

// get issues the request and returns a response with a 2xx status. Any other
// status is turned into a *StatusError. The caller closes the body.
func (t *transport) get(ctx context.Context, reqURL string) (*http.Response, error) {
	start := time.Now()
	resp, err := t.doWithBackoff(ctx, reqURL)
	if err != nil {
		metrics.RecordUpstreamRequest(t.name, "error", time.Since(start))
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		metrics.RecordUpstreamRequest(t.name, "status_"+strconv.Itoa(resp.StatusCode), time.Since(start))
		return nil, newStatusError(t.name, resp)
	}
	metrics.RecordUpstreamRequest(t.name, "success", time.Since(start))
	return resp, nil
}

// getJSON decodes a 2xx body into result.
func (t *transport) getJSON(ctx context.Context, reqURL string, result interface{}) error {
	resp, err := t.get(ctx, reqURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", t.name, err)
	}
	return nil
}

// doWithBackoff retries HTTP 429 responses with exponential backoff
// (1s, 2s, 4s, 8s, 16s), honouring Retry-After when present.
func (t *transport) doWithBackoff(ctx context.Context, reqURL string) (*http.Response, error) {
	for attempt := 0; attempt <= t.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if t.limiter != nil {
			if err := t.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("%s: rate limiter: %w", t.name, err)
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to create request: %w", t.name, err)
		}
		for k, v := range t.header {
			req.Header[k] = v
		}
		req.Header.Set("Accept", "application/json")

		resp, err := t.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%s: HTTP request failed: %w", t.name, err)
		}
		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		_ = resp.Body.Close()
		if attempt == t.maxRetries {
			break
		}
		metrics.UpstreamRetries.WithLabelValues(t.name).Inc()

		delay := t.retryBaseDelay * time.Duration(1<<uint(attempt))
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds >= 0 {
				delay = time.Duration(seconds) * time.Second
			}
		}

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("%s: %w after %d retries (HTTP 429)", t.name, ErrRateLimited, t.maxRetries)
}
