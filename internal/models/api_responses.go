// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package models

import "time"

// APIResponse is the envelope used by the operational endpoints (health).
// The movie routes keep their bare legacy bodies.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError is a machine readable error.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is returned by the readiness probe.
type HealthStatus struct {
	Status   string            `json:"status"`
	Version  string            `json:"version"`
	Uptime   float64           `json:"uptime_seconds"`
	Checks   map[string]string `json:"checks"`
	Breakers map[string]string `json:"circuit_breakers,omitempty"`
}

// FeedResponse is the body of GET /recommendations/feed/{userId}.
type FeedResponse struct {
	Items   []Movie `json:"items"`
	Total   int     `json:"total"`
	HasMore bool    `json:"has_more"`
}
