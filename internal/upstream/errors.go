// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package upstream

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxErrorBodySize caps how much of an error response body is read into memory.
const maxErrorBodySize = 64 * 1024 // 64KB

// ErrRateLimited is returned when an upstream keeps answering 429 after all retries.
var ErrRateLimited = errors.New("upstream rate limit exceeded")

// StatusError is returned when an upstream answers with a non-2xx status.
type StatusError struct {
	Upstream   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Upstream, e.StatusCode)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Upstream, e.StatusCode, e.Body)
}

// StatusCode extracts the upstream HTTP status from err, or 0 when err does
// not carry one.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// isClientError reports whether err is a 4xx other than 429. Those are
// caused by the caller and do not count against a circuit breaker.
func isClientError(err error) bool {
	code := StatusCode(err)
	return code >= 400 && code < 500 && code != http.StatusTooManyRequests
}

func newStatusError(upstream string, resp *http.Response) *StatusError {
	return &StatusError{
		Upstream:   upstream,
		StatusCode: resp.StatusCode,
		Body:       string(readBodyForError(resp.Body)),
	}
}

// readBodyForError reads a response body for inclusion in an error message,
// truncating at maxErrorBodySize.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}
