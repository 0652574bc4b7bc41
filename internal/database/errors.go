// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package database

import (
	"errors"
	"io"
)

var (
	// ErrNotFound is returned when a query that must yield a row yields none.
	ErrNotFound = errors.New("database: not found")

	// ErrUnknownDriver is returned by Open for an unsupported database.driver.
	ErrUnknownDriver = errors.New("database: unknown driver")

	// ErrInvalidSwipe is returned when a swipe fails basic sanity checks.
	ErrInvalidSwipe = errors.New("database: invalid swipe")
)

// closeQuietly closes a resource ignoring errors (cleanup paths only).
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
