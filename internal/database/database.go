// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/moviematch/internal/config"
	"github.com/tomtom215/moviematch/internal/metrics"
	"github.com/tomtom215/moviematch/internal/models"
)

// Supported values of database.driver.
const (
	DriverDuckDB   = "duckdb"
	DriverPostgres = "postgres"
)

// Store persists swipes and user identities.
type Store interface {
	// RecordSwipe inserts one swipe row.
	RecordSwipe(ctx context.Context, s models.Swipe) error

	// ImportOrGetUserID upserts the user keyed by firebaseUID and returns its id.
	// An empty displayName is stored as NULL.
	ImportOrGetUserID(ctx context.Context, firebaseUID, displayName string) (int, error)

	// Ping checks connectivity for readiness probes.
	Ping(ctx context.Context) error

	// Driver names the backing driver.
	Driver() string

	Close() error
}

// Open connects the configured driver and ensures the schema exists.
func Open(ctx context.Context, cfg *config.DatabaseConfig) (Store, error) {
	switch cfg.Driver {
	case DriverDuckDB, "":
		return OpenDuckDB(ctx, cfg.Path)
	case DriverPostgres:
		return OpenPostgres(ctx, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

func validateSwipe(s *models.Swipe) error {
	if s.UserID <= 0 || s.MovieID <= 0 {
		return fmt.Errorf("%w: user and movie ids must be positive", ErrInvalidSwipe)
	}
	if s.Direction != models.DirectionLike && s.Direction != models.DirectionDislike {
		return fmt.Errorf("%w: direction %q", ErrInvalidSwipe, s.Direction)
	}
	return nil
}

// nullableString maps "" to a SQL NULL.
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// observe records the duration and outcome of one query.
func observe(driver, operation string, start time.Time, err error) {
	metrics.RecordDBQuery(driver, operation, time.Since(start), err)
}
