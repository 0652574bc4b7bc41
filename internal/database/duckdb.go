// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // registers the "duckdb" driver

	"github.com/tomtom215/moviematch/internal/logging"
	"github.com/tomtom215/moviematch/internal/models"
)

// DuckDBStore is the embedded Store.
type DuckDBStore struct {
	conn *sql.DB
}

// OpenDuckDB opens (or creates) the database at path. An empty path or
// ":memory:" opens an in-memory database.
func OpenDuckDB(ctx context.Context, path string) (*DuckDBStore, error) {
	dsn := path
	if path == ":memory:" {
		dsn = ""
	}
	if dsn != "" {
		if dir := filepath.Dir(dsn); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
			}
		}
	}

	conn, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}

	conn.SetMaxOpenConns(runtime.NumCPU())
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(time.Hour)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	s := &DuckDBStore{conn: conn}
	if err := s.initialize(ctx); err != nil {
		closeQuietly(conn)
		return nil, err
	}

	logging.Info().Str("driver", DriverDuckDB).Str("path", path).Msg("Database ready")
	return s, nil
}

func (s *DuckDBStore) initialize(ctx context.Context) error {
	for _, stmt := range duckdbSchema {
		if _, err := s.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// RecordSwipe implements Store.
func (s *DuckDBStore) RecordSwipe(ctx context.Context, sw models.Swipe) (err error) {
	if err := validateSwipe(&sw); err != nil {
		return err
	}
	if sw.CreatedAt.IsZero() {
		sw.CreatedAt = time.Now().UTC()
	}

	start := time.Now()
	defer func() { observe(DriverDuckDB, "record_swipe", start, err) }()

	if _, err = s.conn.ExecContext(ctx, insertSwipeSQL, sw.UserID, sw.MovieID, sw.Direction, sw.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert swipe: %w", err)
	}
	return nil
}

// ImportOrGetUserID implements Store.
func (s *DuckDBStore) ImportOrGetUserID(ctx context.Context, firebaseUID, displayName string) (id int, err error) {
	start := time.Now()
	defer func() { observe(DriverDuckDB, "import_user", start, err) }()

	err = s.conn.QueryRowContext(ctx, upsertUserSQL, firebaseUID, nullableString(displayName)).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to upsert user: %w", err)
	}
	return id, nil
}

// CountSwipes returns the number of swipes stored for userID.
func (s *DuckDBStore) CountSwipes(ctx context.Context, userID int) (int, error) {
	var n int
	if err := s.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM swipes WHERE user_id = $1`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count swipes: %w", err)
	}
	return n, nil
}

// Ping implements Store.
func (s *DuckDBStore) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

// Driver implements Store.
func (s *DuckDBStore) Driver() string { return DriverDuckDB }

// Close implements Store.
func (s *DuckDBStore) Close() error {
	return s.conn.Close()
}
