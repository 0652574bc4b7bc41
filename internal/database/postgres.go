// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tomtom215/moviematch/internal/config"
	"github.com/tomtom215/moviematch/internal/logging"
	"github.com/tomtom215/moviematch/internal/models"
)

// pgxPool is the subset of *pgxpool.Pool used by PostgresStore. pgxmock
// pools satisfy it in tests.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore is the Store backed by a pgx connection pool.
type PostgresStore struct {
	pool pgxPool
}

// OpenPostgres connects, pings and ensures the schema exists.
func OpenPostgres(ctx context.Context, cfg *config.DatabaseConfig) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.PostgresDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	s := newPostgresStore(pool)
	if err := s.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	logging.Info().Str("driver", DriverPostgres).Str("host", poolCfg.ConnConfig.Host).Msg("Database ready")
	return s, nil
}

func newPostgresStore(pool pgxPool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates missing tables. Existing tables are left untouched.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	for _, stmt := range postgresSchema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// RecordSwipe implements Store.
func (s *PostgresStore) RecordSwipe(ctx context.Context, sw models.Swipe) (err error) {
	if err := validateSwipe(&sw); err != nil {
		return err
	}
	if sw.CreatedAt.IsZero() {
		sw.CreatedAt = time.Now().UTC()
	}

	start := time.Now()
	defer func() { observe(DriverPostgres, "record_swipe", start, err) }()

	if _, err = s.pool.Exec(ctx, insertSwipeSQL, sw.UserID, sw.MovieID, sw.Direction, sw.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert swipe: %w", err)
	}
	return nil
}

// ImportOrGetUserID implements Store.
func (s *PostgresStore) ImportOrGetUserID(ctx context.Context, firebaseUID, displayName string) (id int, err error) {
	start := time.Now()
	defer func() { observe(DriverPostgres, "import_user", start, err) }()

	var id32 int32
	err = s.pool.QueryRow(ctx, upsertUserSQL, firebaseUID, nullableString(displayName)).Scan(&id32)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to upsert user: %w", err)
	}
	return int(id32), nil
}

// Ping implements Store.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Driver implements Store.
func (s *PostgresStore) Driver() string { return DriverPostgres }

// Close implements Store.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
