// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package database

// DuckDB has no SERIAL type; ids come from sequences.
var duckdbSchema = []string{
	`CREATE SEQUENCE IF NOT EXISTS users_id_seq START 1`,
	`CREATE SEQUENCE IF NOT EXISTS swipes_id_seq START 1`,
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY DEFAULT nextval('users_id_seq'),
		firebase_uid VARCHAR NOT NULL UNIQUE,
		display_name VARCHAR,
		created_at TIMESTAMP DEFAULT current_timestamp
	)`,
	`CREATE TABLE IF NOT EXISTS swipes (
		id BIGINT PRIMARY KEY DEFAULT nextval('swipes_id_seq'),
		user_id INTEGER NOT NULL,
		movie_id INTEGER NOT NULL,
		direction VARCHAR NOT NULL CHECK (direction IN ('like', 'dislike')),
		created_at TIMESTAMP DEFAULT current_timestamp
	)`,
	`CREATE INDEX IF NOT EXISTS idx_swipes_user ON swipes (user_id)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		firebase_uid TEXT NOT NULL UNIQUE,
		display_name TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS swipes (
		id BIGSERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL,
		movie_id INTEGER NOT NULL,
		direction TEXT NOT NULL CHECK (direction IN ('like', 'dislike')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_swipes_user ON swipes (user_id)`,
}

const (
	insertSwipeSQL = `INSERT INTO swipes (user_id, movie_id, direction, created_at) VALUES ($1, $2, $3, $4)`

	upsertUserSQL = `INSERT INTO users (firebase_uid, display_name)
		VALUES ($1, $2)
		ON CONFLICT (firebase_uid) DO UPDATE
			SET display_name = EXCLUDED.display_name
		RETURNING id`
)
