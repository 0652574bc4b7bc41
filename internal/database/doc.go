// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

/*
Package database stores swipes and the Firebase UID to user id mapping.

Drivers:
  - duckdb: embedded file database (default). The schema is created on open.
  - postgres: pgx/v5 connection pool against the original swipes/users tables.

Both drivers implement Store:

	store, err := database.Open(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.ImportOrGetUserID(ctx, "firebase-uid", "Ada")

User import is an upsert keyed on firebase_uid that always returns the row id,
so repeated logins map to the same small integer.

Every query is timed into db_query_duration_seconds and failures
counted by driver and operation.
*/
package database
