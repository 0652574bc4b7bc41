// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

/*
Package config loads and validates MovieMatch configuration.

Configuration is layered with Koanf v2, highest priority last:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file (CONFIG_PATH, ./config.yaml, /etc/moviematch/config.yaml)
 3. Environment variables mapped through envTransformFunc

The proxy server reads the historical variable names of the original
deployment (TMDB_API_KEY, AI_SERVICE_BASE, AI_SERVICE_KEY, PG_*, PORT) as
well as the structured names (RECOMMENDER_URL, DATABASE_DRIVER, ...).

The terminal client has its own, much smaller configuration loaded by
LoadClient from MOVIEMATCH_* variables.

Example config.yaml:

	server:
	  port: 3000
	tmdb:
	  api_key: "..."
	recommender:
	  url: "https://recs.example.com"
	  api_key: "..."
	database:
	  driver: postgres
	  host: db
	  name: movieswipe
	nats:
	  enabled: true
	  url: nats://nats:4222
*/
package config
