// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateTMDB,
		c.validateRecommender,
		c.validateDatabase,
		c.validateNATS,
		c.validateSecurity,
		c.validateLogging,
		c.validateRecs,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	return nil
}

func (c *Config) validateTMDB() error {
	if c.TMDB.APIKey == "" {
		return fmt.Errorf("TMDB_API_KEY is required")
	}
	if err := validateHTTPURL(c.TMDB.BaseURL, "TMDB_BASE_URL"); err != nil {
		return err
	}
	if c.TMDB.RateLimit < 0 {
		return fmt.Errorf("TMDB_RATE_LIMIT must be >= 0, got %v", c.TMDB.RateLimit)
	}
	if c.TMDB.RateLimit > 0 && c.TMDB.RateBurst < 1 {
		return fmt.Errorf("TMDB_RATE_BURST must be at least 1 when a rate limit is set")
	}
	return nil
}

func (c *Config) validateRecommender() error {
	if c.Recommender.URL == "" || c.Recommender.APIKey == "" {
		return fmt.Errorf("AI_SERVICE_BASE and AI_SERVICE_KEY (or RECOMMENDER_URL and RECOMMENDER_API_KEY) are required")
	}
	return validateHTTPURL(c.Recommender.URL, "RECOMMENDER_URL")
}

func (c *Config) validateDatabase() error {
	switch c.Database.Driver {
	case "duckdb":
		if c.Database.Path == "" {
			return fmt.Errorf("DUCKDB_PATH is required for the duckdb driver")
		}
	case "postgres":
		if c.Database.URL == "" && (c.Database.Host == "" || c.Database.Name == "") {
			return fmt.Errorf("DATABASE_URL or PG_HOST and PG_DATABASE are required for the postgres driver")
		}
		if c.Database.MinConns > c.Database.MaxConns {
			return fmt.Errorf("DATABASE_MIN_CONNS (%d) exceeds DATABASE_MAX_CONNS (%d)", c.Database.MinConns, c.Database.MaxConns)
		}
	default:
		return fmt.Errorf("DATABASE_DRIVER must be duckdb or postgres, got %q", c.Database.Driver)
	}
	return nil
}

func (c *Config) validateNATS() error {
	if !c.NATS.Enabled {
		return nil
	}
	if c.NATS.Topic == "" {
		return fmt.Errorf("NATS_TOPIC must not be empty")
	}
	if err := validateNATSURL(c.NATS.URL); err != nil {
		return fmt.Errorf("invalid NATS_URL: %w", err)
	}
	if c.NATS.JetStream && (c.NATS.StreamName == "" || strings.ContainsAny(c.NATS.StreamName, ".*> ")) {
		return fmt.Errorf("NATS_STREAM_NAME %q must be non-empty and free of '.', '*', '>' and spaces", c.NATS.StreamName)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "disabled", "off":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateRecs() error {
	r := c.Recs
	if r.TargetCount < 1 || r.InitialPageSize < 1 || r.PageIncrement < 1 {
		return fmt.Errorf("RECS_TARGET_COUNT, RECS_INITIAL_PAGE_SIZE and RECS_PAGE_INCREMENT must be positive")
	}
	if r.MaxPages < 1 {
		return fmt.Errorf("RECS_MAX_PAGES must be positive, got %d", r.MaxPages)
	}
	return nil
}

// ShouldWarnAboutCORS reports a wildcard origin in production.
func (c *Config) ShouldWarnAboutCORS() bool {
	if !c.IsProduction() {
		return false
	}
	for _, o := range c.Security.CORSOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

// validateHTTPURL validates an http(s) base URL: scheme, host, no query.
// A path is allowed since services are often mounted under a prefix.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %q", fieldName, parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}
	return nil
}

func validateNATSURL(rawURL string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}
	validSchemes := map[string]bool{"nats": true, "tls": true, "ws": true, "wss": true}
	if !validSchemes[parsedURL.Scheme] {
		return fmt.Errorf("scheme must be nats, tls, ws, or wss, got: %s", parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("host is required (e.g., localhost:4222)")
	}
	return nil
}
