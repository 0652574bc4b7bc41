// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds the proxy server configuration.
type Config struct {
	Server      ServerConfig      `koanf:"server"`
	TMDB        TMDBConfig        `koanf:"tmdb"`
	Recommender RecommenderConfig `koanf:"recommender"`
	Database    DatabaseConfig    `koanf:"database"`
	NATS        NATSConfig        `koanf:"nats"`
	Security    SecurityConfig    `koanf:"security"`
	Logging     LoggingConfig     `koanf:"logging"`
	Recs        RecsConfig        `koanf:"recs"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// TMDBConfig holds settings for the movie metadata API.
type TMDBConfig struct {
	APIKey       string        `koanf:"api_key"`
	BaseURL      string        `koanf:"base_url"`
	ImageBaseURL string        `koanf:"image_base_url"`
	PosterSize   string        `koanf:"poster_size"`
	Language     string        `koanf:"language"`
	Timeout      time.Duration `koanf:"timeout"`
	RateLimit    float64       `koanf:"rate_limit"` // requests per second, 0 = unlimited
	RateBurst    int           `koanf:"rate_burst"`
	CacheTTL     time.Duration `koanf:"cache_ttl"`
}

// RecommenderConfig holds settings for the external recommendation service.
type RecommenderConfig struct {
	URL     string        `koanf:"url"`
	APIKey  string        `koanf:"api_key"`
	Timeout time.Duration `koanf:"timeout"`
}

// DatabaseConfig selects and configures the swipe/user store.
type DatabaseConfig struct {
	Driver string `koanf:"driver"` // duckdb or postgres

	// DuckDB
	Path string `koanf:"path"`

	// Postgres. URL wins over the discrete fields when set.
	URL      string `koanf:"url"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Name     string `koanf:"name"`
	SSLMode  string `koanf:"sslmode"`
	MaxConns int32  `koanf:"max_conns"`
	MinConns int32  `koanf:"min_conns"`
}

// PostgresDSN returns the connection string for the postgres driver.
func (d DatabaseConfig) PostgresDSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   "/" + d.Name,
	}
	if d.SSLMode != "" {
		u.RawQuery = "sslmode=" + url.QueryEscape(d.SSLMode)
	}
	return u.String()
}

// NATSConfig holds swipe event publishing settings.
type NATSConfig struct {
	Enabled       bool          `koanf:"enabled"`
	URL           string        `koanf:"url"`
	Topic         string        `koanf:"topic"`
	JetStream     bool          `koanf:"jetstream"`
	MaxReconnects int           `koanf:"max_reconnects"`
	ReconnectWait time.Duration `koanf:"reconnect_wait"`

	// JetStream stream created before the publisher starts.
	StreamName      string        `koanf:"stream_name"`
	StreamMaxAge    time.Duration `koanf:"stream_max_age"`
	DuplicateWindow time.Duration `koanf:"duplicate_window"`
}

// SecurityConfig holds CORS and inbound rate limit settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig mirrors logging.Config for the loadable fields.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// RecsConfig holds the aggregation parameters used by the feed endpoint.
type RecsConfig struct {
	TargetCount     int           `koanf:"target_count"`
	InitialPageSize int           `koanf:"initial_page_size"`
	PageIncrement   int           `koanf:"page_increment"`
	MaxPages        int           `koanf:"max_pages"`
	FetchTimeout    time.Duration `koanf:"fetch_timeout"`
}

// IsProduction reports whether the server runs with ENVIRONMENT=production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// ClientConfig holds the terminal client settings.
type ClientConfig struct {
	BaseURL string        `koanf:"base_url"`
	UserID  int           `koanf:"user_id"`
	Timeout time.Duration `koanf:"timeout"`
	Logging LoggingConfig `koanf:"logging"`
}
