// MovieMatch - Swipe-based movie discovery proxy and client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config file locations searched in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/moviematch/config.yaml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// ClientEnvPrefix is the environment prefix of the terminal client.
const ClientEnvPrefix = "MOVIEMATCH_"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            3000,
			Host:            "0.0.0.0",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		TMDB: TMDBConfig{
			BaseURL:      "https://api.themoviedb.org",
			ImageBaseURL: "https://image.tmdb.org/t/p",
			PosterSize:   "w500",
			Language:     "en-US",
			Timeout:      30 * time.Second,
			RateLimit:    40,
			RateBurst:    10,
			CacheTTL:     10 * time.Minute,
		},
		Recommender: RecommenderConfig{
			Timeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:   "duckdb",
			Path:     "moviematch.duckdb",
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Name:     "movieswipe",
			SSLMode:  "disable",
			MaxConns: 10,
			MinConns: 2,
		},
		NATS: NATSConfig{
			Enabled:       false,
			URL:           "nats://127.0.0.1:4222",
			Topic:         "swipe.recorded",
			JetStream:     true,
			MaxReconnects: 10,
			ReconnectWait: 2 * time.Second,

			StreamName:      "SWIPES",
			StreamMaxAge:    7 * 24 * time.Hour,
			DuplicateWindow: 2 * time.Minute,
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Recs: RecsConfig{
			TargetCount:     50,
			InitialPageSize: 11,
			PageIncrement:   6,
			MaxPages:        10,
			FetchTimeout:    20 * time.Second,
		},
	}
}

func defaultClientConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: "http://localhost:3000",
		Timeout: 30 * time.Second,
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load builds the server configuration from defaults, the optional config
// file and the environment, then validates it.
//
// Precedence: ENV > File > Defaults.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadClient builds the terminal client configuration from defaults and
// MOVIEMATCH_* variables (MOVIEMATCH_BASE_URL -> base_url).
func LoadClient() (*ClientConfig, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultClientConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	transform := func(key string) string {
		key = strings.ToLower(strings.TrimPrefix(key, ClientEnvPrefix))
		switch key {
		case "log_level":
			return "logging.level"
		case "log_format":
			return "logging.format"
		}
		return key
	}
	if err := k.Load(env.Provider(ClientEnvPrefix, ".", transform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &ClientConfig{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := validateHTTPURL(cfg.BaseURL, "MOVIEMATCH_BASE_URL"); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated strings into slices for the
// known slice paths; YAML lists are left untouched.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to config paths.
// Both the historical deployment names and the structured names are accepted.
var envMappings = map[string]string{
	// Server
	"port":             "server.port",
	"http_port":        "server.port",
	"http_host":        "server.host",
	"server_timeout":   "server.write_timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	// TMDB
	"tmdb_api_key":        "tmdb.api_key",
	"tmdb_base_url":       "tmdb.base_url",
	"tmdb_image_base_url": "tmdb.image_base_url",
	"tmdb_poster_size":    "tmdb.poster_size",
	"tmdb_language":       "tmdb.language",
	"tmdb_timeout":        "tmdb.timeout",
	"tmdb_rate_limit":     "tmdb.rate_limit",
	"tmdb_rate_burst":     "tmdb.rate_burst",
	"tmdb_cache_ttl":      "tmdb.cache_ttl",

	// Recommender
	"ai_service_base":     "recommender.url",
	"ai_service_key":      "recommender.api_key",
	"recommender_url":     "recommender.url",
	"recommender_api_key": "recommender.api_key",
	"recommender_timeout": "recommender.timeout",

	// Database
	"database_driver":    "database.driver",
	"duckdb_path":        "database.path",
	"database_url":       "database.url",
	"pg_host":            "database.host",
	"pg_port":            "database.port",
	"pg_user":            "database.user",
	"pg_password":        "database.password",
	"pg_database":        "database.name",
	"pg_sslmode":         "database.sslmode",
	"database_max_conns": "database.max_conns",
	"database_min_conns": "database.min_conns",

	// NATS
	"nats_enabled":          "nats.enabled",
	"nats_url":              "nats.url",
	"nats_topic":            "nats.topic",
	"nats_jetstream":        "nats.jetstream",
	"nats_max_reconnects":   "nats.max_reconnects",
	"nats_reconnect_wait":   "nats.reconnect_wait",
	"nats_stream_name":      "nats.stream_name",
	"nats_stream_max_age":   "nats.stream_max_age",
	"nats_duplicate_window": "nats.duplicate_window",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Aggregation
	"recs_target_count":      "recs.target_count",
	"recs_initial_page_size": "recs.initial_page_size",
	"recs_page_increment":    "recs.page_increment",
	"recs_max_pages":         "recs.max_pages",
	"recs_fetch_timeout":     "recs.fetch_timeout",
}

// envTransformFunc maps an environment variable name to its koanf path.
// Unknown variables map to "" and are ignored by the provider.
//
// Examples:
//   - TMDB_API_KEY -> tmdb.api_key
//   - AI_SERVICE_BASE -> recommender.url
//   - PG_DATABASE -> database.name
func envTransformFunc(key string) string {
	if path, ok := envMappings[strings.ToLower(key)]; ok {
		return path
	}
	return ""
}
