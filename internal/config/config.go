// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Feedback  FeedbackConfig  `koanf:"feedback"`
	Sessions  SessionsConfig  `koanf:"sessions"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json (production) or console (development).
	Format string `koanf:"format"`

	// Caller adds file:line to every log line.
	Caller bool `koanf:"caller"`
}

// CatalogConfig locates the song datasets.
type CatalogConfig struct {
	// DefaultPath is the bundled catalog CSV.
	DefaultPath string `koanf:"default_path"`

	// UploadPath is where an uploaded CSV is stored.
	UploadPath string `koanf:"upload_path"`

	// StatePath persists which source (default or user) is active.
	StatePath string `koanf:"state_path"`

	// MaxUploadBytes caps the size of an uploaded CSV.
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`
}

// FeedbackConfig selects and tunes the feedback log backend.
type FeedbackConfig struct {
	// Backend is "json" (single JSON array file) or "duckdb".
	Backend    string `koanf:"backend"`
	JSONPath   string `koanf:"json_path"`
	DuckDBPath string `koanf:"duckdb_path"`

	// BreakerMaxFailures is the consecutive failure count that opens the
	// circuit breaker around the backend.
	BreakerMaxFailures uint32        `koanf:"breaker_max_failures"`
	BreakerTimeout     time.Duration `koanf:"breaker_timeout"`
}

// SessionsConfig controls the BadgerDB user session log.
type SessionsConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Path        string `koanf:"path"`
	InMemory    bool   `koanf:"in_memory"`
	RecentLimit int    `koanf:"recent_limit"`
}

// RecommendConfig tunes the recommendation service.
type RecommendConfig struct {
	DefaultTopN int           `koanf:"default_top_n"`
	MaxTopN     int           `koanf:"max_top_n"`
	CacheTTL    time.Duration `koanf:"cache_ttl"`

	// RetrainInterval schedules periodic retraining; 0 disables the schedule.
	RetrainInterval time.Duration `koanf:"retrain_interval"`

	// RetrainOnFeedback retrains after every recorded feedback event.
	RetrainOnFeedback bool `koanf:"retrain_on_feedback"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// Feedback backends.
const (
	FeedbackBackendJSON   = "json"
	FeedbackBackendDuckDB = "duckdb"
)

// Load reads configuration from defaults, config file and environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
