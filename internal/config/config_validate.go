// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package config

import (
	"fmt"
	"strings"
)

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateFeedback(); err != nil {
		return err
	}
	if err := c.validateSessions(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	return c.validateSecurity()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if c.Catalog.DefaultPath == "" {
		return fmt.Errorf("CATALOG_PATH is required")
	}
	if c.Catalog.UploadPath == "" {
		return fmt.Errorf("CATALOG_UPLOAD_PATH is required")
	}
	if c.Catalog.MaxUploadBytes <= 0 {
		return fmt.Errorf("CATALOG_MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

func (c *Config) validateFeedback() error {
	switch c.Feedback.Backend {
	case FeedbackBackendJSON:
		if c.Feedback.JSONPath == "" {
			return fmt.Errorf("FEEDBACK_JSON_PATH is required when FEEDBACK_BACKEND=json")
		}
	case FeedbackBackendDuckDB:
		// An empty DuckDB path opens an in-memory database.
	default:
		return fmt.Errorf("FEEDBACK_BACKEND must be one of: json, duckdb (got %q)", c.Feedback.Backend)
	}
	if c.Feedback.BreakerMaxFailures == 0 {
		return fmt.Errorf("FEEDBACK_BREAKER_MAX_FAILURES must be at least 1")
	}
	return nil
}

func (c *Config) validateSessions() error {
	if !c.Sessions.Enabled {
		return nil
	}
	if !c.Sessions.InMemory && c.Sessions.Path == "" {
		return fmt.Errorf("SESSIONS_PATH is required unless SESSIONS_IN_MEMORY=true")
	}
	if c.Sessions.RecentLimit < 1 {
		return fmt.Errorf("SESSIONS_RECENT_LIMIT must be at least 1")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.DefaultTopN < 1 {
		return fmt.Errorf("RECOMMEND_DEFAULT_TOP_N must be at least 1")
	}
	if c.Recommend.MaxTopN < c.Recommend.DefaultTopN {
		return fmt.Errorf("RECOMMEND_MAX_TOP_N (%d) must be >= RECOMMEND_DEFAULT_TOP_N (%d)",
			c.Recommend.MaxTopN, c.Recommend.DefaultTopN)
	}
	if c.Recommend.CacheTTL < 0 {
		return fmt.Errorf("RECOMMEND_CACHE_TTL must not be negative")
	}
	if c.Recommend.RetrainInterval < 0 {
		return fmt.Errorf("RECOMMEND_RETRAIN_INTERVAL must not be negative")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}
