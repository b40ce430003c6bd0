// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package recommend

import (
	"fmt"
	"math"
	"time"
)

// Config contains all configuration for the recommendation service.
type Config struct {
	// Weights defines the content/collaborative blend.
	Weights BlendWeights `json:"weights"`

	// Limits contains result size limits.
	Limits LimitsConfig `json:"limits"`

	// Cache contains caching parameters.
	Cache CacheConfig `json:"cache"`
}

// BlendWeights are the coefficients of the final score.
type BlendWeights struct {
	Content       float64 `json:"content"`
	Collaborative float64 `json:"collaborative"`
}

// LimitsConfig bounds result sizes.
type LimitsConfig struct {
	// DefaultTopN is used when a request asks for zero or fewer results.
	DefaultTopN int `json:"default_top_n"`

	// MaxTopN caps any request.
	MaxTopN int `json:"max_top_n"`
}

// CacheConfig controls the recommendation result cache.
type CacheConfig struct {
	Enabled bool          `json:"enabled"`
	TTL     time.Duration `json:"ttl"`

	// MaxEntries bounds the cache; the oldest entries are evicted first.
	MaxEntries int `json:"max_entries"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights: BlendWeights{
			Content:       0.7,
			Collaborative: 0.3,
		},
		Limits: LimitsConfig{
			DefaultTopN: 10,
			MaxTopN:     100,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        time.Minute,
			MaxEntries: 1024,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Weights.Content < 0 || c.Weights.Collaborative < 0 {
		return fmt.Errorf("blend weights must be non-negative, got %f/%f", c.Weights.Content, c.Weights.Collaborative)
	}
	if math.IsNaN(c.Weights.Content) || math.IsNaN(c.Weights.Collaborative) {
		return fmt.Errorf("blend weights must be numbers")
	}
	if c.Limits.DefaultTopN < 1 {
		return fmt.Errorf("limits.default_top_n must be positive, got %d", c.Limits.DefaultTopN)
	}
	if c.Limits.MaxTopN < c.Limits.DefaultTopN {
		return fmt.Errorf("limits.max_top_n (%d) must be >= default_top_n (%d)", c.Limits.MaxTopN, c.Limits.DefaultTopN)
	}
	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive when cache is enabled, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// resolveTopN applies the default and the cap.
func (c *Config) resolveTopN(topN int) int {
	if topN <= 0 {
		topN = c.Limits.DefaultTopN
	}
	if topN > c.Limits.MaxTopN {
		topN = c.Limits.MaxTopN
	}
	return topN
}
