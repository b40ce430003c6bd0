// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package recommend

import (
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/setlist/internal/metrics"
	"github.com/tomtom215/setlist/internal/models"
)

const cacheType = "recommend"

// cacheEntry holds a cached recommendation response.
type cacheEntry struct {
	songs     []models.Song
	expiresAt time.Time
	storedAt  time.Time
}

// resultCache is a TTL cache of ranked results. Keys embed the catalog and
// profile versions, so a reload or retrain makes older entries unreachable;
// purge drops them eagerly.
type resultCache struct {
	mu         sync.RWMutex
	entries    map[string]cacheEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

func newResultCache(cfg CacheConfig) *resultCache {
	if !cfg.Enabled {
		return nil
	}
	return &resultCache{
		entries:    make(map[string]cacheEntry),
		ttl:        cfg.TTL,
		maxEntries: cfg.MaxEntries,
		now:        time.Now,
	}
}

func cacheKey(catalogVersion, profileVersion uint64, topN int, prefs models.Preferences) string {
	return fmt.Sprintf("rec:%d:%d:%d:%s", catalogVersion, profileVersion, topN, prefs.Key())
}

// get returns a copy of a live entry.
func (c *resultCache) get(key string) ([]models.Song, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().After(entry.expiresAt) {
		metrics.RecordCacheLookup(cacheType, false)
		return nil, false
	}
	metrics.RecordCacheLookup(cacheType, true)
	return copySongs(entry.songs), true
}

func (c *resultCache) put(key string, songs []models.Song) {
	if c == nil {
		return
	}
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxEntries {
		c.evictLocked(now)
	}
	c.entries[key] = cacheEntry{
		songs:     copySongs(songs),
		expiresAt: now.Add(c.ttl),
		storedAt:  now,
	}
	metrics.CacheSize.WithLabelValues(cacheType).Set(float64(len(c.entries)))
}

// evictLocked drops expired entries, then the oldest one if still full.
func (c *resultCache) evictLocked(now time.Time) {
	var oldestKey string
	var oldest time.Time
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
			continue
		}
		if oldestKey == "" || e.storedAt.Before(oldest) {
			oldestKey, oldest = k, e.storedAt
		}
	}
	if len(c.entries) >= c.maxEntries && oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

func (c *resultCache) purge() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
	metrics.CacheSize.WithLabelValues(cacheType).Set(0)
}

func (c *resultCache) len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func copySongs(songs []models.Song) []models.Song {
	out := make([]models.Song, len(songs))
	copy(out, songs)
	return out
}
