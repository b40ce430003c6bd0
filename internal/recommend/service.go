// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package recommend

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/setlist/internal/catalog"
	"github.com/tomtom215/setlist/internal/feedback"
	"github.com/tomtom215/setlist/internal/logging"
	"github.com/tomtom215/setlist/internal/metrics"
	"github.com/tomtom215/setlist/internal/models"
)

// FeedbackSource supplies the full feedback log for retraining.
// It is typically implemented by a feedback.Store.
type FeedbackSource interface {
	All(ctx context.Context) ([]models.FeedbackEntry, error)
}

type catalogSnapshot struct {
	catalog  *catalog.Catalog
	version  uint64
	source   string
	loadedAt time.Time
}

type profileSnapshot struct {
	profiles  *ProfileSet
	version   uint64
	trainedAt time.Time
}

// Status describes the active snapshots.
type Status struct {
	CatalogLoaded  bool      `json:"catalog_loaded"`
	Items          int       `json:"items"`
	CatalogVersion uint64    `json:"catalog_version"`
	CatalogSource  string    `json:"catalog_source,omitempty"`
	LoadedAt       time.Time `json:"loaded_at,omitempty"`
	Profiles       int       `json:"profiles"`
	ProfileVersion uint64    `json:"profile_version"`
	TrainedAt      time.Time `json:"trained_at,omitempty"`
}

// Metrics contains service counters.
type Metrics struct {
	RequestCount int64 `json:"request_count"`
	CacheHits    int64 `json:"cache_hits"`
	CacheMisses  int64 `json:"cache_misses"`
	ErrorCount   int64 `json:"error_count"`
	CacheEntries int   `json:"cache_entries"`
}

// Service answers recommendation queries against immutable snapshots.
// It is safe for concurrent use.
type Service struct {
	config   *Config
	logger   zerolog.Logger
	feedback FeedbackSource

	catalog  atomic.Pointer[catalogSnapshot]
	profiles atomic.Pointer[profileSnapshot]

	// writeMu serializes ReloadCatalog, InstallCatalog and Retrain.
	writeMu sync.Mutex

	cache *resultCache

	requestCount atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	errorCount   atomic.Int64
}

// NewService creates a service with an empty profile set and no catalog.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(cfg *Config, source FeedbackSource, logger zerolog.Logger) (*Service, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	s := &Service{
		config:   cfg,
		logger:   logger.With().Str("component", "recommend").Logger(),
		feedback: source,
		cache:    newResultCache(cfg.Cache),
	}
	s.profiles.Store(&profileSnapshot{profiles: &ProfileSet{}})
	return s, nil
}

// ReloadCatalog loads the dataset at path and atomically replaces the active
// catalog. On failure the previous catalog stays in effect.
func (s *Service) ReloadCatalog(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cat, err := catalog.LoadFile(path)
	if err != nil {
		metrics.RecordCatalogReload(0, err)
		s.logger.Error().Err(err).Str("path", path).Msg("catalog reload failed")
		return err
	}
	s.InstallCatalog(cat, path)
	return nil
}

// InstallCatalog publishes an already loaded catalog.
func (s *Service) InstallCatalog(cat *catalog.Catalog, source string) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var version uint64 = 1
	if prev := s.catalog.Load(); prev != nil {
		version = prev.version + 1
	}
	s.catalog.Store(&catalogSnapshot{
		catalog:  cat,
		version:  version,
		source:   source,
		loadedAt: time.Now(),
	})
	s.cache.purge()
	metrics.RecordCatalogReload(cat.Len(), nil)

	s.logger.Info().
		Str("source", source).
		Int("items", cat.Len()).
		Uint64("version", version).
		Msg("catalog loaded")
}

// Retrain rebuilds the profile set from the feedback source. On failure the
// previous profile set stays in effect.
func (s *Service) Retrain(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	start := time.Now()
	var entries []models.FeedbackEntry
	if s.feedback != nil {
		var err error
		entries, err = s.feedback.All(ctx)
		if err != nil {
			metrics.RecordRetrain(time.Since(start), 0, err)
			s.logger.Error().Err(err).Msg("retrain failed: load feedback")
			return fmt.Errorf("load feedback: %w", err)
		}
	}

	set := BuildProfiles(entries)
	prev := s.profiles.Load()
	s.profiles.Store(&profileSnapshot{
		profiles:  set,
		version:   prev.version + 1,
		trainedAt: time.Now(),
	})
	s.cache.purge()
	metrics.RecordRetrain(time.Since(start), set.Len(), nil)

	s.logger.Info().
		Int("feedback_entries", len(entries)).
		Int("profiles", set.Len()).
		Uint64("version", prev.version+1).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("profiles rebuilt")
	return nil
}

// Train is Retrain under the name used by the scheduled retrain service.
func (s *Service) Train(ctx context.Context) error {
	return s.Retrain(ctx)
}

// loadCatalog returns the active snapshot or ErrCatalogNotLoaded.
func (s *Service) loadCatalog() (*catalogSnapshot, error) {
	snap := s.catalog.Load()
	if snap == nil {
		return nil, ErrCatalogNotLoaded
	}
	return snap, nil
}

// VectorizeAndScore returns the normalized content score of every song for
// prefs, in catalog order.
func (s *Service) VectorizeAndScore(ctx context.Context, prefs models.Preferences) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap, err := s.loadCatalog()
	if err != nil {
		return nil, err
	}
	return ContentScores(snap.catalog, Vectorize(snap.catalog, prefs)), nil
}

// Recommend ranks the catalog for prefs and returns the best topN songs.
// topN <= 0 selects the configured default.
func (s *Service) Recommend(ctx context.Context, prefs models.Preferences, topN int) ([]models.Song, error) {
	start := time.Now()
	s.requestCount.Add(1)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap, err := s.loadCatalog()
	if err != nil {
		s.errorCount.Add(1)
		return nil, err
	}
	profiles := s.profiles.Load()
	topN = s.config.resolveTopN(topN)

	logger := s.logger.With().
		Str("request_id", logging.RequestIDFromContext(ctx)).
		Int("top_n", topN).
		Logger()

	key := cacheKey(snap.version, profiles.version, topN, prefs)
	if songs, ok := s.cache.get(key); ok {
		s.cacheHits.Add(1)
		logger.Debug().Msg("cache hit")
		return songs, nil
	}
	s.cacheMisses.Add(1)

	cat := snap.catalog
	content := ContentScores(cat, Vectorize(cat, prefs))

	best, matched := profiles.profiles.Best(prefs)
	collab := CollaborativeScores(cat.Len(), best)

	ranked := rankTop(Blend(content, collab, s.config.Weights), topN, -1)
	songs := make([]models.Song, len(ranked))
	for i, r := range ranked {
		songs[i] = scoredSong(cat, r)
	}
	s.cache.put(key, songs)

	metrics.RecordRecommend("recommend", time.Since(start))
	logger.Debug().
		Bool("profile_matched", matched).
		Int("returned", len(songs)).
		Msg("recommendation complete")

	return songs, nil
}

// SimilarItems returns the topN songs most similar to the song with the
// given id. Unknown, non-numeric and out-of-range ids yield an empty list.
func (s *Service) SimilarItems(ctx context.Context, id string, topN int) ([]models.Song, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap, err := s.loadCatalog()
	if err != nil {
		return nil, err
	}
	songs := similarTo(snap.catalog, id, s.config.resolveTopN(topN))
	metrics.RecordRecommend("similar", time.Since(start))
	return songs, nil
}

// Song returns a single song by id.
func (s *Service) Song(id string) (models.Song, error) {
	snap, err := s.loadCatalog()
	if err != nil {
		return models.Song{}, err
	}
	idx, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil {
		return models.Song{}, fmt.Errorf("%w: %q", ErrItemNotFound, id)
	}
	it, ok := snap.catalog.Item(idx)
	if !ok {
		return models.Song{}, fmt.Errorf("%w: %q", ErrItemNotFound, id)
	}
	return ToSong(it), nil
}

// Songs returns every catalog song in catalog order, without scores.
func (s *Service) Songs() ([]models.Song, error) {
	snap, err := s.loadCatalog()
	if err != nil {
		return nil, err
	}
	songs := make([]models.Song, snap.catalog.Len())
	for i, it := range snap.catalog.Items {
		songs[i] = ToSong(it)
	}
	return songs, nil
}

// Meta returns the catalog's unique genres, artists and moods.
func (s *Service) Meta() (models.CatalogMeta, error) {
	snap, err := s.loadCatalog()
	if err != nil {
		return models.CatalogMeta{}, err
	}
	return snap.catalog.Meta(), nil
}

// Trending returns the most liked songs with their like counts. The limit
// is applied before ids are resolved, so ids that do not name a catalog row
// shorten the result.
func (s *Service) Trending(ctx context.Context, limit int) ([]models.Song, error) {
	snap, err := s.loadCatalog()
	if err != nil {
		return nil, err
	}
	if s.feedback == nil {
		return []models.Song{}, nil
	}
	entries, err := s.feedback.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load feedback: %w", err)
	}
	if limit <= 0 {
		limit = s.config.Limits.DefaultTopN
	}

	songs := make([]models.Song, 0, limit)
	for _, sc := range feedback.TopLiked(entries, limit) {
		idx, ok := parseSongIndex(sc.SongID, snap.catalog.Len())
		if !ok {
			continue
		}
		song := ToSong(snap.catalog.Items[idx])
		song.Likes = sc.Likes
		songs = append(songs, song)
	}
	return songs, nil
}

// Status reports the active snapshots.
func (s *Service) Status() Status {
	st := Status{}
	if snap := s.catalog.Load(); snap != nil {
		st.CatalogLoaded = true
		st.Items = snap.catalog.Len()
		st.CatalogVersion = snap.version
		st.CatalogSource = snap.source
		st.LoadedAt = snap.loadedAt
	}
	prof := s.profiles.Load()
	st.Profiles = prof.profiles.Len()
	st.ProfileVersion = prof.version
	st.TrainedAt = prof.trainedAt
	return st
}

// ProfileCount returns the number of profiles in the active snapshot.
func (s *Service) ProfileCount() int {
	return s.profiles.Load().profiles.Len()
}

// GetMetrics returns the current service counters.
func (s *Service) GetMetrics() Metrics {
	return Metrics{
		RequestCount: s.requestCount.Load(),
		CacheHits:    s.cacheHits.Load(),
		CacheMisses:  s.cacheMisses.Load(),
		ErrorCount:   s.errorCount.Load(),
		CacheEntries: s.cache.len(),
	}
}

// GetConfig returns a copy of the current configuration.
func (s *Service) GetConfig() *Config {
	return s.config.Clone()
}
