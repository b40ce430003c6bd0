// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/setlist/internal/config"
	"github.com/tomtom215/setlist/internal/models"
)

// ErrInvalidEntry is returned for entries without a song id or with an
// unknown polarity.
var ErrInvalidEntry = errors.New("invalid feedback entry")

// Store is an append-only feedback log.
type Store interface {
	// Append adds one entry to the end of the log.
	Append(ctx context.Context, entry models.FeedbackEntry) error

	// All returns the whole log in append order.
	All(ctx context.Context) ([]models.FeedbackEntry, error)

	// Backend names the storage backend for logs and metrics.
	Backend() string

	Close() error
}

// Validate checks an entry before it is appended.
func Validate(entry models.FeedbackEntry) error {
	if strings.TrimSpace(entry.SongID) == "" {
		return fmt.Errorf("%w: song_id is required", ErrInvalidEntry)
	}
	if !entry.IsLike() && !entry.IsDislike() {
		return fmt.Errorf("%w: feedback must be %q or %q, got %q",
			ErrInvalidEntry, models.FeedbackLike, models.FeedbackDislike, entry.Feedback)
	}
	return nil
}

// Prepare validates an entry and fills in a missing id and timestamp.
func Prepare(entry models.FeedbackEntry, now time.Time) (models.FeedbackEntry, error) {
	if err := Validate(entry); err != nil {
		return entry, err
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp == 0 {
		entry.Timestamp = now.Unix()
	}
	return entry, nil
}

// NewStore opens the configured backend behind a circuit breaker.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewStore(cfg config.FeedbackConfig, logger zerolog.Logger) (Store, error) {
	var (
		backend Store
		err     error
	)
	switch cfg.Backend {
	case config.FeedbackBackendJSON:
		backend, err = NewJSONFileStore(cfg.JSONPath)
	case config.FeedbackBackendDuckDB:
		backend, err = NewDuckDBStore(context.Background(), cfg.DuckDBPath)
	default:
		return nil, fmt.Errorf("unknown feedback backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s feedback store: %w", cfg.Backend, err)
	}

	logger.Info().
		Str("component", "feedback").
		Str("backend", backend.Backend()).
		Msg("feedback store opened")

	return NewBreakerStore(backend, BreakerSettings{
		MaxFailures: cfg.BreakerMaxFailures,
		Timeout:     cfg.BreakerTimeout,
	}, logger), nil
}
