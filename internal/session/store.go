// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/setlist/internal/models"
)

// Store is an append-only session log.
type Store interface {
	Append(ctx context.Context, s models.Session) error

	// Recent returns at most n of the newest sessions, oldest first.
	Recent(ctx context.Context, n int) ([]models.Session, error)

	Close() error
}

// New builds a session record stamped with a fresh id and the current time.
func New(prefs models.Preferences, recommended []string, feedback []models.FeedbackEntry) models.Session {
	if recommended == nil {
		recommended = []string{}
	}
	if feedback == nil {
		feedback = []models.FeedbackEntry{}
	}
	return models.Session{
		ID:               uuid.New().String(),
		Timestamp:        time.Now().Unix(),
		Preferences:      prefs,
		RecommendedSongs: recommended,
		Feedback:         feedback,
	}
}

// NopStore discards sessions. It is used when the session log is disabled.
type NopStore struct{}

// Append implements Store.
func (NopStore) Append(context.Context, models.Session) error { return nil }

// Recent implements Store.
func (NopStore) Recent(context.Context, int) ([]models.Session, error) {
	return []models.Session{}, nil
}

// Close implements Store.
func (NopStore) Close() error { return nil }
