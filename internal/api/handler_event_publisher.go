// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package api

import (
	"context"

	"github.com/tomtom215/setlist/internal/events"
	"github.com/tomtom215/setlist/internal/logging"
	"github.com/tomtom215/setlist/internal/models"
)

// EventPublisher publishes domain events. *events.Bus implements it.
type EventPublisher interface {
	PublishFeedbackRecorded(ctx context.Context, ev events.FeedbackRecorded) error
}

// SetEventPublisher attaches an optional publisher. Call once during
// startup, before serving.
func (h *Handler) SetEventPublisher(publisher EventPublisher) {
	h.publisher = publisher
}

// publishFeedback announces an appended entry. The feedback log is the
// source of truth, so a publish failure is logged and otherwise ignored.
func (h *Handler) publishFeedback(ctx context.Context, entry models.FeedbackEntry) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.PublishFeedbackRecorded(ctx, events.NewFeedbackRecorded(entry)); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("song_id", entry.SongID).Msg("Failed to publish feedback event")
	}
}
