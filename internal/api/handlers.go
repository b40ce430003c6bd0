// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package api

import (
	"context"
	"time"

	"github.com/tomtom215/setlist/internal/catalog"
	"github.com/tomtom215/setlist/internal/config"
	"github.com/tomtom215/setlist/internal/feedback"
	"github.com/tomtom215/setlist/internal/logging"
	"github.com/tomtom215/setlist/internal/metrics"
	"github.com/tomtom215/setlist/internal/models"
	"github.com/tomtom215/setlist/internal/recommend"
	"github.com/tomtom215/setlist/internal/session"
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_health.go: liveness and readiness
//   - handlers_songs.go: song listing, lookup, similar songs
//   - handlers_recommend.go: recommend, retrain, trending
//   - handlers_feedback.go: feedback and admin statistics
//   - handlers_catalog.go: catalog metadata, source switching, upload
type Handler struct {
	service   *recommend.Service
	feedback  feedback.Store
	sessions  session.Store
	selector  *catalog.SourceSelector
	config    *config.Config
	publisher EventPublisher
	startTime time.Time
}

// Dependencies groups the collaborators of a Handler.
type Dependencies struct {
	Service  *recommend.Service
	Feedback feedback.Store
	Sessions session.Store
	Selector *catalog.SourceSelector
	Config   *config.Config
}

// NewHandler creates a handler. A nil session store disables session
// recording.
func NewHandler(deps Dependencies) *Handler {
	sessions := deps.Sessions
	if sessions == nil {
		sessions = session.NopStore{}
	}
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &Handler{
		service:   deps.Service,
		feedback:  deps.Feedback,
		sessions:  sessions,
		selector:  deps.Selector,
		config:    cfg,
		startTime: time.Now(),
	}
}

// recordSession appends a session record. Failures are logged only.
func (h *Handler) recordSession(ctx context.Context, kind string, s models.Session) {
	err := h.sessions.Append(ctx, s)
	metrics.RecordSession(kind, err)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("kind", kind).Msg("Failed to record user session")
	}
}

func (h *Handler) maxTopN() int {
	if n := h.config.Recommend.MaxTopN; n > 0 {
		return n
	}
	return recommend.DefaultConfig().Limits.MaxTopN
}

func (h *Handler) defaultTopN() int {
	if n := h.config.Recommend.DefaultTopN; n > 0 {
		return n
	}
	return recommend.DefaultConfig().Limits.DefaultTopN
}
