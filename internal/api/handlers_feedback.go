// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/setlist/internal/feedback"
	"github.com/tomtom215/setlist/internal/metrics"
	"github.com/tomtom215/setlist/internal/models"
	"github.com/tomtom215/setlist/internal/session"
)

// popularityLimit is the number of songs reported by song-popularity.
const popularityLimit = 10

// defaultSessionLimit applies when sessions.recent_limit is unset.
const defaultSessionLimit = 20

// PopularityResult is the body of GET /admin/song-popularity.
type PopularityResult struct {
	TopSongs []feedback.SongCount `json:"top_songs"`
}

// SessionsResult is the body of GET /admin/user-sessions.
type SessionsResult struct {
	Sessions []models.Session `json:"sessions"`
}

// Feedback handles POST /feedback: validates the body, appends the entry to
// the feedback log, records a session and publishes feedback.recorded.
// Profiles are not rebuilt here; see POST /retrain and the event consumer.
func (h *Handler) Feedback(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req feedbackRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if !validateRequest(rw, &req) {
		return
	}

	entry, err := feedback.Prepare(models.FeedbackEntry{
		SongID:          string(req.SongID),
		Feedback:        req.Feedback,
		UserPreferences: req.UserPreferences,
	}, time.Now())
	if err != nil {
		respondServiceError(rw, r, err, "feedback")
		return
	}

	if err := h.feedback.Append(r.Context(), entry); err != nil {
		respondServiceError(rw, r, err, "feedback")
		return
	}
	metrics.FeedbackRecorded.WithLabelValues(entry.Feedback).Inc()

	h.recordSession(r.Context(), "feedback", session.New(entry.UserPreferences, nil, []models.FeedbackEntry{entry}))
	h.publishFeedback(r.Context(), entry)

	rw.Created(entry)
}

// FeedbackStats handles GET /admin/feedback-stats.
func (h *Handler) FeedbackStats(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	entries, err := h.feedback.All(r.Context())
	if err != nil {
		respondServiceError(rw, r, err, "feedback_stats")
		return
	}
	rw.Success(feedback.Summarize(entries))
}

// SongPopularity handles GET /admin/song-popularity: the ten most liked
// song ids with like counts.
func (h *Handler) SongPopularity(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	entries, err := h.feedback.All(r.Context())
	if err != nil {
		respondServiceError(rw, r, err, "song_popularity")
		return
	}
	rw.Success(PopularityResult{TopSongs: feedback.TopLiked(entries, popularityLimit)})
}

// UserSessions handles GET /admin/user-sessions?limit=: the newest
// sessions, oldest first.
func (h *Handler) UserSessions(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	def := h.config.Sessions.RecentLimit
	if def <= 0 {
		def = defaultSessionLimit
	}
	limit, err := queryInt(r, "limit", def, 0)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	sessions, err := h.sessions.Recent(r.Context(), limit)
	if err != nil {
		respondServiceError(rw, r, err, "user_sessions")
		return
	}
	rw.Success(SessionsResult{Sessions: sessions})
}
