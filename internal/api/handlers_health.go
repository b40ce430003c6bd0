// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/setlist/internal/recommend"
)

// LiveStatus is the body of GET /health/live.
type LiveStatus struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// ReadyStatus is the body of GET /health/ready.
type ReadyStatus struct {
	Status          string           `json:"status"`
	FeedbackBackend string           `json:"feedback_backend,omitempty"`
	Recommender     recommend.Status `json:"recommender"`
}

// HealthLive reports that the process is serving requests.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(LiveStatus{
		Status:        "alive",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	})
}

// HealthReady reports 200 once a catalog is loaded and 503 before.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	status := ReadyStatus{Status: "ready", Recommender: h.service.Status()}
	if h.feedback != nil {
		status.FeedbackBackend = h.feedback.Backend()
	}
	if !status.Recommender.CatalogLoaded {
		status.Status = "not_ready"
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Catalog is not loaded", status)
		return
	}
	rw.Success(status)
}
