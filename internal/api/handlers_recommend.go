// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package api

import (
	"net/http"

	"github.com/tomtom215/setlist/internal/logging"
	"github.com/tomtom215/setlist/internal/session"
)

// RetrainResult is the body of POST /retrain.
type RetrainResult struct {
	Status   string `json:"status"`
	Profiles int    `json:"profiles"`
}

// Recommend handles POST /recommend. The body holds preference keys at the
// top level (energy, bpmMin, genre, ...) and an optional top_n. The call is
// recorded as a user session with the recommended ids.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req, err := decodeRecommend(w, r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if !validateRequest(rw, &req) {
		return
	}
	if req.TopN > h.maxTopN() {
		req.TopN = h.maxTopN()
	}

	songs, err := h.service.Recommend(r.Context(), req.Preferences, req.TopN)
	if err != nil {
		respondServiceError(rw, r, err, "recommend")
		return
	}

	ids := make([]string, len(songs))
	for i := range songs {
		ids[i] = songs[i].ID
	}
	h.recordSession(r.Context(), "recommend", session.New(req.Preferences, ids, nil))

	rw.List(songs, len(songs))
}

// Retrain handles POST /retrain.
func (h *Handler) Retrain(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if err := h.service.Retrain(r.Context()); err != nil {
		respondServiceError(rw, r, err, "retrain")
		return
	}
	profiles := h.service.ProfileCount()
	logging.Ctx(r.Context()).Info().Int("profiles", profiles).Msg("Retrain requested via API")
	rw.Success(RetrainResult{Status: "retraining complete", Profiles: profiles})
}

// Trending handles GET /trending?limit=: the most liked songs with their
// like counts.
func (h *Handler) Trending(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	limit, err := queryInt(r, "limit", h.defaultTopN(), h.maxTopN())
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	songs, err := h.service.Trending(r.Context(), limit)
	if err != nil {
		respondServiceError(rw, r, err, "trending")
		return
	}
	rw.List(songs, len(songs))
}
