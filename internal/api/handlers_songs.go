// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Songs handles GET /songs: every catalog row in catalog order.
func (h *Handler) Songs(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	songs, err := h.service.Songs()
	if err != nil {
		respondServiceError(rw, r, err, "songs")
		return
	}
	rw.List(songs, len(songs))
}

// Song handles GET /songs/{id}.
func (h *Handler) Song(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	song, err := h.service.Song(chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(rw, r, err, "song")
		return
	}
	rw.Success(song)
}

// SimilarSongs handles GET /songs/{id}/similar. Unknown ids yield an empty
// list rather than 404.
func (h *Handler) SimilarSongs(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	topN, err := queryInt(r, "top_n", h.defaultTopN(), h.maxTopN())
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	songs, err := h.service.SimilarItems(r.Context(), chi.URLParam(r, "id"), topN)
	if err != nil {
		respondServiceError(rw, r, err, "similar")
		return
	}
	rw.List(songs, len(songs))
}
