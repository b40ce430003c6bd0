// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package models

// Song is the output record for a catalog row. Score is present only when
// the producing query ranks by a score; Likes only on trending results.
type Song struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Artist       string   `json:"artist"`
	Genre        string   `json:"genre"`
	Year         int      `json:"year"`
	BPM          int      `json:"bpm"`
	Energy       int      `json:"energy"`
	Danceability int      `json:"danceability"`
	Duration     string   `json:"duration"`
	Score        *float64 `json:"score,omitempty"`
	Likes        int      `json:"likes,omitempty"`
}

// CatalogMeta lists the distinct text values of the loaded catalog.
type CatalogMeta struct {
	Genres  []string `json:"genres"`
	Artists []string `json:"artists"`
	Moods   []string `json:"moods"`
}
