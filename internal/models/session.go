// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package models

// Session records one recommend or feedback interaction.
type Session struct {
	ID               string          `json:"id"`
	Timestamp        int64           `json:"timestamp"`
	Preferences      Preferences     `json:"preferences"`
	RecommendedSongs []string        `json:"recommended_songs"`
	Feedback         []FeedbackEntry `json:"feedback"`
}
