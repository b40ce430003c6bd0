// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package models

// Feedback polarities.
const (
	FeedbackLike    = "like"
	FeedbackDislike = "dislike"
)

// FeedbackEntry is one record of the feedback log.
type FeedbackEntry struct {
	ID              string      `json:"id,omitempty"`
	SongID          string      `json:"song_id"`
	Feedback        string      `json:"feedback"`
	Timestamp       int64       `json:"timestamp"`
	UserPreferences Preferences `json:"user_preferences"`
}

// IsLike reports whether the entry is a like.
func (e FeedbackEntry) IsLike() bool {
	return e.Feedback == FeedbackLike
}

// IsDislike reports whether the entry is a dislike.
func (e FeedbackEntry) IsDislike() bool {
	return e.Feedback == FeedbackDislike
}
