// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package events

import "github.com/tomtom215/setlist/internal/models"

// TopicFeedbackRecorded carries FeedbackRecorded payloads.
const TopicFeedbackRecorded = "feedback.recorded"

// FeedbackRecorded is published after a feedback entry has been appended.
type FeedbackRecorded struct {
	EntryID   string `json:"entry_id"`
	SongID    string `json:"song_id"`
	Feedback  string `json:"feedback"`
	Timestamp int64  `json:"timestamp"`
}

// NewFeedbackRecorded builds the event for an appended entry.
func NewFeedbackRecorded(e models.FeedbackEntry) FeedbackRecorded {
	return FeedbackRecorded{
		EntryID:   e.ID,
		SongID:    e.SongID,
		Feedback:  e.Feedback,
		Timestamp: e.Timestamp,
	}
}
