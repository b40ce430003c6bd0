// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package feedback

import (
	"sort"

	"github.com/tomtom215/setlist/internal/models"
)

// Stats counts the entries of a log.
type Stats struct {
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`
	Total    int `json:"total"`
}

// SongCount is a song id and its like count.
type SongCount struct {
	SongID string `json:"song_id"`
	Likes  int    `json:"likes"`
}

// Summarize counts likes, dislikes and all entries.
func Summarize(entries []models.FeedbackEntry) Stats {
	st := Stats{Total: len(entries)}
	for _, e := range entries {
		switch {
		case e.IsLike():
			st.Likes++
		case e.IsDislike():
			st.Dislikes++
		}
	}
	return st
}

// TopLiked ranks song ids by like count, most liked first. Songs with equal
// counts keep the order in which they were first liked. n <= 0 returns all.
func TopLiked(entries []models.FeedbackEntry, n int) []SongCount {
	counts := make(map[string]int)
	var order []string
	for _, e := range entries {
		if !e.IsLike() {
			continue
		}
		if _, seen := counts[e.SongID]; !seen {
			order = append(order, e.SongID)
		}
		counts[e.SongID]++
	}

	ranked := make([]SongCount, len(order))
	for i, id := range order {
		ranked[i] = SongCount{SongID: id, Likes: counts[id]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Likes > ranked[j].Likes
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
