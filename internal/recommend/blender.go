// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package recommend

import (
	"sort"
	"strconv"
)

// scoredIndex is a catalog row and its score.
type scoredIndex struct {
	Index int
	Score float64
}

// CollaborativeScores returns 1.0 for every song liked by prof and 0
// elsewhere. Liked ids that are not base-10 non-negative integers below n
// are skipped. Dislikes do not affect the result.
func CollaborativeScores(n int, prof *Profile) []float64 {
	scores := make([]float64, n)
	if prof == nil {
		return scores
	}
	for _, id := range prof.Likes {
		if idx, ok := parseSongIndex(id, n); ok {
			scores[idx] = 1.0
		}
	}
	return scores
}

// Blend combines content and collaborative scores element-wise.
func Blend(content, collab []float64, w BlendWeights) []float64 {
	out := make([]float64, len(content))
	for i := range content {
		out[i] = w.Content*content[i] + w.Collaborative*collab[i]
	}
	return out
}

// rankTop orders scores descending, ties by ascending index, and keeps the
// first topN.
func rankTop(scores []float64, topN int, skip int) []scoredIndex {
	ranked := make([]scoredIndex, 0, len(scores))
	for i, s := range scores {
		if i == skip {
			continue
		}
		ranked = append(ranked, scoredIndex{Index: i, Score: s})
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score > ranked[b].Score
	})
	if topN >= 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// parseSongIndex accepts only plain decimal digits.
func parseSongIndex(id string, n int) (int, bool) {
	if id == "" {
		return 0, false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return 0, false
		}
	}
	idx, err := strconv.Atoi(id)
	if err != nil || idx >= n {
		return 0, false
	}
	return idx, true
}
