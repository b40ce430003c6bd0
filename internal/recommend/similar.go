// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package recommend

import (
	"strconv"
	"strings"

	"github.com/tomtom215/setlist/internal/catalog"
	"github.com/tomtom215/setlist/internal/models"
)

// similarTo ranks every other song by cosine similarity of raw features.
// Unresolvable ids produce an empty list.
func similarTo(cat *catalog.Catalog, id string, topN int) []models.Song {
	idx, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil || idx < 0 || idx >= cat.Len() {
		return []models.Song{}
	}

	target := cat.Raw[idx]
	scores := make([]float64, cat.Len())
	for i, row := range cat.Raw {
		scores[i] = Cosine(target, row)
	}

	ranked := rankTop(scores, topN, idx)
	songs := make([]models.Song, len(ranked))
	for i, r := range ranked {
		songs[i] = scoredSong(cat, r)
	}
	return songs
}
