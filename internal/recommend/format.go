// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package recommend

import (
	"fmt"
	"math"
	"strconv"

	"github.com/tomtom215/setlist/internal/catalog"
	"github.com/tomtom215/setlist/internal/models"
)

// FormatDuration renders seconds as M:SS. 185 becomes "3:05".
func FormatDuration(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}
	minutes := int(seconds / 60)
	secs := int(math.Mod(seconds, 60))
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// Round3 rounds to three decimal places.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// ToSong converts a catalog item to its output record. Numeric fields are
// truncated toward zero.
func ToSong(it catalog.Item) models.Song {
	return models.Song{
		ID:           strconv.Itoa(it.Index),
		Title:        it.Title,
		Artist:       it.Artist,
		Genre:        it.Genre,
		Year:         int(it.Feature(catalog.FeatureYear)),
		BPM:          int(it.Feature(catalog.FeatureBPM)),
		Energy:       int(it.Feature(catalog.FeatureEnergy)),
		Danceability: int(it.Feature(catalog.FeatureDanceability)),
		Duration:     FormatDuration(it.Feature(catalog.FeatureDuration)),
	}
}

// scoredSong converts a ranked row to a Song carrying its rounded score.
func scoredSong(cat *catalog.Catalog, r scoredIndex) models.Song {
	song := ToSong(cat.Items[r.Index])
	score := Round3(r.Score)
	song.Score = &score
	return song
}
