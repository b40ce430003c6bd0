// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package catalog

// Feature indexes into a feature vector. The order is fixed and shared by the
// raw matrix, the normalized matrix and preference vectors.
type Feature int

const (
	FeatureBPM Feature = iota
	FeatureEnergy
	FeatureDanceability
	FeatureLoudness
	FeatureLiveness
	FeatureValence
	FeatureDuration
	FeatureAcousticness
	FeatureSpeechiness
	FeaturePopularity
	FeatureYear

	// FeatureCount is the length of every feature vector.
	FeatureCount int = iota
)

// featureNames are the canonical column names, in Feature order.
var featureNames = [FeatureCount]string{
	"bpm",
	"energy",
	"danceability",
	"loudness",
	"liveness",
	"valence",
	"duration",
	"acousticness",
	"speechiness",
	"popularity",
	"year",
}

// String returns the canonical column name.
func (f Feature) String() string {
	if f < 0 || int(f) >= FeatureCount {
		return "unknown"
	}
	return featureNames[f]
}

// FeatureNames returns the canonical feature column names in vector order.
func FeatureNames() []string {
	names := make([]string, FeatureCount)
	copy(names, featureNames[:])
	return names
}

// Canonical text columns.
const (
	ColumnTitle  = "title"
	ColumnArtist = "artist"
	ColumnGenre  = "genre"
	ColumnMood   = "mood"
)

// Text placeholders.
const (
	UnknownArtist = "Unknown Artist"
	UnknownGenre  = "Unknown Genre"
)

// columnAliases maps historical dataset headers to canonical names.
var columnAliases = map[string]string{
	"the genre of the track":                                                        ColumnGenre,
	"Beats.Per.Minute -The tempo of the song":                                       "bpm",
	"Energy- The energy of a song - the higher the value, the more energtic":        "energy",
	"Danceability - The higher the value, the easier it is to dance to this song":   "danceability",
	"Loudness/dB - The higher the value, the louder the song":                       "loudness",
	"Liveness - The higher the value, the more likely the song is a live recording": "liveness",
	"Valence - The higher the value, the more positive mood for the song":           "valence",
	"Length - The duration of the song":                                             "duration",
	"Acousticness - The higher the value the more acoustic the song is":             "acousticness",
	"Speechiness - The higher the value the more spoken word the song contains":     "speechiness",
	"Popularity- The higher the value the more popular the song is":                 "popularity",
	"song_title": ColumnTitle,
	"BPM":        "bpm",
}

// CanonicalColumn returns the canonical name for a dataset header.
// Headers without an alias are returned unchanged.
func CanonicalColumn(header string) string {
	if canonical, ok := columnAliases[header]; ok {
		return canonical
	}
	return header
}

// featureDefaults are injected for absent columns and, except for the
// mean-filled features, for missing cells.
var featureDefaults = [FeatureCount]float64{
	FeatureEnergy:       50,
	FeatureDanceability: 50,
	FeatureLoudness:     -10,
	FeatureLiveness:     10,
	FeatureValence:      50,
	FeatureAcousticness: 20,
	FeatureSpeechiness:  5,
	FeaturePopularity:   50,
}

// DefaultValue returns the fixed default for a feature.
func DefaultValue(f Feature) float64 {
	return featureDefaults[f]
}

// meanFilled reports whether missing cells of f take the column mean.
func meanFilled(f Feature) bool {
	return f == FeatureBPM || f == FeatureDuration || f == FeatureYear
}
