// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package recommend

import (
	"github.com/tomtom215/setlist/internal/catalog"
	"github.com/tomtom215/setlist/internal/models"
)

// Preference vector bounds and defaults.
const (
	DefaultBPM = 60.0
	MinBPM     = 60.0
	MaxBPM     = 200.0

	DefaultYear = 1990.0
	MinYear     = 1950.0
	MaxYear     = 2024.0

	DefaultEnergy       = 50.0
	DefaultDanceability = 50.0
)

// RawVector builds the unscaled feature vector for a preference description.
//
// bpm and year are clipped to their ranges. energy and danceability default
// to 50 and are never clipped. Every other slot takes the caller's value when
// given and the catalog column mean otherwise.
func RawVector(cat *catalog.Catalog, prefs models.Preferences) []float64 {
	vec := make([]float64, catalog.FeatureCount)

	vec[catalog.FeatureBPM] = clip(valueOr(prefs.BPMMin, DefaultBPM), MinBPM, MaxBPM)
	vec[catalog.FeatureEnergy] = valueOr(prefs.Energy, DefaultEnergy)
	vec[catalog.FeatureDanceability] = valueOr(prefs.Danceability, DefaultDanceability)
	vec[catalog.FeatureYear] = clip(valueOr(prefs.YearMin, DefaultYear), MinYear, MaxYear)

	meanOr := func(v *float64, f catalog.Feature) float64 {
		return valueOr(v, cat.Mean(f))
	}
	vec[catalog.FeatureLoudness] = meanOr(prefs.Loudness, catalog.FeatureLoudness)
	vec[catalog.FeatureLiveness] = meanOr(prefs.Liveness, catalog.FeatureLiveness)
	vec[catalog.FeatureValence] = meanOr(prefs.Valence, catalog.FeatureValence)
	vec[catalog.FeatureDuration] = meanOr(prefs.Duration, catalog.FeatureDuration)
	vec[catalog.FeatureAcousticness] = meanOr(prefs.Acousticness, catalog.FeatureAcousticness)
	vec[catalog.FeatureSpeechiness] = meanOr(prefs.Speechiness, catalog.FeatureSpeechiness)
	vec[catalog.FeaturePopularity] = meanOr(prefs.Popularity, catalog.FeaturePopularity)

	return vec
}

// Vectorize returns the normalized preference vector.
func Vectorize(cat *catalog.Catalog, prefs models.Preferences) []float64 {
	return cat.Scaler.Transform(RawVector(cat, prefs))
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
