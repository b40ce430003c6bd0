// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package recommend

import (
	"math"

	"github.com/tomtom215/setlist/internal/catalog"
)

// Cosine computes the cosine similarity of two equal-length vectors.
// A zero-norm operand yields 0.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// ContentScores scores every normalized catalog row against vec. When the
// best score is positive all scores are divided by it, so the best row
// scores exactly 1; otherwise scores are returned as computed.
func ContentScores(cat *catalog.Catalog, vec []float64) []float64 {
	scores := make([]float64, len(cat.Normalized))
	maxScore := math.Inf(-1)
	for i, row := range cat.Normalized {
		scores[i] = Cosine(vec, row)
		if scores[i] > maxScore {
			maxScore = scores[i]
		}
	}
	if maxScore > 0 {
		for i := range scores {
			scores[i] /= maxScore
		}
	}
	return scores
}
