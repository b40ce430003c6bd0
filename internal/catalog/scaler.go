// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package catalog

import "math"

// Scaler standardizes feature vectors to zero mean and unit variance.
// It is fitted once per catalog load and never modified afterwards.
type Scaler struct {
	mean  []float64
	scale []float64
}

// FitScaler computes the per-column mean and population standard deviation
// of rows. Columns with zero variance get scale 1 so they map to 0.
func FitScaler(rows [][]float64, width int) *Scaler {
	s := &Scaler{
		mean:  make([]float64, width),
		scale: make([]float64, width),
	}
	n := float64(len(rows))

	if len(rows) > 0 {
		for _, row := range rows {
			for j := 0; j < width; j++ {
				s.mean[j] += row[j]
			}
		}
		for j := range s.mean {
			s.mean[j] /= n
		}
	}

	for j := 0; j < width; j++ {
		var ss float64
		for _, row := range rows {
			d := row[j] - s.mean[j]
			ss += d * d
		}
		std := 0.0
		if n > 0 {
			std = math.Sqrt(ss / n)
		}
		if std == 0 || math.IsNaN(std) {
			std = 1
		}
		s.scale[j] = std
	}
	return s
}

// Transform returns a standardized copy of v.
func (s *Scaler) Transform(v []float64) []float64 {
	out := make([]float64, len(v))
	for j := range v {
		out[j] = (v[j] - s.mean[j]) / s.scale[j]
	}
	return out
}

// TransformAll standardizes every row.
func (s *Scaler) TransformAll(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = s.Transform(row)
	}
	return out
}

// Mean returns a copy of the fitted column means.
func (s *Scaler) Mean() []float64 {
	return append([]float64(nil), s.mean...)
}

// Scale returns a copy of the fitted column standard deviations.
func (s *Scaler) Scale() []float64 {
	return append([]float64(nil), s.scale...)
}
