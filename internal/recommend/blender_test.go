// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package recommend

import (
	"math"
	"reflect"
	"testing"
)

func TestCollaborativeScores(t *testing.T) {
	t.Parallel()

	prof := &Profile{
		Likes:    []string{"0", "3", "3", "-1", "7", "abc", "+2", " 1", "", "99999999999999999999"},
		Dislikes: []string{"1", "2"},
	}
	got := CollaborativeScores(5, prof)
	want := []float64{1, 0, 0, 1, 0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CollaborativeScores() = %v, want %v", got, want)
	}

	if got := CollaborativeScores(3, nil); !reflect.DeepEqual(got, []float64{0, 0, 0}) {
		t.Errorf("CollaborativeScores(nil) = %v, want zeros", got)
	}
}

func TestBlend(t *testing.T) {
	t.Parallel()

	content := []float64{1, 0.5, -0.2}
	collab := []float64{0, 1, 1}
	got := Blend(content, collab, DefaultConfig().Weights)
	want := []float64{0.7, 0.65, 0.16}
	for i := range want {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("Blend()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRankTop(t *testing.T) {
	t.Parallel()

	scores := []float64{0.2, 0.9, 0.5, 0.9, 0.1}

	tests := []struct {
		name string
		topN int
		skip int
		want []int
	}{
		{"ties by ascending index", 3, -1, []int{1, 3, 2}},
		{"more than available", 10, -1, []int{1, 3, 2, 0, 4}},
		{"skip excludes a row", 2, 1, []int{3, 2}},
		{"zero", 0, -1, []int{}},
	}
	for _, tt := range tests {
		ranked := rankTop(scores, tt.topN, tt.skip)
		got := make([]int, len(ranked))
		for i, r := range ranked {
			got[i] = r.Index
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: rankTop() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		seconds float64
		want    string
	}{
		{185, "3:05"},
		{59, "0:59"},
		{600, "10:00"},
		{0, "0:00"},
		{185.9, "3:05"},
		{-4, "0:00"},
		{math.NaN(), "0:00"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestRound3(t *testing.T) {
	t.Parallel()

	tests := []struct{ in, want float64 }{
		{0.12345, 0.123},
		{0.9996, 1},
		{0.7, 0.7},
		{-0.1234, -0.123},
	}
	for _, tt := range tests {
		if got := Round3(tt.in); math.Abs(got-tt.want) > epsilon {
			t.Errorf("Round3(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
