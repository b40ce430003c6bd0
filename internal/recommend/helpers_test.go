// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package recommend

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/setlist/internal/catalog"
	"github.com/tomtom215/setlist/internal/models"
)

const epsilon = 1e-9

// memFeedback is an in-memory FeedbackSource.
type memFeedback struct {
	mu      sync.Mutex
	entries []models.FeedbackEntry
	err     error
}

func (m *memFeedback) All(context.Context) ([]models.FeedbackEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]models.FeedbackEntry(nil), m.entries...), nil
}

func (m *memFeedback) add(e models.FeedbackEntry) {
	m.mu.Lock()
	m.entries = append(m.entries, e)
	m.mu.Unlock()
}

func loadCatalog(t *testing.T, csvText string) *catalog.Catalog {
	t.Helper()
	table, err := catalog.ReadCSV(strings.NewReader(csvText))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	cat, err := catalog.Load(table)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return cat
}

func newTestService(t *testing.T, source FeedbackSource, csvText string) *Service {
	t.Helper()
	svc, err := NewService(DefaultConfig(), source, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	if csvText != "" {
		svc.InstallCatalog(loadCatalog(t, csvText), "test")
	}
	return svc
}

func like(songID string, prefs models.Preferences) models.FeedbackEntry {
	return models.FeedbackEntry{SongID: songID, Feedback: models.FeedbackLike, UserPreferences: prefs}
}

func dislike(songID string, prefs models.Preferences) models.FeedbackEntry {
	return models.FeedbackEntry{SongID: songID, Feedback: models.FeedbackDislike, UserPreferences: prefs}
}

// sixSongs is a catalog with distinct tempo, energy and year per row.
const sixSongs = `title,artist,genre,bpm,energy,danceability,duration,year
Zero,A,pop,90,20,40,185,1995
One,B,rock,110,40,55,200,2001
Two,C,jazz,125,65,60,240,1988
Three,D,pop,150,70,72,210,2010
Four,E,rock,170,90,80,195,2018
Five,F,folk,95,15,30,320,1972
`
