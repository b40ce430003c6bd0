// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/setlist/internal/catalog"
	"github.com/tomtom215/setlist/internal/config"
	"github.com/tomtom215/setlist/internal/events"
	"github.com/tomtom215/setlist/internal/feedback"
	"github.com/tomtom215/setlist/internal/supervisor"
)

const testCatalog = `title,artist,genre,mood,bpm,energy,danceability,duration,year
Alpha,A,pop,happy,120,70,60,200,2020
Beta,B,rock,angry,150,90,40,240,2015
`

func TestBuildServiceConfig(t *testing.T) {
	tests := []struct {
		name      string
		in        config.RecommendConfig
		wantTopN  int
		wantMax   int
		wantCache bool
		wantTTL   time.Duration
	}{
		{
			name:      "overrides",
			in:        config.RecommendConfig{DefaultTopN: 5, MaxTopN: 50, CacheTTL: 2 * time.Minute},
			wantTopN:  5,
			wantMax:   50,
			wantCache: true,
			wantTTL:   2 * time.Minute,
		},
		{
			name:      "zero values keep defaults and disable cache",
			in:        config.RecommendConfig{},
			wantTopN:  10,
			wantMax:   100,
			wantCache: false,
			wantTTL:   time.Minute,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := buildServiceConfig(&config.Config{Recommend: tt.in})
			if rc.Limits.DefaultTopN != tt.wantTopN {
				t.Errorf("DefaultTopN = %d, want %d", rc.Limits.DefaultTopN, tt.wantTopN)
			}
			if rc.Limits.MaxTopN != tt.wantMax {
				t.Errorf("MaxTopN = %d, want %d", rc.Limits.MaxTopN, tt.wantMax)
			}
			if rc.Cache.Enabled != tt.wantCache {
				t.Errorf("Cache.Enabled = %v, want %v", rc.Cache.Enabled, tt.wantCache)
			}
			if rc.Cache.TTL != tt.wantTTL {
				t.Errorf("Cache.TTL = %v, want %v", rc.Cache.TTL, tt.wantTTL)
			}
			if err := rc.Validate(); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func newFeedbackStore(t *testing.T) feedback.Store {
	t.Helper()
	store, err := feedback.NewJSONFileStore(filepath.Join(t.TempDir(), "feedback.json"))
	if err != nil {
		t.Fatalf("NewJSONFileStore() error = %v", err)
	}
	return store
}

func TestInitRecommend_LoadsSelectedCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mainSong.csv")
	if err := os.WriteFile(path, []byte(testCatalog), 0o600); err != nil {
		t.Fatal(err)
	}
	selector := catalog.NewSourceSelector(path, filepath.Join(dir, "user.csv"), "")

	svc, err := initRecommend(context.Background(), &config.Config{}, newFeedbackStore(t), selector, zerolog.Nop())
	if err != nil {
		t.Fatalf("initRecommend() error = %v", err)
	}
	if st := svc.Status(); !st.CatalogLoaded || st.Items != 2 {
		t.Errorf("Status() = %+v, want loaded with 2 items", st)
	}
}

func TestInitRecommend_MissingCatalogIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	selector := catalog.NewSourceSelector(filepath.Join(dir, "missing.csv"), filepath.Join(dir, "user.csv"), "")

	svc, err := initRecommend(context.Background(), &config.Config{}, newFeedbackStore(t), selector, zerolog.Nop())
	if err != nil {
		t.Fatalf("initRecommend() error = %v", err)
	}
	if svc.Status().CatalogLoaded {
		t.Error("catalog should not be loaded")
	}
}

func TestAddRetrain_RegistersFeedbackConsumer(t *testing.T) {
	tests := []struct {
		name       string
		onFeedback bool
		want       int
	}{
		{"disabled", false, 0},
		{"enabled", true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Recommend: config.RecommendConfig{RetrainOnFeedback: tt.onFeedback}}
			svc, err := initRecommend(context.Background(), cfg, newFeedbackStore(t),
				catalog.NewSourceSelector(filepath.Join(t.TempDir(), "none.csv"), "", ""), zerolog.Nop())
			if err != nil {
				t.Fatal(err)
			}
			bus, err := events.NewBus(events.DefaultBusConfig(), nil)
			if err != nil {
				t.Fatal(err)
			}
			defer bus.Close()
			tree, err := supervisor.NewSupervisorTree(nil, supervisor.TreeConfig{})
			if err != nil {
				t.Fatal(err)
			}

			addRetrain(cfg, svc, bus, tree, zerolog.Nop())
			if got := bus.HandlerCount(); got != tt.want {
				t.Errorf("HandlerCount() = %d, want %d", got, tt.want)
			}
		})
	}
}
