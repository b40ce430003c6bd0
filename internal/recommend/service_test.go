// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package recommend

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/setlist/internal/catalog"
	"github.com/tomtom215/setlist/internal/models"
)

func TestNewService_InvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Limits.DefaultTopN = 0
	if _, err := NewService(cfg, nil, zerolog.Nop()); err == nil {
		t.Error("NewService() with invalid config error = nil, want error")
	}
}

func TestService_CatalogNotLoaded(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil, "")
	ctx := context.Background()

	if _, err := svc.Recommend(ctx, models.Preferences{}, 5); !errors.Is(err, ErrCatalogNotLoaded) {
		t.Errorf("Recommend() error = %v, want ErrCatalogNotLoaded", err)
	}
	if _, err := svc.VectorizeAndScore(ctx, models.Preferences{}); !errors.Is(err, ErrCatalogNotLoaded) {
		t.Errorf("VectorizeAndScore() error = %v, want ErrCatalogNotLoaded", err)
	}
	if _, err := svc.SimilarItems(ctx, "0", 5); !errors.Is(err, ErrCatalogNotLoaded) {
		t.Errorf("SimilarItems() error = %v, want ErrCatalogNotLoaded", err)
	}
	if _, err := svc.Song("0"); !errors.Is(err, ErrCatalogNotLoaded) {
		t.Errorf("Song() error = %v, want ErrCatalogNotLoaded", err)
	}
	if st := svc.Status(); st.CatalogLoaded {
		t.Error("Status().CatalogLoaded = true before any load")
	}
}

// In a three-row catalog whose middle row sits exactly on every column mean,
// that row standardizes to the zero vector and its cosine score is 0. The
// row on the query's side of the mean ranks first.
func TestRecommend_ThreeItemCatalog(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil, "title,bpm,energy\nlow,100,30\nmid,140,60\nhigh,180,90\n")
	prefs := models.Preferences{BPMMin: models.Float(120), Energy: models.Float(60)}

	scores, err := svc.VectorizeAndScore(context.Background(), prefs)
	if err != nil {
		t.Fatalf("VectorizeAndScore() error = %v", err)
	}
	if scores[1] != 0 {
		t.Errorf("mean row score = %v, want 0", scores[1])
	}
	if math.Abs(scores[0]-1) > epsilon {
		t.Errorf("best score = %v, want 1 after max rescale", scores[0])
	}
	if scores[2] >= 0 {
		t.Errorf("opposite row score = %v, want negative", scores[2])
	}

	songs, err := svc.Recommend(context.Background(), prefs, 3)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	order := []string{songs[0].ID, songs[1].ID, songs[2].ID}
	if order[0] != "0" || order[1] != "1" || order[2] != "2" {
		t.Errorf("ranking = %v, want [0 1 2]", order)
	}
}

func TestRecommend_ContentRanksClosestSong(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil, sixSongs)
	// Song "Four" is the fast, high-energy, recent outlier.
	prefs := models.Preferences{
		BPMMin:       models.Float(170),
		Energy:       models.Float(90),
		Danceability: models.Float(80),
		YearMin:      models.Float(2018),
		Duration:     models.Float(195),
	}
	songs, err := svc.Recommend(context.Background(), prefs, 1)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(songs) != 1 || songs[0].ID != "4" {
		t.Fatalf("Recommend() = %+v, want song 4 first", songs)
	}
	// Pure content: 0.7 * 1.0 for the max-rescaled best row.
	if songs[0].Score == nil || *songs[0].Score != 0.7 {
		t.Errorf("top score = %v, want 0.7", songs[0].Score)
	}
}

// Two likes for song "5" under an energy-only preference select that
// profile for an energy-only request and lift song 5 in the ranking.
func TestRecommend_FeedbackProfileScenario(t *testing.T) {
	t.Parallel()

	source := &memFeedback{}
	svc := newTestService(t, source, sixSongs)
	ctx := context.Background()
	prefs := models.Preferences{Energy: models.Float(70)}

	before, err := svc.Recommend(ctx, prefs, 6)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	rankBefore := rankOf(before, "5")

	source.add(like("5", models.Preferences{Energy: models.Float(40)}))
	source.add(like("5", models.Preferences{Energy: models.Float(40)}))
	if err := svc.Retrain(ctx); err != nil {
		t.Fatalf("Retrain() error = %v", err)
	}
	if svc.ProfileCount() != 1 {
		t.Fatalf("ProfileCount() = %d, want 1", svc.ProfileCount())
	}

	after, err := svc.Recommend(ctx, prefs, 6)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	rankAfter := rankOf(after, "5")
	if rankAfter >= rankBefore {
		t.Errorf("song 5 rank = %d after feedback, want better than %d", rankAfter, rankBefore)
	}

	content, _ := svc.VectorizeAndScore(ctx, prefs)
	want := Round3(0.7*content[5] + 0.3*1.0)
	if got := *after[rankAfter].Score; math.Abs(got-want) > epsilon {
		t.Errorf("song 5 blended score = %v, want %v", got, want)
	}

	// Every other song keeps its pure content score.
	for _, s := range after {
		if s.ID == "5" {
			continue
		}
		idx := mustAtoi(t, s.ID)
		if want := Round3(0.7 * content[idx]); math.Abs(*s.Score-want) > epsilon {
			t.Errorf("song %s score = %v, want %v", s.ID, *s.Score, want)
		}
	}
}

func TestRecommend_DislikesIgnored(t *testing.T) {
	t.Parallel()

	source := &memFeedback{}
	svc := newTestService(t, source, sixSongs)
	ctx := context.Background()
	prefs := models.Preferences{Energy: models.Float(70)}

	base, _ := svc.Recommend(ctx, prefs, 6)
	source.add(dislike("3", prefs))
	if err := svc.Retrain(ctx); err != nil {
		t.Fatal(err)
	}
	after, _ := svc.Recommend(ctx, prefs, 6)

	for i := range base {
		if base[i].ID != after[i].ID || *base[i].Score != *after[i].Score {
			t.Errorf("position %d changed after a dislike: %+v -> %+v", i, base[i], after[i])
		}
	}
}

func TestRecommend_TopNAndOrdering(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil, sixSongs)
	ctx := context.Background()

	tests := []struct {
		name string
		topN int
		want int
	}{
		{"explicit", 3, 3},
		{"larger than catalog", 50, 6},
		{"zero uses default", 0, 6},
		{"negative uses default", -2, 6},
	}
	for _, tt := range tests {
		songs, err := svc.Recommend(ctx, models.Preferences{BPMMin: models.Float(110)}, tt.topN)
		if err != nil {
			t.Fatalf("%s: Recommend() error = %v", tt.name, err)
		}
		if len(songs) != tt.want {
			t.Errorf("%s: len = %d, want %d", tt.name, len(songs), tt.want)
		}
		for i := 1; i < len(songs); i++ {
			prev, cur := *songs[i-1].Score, *songs[i].Score
			if cur > prev {
				t.Errorf("%s: scores not descending at %d: %v > %v", tt.name, i, cur, prev)
			}
			if cur == prev && mustAtoi(t, songs[i].ID) < mustAtoi(t, songs[i-1].ID) {
				t.Errorf("%s: tie at %d not ordered by index", tt.name, i)
			}
		}
	}
}

func TestRecommend_Idempotent(t *testing.T) {
	t.Parallel()

	a := newTestService(t, nil, sixSongs)
	b := newTestService(t, nil, sixSongs)
	prefs := models.Preferences{BPMMin: models.Float(130), Genre: "rock"}

	ra, _ := a.Recommend(context.Background(), prefs, 6)
	rb, _ := b.Recommend(context.Background(), prefs, 6)
	for i := range ra {
		if ra[i].ID != rb[i].ID || *ra[i].Score != *rb[i].Score {
			t.Errorf("position %d differs: %+v vs %+v", i, ra[i], rb[i])
		}
	}
}

func TestRecommend_CacheInvalidatedByRetrain(t *testing.T) {
	t.Parallel()

	source := &memFeedback{}
	svc := newTestService(t, source, sixSongs)
	ctx := context.Background()
	prefs := models.Preferences{Energy: models.Float(70)}

	first, _ := svc.Recommend(ctx, prefs, 6)
	second, _ := svc.Recommend(ctx, prefs, 6)
	if m := svc.GetMetrics(); m.CacheHits != 1 {
		t.Errorf("CacheHits = %d, want 1", m.CacheHits)
	}
	if first[0].ID != second[0].ID {
		t.Error("cached result differs from computed result")
	}

	source.add(like("5", prefs))
	source.add(like("5", prefs))
	if err := svc.Retrain(ctx); err != nil {
		t.Fatal(err)
	}
	third, _ := svc.Recommend(ctx, prefs, 6)
	if rankOf(third, "5") >= rankOf(first, "5") {
		t.Error("retrain did not invalidate cached recommendations")
	}
}

func TestSimilarItems(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil, sixSongs)
	ctx := context.Background()

	songs, err := svc.SimilarItems(ctx, "2", 3)
	if err != nil {
		t.Fatalf("SimilarItems() error = %v", err)
	}
	if len(songs) != 3 {
		t.Fatalf("len = %d, want 3", len(songs))
	}
	for _, s := range songs {
		if s.ID == "2" {
			t.Error("SimilarItems() included the song itself")
		}
		if s.Score == nil {
			t.Error("SimilarItems() result without score")
		}
	}

	for _, id := range []string{"-1", "6", "abc", ""} {
		got, err := svc.SimilarItems(ctx, id, 3)
		if err != nil {
			t.Errorf("SimilarItems(%q) error = %v, want nil", id, err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("SimilarItems(%q) = %v, want empty list", id, got)
		}
	}
}

func TestSongAndSongs(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil, sixSongs)

	song, err := svc.Song("3")
	if err != nil {
		t.Fatalf("Song() error = %v", err)
	}
	want := models.Song{
		ID: "3", Title: "Three", Artist: "D", Genre: "pop",
		Year: 2010, BPM: 150, Energy: 70, Danceability: 72, Duration: "3:30",
	}
	if song != want {
		t.Errorf("Song() = %+v, want %+v", song, want)
	}

	for _, id := range []string{"6", "-1", "x"} {
		if _, err := svc.Song(id); !errors.Is(err, ErrItemNotFound) {
			t.Errorf("Song(%q) error = %v, want ErrItemNotFound", id, err)
		}
	}

	all, err := svc.Songs()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 6 || all[5].Title != "Five" || all[5].Score != nil {
		t.Errorf("Songs() = %+v", all)
	}
}

func TestTrending(t *testing.T) {
	t.Parallel()

	source := &memFeedback{}
	for _, id := range []string{"2", "4", "4", "99", "99", "99", "-1", "2", "2"} {
		source.add(like(id, models.Preferences{}))
	}
	source.add(dislike("1", models.Preferences{}))
	svc := newTestService(t, source, sixSongs)

	songs, err := svc.Trending(context.Background(), 10)
	if err != nil {
		t.Fatalf("Trending() error = %v", err)
	}
	if len(songs) != 2 {
		t.Fatalf("Trending() = %+v, want 2 songs", songs)
	}
	if songs[0].ID != "2" || songs[0].Likes != 3 || songs[1].ID != "4" || songs[1].Likes != 2 {
		t.Errorf("Trending() = %+v", songs)
	}
}

func TestReloadCatalog(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "good.csv")
	bad := filepath.Join(dir, "bad.csv")
	if err := os.WriteFile(good, []byte(sixSongs), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte(""), 0o600); err != nil {
		t.Fatal(err)
	}

	svc := newTestService(t, nil, "")
	ctx := context.Background()
	if err := svc.ReloadCatalog(ctx, good); err != nil {
		t.Fatalf("ReloadCatalog(good) error = %v", err)
	}
	if st := svc.Status(); !st.CatalogLoaded || st.Items != 6 || st.CatalogVersion != 1 {
		t.Errorf("Status() = %+v", st)
	}

	if err := svc.ReloadCatalog(ctx, bad); !errors.Is(err, catalog.ErrInvalidDataset) {
		t.Errorf("ReloadCatalog(bad) error = %v, want ErrInvalidDataset", err)
	}
	if st := svc.Status(); st.Items != 6 || st.CatalogVersion != 1 {
		t.Errorf("failed reload replaced the catalog: %+v", st)
	}
}

func TestRetrain_FailureKeepsProfiles(t *testing.T) {
	t.Parallel()

	source := &memFeedback{}
	source.add(like("1", models.Preferences{Genre: "pop"}))
	svc := newTestService(t, source, sixSongs)
	if err := svc.Retrain(context.Background()); err != nil {
		t.Fatal(err)
	}

	source.mu.Lock()
	source.err = errors.New("store down")
	source.mu.Unlock()

	if err := svc.Retrain(context.Background()); err == nil {
		t.Error("Retrain() error = nil, want error")
	}
	if svc.ProfileCount() != 1 {
		t.Errorf("ProfileCount() = %d, want 1", svc.ProfileCount())
	}
}

// Readers run against whatever snapshot is current while reloads and
// retrains swap snapshots underneath them.
func TestService_ConcurrentReadsDuringSwaps(t *testing.T) {
	t.Parallel()

	source := &memFeedback{}
	svc := newTestService(t, source, sixSongs)
	cat := loadCatalog(t, sixSongs)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				prefs := models.Preferences{Energy: models.Float(float64(j))}
				songs, err := svc.Recommend(ctx, prefs, 6)
				if err != nil || len(songs) != 6 {
					t.Errorf("Recommend() = %d songs, %v", len(songs), err)
					return
				}
				if _, err := svc.SimilarItems(ctx, "1", 3); err != nil {
					t.Errorf("SimilarItems() error = %v", err)
					return
				}
			}
		}(i)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 20; j++ {
			svc.InstallCatalog(cat, "swap")
			source.add(like("1", models.Preferences{Energy: models.Float(float64(j))}))
			if err := svc.Retrain(ctx); err != nil {
				t.Errorf("Retrain() error = %v", err)
			}
		}
	}()
	wg.Wait()

	if got := svc.Status().CatalogVersion; got != 21 {
		t.Errorf("CatalogVersion = %d, want 21", got)
	}
}

func rankOf(songs []models.Song, id string) int {
	for i, s := range songs {
		if s.ID == id {
			return i
		}
	}
	return len(songs)
}

func mustAtoi(t *testing.T, s string) int {
	t.Helper()
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			t.Fatalf("non-numeric id %q", s)
		}
		n = n*10 + int(c-'0')
	}
	return n
}
