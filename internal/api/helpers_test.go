// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/setlist/internal/catalog"
	"github.com/tomtom215/setlist/internal/config"
	"github.com/tomtom215/setlist/internal/events"
	"github.com/tomtom215/setlist/internal/feedback"
	"github.com/tomtom215/setlist/internal/recommend"
	"github.com/tomtom215/setlist/internal/session"
)

// sixSongs is a catalog with distinct tempo, energy and year per row.
const sixSongs = `title,artist,genre,mood,bpm,energy,danceability,duration,year
Zero,A,pop,happy,90,20,40,185,1995
One,B,rock,angry,110,40,55,200,2001
Two,C,jazz,calm,125,65,60,240,1988
Three,D,pop,happy,150,70,72,210,2010
Four,E,rock,angry,170,90,80,195,2018
Five,F,folk,sad,95,15,30,320,1972
`

const twoSongs = `title,artist,genre,bpm,energy
Uploaded One,X,metal,180,95
Uploaded Two,Y,ambient,70,10
`

// envelope mirrors APIResponse with raw data for per-test decoding.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

// capturePublisher records published events.
type capturePublisher struct {
	mu     sync.Mutex
	events []events.FeedbackRecorded
	err    error
}

func (p *capturePublisher) PublishFeedbackRecorded(_ context.Context, ev events.FeedbackRecorded) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *capturePublisher) published() []events.FeedbackRecorded {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.FeedbackRecorded(nil), p.events...)
}

type testEnv struct {
	t         *testing.T
	dir       string
	handler   *Handler
	router    http.Handler
	service   *recommend.Service
	feedback  feedback.Store
	selector  *catalog.SourceSelector
	publisher *capturePublisher
}

type envOption func(*envOptions)

type envOptions struct {
	noCatalog bool
	feedback  feedback.Store
	security  config.SecurityConfig
}

func withoutCatalog() envOption {
	return func(o *envOptions) { o.noCatalog = true }
}

func withFeedbackStore(s feedback.Store) envOption {
	return func(o *envOptions) { o.feedback = s }
}

func withRateLimit(reqs int) envOption {
	return func(o *envOptions) {
		o.security.RateLimitDisabled = false
		o.security.RateLimitReqs = reqs
	}
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	o := envOptions{security: config.SecurityConfig{RateLimitDisabled: true}}
	for _, opt := range opts {
		opt(&o)
	}

	dir := t.TempDir()
	defaultPath := filepath.Join(dir, "mainSong.csv")
	if err := os.WriteFile(defaultPath, []byte(sixSongs), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		Catalog: config.CatalogConfig{
			DefaultPath:    defaultPath,
			UploadPath:     filepath.Join(dir, "uploads", "user.csv"),
			StatePath:      filepath.Join(dir, "csv_type.json"),
			MaxUploadBytes: 64 << 10,
		},
		Sessions:  config.SessionsConfig{Enabled: true, InMemory: true, RecentLimit: 20},
		Recommend: config.RecommendConfig{DefaultTopN: 10, MaxTopN: 100},
		Security:  o.security,
	}

	fb := o.feedback
	if fb == nil {
		store, err := feedback.NewJSONFileStore(filepath.Join(dir, "feedback.json"))
		if err != nil {
			t.Fatalf("NewJSONFileStore() error = %v", err)
		}
		fb = store
	}

	sessions, err := session.Open(cfg.Sessions)
	if err != nil {
		t.Fatalf("session.Open() error = %v", err)
	}
	t.Cleanup(func() { sessions.Close() })

	svc, err := recommend.NewService(recommend.DefaultConfig(), fb, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	if !o.noCatalog {
		if err := svc.ReloadCatalog(context.Background(), defaultPath); err != nil {
			t.Fatalf("ReloadCatalog() error = %v", err)
		}
	}

	selector := catalog.NewSourceSelector(cfg.Catalog.DefaultPath, cfg.Catalog.UploadPath, cfg.Catalog.StatePath)
	h := NewHandler(Dependencies{
		Service:  svc,
		Feedback: fb,
		Sessions: sessions,
		Selector: selector,
		Config:   cfg,
	})
	pub := &capturePublisher{}
	h.SetEventPublisher(pub)

	router := NewRouter(h, NewChiMiddleware(ChiMiddlewareConfigFromSecurity(cfg.Security)))
	return &testEnv{
		t:         t,
		dir:       dir,
		handler:   h,
		router:    router.SetupChi(),
		service:   svc,
		feedback:  fb,
		selector:  selector,
		publisher: pub,
	}
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	e.t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) upload(filename, content string) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		e.t.Fatal(err)
	}
	if _, err := io.WriteString(fw, content); err != nil {
		e.t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		e.t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
	}
	return env
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) envelope {
	t.Helper()
	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Fatalf("success = false, error = %+v", env.Error)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data: %v (data %s)", err, env.Data)
	}
	return env
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Success {
		t.Fatal("success = true, want false")
	}
	if env.Error == nil || env.Error.Code != code {
		t.Fatalf("error = %+v, want code %s", env.Error, code)
	}
}
