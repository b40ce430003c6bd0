// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package feedback

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/setlist/internal/metrics"
	"github.com/tomtom215/setlist/internal/models"
)

const backendJSON = "json"

// JSONFileStore stores the log as a single JSON array.
// A missing file is an empty log.
type JSONFileStore struct {
	mu   sync.Mutex
	path string
}

// NewJSONFileStore creates a store backed by path, creating its directory.
func NewJSONFileStore(path string) (*JSONFileStore, error) {
	if path == "" {
		return nil, errors.New("json feedback path is required")
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create feedback directory %s: %w", dir, err)
		}
	}
	return &JSONFileStore{path: path}, nil
}

// Backend implements Store.
func (s *JSONFileStore) Backend() string { return backendJSON }

// Close implements Store.
func (s *JSONFileStore) Close() error { return nil }

// Append implements Store.
func (s *JSONFileStore) Append(ctx context.Context, entry models.FeedbackEntry) (err error) {
	start := time.Now()
	defer func() { metrics.RecordFeedbackStore(backendJSON, "append", time.Since(start), err) }()

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := Validate(entry); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readLocked()
	if err != nil {
		return err
	}
	entries = append(entries, entry)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode feedback: %w", err)
	}
	return s.writeLocked(data)
}

// All implements Store.
func (s *JSONFileStore) All(ctx context.Context) (entries []models.FeedbackEntry, err error) {
	start := time.Now()
	defer func() { metrics.RecordFeedbackStore(backendJSON, "all", time.Since(start), err) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked()
}

func (s *JSONFileStore) readLocked() ([]models.FeedbackEntry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.FeedbackEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read feedback: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []models.FeedbackEntry{}, nil
	}

	var entries []models.FeedbackEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode feedback %s: %w", s.path, err)
	}
	return entries, nil
}

func (s *JSONFileStore) writeLocked(data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".feedback-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write feedback: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close feedback: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace feedback file: %w", err)
	}
	return nil
}
