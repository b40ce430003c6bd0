// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
)

// SourceType names which dataset backs the catalog.
type SourceType string

const (
	SourceDefault SourceType = "default"
	SourceUser    SourceType = "user"
)

// ParseSourceType validates a source type string.
func ParseSourceType(s string) (SourceType, error) {
	switch SourceType(s) {
	case SourceDefault, SourceUser:
		return SourceType(s), nil
	default:
		return "", fmt.Errorf("%w: %q (must be default or user)", ErrInvalidSource, s)
	}
}

type sourceState struct {
	Type SourceType `json:"type"`
}

// SourceSelector tracks the active catalog source and persists the choice in
// a small JSON state file so it survives restarts.
type SourceSelector struct {
	mu          sync.Mutex
	defaultPath string
	uploadPath  string
	statePath   string
}

// NewSourceSelector creates a selector. statePath may be empty, in which
// case the choice is not persisted and the default source is always active.
func NewSourceSelector(defaultPath, uploadPath, statePath string) *SourceSelector {
	return &SourceSelector{
		defaultPath: defaultPath,
		uploadPath:  uploadPath,
		statePath:   statePath,
	}
}

// Current returns the persisted source type. A missing or unreadable state
// file means SourceDefault.
func (s *SourceSelector) Current() SourceType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current()
}

func (s *SourceSelector) current() SourceType {
	if s.statePath == "" {
		return SourceDefault
	}
	data, err := os.ReadFile(s.statePath)
	if err != nil {
		return SourceDefault
	}
	var st sourceState
	if err := json.Unmarshal(data, &st); err != nil {
		return SourceDefault
	}
	if st.Type == SourceUser {
		return SourceUser
	}
	return SourceDefault
}

// Set persists the active source type.
func (s *SourceSelector) Set(t SourceType) error {
	if _, err := ParseSourceType(string(t)); err != nil {
		return err
	}
	if s.statePath == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(sourceState{Type: t})
	if err != nil {
		return fmt.Errorf("encode source state: %w", err)
	}
	return writeFileAtomic(s.statePath, data)
}

// Path resolves the dataset path for the active source. The user source
// falls back to the default dataset when nothing has been uploaded.
func (s *SourceSelector) Path() string {
	s.mu.Lock()
	t := s.current()
	s.mu.Unlock()
	return s.PathFor(t)
}

// PathFor resolves the dataset path t would select, without switching.
func (s *SourceSelector) PathFor(t SourceType) string {
	if t == SourceUser && s.HasUpload() {
		return s.uploadPath
	}
	return s.defaultPath
}

// HasUpload reports whether a user dataset has been stored.
func (s *SourceSelector) HasUpload() bool {
	if s.uploadPath == "" {
		return false
	}
	_, err := os.Stat(s.uploadPath)
	return err == nil
}

// DefaultPath returns the bundled dataset path.
func (s *SourceSelector) DefaultPath() string {
	return s.defaultPath
}

// SaveUpload stores r as the user dataset and returns its path.
// The previous upload is replaced only after the full copy succeeds.
func (s *SourceSelector) SaveUpload(r io.Reader) (string, error) {
	if s.uploadPath == "" {
		return "", errors.New("upload path not configured")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.uploadPath), 0o750); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.uploadPath), ".upload-*.csv")
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("close upload: %w", err)
	}
	if err := os.Rename(tmpName, s.uploadPath); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("store upload: %w", err)
	}
	return s.uploadPath, nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
