// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package session

import (
	"context"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/setlist/internal/config"
	"github.com/tomtom215/setlist/internal/models"
)

const (
	sessionKeyPrefix = "session:"
	sequenceKey      = "seq:session"
	sequenceLease    = 100
)

// BadgerStore implements Store on BadgerDB.
type BadgerStore struct {
	db  *badger.DB
	seq *badger.Sequence
}

// Open opens the store described by cfg. A disabled log yields a NopStore.
func Open(cfg config.SessionsConfig) (Store, error) {
	if !cfg.Enabled {
		return NopStore{}, nil
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create session directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	// Badger logs through its own logger by default.
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	return NewBadgerStore(db)
}

// NewBadgerStore wraps an open database.
func NewBadgerStore(db *badger.DB) (*BadgerStore, error) {
	seq, err := db.GetSequence([]byte(sequenceKey), sequenceLease)
	if err != nil {
		return nil, fmt.Errorf("get session sequence: %w", err)
	}
	return &BadgerStore{db: db, seq: seq}, nil
}

func sessionKey(n uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", sessionKeyPrefix, n))
}

// Append implements Store.
func (s *BadgerStore) Append(ctx context.Context, sess models.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	n, err := s.seq.Next()
	if err != nil {
		return fmt.Errorf("next session key: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(sessionKey(n), data)
	})
}

// Recent implements Store.
func (s *BadgerStore) Recent(ctx context.Context, n int) ([]models.Session, error) {
	sessions := []models.Session{}
	if n <= 0 {
		return sessions, nil
	}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(sessionKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		// In reverse mode Seek lands on the largest key <= the seek key.
		seek := append([]byte(sessionKeyPrefix), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(opts.Prefix) && len(sessions) < n; it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var sess models.Session
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &sess)
			}); err != nil {
				return fmt.Errorf("decode session %s: %w", it.Item().Key(), err)
			}
			sessions = append(sessions, sess)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(sessions)-1; i < j; i, j = i+1, j-1 {
		sessions[i], sessions[j] = sessions[j], sessions[i]
	}
	return sessions, nil
}

// Close releases the sequence lease and closes the database.
func (s *BadgerStore) Close() error {
	if err := s.seq.Release(); err != nil {
		_ = s.db.Close()
		return fmt.Errorf("release session sequence: %w", err)
	}
	return s.db.Close()
}
