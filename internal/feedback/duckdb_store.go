// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package feedback

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // DuckDB driver
	"github.com/goccy/go-json"

	"github.com/tomtom215/setlist/internal/metrics"
	"github.com/tomtom215/setlist/internal/models"
)

const backendDuckDB = "duckdb"

var duckdbSchema = []string{
	`CREATE SEQUENCE IF NOT EXISTS feedback_seq START 1`,
	`CREATE TABLE IF NOT EXISTS feedback (
		seq              BIGINT DEFAULT nextval('feedback_seq') PRIMARY KEY,
		id               VARCHAR NOT NULL,
		song_id          VARCHAR NOT NULL,
		feedback         VARCHAR NOT NULL,
		ts               BIGINT NOT NULL,
		user_preferences VARCHAR NOT NULL
	)`,
}

// DuckDBStore keeps the log in a DuckDB table. Preferences are stored as
// their JSON encoding so the profile key survives a round trip unchanged.
type DuckDBStore struct {
	conn *sql.DB
	path string
}

// NewDuckDBStore opens (or creates) the database at path. An empty path
// opens an in-memory database.
func NewDuckDBStore(ctx context.Context, path string) (*DuckDBStore, error) {
	dsn := path
	if path != "" {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("create database directory %s: %w", dir, err)
			}
		}
		dsn = path + "?access_mode=read_write&autoinstall_known_extensions=false&autoload_known_extensions=false"
	}

	conn, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection keeps in-memory databases shared across calls.
	conn.SetMaxOpenConns(1)

	for _, stmt := range duckdbSchema {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			conn.Close()
			return nil, fmt.Errorf("create feedback schema: %w", err)
		}
	}
	return &DuckDBStore{conn: conn, path: path}, nil
}

// Backend implements Store.
func (s *DuckDBStore) Backend() string { return backendDuckDB }

// Append implements Store.
func (s *DuckDBStore) Append(ctx context.Context, entry models.FeedbackEntry) (err error) {
	start := time.Now()
	defer func() { metrics.RecordFeedbackStore(backendDuckDB, "append", time.Since(start), err) }()

	if err := Validate(entry); err != nil {
		return err
	}
	prefs, err := json.Marshal(entry.UserPreferences)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	_, err = s.conn.ExecContext(ctx,
		`INSERT INTO feedback (id, song_id, feedback, ts, user_preferences) VALUES (?, ?, ?, ?, ?)`,
		entry.ID, entry.SongID, entry.Feedback, entry.Timestamp, string(prefs))
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

// All implements Store.
func (s *DuckDBStore) All(ctx context.Context) (entries []models.FeedbackEntry, err error) {
	start := time.Now()
	defer func() { metrics.RecordFeedbackStore(backendDuckDB, "all", time.Since(start), err) }()

	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, song_id, feedback, ts, user_preferences FROM feedback ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query feedback: %w", err)
	}
	defer rows.Close()

	entries = []models.FeedbackEntry{}
	for rows.Next() {
		var (
			e     models.FeedbackEntry
			prefs string
		)
		if err := rows.Scan(&e.ID, &e.SongID, &e.Feedback, &e.Timestamp, &prefs); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		if err := json.Unmarshal([]byte(prefs), &e.UserPreferences); err != nil {
			return nil, fmt.Errorf("decode preferences of %s: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feedback: %w", err)
	}
	return entries, nil
}

// Ping checks that the database connection is alive.
func (s *DuckDBStore) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

// Close checkpoints file-backed databases and closes the connection.
func (s *DuckDBStore) Close() error {
	if s.path != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		_, _ = s.conn.ExecContext(ctx, "CHECKPOINT")
		cancel()
	}
	return s.conn.Close()
}
