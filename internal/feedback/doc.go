// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

// Package feedback persists the append-only like/dislike log.
//
// Two backends implement Store:
//
//   - JSONFileStore keeps the whole log as one JSON array on disk, written
//     through a temporary file and rename.
//   - DuckDBStore keeps one row per entry in a DuckDB table, ordered by an
//     insertion sequence.
//
// NewStore selects a backend from configuration and wraps it in a
// BreakerStore, a sony/gobreaker circuit breaker that fails fast while the
// backend keeps erroring.
//
// Summarize and TopLiked derive the admin statistics from a log snapshot.
package feedback
