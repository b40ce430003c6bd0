// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

// Package catalog loads and normalizes the song catalog.
//
// A load runs in one pass over a tabular dataset:
//
//  1. Header names are canonicalized through the alias table (columns.go).
//  2. Absent feature columns are synthesized from fixed defaults.
//  3. Every feature cell is coerced to a number; bad cells become missing.
//  4. Missing bpm, duration and year cells take the column mean; other
//     features take their fixed default.
//  5. Title, artist and genre are ensured, with placeholders when absent.
//  6. A Scaler (per-feature mean and population standard deviation) is fitted
//     and applied to produce the normalized matrix.
//
// The resulting Catalog is immutable. Row i of Raw and Normalized always
// describes Items[i]. A load either returns a complete Catalog or an error.
package catalog
