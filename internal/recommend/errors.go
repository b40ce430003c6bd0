// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package recommend

import "errors"

var (
	// ErrCatalogNotLoaded is returned by queries issued before the first
	// successful catalog load.
	ErrCatalogNotLoaded = errors.New("catalog not loaded")

	// ErrItemNotFound is returned when a song id does not resolve to a
	// catalog row.
	ErrItemNotFound = errors.New("song not found")
)
