// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package catalog

import "errors"

var (
	// ErrInvalidDataset is returned when a dataset cannot be read or parsed.
	// The previously loaded catalog, if any, stays in effect.
	ErrInvalidDataset = errors.New("invalid catalog dataset")

	// ErrInvalidSource is returned for an unknown catalog source type.
	ErrInvalidSource = errors.New("invalid catalog source")
)
