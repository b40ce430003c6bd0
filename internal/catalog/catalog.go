// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package catalog

import (
	"sort"

	"github.com/tomtom215/setlist/internal/models"
)

// Item is one catalog song. Features holds the raw (unscaled) values in
// Feature order.
type Item struct {
	Index    int
	Title    string
	Artist   string
	Genre    string
	Mood     string
	Features []float64
}

// Feature returns the raw value of f.
func (it Item) Feature(f Feature) float64 {
	return it.Features[f]
}

// Catalog is an immutable, fully normalized song catalog.
type Catalog struct {
	Items []Item

	// Raw and Normalized are row-aligned with Items.
	Raw        [][]float64
	Normalized [][]float64

	Scaler *Scaler

	// Means are the per-feature column means after missing-value fill.
	Means []float64
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Items)
}

// Item returns the item at index i.
func (c *Catalog) Item(i int) (Item, bool) {
	if c == nil || i < 0 || i >= len(c.Items) {
		return Item{}, false
	}
	return c.Items[i], true
}

// Mean returns the column mean of f.
func (c *Catalog) Mean(f Feature) float64 {
	return c.Means[f]
}

// Meta returns the sorted unique genres, artists and moods.
func (c *Catalog) Meta() models.CatalogMeta {
	genres := make(map[string]struct{})
	artists := make(map[string]struct{})
	moods := make(map[string]struct{})
	for _, it := range c.Items {
		addNonEmpty(genres, it.Genre)
		addNonEmpty(artists, it.Artist)
		addNonEmpty(moods, it.Mood)
	}
	return models.CatalogMeta{
		Genres:  sortedKeys(genres),
		Artists: sortedKeys(artists),
		Moods:   sortedKeys(moods),
	}
}

func addNonEmpty(set map[string]struct{}, v string) {
	if v != "" {
		set[v] = struct{}{}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
