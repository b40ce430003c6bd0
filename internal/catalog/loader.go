// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package catalog

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// LoadFile reads and loads the CSV catalog at path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrInvalidDataset, path, err)
	}
	defer f.Close()

	table, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return Load(table)
}

// Load canonicalizes, cleans and normalizes a table into a Catalog.
// Malformed cells and absent columns never fail a load; an empty table does.
func Load(table *Table) (*Catalog, error) {
	if table == nil || len(table.Header) == 0 {
		return nil, fmt.Errorf("%w: no header", ErrInvalidDataset)
	}
	if len(table.Rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidDataset)
	}

	columns := columnIndex(table.Header)
	n := len(table.Rows)

	raw := make([][]float64, n)
	for i := range raw {
		raw[i] = make([]float64, FeatureCount)
	}

	for f := Feature(0); int(f) < FeatureCount; f++ {
		col, present := columns[f.String()]
		if !present {
			for i := range raw {
				raw[i][f] = DefaultValue(f)
			}
			continue
		}
		fillFeature(table, raw, f, col)
	}

	items := make([]Item, n)
	for i := range items {
		items[i] = Item{
			Index:    i,
			Title:    textCell(table, columns, i, ColumnTitle, "Song "+strconv.Itoa(i+1)),
			Artist:   textCell(table, columns, i, ColumnArtist, UnknownArtist),
			Genre:    textCell(table, columns, i, ColumnGenre, UnknownGenre),
			Mood:     textCell(table, columns, i, ColumnMood, ""),
			Features: raw[i],
		}
	}

	scaler := FitScaler(raw, FeatureCount)
	return &Catalog{
		Items:      items,
		Raw:        raw,
		Normalized: scaler.TransformAll(raw),
		Scaler:     scaler,
		Means:      scaler.Mean(),
	}, nil
}

// columnIndex maps canonical column names to their first position.
func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := CanonicalColumn(strings.TrimSpace(h))
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	return idx
}

// fillFeature parses column col into raw[*][f] and fills missing cells.
func fillFeature(table *Table, raw [][]float64, f Feature, col int) {
	missing := make([]bool, len(raw))
	var sum float64
	var valid int

	for i := range raw {
		v, ok := parseNumber(table.Cell(i, col))
		if !ok {
			missing[i] = true
			continue
		}
		raw[i][f] = v
		sum += v
		valid++
	}

	fill := DefaultValue(f)
	if meanFilled(f) {
		fill = 0
		if valid > 0 {
			fill = sum / float64(valid)
		}
	}
	for i, m := range missing {
		if m {
			raw[i][f] = fill
		}
	}
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func textCell(table *Table, columns map[string]int, row int, name, placeholder string) string {
	col, ok := columns[name]
	if !ok {
		return placeholder
	}
	v := strings.TrimSpace(table.Cell(row, col))
	if v == "" {
		return placeholder
	}
	return v
}
