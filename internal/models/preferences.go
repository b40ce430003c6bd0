// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package models

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Preferences is a partial description of what a listener wants to hear.
// Nil numeric fields and empty text fields are "not specified".
//
// BPMMin and YearMin are lower-bound hints; the remaining numeric fields are
// target values on the catalog's own scale.
type Preferences struct {
	BPMMin       *float64 `json:"bpmMin,omitempty"`
	YearMin      *float64 `json:"yearMin,omitempty"`
	Energy       *float64 `json:"energy,omitempty"`
	Danceability *float64 `json:"danceability,omitempty"`
	Loudness     *float64 `json:"loudness,omitempty"`
	Liveness     *float64 `json:"liveness,omitempty"`
	Valence      *float64 `json:"valence,omitempty"`
	Duration     *float64 `json:"duration,omitempty"`
	Acousticness *float64 `json:"acousticness,omitempty"`
	Speechiness  *float64 `json:"speechiness,omitempty"`
	Popularity   *float64 `json:"popularity,omitempty"`

	Genre  string `json:"genre,omitempty"`
	Artist string `json:"artist,omitempty"`
	Mood   string `json:"mood,omitempty"`
}

// Field is one specified (name, value) pair of a Preferences value.
type Field struct {
	Name  string
	Value string
}

// Float returns a pointer to v, for building Preferences literals.
func Float(v float64) *float64 {
	return &v
}

// numericFields lists the numeric fields by JSON name.
func (p *Preferences) numericFields() map[string]**float64 {
	return map[string]**float64{
		"bpmMin":       &p.BPMMin,
		"yearMin":      &p.YearMin,
		"energy":       &p.Energy,
		"danceability": &p.Danceability,
		"loudness":     &p.Loudness,
		"liveness":     &p.Liveness,
		"valence":      &p.Valence,
		"duration":     &p.Duration,
		"acousticness": &p.Acousticness,
		"speechiness":  &p.Speechiness,
		"popularity":   &p.Popularity,
	}
}

func (p *Preferences) textFields() map[string]*string {
	return map[string]*string{
		"genre":  &p.Genre,
		"artist": &p.Artist,
		"mood":   &p.Mood,
	}
}

// Fields returns the specified fields sorted by name. Two Preferences with
// the same Fields describe the same pseudo-user.
func (p Preferences) Fields() []Field {
	fields := make([]Field, 0, 4)
	for name, ptr := range p.numericFields() {
		if *ptr != nil {
			fields = append(fields, Field{Name: name, Value: strconv.FormatFloat(**ptr, 'g', -1, 64)})
		}
	}
	for name, ptr := range p.textFields() {
		if *ptr != "" {
			fields = append(fields, Field{Name: name, Value: *ptr})
		}
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
	return fields
}

// FieldNames returns the names of the specified fields, sorted.
func (p Preferences) FieldNames() []string {
	fields := p.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

// Key renders Fields as a canonical string, e.g. "energy=70;genre=pop".
func (p Preferences) Key() string {
	fields := p.Fields()
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.Name + "=" + f.Value
	}
	return strings.Join(parts, ";")
}

// IsEmpty reports whether no field is specified.
func (p Preferences) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// UnmarshalJSON accepts numbers or numeric strings for numeric fields, since
// HTML forms post "120" as often as 120. Empty strings and nulls leave a
// field unset; unknown keys are ignored.
func (p *Preferences) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = Preferences{}
	numeric := p.numericFields()
	text := p.textFields()

	for key, val := range raw {
		if ptr, ok := numeric[key]; ok {
			f, set, err := toFloat(val)
			if err != nil {
				return fmt.Errorf("preference %s: %w", key, err)
			}
			if set {
				*ptr = Float(f)
			}
			continue
		}
		if ptr, ok := text[key]; ok {
			switch v := val.(type) {
			case nil:
			case string:
				*ptr = strings.TrimSpace(v)
			case float64:
				*ptr = strconv.FormatFloat(v, 'g', -1, 64)
			default:
				return fmt.Errorf("preference %s: expected string, got %T", key, val)
			}
		}
	}
	return nil
}

func toFloat(val interface{}) (float64, bool, error) {
	switch v := val.(type) {
	case nil:
		return 0, false, nil
	case float64:
		return v, true, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false, fmt.Errorf("not a number: %q", v)
		}
		return f, true, nil
	default:
		return 0, false, fmt.Errorf("expected number, got %T", val)
	}
}
