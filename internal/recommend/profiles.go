// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package recommend

import (
	"github.com/tomtom215/setlist/internal/models"
)

// Profile is a pseudo-user: every feedback entry submitted with an identical
// preference description is attributed to the same profile.
type Profile struct {
	// Key identifies the profile by its sorted (field, value) pairs.
	Key string

	// Fields are the preference fields that define the profile.
	Fields []models.Field

	// Likes and Dislikes hold song ids in feedback order.
	Likes    []string
	Dislikes []string
}

// FieldNames returns the names of the defining fields.
func (p *Profile) FieldNames() []string {
	names := make([]string, len(p.Fields))
	for i, f := range p.Fields {
		names[i] = f.Name
	}
	return names
}

// ProfileSet is an immutable, insertion-ordered collection of profiles.
type ProfileSet struct {
	profiles []*Profile
}

// BuildProfiles groups feedback entries into pseudo-user profiles. Profiles
// appear in the order their key is first seen. Entries whose polarity is
// neither like nor dislike still create their profile but add no id.
func BuildProfiles(entries []models.FeedbackEntry) *ProfileSet {
	set := &ProfileSet{}
	index := make(map[string]*Profile)

	for _, e := range entries {
		key := e.UserPreferences.Key()
		prof, ok := index[key]
		if !ok {
			prof = &Profile{Key: key, Fields: e.UserPreferences.Fields()}
			index[key] = prof
			set.profiles = append(set.profiles, prof)
		}
		switch {
		case e.IsLike():
			prof.Likes = append(prof.Likes, e.SongID)
		case e.IsDislike():
			prof.Dislikes = append(prof.Dislikes, e.SongID)
		}
	}
	return set
}

// Len returns the number of profiles.
func (s *ProfileSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.profiles)
}

// Profiles returns the profiles in insertion order.
func (s *ProfileSet) Profiles() []*Profile {
	if s == nil {
		return nil
	}
	out := make([]*Profile, len(s.profiles))
	copy(out, s.profiles)
	return out
}

// Best returns the profile sharing the most field names with prefs. The
// earliest profile wins ties. No profile is returned when nothing overlaps.
func (s *ProfileSet) Best(prefs models.Preferences) (*Profile, bool) {
	if s.Len() == 0 {
		return nil, false
	}

	requested := make(map[string]struct{})
	for _, name := range prefs.FieldNames() {
		requested[name] = struct{}{}
	}

	var best *Profile
	bestMatch := 0
	for _, prof := range s.profiles {
		match := 0
		for _, f := range prof.Fields {
			if _, ok := requested[f.Name]; ok {
				match++
			}
		}
		if match > bestMatch {
			bestMatch = match
			best = prof
		}
	}
	return best, best != nil
}
