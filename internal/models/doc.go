// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

/*
Package models defines the data structures shared between the recommendation
core, the feedback and session stores, and the HTTP API.

Key types:

  - Preferences: a sparse listener preference description (bpmMin, energy,
    genre, ...). Every field is optional.
  - FeedbackEntry: one like/dislike record together with the preferences
    that were active when it was given.
  - Song: the fixed output record returned by every ranking endpoint.
  - Session: one recommend or feedback interaction, kept for the admin view.

The package has no dependencies on other internal packages so that every
layer can import it without cycles.
*/
package models
