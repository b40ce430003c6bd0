// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

// Package session keeps the user session log: one record per recommend or
// feedback request, with the preferences sent, the songs returned and any
// feedback given. BadgerStore persists the log in BadgerDB under keys
// ordered by a Badger sequence, so Recent is a bounded reverse scan.
package session
