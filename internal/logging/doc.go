// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

// Package logging provides the zerolog-based logger shared by every Setlist
// component.
//
// Call Init once from main with the values loaded by the config package:
//
//	logging.Init(logging.Config{
//	    Level:  cfg.Logging.Level,
//	    Format: cfg.Logging.Format,
//	})
//
//	logging.Info().Int("songs", n).Msg("Catalog loaded")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Feedback append failed")
//
// Components that keep their own logger take a zerolog.Logger by value and
// tag it with a component field:
//
//	logger := logging.WithComponent("recommend")
//
// Libraries that expect log/slog (sutureslog, watermill) receive an adapter
// from NewSlogLogger so that all output goes through the same writer.
//
// Always terminate event chains with Msg or Send, otherwise nothing is
// written.
package logging
