// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

// Package validation wraps go-playground/validator v10 for API request
// bodies.
//
// A single validator instance is built once and shared; it reports fields
// by their JSON names and registers the domain tags used by request
// structs:
//
//   - songid: a non-empty string of ASCII digits
//   - csvfile: a file name ending in .csv (case-insensitive)
//
// Failures come back as *RequestValidationError, which converts to the
// API error shape with code VALIDATION_FAILED:
//
//	type feedbackRequest struct {
//	    SongID   string `json:"song_id" validate:"required,songid"`
//	    Feedback string `json:"feedback" validate:"required,oneof=like dislike"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
package validation
