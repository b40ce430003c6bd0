// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package api

import (
	"context"
	"errors"
	"net/http"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/setlist/internal/catalog"
	"github.com/tomtom215/setlist/internal/feedback"
	"github.com/tomtom215/setlist/internal/logging"
	"github.com/tomtom215/setlist/internal/recommend"
)

// respondServiceError maps a domain error to its HTTP status and error code.
// Unrecognized errors are logged and reported as INTERNAL_ERROR without
// leaking their text.
func respondServiceError(rw *ResponseWriter, r *http.Request, err error, op string) {
	switch {
	case errors.Is(err, recommend.ErrCatalogNotLoaded):
		rw.ServiceUnavailable("Catalog is not loaded")
	case errors.Is(err, recommend.ErrItemNotFound):
		rw.NotFound("Song not found")
	case errors.Is(err, catalog.ErrInvalidDataset):
		rw.BadRequest(err.Error())
	case errors.Is(err, catalog.ErrInvalidSource):
		rw.BadRequest(err.Error())
	case errors.Is(err, feedback.ErrInvalidEntry):
		rw.ValidationError(err.Error(), nil)
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		logging.Ctx(r.Context()).Warn().Err(err).Str("operation", op).Msg("Feedback store unavailable")
		rw.ServiceUnavailable("Feedback store temporarily unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		rw.ServiceUnavailable("Request timed out")
	default:
		logging.Ctx(r.Context()).Error().Err(err).Str("operation", op).Msg("Request failed")
		rw.InternalError("Internal server error")
	}
}
