// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

/*
Package services adapts Setlist components to suture's Serve(ctx) error
lifecycle.

  - HTTPServerService wraps *http.Server and shuts it down gracefully when
    the context is canceled. http.ErrServerClosed is not a failure.
  - RetrainService rebuilds user profiles on startup and, when an interval
    is configured, on a ticker. A failed retrain is logged and the previous
    profiles stay published.
  - EventService runs the events.Bus router. A router error other than
    cancellation is reported with suture.ErrDoNotRestart because a closed
    watermill router cannot be run again.

Every wrapper implements fmt.Stringer so supervisor logs name the service.
*/
package services
