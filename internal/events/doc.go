// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

/*
Package events carries in-process domain events over Watermill.

The Bus pairs a Watermill GoChannel pub/sub with a message.Router. API
handlers publish events; consumers registered with On* run inside the
router with panic recovery and exponential-backoff retries.

# Topics

  - feedback.recorded: one message per appended feedback entry. When
    recommend.retrain_on_feedback is set, a consumer rebuilds the
    recommendation profiles on every message.

# Delivery

GoChannel is non-persistent: messages published before the router has
subscribed are dropped. Handlers must therefore be registered before Run,
and publishers must treat events as best-effort notifications rather than
the source of truth. The feedback log remains authoritative.

# Usage

	bus, err := events.NewBus(events.DefaultBusConfig(), logging.NewSlogLogger())
	bus.OnFeedbackRecorded("retrain", func(ctx context.Context, ev events.FeedbackRecorded) error {
		return svc.Retrain(ctx)
	})
	go bus.Run(ctx)
	<-bus.Running()
*/
package events
