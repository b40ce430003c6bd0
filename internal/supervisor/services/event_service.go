// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/setlist/internal/logging"
)

// EventRouter is the lifecycle of an event bus router.
// Satisfied by *events.Bus.
type EventRouter interface {
	Run(ctx context.Context) error
	HandlerCount() int
}

// EventService runs the feedback event router under supervision.
type EventService struct {
	router EventRouter
	name   string
}

// NewEventService wraps router.
func NewEventService(router EventRouter) *EventService {
	return &EventService{router: router, name: "event-router"}
}

// Serve blocks in the router until ctx is canceled.
func (s *EventService) Serve(ctx context.Context) error {
	logging.Info().Int("handlers", s.router.HandlerCount()).Msg("event router starting")

	err := s.router.Run(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err == nil {
		err = errors.New("router stopped")
	}
	logging.Error().Err(err).Msg("event router stopped unexpectedly")
	return fmt.Errorf("%w: %w", suture.ErrDoNotRestart, err)
}

func (s *EventService) String() string {
	return s.name
}
