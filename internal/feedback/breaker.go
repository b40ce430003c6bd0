// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package feedback

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/setlist/internal/metrics"
	"github.com/tomtom215/setlist/internal/models"
)

// BreakerSettings tunes the circuit breaker around a backend.
type BreakerSettings struct {
	// MaxFailures is the consecutive failure count that opens the circuit.
	MaxFailures uint32

	// Timeout is how long the circuit stays open before a trial request.
	Timeout time.Duration
}

// BreakerStore wraps a Store with a circuit breaker. Validation errors are
// not counted as backend failures.
type BreakerStore struct {
	next   Store
	cb     *gobreaker.CircuitBreaker[[]models.FeedbackEntry]
	name   string
	logger zerolog.Logger
}

// NewBreakerStore wraps next.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBreakerStore(next Store, settings BreakerSettings, logger zerolog.Logger) *BreakerStore {
	if settings.MaxFailures == 0 {
		settings.MaxFailures = 5
	}
	if settings.Timeout <= 0 {
		settings.Timeout = 30 * time.Second
	}

	name := "feedback-" + next.Backend()
	logger = logger.With().Str("component", "feedback").Str("breaker", name).Logger()
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]models.FeedbackEntry](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.MaxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrInvalidEntry) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &BreakerStore{next: next, cb: cb, name: name, logger: logger}
}

// Backend implements Store.
func (b *BreakerStore) Backend() string { return b.next.Backend() }

// Close implements Store.
func (b *BreakerStore) Close() error { return b.next.Close() }

// Append implements Store.
func (b *BreakerStore) Append(ctx context.Context, entry models.FeedbackEntry) error {
	_, err := b.execute(func() ([]models.FeedbackEntry, error) {
		return nil, b.next.Append(ctx, entry)
	})
	return err
}

// All implements Store.
func (b *BreakerStore) All(ctx context.Context) ([]models.FeedbackEntry, error) {
	return b.execute(func() ([]models.FeedbackEntry, error) {
		return b.next.All(ctx)
	})
}

// State returns the current breaker state.
func (b *BreakerStore) State() gobreaker.State {
	return b.cb.State()
}

func (b *BreakerStore) execute(fn func() ([]models.FeedbackEntry, error)) ([]models.FeedbackEntry, error) {
	result, err := b.cb.Execute(fn)
	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
		b.logger.Warn().Err(err).Msg("feedback store request rejected")
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
	}
	return result, err
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
