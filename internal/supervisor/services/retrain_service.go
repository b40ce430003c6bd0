// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// defaultRetrainTimeout bounds a single retrain.
const defaultRetrainTimeout = 5 * time.Minute

// Retrainer rebuilds user profiles from recorded feedback.
// Satisfied by *recommend.Service.
type Retrainer interface {
	Retrain(ctx context.Context) error
}

// RetrainServiceConfig holds configuration for the retrain service.
type RetrainServiceConfig struct {
	// OnStartup retrains once when the service starts.
	OnStartup bool

	// Interval between scheduled retrains. Zero disables the schedule.
	Interval time.Duration

	// Timeout bounds one retrain. Default: 5m
	Timeout time.Duration
}

// RetrainService keeps profiles fresh under supervision.
type RetrainService struct {
	engine Retrainer
	config RetrainServiceConfig
	logger zerolog.Logger
	name   string
}

// NewRetrainService creates a retrain service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRetrainService(engine Retrainer, cfg RetrainServiceConfig, logger zerolog.Logger) *RetrainService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultRetrainTimeout
	}
	return &RetrainService{
		engine: engine,
		config: cfg,
		logger: logger.With().Str("service", "retrain").Logger(),
		name:   "retrain-service",
	}
}

// Serve retrains on startup if configured, then on every tick until ctx is
// canceled. Retrain failures are logged and never restart the service.
func (s *RetrainService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("on_startup", s.config.OnStartup).
		Dur("interval", s.config.Interval).
		Msg("retrain service starting")

	if s.config.OnStartup {
		if err := s.retrain(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("startup retrain failed")
		}
	}

	if s.config.Interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("retrain service shutting down")
			return ctx.Err()

		case <-ticker.C:
			if err := s.retrain(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("scheduled retrain failed")
			}
		}
	}
}

func (s *RetrainService) retrain(ctx context.Context) error {
	retrainCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	if err := s.engine.Retrain(retrainCtx); err != nil {
		return err
	}
	s.logger.Info().Dur("duration", time.Since(start)).Msg("retrain complete")
	return nil
}

func (s *RetrainService) String() string {
	return s.name
}
