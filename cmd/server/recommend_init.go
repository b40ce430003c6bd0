// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/setlist/internal/catalog"
	"github.com/tomtom215/setlist/internal/config"
	"github.com/tomtom215/setlist/internal/events"
	"github.com/tomtom215/setlist/internal/feedback"
	"github.com/tomtom215/setlist/internal/recommend"
	"github.com/tomtom215/setlist/internal/supervisor"
	"github.com/tomtom215/setlist/internal/supervisor/services"
)

// buildServiceConfig maps the recommend config section onto the service
// defaults. A zero cache TTL disables the result cache.
func buildServiceConfig(cfg *config.Config) *recommend.Config {
	rc := recommend.DefaultConfig()
	if cfg.Recommend.DefaultTopN > 0 {
		rc.Limits.DefaultTopN = cfg.Recommend.DefaultTopN
	}
	if cfg.Recommend.MaxTopN > 0 {
		rc.Limits.MaxTopN = cfg.Recommend.MaxTopN
	}
	if cfg.Recommend.CacheTTL > 0 {
		rc.Cache.TTL = cfg.Recommend.CacheTTL
	} else {
		rc.Cache.Enabled = false
	}
	return rc
}

// initRecommend creates the service and loads the catalog the selector
// points at. A catalog that fails to load leaves the service running without
// one; readiness reports it and an upload or source switch can recover.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(ctx context.Context, cfg *config.Config, store feedback.Store, selector *catalog.SourceSelector, logger zerolog.Logger) (*recommend.Service, error) {
	svc, err := recommend.NewService(buildServiceConfig(cfg), store, logger)
	if err != nil {
		return nil, fmt.Errorf("create recommendation service: %w", err)
	}

	path := selector.Path()
	if err := svc.ReloadCatalog(ctx, path); err != nil {
		logger.Error().Err(err).
			Str("path", path).
			Str("source", string(selector.Current())).
			Msg("initial catalog load failed, serving without a catalog")
		return svc, nil
	}

	logger.Info().
		Str("path", path).
		Int("songs", svc.Status().Items).
		Msg("catalog loaded")
	return svc, nil
}

// addRetrain registers scheduled and event-driven retraining.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func addRetrain(cfg *config.Config, svc *recommend.Service, bus *events.Bus, tree *supervisor.SupervisorTree, logger zerolog.Logger) {
	tree.AddDataService(services.NewRetrainService(svc, services.RetrainServiceConfig{
		OnStartup: true,
		Interval:  cfg.Recommend.RetrainInterval,
	}, logger))

	if cfg.Recommend.RetrainOnFeedback {
		bus.OnFeedbackRecorded("retrain", func(ctx context.Context, _ events.FeedbackRecorded) error {
			return svc.Retrain(ctx)
		})
		logger.Info().Msg("retrain on feedback enabled")
	}
}
