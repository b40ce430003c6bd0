// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/setlist/internal/middleware"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router; a nil middleware factory uses the defaults.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: mw}
}

// SetupChi builds the HTTP handler for all routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).Error(http.StatusMethodNotAllowed, ErrCodeBadRequest, "Method not allowed")
	})

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)
		r.Use(middleware.Compression)

		r.Get("/songs", router.handler.Songs)
		r.Get("/songs/{id}", router.handler.Song)
		r.Get("/songs/{id}/similar", router.handler.SimilarSongs)
		r.Post("/recommend", router.handler.Recommend)
		r.Post("/feedback", router.handler.Feedback)
		r.Get("/trending", router.handler.Trending)
		r.With(router.chiMiddleware.RateLimitWrite()).Post("/retrain", router.handler.Retrain)

		r.Route("/admin", func(r chi.Router) {
			r.Get("/feedback-stats", router.handler.FeedbackStats)
			r.Get("/song-popularity", router.handler.SongPopularity)
			r.Get("/user-sessions", router.handler.UserSessions)
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/meta", router.handler.CatalogMeta)
			r.Get("/source", router.handler.CatalogSource)
			r.Get("/demo", router.handler.DownloadDemo)
			r.Group(func(r chi.Router) {
				r.Use(router.chiMiddleware.RateLimitWrite())
				r.Put("/source", router.handler.SetCatalogSource)
				r.Post("/upload", router.handler.UploadCatalog)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
