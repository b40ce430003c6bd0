// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

/*
Package middleware provides net/http middleware shared by the API router.

  - RequestID: echoes or generates X-Request-ID and seeds the logging
    context with request and correlation ids
  - PrometheusMetrics: request totals, latency histogram and in-flight
    gauge labeled by chi route pattern
  - Compression: pooled gzip writers for clients sending
    Accept-Encoding: gzip

All three have the standard func(http.Handler) http.Handler shape and can
be passed straight to chi's Router.Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression)
*/
package middleware
