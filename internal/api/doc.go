// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

/*
Package api serves the Setlist HTTP API under /api/v1 using the Chi router.

Every JSON response uses one envelope:

	{"success": true, "data": ..., "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 1}}
	{"success": false, "error": {"code": "NOT_FOUND", "message": "..."}, "meta": {...}}

Error codes: BAD_REQUEST, NOT_FOUND, VALIDATION_FAILED, TOO_MANY_REQUESTS,
SERVICE_UNAVAILABLE, INTERNAL_ERROR.

# Routes

	GET  /api/v1/health/live
	GET  /api/v1/health/ready
	GET  /api/v1/songs
	GET  /api/v1/songs/{id}
	GET  /api/v1/songs/{id}/similar?top_n=
	POST /api/v1/recommend
	POST /api/v1/feedback
	POST /api/v1/retrain
	GET  /api/v1/trending?limit=
	GET  /api/v1/admin/feedback-stats
	GET  /api/v1/admin/song-popularity
	GET  /api/v1/admin/user-sessions?limit=
	GET  /api/v1/catalog/meta
	GET  /api/v1/catalog/source
	PUT  /api/v1/catalog/source
	POST /api/v1/catalog/upload
	GET  /api/v1/catalog/demo
	GET  /metrics

# Middleware

Global: request id, real IP, panic recovery, CORS. API routes add rate
limiting (go-chi/httprate), Prometheus instrumentation and gzip. Health
routes get a permissive separate limiter so probes are never starved by
client traffic.

# Side effects

POST /recommend and POST /feedback append a record to the session log.
POST /feedback also publishes a feedback.recorded event when an
EventPublisher is attached. Session and event failures are logged and do
not fail the request; the feedback log write does.
*/
package api
