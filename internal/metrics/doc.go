// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

/*
Package metrics provides Prometheus metrics collection and export.

All collectors are registered on the default registry through promauto and
exposed at GET /metrics in Prometheus text format:

	curl http://localhost:5000/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)

Recommendation Metrics:
  - recommend_duration_seconds: Scoring latency (histogram)
    Labels: operation (recommend, similar)
  - recommend_retrain_total: Profile rebuilds (counter)
    Labels: result (success, error)
  - recommend_retrain_duration_seconds: Profile rebuild time (histogram)
  - recommend_profiles: Pseudo-user profiles in the active snapshot (gauge)
  - catalog_items: Songs in the active catalog (gauge)
  - catalog_reloads_total: Catalog reloads (counter)
    Labels: result

Feedback Metrics:
  - feedback_recorded_total: Feedback entries appended (counter)
    Labels: feedback (like, dislike)
  - feedback_store_duration_seconds: Store operation latency (histogram)
    Labels: backend, operation
  - feedback_store_errors_total: Store operation failures (counter)
    Labels: backend, operation

Cache and resilience:
  - cache_hits_total, cache_misses_total, cache_entries
    Labels: cache_type
  - circuit_breaker_state, circuit_breaker_requests_total,
    circuit_breaker_state_transitions_total
    Labels: name

Events:
  - events_published_total, events_consumed_total
    Labels: topic (and result for consumed)

# Usage

	start := time.Now()
	songs, err := svc.Recommend(ctx, prefs, topN)
	metrics.RecordRecommend("recommend", time.Since(start))
*/
package metrics
