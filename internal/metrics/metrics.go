// Setlist - Song Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/setlist

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Metrics
	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Duration of scoring requests in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		},
		[]string{"operation"},
	)

	RetrainTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_retrain_total",
			Help: "Total number of profile rebuilds",
		},
		[]string{"result"},
	)

	RetrainDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_retrain_duration_seconds",
			Help:    "Duration of profile rebuilds in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	ProfilesGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_profiles",
			Help: "Number of pseudo-user profiles in the active snapshot",
		},
	)

	CatalogItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_items",
			Help: "Number of songs in the active catalog",
		},
	)

	CatalogReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_reloads_total",
			Help: "Total number of catalog reload attempts",
		},
		[]string{"result"},
	)

	// Feedback Metrics
	FeedbackRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_recorded_total",
			Help: "Total number of feedback entries appended",
		},
		[]string{"feedback"},
	)

	FeedbackStoreDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feedback_store_duration_seconds",
			Help:    "Duration of feedback store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "operation"},
	)

	FeedbackStoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_store_errors_total",
			Help: "Total number of failed feedback store operations",
		},
		[]string{"backend", "operation"},
	)

	// Session Metrics
	SessionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sessions_recorded_total",
			Help: "Total number of user session records written",
		},
		[]string{"kind", "result"}, // kind: "recommend", "feedback"
	)

	CatalogUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_uploads_total",
			Help: "Total number of catalog CSV uploads",
		},
		[]string{"result"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Event Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of events published",
		},
		[]string{"topic"},
	)

	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_consumed_total",
			Help: "Total number of events handled",
		},
		[]string{"topic", "result"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommend records the latency of a scoring operation.
func RecordRecommend(operation string, duration time.Duration) {
	RecommendDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordRetrain records a profile rebuild and the resulting profile count.
func RecordRetrain(duration time.Duration, profiles int, err error) {
	RetrainDuration.Observe(duration.Seconds())
	if err != nil {
		RetrainTotal.WithLabelValues("error").Inc()
		return
	}
	RetrainTotal.WithLabelValues("success").Inc()
	ProfilesGauge.Set(float64(profiles))
}

// RecordCatalogReload records a catalog reload attempt.
func RecordCatalogReload(items int, err error) {
	if err != nil {
		CatalogReloads.WithLabelValues("error").Inc()
		return
	}
	CatalogReloads.WithLabelValues("success").Inc()
	CatalogItems.Set(float64(items))
}

// RecordFeedbackStore records a feedback store operation.
func RecordFeedbackStore(backend, operation string, duration time.Duration, err error) {
	FeedbackStoreDuration.WithLabelValues(backend, operation).Observe(duration.Seconds())
	if err != nil {
		FeedbackStoreErrors.WithLabelValues(backend, operation).Inc()
	}
}

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
	} else {
		CacheMisses.WithLabelValues(cacheType).Inc()
	}
}

// RecordEventConsumed records the outcome of an event handler.
func RecordEventConsumed(topic string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	EventsConsumed.WithLabelValues(topic, result).Inc()
}

// RecordSession records a session log write.
func RecordSession(kind string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	SessionsRecorded.WithLabelValues(kind, result).Inc()
}

// RecordCatalogUpload records the outcome of a catalog upload.
func RecordCatalogUpload(err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	CatalogUploads.WithLabelValues(result).Inc()
}
