// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

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
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
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

	// Recommendation Engine Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests by outcome",
		},
		[]string{"outcome"}, // "ok", "empty", "error"
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Time spent scoring and sampling one recommendation request",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		},
	)

	RecommendCandidatesScored = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_candidates_scored",
			Help:    "Number of candidates overlapping the month's genre space",
			Buckets: prometheus.ExponentialBuckets(10, 4, 8), // 10 .. 163840
		},
	)

	LoadRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "load_rows_total",
			Help: "Rows read at startup by source and outcome",
		},
		[]string{"source", "outcome"}, // source: "catalog", "history", "upload"
	)

	DatasetEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dataset_entries",
			Help: "Size of the loaded datasets",
		},
		[]string{"dataset"}, // "catalog", "candidates", "history", "months"
	)

	// Poster Metrics
	PosterLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poster_lookups_total",
			Help: "Total number of poster resolutions by result",
		},
		[]string{"result"}, // "cached", "found", "placeholder", "error"
	)

	PosterAPIDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "poster_api_duration_seconds",
			Help:    "TMDb search call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
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

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions (TTL expiry)",
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

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
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

// RecordRecommendation records one engine call. items is the number of
// recommendations returned, scored the number of candidates scored.
func RecordRecommendation(items, scored int, duration time.Duration, err error) {
	switch {
	case err != nil:
		RecommendRequests.WithLabelValues("error").Inc()
		return
	case items == 0:
		RecommendRequests.WithLabelValues("empty").Inc()
	default:
		RecommendRequests.WithLabelValues("ok").Inc()
	}
	RecommendDuration.Observe(duration.Seconds())
	RecommendCandidatesScored.Observe(float64(scored))
}

// RecordLoad counts the rows one load kept and dropped. Reasons with a zero
// count are skipped so unused label pairs never appear.
func RecordLoad(source string, kept int, dropped map[string]int) {
	LoadRows.WithLabelValues(source, "kept").Add(float64(kept))
	for reason, n := range dropped {
		if n > 0 {
			LoadRows.WithLabelValues(source, "dropped_"+reason).Add(float64(n))
		}
	}
}

// SetDatasetSizes publishes the loaded dataset sizes.
func SetDatasetSizes(catalog, candidates, history, months int) {
	DatasetEntries.WithLabelValues("catalog").Set(float64(catalog))
	DatasetEntries.WithLabelValues("candidates").Set(float64(candidates))
	DatasetEntries.WithLabelValues("history").Set(float64(history))
	DatasetEntries.WithLabelValues("months").Set(float64(months))
}

// RecordPosterLookup counts one poster resolution.
func RecordPosterLookup(result string) {
	PosterLookups.WithLabelValues(result).Inc()
}

// RecordCacheAccess counts a hit or miss on the named cache.
func RecordCacheAccess(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
	} else {
		CacheMisses.WithLabelValues(cacheType).Inc()
	}
}
