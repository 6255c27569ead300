// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

/*
Package metrics defines the Prometheus metrics Cinemonth exports at /metrics.

All metrics are registered on the default registry through promauto when the
package is imported, so callers only record values:

	metrics.RecordAPIRequest("GET", "/api/v1/recommendations/{month}", "200", elapsed)
	metrics.RecordRecommendation(itemCount, scored, elapsed, err)

# Available Metrics

HTTP:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

Recommendation engine:
  - recommend_requests_total{outcome}: outcome is ok, empty or error
  - recommend_duration_seconds
  - recommend_candidates_scored
  - dataset_entries{dataset}: catalog, candidates, history, months

Posters:
  - poster_lookups_total{result}: cached, found, placeholder, error
  - poster_api_duration_seconds
  - cache_hits_total, cache_misses_total, cache_entries, cache_evictions_total{cache_type}
  - circuit_breaker_state, circuit_breaker_requests_total,
    circuit_breaker_consecutive_failures, circuit_breaker_state_transitions_total

# Example Alerts

	- alert: PosterBreakerOpen
	  expr: circuit_breaker_state{name="tmdb-api"} == 2
	  for: 5m
*/
package metrics
