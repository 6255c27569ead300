// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

/*
Package middleware provides the HTTP middleware shared by every Cinemonth route.

All middleware uses the chi signature func(http.Handler) http.Handler and can be
installed with r.Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(time.Second))
	r.Use(middleware.PrometheusMetrics)

RequestID accepts a sane X-Request-ID from an upstream proxy or generates a
UUID, echoes it in the response, and stores it in the logging context so
logging.Ctx(r.Context()) tags every line with request_id and correlation_id.

PrometheusMetrics records api_requests_total and api_request_duration_seconds
labelled with the chi route pattern ("/api/v1/profile/{month}") rather than
the raw path, which keeps label cardinality bounded.

AccessLog writes one debug line per request and a warning for requests slower
than the threshold.
*/
package middleware
