// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package middleware

import (
	"net/http"
	"time"

	"github.com/tomtom215/cinemonth/internal/logging"
)

// DefaultSlowThreshold is used when AccessLog gets a non-positive threshold.
const DefaultSlowThreshold = time.Second

// AccessLog logs every request at debug level and any request slower than
// slow at warn level. It must run after RequestID to pick up the IDs.
func AccessLog(slow time.Duration) func(http.Handler) http.Handler {
	if slow <= 0 {
		slow = DefaultSlowThreshold
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := newStatusWriter(w)

			next.ServeHTTP(sw, r)

			elapsed := time.Since(start)
			logger := logging.Ctx(r.Context())
			event := logger.Debug()
			msg := "request served"
			if elapsed > slow {
				event = logger.Warn().Dur("threshold", slow)
				msg = "slow request"
			}
			event.
				Str("method", r.Method).
				Str("route", RoutePattern(r)).
				Str("path", r.URL.Path).
				Int("status", sw.status).
				Int("bytes", sw.bytes).
				Dur("duration", elapsed).
				Msg(msg)
		})
	}
}
