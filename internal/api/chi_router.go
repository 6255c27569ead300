// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/cinemonth/internal/middleware"
)

// slowRequestThreshold is where the access log switches to warn.
const slowRequestThreshold = 2 * time.Second

// Router binds a Handler to its routes.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil middleware config means defaults.
func NewRouter(handler *Handler, cfg *ChiMiddlewareConfig) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(cfg),
	}
}

// SetupChi builds the chi handler tree.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()
	h := router.handler
	mw := router.chiMiddleware

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.AccessLog(slowRequestThreshold))
	r.Use(middleware.PrometheusMetrics)
	r.Use(mw.CORS())
	r.Use(chimiddleware.Compress(5, "application/json"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
	})

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(mw.RateLimitCustom("health", RateLimitHealth))
		r.Use(APISecurityHeaders())
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.RateLimit("api"))
		r.Use(APISecurityHeaders())

		r.Get("/months", h.Months)
		r.Get("/profile/{month}", h.Profile)
		r.Get("/recommendations/{month}", h.Recommendations)
		r.Get("/watched", h.Watched)
		r.Get("/wrapped/{year}", h.Wrapped)
		r.With(mw.RateLimitCustom("upload", RateLimitUpload)).Post("/wrapped/upload", h.WrappedUpload)
	})

	r.Group(func(r chi.Router) {
		r.Use(mw.RateLimit("legacy"))
		r.Post("/recommend", h.LegacyRecommend)
		r.Post("/watched", h.LegacyWatched)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
