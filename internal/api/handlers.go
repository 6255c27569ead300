// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package api

import (
	"context"
	"time"

	"github.com/tomtom215/cinemonth/internal/recommend"
)

// Poster modes reported by the readiness probe.
const (
	PosterModeTMDb        = "tmdb"
	PosterModePlaceholder = "placeholder"
)

// DefaultUploadMaxBytes caps wrapped uploads when the config leaves it unset.
const DefaultUploadMaxBytes = 32 << 20

// PosterEnricher attaches one poster URL to each recommended item, in order.
type PosterEnricher interface {
	Enrich(ctx context.Context, items []recommend.ScoredItem) []string
}

// Dependencies wires a Handler.
type Dependencies struct {
	Engine   *recommend.Engine
	Enricher PosterEnricher

	// Version is reported by the readiness probe.
	Version string

	// PosterMode is "tmdb" or "placeholder".
	PosterMode string

	// BreakerState reports the TMDb circuit breaker state. Optional.
	BreakerState func() string

	// UploadMaxBytes caps POST /api/v1/wrapped/upload bodies.
	UploadMaxBytes int64

	// RequestTimeout bounds one recommendation request, enrichment included.
	RequestTimeout time.Duration
}

// Handler contains the dependencies of the API handlers.
//
// Handler methods are split across files:
//   - handlers_health.go: liveness and readiness probes
//   - handlers_recommend.go: months, profile and recommendations
//   - handlers_watched.go: watched list
//   - handlers_wrapped.go: year-in-review
//   - handlers_legacy.go: the two front-end routes
type Handler struct {
	engine    *recommend.Engine
	enricher  PosterEnricher
	deps      Dependencies
	startTime time.Time
}

// NewHandler creates a handler. Engine is required; a nil Enricher returns
// items without posters.
func NewHandler(deps Dependencies) *Handler {
	if deps.UploadMaxBytes <= 0 {
		deps.UploadMaxBytes = DefaultUploadMaxBytes
	}
	if deps.PosterMode == "" {
		deps.PosterMode = PosterModePlaceholder
	}
	if deps.Version == "" {
		deps.Version = "dev"
	}
	return &Handler{
		engine:    deps.Engine,
		enricher:  deps.Enricher,
		deps:      deps,
		startTime: time.Now(),
	}
}

// posters returns one URL per item, or empty strings without an enricher.
func (h *Handler) posters(ctx context.Context, items []recommend.ScoredItem) []string {
	if h.enricher == nil {
		return make([]string, len(items))
	}
	return h.enricher.Enrich(ctx, items)
}

// requestContext applies the configured per-request timeout.
func (h *Handler) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.deps.RequestTimeout > 0 {
		return context.WithTimeout(ctx, h.deps.RequestTimeout)
	}
	return context.WithCancel(ctx)
}
