// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package poster

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/cinemonth/internal/cache"
	"github.com/tomtom215/cinemonth/internal/logging"
	"github.com/tomtom215/cinemonth/internal/metrics"
	"github.com/tomtom215/cinemonth/internal/recommend"
)

// Lookup results recorded in poster_lookups_total.
const (
	resultCached      = "cached"
	resultFound       = "found"
	resultPlaceholder = "placeholder"
	resultError       = "error"
)

// EnricherConfig configures an Enricher.
type EnricherConfig struct {
	PlaceholderBaseURL string
	Timeout            time.Duration // budget for one Enrich call
	MaxConcurrency     int
	CacheTTL           time.Duration
}

// Enricher resolves posters for a batch of recommendations.
type Enricher struct {
	resolver    Resolver
	cache       *cache.TTL[recommend.MovieKey, string]
	placeholder string
	timeout     time.Duration
	concurrency int
}

// NewEnricher creates an enricher. A nil resolver yields placeholders only.
func NewEnricher(resolver Resolver, cfg EnricherConfig) *Enricher {
	concurrency := cfg.MaxConcurrency
	if concurrency < 1 {
		concurrency = 8
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Enricher{
		resolver:    resolver,
		cache:       cache.New[recommend.MovieKey, string]("poster", ttl),
		placeholder: cfg.PlaceholderBaseURL,
		timeout:     cfg.Timeout,
		concurrency: concurrency,
	}
}

// Cache exposes the poster cache so a janitor can sweep it.
func (e *Enricher) Cache() *cache.TTL[recommend.MovieKey, string] {
	return e.cache
}

// Enrich returns one poster URL per item, in item order. It never fails:
// items whose lookup errors or times out get a placeholder.
func (e *Enricher) Enrich(ctx context.Context, items []recommend.ScoredItem) []string {
	urls := make([]string, len(items))
	if len(items) == 0 {
		return urls
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	g := new(errgroup.Group)
	g.SetLimit(e.concurrency)
	for i := range items {
		key := items[i].Entry.Key
		g.Go(func() error {
			urls[i] = e.resolve(ctx, key)
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // workers never return errors

	return urls
}

// Resolve returns the poster URL of a single title.
func (e *Enricher) Resolve(ctx context.Context, key recommend.MovieKey) string {
	return e.resolve(ctx, key)
}

func (e *Enricher) resolve(ctx context.Context, key recommend.MovieKey) string {
	if u, ok := e.cache.Get(key); ok {
		metrics.RecordPosterLookup(resultCached)
		return u
	}
	if e.resolver == nil {
		metrics.RecordPosterLookup(resultPlaceholder)
		return Placeholder(e.placeholder, key.Title)
	}

	u, err := e.resolver.ResolvePoster(ctx, key.Title, key.Year)
	switch {
	case err == nil:
		e.cache.Set(key, u)
		metrics.RecordPosterLookup(resultFound)
		return u
	case errors.Is(err, ErrNoMatch):
		metrics.RecordPosterLookup(resultPlaceholder)
	default:
		metrics.RecordPosterLookup(resultError)
		logging.Ctx(ctx).Debug().Err(err).Str("title", key.String()).Msg("Poster lookup failed")
	}
	return Placeholder(e.placeholder, key.Title)
}
