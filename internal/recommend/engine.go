// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package recommend

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Note: This package has no dependencies on other internal packages. File
// readers, poster enrichment and the HTTP layer all sit on top of it.

// RandSource returns the random generator for one request.
type RandSource func() *rand.Rand

// freshRand seeds a new generator from the runtime's global entropy.
func freshRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // sampling, not security
}

// Engine answers profile, recommendation and watched-list queries over a
// frozen State. It is safe for concurrent use.
type Engine struct {
	config   *Config
	state    *State
	logger   zerolog.Logger
	selector Selector
	rand     RandSource

	requestCount atomic.Int64
	emptyCount   atomic.Int64
	errorCount   atomic.Int64
}

// Option customizes an Engine.
type Option func(*Engine)

// WithSelector replaces the uniform sampler.
func WithSelector(sel Selector) Option {
	return func(e *Engine) {
		if sel != nil {
			e.selector = sel
		}
	}
}

// WithRandSource injects the per-request random generator factory.
func WithRandSource(src RandSource) Option {
	return func(e *Engine) {
		if src != nil {
			e.rand = src
		}
	}
}

// NewEngine creates an engine over state.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, state *State, logger zerolog.Logger, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if state == nil {
		return nil, fmt.Errorf("state is required")
	}
	if state.EpochYear() != cfg.EpochYear {
		return nil, fmt.Errorf("state epoch %d does not match config epoch %d", state.EpochYear(), cfg.EpochYear)
	}

	e := &Engine{
		config:   cfg.Clone(),
		state:    state,
		logger:   logger.With().Str("component", "recommend").Logger(),
		selector: UniformSelector{},
		rand:     freshRand,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.logger.Info().
		Int("catalog", state.Catalog().Len()).
		Int("candidates", len(state.Candidates())).
		Int("history", state.History().Len()).
		Int("months", len(state.profiles)).
		Str("selector", e.selector.Name()).
		Msg("recommendation engine ready")

	return e, nil
}

// State returns the snapshot the engine reads from.
func (e *Engine) State() *State {
	return e.state
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Recommend scores the unwatched catalog against the month's profile and
// returns a sampled subset of the top slice. Months without history give an
// empty response.
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	if err := ctx.Err(); err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	req = e.prepareRequest(req)
	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Int("month", req.Month).
		Logger()

	result, err := Recommend(ctx, req.Month, e.state.profiles, e.state.scorer, e.state.watched,
		req.TopN, req.SelectN, e.selector, e.rand())
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	resp := &Response{
		Month:           req.Month,
		Items:           result.Items,
		TotalCandidates: len(e.state.candidates),
		Scored:          result.Scored,
		Ranked:          result.Ranked,
		Metadata: ResponseMetadata{
			RequestID: req.RequestID,
			Selector:  e.selector.Name(),
			TopN:      req.TopN,
			SelectN:   req.SelectN,
			LatencyMS: time.Since(start).Milliseconds(),
			Timestamp: time.Now(),
		},
	}

	if len(resp.Items) == 0 {
		e.emptyCount.Add(1)
		logger.Debug().Int("scored", result.Scored).Msg("no recommendations for month")
		return resp, nil
	}

	logger.Debug().
		Int("scored", result.Scored).
		Int("ranked", result.Ranked).
		Int("returned", len(resp.Items)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// prepareRequest applies defaults and generates a request ID if needed.
// Negative limits pass through so Recommend rejects them.
func (e *Engine) prepareRequest(req Request) Request {
	if req.RequestID == "" {
		req.RequestID = fmt.Sprintf("rec-%d-%d", time.Now().UnixNano(), rand.IntN(10000)) //nolint:gosec // not security sensitive
	}
	if req.TopN == 0 {
		req.TopN = e.config.TopN
	}
	if req.SelectN == 0 {
		req.SelectN = e.config.SelectN
	}
	return req
}

// Profile returns the month's genre counts and their distribution. A month
// without a profile gives empty maps.
func (e *Engine) Profile(month int) (*Profile, error) {
	if err := ValidateMonth(month); err != nil {
		return nil, err
	}

	counter := e.state.profiles[month]
	counts := make(map[string]int, len(counter))
	for g, n := range counter {
		counts[g] = n
	}

	return &Profile{
		Month:        month,
		Label:        MonthLabel(month, e.state.epochYear),
		Counts:       counts,
		Distribution: GenreCounter(counts).Normalize(),
		TotalTags:    GenreCounter(counts).Total(),
		Films:        len(e.state.history.byMonth[month]),
	}, nil
}

// WatchedForMonth returns the keys watched in one month, in watch order.
func (e *Engine) WatchedForMonth(month int) ([]MovieKey, error) {
	if err := ValidateMonth(month); err != nil {
		return nil, err
	}
	return keysOf(e.state.history.ForMonth(month)), nil
}

// WatchedAll returns every watched key across all months, in watch order.
func (e *Engine) WatchedAll() []MovieKey {
	return keysOf(e.state.history.Records())
}

func keysOf(records []WatchRecord) []MovieKey {
	keys := make([]MovieKey, len(records))
	for i := range records {
		keys[i] = records[i].Key
	}
	return keys
}

// Months lists the month indices with watches since the epoch, ascending.
func (e *Engine) Months() []MonthSummary {
	months := make([]int, 0, len(e.state.history.byMonth))
	for m := range e.state.history.byMonth {
		if m >= 1 {
			months = append(months, m)
		}
	}
	slices.Sort(months)

	out := make([]MonthSummary, len(months))
	for i, m := range months {
		_, hasProfile := e.state.profiles[m]
		out[i] = MonthSummary{
			Month:      m,
			Label:      MonthLabel(m, e.state.epochYear),
			Films:      len(e.state.history.byMonth[m]),
			HasProfile: hasProfile,
		}
	}
	return out
}

// Stats returns a snapshot of engine counters and dataset sizes.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests:       e.requestCount.Load(),
		EmptyResponses: e.emptyCount.Load(),
		Errors:         e.errorCount.Load(),
		Catalog:        e.state.catalog.Len(),
		Candidates:     len(e.state.candidates),
		History:        e.state.history.Len(),
		Months:         len(e.state.profiles),
	}
}
