// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package cache

import (
	"context"
	"time"

	"github.com/tomtom215/cinemonth/internal/logging"
)

// Sweeper is a cache that can drop its expired entries.
type Sweeper interface {
	Name() string
	Cleanup() int
}

// Janitor periodically sweeps a cache. It implements suture.Service.
type Janitor struct {
	cache    Sweeper
	interval time.Duration
}

// NewJanitor creates a janitor sweeping c every interval.
func NewJanitor(c Sweeper, interval time.Duration) *Janitor {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Janitor{cache: c, interval: interval}
}

// Serve sweeps until ctx is canceled.
func (j *Janitor) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n := j.cache.Cleanup(); n > 0 {
				logging.Debug().Str("cache", j.cache.Name()).Int("removed", n).Msg("Swept expired cache entries")
			}
		}
	}
}

// String identifies the service in supervisor logs.
func (j *Janitor) String() string {
	return "cache-janitor-" + j.cache.Name()
}
