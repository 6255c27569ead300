// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package recommend

import (
	"fmt"
)

// Selection modes.
const (
	SelectionUniform = "uniform"
	SelectionMMR     = "mmr"
)

// Config contains the tunables of the recommendation engine.
type Config struct {
	// EpochYear is the year whose January is month index 1.
	EpochYear int `json:"epoch_year"`

	// TopN is how many of the best-scoring candidates selection draws from.
	TopN int `json:"top_n"`

	// SelectN is how many recommendations are returned.
	SelectN int `json:"select_n"`

	// Selection picks the final items out of the top slice: "uniform" or "mmr".
	Selection string `json:"selection"`

	// MMRLambda balances relevance against genre diversity for "mmr".
	MMRLambda float64 `json:"mmr_lambda"`

	// MinRating and MinVotes are the catalog admission thresholds.
	MinRating float64 `json:"min_rating"`
	MinVotes  int     `json:"min_votes"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() *Config {
	return &Config{
		EpochYear: DefaultEpochYear,
		TopN:      200,
		SelectN:   8,
		Selection: SelectionUniform,
		MMRLambda: 0.7,
		MinRating: 7.0,
		MinVotes:  1000,
	}
}

// CatalogOptions returns the thresholds as catalog build options.
func (c *Config) CatalogOptions() CatalogOptions {
	return CatalogOptions{MinRating: c.MinRating, MinVotes: c.MinVotes}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.EpochYear < 1 {
		return fmt.Errorf("epoch_year must be positive, got %d", c.EpochYear)
	}
	if c.TopN < 1 {
		return fmt.Errorf("top_n must be positive, got %d", c.TopN)
	}
	if c.SelectN < 1 {
		return fmt.Errorf("select_n must be positive, got %d", c.SelectN)
	}
	switch c.Selection {
	case SelectionUniform, SelectionMMR:
	default:
		return fmt.Errorf("selection must be %q or %q, got %q", SelectionUniform, SelectionMMR, c.Selection)
	}
	if c.MMRLambda < 0 || c.MMRLambda > 1 {
		return fmt.Errorf("mmr_lambda must be in [0, 1], got %f", c.MMRLambda)
	}
	if c.MinRating < 0 || c.MinRating > 10 {
		return fmt.Errorf("min_rating must be in [0, 10], got %f", c.MinRating)
	}
	if c.MinVotes < 0 {
		return fmt.Errorf("min_votes must be non-negative, got %d", c.MinVotes)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
