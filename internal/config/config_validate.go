// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/cinemonth/internal/logging"
	"github.com/tomtom215/cinemonth/internal/recommend"
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateData(); err != nil {
		return err
	}
	if err := c.RecommendEngineConfig().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	if err := c.validatePoster(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	switch c.Server.Environment {
	case "development", "production":
	default:
		return fmt.Errorf("ENVIRONMENT must be development or production, got %q", c.Server.Environment)
	}
	return nil
}

func (c *Config) validateData() error {
	if strings.TrimSpace(c.Data.CatalogPath) == "" {
		return fmt.Errorf("CATALOG_PATH is required")
	}
	if strings.TrimSpace(c.Data.WatchedPath) == "" {
		return fmt.Errorf("WATCHED_PATH is required")
	}
	if c.Data.UploadMaxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive, got %d", c.Data.UploadMaxBytes)
	}
	return nil
}

func (c *Config) validatePoster() error {
	if !c.Poster.Enabled {
		return nil
	}
	if c.Poster.BaseURL == "" || c.Poster.ImageBaseURL == "" {
		return fmt.Errorf("poster base URLs are required when posters are enabled")
	}
	if c.Poster.MaxConcurrency < 1 {
		return fmt.Errorf("POSTER_MAX_CONCURRENCY must be at least 1, got %d", c.Poster.MaxConcurrency)
	}
	if c.Poster.RequestTimeout <= 0 || c.Poster.EnrichTimeout <= 0 {
		return fmt.Errorf("poster timeouts must be positive")
	}
	if c.Poster.RateLimit <= 0 || c.Poster.RateBurst < 1 {
		return fmt.Errorf("TMDB_RATE_LIMIT and TMDB_RATE_BURST must be positive")
	}
	if c.Poster.BreakerFailRatio <= 0 || c.Poster.BreakerFailRatio > 1 {
		return fmt.Errorf("TMDB_BREAKER_FAIL_RATIO must be in (0, 1], got %f", c.Poster.BreakerFailRatio)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// RecommendEngineConfig converts the recommend section to engine config.
func (c *Config) RecommendEngineConfig() *recommend.Config {
	return &recommend.Config{
		EpochYear: c.Recommend.EpochYear,
		TopN:      c.Recommend.TopN,
		SelectN:   c.Recommend.SelectN,
		Selection: c.Recommend.Selection,
		MMRLambda: c.Recommend.MMRLambda,
		MinRating: c.Recommend.MinRating,
		MinVotes:  c.Recommend.MinVotes,
	}
}

// LoggerConfig converts the logging section to logger config.
func (c *Config) LoggerConfig() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = c.Logging.Level
	lc.Format = c.Logging.Format
	lc.Caller = c.Logging.Caller
	return lc
}
