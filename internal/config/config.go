// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

// Package config loads Cinemonth configuration from defaults, an optional
// YAML file and environment variables, in that order of precedence.
package config

import (
	"time"
)

// Config is the complete application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Data      DataConfig      `koanf:"data"`
	Recommend RecommendConfig `koanf:"recommend"`
	Poster    PosterConfig    `koanf:"poster"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development or production
}

// DataConfig locates the datasets loaded at startup.
type DataConfig struct {
	// CatalogPath is the processed catalog CSV written by the preprocess command.
	CatalogPath string `koanf:"catalog_path"`

	// WatchedPath is a Letterboxd watched.csv or the full export ZIP.
	WatchedPath string `koanf:"watched_path"`

	// UploadMaxBytes caps wrapped-stats uploads.
	UploadMaxBytes int64 `koanf:"upload_max_bytes"`
}

// RecommendConfig holds the recommendation engine tunables.
type RecommendConfig struct {
	EpochYear int     `koanf:"epoch_year"`
	TopN      int     `koanf:"top_n"`
	SelectN   int     `koanf:"select_n"`
	Selection string  `koanf:"selection"` // uniform or mmr
	MMRLambda float64 `koanf:"mmr_lambda"`
	MinRating float64 `koanf:"min_rating"`
	MinVotes  int     `koanf:"min_votes"`
}

// PosterConfig holds the TMDb poster resolver settings.
type PosterConfig struct {
	Enabled            bool          `koanf:"enabled"`
	APIKey             string        `koanf:"api_key"`
	BaseURL            string        `koanf:"base_url"`
	ImageBaseURL       string        `koanf:"image_base_url"`
	PlaceholderBaseURL string        `koanf:"placeholder_base_url"`
	RequestTimeout     time.Duration `koanf:"request_timeout"`
	EnrichTimeout      time.Duration `koanf:"enrich_timeout"`
	CacheTTL           time.Duration `koanf:"cache_ttl"`
	MaxConcurrency     int           `koanf:"max_concurrency"`
	RateLimit          float64       `koanf:"rate_limit"` // requests per second
	RateBurst          int           `koanf:"rate_burst"`
	BreakerTimeout     time.Duration `koanf:"breaker_timeout"`
	BreakerMinRequests uint32        `koanf:"breaker_min_requests"`
	BreakerFailRatio   float64       `koanf:"breaker_fail_ratio"`
}

// SecurityConfig holds CORS and inbound rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration in order of increasing precedence:
//  1. Built-in defaults
//  2. Config file (CONFIG_PATH, or the first of DefaultConfigPaths that exists)
//  3. Environment variables
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// Addr returns host:port for the HTTP listener.
func (s *ServerConfig) Addr() string {
	return joinHostPort(s.Host, s.Port)
}

// IsProduction reports whether the server runs in production mode.
func (s *ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}
