// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where config files are searched, first match wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cinemonth/config.yaml",
	"/etc/cinemonth/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns the built-in defaults.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8050,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Data: DataConfig{
			CatalogPath:    "data/processed_movies.csv",
			WatchedPath:    "data/watched.csv",
			UploadMaxBytes: 32 << 20, // 32MB
		},
		Recommend: RecommendConfig{
			EpochYear: 2025,
			TopN:      200,
			SelectN:   8,
			Selection: "uniform",
			MMRLambda: 0.7,
			MinRating: 7.0,
			MinVotes:  1000,
		},
		Poster: PosterConfig{
			Enabled:            true,
			APIKey:             "",
			BaseURL:            "https://api.themoviedb.org/3",
			ImageBaseURL:       "https://image.tmdb.org/t/p/w200",
			PlaceholderBaseURL: "https://dummyimage.com/200x300/000/fff&text=",
			RequestTimeout:     5 * time.Second,
			EnrichTimeout:      8 * time.Second,
			CacheTTL:           24 * time.Hour,
			MaxConcurrency:     8,
			RateLimit:          20,
			RateBurst:          10,
			BreakerTimeout:     60 * time.Second,
			BreakerMinRequests: 10,
			BreakerFailRatio:   0.6,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration from layered sources:
//  1. Defaults: built-in values
//  2. Config file: optional YAML file
//  3. Environment variables: explicit mapping, see envTransformFunc
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated strings when set via env.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields splits comma-separated env values for known slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to config paths.
// Unlisted variables are ignored.
var envMappings = map[string]string{
	// Server
	"http_host":        "server.host",
	"http_port":        "server.port",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	// Data
	"catalog_path":     "data.catalog_path",
	"watched_path":     "data.watched_path",
	"upload_max_bytes": "data.upload_max_bytes",

	// Recommendation engine
	"epoch_year":           "recommend.epoch_year",
	"recommend_top_n":      "recommend.top_n",
	"recommend_select_n":   "recommend.select_n",
	"recommend_selection":  "recommend.selection",
	"recommend_mmr_lambda": "recommend.mmr_lambda",
	"catalog_min_rating":   "recommend.min_rating",
	"catalog_min_votes":    "recommend.min_votes",

	// Posters
	"poster_enabled":              "poster.enabled",
	"tmdb_api_key":                "poster.api_key",
	"tmdb_base_url":               "poster.base_url",
	"tmdb_image_base_url":         "poster.image_base_url",
	"poster_placeholder_base_url": "poster.placeholder_base_url",
	"poster_request_timeout":      "poster.request_timeout",
	"poster_enrich_timeout":       "poster.enrich_timeout",
	"poster_cache_ttl":            "poster.cache_ttl",
	"poster_max_concurrency":      "poster.max_concurrency",
	"tmdb_rate_limit":             "poster.rate_limit",
	"tmdb_rate_burst":             "poster.rate_burst",
	"tmdb_breaker_timeout":        "poster.breaker_timeout",
	"tmdb_breaker_min_requests":   "poster.breaker_min_requests",
	"tmdb_breaker_fail_ratio":     "poster.breaker_fail_ratio",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to its config path.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - TMDB_API_KEY -> poster.api_key
//   - RECOMMEND_TOP_N -> recommend.top_n
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
