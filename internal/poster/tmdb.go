// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package poster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/cinemonth/internal/metrics"
)

// ErrNoMatch is returned when the search has no result with a poster.
var ErrNoMatch = errors.New("no poster found")

// maxErrorBodySize limits how much of an error response is read.
const maxErrorBodySize = 4 * 1024

// Resolver finds the poster URL of a title.
type Resolver interface {
	ResolvePoster(ctx context.Context, title string, year int) (string, error)
}

// TMDbConfig configures the TMDb search client.
type TMDbConfig struct {
	APIKey       string
	BaseURL      string // e.g. https://api.themoviedb.org/3
	ImageBaseURL string // e.g. https://image.tmdb.org/t/p/w200
	Timeout      time.Duration
	RateLimit    float64 // requests per second, 0 disables limiting
	RateBurst    int
}

// TMDbClient searches TMDb for movie posters.
type TMDbClient struct {
	httpClient   *http.Client
	baseURL      string
	imageBaseURL string
	apiKey       string
	limiter      *rate.Limiter
}

// NewTMDbClient creates a client. It does not contact TMDb.
func NewTMDbClient(cfg TMDbConfig) *TMDbClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return &TMDbClient{
		httpClient:   &http.Client{Timeout: timeout},
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		imageBaseURL: strings.TrimRight(cfg.ImageBaseURL, "/"),
		apiKey:       cfg.APIKey,
		limiter:      limiter,
	}
}

// searchResponse is the part of /search/movie we read.
type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	PosterPath  string `json:"poster_path"`
}

// ResolvePoster searches by title and prefers results released in year. If
// none match the year, the unfiltered results are used. The first result
// with a poster wins.
func (c *TMDbClient) ResolvePoster(ctx context.Context, title string, year int) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	query := url.Values{}
	query.Set("api_key", c.apiKey)
	query.Set("query", title)
	reqURL := c.baseURL + "/search/movie?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.PosterAPIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("tmdb search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize)) //nolint:errcheck // diagnostics only
		return "", fmt.Errorf("tmdb search: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return "", fmt.Errorf("decode tmdb response: %w", err)
	}

	path := pickPoster(sr.Results, year)
	if path == "" {
		return "", ErrNoMatch
	}
	return c.imageBaseURL + path, nil
}

// pickPoster returns the poster path of the first year-matching result with
// a poster, falling back to the first result with a poster.
func pickPoster(results []searchResult, year int) string {
	prefix := strconv.Itoa(year)
	for _, r := range results {
		if r.PosterPath != "" && strings.HasPrefix(r.ReleaseDate, prefix) {
			return r.PosterPath
		}
	}
	for _, r := range results {
		if r.PosterPath != "" {
			return r.PosterPath
		}
	}
	return ""
}
