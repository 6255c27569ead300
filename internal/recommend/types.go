// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"
)

// Contract violations. Callers can match them with errors.Is.
var (
	// ErrInvalidMonth is returned for month indices below 1.
	ErrInvalidMonth = errors.New("month index must be >= 1")

	// ErrInvalidLimit is returned when topN or selectN is not positive.
	ErrInvalidLimit = errors.New("topN and selectN must be positive")
)

// MovieKey identifies a movie across the catalog and the watch history.
// Two records with the same title and year are the same movie.
type MovieKey struct {
	Title string `json:"name"`
	Year  int    `json:"year"`
}

// String renders the key the way the watched list displays it.
func (k MovieKey) String() string {
	return fmt.Sprintf("%s (%d)", k.Title, k.Year)
}

// KeySet is a set of movie keys.
type KeySet map[MovieKey]struct{}

// Has reports whether k is in the set.
func (s KeySet) Has(k MovieKey) bool {
	_, ok := s[k]
	return ok
}

// CatalogEntry is a recommendable movie or series.
type CatalogEntry struct {
	Key       MovieKey `json:"key"`
	TConst    string   `json:"tconst,omitempty"`
	TitleType string   `json:"title_type,omitempty"`
	Genres    []string `json:"genres"`
	Rating    float64  `json:"rating"`
	Votes     int      `json:"votes"`
}

// HasGenre reports whether the entry carries genre g.
func (e *CatalogEntry) HasGenre(g string) bool {
	return slices.Contains(e.Genres, g)
}

// WatchRecord is one dated entry of the watch log.
type WatchRecord struct {
	Key    MovieKey  `json:"key"`
	Date   time.Time `json:"date"`
	Month  int       `json:"month_index"`
	Genres []string  `json:"genres"`
	Rating *float64  `json:"rating,omitempty"`
	URI    string    `json:"uri,omitempty"`
}

// GenreCounter maps a genre label to its occurrence count.
type GenreCounter map[string]int

// Total returns the sum of all counts.
func (c GenreCounter) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Genres returns the labels in lexical order.
func (c GenreCounter) Genres() []string {
	genres := make([]string, 0, len(c))
	for g := range c {
		genres = append(genres, g)
	}
	slices.Sort(genres)
	return genres
}

// Normalize returns the counter as a distribution summing to 1.
// An empty or all-zero counter yields an empty map.
func (c GenreCounter) Normalize() map[string]float64 {
	total := c.Total()
	if total == 0 {
		return map[string]float64{}
	}
	dist := make(map[string]float64, len(c))
	for g, n := range c {
		dist[g] = float64(n) / float64(total)
	}
	return dist
}

// MonthlyGenreProfile maps a month index to that month's genre counter.
type MonthlyGenreProfile map[int]GenreCounter

// ScoredItem is a ranked candidate.
type ScoredItem struct {
	Entry CatalogEntry `json:"entry"`
	Score float64      `json:"score"`
	// Rank is the 1-based position in the score ordering.
	Rank int `json:"rank"`
}

// Selector picks n items out of the ranked top slice.
type Selector interface {
	Name() string
	Select(ctx context.Context, items []ScoredItem, n int, rng *rand.Rand) []ScoredItem
}

// Request describes a recommendation request. Zero limits fall back to the
// engine configuration.
type Request struct {
	Month     int
	TopN      int
	SelectN   int
	RequestID string
}

// Response is the outcome of a recommendation request.
type Response struct {
	Month int          `json:"month_index"`
	Items []ScoredItem `json:"items"`

	// TotalCandidates is the number of unwatched catalog entries.
	TotalCandidates int `json:"total_candidates"`

	// Scored is the number of candidates overlapping the month's genre space.
	Scored int `json:"scored"`

	// Ranked is the size of the top slice sampling drew from.
	Ranked int `json:"ranked"`

	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata carries request bookkeeping.
type ResponseMetadata struct {
	RequestID string    `json:"request_id"`
	Selector  string    `json:"selector"`
	TopN      int       `json:"top_n"`
	SelectN   int       `json:"select_n"`
	LatencyMS int64     `json:"latency_ms"`
	Timestamp time.Time `json:"timestamp"`
}

// Profile is the display form of one month's genre counter.
type Profile struct {
	Month        int                `json:"month_index"`
	Label        string             `json:"label"`
	Counts       map[string]int     `json:"counts"`
	Distribution map[string]float64 `json:"distribution"`
	TotalTags    int                `json:"total_tags"`
	Films        int                `json:"films"`
}

// MonthSummary describes a month that has watch history.
type MonthSummary struct {
	Month      int    `json:"month_index"`
	Label      string `json:"label"`
	Films      int    `json:"films"`
	HasProfile bool   `json:"has_profile"`
}

// Stats is a snapshot of engine counters.
type Stats struct {
	Requests       int64 `json:"requests"`
	EmptyResponses int64 `json:"empty_responses"`
	Errors         int64 `json:"errors"`
	Catalog        int   `json:"catalog"`
	Candidates     int   `json:"candidates"`
	History        int   `json:"history"`
	Months         int   `json:"months"`
}
