// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package recommend

import (
	"strings"
)

// imdbNull is the marker IMDB bulk files use for missing values.
const imdbNull = `\N`

// TitleRecord is a raw title row. Numeric fields are nil when missing or malformed.
type TitleRecord struct {
	TConst    string
	Title     string
	Year      *int
	TitleType string
	Genres    string
}

// RatingRecord is a raw rating row.
type RatingRecord struct {
	TConst        string
	AverageRating *float64
	NumVotes      *int
}

// CatalogRow is an already-joined catalog row, as stored in the processed catalog file.
type CatalogRow struct {
	TConst    string
	Title     string
	Year      *int
	TitleType string
	Genres    string
	Rating    *float64
	Votes     *int
}

// CatalogOptions holds the rating thresholds applied at load time.
type CatalogOptions struct {
	MinRating float64
	MinVotes  int
}

// DefaultCatalogOptions keeps titles rated 7.0 or better with at least 1000 votes.
func DefaultCatalogOptions() CatalogOptions {
	return CatalogOptions{MinRating: 7.0, MinVotes: 1000}
}

// CatalogStats counts what a catalog build kept and dropped.
type CatalogStats struct {
	Titles           int `json:"titles"`
	Ratings          int `json:"ratings"`
	Kept             int `json:"kept"`
	DroppedType      int `json:"dropped_type"`
	DroppedRating    int `json:"dropped_rating"`
	DroppedUnmatched int `json:"dropped_unmatched"`
	DroppedKey       int `json:"dropped_key"`
	DroppedDuplicate int `json:"dropped_duplicate"`
}

// Catalog is the immutable set of recommendable entries in load order.
type Catalog struct {
	entries []CatalogEntry
	byKey   map[MovieKey]int
}

// IsRetainedType reports whether a title type is a movie or a TV series.
func IsRetainedType(titleType string) bool {
	switch strings.ToLower(strings.TrimSpace(titleType)) {
	case "movie", "tvseries":
		return true
	default:
		return false
	}
}

// ParseGenres splits a genre field into a de-duplicated genre list.
// It accepts IMDB's comma form ("Action,Comedy") and a bracketed list
// literal ("['Action', 'Comedy']"). Missing values give an empty list.
func ParseGenres(field string) []string {
	field = strings.TrimSpace(field)
	if field == "" || field == imdbNull {
		return []string{}
	}
	field = strings.TrimPrefix(field, "[")
	field = strings.TrimSuffix(field, "]")

	parts := strings.Split(field, ",")
	genres := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		g := strings.Trim(strings.TrimSpace(p), `'"`)
		if g == "" || g == imdbNull {
			continue
		}
		if _, dup := seen[g]; dup {
			continue
		}
		seen[g] = struct{}{}
		genres = append(genres, g)
	}
	return genres
}

// BuildCatalog filters titles to movies and series, filters ratings to the
// thresholds and inner-joins them on tconst. Bad rows are dropped and
// counted, never returned as errors.
func BuildCatalog(titles []TitleRecord, ratings []RatingRecord, opts CatalogOptions) (*Catalog, CatalogStats) {
	stats := CatalogStats{Titles: len(titles), Ratings: len(ratings)}

	type rating struct {
		avg   float64
		votes int
	}
	qualified := make(map[string]rating, len(ratings))
	for i := range ratings {
		r := &ratings[i]
		if r.TConst == "" || r.AverageRating == nil || r.NumVotes == nil {
			stats.DroppedRating++
			continue
		}
		if *r.AverageRating < opts.MinRating || *r.NumVotes < opts.MinVotes {
			stats.DroppedRating++
			continue
		}
		qualified[r.TConst] = rating{avg: *r.AverageRating, votes: *r.NumVotes}
	}

	c := newCatalog(len(qualified))
	for i := range titles {
		t := &titles[i]
		if !IsRetainedType(t.TitleType) {
			stats.DroppedType++
			continue
		}
		if t.TConst == "" || t.Title == "" || t.Year == nil {
			stats.DroppedKey++
			continue
		}
		r, ok := qualified[t.TConst]
		if !ok {
			stats.DroppedUnmatched++
			continue
		}
		entry := CatalogEntry{
			Key:       MovieKey{Title: t.Title, Year: *t.Year},
			TConst:    t.TConst,
			TitleType: t.TitleType,
			Genres:    ParseGenres(t.Genres),
			Rating:    r.avg,
			Votes:     r.votes,
		}
		if !c.add(entry) {
			stats.DroppedDuplicate++
		}
	}

	stats.Kept = len(c.entries)
	return c, stats
}

// CatalogFromRows builds a catalog from pre-joined rows, re-applying the
// type and threshold filters so the catalog invariants hold for any input.
// Rows with an empty type are accepted as already filtered.
func CatalogFromRows(rows []CatalogRow, opts CatalogOptions) (*Catalog, CatalogStats) {
	stats := CatalogStats{Titles: len(rows), Ratings: len(rows)}
	c := newCatalog(len(rows))

	for i := range rows {
		row := &rows[i]
		if row.TitleType != "" && !IsRetainedType(row.TitleType) {
			stats.DroppedType++
			continue
		}
		if row.Title == "" || row.Year == nil {
			stats.DroppedKey++
			continue
		}
		if row.Rating == nil || row.Votes == nil ||
			*row.Rating < opts.MinRating || *row.Votes < opts.MinVotes {
			stats.DroppedRating++
			continue
		}
		entry := CatalogEntry{
			Key:       MovieKey{Title: row.Title, Year: *row.Year},
			TConst:    row.TConst,
			TitleType: row.TitleType,
			Genres:    ParseGenres(row.Genres),
			Rating:    *row.Rating,
			Votes:     *row.Votes,
		}
		if !c.add(entry) {
			stats.DroppedDuplicate++
		}
	}

	stats.Kept = len(c.entries)
	return c, stats
}

// NewCatalog builds a catalog from ready entries, keeping the first entry per key.
func NewCatalog(entries []CatalogEntry) *Catalog {
	c := newCatalog(len(entries))
	for i := range entries {
		c.add(entries[i])
	}
	return c
}

func newCatalog(capacity int) *Catalog {
	return &Catalog{
		entries: make([]CatalogEntry, 0, capacity),
		byKey:   make(map[MovieKey]int, capacity),
	}
}

// add appends e unless its key is already present.
func (c *Catalog) add(e CatalogEntry) bool {
	if _, exists := c.byKey[e.Key]; exists {
		return false
	}
	c.byKey[e.Key] = len(c.entries)
	c.entries = append(c.entries, e)
	return true
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns the entries in load order. Callers must not modify the slice.
func (c *Catalog) Entries() []CatalogEntry {
	return c.entries
}

// Lookup returns the entry for key.
func (c *Catalog) Lookup(key MovieKey) (CatalogEntry, bool) {
	i, ok := c.byKey[key]
	if !ok {
		return CatalogEntry{}, false
	}
	return c.entries[i], true
}

// Genres returns the genre list for key, or nil when the key is unknown.
func (c *Catalog) Genres(key MovieKey) []string {
	i, ok := c.byKey[key]
	if !ok {
		return nil
	}
	return c.entries[i].Genres
}
