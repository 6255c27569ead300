// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package recommend

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// WatchRow is a raw watch-log row, as exported by Letterboxd.
type WatchRow struct {
	Date   string
	Name   string
	Year   string
	Rating string
	URI    string
}

// HistoryStats counts what a history build kept and dropped.
type HistoryStats struct {
	Rows        int `json:"rows"`
	Kept        int `json:"kept"`
	DroppedDate int `json:"dropped_date"`
	DroppedKey  int `json:"dropped_key"`
	WithGenres  int `json:"with_genres"`
	PreEpoch    int `json:"pre_epoch"`
	CatalogMiss int `json:"catalog_miss"`
}

// History is the immutable watch log in watch order.
type History struct {
	records []WatchRecord
	byMonth map[int][]int
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

// ParseDate parses a watch date in any of the accepted layouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseYear parses a release year, accepting float forms such as "1999.0".
func ParseYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == imdbNull {
		return 0, false
	}
	if y, err := strconv.Atoi(s); err == nil {
		return y, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// ParseFloat parses an optional float. Empty or malformed input gives nil.
func ParseFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == imdbNull {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// ParseInt parses an optional integer, accepting "1200.0". Malformed input gives nil.
func ParseInt(s string) *int {
	n, ok := ParseYear(s)
	if !ok {
		return nil
	}
	return &n
}

// BuildHistory turns raw rows into watch records, attaching genres from the
// catalog. Films missing from the catalog keep an empty genre set.
func BuildHistory(rows []WatchRow, catalog *Catalog, epochYear int) (*History, HistoryStats) {
	stats := HistoryStats{Rows: len(rows)}
	records := make([]WatchRecord, 0, len(rows))

	for i := range rows {
		row := &rows[i]
		name := strings.TrimSpace(row.Name)
		year, ok := ParseYear(row.Year)
		if name == "" || !ok {
			stats.DroppedKey++
			continue
		}
		date, ok := ParseDate(row.Date)
		if !ok {
			stats.DroppedDate++
			continue
		}

		key := MovieKey{Title: name, Year: year}
		genres := []string{}
		if catalog != nil {
			if g := catalog.Genres(key); g != nil {
				genres = g
			} else {
				stats.CatalogMiss++
			}
		}
		if len(genres) > 0 {
			stats.WithGenres++
		}

		rec := WatchRecord{
			Key:    key,
			Date:   date,
			Month:  MonthIndex(date, epochYear),
			Genres: genres,
			Rating: ParseFloat(row.Rating),
			URI:    strings.TrimSpace(row.URI),
		}
		if date.Year() < epochYear {
			stats.PreEpoch++
		}
		records = append(records, rec)
	}

	stats.Kept = len(records)
	return NewHistory(records), stats
}

// NewHistory indexes ready records, keeping their order.
func NewHistory(records []WatchRecord) *History {
	h := &History{
		records: records,
		byMonth: make(map[int][]int),
	}
	for i := range records {
		m := records[i].Month
		h.byMonth[m] = append(h.byMonth[m], i)
	}
	return h
}

// Len returns the number of records.
func (h *History) Len() int {
	return len(h.records)
}

// Records returns all records in watch order. Callers must not modify the slice.
func (h *History) Records() []WatchRecord {
	return h.records
}

// ForMonth returns the records of one month index in watch order.
func (h *History) ForMonth(month int) []WatchRecord {
	idx := h.byMonth[month]
	out := make([]WatchRecord, len(idx))
	for i, j := range idx {
		out[i] = h.records[j]
	}
	return out
}

// Keys returns the set of watched movie keys.
func (h *History) Keys() KeySet {
	keys := make(KeySet, len(h.records))
	for i := range h.records {
		keys[h.records[i].Key] = struct{}{}
	}
	return keys
}
