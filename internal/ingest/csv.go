// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tomtom215/cinemonth/internal/recommend"
)

// ErrMissingColumn is returned when a required header is absent.
var ErrMissingColumn = errors.New("missing required column")

// Letterboxd watched.csv headers.
const (
	colDate   = "date"
	colName   = "name"
	colYear   = "year"
	colRating = "rating"
	colURI    = "letterboxd uri"
)

// header maps lowercased column names to their position.
type header map[string]int

func newHeader(fields []string) header {
	h := make(header, len(fields))
	for i, f := range fields {
		if i == 0 {
			f = strings.TrimPrefix(f, "\ufeff")
		}
		key := strings.ToLower(strings.TrimSpace(f))
		if _, dup := h[key]; !dup {
			h[key] = i
		}
	}
	return h
}

func (h header) require(names ...string) error {
	var missing []string
	for _, n := range names {
		if _, ok := h[n]; !ok {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}

// get returns the named field of record, or "" when the column or field is absent.
func (h header) get(record []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true
	return cr
}

// readRows reads the header, checks required columns and calls fn per data row.
func readRows(r io.Reader, required []string, fn func(h header, record []string)) error {
	cr := newReader(r)

	first, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: empty file", ErrMissingColumn)
	}
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	h := newHeader(first)
	if err := h.require(required...); err != nil {
		return err
	}

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read row: %w", err)
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		fn(h, record)
	}
}

// ReadWatchedCSV reads a Letterboxd watched.csv. Date, Name and Year are
// required columns; Rating and Letterboxd URI are picked up when present.
func ReadWatchedCSV(r io.Reader) ([]recommend.WatchRow, error) {
	var rows []recommend.WatchRow
	err := readRows(r, []string{colDate, colName, colYear}, func(h header, record []string) {
		rows = append(rows, recommend.WatchRow{
			Date:   h.get(record, colDate),
			Name:   h.get(record, colName),
			Year:   h.get(record, colYear),
			Rating: h.get(record, colRating),
			URI:    h.get(record, colURI),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("watched csv: %w", err)
	}
	if rows == nil {
		rows = []recommend.WatchRow{}
	}
	return rows, nil
}
