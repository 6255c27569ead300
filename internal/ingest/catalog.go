// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tomtom215/cinemonth/internal/recommend"
)

// Processed catalog headers, in the order WriteCatalogCSV emits them.
var catalogColumns = []string{"tconst", "titleType", "Name", "Year", "genres", "rating", "votes"}

// ReadCatalogCSV reads a processed catalog. Name and Year are required;
// genres, rating and votes are required too, since a catalog without them
// cannot be scored or filtered.
func ReadCatalogCSV(r io.Reader) ([]recommend.CatalogRow, error) {
	var rows []recommend.CatalogRow
	err := readRows(r, []string{"name", "year", "genres", "rating", "votes"}, func(h header, record []string) {
		row := recommend.CatalogRow{
			TConst:    h.get(record, "tconst"),
			Title:     h.get(record, "name"),
			TitleType: h.get(record, "titletype"),
			Genres:    h.get(record, "genres"),
			Rating:    recommend.ParseFloat(h.get(record, "rating")),
			Votes:     recommend.ParseInt(h.get(record, "votes")),
		}
		if y, ok := recommend.ParseYear(h.get(record, "year")); ok {
			row.Year = &y
		}
		rows = append(rows, row)
	})
	if err != nil {
		return nil, fmt.Errorf("catalog csv: %w", err)
	}
	if rows == nil {
		rows = []recommend.CatalogRow{}
	}
	return rows, nil
}

// WriteCatalogCSV writes catalog entries in the processed catalog format.
// Genres are written as a bracketed list literal, e.g. ['Action', 'Drama'].
func WriteCatalogCSV(w io.Writer, entries []recommend.CatalogEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(catalogColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(catalogColumns))
	for i := range entries {
		e := &entries[i]
		record[0] = e.TConst
		record[1] = e.TitleType
		record[2] = e.Key.Title
		record[3] = strconv.Itoa(e.Key.Year)
		record[4] = formatGenres(e.Genres)
		record[5] = strconv.FormatFloat(e.Rating, 'f', -1, 64)
		record[6] = strconv.Itoa(e.Votes)
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatGenres(genres []string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, g := range genres {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('\'')
		b.WriteString(g)
		b.WriteByte('\'')
	}
	b.WriteByte(']')
	return b.String()
}
