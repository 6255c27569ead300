// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package ingest

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/tomtom215/cinemonth/internal/recommend"
)

const watchedCSV = `Date,Name,Year,Letterboxd URI
2025-01-04,Parasite,2019,https://boxd.it/aaa
2025-01-18,"Crouching Tiger, Hidden Dragon",2000,https://boxd.it/bbb
2025-02-02,Heat,,https://boxd.it/ccc
`

func TestReadWatchedCSV(t *testing.T) {
	rows, err := ReadWatchedCSV(strings.NewReader(watchedCSV))
	if err != nil {
		t.Fatalf("ReadWatchedCSV() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	want := recommend.WatchRow{Date: "2025-01-18", Name: "Crouching Tiger, Hidden Dragon", Year: "2000", URI: "https://boxd.it/bbb"}
	if rows[1] != want {
		t.Errorf("rows[1] = %+v, want %+v", rows[1], want)
	}
	if rows[2].Year != "" {
		t.Errorf("blank year should stay blank, got %q", rows[2].Year)
	}
}

func TestReadWatchedCSV_HeaderVariants(t *testing.T) {
	// reordered, differently cased, BOM-prefixed, with an extra Rating column
	input := "\ufeffyear,Rating,NAME,date\n1999,4.5,The Matrix,2025-03-01\n"

	rows, err := ReadWatchedCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadWatchedCSV() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	got := rows[0]
	if got.Name != "The Matrix" || got.Year != "1999" || got.Date != "2025-03-01" || got.Rating != "4.5" {
		t.Errorf("row = %+v", got)
	}
}

func TestReadWatchedCSV_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"missing year", "Date,Name\n2025-01-01,Heat\n"},
		{"missing date", "Name,Year\nHeat,1995\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadWatchedCSV(strings.NewReader(tt.input))
			if !errors.Is(err, ErrMissingColumn) {
				t.Errorf("error = %v, want ErrMissingColumn", err)
			}
		})
	}
}

func TestReadWatchedCSV_HeaderOnly(t *testing.T) {
	rows, err := ReadWatchedCSV(strings.NewReader("Date,Name,Year\n"))
	if err != nil {
		t.Fatalf("ReadWatchedCSV() error = %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Errorf("rows = %v, want empty non-nil", rows)
	}
}

func TestCatalogRoundTrip(t *testing.T) {
	entries := []recommend.CatalogEntry{
		{
			Key:       recommend.MovieKey{Title: "Heat", Year: 1995},
			TConst:    "tt0113277",
			TitleType: "movie",
			Genres:    []string{"Action", "Crime", "Drama"},
			Rating:    8.3,
			Votes:     720000,
		},
		{
			Key:       recommend.MovieKey{Title: "Band of Brothers", Year: 2001},
			TConst:    "tt0185906",
			TitleType: "tvSeries",
			Genres:    []string{"Drama", "History", "War"},
			Rating:    9.4,
			Votes:     540000,
		},
	}

	var buf bytes.Buffer
	if err := WriteCatalogCSV(&buf, entries); err != nil {
		t.Fatalf("WriteCatalogCSV() error = %v", err)
	}
	if !strings.HasPrefix(buf.String(), "tconst,titleType,Name,Year,genres,rating,votes\n") {
		t.Errorf("unexpected header: %q", strings.SplitN(buf.String(), "\n", 2)[0])
	}
	if !strings.Contains(buf.String(), "\"['Action', 'Crime', 'Drama']\"") {
		t.Errorf("genres not written as list literal:\n%s", buf.String())
	}

	rows, err := ReadCatalogCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCatalogCSV() error = %v", err)
	}
	catalog, stats := recommend.CatalogFromRows(rows, recommend.DefaultCatalogOptions())
	if stats.Kept != 2 {
		t.Fatalf("kept %d entries, want 2 (stats %+v)", stats.Kept, stats)
	}
	got, ok := catalog.Lookup(recommend.MovieKey{Title: "Heat", Year: 1995})
	if !ok {
		t.Fatal("Heat (1995) not found after round trip")
	}
	if got.Rating != 8.3 || got.Votes != 720000 || len(got.Genres) != 3 || got.Genres[1] != "Crime" {
		t.Errorf("round-tripped entry = %+v", got)
	}
}

func TestReadCatalogCSV_FloatYear(t *testing.T) {
	input := "Name,Year,genres,rating,votes\nAlien,1979.0,\"['Horror', 'Sci-Fi']\",8.5,900000.0\n"
	rows, err := ReadCatalogCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCatalogCSV() error = %v", err)
	}
	if len(rows) != 1 || rows[0].Year == nil || *rows[0].Year != 1979 {
		t.Fatalf("rows = %+v", rows)
	}
	if rows[0].Votes == nil || *rows[0].Votes != 900000 {
		t.Errorf("votes = %v, want 900000", rows[0].Votes)
	}
}

func TestReadCatalogCSV_MissingColumn(t *testing.T) {
	_, err := ReadCatalogCSV(strings.NewReader("Name,Year\nAlien,1979\n"))
	if !errors.Is(err, ErrMissingColumn) {
		t.Errorf("error = %v, want ErrMissingColumn", err)
	}
}
