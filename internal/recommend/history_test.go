// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package recommend

import (
	"slices"
	"testing"
)

func TestParseYear(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"1999", 1999, true},
		{"1999.0", 1999, true},
		{" 2001 ", 2001, true},
		{"1999.5", 0, false},
		{"", 0, false},
		{`\N`, 0, false},
		{"nineteen", 0, false},
		{"NaN", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseYear(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseYear(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseDate(t *testing.T) {
	valid := []string{"2025-03-04", "2025-03-04 10:11:12", "2025-03-04T10:11:12Z", "03/04/2025"}
	for _, s := range valid {
		d, ok := ParseDate(s)
		if !ok {
			t.Errorf("ParseDate(%q) failed", s)
			continue
		}
		if d.Year() != 2025 || d.Month() != 3 || d.Day() != 4 {
			t.Errorf("ParseDate(%q) = %v, want 2025-03-04", s, d)
		}
	}

	for _, s := range []string{"", "yesterday", "2025-13-01"} {
		if _, ok := ParseDate(s); ok {
			t.Errorf("ParseDate(%q) succeeded, want failure", s)
		}
	}
}

func TestParseFloat(t *testing.T) {
	if got := ParseFloat("4.5"); got == nil || *got != 4.5 {
		t.Errorf("ParseFloat(4.5) = %v", got)
	}
	for _, s := range []string{"", "abc", `\N`, "NaN"} {
		if got := ParseFloat(s); got != nil {
			t.Errorf("ParseFloat(%q) = %v, want nil", s, *got)
		}
	}
}

func TestBuildHistory(t *testing.T) {
	catalog := NewCatalog([]CatalogEntry{
		{Key: MovieKey{Title: "Heat", Year: 1995}, Genres: []string{"Action", "Crime"}, Rating: 8.3, Votes: 700000},
	})

	rows := []WatchRow{
		{Date: "2025-01-03", Name: "Heat", Year: "1995", Rating: "4.5", URI: "https://boxd.it/a"},
		{Date: "2025-01-09", Name: "Unknown Film", Year: "2020"},
		{Date: "not a date", Name: "Heat", Year: "1995"},
		{Date: "2025-02-01", Name: "", Year: "1995"},
		{Date: "2025-02-01", Name: "Heat", Year: ""},
		{Date: "2024-06-01", Name: "Heat", Year: "1995.0"},
	}

	history, stats := BuildHistory(rows, catalog, 2025)

	if history.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", history.Len())
	}
	recs := history.Records()

	if !slices.Equal(recs[0].Genres, []string{"Action", "Crime"}) {
		t.Errorf("Heat genres = %v", recs[0].Genres)
	}
	if recs[0].Month != 1 {
		t.Errorf("Heat month = %d, want 1", recs[0].Month)
	}
	if recs[0].Rating == nil || *recs[0].Rating != 4.5 {
		t.Errorf("Heat rating = %v, want 4.5", recs[0].Rating)
	}
	if recs[0].URI != "https://boxd.it/a" {
		t.Errorf("Heat URI = %q", recs[0].URI)
	}

	if recs[1].Genres == nil || len(recs[1].Genres) != 0 {
		t.Errorf("film missing from catalog should carry an empty genre set, got %#v", recs[1].Genres)
	}
	if recs[2].Month != -6 {
		t.Errorf("pre-epoch month = %d, want -6", recs[2].Month)
	}

	if stats.DroppedDate != 1 || stats.DroppedKey != 2 {
		t.Errorf("unexpected drop stats %+v", stats)
	}
	if stats.CatalogMiss != 1 || stats.PreEpoch != 1 || stats.WithGenres != 2 {
		t.Errorf("unexpected stats %+v", stats)
	}

	if got := history.ForMonth(1); len(got) != 2 || got[0].Key.Title != "Heat" || got[1].Key.Title != "Unknown Film" {
		t.Errorf("ForMonth(1) = %v", got)
	}
	if !history.Keys().Has(MovieKey{Title: "Heat", Year: 1995}) {
		t.Error("Keys() missing Heat")
	}
}

func TestBuildProfiles(t *testing.T) {
	catalog := NewCatalog([]CatalogEntry{
		{Key: MovieKey{Title: "W1", Year: 2000}, Genres: []string{"Action", "Comedy"}},
		{Key: MovieKey{Title: "W2", Year: 2001}, Genres: []string{"Action"}},
		{Key: MovieKey{Title: "Old", Year: 1990}, Genres: []string{"Horror"}},
	})
	rows := []WatchRow{
		{Date: "2025-01-05", Name: "W1", Year: "2000"},
		{Date: "2025-01-20", Name: "W2", Year: "2001"},
		{Date: "2024-01-20", Name: "Old", Year: "1990"},
		{Date: "2025-03-01", Name: "Not In Catalog", Year: "2001"},
	}
	history, _ := BuildHistory(rows, catalog, 2025)

	profiles := BuildProfiles(history.Records(), 2025)

	jan := profiles[1]
	if jan["Action"] != 2 || jan["Comedy"] != 1 || len(jan) != 2 {
		t.Errorf("profile[1] = %v, want {Action:2 Comedy:1}", jan)
	}
	if jan.Total() != 3 {
		t.Errorf("Total() = %d, want 3 genre tags", jan.Total())
	}
	if _, ok := profiles[3]; ok {
		t.Error("month with only genre-less watches should have no profile")
	}
	for m := range profiles {
		if m < 1 {
			t.Errorf("pre-epoch month %d leaked into profiles", m)
		}
	}
}

func TestGenreCounter_Normalize(t *testing.T) {
	counters := []GenreCounter{
		{"Action": 2, "Comedy": 1},
		{"Drama": 7},
		{"A": 1, "B": 3, "C": 5, "D": 11},
	}
	for _, c := range counters {
		sum := 0.0
		for _, p := range c.Normalize() {
			sum += p
		}
		if sum < 1-1e-9 || sum > 1+1e-9 {
			t.Errorf("Normalize(%v) sums to %f", c, sum)
		}
	}
	if got := (GenreCounter{}).Normalize(); len(got) != 0 {
		t.Errorf("empty Normalize() = %v", got)
	}
}
