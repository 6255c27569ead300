// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package wrapped

import (
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/cinemonth/internal/recommend"
)

func watch(date, title string, year int, rating *float64, genres ...string) recommend.WatchRecord {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	if genres == nil {
		genres = []string{}
	}
	return recommend.WatchRecord{
		Key:    recommend.MovieKey{Title: title, Year: year},
		Date:   d,
		Month:  recommend.MonthIndex(d, recommend.DefaultEpochYear),
		Genres: genres,
		Rating: rating,
	}
}

func floatPtr(f float64) *float64 { return &f }

func TestBuild(t *testing.T) {
	records := []recommend.WatchRecord{
		watch("2025-03-10", "Heat", 1995, floatPtr(4.5), "Action", "Crime"),
		watch("2024-12-31", "Last Year", 2010, nil, "Drama"),
		watch("2025-01-02", "Alien", 1979, floatPtr(4), "Horror", "Sci-Fi"),
		watch("2025-03-10", "Unknown", 2021, nil),
		watch("2025-03-20", "Heat", 1995, nil, "Action", "Crime"),
		watch("2026-01-01", "Next Year", 2020, nil, "Comedy"),
	}

	report, err := Build(records, 2025, "history")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if report.TotalFilms != 4 {
		t.Errorf("TotalFilms = %d, want 4", report.TotalFilms)
	}
	if report.UniqueFilms != 3 {
		t.Errorf("UniqueFilms = %d, want 3", report.UniqueFilms)
	}
	if report.DaysActive != 3 {
		t.Errorf("DaysActive = %d, want 3", report.DaysActive)
	}
	if report.RatedFilms != 2 || report.AvgRating != 4.25 {
		t.Errorf("ratings = %d/%v, want 2/4.25", report.RatedFilms, report.AvgRating)
	}
	if report.CatalogMisses != 1 {
		t.Errorf("CatalogMisses = %d, want 1", report.CatalogMisses)
	}

	wantOrder := []string{"Alien (1979)", "Heat (1995)", "Unknown (2021)", "Heat (1995)"}
	for i, want := range wantOrder {
		if report.Films[i].Display != want {
			t.Errorf("Films[%d] = %q, want %q", i, report.Films[i].Display, want)
		}
	}
	if report.FirstOfYear != "Alien (1979)" || report.LastOfYear != "Heat (1995)" {
		t.Errorf("first/last = %q/%q", report.FirstOfYear, report.LastOfYear)
	}

	want := [12]int{1, 0, 3, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	if report.FilmsPerMonth != want {
		t.Errorf("FilmsPerMonth = %v, want %v", report.FilmsPerMonth, want)
	}
	if len(report.MonthlyTrends) != 12 || report.MonthlyTrends[2].MonthName != "March" || report.MonthlyTrends[2].TopGenre != "Action" {
		t.Errorf("MonthlyTrends[2] = %+v", report.MonthlyTrends[2])
	}
	if report.PeakMonth != "March" {
		t.Errorf("PeakMonth = %q, want March", report.PeakMonth)
	}

	// Action 2, Crime 2, Horror 1, Sci-Fi 1: ties broken by name
	wantGenres := []string{"Action", "Crime", "Horror", "Sci-Fi"}
	if len(report.TopGenres) != len(wantGenres) {
		t.Fatalf("TopGenres = %+v", report.TopGenres)
	}
	for i, g := range wantGenres {
		if report.TopGenres[i].Genre != g || report.TopGenres[i].Rank != i+1 {
			t.Errorf("TopGenres[%d] = %+v, want %s", i, report.TopGenres[i], g)
		}
	}
	if report.TopGenres[0].Percentage != 33.33 {
		t.Errorf("Action percentage = %v, want 33.33", report.TopGenres[0].Percentage)
	}
}

func TestBuild_EmptyYear(t *testing.T) {
	records := []recommend.WatchRecord{watch("2025-03-10", "Heat", 1995, nil, "Action")}

	report, err := Build(records, 2023, "history")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if report.TotalFilms != 0 || len(report.Films) != 0 || report.Films == nil {
		t.Errorf("empty year: films = %v", report.Films)
	}
	if report.TopGenres == nil || len(report.TopGenres) != 0 {
		t.Errorf("empty year: TopGenres = %v", report.TopGenres)
	}
	if report.PeakMonth != "" || report.FirstOfYear != "" {
		t.Errorf("empty year should have no peak or first film: %+v", report)
	}
	if len(report.MonthlyTrends) != 12 {
		t.Errorf("MonthlyTrends should always have 12 entries, got %d", len(report.MonthlyTrends))
	}
}

func TestBuild_InvalidYear(t *testing.T) {
	for _, year := range []int{0, -1, 1800, 10000} {
		if _, err := Build(nil, year, "history"); !errors.Is(err, ErrInvalidYear) {
			t.Errorf("Build(year=%d) error = %v, want ErrInvalidYear", year, err)
		}
	}
}
