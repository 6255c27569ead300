// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package models

import (
	"time"
)

// WrappedReport summarizes one calendar year of watching.
type WrappedReport struct {
	Year        int       `json:"year"`
	GeneratedAt time.Time `json:"generated_at"`
	Source      string    `json:"source"` // "history" or "upload"

	TotalFilms    int     `json:"total_films"`
	UniqueFilms   int     `json:"unique_films"`
	RatedFilms    int     `json:"rated_films"`
	AvgRating     float64 `json:"avg_rating,omitempty"`
	DaysActive    int     `json:"days_active"`
	FirstOfYear   string  `json:"first_of_year,omitempty"`
	LastOfYear    string  `json:"last_of_year,omitempty"`
	PeakMonth     string  `json:"peak_month,omitempty"`
	CatalogMisses int     `json:"catalog_misses"`

	Films         []WrappedFilm      `json:"films"`
	FilmsPerMonth [12]int            `json:"films_per_month"` // index 0 = January
	MonthlyTrends []WrappedMonthly   `json:"monthly_trends"`
	TopGenres     []WrappedGenreRank `json:"top_genres"`
}

// WrappedFilm is one watch in the report, in date order.
type WrappedFilm struct {
	Date    string   `json:"date"` // YYYY-MM-DD
	Name    string   `json:"name"`
	Year    int      `json:"year"`
	Display string   `json:"display"`
	Genres  []string `json:"genres"`
	Rating  *float64 `json:"rating,omitempty"`
}

// WrappedMonthly is one month of the report.
type WrappedMonthly struct {
	Month     int    `json:"month"` // 1-12
	MonthName string `json:"month_name"`
	Films     int    `json:"films"`
	TopGenre  string `json:"top_genre,omitempty"`
}

// WrappedGenreRank is a ranked genre.
type WrappedGenreRank struct {
	Rank       int     `json:"rank"`
	Genre      string  `json:"genre"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"` // 0-100 of all genre tags
}
