// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

// Package wrapped builds the yearly "wrapped" summary of a watch log.
package wrapped

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/tomtom215/cinemonth/internal/models"
	"github.com/tomtom215/cinemonth/internal/recommend"
)

// ErrInvalidYear is returned for years outside 1888..9999.
var ErrInvalidYear = errors.New("invalid year")

// MaxTopGenres bounds the genre ranking.
const MaxTopGenres = 10

// ValidateYear checks a report year.
func ValidateYear(year int) error {
	if year < 1888 || year > 9999 {
		return fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}
	return nil
}

// Build summarizes the records watched in calendar year. Records are
// filtered on watch date, not release year. A year without watches yields a
// zero report with empty lists.
func Build(records []recommend.WatchRecord, year int, source string) (*models.WrappedReport, error) {
	if err := ValidateYear(year); err != nil {
		return nil, err
	}

	films := make([]recommend.WatchRecord, 0)
	for i := range records {
		if records[i].Date.Year() == year {
			films = append(films, records[i])
		}
	}
	slices.SortStableFunc(films, func(a, b recommend.WatchRecord) int {
		return a.Date.Compare(b.Date)
	})

	report := &models.WrappedReport{
		Year:          year,
		GeneratedAt:   time.Now().UTC(),
		Source:        source,
		TotalFilms:    len(films),
		Films:         make([]models.WrappedFilm, 0, len(films)),
		MonthlyTrends: make([]models.WrappedMonthly, 12),
		TopGenres:     []models.WrappedGenreRank{},
	}

	unique := make(map[recommend.MovieKey]struct{}, len(films))
	days := make(map[string]struct{}, len(films))
	genres := make(recommend.GenreCounter)
	monthGenres := make([]recommend.GenreCounter, 12)
	ratingSum := 0.0

	for i := range films {
		rec := &films[i]
		date := rec.Date.Format("2006-01-02")
		report.Films = append(report.Films, models.WrappedFilm{
			Date:    date,
			Name:    rec.Key.Title,
			Year:    rec.Key.Year,
			Display: rec.Key.String(),
			Genres:  rec.Genres,
			Rating:  rec.Rating,
		})

		m := int(rec.Date.Month()) - 1
		report.FilmsPerMonth[m]++
		unique[rec.Key] = struct{}{}
		days[date] = struct{}{}

		if len(rec.Genres) == 0 {
			report.CatalogMisses++
		}
		if monthGenres[m] == nil {
			monthGenres[m] = make(recommend.GenreCounter)
		}
		for _, g := range rec.Genres {
			genres[g]++
			monthGenres[m][g]++
		}
		if rec.Rating != nil {
			report.RatedFilms++
			ratingSum += *rec.Rating
		}
	}

	report.UniqueFilms = len(unique)
	report.DaysActive = len(days)
	if report.RatedFilms > 0 {
		report.AvgRating = math.Round(ratingSum/float64(report.RatedFilms)*100) / 100
	}
	if n := len(report.Films); n > 0 {
		report.FirstOfYear = report.Films[0].Display
		report.LastOfYear = report.Films[n-1].Display
	}

	peak := -1
	for m := 0; m < 12; m++ {
		report.MonthlyTrends[m] = models.WrappedMonthly{
			Month:     m + 1,
			MonthName: time.Month(m + 1).String(),
			Films:     report.FilmsPerMonth[m],
			TopGenre:  topGenre(monthGenres[m]),
		}
		if report.FilmsPerMonth[m] > 0 && (peak < 0 || report.FilmsPerMonth[m] > report.FilmsPerMonth[peak]) {
			peak = m
		}
	}
	if peak >= 0 {
		report.PeakMonth = time.Month(peak + 1).String()
	}

	report.TopGenres = rankGenres(genres, MaxTopGenres)
	return report, nil
}

// rankGenres orders genres by count descending, then name, keeping limit.
func rankGenres(counter recommend.GenreCounter, limit int) []models.WrappedGenreRank {
	total := counter.Total()
	names := counter.Genres()
	slices.SortStableFunc(names, func(a, b string) int {
		return cmp.Compare(counter[b], counter[a])
	})
	if len(names) > limit {
		names = names[:limit]
	}

	ranks := make([]models.WrappedGenreRank, len(names))
	for i, g := range names {
		ranks[i] = models.WrappedGenreRank{
			Rank:       i + 1,
			Genre:      g,
			Count:      counter[g],
			Percentage: math.Round(float64(counter[g])/float64(total)*10000) / 100,
		}
	}
	return ranks
}

func topGenre(counter recommend.GenreCounter) string {
	if len(counter) == 0 {
		return ""
	}
	return rankGenres(counter, 1)[0].Genre
}
