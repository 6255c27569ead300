// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

// Package imdb reads the IMDB bulk datasets (title.basics.tsv and
// title.ratings.tsv, optionally gzipped) through an in-memory DuckDB
// connection and turns them into the processed Cinemonth catalog.
package imdb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	// DuckDB driver - read_csv scans the TSV files directly
	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/cinemonth/internal/logging"
	"github.com/tomtom215/cinemonth/internal/recommend"
)

// Options controls how the bulk files are scanned.
type Options struct {
	// Prefilter pushes the title type and rating threshold filters into the
	// scan so only candidate rows reach Go. Catalog stats then count only
	// the rows that passed the scan.
	Prefilter bool

	// Thresholds used when Prefilter is set.
	Catalog recommend.CatalogOptions
}

// Reader scans IMDB TSV files with DuckDB.
type Reader struct {
	db   *sql.DB
	opts Options
}

// NewReader opens an in-memory DuckDB connection.
func NewReader(opts Options) (*Reader, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close() //nolint:errcheck // best-effort cleanup on error path
		return nil, fmt.Errorf("ping duckdb: %w", err)
	}

	return &Reader{db: db, opts: opts}, nil
}

// Close closes the DuckDB connection.
func (r *Reader) Close() error {
	return r.db.Close()
}

// quoteLiteral renders s as a SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// scanTSV is the read_csv call for an IMDB file. IMDB files use no quoting
// and mark missing values with \N. Everything is read as VARCHAR and parsed
// in Go so malformed numbers become nil instead of failing the scan.
func scanTSV(path string) string {
	return fmt.Sprintf(
		`read_csv(%s, delim='\t', header=true, quote='', escape='', nullstr='\N', all_varchar=true)`,
		quoteLiteral(path),
	)
}

// ReadTitles reads title.basics rows.
func (r *Reader) ReadTitles(ctx context.Context, path string) ([]recommend.TitleRecord, error) {
	query := `SELECT tconst, primaryTitle, startYear, titleType, genres FROM ` + scanTSV(path)
	if r.opts.Prefilter {
		query += ` WHERE lower(titleType) IN ('movie', 'tvseries')`
	}

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query titles: %w", err)
	}
	defer rows.Close()

	var records []recommend.TitleRecord
	for rows.Next() {
		var tconst, title, year, titleType, genres sql.NullString
		if err := rows.Scan(&tconst, &title, &year, &titleType, &genres); err != nil {
			return nil, fmt.Errorf("scan title: %w", err)
		}
		rec := recommend.TitleRecord{
			TConst:    tconst.String,
			Title:     title.String,
			TitleType: titleType.String,
			Genres:    genres.String,
		}
		if y, ok := recommend.ParseYear(year.String); ok {
			rec.Year = &y
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate titles: %w", err)
	}
	return records, nil
}

// ReadRatings reads title.ratings rows.
func (r *Reader) ReadRatings(ctx context.Context, path string) ([]recommend.RatingRecord, error) {
	query := `SELECT tconst, averageRating, numVotes FROM ` + scanTSV(path)
	var args []any
	if r.opts.Prefilter {
		query += ` WHERE TRY_CAST(averageRating AS DOUBLE) >= ? AND TRY_CAST(numVotes AS BIGINT) >= ?`
		args = append(args, r.opts.Catalog.MinRating, r.opts.Catalog.MinVotes)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query ratings: %w", err)
	}
	defer rows.Close()

	var records []recommend.RatingRecord
	for rows.Next() {
		var tconst, avg, votes sql.NullString
		if err := rows.Scan(&tconst, &avg, &votes); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		records = append(records, recommend.RatingRecord{
			TConst:        tconst.String,
			AverageRating: recommend.ParseFloat(avg.String),
			NumVotes:      recommend.ParseInt(votes.String),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}
	return records, nil
}

// BuildCatalog reads both files and joins them into a catalog.
func (r *Reader) BuildCatalog(ctx context.Context, titlesPath, ratingsPath string) (*recommend.Catalog, recommend.CatalogStats, error) {
	start := time.Now()

	titles, err := r.ReadTitles(ctx, titlesPath)
	if err != nil {
		return nil, recommend.CatalogStats{}, err
	}
	ratings, err := r.ReadRatings(ctx, ratingsPath)
	if err != nil {
		return nil, recommend.CatalogStats{}, err
	}

	catalog, stats := recommend.BuildCatalog(titles, ratings, r.opts.Catalog)

	logging.Info().
		Int("titles", stats.Titles).
		Int("ratings", stats.Ratings).
		Int("kept", stats.Kept).
		Int("dropped_type", stats.DroppedType).
		Int("dropped_rating", stats.DroppedRating).
		Int("dropped_unmatched", stats.DroppedUnmatched).
		Int("dropped_duplicate", stats.DroppedDuplicate).
		Dur("elapsed", time.Since(start)).
		Msg("Catalog built from IMDB files")

	return catalog, stats, nil
}
