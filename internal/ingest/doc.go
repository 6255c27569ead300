// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

/*
Package ingest reads the two datasets Cinemonth runs on from disk or upload:

  - the Letterboxd watch log (watched.csv, or the whole Letterboxd export ZIP)
  - the processed catalog CSV written by cmd/preprocess

Readers return raw rows (recommend.WatchRow, recommend.CatalogRow). Row level
problems such as a blank year are not errors here; the recommend package
drops and counts them when it builds the History and Catalog. Only structural
problems are reported: unreadable CSV, a missing required column, or an
archive without a watched file.

Columns are matched by header name, case-insensitively and in any order, so
exports with extra columns (Letterboxd adds "Rating" to some exports) load
unchanged.

# Usage

	rows, err := ingest.LoadWatched("data/letterboxd-export.zip")
	if err != nil {
		return err
	}
	history, stats := recommend.BuildHistory(rows, catalog, epoch)
*/
package ingest
