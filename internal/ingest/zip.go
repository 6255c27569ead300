// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package ingest

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/tomtom215/cinemonth/internal/recommend"
)

// ErrNoWatchedCSV is returned when an archive holds no watched CSV file.
var ErrNoWatchedCSV = errors.New("no watched csv in archive")

// maxEntryBytes bounds how much of one archive member is decompressed.
const maxEntryBytes = 64 << 20

// FindWatchedEntry returns the first .csv member whose base name contains
// "watched", compared case-insensitively.
func FindWatchedEntry(zr *zip.Reader) (*zip.File, error) {
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		base := strings.ToLower(path.Base(f.Name))
		if strings.HasSuffix(base, ".csv") && strings.Contains(base, "watched") {
			return f, nil
		}
	}
	return nil, ErrNoWatchedCSV
}

// ReadLetterboxdZIP reads the watch log out of a Letterboxd export archive.
func ReadLetterboxdZIP(r io.ReaderAt, size int64) ([]recommend.WatchRow, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	f, err := FindWatchedEntry(zr)
	if err != nil {
		return nil, err
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close() //nolint:errcheck // read-only

	return ReadWatchedCSV(io.LimitReader(rc, maxEntryBytes))
}
