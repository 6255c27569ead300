// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package ingest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tomtom215/cinemonth/internal/logging"
	"github.com/tomtom215/cinemonth/internal/recommend"
)

// zipMagic starts every ZIP local file header.
var zipMagic = []byte("PK\x03\x04")

// LoadWatched reads a watch log from path, which may be a watched.csv or a
// Letterboxd export ZIP.
func LoadWatched(path string) ([]recommend.WatchRow, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open watched file: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat watched file: %w", err)
	}

	var rows []recommend.WatchRow
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		rows, err = ReadLetterboxdZIP(f, info.Size())
	} else {
		rows, err = ReadWatchedCSV(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logging.Info().Str("path", path).Int("rows", len(rows)).Msg("Loaded watch log")
	return rows, nil
}

// ReadWatched reads an uploaded watch log held in memory, detecting a ZIP
// archive by its signature.
func ReadWatched(data []byte) ([]recommend.WatchRow, error) {
	if bytes.HasPrefix(data, zipMagic) {
		return ReadLetterboxdZIP(bytes.NewReader(data), int64(len(data)))
	}
	return ReadWatchedCSV(bytes.NewReader(data))
}

// LoadCatalog reads the processed catalog at path.
func LoadCatalog(path string) ([]recommend.CatalogRow, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only

	rows, err := ReadCatalogCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logging.Info().Str("path", path).Int("rows", len(rows)).Msg("Loaded catalog")
	return rows, nil
}

// SaveCatalog writes entries to path, replacing any existing file.
func SaveCatalog(path string, entries []recommend.CatalogEntry) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create catalog directory: %w", err)
		}
	}
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("create catalog file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err := WriteCatalogCSV(f, entries); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}
