// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package api

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/tomtom215/cinemonth/internal/ingest"
	"github.com/tomtom215/cinemonth/internal/logging"
	"github.com/tomtom215/cinemonth/internal/metrics"
	"github.com/tomtom215/cinemonth/internal/recommend"
	"github.com/tomtom215/cinemonth/internal/wrapped"
)

// Report sources.
const (
	wrappedSourceHistory = "history"
	wrappedSourceUpload  = "upload"
)

// uploadFormField is the multipart field carrying the export.
const uploadFormField = "file"

// Wrapped handles GET /api/v1/wrapped/{year} over the loaded watch log.
func (h *Handler) Wrapped(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	year, err := pathInt(r, "year")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}

	report, err := wrapped.Build(h.engine.State().History().Records(), year, wrappedSourceHistory)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondSuccess(w, r, report, start)
}

// WrappedUpload handles POST /api/v1/wrapped/upload?year=. The body is a
// Letterboxd export ZIP or a watched.csv, sent raw or as the "file" field of
// a multipart form. Nothing is stored. The year defaults to the current one.
func (h *Handler) WrappedUpload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	year, err := queryInt(r, "year", time.Now().Year())
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}
	if err := wrapped.ValidateYear(year); err != nil {
		respondDomainError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.deps.UploadMaxBytes)
	data, err := readUpload(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, r, http.StatusRequestEntityTooLarge, ErrCodeValidation,
				fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit), nil)
			return
		}
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}

	rows, err := ingest.ReadWatched(data)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, "unreadable watch log: "+err.Error(), nil)
		return
	}

	state := h.engine.State()
	history, stats := recommend.BuildHistory(rows, state.Catalog(), state.EpochYear())
	metrics.RecordLoad(wrappedSourceUpload, stats.Kept, map[string]int{
		"date": stats.DroppedDate,
		"key":  stats.DroppedKey,
	})
	logging.Ctx(r.Context()).Info().
		Int("rows", stats.Rows).
		Int("kept", stats.Kept).
		Int("catalog_miss", stats.CatalogMiss).
		Int("year", year).
		Msg("Wrapped upload parsed")

	report, err := wrapped.Build(history.Records(), year, wrappedSourceUpload)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondSuccess(w, r, report, start)
}

// readUpload returns the uploaded file, from a multipart field or the raw body.
func readUpload(r *http.Request) ([]byte, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")) //nolint:errcheck // empty type means raw body
	if mediaType != "multipart/form-data" {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		if len(data) == 0 {
			return nil, errors.New("empty upload")
		}
		return data, nil
	}

	file, _, err := r.FormFile(uploadFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("multipart field %q: %w", uploadFormField, err)
	}
	defer file.Close() //nolint:errcheck // read-only

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("empty upload")
	}
	return data, nil
}
