// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

// RecommendationsQuery holds the optional overrides of
// GET /api/v1/recommendations/{month}. Zero means the configured default.
type RecommendationsQuery struct {
	TopN    int `query:"top_n" validate:"omitempty,min=1,max=10000"`
	SelectN int `query:"select_n" validate:"omitempty,min=1,max=100"`
}

// WatchedQuery is the query of GET /api/v1/watched.
type WatchedQuery struct {
	Month *int `query:"month" validate:"omitempty,min=1"`
}

// maxLegacyBodyBytes bounds the JSON bodies of the legacy routes.
const maxLegacyBodyBytes = 4 << 10

// pathInt parses an integer URL parameter.
func pathInt(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, raw)
	}
	return n, nil
}

// queryInt parses an optional integer query parameter. Absent means def.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, raw)
	}
	return n, nil
}

// queryIntPtr is queryInt for parameters where absence is meaningful.
func queryIntPtr(r *http.Request, name string) (*int, error) {
	if strings.TrimSpace(r.URL.Query().Get(name)) == "" {
		return nil, nil
	}
	n, err := queryInt(r, name, 0)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// decodeBody reads a small JSON body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxLegacyBodyBytes+1))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxLegacyBodyBytes {
		return fmt.Errorf("body exceeds %d bytes", maxLegacyBodyBytes)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}
