// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package models

import (
	"time"
)

// APIResponse is the envelope of every /api/v1 response.
//
// Status is "success" with Data set, or "error" with Error set:
//
//	{
//	  "status": "error",
//	  "error": {"code": "VALIDATION_ERROR", "message": "month index must be >= 1"},
//	  "metadata": {"timestamp": "2025-11-28T12:00:00Z", "request_id": "..."}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	RequestID   string    `json:"request_id,omitempty"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError carries a machine-readable code and a human message.
//
// Codes: VALIDATION_ERROR, NOT_FOUND, RATE_LIMIT_EXCEEDED,
// SERVICE_UNAVAILABLE, INTERNAL_ERROR.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is the readiness payload.
type HealthStatus struct {
	Status     string    `json:"status"` // "healthy" or "starting"
	Version    string    `json:"version"`
	Uptime     float64   `json:"uptime_seconds"`
	LoadedAt   time.Time `json:"loaded_at"`
	Catalog    int       `json:"catalog"`
	Candidates int       `json:"candidates"`
	History    int       `json:"history"`
	Months     int       `json:"months"`
	EpochYear  int       `json:"epoch_year"`
	Posters    string    `json:"posters"` // "tmdb", "placeholder" or "disabled"
	Breaker    string    `json:"breaker,omitempty"`
}
