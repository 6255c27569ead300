// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/cinemonth/internal/models"
)

// HealthLive reports that the process is up, regardless of loaded data.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, time.Now())
}

// HealthReady reports dataset sizes. It answers 503 until an engine is wired.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.engine == nil {
		respondJSON(w, r, http.StatusServiceUnavailable, &models.APIResponse{
			Status: "error",
			Data: models.HealthStatus{
				Status:  "starting",
				Version: h.deps.Version,
				Uptime:  time.Since(h.startTime).Seconds(),
				Posters: h.deps.PosterMode,
			},
			Error: &models.APIError{Code: ErrCodeServiceUnavailable, Message: "Recommendation engine not loaded"},
		})
		return
	}

	state := h.engine.State()
	stats := h.engine.Stats()
	status := models.HealthStatus{
		Status:     "healthy",
		Version:    h.deps.Version,
		Uptime:     time.Since(h.startTime).Seconds(),
		LoadedAt:   state.LoadedAt(),
		Catalog:    stats.Catalog,
		Candidates: stats.Candidates,
		History:    stats.History,
		Months:     stats.Months,
		EpochYear:  state.EpochYear(),
		Posters:    h.deps.PosterMode,
	}
	if h.deps.BreakerState != nil {
		status.Breaker = h.deps.BreakerState()
	}
	respondSuccess(w, r, status, start)
}
