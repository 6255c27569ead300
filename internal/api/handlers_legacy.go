// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package api

import (
	"net/http"

	"github.com/tomtom215/cinemonth/internal/logging"
	"github.com/tomtom215/cinemonth/internal/models"
	"github.com/tomtom215/cinemonth/internal/recommend"
	"github.com/tomtom215/cinemonth/internal/validation"
)

// LegacyRecommend handles POST /recommend for the browser front-end. It
// answers with a bare JSON array; errors still use the envelope.
func (h *Handler) LegacyRecommend(w http.ResponseWriter, r *http.Request) {
	var req models.LegacyRecommendRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidation(w, r, verr)
		return
	}

	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	resp, posters, err := h.recommend(ctx, recommend.Request{
		Month:     *req.MonthIndex,
		RequestID: logging.RequestIDFromContext(r.Context()),
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	out := make([]models.LegacyRecommendation, len(resp.Items))
	for i, it := range resp.Items {
		out[i] = models.LegacyRecommendation{
			Name:   it.Entry.Key.Title,
			Year:   it.Entry.Key.Year,
			Poster: posters[i],
			Genres: it.Entry.Genres,
			Rating: it.Entry.Rating,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// LegacyWatched handles POST /watched. A null, missing or zero month_index
// lists every watched title.
func (h *Handler) LegacyWatched(w http.ResponseWriter, r *http.Request) {
	var req models.LegacyWatchedRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidation(w, r, verr)
		return
	}

	month := req.MonthIndex
	if month != nil && *month == 0 {
		month = nil
	}
	keys, err := h.watchedKeys(month)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	out := make([]models.LegacyWatched, len(keys))
	for i, k := range keys {
		out[i] = models.LegacyWatched{Display: k.String()}
	}
	writeJSON(w, http.StatusOK, out)
}
