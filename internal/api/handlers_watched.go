// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/cinemonth/internal/models"
	"github.com/tomtom215/cinemonth/internal/recommend"
	"github.com/tomtom215/cinemonth/internal/validation"
)

// Watched handles GET /api/v1/watched. Without ?month= it lists the whole
// log in watch order.
func (h *Handler) Watched(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var (
		q   WatchedQuery
		err error
	)
	if q.Month, err = queryIntPtr(r, "month"); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}
	if verr := validation.ValidateStruct(&q); verr != nil {
		respondValidation(w, r, verr)
		return
	}

	keys, err := h.watchedKeys(q.Month)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	items := make([]models.WatchedItem, len(keys))
	for i, k := range keys {
		items[i] = models.WatchedItem{Name: k.Title, Year: k.Year, Display: k.String()}
	}
	respondSuccess(w, r, models.WatchedResponse{
		Month: q.Month,
		Count: len(items),
		Items: items,
	}, start)
}

// watchedKeys returns one month's keys, or every key for a nil month.
func (h *Handler) watchedKeys(month *int) ([]recommend.MovieKey, error) {
	if month == nil {
		return h.engine.WatchedAll(), nil
	}
	return h.engine.WatchedForMonth(*month)
}
