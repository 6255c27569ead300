// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/cinemonth/internal/logging"
	"github.com/tomtom215/cinemonth/internal/metrics"
	"github.com/tomtom215/cinemonth/internal/models"
	"github.com/tomtom215/cinemonth/internal/recommend"
	"github.com/tomtom215/cinemonth/internal/validation"
)

// Months handles GET /api/v1/months.
func (h *Handler) Months(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	summaries := h.engine.Months()
	items := make([]models.MonthItem, len(summaries))
	for i, s := range summaries {
		items[i] = models.MonthItem{
			Month:      s.Month,
			Label:      s.Label,
			Films:      s.Films,
			HasProfile: s.HasProfile,
		}
	}
	respondSuccess(w, r, items, start)
}

// Profile handles GET /api/v1/profile/{month}.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	month, err := pathInt(r, "month")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}

	profile, err := h.engine.Profile(month)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondSuccess(w, r, models.ProfileResponse{
		Month:        profile.Month,
		Label:        profile.Label,
		Films:        profile.Films,
		TotalTags:    profile.TotalTags,
		Counts:       profile.Counts,
		Distribution: profile.Distribution,
	}, start)
}

// Recommendations handles GET /api/v1/recommendations/{month}. Optional
// top_n and select_n override the configured limits.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	month, err := pathInt(r, "month")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}

	var q RecommendationsQuery
	if q.TopN, err = queryInt(r, "top_n", 0); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}
	if q.SelectN, err = queryInt(r, "select_n", 0); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}
	if verr := validation.ValidateStruct(&q); verr != nil {
		respondValidation(w, r, verr)
		return
	}

	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	resp, posters, err := h.recommend(ctx, recommend.Request{
		Month:     month,
		TopN:      q.TopN,
		SelectN:   q.SelectN,
		RequestID: logging.RequestIDFromContext(r.Context()),
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	items := make([]models.RecommendationItem, len(resp.Items))
	for i, it := range resp.Items {
		items[i] = models.RecommendationItem{
			Rank:      it.Rank,
			Name:      it.Entry.Key.Title,
			Year:      it.Entry.Key.Year,
			Genres:    it.Entry.Genres,
			Rating:    it.Entry.Rating,
			Votes:     it.Entry.Votes,
			Score:     it.Score,
			PosterURL: posters[i],
			TConst:    it.Entry.TConst,
		}
	}

	respondSuccess(w, r, models.RecommendationsResponse{
		Month:           resp.Month,
		Label:           recommend.MonthLabel(resp.Month, h.engine.State().EpochYear()),
		Items:           items,
		TotalCandidates: resp.TotalCandidates,
		Scored:          resp.Scored,
		Ranked:          resp.Ranked,
		Selector:        resp.Metadata.Selector,
		TopN:            resp.Metadata.TopN,
		SelectN:         resp.Metadata.SelectN,
		RequestID:       resp.Metadata.RequestID,
	}, start)
}

// recommend runs the engine, records metrics, then resolves posters once
// per returned item.
func (h *Handler) recommend(ctx context.Context, req recommend.Request) (*recommend.Response, []string, error) {
	start := time.Now()
	resp, err := h.engine.Recommend(ctx, req)
	if err != nil {
		metrics.RecordRecommendation(0, 0, time.Since(start), err)
		return nil, nil, err
	}
	metrics.RecordRecommendation(len(resp.Items), resp.Scored, time.Since(start), nil)

	return resp, h.posters(ctx, resp.Items), nil
}
