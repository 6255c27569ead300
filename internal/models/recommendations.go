// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package models

// RecommendationItem is one recommended title with its poster.
type RecommendationItem struct {
	Rank      int      `json:"rank"`
	Name      string   `json:"name"`
	Year      int      `json:"year"`
	Genres    []string `json:"genres"`
	Rating    float64  `json:"rating"`
	Votes     int      `json:"votes"`
	Score     float64  `json:"score"`
	PosterURL string   `json:"poster_url"`
	TConst    string   `json:"tconst,omitempty"`
}

// RecommendationsResponse is the payload of GET /api/v1/recommendations/{month}.
type RecommendationsResponse struct {
	Month           int                  `json:"month_index"`
	Label           string               `json:"label"`
	Items           []RecommendationItem `json:"items"`
	TotalCandidates int                  `json:"total_candidates"`
	Scored          int                  `json:"scored"`
	Ranked          int                  `json:"ranked"`
	Selector        string               `json:"selector"`
	TopN            int                  `json:"top_n"`
	SelectN         int                  `json:"select_n"`
	RequestID       string               `json:"request_id"`
}

// ProfileResponse is the payload of GET /api/v1/profile/{month}.
type ProfileResponse struct {
	Month        int                `json:"month_index"`
	Label        string             `json:"label"`
	Films        int                `json:"films"`
	TotalTags    int                `json:"total_tags"`
	Counts       map[string]int     `json:"counts"`
	Distribution map[string]float64 `json:"distribution"`
}

// MonthItem is one entry of GET /api/v1/months.
type MonthItem struct {
	Month      int    `json:"month_index"`
	Label      string `json:"label"`
	Films      int    `json:"films"`
	HasProfile bool   `json:"has_profile"`
}

// WatchedItem is one watched title.
type WatchedItem struct {
	Name    string `json:"name"`
	Year    int    `json:"year"`
	Display string `json:"display"`
}

// WatchedResponse is the payload of GET /api/v1/watched.
type WatchedResponse struct {
	Month *int          `json:"month_index,omitempty"`
	Count int           `json:"count"`
	Items []WatchedItem `json:"items"`
}

// LegacyRecommendRequest is the body of POST /recommend.
type LegacyRecommendRequest struct {
	MonthIndex *int `json:"month_index" validate:"required,min=1"`
}

// LegacyWatchedRequest is the body of POST /watched. A null or zero month
// lists everything.
type LegacyWatchedRequest struct {
	MonthIndex *int `json:"month_index" validate:"omitempty,min=0"`
}

// LegacyRecommendation is one element of the POST /recommend response.
type LegacyRecommendation struct {
	Name   string   `json:"Name"`
	Year   int      `json:"Year"`
	Poster string   `json:"poster"`
	Genres []string `json:"genres"`
	Rating float64  `json:"rating"`
}

// LegacyWatched is one element of the POST /watched response.
type LegacyWatched struct {
	Display string `json:"display"`
}
