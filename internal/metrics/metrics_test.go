// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// histogramCount extracts the sample count from a histogram
func histogramCount(h prometheus.Histogram) uint64 {
	var m io_prometheus_client.Metric
	if err := h.Write(&m); err != nil {
		return 0
	}
	return m.GetHistogram().GetSampleCount()
}

func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		endpoint   string
		statusCode string
	}{
		{"recommendations ok", "GET", "/api/v1/recommendations/{month}", "200"},
		{"invalid month", "GET", "/api/v1/profile/{month}", "400"},
		{"legacy recommend", "POST", "/recommend", "200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode)
			before := testutil.ToFloat64(counter)

			RecordAPIRequest(tt.method, tt.endpoint, tt.statusCode, 3*time.Millisecond)

			if got := testutil.ToFloat64(counter); got != before+1 {
				t.Errorf("api_requests_total = %v, want %v", got, before+1)
			}
		})
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("after inc = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("after dec = %v, want %v", got, before)
	}
}

func TestRecordRecommendation(t *testing.T) {
	tests := []struct {
		name    string
		items   int
		err     error
		outcome string
		timed   bool
	}{
		{"with items", 8, nil, "ok", true},
		{"empty month", 0, nil, "empty", true},
		{"invalid month", 0, errors.New("invalid month"), "error", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := RecommendRequests.WithLabelValues(tt.outcome)
			before := testutil.ToFloat64(counter)
			observed := histogramCount(RecommendDuration)

			RecordRecommendation(tt.items, 120, time.Millisecond, tt.err)

			if got := testutil.ToFloat64(counter); got != before+1 {
				t.Errorf("recommend_requests_total{%s} = %v, want %v", tt.outcome, got, before+1)
			}
			grew := histogramCount(RecommendDuration) > observed
			if grew != tt.timed {
				t.Errorf("duration observed = %v, want %v", grew, tt.timed)
			}
		})
	}
}

func TestSetDatasetSizes(t *testing.T) {
	SetDatasetSizes(1000, 900, 100, 3)

	want := map[string]float64{"catalog": 1000, "candidates": 900, "history": 100, "months": 3}
	for dataset, v := range want {
		if got := testutil.ToFloat64(DatasetEntries.WithLabelValues(dataset)); got != v {
			t.Errorf("dataset_entries{%s} = %v, want %v", dataset, got, v)
		}
	}
}

func TestRecordCacheAccess(t *testing.T) {
	hits := testutil.ToFloat64(CacheHits.WithLabelValues("poster"))
	misses := testutil.ToFloat64(CacheMisses.WithLabelValues("poster"))

	RecordCacheAccess("poster", true)
	RecordCacheAccess("poster", false)
	RecordCacheAccess("poster", false)

	if got := testutil.ToFloat64(CacheHits.WithLabelValues("poster")); got != hits+1 {
		t.Errorf("hits = %v, want %v", got, hits+1)
	}
	if got := testutil.ToFloat64(CacheMisses.WithLabelValues("poster")); got != misses+2 {
		t.Errorf("misses = %v, want %v", got, misses+2)
	}
}

func TestRecordLoad(t *testing.T) {
	kept := testutil.ToFloat64(LoadRows.WithLabelValues("history", "kept"))
	dropped := testutil.ToFloat64(LoadRows.WithLabelValues("history", "dropped_date"))

	RecordLoad("history", 12, map[string]int{"date": 2, "key": 0})

	if got := testutil.ToFloat64(LoadRows.WithLabelValues("history", "kept")); got != kept+12 {
		t.Errorf("kept = %v, want %v", got, kept+12)
	}
	if got := testutil.ToFloat64(LoadRows.WithLabelValues("history", "dropped_date")); got != dropped+2 {
		t.Errorf("dropped_date = %v, want %v", got, dropped+2)
	}
	if n := testutil.CollectAndCount(LoadRows, "load_rows_total"); n == 0 {
		t.Error("load_rows_total has no series")
	}
}
