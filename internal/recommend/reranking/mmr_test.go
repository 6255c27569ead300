// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package reranking

import (
	"context"
	"testing"

	"github.com/tomtom215/cinemonth/internal/recommend"
)

func item(title string, score float64, genres ...string) recommend.ScoredItem {
	return recommend.ScoredItem{
		Entry: recommend.CatalogEntry{
			Key:    recommend.MovieKey{Title: title, Year: 2000},
			Genres: genres,
		},
		Score: score,
	}
}

func TestNewMMR(t *testing.T) {
	tests := []struct {
		name       string
		lambda     float64
		wantLambda float64
	}{
		{"normal value", 0.7, 0.7},
		{"zero value", 0.0, 0.0},
		{"one value", 1.0, 1.0},
		{"negative clamped to zero", -0.5, 0.0},
		{"above one clamped to one", 1.5, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mmr := NewMMR(tt.lambda)
			if mmr == nil {
				t.Fatal("NewMMR() returned nil")
			}
			if mmr.Lambda() != tt.wantLambda {
				t.Errorf("Lambda() = %f, want %f", mmr.Lambda(), tt.wantLambda)
			}
		})
	}
}

func TestMMR_Name(t *testing.T) {
	mmr := NewMMR(0.7)
	if mmr.Name() != "mmr" {
		t.Errorf("Name() = %q, want %q", mmr.Name(), "mmr")
	}
}

func TestMMR_Select(t *testing.T) {
	items := []recommend.ScoredItem{
		item("A", 1.0, "Action"),
		item("B", 0.9, "Action"),
		item("C", 0.85, "Comedy"),
		item("D", 0.8, "Action"),
		item("E", 0.75, "Drama"),
		item("F", 0.7, "Comedy"),
	}

	tests := []struct {
		name    string
		lambda  float64
		n       int
		wantLen int
	}{
		{"pure relevance", 1.0, 3, 3},
		{"balanced", 0.7, 3, 3},
		{"n larger than items", 0.7, 10, 6},
		{"n zero", 0.7, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewMMR(tt.lambda).Select(context.Background(), items, tt.n, nil)
			if len(result) != tt.wantLen {
				t.Errorf("len(result) = %d, want %d", len(result), tt.wantLen)
			}
		})
	}
}

func TestMMR_Select_PureRelevanceKeepsRankOrder(t *testing.T) {
	items := []recommend.ScoredItem{
		item("A", 1.0, "Action"),
		item("B", 0.9, "Action"),
		item("C", 0.5, "Comedy"),
	}

	result := NewMMR(1.0).Select(context.Background(), items, 2, nil)
	if result[0].Entry.Key.Title != "A" || result[1].Entry.Key.Title != "B" {
		t.Errorf("got %s, %s; want A, B", result[0].Entry.Key.Title, result[1].Entry.Key.Title)
	}
}

func TestMMR_Select_DiversityEffect(t *testing.T) {
	items := []recommend.ScoredItem{
		item("A", 1.0, "Action"),
		item("B", 0.95, "Action"),
		item("C", 0.9, "Action"),
		item("D", 0.5, "Comedy"),
		item("E", 0.4, "Drama"),
	}

	t.Run("pure relevance keeps all Action", func(t *testing.T) {
		result := NewMMR(1.0).Select(context.Background(), items, 3, nil)
		for _, it := range result {
			if it.Entry.Genres[0] != "Action" {
				t.Errorf("pure relevance should only select Action items, got %v", it.Entry.Genres)
			}
		}
	})

	t.Run("low lambda promotes diversity", func(t *testing.T) {
		result := NewMMR(0.3).Select(context.Background(), items, 3, nil)

		genresSeen := make(map[string]bool)
		for _, it := range result {
			for _, g := range it.Entry.Genres {
				genresSeen[g] = true
			}
		}
		if len(genresSeen) < 2 {
			t.Errorf("expected genre diversity, only saw %v", genresSeen)
		}
	})

	t.Run("second pick leaves the first genre", func(t *testing.T) {
		// B: 0.5*0.95 - 0.5*1 < D: 0.5*0.5 - 0
		result := NewMMR(0.5).Select(context.Background(), items, 2, nil)
		if result[0].Entry.Key.Title != "A" || result[1].Entry.Key.Title != "D" {
			t.Errorf("got %s, %s; want A, D", result[0].Entry.Key.Title, result[1].Entry.Key.Title)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		mmr := NewMMR(0.5)
		first := mmr.Select(context.Background(), items, 3, nil)
		second := mmr.Select(context.Background(), items, 3, nil)
		for i := range first {
			if first[i].Entry.Key != second[i].Entry.Key {
				t.Fatalf("pick %d differs: %v vs %v", i, first[i].Entry.Key, second[i].Entry.Key)
			}
		}
	})
}

func TestMMR_Select_EmptyInput(t *testing.T) {
	mmr := NewMMR(0.7)

	if result := mmr.Select(context.Background(), nil, 5, nil); len(result) != 0 {
		t.Errorf("expected empty result for nil input, got %d items", len(result))
	}
	if result := mmr.Select(context.Background(), []recommend.ScoredItem{}, 5, nil); len(result) != 0 {
		t.Errorf("expected empty result for empty slice, got %d items", len(result))
	}
}

func TestGenreSetJaccard(t *testing.T) {
	tests := []struct {
		name     string
		a        []string
		b        []string
		expected float64
	}{
		{"identical genres", []string{"Action", "Sci-Fi"}, []string{"Action", "Sci-Fi"}, 1.0},
		{"no overlap", []string{"Action"}, []string{"Comedy"}, 0.0},
		{"partial overlap", []string{"Action", "Sci-Fi"}, []string{"Action", "Drama"}, 1.0 / 3.0},
		{"both empty", nil, nil, 0.0},
		{"one empty", []string{"Action"}, nil, 0.0},
		{"case insensitive", []string{"ACTION"}, []string{"action"}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := newGenreSet(tt.a).jaccard(newGenreSet(tt.b))
			if result < tt.expected-0.01 || result > tt.expected+0.01 {
				t.Errorf("jaccard(%v, %v) = %f, want %f", tt.a, tt.b, result, tt.expected)
			}
		})
	}
}
