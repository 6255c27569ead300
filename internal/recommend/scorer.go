// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package recommend

import (
	"cmp"
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
)

// Scorer ranks candidates against a month's genre counter. It keeps an
// inverted index from genre to candidate positions so a request only
// visits candidates that share at least one genre with the month.
type Scorer struct {
	candidates []CatalogEntry
	byGenre    map[string][]int
}

// NewScorer indexes candidates. Their order is the tie-break order.
func NewScorer(candidates []CatalogEntry) *Scorer {
	s := &Scorer{
		candidates: candidates,
		byGenre:    make(map[string][]int),
	}
	for i := range candidates {
		for _, g := range candidates[i].Genres {
			s.byGenre[g] = append(s.byGenre[g], i)
		}
	}
	return s
}

// Len returns the number of indexed candidates.
func (s *Scorer) Len() int {
	return len(s.candidates)
}

// Rank scores every candidate overlapping the counter's genre space and
// returns the topN best, highest score first. Equal scores keep candidate
// order. The second result is how many candidates were scored.
func (s *Scorer) Rank(counter GenreCounter, watched KeySet, topN int) ([]ScoredItem, int, error) {
	if topN <= 0 {
		return nil, 0, fmt.Errorf("%w: topN=%d", ErrInvalidLimit, topN)
	}
	total := counter.Total()
	if total == 0 {
		return []ScoredItem{}, 0, nil
	}

	space := counter.Genres()
	weights := make([]float64, len(space))
	for i, g := range space {
		weights[i] = float64(counter[g]) / float64(total)
	}

	positions := s.overlapping(space)
	scored := make([]ScoredItem, 0, len(positions))
	for _, pos := range positions {
		entry := &s.candidates[pos]
		if watched.Has(entry.Key) {
			continue
		}
		score, ok := scoreEntry(entry, space, weights)
		if !ok {
			continue
		}
		scored = append(scored, ScoredItem{Entry: *entry, Score: score})
	}

	n := len(scored)
	slices.SortStableFunc(scored, func(a, b ScoredItem) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(scored) > topN {
		scored = scored[:topN]
	}
	for i := range scored {
		scored[i].Rank = i + 1
	}
	return scored, n, nil
}

// overlapping returns the ascending positions of candidates carrying any genre in space.
func (s *Scorer) overlapping(space []string) []int {
	var positions []int
	for _, g := range space {
		positions = append(positions, s.byGenre[g]...)
	}
	slices.Sort(positions)
	return slices.Compact(positions)
}

// scoreEntry is the dot product of the month distribution with the entry's
// genre indicator normalized to sum to 1. It reports false when the entry
// has no genre in space.
func scoreEntry(entry *CatalogEntry, space []string, weights []float64) (float64, bool) {
	overlap := 0
	for _, g := range space {
		if entry.HasGenre(g) {
			overlap++
		}
	}
	if overlap == 0 {
		return 0, false
	}

	share := 1 / float64(overlap)
	score := 0.0
	for i, g := range space {
		if entry.HasGenre(g) {
			score += weights[i] * share
		}
	}
	return score, true
}

// Result is the outcome of one scoring pass.
type Result struct {
	Items []ScoredItem
	// Scored counts candidates overlapping the genre space.
	Scored int
	// Ranked is the size of the top slice the selection drew from.
	Ranked int
}

// Recommend looks up the month's counter, ranks the candidates and lets sel
// choose min(selectN, ranked) of the top slice using rng. A month with no
// profile yields an empty result.
func Recommend(ctx context.Context, month int, profile MonthlyGenreProfile, scorer *Scorer, watched KeySet,
	topN, selectN int, sel Selector, rng *rand.Rand) (Result, error) {
	if err := ValidateMonth(month); err != nil {
		return Result{}, err
	}
	if topN <= 0 || selectN <= 0 {
		return Result{}, fmt.Errorf("%w: topN=%d selectN=%d", ErrInvalidLimit, topN, selectN)
	}

	empty := Result{Items: []ScoredItem{}}
	counter, ok := profile[month]
	if !ok || len(counter) == 0 {
		return empty, nil
	}

	top, scored, err := scorer.Rank(counter, watched, topN)
	if err != nil {
		return Result{}, err
	}
	if len(top) == 0 {
		empty.Scored = scored
		return empty, nil
	}

	if sel == nil {
		sel = UniformSelector{}
	}
	return Result{
		Items:  sel.Select(ctx, top, min(selectN, len(top)), rng),
		Scored: scored,
		Ranked: len(top),
	}, nil
}

// UniformSelector samples without replacement, every item equally likely.
// The picks are returned in rank order.
type UniformSelector struct{}

// Name returns the selector identifier.
func (UniformSelector) Name() string {
	return "uniform"
}

// Select draws n distinct items from items.
func (UniformSelector) Select(_ context.Context, items []ScoredItem, n int, rng *rand.Rand) []ScoredItem {
	if n <= 0 || len(items) == 0 {
		return []ScoredItem{}
	}
	if n >= len(items) {
		return slices.Clone(items)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // sampling, not security
	}

	// partial Fisher-Yates over indices
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	picked := idx[:n]
	slices.Sort(picked)

	out := make([]ScoredItem, n)
	for i, j := range picked {
		out[i] = items[j]
	}
	return out
}

var _ Selector = UniformSelector{}
