// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package reranking

import (
	"context"
	"math/rand/v2"
	"strings"

	"github.com/tomtom215/cinemonth/internal/recommend"
)

// MMR picks items by Maximal Marginal Relevance over genre sets.
//
// Reference:
// Carbonell, J., & Goldstein, J. (1998). "The Use of MMR, Diversity-Based
// Reranking for Reordering Documents and Producing Summaries." SIGIR 1998.
type MMR struct {
	// lambda weights relevance against novelty, in [0, 1].
	lambda float64
}

// NewMMR creates an MMR selector. Lambda is clamped to [0, 1].
func NewMMR(lambda float64) *MMR {
	return &MMR{lambda: min(max(lambda, 0), 1)}
}

// Name returns the selector identifier.
func (m *MMR) Name() string {
	return "mmr"
}

// Lambda returns the relevance weight.
func (m *MMR) Lambda() float64 {
	return m.lambda
}

// Select greedily picks n items, each maximizing
// lambda*score - (1-lambda)*maxSimilarityToPicked. The random source is
// unused. Picks come back in selection order.
func (m *MMR) Select(ctx context.Context, items []recommend.ScoredItem, n int, _ *rand.Rand) []recommend.ScoredItem {
	n = min(n, len(items))
	if n <= 0 {
		return []recommend.ScoredItem{}
	}
	if m.lambda >= 1 {
		return append([]recommend.ScoredItem(nil), items[:n]...)
	}

	sets := make([]genreSet, len(items))
	for i := range items {
		sets[i] = newGenreSet(items[i].Entry.Genres)
	}

	// nearest[i] is the highest similarity of item i to anything picked so far.
	nearest := make([]float64, len(items))
	taken := make([]bool, len(items))
	picked := make([]recommend.ScoredItem, 0, n)

	for len(picked) < n && ctx.Err() == nil {
		best, bestValue := -1, 0.0
		for i := range items {
			if taken[i] {
				continue
			}
			v := m.lambda*items[i].Score - (1-m.lambda)*nearest[i]
			// strict > keeps the better ranked item on ties
			if best < 0 || v > bestValue {
				best, bestValue = i, v
			}
		}
		if best < 0 {
			break
		}

		taken[best] = true
		picked = append(picked, items[best])
		for i := range items {
			if !taken[i] {
				nearest[i] = max(nearest[i], sets[i].jaccard(sets[best]))
			}
		}
	}
	return picked
}

// genreSet is a case-folded set of genres.
type genreSet map[string]struct{}

func newGenreSet(genres []string) genreSet {
	s := make(genreSet, len(genres))
	for _, g := range genres {
		s[strings.ToLower(g)] = struct{}{}
	}
	return s
}

// jaccard returns |a ∩ b| / |a ∪ b|, or 0 when both sets are empty.
func (a genreSet) jaccard(b genreSet) float64 {
	shared := 0
	for g := range a {
		if _, ok := b[g]; ok {
			shared++
		}
	}
	union := len(a) + len(b) - shared
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}

var _ recommend.Selector = (*MMR)(nil)
