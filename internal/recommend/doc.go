// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

// Package recommend implements month-based genre-taste recommendations.
//
// # Architecture
//
// The engine works over a frozen snapshot of two datasets:
//
//   - Catalog: IMDB titles joined with ratings, filtered to well-rated,
//     well-voted movies and series.
//   - History: the user's watch log, with genres attached from the catalog.
//
// From the history a per-month genre counter is built (the monthly profile).
// A recommendation for month m normalizes that month's counter into a
// distribution over its own genres (the genre space), scores every unseen
// candidate sharing at least one genre by the dot product with the
// candidate's normalized genre indicator, keeps the top N and samples a
// handful of them uniformly at random.
//
// # Month Index
//
// Months are numbered relative to an epoch year: January of the epoch year
// is 1, December is 12, January of the following year is 13. Watches before
// the epoch stay in the history but never contribute to a profile.
//
// # Usage
//
//	catalog, _ := recommend.BuildCatalog(titles, ratings, recommend.DefaultCatalogOptions())
//	history, _ := recommend.BuildHistory(rows, catalog, 2025)
//	state := recommend.NewState(catalog, history, 2025)
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), state, logger)
//	resp, err := engine.Recommend(ctx, recommend.Request{Month: 14})
//
// # Thread Safety
//
// State is immutable once built and Engine holds no per-request mutable
// data apart from atomic counters. Each Recommend call draws from its own
// random source, so concurrent calls need no locking.
package recommend
