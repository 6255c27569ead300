// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

// Package reranking implements alternative selectors for the final
// recommendation pick.
//
// The default selector samples uniformly from the ranked top slice. The
// selectors here trade that randomness for other objectives and plug into
// the engine through recommend.WithSelector.
//
// # Maximal Marginal Relevance (MMR)
//
// MMR iteratively selects items that are both relevant and dissimilar to
// already selected items:
//
//	MMR = argmax[lambda * score(i) - (1-lambda) * max_similarity(i, selected)]
//
// Similarity is the Jaccard index of the two genre sets. Lambda guidelines:
//
//   - 0.9-1.0: mostly relevance, close to a plain top-k
//   - 0.7-0.9: balanced
//   - 0.0-0.5: diversity-focused
//
// MMR is deterministic: the same top slice always yields the same picks.
//
// # Thread Safety
//
// Selectors are stateless and safe for concurrent use.
package reranking
