// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

/*
Package poster attaches poster image URLs to recommendations.

Lookups go through a chain of resolvers:

	Enricher -> TTL cache -> BreakerResolver (gobreaker) -> TMDbClient (rate limited)

Every item always receives a URL. When TMDb has no match, the call fails, the
breaker is open or the enrichment deadline passes, the item gets a placeholder
image URL built from its title. Placeholders are never cached, so a title
that failed once is retried on the next request.

The Enricher resolves each item at most once per call, with bounded
concurrency, and returns URLs in item order.
*/
package poster
