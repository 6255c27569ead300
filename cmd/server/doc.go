// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

/*
Package main is the entry point for the Cinemonth server.

Cinemonth serves movie recommendations that follow the genre taste of one
month of a Letterboxd watch history, scored against a catalog preprocessed
from the IMDB bulk files (see cmd/preprocess).

# Startup

 1. Configuration: Koanf v2 (defaults, optional YAML file, environment)
 2. Logging: zerolog with JSON or console output
 3. Catalog: processed catalog CSV, filtered by rating and vote thresholds
 4. History: Letterboxd watched.csv or the full export ZIP, joined to the catalog
 5. Engine: frozen state with monthly profiles and the candidate index
 6. Posters: TMDb client behind a circuit breaker and a TTL cache, or placeholders
 7. HTTP: chi router with request IDs, access log, metrics, CORS and rate limits
 8. Supervision: suture v4 tree

The datasets are loaded once. Changing them requires a restart.

# Supervision

	RootSupervisor ("cinemonth")
	├── APISupervisor ("api-layer")
	│   └── HTTP Server
	└── MaintenanceSupervisor ("maintenance-layer")
	    └── Poster cache janitor

# Example

	export CATALOG_PATH=data/processed_movies.csv
	export WATCHED_PATH=data/letterboxd-export.zip
	export POSTER_ENABLED=true
	export TMDB_API_KEY=your-tmdb-key
	./cinemonth

SIGINT and SIGTERM stop the tree; the HTTP server drains in-flight requests
for up to server.shutdown_timeout.
*/
package main
