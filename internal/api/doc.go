// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

/*
Package api serves the Cinemonth HTTP interface on a chi router.

Routes under /api/v1 answer with the models.APIResponse envelope:

	GET  /api/v1/health/live              liveness
	GET  /api/v1/health/ready             dataset sizes and poster mode
	GET  /api/v1/months                   months with watch history
	GET  /api/v1/profile/{month}          genre counts and distribution
	GET  /api/v1/recommendations/{month}  recommendations with posters
	GET  /api/v1/watched                  watched titles, optional ?month=
	GET  /api/v1/wrapped/{year}           year-in-review over the loaded log
	POST /api/v1/wrapped/upload?year=     year-in-review for an uploaded log

The browser front-end posts to two bare routes that answer with plain JSON
arrays:

	POST /recommend  {"month_index": 3}     -> [{"Name", "Year", "poster", "genres", "rating"}]
	POST /watched    {"month_index": null}  -> [{"display": "Heat (1995)"}]

Month indices count from January of the configured epoch year (1 = January
2025 by default). A month below 1 is a VALIDATION_ERROR.

Middleware order: request ID, real IP, panic recovery, access log,
Prometheus metrics, CORS, then per-group rate limiting and security headers.
/metrics exposes the Prometheus registry and is not rate limited.
*/
package api
