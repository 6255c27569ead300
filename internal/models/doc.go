// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

// Package models holds the JSON shapes Cinemonth serves over HTTP: the
// response envelope, recommendation and profile payloads, the legacy
// front-end payloads and the wrapped report.
package models
