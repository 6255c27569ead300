// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package poster

import (
	"net/url"
	"strings"
)

// DefaultPlaceholderBaseURL renders a 200x300 black image with white text.
const DefaultPlaceholderBaseURL = "https://dummyimage.com/200x300/000/fff&text="

// Placeholder returns the fallback image URL for title: the base URL followed
// by the title with spaces replaced by '+'. Other characters are escaped.
func Placeholder(baseURL, title string) string {
	if baseURL == "" {
		baseURL = DefaultPlaceholderBaseURL
	}
	words := strings.Split(title, " ")
	for i, w := range words {
		words[i] = url.QueryEscape(w)
	}
	return baseURL + strings.Join(words, "+")
}
