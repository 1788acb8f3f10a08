package seo

import "strings"

// KeywordDensity returns the keyword's share of the page text as a
// percentage: case-insensitive substring occurrences per 100
// whitespace-separated tokens. Substrings count, so "cat" also matches
// inside "category". A text without tokens, or an empty keyword, yields 0.
func KeywordDensity(text, keyword string) float64 {
	if keyword == "" {
		return 0
	}

	lowered := strings.ToLower(text)
	words := len(strings.Fields(lowered))
	if words == 0 {
		return 0
	}

	occurrences := strings.Count(lowered, strings.ToLower(keyword))
	return 100 * float64(occurrences) / float64(words)
}
