package utils

import (
	"strings"
)

// This file is the single home for the keyword-matching heuristics used by
// intent classification. Matching is substring containment on the lower-cased
// query, NOT word-boundary or stemmed matching: "ac" matches inside "package".
// That looseness is an accepted false-positive risk carried over from the
// production keyword tables; swap the policy here, not at call sites.

// ContainsAny reports whether the lower-cased query contains any of the
// given surface keywords.
func ContainsAny(query string, keywords ...string) bool {
	q := strings.ToLower(query)
	for _, k := range keywords {
		if strings.Contains(q, k) {
			return true
		}
	}
	return false
}

// FirstContained returns the first keyword contained in the lower-cased
// query, scanning in slice order.
func FirstContained(query string, keywords []string) (string, bool) {
	q := strings.ToLower(query)
	for _, k := range keywords {
		if strings.Contains(q, k) {
			return k, true
		}
	}
	return "", false
}

// TokensWithout splits the query on whitespace and drops every token present
// in the stopword set. Tokens are compared exactly after lower-casing; no
// punctuation stripping is applied.
func TokensWithout(query string, stopwords map[string]bool) []string {
	var kept []string
	for _, tok := range strings.Fields(strings.ToLower(query)) {
		if !stopwords[tok] {
			kept = append(kept, tok)
		}
	}
	return kept
}

// NormalizeName lowercases, trims, and collapses internal whitespace so
// entity names extracted from queries compare cleanly against catalog names.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
