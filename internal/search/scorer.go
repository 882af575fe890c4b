package search

import (
	"strings"

	"ytmeta/internal/videoid"
)

const (
	scoreExact    = 10.0
	scoreContains = 8.0
)

// Score rates how well a candidate title answers a query. Both sides are
// normalized and lower-cased before comparison, so separator noise in
// backend titles does not mask a match. Exact equality scores 10, a
// substring hit scores 8, anything else falls back to the fraction of query
// tokens the candidate shares. Tokens of one character or less are ignored
// and repeated query tokens count once.
func Score(query, candidate string) float64 {
	q := strings.ToLower(videoid.CleanSearchText(query))
	c := strings.ToLower(videoid.CleanSearchText(candidate))
	if q == "" || c == "" {
		return 0
	}
	if q == c {
		return scoreExact
	}
	if strings.Contains(c, q) {
		return scoreContains
	}

	queryTokens := tokenize(q)
	candidateTokens := tokenize(c)
	if len(queryTokens) == 0 || len(candidateTokens) == 0 {
		return 0
	}

	seen := make(map[string]struct{}, len(candidateTokens))
	for _, token := range candidateTokens {
		seen[token] = struct{}{}
	}
	matched := make(map[string]struct{}, len(queryTokens))
	for _, token := range queryTokens {
		if _, ok := seen[token]; ok {
			matched[token] = struct{}{}
		}
	}
	return float64(len(matched)) / float64(len(queryTokens))
}

func tokenize(text string) []string {
	fields := strings.Fields(text)
	tokens := fields[:0]
	for _, field := range fields {
		if len(field) > 1 {
			tokens = append(tokens, field)
		}
	}
	return tokens
}
