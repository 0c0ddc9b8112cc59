package query

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/mvp-joe/pmdo-query/internal/extract"
)

// Score tiers, lower is more relevant. A fuzzy match scores ScoreFuzzy plus
// its edit distance.
const (
	ScoreExact       = 0
	ScorePrefix      = 10
	ScoreSubstring   = 20
	ScoreDescription = 50
	ScoreFuzzy       = 100

	// MaxEditDistance is the fuzzy cutoff for both search and suggestions.
	MaxEditDistance = 3

	// MaxSuggestions caps the "did you mean" list of a failed lookup.
	MaxSuggestions = 5
)

// Score ranks entry against an already lower-cased query. The first tier
// that matches wins; ok is false when no tier matches.
func Score(entry extract.Entry, queryLower string) (score int, ok bool) {
	name := strings.ToLower(entry.DisplayName)
	id := strings.ToLower(entry.ID)

	switch {
	case name == queryLower || id == queryLower:
		return ScoreExact, true
	case strings.HasPrefix(name, queryLower) || strings.HasPrefix(id, queryLower):
		return ScorePrefix, true
	case strings.Contains(name, queryLower) || strings.Contains(id, queryLower):
		return ScoreSubstring, true
	case strings.Contains(strings.ToLower(entry.Description), queryLower):
		return ScoreDescription, true
	}

	if d := distance(queryLower, name); d <= MaxEditDistance {
		return ScoreFuzzy + d, true
	}
	return 0, false
}

// distance is the Levenshtein distance between two lower-cased strings.
func distance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}
