package ui

import (
	"sort"
	"strings"
)

const (
	// DefaultMaxDistance is the maximum edit distance considered a match
	DefaultMaxDistance = 3
	// DefaultMaxSuggestions is the maximum number of suggestions returned
	DefaultMaxSuggestions = 3
)

// FindSimilar returns candidates within Levenshtein distance of target,
// closest first, capped at DefaultMaxSuggestions. Matching is
// case-insensitive.
//
// Example:
//
//	FindSimilar("Usr", []string{"User", "Account", "Session"})
//	// Returns: ["User"]
func FindSimilar(target string, candidates []string) []string {
	type scored struct {
		value    string
		distance int
	}

	var matches []scored
	lowerTarget := strings.ToLower(target)

	for _, candidate := range candidates {
		dist := LevenshteinDistance(lowerTarget, strings.ToLower(candidate))
		if dist <= DefaultMaxDistance {
			matches = append(matches, scored{value: candidate, distance: dist})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].distance < matches[j].distance
	})

	result := make([]string, 0, DefaultMaxSuggestions)
	for i := 0; i < len(matches) && i < DefaultMaxSuggestions; i++ {
		result = append(result, matches[i].value)
	}

	return result
}

// LevenshteinDistance calculates the minimum number of single-character
// edits (insertions, deletions, or substitutions) required to change one
// string into the other.
func LevenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(s2); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(s1)][len(s2)]
}
