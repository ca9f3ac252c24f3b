package errors

import (
	"fmt"
	"strings"
)

// SuggestSectionName suggests a defined section when an unknown extends
// target is referenced. It uses Levenshtein distance to find similar names.
func SuggestSectionName(unknown string, defined []string) string {
	if len(defined) == 0 {
		return ""
	}

	minDistance := 1000
	var bestMatch string

	for _, name := range defined {
		dist := levenshteinDistance(unknown, name)
		if dist < minDistance {
			minDistance = dist
			bestMatch = name
		}
	}

	// Only suggest if the distance is reasonable (< 5 edits)
	if minDistance < 5 {
		return fmt.Sprintf("Did you mean '%s'?", bestMatch)
	}

	if len(defined) > 5 {
		return fmt.Sprintf("Defined sections include: %s, ...", strings.Join(defined[:5], ", "))
	}
	return fmt.Sprintf("Defined sections: %s", strings.Join(defined, ", "))
}

// SuggestDirective suggests a known global directive when an unknown or
// misspelled one is encountered.
func SuggestDirective(unknown string, valid []string) string {
	if len(valid) == 0 {
		return ""
	}

	minDistance := 1000
	var bestMatch string

	for _, directive := range valid {
		dist := levenshteinDistance(unknown, directive)
		if dist < minDistance {
			minDistance = dist
			bestMatch = directive
		}
	}

	if minDistance < 5 {
		return fmt.Sprintf("Did you mean '%s'?", bestMatch)
	}

	return fmt.Sprintf("Known directives: %s", strings.Join(valid, ", "))
}

// SuggestUnit suggests a known unit symbol for an unrecognized suffix.
func SuggestUnit(unknown string, known []string) string {
	if len(known) == 0 {
		return ""
	}

	minDistance := 1000
	var bestMatch string

	for _, unit := range known {
		dist := levenshteinDistance(unknown, unit)
		if dist < minDistance {
			minDistance = dist
			bestMatch = unit
		}
	}

	// Unit symbols are short, so require a tight match
	if minDistance < 3 {
		return fmt.Sprintf("Did you mean '%s'?", bestMatch)
	}
	return ""
}

// levenshteinDistance computes the Levenshtein distance between two strings.
// This is used for finding similar names for suggestions.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	len1 := len(s1)
	len2 := len(s2)

	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}

	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}

			matrix[i][j] = min3(
				matrix[i-1][j]+1,      // Deletion
				matrix[i][j-1]+1,      // Insertion
				matrix[i-1][j-1]+cost, // Substitution
			)
		}
	}

	return matrix[len1][len2]
}

// min3 returns the minimum of three integers.
func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
