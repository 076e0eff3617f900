// Package matching evaluates weighted validation markers against free text.
package matching

import (
	"regexp"
	"strings"

	"github.com/jonathan/persona-validator/internal/types"
)

// Matcher is a compiled form of a single marker pattern.
type Matcher struct {
	pattern string
	re      *regexp.Regexp
}

// Compile compiles pattern case-insensitively. When pattern is not a valid regular
// expression the Matcher falls back to case-insensitive substring containment.
func Compile(pattern string) Matcher {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return Matcher{pattern: pattern}
	}
	return Matcher{pattern: pattern, re: re}
}

// IsLiteral reports whether the matcher fell back to literal matching.
func (m Matcher) IsLiteral() bool {
	return m.re == nil
}

// Match reports whether the pattern occurs in text.
func (m Matcher) Match(text string) bool {
	if m.re != nil {
		return m.re.MatchString(text) || m.re.MatchString(strings.ToLower(text))
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(m.pattern))
}

// Matches reports whether pattern occurs in text, with the same fallback rules as Compile.
func Matches(text, pattern string) bool {
	return Compile(pattern).Match(text)
}

// Evaluate classifies every marker as matched or unmatched. Results are keyed by the
// marker's index in markers; defaultWeight applies to markers without a weight.
func Evaluate(text string, markers []types.ValidationMarker, defaultWeight float64) []types.MarkerResult {
	results := make([]types.MarkerResult, 0, len(markers))
	for i, marker := range markers {
		results = append(results, types.MarkerResult{
			Index:   i,
			Label:   marker.Label(),
			Pattern: marker.Pattern,
			Weight:  marker.WeightOr(defaultWeight),
			Matched: Compile(marker.Pattern).Match(text),
		})
	}
	return results
}
