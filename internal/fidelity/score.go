// Package fidelity scores text against a persona's must-include, should-include and must-avoid markers.
package fidelity

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/persona-validator/internal/matching"
	"github.com/jonathan/persona-validator/internal/types"
)

// Component ceilings and the must-include ratio gate.
const (
	mustIncludePoints   = 60.0
	shouldIncludePoints = 30.0
	requiredRatioGate   = 0.8
	maxMissingListed    = 3
)

// Options adjusts a single scoring call.
type Options struct {
	// AdditionalMustAvoid is appended to the persona's must-avoid list (e.g. department-wide bans).
	AdditionalMustAvoid []types.ValidationMarker
	// PassingScore overrides the default passing score of 70 when non-nil.
	PassingScore *int
}

// Score computes the fidelity of text to persona. opts may be nil.
func Score(text string, persona *types.PersonaDefinition, opts *Options) types.FidelityScore {
	passingScore := types.DefaultPassingScore
	var extraAvoid []types.ValidationMarker
	if opts != nil {
		extraAvoid = opts.AdditionalMustAvoid
		if opts.PassingScore != nil {
			passingScore = *opts.PassingScore
		}
	}

	avoidMarkers := make([]types.ValidationMarker, 0, len(persona.Validation.MustAvoid)+len(extraAvoid))
	avoidMarkers = append(avoidMarkers, persona.Validation.MustAvoid...)
	avoidMarkers = append(avoidMarkers, extraAvoid...)

	mustInclude := weightedBreakdown(
		matching.Evaluate(text, persona.Validation.MustInclude, types.DefaultMustIncludeWeight),
		mustIncludePoints,
	)
	shouldInclude := weightedBreakdown(
		matching.Evaluate(text, persona.Validation.ShouldInclude, types.DefaultShouldIncludeWeight),
		shouldIncludePoints,
	)
	mustAvoid := penaltyBreakdown(matching.Evaluate(text, avoidMarkers, types.DefaultMustAvoidWeight))

	raw := mustInclude.Points + shouldInclude.Points + mustAvoid.Points
	score := int(math.Round(clamp(raw, 0, 100)))

	passed := score >= passingScore && meetsRequiredRatio(mustInclude)

	result := types.FidelityScore{
		Score: score,
		Breakdown: types.FidelityBreakdown{
			MustInclude:   mustInclude,
			ShouldInclude: shouldInclude,
			MustAvoid:     mustAvoid,
		},
		Passed: passed,
	}
	result.Assessment = buildAssessment(result)
	return result
}

// RequiredRatio returns matched/total for the must-include list and false when the
// list is empty, in which case the ratio is undefined.
func RequiredRatio(b types.MarkerBreakdown) (float64, bool) {
	if b.Total == 0 {
		return 0, false
	}
	return float64(b.Matched) / float64(b.Total), true
}

// meetsRequiredRatio applies the 80% must-include gate. An undefined ratio (no
// must-include markers) fails the gate, so such a persona can never pass.
func meetsRequiredRatio(b types.MarkerBreakdown) bool {
	ratio, ok := RequiredRatio(b)
	if !ok {
		return false
	}
	return ratio >= requiredRatioGate
}

// weightedBreakdown awards points*(matchedWeight/totalWeight), or the full points when results is empty.
func weightedBreakdown(results []types.MarkerResult, points float64) types.MarkerBreakdown {
	b := types.MarkerBreakdown{
		Total:           len(results),
		Results:         results,
		MatchedPatterns: []string{},
		MissingPatterns: []string{},
	}
	for _, r := range results {
		b.TotalWeight += r.Weight
		if r.Matched {
			b.Matched++
			b.MatchedWeight += r.Weight
			b.MatchedPatterns = append(b.MatchedPatterns, r.Label)
		} else {
			b.MissingPatterns = append(b.MissingPatterns, r.Label)
		}
	}

	switch {
	case len(results) == 0:
		b.Points = points
	case b.TotalWeight > 0:
		b.Points = b.MatchedWeight / b.TotalWeight * points
	}
	return b
}

// penaltyBreakdown subtracts the weight of every triggered marker. Points is zero or negative.
func penaltyBreakdown(results []types.MarkerResult) types.MarkerBreakdown {
	b := types.MarkerBreakdown{
		Total:           len(results),
		Results:         results,
		MatchedPatterns: []string{},
		MissingPatterns: []string{},
	}
	for _, r := range results {
		b.TotalWeight += r.Weight
		if r.Matched {
			b.Matched++
			b.MatchedWeight += r.Weight
			b.MatchedPatterns = append(b.MatchedPatterns, r.Label)
		} else {
			b.MissingPatterns = append(b.MissingPatterns, r.Label)
		}
	}
	b.Points = -b.MatchedWeight
	return b
}

func buildAssessment(s types.FidelityScore) string {
	var lines []string

	switch {
	case s.Score >= 90:
		lines = append(lines, fmt.Sprintf("Excellent fidelity (%d/100): the response strongly matches the persona.", s.Score))
	case s.Score >= 80:
		lines = append(lines, fmt.Sprintf("Good fidelity (%d/100): the response matches the persona well.", s.Score))
	case s.Passed:
		lines = append(lines, fmt.Sprintf("Acceptable fidelity (%d/100): the response meets the minimum bar.", s.Score))
	default:
		lines = append(lines, fmt.Sprintf("Low fidelity (%d/100): the response does not match the persona.", s.Score))
	}

	must := s.Breakdown.MustInclude
	lines = append(lines, fmt.Sprintf("Required patterns: %d/%d matched", must.Matched, must.Total))
	if len(must.MissingPatterns) > 0 {
		missing := must.MissingPatterns
		if len(missing) > maxMissingListed {
			missing = missing[:maxMissingListed]
		}
		lines = append(lines, fmt.Sprintf("Missing required: %s", strings.Join(missing, ", ")))
	}

	should := s.Breakdown.ShouldInclude
	if should.Total > 0 {
		lines = append(lines, fmt.Sprintf("Recommended patterns: %d/%d matched", should.Matched, should.Total))
	}

	avoid := s.Breakdown.MustAvoid
	if avoid.Matched > 0 {
		lines = append(lines, fmt.Sprintf("Avoid patterns triggered: %s", strings.Join(avoid.MatchedPatterns, ", ")))
	}

	return strings.Join(lines, "\n")
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
