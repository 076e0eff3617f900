// Package fidelity scores text against a persona's must-include, should-include and must-avoid markers.
package fidelity

import (
	"fmt"

	"github.com/jonathan/persona-validator/internal/types"
)

// GetSuggestions returns one "Include:" line per unmatched must-include marker followed
// by one "Remove:" line per triggered must-avoid marker.
func GetSuggestions(text string, persona *types.PersonaDefinition) []string {
	return SuggestionsFor(Score(text, persona, nil))
}

// SuggestionsFor derives suggestions from an existing score.
func SuggestionsFor(score types.FidelityScore) []string {
	suggestions := make([]string, 0)
	for _, r := range score.Breakdown.MustInclude.Results {
		if !r.Matched {
			suggestions = append(suggestions, fmt.Sprintf("Include: %s", r.Label))
		}
	}
	for _, r := range score.Breakdown.MustAvoid.Results {
		if r.Matched {
			suggestions = append(suggestions, fmt.Sprintf("Remove: %s", r.Label))
		}
	}
	return suggestions
}

// ValidateAgainstSamples scores text once and compares it with each sample's good and
// bad responses. A sample without a bad response counts as closer to good. With no
// samples the pass rate is 1.
func ValidateAgainstSamples(text string, persona *types.PersonaDefinition) types.SampleValidation {
	textScore := Score(text, persona, nil).Score

	validation := types.SampleValidation{
		TextScore: textScore,
		Results:   []types.SampleComparison{},
		PassRate:  1,
	}
	if len(persona.SampleResponses) == 0 {
		return validation
	}

	closer := 0
	for _, sample := range persona.SampleResponses {
		goodScore := Score(sample.GoodResponse, persona, nil).Score
		cmp := types.SampleComparison{
			Question:     sample.Question,
			GoodScore:    goodScore,
			TextScore:    textScore,
			CloserToGood: true,
		}
		if sample.BadResponse != "" {
			badScore := Score(sample.BadResponse, persona, nil).Score
			cmp.BadScore = &badScore
			midpoint := float64(goodScore+badScore) / 2
			cmp.CloserToGood = float64(textScore) >= midpoint
		}
		if cmp.CloserToGood {
			closer++
		}
		validation.Results = append(validation.Results, cmp)
	}

	validation.PassRate = float64(closer) / float64(len(persona.SampleResponses))
	return validation
}
