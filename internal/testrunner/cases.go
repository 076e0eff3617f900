package testrunner

import (
	"fmt"

	"github.com/jonathan/persona-validator/internal/types"
)

// Edge-case inputs checked on every run. Each is expected to score at or below its ceiling.
const (
	edgeEmptyMax     = 30
	edgeTrivialMax   = 40
	edgeJargonMax    = 50
	edgeOffTopicMax  = 40
	edgeTrivialInput = "Yes."
	edgeJargonInput  = "We leverage synergies across our value chain to drive best-in-class outcomes. " +
		"Going forward, our holistic paradigm will move the needle and unlock stakeholder value at scale."
	edgeOffTopicInput = "The weather was sunny this morning, so I had pancakes and orange juice for breakfast on the porch."
)

// GenerateTestCases builds the suite for persona: per sample response a fidelity test
// on the good response, a negative test on the bad response when one exists, and voice
// and framework tests on the good response, followed by the fixed edge cases.
func GenerateTestCases(persona *types.PersonaDefinition, cfg types.ValidationConfig) []types.TestCase {
	cases := make([]types.TestCase, 0, len(persona.SampleResponses)*4+4)

	for i, sample := range persona.SampleResponses {
		n := i + 1
		cases = append(cases, types.TestCase{
			ID:          fmt.Sprintf("fidelity-%d", n),
			Category:    types.CategoryFidelity,
			Description: fmt.Sprintf("Good response to %q scores at least %d", sample.Question, cfg.FidelityThreshold),
			Input:       sample.GoodResponse,
			Expected:    types.TestExpectation{ShouldPass: true, MinScore: intPtr(cfg.FidelityThreshold)},
		})

		if sample.BadResponse != "" {
			cases = append(cases, types.TestCase{
				ID:          fmt.Sprintf("negative-%d", n),
				Category:    types.CategoryNegative,
				Description: fmt.Sprintf("Bad response to %q scores below %d", sample.Question, cfg.FidelityThreshold),
				Input:       sample.BadResponse,
				Expected:    types.TestExpectation{ShouldPass: false, MaxScore: intPtr(cfg.FidelityThreshold - 1)},
			})
		}

		cases = append(cases,
			types.TestCase{
				ID:          fmt.Sprintf("voice-%d", n),
				Category:    types.CategoryVoice,
				Description: fmt.Sprintf("Good response to %q matches the persona voice", sample.Question),
				Input:       sample.GoodResponse,
				Expected:    types.TestExpectation{ShouldPass: true, MinScore: intPtr(cfg.VoiceThreshold)},
			},
			types.TestCase{
				ID:          fmt.Sprintf("framework-%d", n),
				Category:    types.CategoryFramework,
				Description: fmt.Sprintf("Good response to %q applies the persona's frameworks", sample.Question),
				Input:       sample.GoodResponse,
				Expected:    types.TestExpectation{ShouldPass: true, MinScore: intPtr(cfg.FrameworkThreshold)},
			},
		)
	}

	return append(cases, EdgeCases()...)
}

// EdgeCases returns the persona-independent guardrail cases.
func EdgeCases() []types.TestCase {
	edge := func(id, description, input string, maxScore int) types.TestCase {
		return types.TestCase{
			ID:          id,
			Category:    types.CategoryEdgeCase,
			Description: description,
			Input:       input,
			Expected:    types.TestExpectation{ShouldPass: false, MaxScore: intPtr(maxScore)},
		}
	}
	return []types.TestCase{
		edge("edge-empty", "Empty input scores low", "", edgeEmptyMax),
		edge("edge-trivial", "Trivial response scores low", edgeTrivialInput, edgeTrivialMax),
		edge("edge-jargon", "Generic corporate jargon scores low", edgeJargonInput, edgeJargonMax),
		edge("edge-off-topic", "Unrelated text scores low", edgeOffTopicInput, edgeOffTopicMax),
	}
}

func intPtr(v int) *int {
	return &v
}
