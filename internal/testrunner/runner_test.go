package testrunner

import (
	"errors"
	"testing"
	"time"

	"github.com/jonathan/persona-validator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPersona() *types.PersonaDefinition {
	return &types.PersonaDefinition{
		Identity: types.Identity{Name: "Clayton Christensen"},
		Validation: types.Validation{
			MustInclude: []types.ValidationMarker{
				{Pattern: "disruption"},
				{Pattern: "jobs to be done"},
			},
		},
		SampleResponses: []types.SampleResponse{
			{
				Question:     "Why do incumbents fail?",
				GoodResponse: "Disruption happens when incumbents ignore the jobs to be done.",
				BadResponse:  "Because they are lazy.",
			},
		},
	}
}

func fixedRunner(e Evaluator) *Runner {
	r := NewRunner(e)
	r.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return r
}

type evaluatorFunc func(tc types.TestCase, persona *types.PersonaDefinition) (int, error)

func (f evaluatorFunc) Evaluate(tc types.TestCase, persona *types.PersonaDefinition) (int, error) {
	return f(tc, persona)
}

func TestGenerateTestCases(t *testing.T) {
	cases := GenerateTestCases(testPersona(), types.DefaultValidationConfig())

	require.Len(t, cases, 8)
	ids := make([]string, len(cases))
	for i, tc := range cases {
		ids[i] = tc.ID
	}
	assert.Equal(t, []string{
		"fidelity-1", "negative-1", "voice-1", "framework-1",
		"edge-empty", "edge-trivial", "edge-jargon", "edge-off-topic",
	}, ids)

	assert.True(t, cases[0].Expected.ShouldPass)
	assert.Equal(t, 70, *cases[0].Expected.MinScore)
	assert.False(t, cases[1].Expected.ShouldPass)
	assert.Equal(t, 69, *cases[1].Expected.MaxScore)
	assert.Equal(t, "Because they are lazy.", cases[1].Input)
	assert.Equal(t, 60, *cases[2].Expected.MinScore)
	assert.Equal(t, 50, *cases[3].Expected.MinScore)
}

func TestGenerateTestCases_NoBadResponse(t *testing.T) {
	persona := testPersona()
	persona.SampleResponses[0].BadResponse = ""

	cases := GenerateTestCases(persona, types.DefaultValidationConfig())

	assert.Len(t, cases, 7)
	for _, tc := range cases {
		assert.NotEqual(t, types.CategoryNegative, tc.Category)
	}
}

func TestEdgeCases(t *testing.T) {
	cases := EdgeCases()

	require.Len(t, cases, 4)
	assert.Equal(t, "", cases[0].Input)
	assert.Equal(t, 30, *cases[0].Expected.MaxScore)
	assert.Len(t, cases[1].Input, 4)
	assert.Equal(t, 40, *cases[1].Expected.MaxScore)
	assert.Equal(t, 50, *cases[2].Expected.MaxScore)
	assert.Equal(t, 40, *cases[3].Expected.MaxScore)
	for _, tc := range cases {
		assert.Equal(t, types.CategoryEdgeCase, tc.Category)
		assert.False(t, tc.Expected.ShouldPass)
	}
}

func TestRunTestSuite_AllPass(t *testing.T) {
	result := fixedRunner(nil).RunTestSuite(testPersona(), nil)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, "Clayton Christensen", result.PersonaName)
	assert.Equal(t, 8, result.Total)
	assert.Equal(t, 8, result.Passed)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 1.0, result.PassRate)

	// fidelity on the good response, negative on the bad one
	assert.Equal(t, 100, result.Results[0].ActualScore)
	assert.Equal(t, 30, result.Results[1].ActualScore)

	pass, reasons := PassesCI(result, DefaultMinPassRate)
	assert.True(t, pass)
	assert.Empty(t, reasons)
}

func TestRunTestSuite_PanicIsIsolated(t *testing.T) {
	inner := &AnalyzerEvaluator{}
	evaluator := evaluatorFunc(func(tc types.TestCase, persona *types.PersonaDefinition) (int, error) {
		if tc.ID == "voice-1" {
			panic("boom")
		}
		return inner.Evaluate(tc, persona)
	})

	result := fixedRunner(evaluator).RunTestSuite(testPersona(), nil)

	require.Equal(t, 8, result.Total)
	assert.Equal(t, 7, result.Passed)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 0.875, result.PassRate)
	assert.False(t, result.Results[2].Passed)
	assert.Equal(t, "panic: boom", result.Results[2].Error)
	assert.True(t, result.Results[3].Passed)

	pass, _ := PassesCI(result, 0.8)
	assert.True(t, pass)
	pass, reasons := PassesCI(result, 0.9)
	assert.False(t, pass)
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "Pass rate 87.5%")
}

func TestRunTestSuite_EvaluatorError(t *testing.T) {
	evaluator := evaluatorFunc(func(tc types.TestCase, _ *types.PersonaDefinition) (int, error) {
		return 0, errors.New("scorer unavailable")
	})

	result := fixedRunner(evaluator).RunTestSuite(testPersona(), nil)

	assert.Equal(t, 0, result.Passed)
	for _, r := range result.Results {
		assert.Equal(t, "scorer unavailable", r.Error)
	}
}

func TestRunTestSuite_NilPersona(t *testing.T) {
	result := fixedRunner(nil).RunTestSuite(nil, nil)

	require.Equal(t, 4, result.Total)
	assert.Equal(t, 4, result.Failed)
	assert.Equal(t, "evaluation error in edge-empty: persona is nil", result.Results[0].Error)
}

func TestPassesCI_EdgeCaseFailureIsHard(t *testing.T) {
	// No must-include markers: every edge input scores 90.
	persona := &types.PersonaDefinition{Identity: types.Identity{Name: "Blank"}}

	result := fixedRunner(nil).RunTestSuite(persona, nil)

	require.Equal(t, 4, result.Total)
	assert.Equal(t, 90, result.Results[0].ActualScore)
	assert.Equal(t, "score 90 above maximum 30", result.Results[0].Reason)

	pass, reasons := PassesCI(result, DefaultMinPassRate)
	assert.False(t, pass)
	require.Len(t, reasons, 5)
	assert.Equal(t, "Pass rate 0.0% is below minimum 80.0%", reasons[0])
	assert.Equal(t, "Edge case edge-empty failed: score 90 above maximum 30", reasons[1])
}

func TestPassesCI_EdgeFailureDespiteHighPassRate(t *testing.T) {
	result := &types.TestSuiteResult{
		Total:    10,
		Passed:   9,
		Failed:   1,
		PassRate: 0.9,
		Results: []types.TestResult{
			{TestCase: types.TestCase{ID: "edge-jargon", Category: types.CategoryEdgeCase}, Reason: "score 70 above maximum 50"},
		},
	}

	pass, reasons := PassesCI(result, 0.8)

	assert.False(t, pass)
	assert.Equal(t, []string{"Edge case edge-jargon failed: score 70 above maximum 50"}, reasons)
}

func TestCheckExpectation(t *testing.T) {
	min70 := intPtr(70)
	max40 := intPtr(40)

	tests := []struct {
		name       string
		input      string
		expected   types.TestExpectation
		score      int
		wantPass   bool
		wantReason string
	}{
		{name: "min met", expected: types.TestExpectation{ShouldPass: true, MinScore: min70}, score: 70, wantPass: true},
		{name: "min missed", expected: types.TestExpectation{ShouldPass: true, MinScore: min70}, score: 69, wantReason: "score 69 below minimum 70"},
		{name: "no min", expected: types.TestExpectation{ShouldPass: true}, score: 0, wantPass: true},
		{name: "required present", input: "Markets get Disrupted", expected: types.TestExpectation{ShouldPass: true, RequiredPatterns: []string{"disrupt"}}, score: 100, wantPass: true},
		{name: "required missing", input: "Markets", expected: types.TestExpectation{ShouldPass: true, RequiredPatterns: []string{"disrupt"}}, score: 100, wantReason: `missing required pattern "disrupt"`},
		{name: "max met", expected: types.TestExpectation{MaxScore: max40}, score: 40, wantPass: true},
		{name: "max exceeded", expected: types.TestExpectation{MaxScore: max40}, score: 41, wantReason: "score 41 above maximum 40"},
		{name: "forbidden present", input: "pure synergy", expected: types.TestExpectation{ForbiddenPatterns: []string{"syn.rgy"}}, score: 0, wantReason: `found forbidden pattern "syn.rgy"`},
		{name: "forbidden absent", input: "plain words", expected: types.TestExpectation{ForbiddenPatterns: []string{"synergy"}}, score: 0, wantPass: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pass, reason := CheckExpectation(types.TestCase{Input: tt.input, Expected: tt.expected}, tt.score)
			assert.Equal(t, tt.wantPass, pass)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}
