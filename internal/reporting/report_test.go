package reporting

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jonathan/persona-validator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func testPersona() *types.PersonaDefinition {
	return &types.PersonaDefinition{
		Identity: types.Identity{Name: "Clayton"},
		Validation: types.Validation{
			MustInclude: []types.ValidationMarker{
				{Pattern: "disruption"},
				{Pattern: "jobs to be done"},
			},
		},
	}
}

func fixedGenerator() *Generator {
	g := NewGenerator(nil)
	g.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return g
}

func TestGenerateQualityReport_Scores(t *testing.T) {
	report := fixedGenerator().GenerateQualityReport("Disruption matters.", testPersona(), nil, nil)

	require.NotNil(t, report)
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "Clayton", report.PersonaName)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), report.GeneratedAt)
	assert.Equal(t, 60, report.Fidelity.Score)
	assert.Equal(t, 100, report.Voice.Score)
	assert.Equal(t, 100, report.Framework.Score)
	// 60*0.5 + 100*0.3 + 100*0.2
	assert.Equal(t, 80, report.Overall)
	assert.Equal(t, types.DefaultScoreWeights(), report.Weights)
}

func TestGenerateQualityReport_Recommendations(t *testing.T) {
	report := fixedGenerator().GenerateQualityReport("Disruption matters.", testPersona(), nil, nil)

	require.Len(t, report.Recommendations, 2)
	assert.Equal(t, types.Recommendation{Priority: types.PriorityHigh, Category: "fidelity", Message: "Include: jobs to be done"}, report.Recommendations[0])
	assert.Equal(t, types.PriorityLow, report.Recommendations[1].Priority)
	assert.Equal(t, "persona", report.Recommendations[1].Category)
	assert.Equal(t, 1, report.HighPriorityCount())
}

func TestGenerateQualityReport_ExcellentHasNoFidelityNudge(t *testing.T) {
	report := fixedGenerator().GenerateQualityReport("Disruption and jobs to be done.", testPersona(), nil, nil)

	assert.Equal(t, 100, report.Fidelity.Score)
	for _, rec := range report.Recommendations {
		assert.NotEqual(t, "fidelity", rec.Category)
	}
}

func TestGenerateQualityReport_ConstraintViolationsAreHighPriority(t *testing.T) {
	persona := testPersona()
	persona.Voice.Constraints = []string{"Avoid synergy"}

	report := fixedGenerator().GenerateQualityReport("Disruption and jobs to be done create synergy.", persona, nil, nil)

	require.Len(t, report.Voice.ConstraintViolations, 1)
	assert.Equal(t, 90, report.Voice.Score)
	require.NotEmpty(t, report.Recommendations)
	assert.Equal(t, types.PriorityHigh, report.Recommendations[0].Priority)
	assert.Equal(t, "voice", report.Recommendations[0].Category)
	assert.Equal(t, report.Voice.ConstraintViolations[0], report.Recommendations[0].Message)
}

func TestGenerateQualityReport_DepartmentContext(t *testing.T) {
	dept := &types.DepartmentContext{
		Name:                "marketing",
		AdditionalMustAvoid: []types.ValidationMarker{{Pattern: "synergy"}},
		FidelityThreshold:   intPtr(80),
	}

	report := fixedGenerator().GenerateQualityReport("Disruption and jobs to be done create synergy.", testPersona(), nil, dept)

	// 60 + 30 - 15
	assert.Equal(t, 75, report.Fidelity.Score)
	assert.True(t, report.Fidelity.Passed)

	var messages []string
	for _, rec := range report.Recommendations {
		messages = append(messages, rec.Message)
	}
	assert.Contains(t, messages, "Remove: synergy")
	assert.Contains(t, messages, "Strengthen persona markers to reach an excellent fidelity score")
	assert.Equal(t, types.PriorityHigh, report.Recommendations[0].Priority)
}

func TestGenerateQualityReport_SortedByPriority(t *testing.T) {
	persona := testPersona()
	persona.Voice.Tone = []string{"warm"}
	persona.Voice.Constraints = []string{"Avoid synergy"}

	report := fixedGenerator().GenerateQualityReport("Synergy.", persona, nil, nil)

	for i := 1; i < len(report.Recommendations); i++ {
		assert.LessOrEqual(t, report.Recommendations[i-1].Priority.Rank(), report.Recommendations[i].Priority.Rank())
	}
}

func TestPassesQualityThresholds(t *testing.T) {
	tests := []struct {
		name        string
		fidelity    int
		voice       int
		framework   int
		violations  []string
		strict      bool
		wantPass    bool
		wantReasons int
	}{
		{name: "all above", fidelity: 80, voice: 70, framework: 60, wantPass: true},
		{name: "boundary values pass", fidelity: 70, voice: 60, framework: 50, wantPass: true},
		{name: "fidelity below", fidelity: 69, voice: 70, framework: 60, wantReasons: 1},
		{name: "all below", fidelity: 10, voice: 10, framework: 10, wantReasons: 3},
		{name: "violations ignored when lenient", fidelity: 80, voice: 70, framework: 60, violations: []string{"x"}, wantPass: true},
		{name: "violations fail when strict", fidelity: 80, voice: 70, framework: 60, violations: []string{"x"}, strict: true, wantReasons: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := &types.QualityReport{
				Fidelity:  types.FidelityScore{Score: tt.fidelity},
				Voice:     types.VoiceAnalysisResult{Score: tt.voice, ConstraintViolations: tt.violations},
				Framework: types.FrameworkCoverageResult{Score: tt.framework},
			}
			cfg := types.DefaultValidationConfig()
			cfg.StrictConstraints = tt.strict

			pass, reasons := PassesQualityThresholds(report, &cfg)

			assert.Equal(t, tt.wantPass, pass)
			assert.Len(t, reasons, tt.wantReasons)
		})
	}
}

func TestPassesQualityThresholds_NilConfigUsesDefaults(t *testing.T) {
	report := &types.QualityReport{
		Fidelity:  types.FidelityScore{Score: 70},
		Voice:     types.VoiceAnalysisResult{Score: 59},
		Framework: types.FrameworkCoverageResult{Score: 50},
	}

	pass, reasons := PassesQualityThresholds(report, nil)

	assert.False(t, pass)
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "Voice score 59")
}

func TestGenerateJSONReport(t *testing.T) {
	report := fixedGenerator().GenerateQualityReport("Disruption matters.", testPersona(), nil, nil)

	out, err := GenerateJSONReport(report)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "Clayton", decoded["persona_name"])
	assert.EqualValues(t, 80, decoded["overall"])
	assert.Contains(t, out, "\n  \"id\"")
}
