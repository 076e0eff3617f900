package voice

import (
	"strings"
	"testing"

	"github.com/jonathan/persona-validator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func voicePersona(v types.Voice) *types.PersonaDefinition {
	return &types.PersonaDefinition{Identity: types.Identity{Name: "Voice Test"}, Voice: v}
}

func TestAnalyze_ToneDetection(t *testing.T) {
	persona := voicePersona(types.Voice{Tone: []string{"analytical", "curious", "zen"}})

	result := Analyze("The data shows a 40% lift. I wonder what drives it. Very zen.", persona)

	require.Len(t, result.Tones, 3)
	assert.True(t, result.Tones[0].Detected)
	assert.Equal(t, "data", result.Tones[0].Evidence)
	assert.True(t, result.Tones[1].Detected)
	assert.Equal(t, "I wonder", result.Tones[1].Evidence)
	// unknown tone falls back to a word-boundary match of the tone itself
	assert.True(t, result.Tones[2].Detected)
	assert.Equal(t, "zen", result.Tones[2].Evidence)
	assert.Equal(t, 3, result.TonesDetected)
}

func TestAnalyze_ToneFallbackRespectsWordBoundary(t *testing.T) {
	persona := voicePersona(types.Voice{Tone: []string{"zen"}})
	result := Analyze("the citizens", persona)
	assert.False(t, result.Tones[0].Detected)
}

func TestMatchPhrase(t *testing.T) {
	tests := []struct {
		name   string
		phrase string
		text   string
		want   types.PhraseMatchKind
	}{
		{"exact", "Start with the customer", "always start with the customer and work back", types.PhraseExact},
		{"exact is case-insensitive", "JOBS TO BE DONE", "what jobs to be done?", types.PhraseExact},
		{"variant half of first three long words", "customers hire products to get jobs done", "our customers hire freelancers", types.PhraseVariant},
		{"absent", "customers hire products", "nothing relevant", types.PhraseAbsent},
		{"only short words", "to be or not", "unrelated", types.PhraseAbsent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchPhrase(tt.phrase, strings.ToLower(tt.text))
			assert.Equal(t, tt.want, got.Match)
		})
	}
}

func TestAnalyze_StyleDetectors(t *testing.T) {
	persona := voicePersona(types.Voice{Style: []string{
		"Asks questions first",
		"Uses examples",
		"Structured response",
		"Socratic method",
	}})

	text := "What problem are you solving? For example, consider churn.\n1. Measure it\n2. Fix it\nWhy now? Who cares?"
	result := Analyze(text, persona)

	require.Len(t, result.Styles, 4)
	assert.True(t, result.Styles[0].Followed)
	assert.Equal(t, "questions_first", result.Styles[0].Detector)
	assert.True(t, result.Styles[1].Followed)
	assert.Equal(t, "examples", result.Styles[1].Detector)
	assert.True(t, result.Styles[2].Followed)
	assert.Equal(t, "structured", result.Styles[2].Detector)
	assert.True(t, result.Styles[3].Followed)
	assert.Equal(t, 1.0, result.Styles[3].Confidence)
	assert.Equal(t, 4, result.StylesFollowed)
}

func TestAnalyze_StyleKeywordFallback(t *testing.T) {
	persona := voicePersona(types.Voice{Style: []string{"Emphasizes customer outcomes over features"}})

	followed := Analyze("Focus on customer outcomes.", persona)
	require.Len(t, followed.Styles, 1)
	assert.Equal(t, "keyword_overlap", followed.Styles[0].Detector)
	assert.True(t, followed.Styles[0].Followed)

	missed := Analyze("Nothing to see.", persona)
	assert.False(t, missed.Styles[0].Followed)
}

func TestAnalyze_ConstraintViolations(t *testing.T) {
	persona := voicePersona(types.Voice{Constraints: []string{
		"Never use buzzwords",
		"Avoid jargon",
		"Avoid jargon",
		"Never be overconfident",
		"Don't be condescending",
	}})

	result := Analyze("Obviously this will definitely create synergy and buzzwords.", persona)

	assert.Contains(t, result.ConstraintViolations, `Constraint "Never use buzzwords" violated: found "buzzwords"`)
	assert.Contains(t, result.ConstraintViolations, `Constraint "Never use buzzwords" violated: jargon detected ("synergy")`)
	assert.Contains(t, result.ConstraintViolations, `Constraint "Avoid jargon" violated: jargon detected ("synergy")`)
	assert.Contains(t, result.ConstraintViolations, `Constraint "Never be overconfident" violated: overconfidence detected ("definitely")`)
	assert.Contains(t, result.ConstraintViolations, `Constraint "Don't be condescending" violated: condescension detected ("obviously")`)
	// the repeated "Avoid jargon" constraint is reported once
	assert.Len(t, result.ConstraintViolations, 5)
}

func TestAnalyze_Scoring(t *testing.T) {
	persona := voicePersona(types.Voice{
		Tone:    []string{"analytical", "warm"},
		Phrases: []string{"measure twice", "customers hire products to get jobs done"},
		Style:   []string{"Uses examples"},
	})

	// tone 1/2*40=20, phrases (1 exact + 0.5 variant)/2*30=22.5, style 0.75*30=22.5
	result := Analyze("Measure twice: the data on customers who hire us shows it, for example.", persona)

	assert.Equal(t, 1, result.TonesDetected)
	assert.Equal(t, 1, result.ExactPhrases)
	assert.Equal(t, 1, result.VariantPhrases)
	assert.Equal(t, 65, result.Score)
}

func TestAnalyze_PenaltyFloorsAtZero(t *testing.T) {
	persona := voicePersona(types.Voice{
		Tone:        []string{"warm"},
		Phrases:     []string{"jobs to be done"},
		Style:       []string{"Uses examples"},
		Constraints: []string{"Avoid jargon", "Never be overconfident"},
	})

	result := Analyze("Synergy will definitely happen.", persona)

	assert.Len(t, result.ConstraintViolations, 2)
	assert.Equal(t, 0, result.Score)
}

func TestAnalyze_EmptyVoiceScoresFull(t *testing.T) {
	result := Analyze("anything", voicePersona(types.Voice{}))
	assert.Equal(t, 100, result.Score)
	assert.Empty(t, result.ConstraintViolations)
}

func TestAnalyze_CustomRegistry(t *testing.T) {
	reg, err := NewStaticRegistry(
		map[string][]string{"nautical": {`\b(ahoy|matey)\b`}},
		[]NamedStyleDetector{{Name: "shouty", Keywords: []string{"shout"}, Detect: func(text string) (bool, float64) {
			return text != "" && text == strings.ToUpper(text), 1
		}}},
		nil,
	)
	require.NoError(t, err)

	persona := voicePersona(types.Voice{Tone: []string{"Nautical"}, Style: []string{"Shouts a lot"}})
	result := NewAnalyzer(reg).Analyze("AHOY MATEY", persona)

	assert.True(t, result.Tones[0].Detected)
	assert.Equal(t, "AHOY", result.Tones[0].Evidence)
	assert.True(t, result.Styles[0].Followed)
	assert.Equal(t, "shouty", result.Styles[0].Detector)
	assert.Equal(t, 100, result.Score)
}

func TestAnalyze_DetectorConfidenceIsBounded(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		wantScore  int
		wantConf   float64
	}{
		{name: "above one", confidence: 2, wantScore: 100, wantConf: 1},
		{name: "below zero", confidence: -3, wantScore: 70, wantConf: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confidence := tt.confidence
			reg, err := NewStaticRegistry(nil, []NamedStyleDetector{{
				Name:     "bold",
				Keywords: []string{"bold"},
				Detect:   func(string) (bool, float64) { return true, confidence },
			}}, nil)
			require.NoError(t, err)

			result := NewAnalyzer(reg).Analyze("anything", voicePersona(types.Voice{Style: []string{"bold"}}))

			assert.Equal(t, tt.wantScore, result.Score)
			assert.LessOrEqual(t, result.Score, 100)
			assert.Equal(t, tt.wantConf, result.Styles[0].Confidence)
		})
	}
}

func TestNewStaticRegistry_InvalidPattern(t *testing.T) {
	_, err := NewStaticRegistry(map[string][]string{"bad": {"("}}, nil, nil)
	assert.Error(t, err)
}

func TestDefaultRegistry_CoversCoreTones(t *testing.T) {
	reg := DefaultRegistry()
	for _, tone := range []string{"warm", "analytical", "curious", "direct", "empathetic"} {
		detectors, ok := reg.ToneDetectors(tone)
		assert.True(t, ok, tone)
		assert.NotEmpty(t, detectors, tone)
	}
	_, ok := reg.ToneDetectors("nonexistent")
	assert.False(t, ok)
}

func TestSuggestions(t *testing.T) {
	persona := voicePersona(types.Voice{
		Tone:    []string{"warm"},
		Phrases: []string{"jobs to be done"},
		Style:   []string{"Uses examples"},
	})

	suggestions := Suggestions(Analyze("plain text", persona))

	assert.Equal(t, []string{
		"Adopt a more warm tone",
		`Use characteristic phrasing such as "jobs to be done"`,
		"Follow the persona's style: Uses examples",
	}, suggestions)
}
