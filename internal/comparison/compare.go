// Package comparison ranks a text across many personas and measures how similar personas are to each other.
package comparison

import (
	"math"
	"sort"

	"github.com/jonathan/persona-validator/internal/fidelity"
	"github.com/jonathan/persona-validator/internal/framework"
	"github.com/jonathan/persona-validator/internal/types"
	"github.com/jonathan/persona-validator/internal/voice"
)

// Engine runs the analyzer pipeline for each persona.
type Engine struct {
	voice *voice.Analyzer
}

// NewEngine creates an Engine. A nil voice analyzer uses the default registry.
func NewEngine(voiceAnalyzer *voice.Analyzer) *Engine {
	if voiceAnalyzer == nil {
		voiceAnalyzer = voice.NewAnalyzer(nil)
	}
	return &Engine{voice: voiceAnalyzer}
}

// CompareAcrossPersonas uses a default Engine.
func CompareAcrossPersonas(text string, personas []types.NamedPersona, weights *types.ScoreWeights) types.CrossPersonaComparison {
	return NewEngine(nil).CompareAcrossPersonas(text, personas, weights)
}

// CompareAcrossPersonas scores text against every persona, sequentially, and ranks the
// results by quality score. Ties keep the order of personas. nil weights selects the
// 0.5/0.3/0.2 default.
func (e *Engine) CompareAcrossPersonas(text string, personas []types.NamedPersona, weights *types.ScoreWeights) types.CrossPersonaComparison {
	w := types.DefaultScoreWeights()
	if weights != nil {
		w = *weights
	}

	results := make([]types.PersonaComparisonResult, 0, len(personas))
	for _, np := range personas {
		fid := fidelity.Score(text, np.Persona, nil)
		va := e.voice.Analyze(text, np.Persona)
		fc := framework.Analyze(text, np.Persona)

		results = append(results, types.PersonaComparisonResult{
			PersonaID:         np.ID,
			PersonaName:       np.Persona.DisplayName(np.ID),
			FidelityScore:     fid,
			VoiceAnalysis:     va,
			FrameworkCoverage: fc,
			QualityScore:      QualityScore(fid.Score, va.Score, fc.Score, w),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].QualityScore > results[j].QualityScore
	})

	comparison := types.CrossPersonaComparison{Results: results}
	if len(results) > 0 {
		comparison.BestMatch = results[0].PersonaID
	}
	return comparison
}

// QualityScore combines the three component scores with w, rounded to an integer.
func QualityScore(fidelityScore, voiceScore, frameworkScore int, w types.ScoreWeights) int {
	return int(math.Round(
		float64(fidelityScore)*w.Fidelity +
			float64(voiceScore)*w.Voice +
			float64(frameworkScore)*w.Framework,
	))
}
