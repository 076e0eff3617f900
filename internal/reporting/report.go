// Package reporting merges fidelity, voice and framework analyses into quality reports.
package reporting

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/persona-validator/internal/comparison"
	"github.com/jonathan/persona-validator/internal/fidelity"
	"github.com/jonathan/persona-validator/internal/framework"
	"github.com/jonathan/persona-validator/internal/types"
	"github.com/jonathan/persona-validator/internal/voice"
)

// Recommendation limits and nudges.
const (
	maxFidelityRecommendations  = 3
	maxVoiceRecommendations     = 2
	maxFrameworkRecommendations = 2
	minSampleResponses          = 3
	excellentFidelity           = 90
)

// Generator builds quality reports.
type Generator struct {
	voice *voice.Analyzer
	now   func() time.Time
}

// NewGenerator creates a Generator. A nil voice analyzer uses the default registry.
func NewGenerator(voiceAnalyzer *voice.Analyzer) *Generator {
	if voiceAnalyzer == nil {
		voiceAnalyzer = voice.NewAnalyzer(nil)
	}
	return &Generator{voice: voiceAnalyzer, now: time.Now}
}

// GenerateQualityReport uses a default Generator.
func GenerateQualityReport(text string, persona *types.PersonaDefinition, cfg *types.ValidationConfig, dept *types.DepartmentContext) *types.QualityReport {
	return NewGenerator(nil).GenerateQualityReport(text, persona, cfg, dept)
}

// GenerateQualityReport scores text against persona and synthesizes prioritized
// recommendations. cfg and dept may be nil.
func (g *Generator) GenerateQualityReport(text string, persona *types.PersonaDefinition, cfg *types.ValidationConfig, dept *types.DepartmentContext) *types.QualityReport {
	config := effectiveConfig(cfg, dept)

	opts := &fidelity.Options{}
	if dept != nil {
		opts.AdditionalMustAvoid = dept.AdditionalMustAvoid
		opts.PassingScore = dept.PassingScore
	}

	fid := fidelity.Score(text, persona, opts)
	va := g.voice.Analyze(text, persona)
	fc := framework.Analyze(text, persona)

	report := &types.QualityReport{
		ID:          uuid.New().String(),
		PersonaName: persona.DisplayName(""),
		GeneratedAt: g.now().UTC(),
		Fidelity:    fid,
		Voice:       va,
		Framework:   fc,
		Overall:     comparison.QualityScore(fid.Score, va.Score, fc.Score, config.Weights),
		Weights:     config.Weights,
	}
	report.Recommendations = buildRecommendations(persona, report, config)
	return report
}

func effectiveConfig(cfg *types.ValidationConfig, dept *types.DepartmentContext) types.ValidationConfig {
	config := types.DefaultValidationConfig()
	if cfg != nil {
		config = *cfg
	}
	return dept.Apply(config)
}

func buildRecommendations(persona *types.PersonaDefinition, r *types.QualityReport, cfg types.ValidationConfig) []types.Recommendation {
	recs := make([]types.Recommendation, 0)

	if r.Fidelity.Score < cfg.FidelityThreshold {
		for _, s := range head(fidelity.SuggestionsFor(r.Fidelity), maxFidelityRecommendations) {
			recs = append(recs, types.Recommendation{Priority: types.PriorityHigh, Category: "fidelity", Message: s})
		}
	}

	for _, v := range r.Voice.ConstraintViolations {
		recs = append(recs, types.Recommendation{Priority: types.PriorityHigh, Category: "voice", Message: v})
	}

	if r.Voice.Score < cfg.VoiceThreshold {
		for _, s := range head(voice.Suggestions(r.Voice), maxVoiceRecommendations) {
			recs = append(recs, types.Recommendation{Priority: types.PriorityMedium, Category: "voice", Message: s})
		}
	}

	if r.Framework.Score < cfg.FrameworkThreshold {
		for _, s := range head(framework.Suggestions(r.Framework), maxFrameworkRecommendations) {
			recs = append(recs, types.Recommendation{Priority: types.PriorityMedium, Category: "framework", Message: s})
		}
	}

	if n := len(persona.SampleResponses); n < minSampleResponses {
		recs = append(recs, types.Recommendation{
			Priority: types.PriorityLow,
			Category: "persona",
			Message:  fmt.Sprintf("Add more sample responses to the persona (%d of %d recommended)", n, minSampleResponses),
		})
	}

	if r.Fidelity.Passed && r.Fidelity.Score < excellentFidelity {
		missing := r.Fidelity.Breakdown.MustInclude.MissingPatterns
		msg := "Strengthen persona markers to reach an excellent fidelity score"
		if len(missing) > 0 {
			msg = fmt.Sprintf("Close remaining must-include gaps: %s", strings.Join(missing, ", "))
		}
		recs = append(recs, types.Recommendation{Priority: types.PriorityLow, Category: "fidelity", Message: msg})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.Rank() < recs[j].Priority.Rank()
	})
	return recs
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// PassesQualityThresholds re-checks each component score against cfg and, with
// StrictConstraints, fails on any voice constraint violation. It returns every failure reason.
func PassesQualityThresholds(report *types.QualityReport, cfg *types.ValidationConfig) (bool, []string) {
	config := types.DefaultValidationConfig()
	if cfg != nil {
		config = *cfg
	}

	reasons := make([]string, 0)
	if report.Fidelity.Score < config.FidelityThreshold {
		reasons = append(reasons, fmt.Sprintf("Fidelity score %d is below threshold %d", report.Fidelity.Score, config.FidelityThreshold))
	}
	if report.Voice.Score < config.VoiceThreshold {
		reasons = append(reasons, fmt.Sprintf("Voice score %d is below threshold %d", report.Voice.Score, config.VoiceThreshold))
	}
	if report.Framework.Score < config.FrameworkThreshold {
		reasons = append(reasons, fmt.Sprintf("Framework score %d is below threshold %d", report.Framework.Score, config.FrameworkThreshold))
	}
	if config.StrictConstraints && len(report.Voice.ConstraintViolations) > 0 {
		reasons = append(reasons, fmt.Sprintf("%d voice constraint violation(s) in strict mode", len(report.Voice.ConstraintViolations)))
	}
	return len(reasons) == 0, reasons
}
