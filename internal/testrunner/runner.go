package testrunner

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/persona-validator/internal/fidelity"
	"github.com/jonathan/persona-validator/internal/framework"
	"github.com/jonathan/persona-validator/internal/matching"
	"github.com/jonathan/persona-validator/internal/types"
	"github.com/jonathan/persona-validator/internal/voice"
)

// DefaultMinPassRate is the pass-rate floor PassesCI applies when the caller has none.
const DefaultMinPassRate = 0.8

// Evaluator scores a single test case input.
type Evaluator interface {
	Evaluate(tc types.TestCase, persona *types.PersonaDefinition) (int, error)
}

// AnalyzerEvaluator dispatches by category: voice and framework cases use their
// analyzers, every other category uses the fidelity scorer.
type AnalyzerEvaluator struct {
	Voice *voice.Analyzer
}

// Evaluate implements Evaluator.
func (e *AnalyzerEvaluator) Evaluate(tc types.TestCase, persona *types.PersonaDefinition) (int, error) {
	if persona == nil {
		return 0, &EvaluationError{TestID: tc.ID, Message: "persona is nil"}
	}
	switch tc.Category {
	case types.CategoryVoice:
		analyzer := e.Voice
		if analyzer == nil {
			analyzer = voice.NewAnalyzer(nil)
		}
		return analyzer.Analyze(tc.Input, persona).Score, nil
	case types.CategoryFramework:
		return framework.Analyze(tc.Input, persona).Score, nil
	default:
		return fidelity.Score(tc.Input, persona, nil).Score, nil
	}
}

// Runner executes test suites sequentially.
type Runner struct {
	evaluator Evaluator
	now       func() time.Time
}

// NewRunner creates a Runner. A nil evaluator uses an AnalyzerEvaluator with the default registry.
func NewRunner(evaluator Evaluator) *Runner {
	if evaluator == nil {
		evaluator = &AnalyzerEvaluator{}
	}
	return &Runner{evaluator: evaluator, now: time.Now}
}

// RunTestSuite uses a default Runner.
func RunTestSuite(persona *types.PersonaDefinition, cfg *types.ValidationConfig) *types.TestSuiteResult {
	return NewRunner(nil).RunTestSuite(persona, cfg)
}

// RunTestSuite generates the persona's test cases and runs each one. A failure inside
// one case, including a panic, is recorded on that result and the run continues.
func (r *Runner) RunTestSuite(persona *types.PersonaDefinition, cfg *types.ValidationConfig) *types.TestSuiteResult {
	config := types.DefaultValidationConfig()
	if cfg != nil {
		config = *cfg
	}

	var cases []types.TestCase
	name := ""
	if persona != nil {
		cases = GenerateTestCases(persona, config)
		name = persona.DisplayName("")
	} else {
		cases = EdgeCases()
	}

	return r.Run(name, persona, cases)
}

// Run executes the given cases against persona.
func (r *Runner) Run(personaName string, persona *types.PersonaDefinition, cases []types.TestCase) *types.TestSuiteResult {
	started := r.now()
	suite := &types.TestSuiteResult{
		RunID:       uuid.New().String(),
		PersonaName: personaName,
		StartedAt:   started.UTC(),
		Results:     make([]types.TestResult, 0, len(cases)),
	}

	for _, tc := range cases {
		result := r.runCase(tc, persona)
		suite.Results = append(suite.Results, result)
		if result.Passed {
			suite.Passed++
		} else {
			suite.Failed++
		}
	}

	suite.Total = len(suite.Results)
	if suite.Total > 0 {
		suite.PassRate = float64(suite.Passed) / float64(suite.Total)
	}
	suite.Duration = r.now().Sub(started)
	return suite
}

func (r *Runner) runCase(tc types.TestCase, persona *types.PersonaDefinition) (result types.TestResult) {
	start := r.now()
	result.TestCase = tc
	defer func() {
		if rec := recover(); rec != nil {
			result.Passed = false
			result.Error = fmt.Sprintf("panic: %v", rec)
		}
		result.Duration = r.now().Sub(start)
	}()

	score, err := r.evaluator.Evaluate(tc, persona)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.ActualScore = score
	result.Passed, result.Reason = CheckExpectation(tc, score)
	return result
}

// CheckExpectation reports whether score and the case input meet tc's expectation,
// and why not when they don't.
func CheckExpectation(tc types.TestCase, score int) (bool, string) {
	exp := tc.Expected
	if exp.ShouldPass {
		if exp.MinScore != nil && score < *exp.MinScore {
			return false, fmt.Sprintf("score %d below minimum %d", score, *exp.MinScore)
		}
		for _, p := range exp.RequiredPatterns {
			if !matching.Matches(tc.Input, p) {
				return false, fmt.Sprintf("missing required pattern %q", p)
			}
		}
		return true, ""
	}

	if exp.MaxScore != nil && score > *exp.MaxScore {
		return false, fmt.Sprintf("score %d above maximum %d", score, *exp.MaxScore)
	}
	for _, p := range exp.ForbiddenPatterns {
		if matching.Matches(tc.Input, p) {
			return false, fmt.Sprintf("found forbidden pattern %q", p)
		}
	}
	return true, ""
}

// PassesCI fails when the pass rate is below minPassRate or when any edge case failed.
// A non-positive minPassRate selects DefaultMinPassRate.
func PassesCI(result *types.TestSuiteResult, minPassRate float64) (bool, []string) {
	if minPassRate <= 0 {
		minPassRate = DefaultMinPassRate
	}

	reasons := make([]string, 0)
	if result.PassRate < minPassRate {
		reasons = append(reasons, fmt.Sprintf("Pass rate %.1f%% is below minimum %.1f%%", result.PassRate*100, minPassRate*100))
	}
	for _, failed := range result.FailedInCategory(types.CategoryEdgeCase) {
		reasons = append(reasons, fmt.Sprintf("Edge case %s failed: %s", failed.TestCase.ID, failureDetail(failed)))
	}
	return len(reasons) == 0, reasons
}

func failureDetail(r types.TestResult) string {
	if r.Error != "" {
		return r.Error
	}
	return r.Reason
}
