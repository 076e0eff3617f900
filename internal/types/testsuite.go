// Package types provides type definitions for structured data used throughout the persona-validator system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// TestCategory selects the analyzer a test case is evaluated with.
type TestCategory string

// Test categories. Voice and framework cases use their analyzers; all others use the fidelity scorer.
const (
	CategoryFidelity  TestCategory = "fidelity"
	CategoryNegative  TestCategory = "negative"
	CategoryVoice     TestCategory = "voice"
	CategoryFramework TestCategory = "framework"
	CategoryEdgeCase  TestCategory = "edge_case"
)

// TestExpectation describes what a passing outcome looks like.
type TestExpectation struct {
	ShouldPass        bool     `json:"should_pass"`
	MinScore          *int     `json:"min_score,omitempty"`
	MaxScore          *int     `json:"max_score,omitempty"`
	RequiredPatterns  []string `json:"required_patterns,omitempty"`
	ForbiddenPatterns []string `json:"forbidden_patterns,omitempty"`
}

// TestCase is a single generated check.
type TestCase struct {
	ID          string          `json:"id"`
	Category    TestCategory    `json:"category"`
	Description string          `json:"description"`
	Input       string          `json:"input"`
	Expected    TestExpectation `json:"expected"`
}

// TestResult binds a TestCase to its observed outcome. Reason explains an unmet
// expectation; Error records a failure to evaluate at all.
type TestResult struct {
	TestCase    TestCase      `json:"test_case"`
	Passed      bool          `json:"passed"`
	ActualScore int           `json:"actual_score"`
	Reason      string        `json:"reason,omitempty"`
	Error       string        `json:"error,omitempty"`
	Duration    time.Duration `json:"duration"`
}

// TestSuiteResult aggregates every TestResult from one run.
type TestSuiteResult struct {
	RunID       string        `json:"run_id"`
	PersonaName string        `json:"persona_name"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"duration"`
	Results     []TestResult  `json:"results"`
	Total       int           `json:"total"`
	Passed      int           `json:"passed"`
	Failed      int           `json:"failed"`
	PassRate    float64       `json:"pass_rate"`
}

// FailedInCategory returns the failed results of the given category.
func (s *TestSuiteResult) FailedInCategory(category TestCategory) []TestResult {
	var failed []TestResult
	for _, r := range s.Results {
		if r.TestCase.Category == category && !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
