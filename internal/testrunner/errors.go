// Package testrunner generates and executes persona test suites for CI.
package testrunner

import "fmt"

// EvaluationError represents a test case that could not be scored
type EvaluationError struct {
	TestID  string
	Message string
	Cause   error
}

func (e *EvaluationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("evaluation error in %s: %s: %v", e.TestID, e.Message, e.Cause)
	}
	return fmt.Sprintf("evaluation error in %s: %s", e.TestID, e.Message)
}

func (e *EvaluationError) Unwrap() error {
	return e.Cause
}

// ReportError represents a failure rendering suite results
type ReportError struct {
	Message string
	Cause   error
}

func (e *ReportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("report error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("report error: %s", e.Message)
}

func (e *ReportError) Unwrap() error {
	return e.Cause
}
