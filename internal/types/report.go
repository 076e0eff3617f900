// Package types provides type definitions for structured data used throughout the persona-validator system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Priority orders recommendations. Lower rank sorts first.
type Priority string

// Recommendation priorities.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns the sort position of the priority (high=0, medium=1, low=2).
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Recommendation is one actionable improvement to a text.
type Recommendation struct {
	Priority Priority `json:"priority"`
	Category string   `json:"category"`
	Message  string   `json:"message"`
}

// QualityReport merges the three analyzer outputs into one report.
type QualityReport struct {
	ID              string                  `json:"id"`
	PersonaName     string                  `json:"persona_name"`
	GeneratedAt     time.Time               `json:"generated_at"`
	Fidelity        FidelityScore           `json:"fidelity"`
	Voice           VoiceAnalysisResult     `json:"voice"`
	Framework       FrameworkCoverageResult `json:"framework"`
	Overall         int                     `json:"overall"`
	Weights         ScoreWeights            `json:"weights"`
	Recommendations []Recommendation        `json:"recommendations"`
}

// HighPriorityCount returns the number of high-priority recommendations.
func (r *QualityReport) HighPriorityCount() int {
	count := 0
	for _, rec := range r.Recommendations {
		if rec.Priority == PriorityHigh {
			count++
		}
	}
	return count
}
