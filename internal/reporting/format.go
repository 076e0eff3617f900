package reporting

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/persona-validator/internal/types"
)

const (
	// reportWidth is the width of the rule lines in text reports
	reportWidth = 60
	// barWidth is the number of cells in a score bar
	barWidth = 10
)

// ScoreBar renders score as barWidth cells, one filled cell per 10 points (rounded).
func ScoreBar(score int) string {
	filled := (clampScore(score) + 5) / 10
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// StatusGlyph returns ✓ for scores of 80 or more, ~ for 60 or more, otherwise ✗.
func StatusGlyph(score int) string {
	switch {
	case score >= 80:
		return "✓"
	case score >= 60:
		return "~"
	default:
		return "✗"
	}
}

func clampScore(score int) int {
	return max(0, min(100, score))
}

// FormatReport renders a human-readable quality report.
func FormatReport(report *types.QualityReport) string {
	var sb strings.Builder
	rule := strings.Repeat("─", reportWidth)

	sb.WriteString(rule + "\n")
	sb.WriteString(fmt.Sprintf("QUALITY REPORT: %s\n", report.PersonaName))
	sb.WriteString(fmt.Sprintf("Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(rule + "\n\n")

	sb.WriteString(fmt.Sprintf("Overall:    %s %3d/100 %s\n\n", ScoreBar(report.Overall), report.Overall, StatusGlyph(report.Overall)))
	writeScoreLine(&sb, "Fidelity", report.Fidelity.Score)
	writeScoreLine(&sb, "Voice", report.Voice.Score)
	writeScoreLine(&sb, "Framework", report.Framework.Score)
	sb.WriteString("\n")

	must := report.Fidelity.Breakdown.MustInclude
	sb.WriteString(fmt.Sprintf("Required patterns:  %d/%d matched\n", must.Matched, must.Total))
	sb.WriteString(fmt.Sprintf("Tones detected:     %d/%d\n", report.Voice.TonesDetected, len(report.Voice.Tones)))
	sb.WriteString(fmt.Sprintf("Frameworks used:    %d/%d\n", report.Framework.FrameworksReferenced, report.Framework.TotalFrameworks))

	if len(report.Voice.ConstraintViolations) > 0 {
		sb.WriteString("\nConstraint violations:\n")
		for _, v := range report.Voice.ConstraintViolations {
			sb.WriteString(fmt.Sprintf("  ✗ %s\n", v))
		}
	}

	if len(report.Recommendations) > 0 {
		sb.WriteString("\nRecommendations:\n")
		for i, rec := range report.Recommendations {
			sb.WriteString(fmt.Sprintf("  %d. [%s] %s\n", i+1, strings.ToUpper(string(rec.Priority)), rec.Message))
		}
	}

	sb.WriteString(rule + "\n")
	return sb.String()
}

func writeScoreLine(sb *strings.Builder, label string, score int) {
	sb.WriteString(fmt.Sprintf("%-11s %s %3d/100 %s\n", label+":", ScoreBar(score), score, StatusGlyph(score)))
}

// GenerateJSONReport renders report as indented JSON.
func GenerateJSONReport(report *types.QualityReport) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", &EncodeError{Message: "failed to marshal quality report", Cause: err}
	}
	return string(data), nil
}

// GenerateSummary returns a one-paragraph verdict for report.
func GenerateSummary(report *types.QualityReport) string {
	var verdict string
	switch {
	case report.Overall >= 90:
		verdict = "Excellent"
	case report.Overall >= 75:
		verdict = "Good"
	case report.Overall >= 60:
		verdict = "Acceptable"
	default:
		verdict = "Needs improvement"
	}

	summary := fmt.Sprintf("%s: %s scored %d/100 overall (fidelity %d, voice %d, framework %d).",
		verdict, report.PersonaName, report.Overall, report.Fidelity.Score, report.Voice.Score, report.Framework.Score)

	if high := report.HighPriorityCount(); high > 0 {
		summary += fmt.Sprintf(" %d high-priority issue(s) to address.", high)
	} else if len(report.Recommendations) == 0 {
		summary += " No recommendations."
	}
	return summary
}

// EncodeError represents a failure rendering a report
type EncodeError struct {
	Message string
	Cause   error
}

func (e *EncodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *EncodeError) Unwrap() error {
	return e.Cause
}
