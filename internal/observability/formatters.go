// Package observability provides formatted box output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/persona-validator/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, ending in "..." when cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

func check(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

// PrintFidelityScore outputs the fidelity score, its assessment and the marker breakdown.
func (p *Printer) PrintFidelityScore(score *types.FidelityScore) {
	if score == nil {
		return
	}

	var sb strings.Builder
	status := "FAILED"
	if score.Passed {
		status = "PASSED"
	}
	sb.WriteString(fmt.Sprintf("Score:  %d/100 (%s)\n\n", score.Score, status))

	writeMarkers := func(title string, b types.MarkerBreakdown, hit string) {
		if b.Total == 0 {
			return
		}
		sb.WriteString(fmt.Sprintf("%s: %d/%d\n", title, b.Matched, b.Total))
		count := min(len(b.Results), maxItemsToShow)
		for i := 0; i < count; i++ {
			r := b.Results[i]
			mark := " "
			if r.Matched {
				mark = hit
			}
			sb.WriteString(fmt.Sprintf("  %s %s\n", mark, r.Label))
		}
		if len(b.Results) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(b.Results)-maxItemsToShow))
		}
	}
	writeMarkers("Must include", score.Breakdown.MustInclude, "✓")
	writeMarkers("Should include", score.Breakdown.ShouldInclude, "✓")
	writeMarkers("Must avoid", score.Breakdown.MustAvoid, "✗")

	if score.Assessment != "" {
		sb.WriteString("\n")
		sb.WriteString(score.Assessment)
	}

	p.printBox("FIDELITY SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintVoiceAnalysis outputs tone, phrase and style detection results.
func (p *Printer) PrintVoiceAnalysis(result *types.VoiceAnalysisResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:  %d/100\n", result.Score))

	if len(result.Tones) > 0 {
		sb.WriteString(fmt.Sprintf("\nTones (%d/%d):\n", result.TonesDetected, len(result.Tones)))
		for _, tone := range result.Tones {
			line := fmt.Sprintf("  %s %s", check(tone.Detected), tone.Tone)
			if tone.Evidence != "" {
				line += fmt.Sprintf(" (%q)", tone.Evidence)
			}
			sb.WriteString(line + "\n")
		}
	}

	if len(result.Phrases) > 0 {
		sb.WriteString(fmt.Sprintf("\nPhrases (%d exact, %d variant):\n", result.ExactPhrases, result.VariantPhrases))
		for _, phrase := range result.Phrases {
			sb.WriteString(fmt.Sprintf("  [%s] %s\n", phrase.Match, phrase.Phrase))
		}
	}

	if len(result.Styles) > 0 {
		sb.WriteString(fmt.Sprintf("\nStyles (%d/%d):\n", result.StylesFollowed, len(result.Styles)))
		for _, style := range result.Styles {
			sb.WriteString(fmt.Sprintf("  %s %s (%.2f)\n", check(style.Followed), style.Style, style.Confidence))
		}
	}

	p.printBox("VOICE ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
	p.PrintConstraintViolations(result.ConstraintViolations)
}

// PrintConstraintViolations outputs voice constraint violations.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintConstraintViolations(violations []string) {
	if len(violations) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO VIOLATIONS FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d violations:\n", len(violations)))
	for _, v := range violations {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", v))
	}

	p.printBox("CONSTRAINT VIOLATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFrameworkCoverage outputs per-framework reference, concept and question usage.
func (p *Printer) PrintFrameworkCoverage(result *types.FrameworkCoverageResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:       %d/100\n", result.Score))
	sb.WriteString(fmt.Sprintf("Frameworks:  %d/%d referenced\n", result.FrameworksReferenced, result.TotalFrameworks))
	sb.WriteString(fmt.Sprintf("Concepts:    %d/%d mentioned\n", result.ConceptsMentioned, result.TotalConcepts))
	sb.WriteString(fmt.Sprintf("Questions:   %d/%d used\n", result.QuestionsUsed, result.TotalQuestions))

	for _, fw := range result.Frameworks {
		sb.WriteString(fmt.Sprintf("\n%s %s\n", check(fw.Referenced), fw.Name))
		if len(fw.ConceptsMentioned) > 0 {
			sb.WriteString(fmt.Sprintf("    Concepts: %s\n", strings.Join(fw.ConceptsMentioned, ", ")))
		}
		if len(fw.ConceptsMissing) > 0 {
			sb.WriteString(fmt.Sprintf("    Missing:  %s\n", strings.Join(fw.ConceptsMissing, ", ")))
		}
	}

	p.printBox("FRAMEWORK COVERAGE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSampleValidation outputs how the text compares with each sample response.
func (p *Printer) PrintSampleValidation(result *types.SampleValidation) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Text score: %d/100\n", result.TextScore))
	sb.WriteString(fmt.Sprintf("Pass rate:  %.0f%%\n", result.PassRate*100))

	for i, r := range result.Results {
		bad := "-"
		if r.BadScore != nil {
			bad = fmt.Sprintf("%d", *r.BadScore)
		}
		sb.WriteString(fmt.Sprintf("\n%s #%d %s\n", check(r.CloserToGood), i+1, r.Question))
		sb.WriteString(fmt.Sprintf("    good %d  bad %s  text %d\n", r.GoodScore, bad, r.TextScore))
	}

	p.printBox("SAMPLE COMPARISON", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintComparison outputs personas ranked by quality score.
func (p *Printer) PrintComparison(comparison *types.CrossPersonaComparison) {
	if comparison == nil || len(comparison.Results) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Best match: %s\n\n", comparison.BestMatch))
	sb.WriteString(fmt.Sprintf("%-4s %-20s %5s %5s %5s %5s\n", "#", "Persona", "Qual", "Fid", "Voice", "Fw"))

	for i, r := range comparison.Results {
		sb.WriteString(fmt.Sprintf("%-4d %-20s %5d %5d %5d %5d\n",
			i+1, truncate(r.PersonaID, 20), r.QualityScore,
			r.FidelityScore.Score, r.VoiceAnalysis.Score, r.FrameworkCoverage.Score))
	}

	p.printBox("PERSONA RANKING", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSimilarityMatrix outputs the pairwise overall similarity matrix.
func (p *Printer) PrintSimilarityMatrix(matrix *types.SimilarityMatrix) {
	if matrix == nil || len(matrix.PersonaIDs) == 0 {
		return
	}

	const cell = 8
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-*s", cell+4, ""))
	for _, id := range matrix.PersonaIDs {
		sb.WriteString(fmt.Sprintf("%*s", cell, truncate(id, cell-1)))
	}
	sb.WriteString("\n")

	for i, id := range matrix.PersonaIDs {
		sb.WriteString(fmt.Sprintf("%-*s", cell+4, truncate(id, cell+3)))
		for _, v := range matrix.Values[i] {
			sb.WriteString(fmt.Sprintf("%*d", cell, v))
		}
		sb.WriteString("\n")
	}

	p.printBox("PERSONA SIMILARITY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSimilarity outputs the breakdown for one persona pair.
func (p *Printer) PrintSimilarity(sim *types.PersonaSimilarity) {
	if sim == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s ↔ %s\n\n", sim.PersonaA, sim.PersonaB))
	sb.WriteString(fmt.Sprintf("Overall:     %d%%\n", sim.OverallSimilarity))
	sb.WriteString(fmt.Sprintf("Voice:       %d%%\n", sim.VoiceSimilarity))
	sb.WriteString(fmt.Sprintf("Frameworks:  %d%%\n", sim.FrameworkOverlap))
	sb.WriteString(fmt.Sprintf("Validation:  %d%%\n", sim.ValidationSimilarity))
	if len(sim.SharedFrameworks) > 0 {
		sb.WriteString(fmt.Sprintf("\nShared frameworks: %s\n", strings.Join(sim.SharedFrameworks, ", ")))
	}
	if len(sim.SharedTones) > 0 {
		sb.WriteString(fmt.Sprintf("Shared tones: %s\n", strings.Join(sim.SharedTones, ", ")))
	}

	p.printBox("MOST SIMILAR PAIR", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDifferentiators outputs what makes each persona unique.
func (p *Printer) PrintDifferentiators(diffs []types.PersonaDifferentiators) {
	if len(diffs) == 0 {
		return
	}

	var sb strings.Builder
	for i, d := range diffs {
		sb.WriteString(d.PersonaID + "\n")
		if len(d.UniqueFrameworks) > 0 {
			sb.WriteString(fmt.Sprintf("  Frameworks: %s\n", strings.Join(d.UniqueFrameworks, ", ")))
		}
		if len(d.UniqueTones) > 0 {
			sb.WriteString(fmt.Sprintf("  Tones: %s\n", strings.Join(d.UniqueTones, ", ")))
		}
		if len(d.UniquePhrases) > 0 {
			count := min(len(d.UniquePhrases), 3)
			sb.WriteString(fmt.Sprintf("  Phrases: %s\n", strings.Join(d.UniquePhrases[:count], "; ")))
		}
		if len(d.UniqueFrameworks)+len(d.UniqueTones)+len(d.UniquePhrases) == 0 {
			sb.WriteString("  (nothing unique)\n")
		}
		if i < len(diffs)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("DIFFERENTIATORS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSuggestions outputs a numbered suggestion list.
func (p *Printer) PrintSuggestions(title string, suggestions []string) {
	if len(suggestions) == 0 {
		p.printBox(title, "No suggestions. The text already covers the persona.")
		return
	}

	var sb strings.Builder
	for i, s := range suggestions {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, s))
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}
