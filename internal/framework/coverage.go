// Package framework measures how much of a persona's frameworks, concepts and
// diagnostic questions a text uses.
package framework

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/persona-validator/internal/textutil"
	"github.com/jonathan/persona-validator/internal/types"
)

// Score components and detection thresholds.
const (
	referencePoints = 30.0
	conceptPoints   = 50.0
	questionPoints  = 20.0

	conceptNameRatio     = 0.7
	definitionKeywordMin = 3
	exampleWordRatio     = 0.5
	questionKeywordRatio = 0.6
	questionKeywordCount = 4
)

// Analyze computes framework coverage of text for persona. A persona with no
// frameworks scores 100.
func Analyze(text string, persona *types.PersonaDefinition) types.FrameworkCoverageResult {
	lowerText := strings.ToLower(text)
	names := persona.FrameworkNames()

	result := types.FrameworkCoverageResult{
		Frameworks:      make([]types.FrameworkUsage, 0, len(names)),
		TotalFrameworks: len(names),
	}
	if len(names) == 0 {
		result.Score = 100
		return result
	}

	// Concepts are counted once by normalized name, even when shared between frameworks.
	allConcepts := make(map[string]bool)
	mentionedConcepts := make(map[string]bool)

	for _, name := range names {
		fw := persona.Frameworks[name]
		usage := types.FrameworkUsage{
			Name:              name,
			Referenced:        isReferenced(name, lowerText),
			ConceptsMentioned: []string{},
			ConceptsMissing:   []string{},
			QuestionsUsed:     []string{},
			QuestionsUnused:   []string{},
		}
		if usage.Referenced {
			result.FrameworksReferenced++
		}

		for _, conceptName := range fw.ConceptNames() {
			key := textutil.NormalizeName(conceptName)
			allConcepts[key] = true
			if isConceptMentioned(conceptName, fw.Concepts[conceptName], lowerText) {
				mentionedConcepts[key] = true
				usage.ConceptsMentioned = append(usage.ConceptsMentioned, conceptName)
			} else {
				usage.ConceptsMissing = append(usage.ConceptsMissing, conceptName)
			}
		}

		for _, q := range fw.Questions {
			result.TotalQuestions++
			if isQuestionUsed(q, lowerText) {
				result.QuestionsUsed++
				usage.QuestionsUsed = append(usage.QuestionsUsed, q)
			} else {
				usage.QuestionsUnused = append(usage.QuestionsUnused, q)
			}
		}

		result.Frameworks = append(result.Frameworks, usage)
	}

	result.TotalConcepts = len(allConcepts)
	result.ConceptsMentioned = len(mentionedConcepts)

	score := float64(result.FrameworksReferenced) / float64(result.TotalFrameworks) * referencePoints
	score += ratioPoints(result.ConceptsMentioned, result.TotalConcepts, conceptPoints)
	score += ratioPoints(result.QuestionsUsed, result.TotalQuestions, questionPoints)
	result.Score = int(math.Round(math.Min(100, math.Max(0, score))))
	return result
}

// ratioPoints returns points*(n/total); an empty list earns the full points.
func ratioPoints(n, total int, points float64) float64 {
	if total == 0 {
		return points
	}
	return float64(n) / float64(total) * points
}

func isReferenced(name, lowerText string) bool {
	normalized := textutil.NormalizeName(name)
	if normalized == "" {
		return false
	}
	return strings.Contains(lowerText, normalized) || strings.Contains(lowerText, strings.ToLower(name))
}

// isConceptMentioned applies the four concept signals in order: name substring,
// name-word ratio, definition keywords and example-word ratio.
func isConceptMentioned(name string, concept types.Concept, lowerText string) bool {
	normalized := textutil.NormalizeName(name)
	if normalized != "" && strings.Contains(lowerText, normalized) {
		return true
	}

	nameWords := textutil.SignificantWords(normalized, 2)
	if len(nameWords) > 0 {
		ratio := float64(textutil.CountPresent(lowerText, nameWords)) / float64(len(nameWords))
		if ratio >= conceptNameRatio {
			return true
		}
	}

	if textutil.CountPresent(lowerText, textutil.ExtractKeywords(concept.Definition)) >= definitionKeywordMin {
		return true
	}

	for _, example := range concept.Examples {
		words := textutil.SignificantWords(example, 2)
		if len(words) == 0 {
			continue
		}
		if float64(textutil.CountPresent(lowerText, words))/float64(len(words)) >= exampleWordRatio {
			return true
		}
	}
	return false
}

// isQuestionUsed matches the question verbatim or by at least 60% of its first four keywords.
func isQuestionUsed(question, lowerText string) bool {
	lowerQuestion := strings.ToLower(strings.TrimSpace(question))
	if lowerQuestion == "" {
		return false
	}
	if strings.Contains(lowerText, lowerQuestion) {
		return true
	}

	keywords := textutil.ExtractKeywords(question)
	if len(keywords) > questionKeywordCount {
		keywords = keywords[:questionKeywordCount]
	}
	if len(keywords) == 0 {
		return false
	}
	return float64(textutil.CountPresent(lowerText, keywords))/float64(len(keywords)) >= questionKeywordRatio
}

// Suggestions lists unreferenced frameworks, then missing concepts, then unused questions.
func Suggestions(result types.FrameworkCoverageResult) []string {
	suggestions := make([]string, 0)
	for _, fw := range result.Frameworks {
		if !fw.Referenced {
			suggestions = append(suggestions, fmt.Sprintf("Reference the %s framework explicitly", textutil.NormalizeName(fw.Name)))
		}
	}
	for _, fw := range result.Frameworks {
		for _, c := range fw.ConceptsMissing {
			suggestions = append(suggestions, fmt.Sprintf("Apply the concept %q from %s", c, textutil.NormalizeName(fw.Name)))
		}
	}
	for _, fw := range result.Frameworks {
		for _, q := range fw.QuestionsUnused {
			suggestions = append(suggestions, fmt.Sprintf("Consider asking: %s", q))
		}
	}
	return suggestions
}
