// Package voice analyzes how closely a text matches a persona's tone, phrasing, style and constraints.
package voice

import (
	"math"
	"regexp"
	"strings"

	"github.com/jonathan/persona-validator/internal/textutil"
)

var (
	examplePattern   = regexp.MustCompile(`(?i)\b(for example|for instance|e\.g\.|such as|consider the case|take the case|like when)`)
	listItemPattern  = regexp.MustCompile(`(?m)^\s*(\d+[.)]|[-*•])\s+\S`)
	headingPattern   = regexp.MustCompile(`(?m)^\s*(#{1,6}\s+\S|[A-Z][A-Za-z ]{2,40}:\s*$)`)
	storyPattern     = regexp.MustCompile(`(?i)\b(i remember|years ago|back when|once worked|a client of mine|story|when i was)\b`)
	numberPattern    = regexp.MustCompile(`\d`)
	metricPattern    = regexp.MustCompile(`(?i)(%|\b(percent|ratio|rate|metric|data|measured?)\b)`)
	analogyPattern   = regexp.MustCompile(`(?i)\b(like a|as if|analogous|similar to|think of it as|it's like|imagine)\b`)
	principlePattern = regexp.MustCompile(`(?i)\b(first principles?|fundamentally|at its core|root cause|underlying|from scratch)\b`)
	directivePattern = regexp.MustCompile(`(?i)\b(start by|the next step|next,|then,|finally,|step \d|first,|second,)`)
)

// DefaultStyleDetectors returns the built-in style detectors, in lookup order.
func DefaultStyleDetectors() []NamedStyleDetector {
	return []NamedStyleDetector{
		{Name: "socratic", Keywords: []string{"socratic"}, Detect: detectSocratic},
		{Name: "questions_first", Keywords: []string{"questions first", "asks question", "ask question", "question before", "starts with a question"}, Detect: detectQuestionsFirst},
		{Name: "examples", Keywords: []string{"example"}, Detect: detectExamples},
		{Name: "structured", Keywords: []string{"structured", "step-by-step", "step by step", "numbered", "bullet"}, Detect: detectStructured},
		{Name: "stories", Keywords: []string{"story", "stories", "anecdote"}, Detect: detectStories},
		{Name: "data_driven", Keywords: []string{"data", "numbers", "quantif", "metric"}, Detect: detectDataDriven},
		{Name: "analogies", Keywords: []string{"analog", "metaphor"}, Detect: detectAnalogies},
		{Name: "first_principles", Keywords: []string{"first principle", "fundamental"}, Detect: detectFirstPrinciples},
		{Name: "concise", Keywords: []string{"concise", "brief", "succinct", "short"}, Detect: detectConcise},
		{Name: "actionable", Keywords: []string{"actionable", "practical advice", "next steps"}, Detect: detectActionable},
	}
}

// detectQuestionsFirst checks for a question in the opening two sentences.
func detectQuestionsFirst(text string) (bool, float64) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false, 0
	}
	idx := strings.Index(trimmed, "?")
	if idx < 0 {
		return false, 0
	}
	// Count sentence terminators before the first question mark.
	before := trimmed[:idx]
	terminators := strings.Count(before, ".") + strings.Count(before, "!")
	switch {
	case terminators == 0:
		return true, 1.0
	case terminators == 1:
		return true, 0.8
	default:
		return false, 0.3
	}
}

func detectSocratic(text string) (bool, float64) {
	questions := strings.Count(text, "?")
	switch {
	case questions >= 3:
		return true, 1.0
	case questions == 2:
		return true, 0.7
	case questions == 1:
		return false, 0.3
	default:
		return false, 0
	}
}

func detectExamples(text string) (bool, float64) {
	count := len(examplePattern.FindAllString(text, -1))
	if count == 0 {
		return false, 0
	}
	return true, math.Min(1.0, 0.5+0.25*float64(count))
}

func detectStructured(text string) (bool, float64) {
	items := len(listItemPattern.FindAllString(text, -1))
	headings := len(headingPattern.FindAllString(text, -1))
	switch {
	case items >= 2 && headings >= 1:
		return true, 1.0
	case items >= 2:
		return true, 0.8
	case headings >= 2:
		return true, 0.7
	default:
		return false, 0
	}
}

func detectStories(text string) (bool, float64) {
	count := len(storyPattern.FindAllString(text, -1))
	if count == 0 {
		return false, 0
	}
	return true, math.Min(1.0, 0.6+0.2*float64(count))
}

func detectDataDriven(text string) (bool, float64) {
	numbers := len(numberPattern.FindAllString(text, -1))
	metrics := len(metricPattern.FindAllString(text, -1))
	switch {
	case numbers > 0 && metrics > 0:
		return true, 1.0
	case numbers > 0 || metrics > 0:
		return true, 0.6
	default:
		return false, 0
	}
}

func detectAnalogies(text string) (bool, float64) {
	count := len(analogyPattern.FindAllString(text, -1))
	if count == 0 {
		return false, 0
	}
	return true, math.Min(1.0, 0.6+0.2*float64(count))
}

func detectFirstPrinciples(text string) (bool, float64) {
	count := len(principlePattern.FindAllString(text, -1))
	if count == 0 {
		return false, 0
	}
	return true, math.Min(1.0, 0.7+0.15*float64(count))
}

func detectConcise(text string) (bool, float64) {
	words := len(textutil.Words(text))
	switch {
	case words == 0:
		return false, 0
	case words <= 100:
		return true, 1.0
	case words <= 150:
		return true, 0.7
	default:
		return false, 0.2
	}
}

func detectActionable(text string) (bool, float64) {
	directives := len(directivePattern.FindAllString(text, -1))
	items := len(listItemPattern.FindAllString(text, -1))
	switch {
	case directives >= 2 || items >= 2:
		return true, 0.9
	case directives == 1:
		return true, 0.6
	default:
		return false, 0
	}
}

// keywordOverlap is the fallback for styles without a registered detector: the style
// is followed when at least a third of its significant words appear in the text.
func keywordOverlap(style, lowerText string) (bool, float64) {
	words := textutil.SignificantWords(style, 3)
	if len(words) == 0 {
		return false, 0
	}
	ratio := float64(textutil.CountPresent(lowerText, words)) / float64(len(words))
	return ratio >= 1.0/3.0, ratio
}
