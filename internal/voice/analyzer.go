// Package voice analyzes how closely a text matches a persona's tone, phrasing, style and constraints.
package voice

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/jonathan/persona-validator/internal/textutil"
	"github.com/jonathan/persona-validator/internal/types"
)

// Component ceilings of the voice score.
const (
	tonePoints       = 40.0
	phrasePoints     = 30.0
	stylePoints      = 30.0
	violationPenalty = 10.0
	maxVoicePoints   = tonePoints + phrasePoints + stylePoints
)

// constraintClause extracts the subject of "never/avoid/don't/no X" clauses.
var constraintClause = regexp.MustCompile(`(?i)\b(?:never|avoid|don't|do not|no)\s+([^.,;:!?]+)`)

// leadingVerbs are stripped from a constraint subject before looking for it in the text.
var leadingVerbs = []string{"using ", "use ", "saying ", "say ", "making ", "make ", "giving ", "give ", "mentioning ", "mention ", "being ", "be "}

// Analyzer runs voice analysis with a detector Registry.
type Analyzer struct {
	registry Registry
}

// NewAnalyzer creates an Analyzer. A nil registry selects DefaultRegistry.
func NewAnalyzer(registry Registry) *Analyzer {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Analyzer{registry: registry}
}

// Analyze uses the default registry.
func Analyze(text string, persona *types.PersonaDefinition) types.VoiceAnalysisResult {
	return NewAnalyzer(nil).Analyze(text, persona)
}

// Analyze scores text against persona's voice. Tone, phrase, style and constraint
// signals are detected independently.
func (a *Analyzer) Analyze(text string, persona *types.PersonaDefinition) types.VoiceAnalysisResult {
	lowerText := strings.ToLower(text)
	v := persona.Voice

	result := types.VoiceAnalysisResult{
		Tones:                make([]types.ToneDetection, 0, len(v.Tone)),
		Phrases:              make([]types.PhraseMatch, 0, len(v.Phrases)),
		Styles:               make([]types.StyleCheck, 0, len(v.Style)),
		ConstraintViolations: []string{},
	}

	for _, tone := range v.Tone {
		detection := a.detectTone(tone, text)
		if detection.Detected {
			result.TonesDetected++
		}
		result.Tones = append(result.Tones, detection)
	}

	for _, phrase := range v.Phrases {
		match := matchPhrase(phrase, lowerText)
		switch match.Match {
		case types.PhraseExact:
			result.ExactPhrases++
		case types.PhraseVariant:
			result.VariantPhrases++
		}
		result.Phrases = append(result.Phrases, match)
	}

	styleSum := 0.0
	for _, style := range v.Style {
		check := a.checkStyle(style, text, lowerText)
		if check.Followed {
			result.StylesFollowed++
			styleSum += check.Confidence
		}
		result.Styles = append(result.Styles, check)
	}

	result.ConstraintViolations = a.checkConstraints(v.Constraints, text, lowerText)

	score := 0.0
	score += ratioPoints(float64(result.TonesDetected), len(v.Tone), tonePoints)
	score += ratioPoints(float64(result.ExactPhrases)+0.5*float64(result.VariantPhrases), len(v.Phrases), phrasePoints)
	score += ratioPoints(styleSum, len(v.Style), stylePoints)
	score -= violationPenalty * float64(len(result.ConstraintViolations))

	normalized := score / maxVoicePoints * 100
	result.Score = int(math.Min(100, math.Max(0, math.Round(normalized))))
	return result
}

// ratioPoints returns points*(value/total); an empty list earns the full points.
func ratioPoints(value float64, total int, points float64) float64 {
	if total == 0 {
		return points
	}
	return value / float64(total) * points
}

func (a *Analyzer) detectTone(tone, text string) types.ToneDetection {
	detection := types.ToneDetection{Tone: tone}

	detectors, ok := a.registry.ToneDetectors(tone)
	if !ok {
		fallback, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(strings.TrimSpace(tone)) + `\b`)
		if err != nil {
			return detection
		}
		detectors = []*regexp.Regexp{fallback}
	}

	for _, re := range detectors {
		if m := re.FindString(text); m != "" {
			detection.Detected = true
			detection.Evidence = m
			return detection
		}
	}
	return detection
}

// matchPhrase classifies phrase as exact, variant (at least half of its first three
// words longer than three characters appear) or absent.
func matchPhrase(phrase, lowerText string) types.PhraseMatch {
	lowerPhrase := strings.ToLower(strings.TrimSpace(phrase))
	if lowerPhrase != "" && strings.Contains(lowerText, lowerPhrase) {
		return types.PhraseMatch{Phrase: phrase, Match: types.PhraseExact}
	}

	var words []string
	for _, w := range textutil.Words(lowerPhrase) {
		if len(w) > 3 {
			words = append(words, w)
		}
		if len(words) == 3 {
			break
		}
	}
	if len(words) > 0 {
		found := textutil.CountPresent(lowerText, words)
		if float64(found)/float64(len(words)) >= 0.5 {
			return types.PhraseMatch{Phrase: phrase, Match: types.PhraseVariant}
		}
	}
	return types.PhraseMatch{Phrase: phrase, Match: types.PhraseAbsent}
}

func (a *Analyzer) checkStyle(style, text, lowerText string) types.StyleCheck {
	if detector, ok := a.registry.StyleDetector(style); ok {
		followed, confidence := detector.Detect(text)
		confidence = math.Min(1, math.Max(0, confidence))
		return types.StyleCheck{Style: style, Followed: followed, Confidence: confidence, Detector: detector.Name}
	}
	followed, confidence := keywordOverlap(style, lowerText)
	return types.StyleCheck{Style: style, Followed: followed, Confidence: confidence, Detector: "keyword_overlap"}
}

// checkConstraints returns distinct violation messages, in constraint order.
func (a *Analyzer) checkConstraints(constraints []string, text, lowerText string) []string {
	violations := []string{}
	seen := make(map[string]bool)
	add := func(msg string) {
		if !seen[msg] {
			seen[msg] = true
			violations = append(violations, msg)
		}
	}

	for _, constraint := range constraints {
		for _, m := range constraintClause.FindAllStringSubmatch(constraint, -1) {
			subject := constraintSubject(m[1])
			if subject != "" && strings.Contains(lowerText, subject) {
				add(fmt.Sprintf("Constraint %q violated: found %q", constraint, subject))
			}
		}

		lowerConstraint := strings.ToLower(constraint)
		for _, ap := range a.registry.Antipatterns() {
			if !mentionsAny(lowerConstraint, ap.Keywords) {
				continue
			}
			if hit := ap.Pattern.FindString(text); hit != "" {
				add(fmt.Sprintf("Constraint %q violated: %s detected (%q)", constraint, ap.Name, strings.ToLower(hit)))
			}
		}
	}
	return violations
}

func constraintSubject(raw string) string {
	subject := strings.ToLower(strings.TrimSpace(raw))
	for _, verb := range leadingVerbs {
		if strings.HasPrefix(subject, verb) {
			subject = strings.TrimSpace(strings.TrimPrefix(subject, verb))
			break
		}
	}
	// Single short words ("a", "it") are too noisy to check.
	if len(subject) < 3 {
		return ""
	}
	return subject
}

func mentionsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
