// Package types provides type definitions for structured data used throughout the persona-validator system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// MarkerResult records how a single marker fared against a text.
// Index is the marker's position in the list it was evaluated from; Label is resolved only for display.
type MarkerResult struct {
	Index   int     `json:"index"`
	Label   string  `json:"label"`
	Pattern string  `json:"pattern"`
	Weight  float64 `json:"weight"`
	Matched bool    `json:"matched"`
}

// MarkerBreakdown summarizes one marker list. For must-avoid lists, Matched counts triggered markers.
type MarkerBreakdown struct {
	Matched         int            `json:"matched"`
	Total           int            `json:"total"`
	MatchedPatterns []string       `json:"matched_patterns"`
	MissingPatterns []string       `json:"missing_patterns"`
	Results         []MarkerResult `json:"results"`
	MatchedWeight   float64        `json:"matched_weight"`
	TotalWeight     float64        `json:"total_weight"`
	Points          float64        `json:"points"`
}

// FidelityBreakdown groups the three marker lists.
type FidelityBreakdown struct {
	MustInclude   MarkerBreakdown `json:"must_include"`
	ShouldInclude MarkerBreakdown `json:"should_include"`
	MustAvoid     MarkerBreakdown `json:"must_avoid"`
}

// FidelityScore is the result of scoring one text against one persona.
type FidelityScore struct {
	Score      int               `json:"score"`
	Breakdown  FidelityBreakdown `json:"breakdown"`
	Passed     bool              `json:"passed"`
	Assessment string            `json:"assessment"`
}

// SampleComparison is the outcome of comparing a candidate against one persona sample.
type SampleComparison struct {
	Question     string `json:"question"`
	GoodScore    int    `json:"good_score"`
	BadScore     *int   `json:"bad_score,omitempty"`
	TextScore    int    `json:"text_score"`
	CloserToGood bool   `json:"closer_to_good"`
}

// SampleValidation aggregates SampleComparison results.
type SampleValidation struct {
	TextScore int                `json:"text_score"`
	Results   []SampleComparison `json:"results"`
	PassRate  float64            `json:"pass_rate"`
}

// PhraseMatchKind classifies how a characteristic phrase appears in a text.
type PhraseMatchKind string

// Phrase match kinds.
const (
	PhraseExact   PhraseMatchKind = "exact"
	PhraseVariant PhraseMatchKind = "variant"
	PhraseAbsent  PhraseMatchKind = "absent"
)

// ToneDetection records whether an expected tone was detected.
type ToneDetection struct {
	Tone     string `json:"tone"`
	Detected bool   `json:"detected"`
	Evidence string `json:"evidence,omitempty"`
}

// PhraseMatch records how a characteristic phrase was found.
type PhraseMatch struct {
	Phrase string          `json:"phrase"`
	Match  PhraseMatchKind `json:"match"`
}

// StyleCheck records whether a style description was followed.
type StyleCheck struct {
	Style      string  `json:"style"`
	Followed   bool    `json:"followed"`
	Confidence float64 `json:"confidence"`
	Detector   string  `json:"detector"`
}

// VoiceAnalysisResult is the output of the voice analyzer.
type VoiceAnalysisResult struct {
	Score                int             `json:"score"`
	Tones                []ToneDetection `json:"tones"`
	Phrases              []PhraseMatch   `json:"phrases"`
	Styles               []StyleCheck    `json:"styles"`
	ConstraintViolations []string        `json:"constraint_violations"`
	TonesDetected        int             `json:"tones_detected"`
	ExactPhrases         int             `json:"exact_phrases"`
	VariantPhrases       int             `json:"variant_phrases"`
	StylesFollowed       int             `json:"styles_followed"`
}

// FrameworkUsage records coverage of one framework.
type FrameworkUsage struct {
	Name              string   `json:"name"`
	Referenced        bool     `json:"referenced"`
	ConceptsMentioned []string `json:"concepts_mentioned"`
	ConceptsMissing   []string `json:"concepts_missing"`
	QuestionsUsed     []string `json:"questions_used"`
	QuestionsUnused   []string `json:"questions_unused"`
}

// FrameworkCoverageResult is the output of the framework coverage analyzer.
type FrameworkCoverageResult struct {
	Score                int              `json:"score"`
	Frameworks           []FrameworkUsage `json:"frameworks"`
	FrameworksReferenced int              `json:"frameworks_referenced"`
	TotalFrameworks      int              `json:"total_frameworks"`
	ConceptsMentioned    int              `json:"concepts_mentioned"`
	TotalConcepts        int              `json:"total_concepts"`
	QuestionsUsed        int              `json:"questions_used"`
	TotalQuestions       int              `json:"total_questions"`
}
