// Package types provides type definitions for structured data used throughout the persona-validator system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// PersonaComparisonResult is one persona's scores in a cross-persona comparison.
type PersonaComparisonResult struct {
	PersonaID         string                  `json:"persona_id"`
	PersonaName       string                  `json:"persona_name"`
	FidelityScore     FidelityScore           `json:"fidelity_score"`
	VoiceAnalysis     VoiceAnalysisResult     `json:"voice_analysis"`
	FrameworkCoverage FrameworkCoverageResult `json:"framework_coverage"`
	QualityScore      int                     `json:"quality_score"`
}

// CrossPersonaComparison ranks a text against many personas. Results are in rank order.
type CrossPersonaComparison struct {
	Results   []PersonaComparisonResult `json:"results"`
	BestMatch string                    `json:"best_match"`
}

// PersonaSimilarity is the text-independent similarity between two personas, in integer percent.
type PersonaSimilarity struct {
	PersonaA             string   `json:"persona_a"`
	PersonaB             string   `json:"persona_b"`
	VoiceSimilarity      int      `json:"voice_similarity"`
	FrameworkOverlap     int      `json:"framework_overlap"`
	ValidationSimilarity int      `json:"validation_similarity"`
	OverallSimilarity    int      `json:"overall_similarity"`
	SharedFrameworks     []string `json:"shared_frameworks"`
	SharedTones          []string `json:"shared_tones"`
}

// SimilarityMatrix is an N×N overall-similarity table indexed in PersonaIDs order.
type SimilarityMatrix struct {
	PersonaIDs []string `json:"persona_ids"`
	Values     [][]int  `json:"values"`
}

// Get returns the similarity between personas a and b, and false if either id is unknown.
func (m SimilarityMatrix) Get(a, b string) (int, bool) {
	i, j := -1, -1
	for idx, id := range m.PersonaIDs {
		if id == a {
			i = idx
		}
		if id == b {
			j = idx
		}
	}
	if i < 0 || j < 0 {
		return 0, false
	}
	return m.Values[i][j], true
}

// PersonaDifferentiators lists what a persona has that no other compared persona has.
type PersonaDifferentiators struct {
	PersonaID        string   `json:"persona_id"`
	UniqueFrameworks []string `json:"unique_frameworks"`
	UniqueTones      []string `json:"unique_tones"`
	UniquePhrases    []string `json:"unique_phrases"`
}
