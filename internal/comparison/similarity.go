package comparison

import (
	"math"
	"sort"
	"strings"

	"github.com/jonathan/persona-validator/internal/types"
)

// Similarity weights for the overall score.
const (
	voiceSimilarityWeight      = 0.4
	frameworkSimilarityWeight  = 0.4
	validationSimilarityWeight = 0.2
)

// CalculateSimilarity compares two personas independent of any text. Voice similarity
// is the Jaccard index of tone∪style, framework overlap the Jaccard index of framework
// names, and validation similarity the Jaccard index of must-include patterns.
func CalculateSimilarity(a, b types.NamedPersona) types.PersonaSimilarity {
	voiceA := toSet(append(append([]string{}, a.Persona.Voice.Tone...), a.Persona.Voice.Style...))
	voiceB := toSet(append(append([]string{}, b.Persona.Voice.Tone...), b.Persona.Voice.Style...))
	fwA := toSet(a.Persona.FrameworkNames())
	fwB := toSet(b.Persona.FrameworkNames())
	valA := toSet(mustIncludePatterns(a.Persona))
	valB := toSet(mustIncludePatterns(b.Persona))

	voiceSim := percent(jaccard(voiceA, voiceB))
	fwSim := percent(jaccard(fwA, fwB))
	valSim := percent(jaccard(valA, valB))
	// The overall score blends the rounded component percentages.
	overall := voiceSimilarityWeight*float64(voiceSim) +
		frameworkSimilarityWeight*float64(fwSim) +
		validationSimilarityWeight*float64(valSim)

	return types.PersonaSimilarity{
		PersonaA:             a.ID,
		PersonaB:             b.ID,
		VoiceSimilarity:      voiceSim,
		FrameworkOverlap:     fwSim,
		ValidationSimilarity: valSim,
		OverallSimilarity:    int(math.Round(overall)),
		SharedFrameworks:     intersection(fwA, fwB),
		SharedTones:          intersection(toSet(a.Persona.Voice.Tone), toSet(b.Persona.Voice.Tone)),
	}
}

// GenerateSimilarityMatrix builds the N×N overall-similarity matrix in persona order.
// The diagonal is fixed at 100.
func GenerateSimilarityMatrix(personas []types.NamedPersona) types.SimilarityMatrix {
	n := len(personas)
	matrix := types.SimilarityMatrix{
		PersonaIDs: make([]string, n),
		Values:     make([][]int, n),
	}
	for i := range personas {
		matrix.PersonaIDs[i] = personas[i].ID
		matrix.Values[i] = make([]int, n)
	}
	for i := 0; i < n; i++ {
		matrix.Values[i][i] = 100
		for j := i + 1; j < n; j++ {
			sim := CalculateSimilarity(personas[i], personas[j]).OverallSimilarity
			matrix.Values[i][j] = sim
			matrix.Values[j][i] = sim
		}
	}
	return matrix
}

// MostSimilarPair returns the pair of distinct personas with the highest overall
// similarity; earlier pairs win ties. ok is false with fewer than two personas.
func MostSimilarPair(personas []types.NamedPersona) (types.PersonaSimilarity, bool) {
	var best types.PersonaSimilarity
	found := false
	for i := 0; i < len(personas); i++ {
		for j := i + 1; j < len(personas); j++ {
			sim := CalculateSimilarity(personas[i], personas[j])
			if !found || sim.OverallSimilarity > best.OverallSimilarity {
				best = sim
				found = true
			}
		}
	}
	return best, found
}

// IdentifyDifferentiators returns, per persona and in persona order, the frameworks,
// tones and phrases no other persona has.
func IdentifyDifferentiators(personas []types.NamedPersona) []types.PersonaDifferentiators {
	out := make([]types.PersonaDifferentiators, 0, len(personas))
	for i, np := range personas {
		otherFrameworks := make(map[string]bool)
		otherTones := make(map[string]bool)
		otherPhrases := make(map[string]bool)
		for j, other := range personas {
			if i == j {
				continue
			}
			for k := range toSet(other.Persona.FrameworkNames()) {
				otherFrameworks[k] = true
			}
			for k := range toSet(other.Persona.Voice.Tone) {
				otherTones[k] = true
			}
			for k := range toSet(other.Persona.Voice.Phrases) {
				otherPhrases[k] = true
			}
		}

		out = append(out, types.PersonaDifferentiators{
			PersonaID:        np.ID,
			UniqueFrameworks: difference(np.Persona.FrameworkNames(), otherFrameworks),
			UniqueTones:      difference(np.Persona.Voice.Tone, otherTones),
			UniquePhrases:    difference(np.Persona.Voice.Phrases, otherPhrases),
		})
	}
	return out
}

func mustIncludePatterns(p *types.PersonaDefinition) []string {
	patterns := make([]string, 0, len(p.Validation.MustInclude))
	for _, m := range p.Validation.MustInclude {
		patterns = append(patterns, m.Pattern)
	}
	return patterns
}

func setKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		if k := setKey(item); k != "" {
			set[k] = true
		}
	}
	return set
}

// jaccard returns |a∩b|/|a∪b|, and 0 when both sets are empty.
func jaccard(a, b map[string]bool) float64 {
	union := len(a)
	inter := 0
	for k := range b {
		if a[k] {
			inter++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func intersection(a, b map[string]bool) []string {
	out := []string{}
	for k := range a {
		if b[k] {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// difference keeps items whose key is not in others, preserving item order and spelling.
func difference(items []string, others map[string]bool) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, item := range items {
		k := setKey(item)
		if k == "" || others[k] || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, item)
	}
	return out
}

func percent(ratio float64) int {
	return int(math.Round(ratio * 100))
}
