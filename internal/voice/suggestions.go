package voice

import (
	"fmt"

	"github.com/jonathan/persona-validator/internal/types"
)

// Suggestions turns a voice analysis into improvement hints: missing tones first,
// then absent phrases, then styles that were not followed.
func Suggestions(result types.VoiceAnalysisResult) []string {
	suggestions := make([]string, 0)
	for _, tone := range result.Tones {
		if !tone.Detected {
			suggestions = append(suggestions, fmt.Sprintf("Adopt a more %s tone", tone.Tone))
		}
	}
	for _, phrase := range result.Phrases {
		if phrase.Match == types.PhraseAbsent {
			suggestions = append(suggestions, fmt.Sprintf("Use characteristic phrasing such as %q", phrase.Phrase))
		}
	}
	for _, style := range result.Styles {
		if !style.Followed {
			suggestions = append(suggestions, fmt.Sprintf("Follow the persona's style: %s", style.Style))
		}
	}
	return suggestions
}
