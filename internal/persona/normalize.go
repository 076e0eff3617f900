package persona

import (
	"strings"

	"github.com/jonathan/persona-validator/internal/types"
)

// Normalize trims whitespace and drops empty or duplicate entries from the persona's
// voice lists. Marker lists are left untouched so marker indexes stay stable.
func Normalize(def *types.PersonaDefinition) {
	def.Identity.Name = strings.TrimSpace(def.Identity.Name)
	def.Identity.Role = strings.TrimSpace(def.Identity.Role)

	def.Voice.Tone = cleanList(def.Voice.Tone)
	def.Voice.Phrases = cleanList(def.Voice.Phrases)
	def.Voice.Style = cleanList(def.Voice.Style)
	def.Voice.Constraints = cleanList(def.Voice.Constraints)

	for name, fw := range def.Frameworks {
		fw.Questions = cleanList(fw.Questions)
		def.Frameworks[name] = fw
	}
}

// cleanList trims items and removes blanks and case-insensitive duplicates, keeping first spelling.
func cleanList(items []string) []string {
	if items == nil {
		return nil
	}
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
