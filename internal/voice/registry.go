// Package voice analyzes how closely a text matches a persona's tone, phrasing, style and constraints.
package voice

import (
	"embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"
)

//go:embed tones.json
var toneFiles embed.FS

// StyleDetector reports whether text follows a style and how confident the detector is (0-1).
type StyleDetector func(text string) (followed bool, confidence float64)

// NamedStyleDetector is a StyleDetector with the keywords that select it.
type NamedStyleDetector struct {
	Name     string
	Keywords []string
	Detect   StyleDetector
}

// Antipattern flags a constraint category (e.g. jargon) when the constraint text
// mentions one of Keywords and Pattern matches the analyzed text.
type Antipattern struct {
	Name     string
	Keywords []string
	Pattern  *regexp.Regexp
}

// Registry supplies the detector tables used by the Analyzer.
type Registry interface {
	// ToneDetectors returns the detectors for a tone descriptor, and false if the tone is unknown.
	ToneDetectors(tone string) ([]*regexp.Regexp, bool)
	// StyleDetector returns the detector registered for a style description, if any.
	StyleDetector(style string) (NamedStyleDetector, bool)
	// Antipatterns returns the constraint antipattern table.
	Antipatterns() []Antipattern
}

// StaticRegistry is an immutable Registry built from fixed tables.
type StaticRegistry struct {
	tones        map[string][]*regexp.Regexp
	styles       []NamedStyleDetector
	antipatterns []Antipattern
}

// NewStaticRegistry builds a registry from a tone table of regular expressions (compiled
// case-insensitively), an ordered style detector list and an antipattern table.
func NewStaticRegistry(tones map[string][]string, styles []NamedStyleDetector, antipatterns []Antipattern) (*StaticRegistry, error) {
	compiled := make(map[string][]*regexp.Regexp, len(tones))
	for tone, patterns := range tones {
		key := strings.ToLower(strings.TrimSpace(tone))
		for _, p := range patterns {
			re, err := regexp.Compile("(?i)" + p)
			if err != nil {
				return nil, fmt.Errorf("invalid detector for tone %q: %w", tone, err)
			}
			compiled[key] = append(compiled[key], re)
		}
	}
	return &StaticRegistry{tones: compiled, styles: styles, antipatterns: antipatterns}, nil
}

// ToneDetectors implements Registry.
func (r *StaticRegistry) ToneDetectors(tone string) ([]*regexp.Regexp, bool) {
	detectors, ok := r.tones[strings.ToLower(strings.TrimSpace(tone))]
	return detectors, ok
}

// StyleDetector implements Registry. The first detector with a keyword contained in
// the lower-cased style description wins.
func (r *StaticRegistry) StyleDetector(style string) (NamedStyleDetector, bool) {
	lower := strings.ToLower(style)
	for _, d := range r.styles {
		for _, kw := range d.Keywords {
			if strings.Contains(lower, kw) {
				return d, true
			}
		}
	}
	return NamedStyleDetector{}, false
}

// Antipatterns implements Registry.
func (r *StaticRegistry) Antipatterns() []Antipattern {
	return r.antipatterns
}

var (
	defaultRegistry     *StaticRegistry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the built-in registry. It panics if the embedded tone table is invalid.
func DefaultRegistry() *StaticRegistry {
	defaultRegistryOnce.Do(func() {
		data, err := toneFiles.ReadFile("tones.json")
		if err != nil {
			panic(fmt.Sprintf("failed to read embedded tone table: %v", err))
		}
		var tones map[string][]string
		if err := json.Unmarshal(data, &tones); err != nil {
			panic(fmt.Sprintf("failed to parse embedded tone table: %v", err))
		}
		reg, err := NewStaticRegistry(tones, DefaultStyleDetectors(), DefaultAntipatterns())
		if err != nil {
			panic(fmt.Sprintf("failed to build default registry: %v", err))
		}
		defaultRegistry = reg
	})
	return defaultRegistry
}

// DefaultAntipatterns returns the overconfidence, jargon and condescension detectors.
func DefaultAntipatterns() []Antipattern {
	return []Antipattern{
		{
			Name:     "overconfidence",
			Keywords: []string{"overconfiden", "overclaim", "certainty"},
			Pattern:  regexp.MustCompile(`(?i)\b(definitely|certainly|guaranteed?|always works|without a doubt|absolutely|100% sure|never fails)\b`),
		},
		{
			Name:     "jargon",
			Keywords: []string{"jargon", "buzzword"},
			Pattern:  regexp.MustCompile(`(?i)\b(synergy|synergies|leverage|paradigm shift|circle back|move the needle|low-hanging fruit|best-in-class|thought leadership|value-add)\b`),
		},
		{
			Name:     "condescension",
			Keywords: []string{"condescen", "patroniz", "talk down"},
			Pattern:  regexp.MustCompile(`(?i)\b(obviously|as everyone knows|it's simple really|even a child|clearly you|you should know)\b`),
		},
	}
}
