// Package types provides type definitions for structured data used throughout the persona-validator system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "sort"

// Default marker weights applied when a marker omits its weight.
const (
	DefaultMustIncludeWeight   = 5.0
	DefaultShouldIncludeWeight = 3.0
	DefaultMustAvoidWeight     = 15.0
)

// PersonaDefinition is the parsed, structurally valid description of an expert persona.
type PersonaDefinition struct {
	Identity        Identity             `json:"identity" yaml:"identity"`
	Voice           Voice                `json:"voice" yaml:"voice"`
	Frameworks      map[string]Framework `json:"frameworks" yaml:"frameworks"`
	CaseStudies     []CaseStudy          `json:"case_studies,omitempty" yaml:"case_studies,omitempty"`
	Validation      Validation           `json:"validation" yaml:"validation"`
	SampleResponses []SampleResponse     `json:"sample_responses,omitempty" yaml:"sample_responses,omitempty"`
	Metadata        *Metadata            `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Identity describes who the persona is.
type Identity struct {
	Name        string   `json:"name" yaml:"name"`
	Role        string   `json:"role" yaml:"role"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Background  string   `json:"background,omitempty" yaml:"background,omitempty"`
	Expertise   []string `json:"expertise,omitempty" yaml:"expertise,omitempty"`
}

// Voice describes how the persona sounds. Each list element is an independent detection target.
type Voice struct {
	Tone        []string `json:"tone" yaml:"tone"`
	Phrases     []string `json:"phrases" yaml:"phrases"`
	Style       []string `json:"style" yaml:"style"`
	Constraints []string `json:"constraints,omitempty" yaml:"constraints,omitempty"`
}

// Framework is a named mental model the persona applies.
type Framework struct {
	Description    string             `json:"description" yaml:"description"`
	Concepts       map[string]Concept `json:"concepts" yaml:"concepts"`
	Questions      []string           `json:"questions,omitempty" yaml:"questions,omitempty"`
	WhenToUse      string             `json:"when_to_use,omitempty" yaml:"when_to_use,omitempty"`
	CommonMistakes []string           `json:"common_mistakes,omitempty" yaml:"common_mistakes,omitempty"`
}

// Concept is a single idea inside a framework.
type Concept struct {
	Definition string   `json:"definition" yaml:"definition"`
	Examples   []string `json:"examples,omitempty" yaml:"examples,omitempty"`
	Insight    string   `json:"insight,omitempty" yaml:"insight,omitempty"`
}

// CaseStudy is a worked example of the persona applying its frameworks.
type CaseStudy struct {
	Name        string   `json:"name" yaml:"name"`
	Context     string   `json:"context,omitempty" yaml:"context,omitempty"`
	Analysis    string   `json:"analysis,omitempty" yaml:"analysis,omitempty"`
	Outcome     string   `json:"outcome,omitempty" yaml:"outcome,omitempty"`
	Frameworks  []string `json:"frameworks,omitempty" yaml:"frameworks,omitempty"`
	KeyInsights []string `json:"key_insights,omitempty" yaml:"key_insights,omitempty"`
}

// Validation holds the weighted marker lists used for fidelity scoring.
type Validation struct {
	MustInclude   []ValidationMarker `json:"must_include" yaml:"must_include"`
	ShouldInclude []ValidationMarker `json:"should_include,omitempty" yaml:"should_include,omitempty"`
	MustAvoid     []ValidationMarker `json:"must_avoid,omitempty" yaml:"must_avoid,omitempty"`
}

// ValidationMarker is a weighted pattern (regular expression or literal text).
type ValidationMarker struct {
	Pattern     string   `json:"pattern" yaml:"pattern"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Weight      *float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
}

// WeightOr returns the marker weight, or def when the marker does not declare one.
func (m ValidationMarker) WeightOr(def float64) float64 {
	if m.Weight == nil {
		return def
	}
	return *m.Weight
}

// Label is the display name of the marker: its description if present, else its pattern.
func (m ValidationMarker) Label() string {
	if m.Description != "" {
		return m.Description
	}
	return m.Pattern
}

// SampleResponse pairs a prompt with an in-character and an out-of-character answer.
type SampleResponse struct {
	Question     string `json:"question" yaml:"question"`
	GoodResponse string `json:"good_response" yaml:"good_response"`
	BadResponse  string `json:"bad_response,omitempty" yaml:"bad_response,omitempty"`
	Explanation  string `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// Metadata carries bookkeeping fields from the persona file.
type Metadata struct {
	Version string   `json:"version,omitempty" yaml:"version,omitempty"`
	Author  string   `json:"author,omitempty" yaml:"author,omitempty"`
	Created string   `json:"created,omitempty" yaml:"created,omitempty"`
	Updated string   `json:"updated,omitempty" yaml:"updated,omitempty"`
	Tags    []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// NamedPersona binds a persona to the identifier callers use for it.
// Slices of NamedPersona keep insertion order, which is the ranking tie-break.
type NamedPersona struct {
	ID      string
	Persona *PersonaDefinition
}

// FrameworkNames returns the persona's framework names in sorted order.
func (p *PersonaDefinition) FrameworkNames() []string {
	names := make([]string, 0, len(p.Frameworks))
	for name := range p.Frameworks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ConceptNames returns the framework's concept names in sorted order.
func (f Framework) ConceptNames() []string {
	names := make([]string, 0, len(f.Concepts))
	for name := range f.Concepts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DisplayName returns the identity name, falling back to the given id.
func (p *PersonaDefinition) DisplayName(id string) string {
	if p.Identity.Name != "" {
		return p.Identity.Name
	}
	return id
}
