// Package types provides type definitions for structured data used throughout the persona-validator system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// Default thresholds and weights.
const (
	DefaultFidelityThreshold  = 70
	DefaultVoiceThreshold     = 60
	DefaultFrameworkThreshold = 50
	DefaultPassingScore       = 70
)

// ScoreWeights controls how the three component scores combine.
type ScoreWeights struct {
	Fidelity  float64 `json:"fidelity" yaml:"fidelity" validate:"gte=0,lte=1"`
	Voice     float64 `json:"voice" yaml:"voice" validate:"gte=0,lte=1"`
	Framework float64 `json:"framework" yaml:"framework" validate:"gte=0,lte=1"`
}

// DefaultScoreWeights returns the 0.5/0.3/0.2 weighting.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{Fidelity: 0.5, Voice: 0.3, Framework: 0.2}
}

// ValidationConfig holds per-call thresholds for quality reports and test suites.
type ValidationConfig struct {
	FidelityThreshold  int          `json:"fidelity_threshold" yaml:"fidelity_threshold" validate:"gte=0,lte=100"`
	VoiceThreshold     int          `json:"voice_threshold" yaml:"voice_threshold" validate:"gte=0,lte=100"`
	FrameworkThreshold int          `json:"framework_threshold" yaml:"framework_threshold" validate:"gte=0,lte=100"`
	StrictConstraints  bool         `json:"strict_constraints" yaml:"strict_constraints"`
	Weights            ScoreWeights `json:"weights" yaml:"weights"`
}

// DefaultValidationConfig returns the default thresholds (70/60/50) and weights.
func DefaultValidationConfig() ValidationConfig {
	return ValidationConfig{
		FidelityThreshold:  DefaultFidelityThreshold,
		VoiceThreshold:     DefaultVoiceThreshold,
		FrameworkThreshold: DefaultFrameworkThreshold,
		Weights:            DefaultScoreWeights(),
	}
}

// Validate validates the ValidationConfig using the validator.
func (c *ValidationConfig) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// DepartmentContext carries department-wide overrides resolved by an external policy layer.
type DepartmentContext struct {
	Name                string             `json:"name,omitempty" yaml:"name,omitempty"`
	AdditionalMustAvoid []ValidationMarker `json:"additional_must_avoid,omitempty" yaml:"additional_must_avoid,omitempty"`
	PassingScore        *int               `json:"passing_score,omitempty" yaml:"passing_score,omitempty" validate:"omitempty,gte=0,lte=100"`
	Weights             *ScoreWeights      `json:"weights,omitempty" yaml:"weights,omitempty"`
	FidelityThreshold   *int               `json:"fidelity_threshold,omitempty" yaml:"fidelity_threshold,omitempty" validate:"omitempty,gte=0,lte=100"`
	VoiceThreshold      *int               `json:"voice_threshold,omitempty" yaml:"voice_threshold,omitempty" validate:"omitempty,gte=0,lte=100"`
	FrameworkThreshold  *int               `json:"framework_threshold,omitempty" yaml:"framework_threshold,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// Validate validates the DepartmentContext using the validator.
func (d *DepartmentContext) Validate() error {
	validate := validator.New()
	return validate.Struct(d)
}

// Apply returns cfg with the department's threshold and weight overrides applied.
func (d *DepartmentContext) Apply(cfg ValidationConfig) ValidationConfig {
	if d == nil {
		return cfg
	}
	if d.Weights != nil {
		cfg.Weights = *d.Weights
	}
	if d.FidelityThreshold != nil {
		cfg.FidelityThreshold = *d.FidelityThreshold
	}
	if d.VoiceThreshold != nil {
		cfg.VoiceThreshold = *d.VoiceThreshold
	}
	if d.FrameworkThreshold != nil {
		cfg.FrameworkThreshold = *d.FrameworkThreshold
	}
	return cfg
}
