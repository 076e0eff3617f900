// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/persona-validator/internal/types"
)

// EnvConfigPath names the environment variable consulted when no --config flag is given.
const EnvConfigPath = "PERSONA_VALIDATOR_CONFIG"

// Output formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJUnit = "junit"
)

// DefaultMinPassRate is the CI pass-rate floor used when the config does not set one.
const DefaultMinPassRate = 0.8

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; zero values mean "not set" and fall back to defaults or flags.
type Config struct {
	// Paths
	PersonaDir string `json:"persona_dir,omitempty"` // Directory of persona YAML/JSON files
	Department string `json:"department,omitempty"`  // Department context file

	// Thresholds
	FidelityThreshold  int                 `json:"fidelity_threshold,omitempty" validate:"gte=0,lte=100"`
	VoiceThreshold     int                 `json:"voice_threshold,omitempty" validate:"gte=0,lte=100"`
	FrameworkThreshold int                 `json:"framework_threshold,omitempty" validate:"gte=0,lte=100"`
	Weights            *types.ScoreWeights `json:"weights,omitempty"`
	StrictConstraints  bool                `json:"strict_constraints,omitempty"`

	// CI
	MinPassRate float64 `json:"min_pass_rate,omitempty" validate:"gte=0,lte=1"` // Fraction of tests that must pass

	// Output
	Format  string `json:"format,omitempty" validate:"omitempty,oneof=text json junit"`
	Verbose bool   `json:"verbose,omitempty"` // Print debug logs
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		FidelityThreshold:  types.DefaultFidelityThreshold,
		VoiceThreshold:     types.DefaultVoiceThreshold,
		FrameworkThreshold: types.DefaultFrameworkThreshold,
		MinPassRate:        DefaultMinPassRate,
		Format:             FormatText,
	}
}

// ResolvePath returns flagPath if set, otherwise the value of EnvConfigPath.
func ResolvePath(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	return os.Getenv(EnvConfigPath)
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values and that referenced paths exist.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.PersonaDir != "" {
		info, err := os.Stat(c.PersonaDir)
		if os.IsNotExist(err) {
			return fmt.Errorf("config error: persona directory not found: %s", c.PersonaDir)
		}
		if err == nil && !info.IsDir() {
			return fmt.Errorf("config error: persona_dir is not a directory: %s", c.PersonaDir)
		}
	}

	if c.Department != "" {
		if _, err := os.Stat(c.Department); os.IsNotExist(err) {
			return fmt.Errorf("config error: department file not found: %s", c.Department)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.PersonaDir == "" {
		result.PersonaDir = defaults.PersonaDir
	}
	if result.Department == "" {
		result.Department = defaults.Department
	}
	if result.Format == "" {
		result.Format = defaults.Format
	}

	// Int fields: use default if zero
	if result.FidelityThreshold == 0 {
		result.FidelityThreshold = defaults.FidelityThreshold
	}
	if result.VoiceThreshold == 0 {
		result.VoiceThreshold = defaults.VoiceThreshold
	}
	if result.FrameworkThreshold == 0 {
		result.FrameworkThreshold = defaults.FrameworkThreshold
	}

	if result.Weights == nil && defaults.Weights != nil {
		w := *defaults.Weights
		result.Weights = &w
	}

	if result.MinPassRate == 0 {
		if defaults.MinPassRate > 0 {
			result.MinPassRate = defaults.MinPassRate
		} else {
			result.MinPassRate = DefaultMinPassRate
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ToValidationConfig converts the thresholds and weights into an engine ValidationConfig.
func (c *Config) ToValidationConfig() types.ValidationConfig {
	cfg := types.DefaultValidationConfig()
	if c.FidelityThreshold != 0 {
		cfg.FidelityThreshold = c.FidelityThreshold
	}
	if c.VoiceThreshold != 0 {
		cfg.VoiceThreshold = c.VoiceThreshold
	}
	if c.FrameworkThreshold != 0 {
		cfg.FrameworkThreshold = c.FrameworkThreshold
	}
	if c.Weights != nil {
		cfg.Weights = *c.Weights
	}
	cfg.StrictConstraints = c.StrictConstraints
	return cfg
}
