package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/jonathan/persona-validator/internal/config"
	"github.com/jonathan/persona-validator/internal/fidelity"
	"github.com/jonathan/persona-validator/internal/matching"
	"github.com/jonathan/persona-validator/internal/persona"
	"github.com/jonathan/persona-validator/internal/types"
	"github.com/spf13/cobra"
)

// settings is the resolved configuration for one command invocation.
type settings struct {
	cfg    config.Config
	dept   *types.DepartmentContext
	logger *slog.Logger
}

// loadSettings layers config file, flag overrides and defaults, then validates the result.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	var cfg config.Config
	if path := config.ResolvePath(configPath); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	// Override with command-line flags (flags take precedence)
	flags := cmd.Flags()
	if flags.Changed("department") {
		cfg.Department = departmentPath
	}
	if flags.Changed("format") {
		cfg.Format = outputFormat
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}
	if flags.Changed("strict") {
		cfg.StrictConstraints = strictConstraints
	}
	if flags.Changed("fidelity-threshold") {
		cfg.FidelityThreshold = fidelityThreshold
	}
	if flags.Changed("voice-threshold") {
		cfg.VoiceThreshold = voiceThreshold
	}
	if flags.Changed("framework-threshold") {
		cfg.FrameworkThreshold = frameworkThreshold
	}

	merged := cfg.MergeWithDefaults(config.Default())
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	s := &settings{cfg: merged, logger: newLogger(cmd.ErrOrStderr(), merged.Verbose)}

	if merged.Department != "" {
		dept, err := persona.LoadDepartmentContext(merged.Department)
		if err != nil {
			return nil, err
		}
		s.dept = dept
		s.logger.Debug("loaded department context", "path", merged.Department, "name", dept.Name)
		s.logLiteralMarkers(merged.Department, dept.AdditionalMustAvoid)
	}

	return s, nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// validationConfig returns the effective thresholds with department overrides applied.
func (s *settings) validationConfig() types.ValidationConfig {
	return s.dept.Apply(s.cfg.ToValidationConfig())
}

// fidelityOptions carries department bans and passing score into the fidelity scorer.
func (s *settings) fidelityOptions() *fidelity.Options {
	if s.dept == nil {
		return nil
	}
	return &fidelity.Options{
		AdditionalMustAvoid: s.dept.AdditionalMustAvoid,
		PassingScore:        s.dept.PassingScore,
	}
}

// format returns the configured output format, or text when the command does not support it.
func (s *settings) format(cmd *cobra.Command, supported ...string) (string, error) {
	f := s.cfg.Format
	if slices.Contains(supported, f) {
		return f, nil
	}
	if cmd.Flags().Changed("format") {
		return "", fmt.Errorf("%s does not support format %q (supported: %s)", cmd.Name(), f, strings.Join(supported, ", "))
	}
	s.logger.Debug("falling back to text output", "format", f, "command", cmd.Name())
	return config.FormatText, nil
}

// loadPersona loads the persona file at path and logs it.
func (s *settings) loadPersona(path string) (*types.PersonaDefinition, error) {
	def, err := persona.Load(path)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("loaded persona", "path", path, "id", persona.ID(path), "name", def.Identity.Name)
	s.logPersonaMarkers(path, def)
	return def, nil
}

// logPersonaMarkers reports every validation marker of def that matches literally.
func (s *settings) logPersonaMarkers(source string, def *types.PersonaDefinition) {
	s.logLiteralMarkers(source, def.Validation.MustInclude)
	s.logLiteralMarkers(source, def.Validation.ShouldInclude)
	s.logLiteralMarkers(source, def.Validation.MustAvoid)
}

// logLiteralMarkers logs markers whose pattern is not valid RE2 syntax. Such markers
// are matched as plain substrings.
func (s *settings) logLiteralMarkers(source string, markers []types.ValidationMarker) {
	for _, m := range markers {
		if matching.Compile(m.Pattern).IsLiteral() {
			s.logger.Debug("marker pattern is not a valid regular expression; matching literally",
				"source", source, "pattern", m.Pattern)
		}
	}
}

var (
	inputText string
	inputFile string
)

// addInputFlags registers --text and --in on cmd.
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&inputText, "text", "t", "", "Text to evaluate")
	cmd.Flags().StringVarP(&inputFile, "in", "i", "", "Path to a file containing the text to evaluate (- for stdin)")
	cmd.MarkFlagsMutuallyExclusive("text", "in")
	cmd.MarkFlagsOneRequired("text", "in")
}

// readInput returns the text given by --text or --in.
func readInput(cmd *cobra.Command) (string, error) {
	if cmd.Flags().Changed("text") {
		return inputText, nil
	}

	var (
		data []byte
		err  error
	)
	if inputFile == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(inputFile)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}

// loadPersonaSet loads personas from explicit file arguments, or from dir when none are given.
func (s *settings) loadPersonaSet(cmd *cobra.Command, args []string, dir string) ([]types.NamedPersona, error) {
	if len(args) > 0 {
		personas, err := persona.LoadNamed(args)
		if err != nil {
			return nil, err
		}
		s.logNamedMarkers(personas)
		return personas, nil
	}
	if dir == "" {
		dir = s.cfg.PersonaDir
	}
	if dir == "" {
		return nil, fmt.Errorf("no personas given: pass persona files as arguments or set --dir")
	}
	personas, err := persona.LoadDir(cmd.Context(), dir)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("loaded persona directory", "dir", dir, "count", len(personas))
	s.logNamedMarkers(personas)
	return personas, nil
}

func (s *settings) logNamedMarkers(personas []types.NamedPersona) {
	for _, p := range personas {
		s.logPersonaMarkers(p.ID, p.Persona)
	}
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, _ = fmt.Fprintln(w, string(data))
	return nil
}
