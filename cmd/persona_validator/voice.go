package main

import (
	"fmt"

	"github.com/jonathan/persona-validator/internal/config"
	"github.com/jonathan/persona-validator/internal/observability"
	"github.com/jonathan/persona-validator/internal/voice"
	"github.com/spf13/cobra"
)

var voiceCmd = &cobra.Command{
	Use:   "voice",
	Short: "Analyze tone, phrases, style and constraints",
	Long: `Analyzes how well a text matches the persona's voice.

Tones contribute up to 40 points, characteristic phrases up to 30 (variants count half),
and style descriptions up to 30. Each violated voice constraint subtracts 10 points.`,
	RunE: runVoice,
}

var voicePersonaPath string

func init() {
	voiceCmd.Flags().StringVarP(&voicePersonaPath, "persona", "p", "", "Path to persona YAML/JSON file (required)")
	addInputFlags(voiceCmd)

	if err := voiceCmd.MarkFlagRequired("persona"); err != nil {
		panic(fmt.Sprintf("failed to mark persona flag as required: %v", err))
	}

	rootCmd.AddCommand(voiceCmd)
}

func runVoice(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	format, err := s.format(cmd, config.FormatText, config.FormatJSON)
	if err != nil {
		return err
	}

	def, err := s.loadPersona(voicePersonaPath)
	if err != nil {
		return err
	}
	text, err := readInput(cmd)
	if err != nil {
		return err
	}

	result := voice.Analyze(text, def)
	s.logger.Debug("analyzed voice", "score", result.Score, "violations", len(result.ConstraintViolations))

	out := cmd.OutOrStdout()
	if format == config.FormatJSON {
		if err := writeJSON(out, result); err != nil {
			return err
		}
	} else {
		observability.NewPrinter(out).PrintVoiceAnalysis(&result)
	}

	if s.cfg.StrictConstraints && len(result.ConstraintViolations) > 0 {
		return fmt.Errorf("%d voice constraint violation(s) in strict mode", len(result.ConstraintViolations))
	}
	return nil
}
