package main

import (
	"fmt"

	"github.com/jonathan/persona-validator/internal/config"
	"github.com/jonathan/persona-validator/internal/fidelity"
	"github.com/jonathan/persona-validator/internal/observability"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a text's fidelity to a persona",
	Long: `Scores a text against a persona's must-include, should-include and must-avoid patterns.

Must-include markers contribute up to 60 points, should-include markers up to 30, and every
must-avoid hit subtracts its weight. The text passes when it reaches the passing score (70 unless
a department context overrides it) and matches at least 80% of the must-include markers.`,
	RunE: runScore,
}

var (
	scorePersonaPath string
	scoreCheck       bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scorePersonaPath, "persona", "p", "", "Path to persona YAML/JSON file (required)")
	scoreCmd.Flags().BoolVar(&scoreCheck, "check", false, "Exit with an error when the text does not pass")
	addInputFlags(scoreCmd)

	if err := scoreCmd.MarkFlagRequired("persona"); err != nil {
		panic(fmt.Sprintf("failed to mark persona flag as required: %v", err))
	}

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	format, err := s.format(cmd, config.FormatText, config.FormatJSON)
	if err != nil {
		return err
	}

	def, err := s.loadPersona(scorePersonaPath)
	if err != nil {
		return err
	}
	text, err := readInput(cmd)
	if err != nil {
		return err
	}

	score := fidelity.Score(text, def, s.fidelityOptions())
	s.logger.Debug("scored fidelity", "score", score.Score, "passed", score.Passed)

	out := cmd.OutOrStdout()
	if format == config.FormatJSON {
		if err := writeJSON(out, score); err != nil {
			return err
		}
	} else {
		observability.NewPrinter(out).PrintFidelityScore(&score)
	}

	if scoreCheck && !score.Passed {
		return fmt.Errorf("fidelity check failed: %s", score.Assessment)
	}
	return nil
}
