package main

import (
	"fmt"

	"github.com/jonathan/persona-validator/internal/comparison"
	"github.com/jonathan/persona-validator/internal/config"
	"github.com/jonathan/persona-validator/internal/observability"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare [persona files...]",
	Short: "Rank personas by how well a text matches each",
	Long: `Scores a text against every persona and ranks them by weighted quality score.

Personas are read from the files given as arguments, or from every .yaml, .yml and .json
file in --dir (or persona_dir from the config file) when no arguments are given. A persona's
ID is its file name without extension.`,
	RunE: runCompare,
}

var compareDir string

func init() {
	compareCmd.Flags().StringVar(&compareDir, "dir", "", "Directory of persona files")
	addInputFlags(compareCmd)

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	format, err := s.format(cmd, config.FormatText, config.FormatJSON)
	if err != nil {
		return err
	}

	personas, err := s.loadPersonaSet(cmd, args, compareDir)
	if err != nil {
		return err
	}
	if len(personas) == 0 {
		return fmt.Errorf("no personas found to compare")
	}
	text, err := readInput(cmd)
	if err != nil {
		return err
	}

	weights := s.validationConfig().Weights
	result := comparison.CompareAcrossPersonas(text, personas, &weights)
	s.logger.Debug("compared personas", "count", len(personas), "best_match", result.BestMatch)

	out := cmd.OutOrStdout()
	if format == config.FormatJSON {
		return writeJSON(out, result)
	}
	observability.NewPrinter(out).PrintComparison(&result)
	return nil
}
