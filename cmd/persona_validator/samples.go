package main

import (
	"fmt"

	"github.com/jonathan/persona-validator/internal/config"
	"github.com/jonathan/persona-validator/internal/fidelity"
	"github.com/jonathan/persona-validator/internal/observability"
	"github.com/spf13/cobra"
)

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "Compare a text with the persona's sample responses",
	Long:  "Scores the text and each sample's good and bad responses, and reports whether the text lands closer to the good response than to the bad one.",
	RunE:  runSamples,
}

var samplesPersonaPath string

func init() {
	samplesCmd.Flags().StringVarP(&samplesPersonaPath, "persona", "p", "", "Path to persona YAML/JSON file (required)")
	addInputFlags(samplesCmd)

	if err := samplesCmd.MarkFlagRequired("persona"); err != nil {
		panic(fmt.Sprintf("failed to mark persona flag as required: %v", err))
	}

	rootCmd.AddCommand(samplesCmd)
}

func runSamples(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	format, err := s.format(cmd, config.FormatText, config.FormatJSON)
	if err != nil {
		return err
	}

	def, err := s.loadPersona(samplesPersonaPath)
	if err != nil {
		return err
	}
	text, err := readInput(cmd)
	if err != nil {
		return err
	}

	result := fidelity.ValidateAgainstSamples(text, def)
	s.logger.Debug("compared with samples", "samples", len(result.Results), "pass_rate", result.PassRate)

	out := cmd.OutOrStdout()
	if format == config.FormatJSON {
		return writeJSON(out, result)
	}
	observability.NewPrinter(out).PrintSampleValidation(&result)
	return nil
}
