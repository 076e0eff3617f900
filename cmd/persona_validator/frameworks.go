package main

import (
	"fmt"

	"github.com/jonathan/persona-validator/internal/config"
	"github.com/jonathan/persona-validator/internal/framework"
	"github.com/jonathan/persona-validator/internal/observability"
	"github.com/spf13/cobra"
)

var frameworksCmd = &cobra.Command{
	Use:   "frameworks",
	Short: "Measure coverage of the persona's thinking frameworks",
	Long:  "Reports which of the persona's frameworks the text references, which concepts it mentions and which framework questions it uses.",
	RunE:  runFrameworks,
}

var frameworksPersonaPath string

func init() {
	frameworksCmd.Flags().StringVarP(&frameworksPersonaPath, "persona", "p", "", "Path to persona YAML/JSON file (required)")
	addInputFlags(frameworksCmd)

	if err := frameworksCmd.MarkFlagRequired("persona"); err != nil {
		panic(fmt.Sprintf("failed to mark persona flag as required: %v", err))
	}

	rootCmd.AddCommand(frameworksCmd)
}

func runFrameworks(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	format, err := s.format(cmd, config.FormatText, config.FormatJSON)
	if err != nil {
		return err
	}

	def, err := s.loadPersona(frameworksPersonaPath)
	if err != nil {
		return err
	}
	text, err := readInput(cmd)
	if err != nil {
		return err
	}

	result := framework.Analyze(text, def)
	s.logger.Debug("analyzed frameworks", "score", result.Score, "referenced", result.FrameworksReferenced)

	out := cmd.OutOrStdout()
	if format == config.FormatJSON {
		return writeJSON(out, result)
	}
	observability.NewPrinter(out).PrintFrameworkCoverage(&result)
	return nil
}
