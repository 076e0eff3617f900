package main

import (
	"fmt"
	"strings"

	"github.com/jonathan/persona-validator/internal/config"
	"github.com/jonathan/persona-validator/internal/reporting"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a quality report for a text",
	Long: `Generates a quality report combining fidelity, voice and framework scores into an
overall weighted score with prioritized recommendations.

With --check the command exits with an error when any score is below its threshold, or when
--strict is set and the text violates a voice constraint.`,
	RunE: runReport,
}

var (
	reportPersonaPath string
	reportCheck       bool
	reportSummary     bool
)

func init() {
	reportCmd.Flags().StringVarP(&reportPersonaPath, "persona", "p", "", "Path to persona YAML/JSON file (required)")
	reportCmd.Flags().BoolVar(&reportCheck, "check", false, "Exit with an error when the report fails its thresholds")
	reportCmd.Flags().BoolVar(&reportSummary, "summary", false, "Print a one-line summary instead of the full report")
	addInputFlags(reportCmd)

	if err := reportCmd.MarkFlagRequired("persona"); err != nil {
		panic(fmt.Sprintf("failed to mark persona flag as required: %v", err))
	}

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	format, err := s.format(cmd, config.FormatText, config.FormatJSON)
	if err != nil {
		return err
	}

	def, err := s.loadPersona(reportPersonaPath)
	if err != nil {
		return err
	}
	text, err := readInput(cmd)
	if err != nil {
		return err
	}

	cfg := s.cfg.ToValidationConfig()
	report := reporting.GenerateQualityReport(text, def, &cfg, s.dept)
	s.logger.Debug("generated quality report",
		"report_id", report.ID,
		"overall", report.Overall,
		"recommendations", len(report.Recommendations))

	out := cmd.OutOrStdout()
	switch {
	case reportSummary:
		_, _ = fmt.Fprintln(out, reporting.GenerateSummary(report))
	case format == config.FormatJSON:
		data, err := reporting.GenerateJSONReport(report)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, data)
	default:
		_, _ = fmt.Fprint(out, reporting.FormatReport(report))
	}

	if !reportCheck {
		return nil
	}
	effective := s.validationConfig()
	if passed, reasons := reporting.PassesQualityThresholds(report, &effective); !passed {
		return fmt.Errorf("quality check failed: %s", strings.Join(reasons, "; "))
	}
	return nil
}
