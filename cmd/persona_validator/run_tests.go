package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/persona-validator/internal/config"
	"github.com/jonathan/persona-validator/internal/persona"
	"github.com/jonathan/persona-validator/internal/testrunner"
	"github.com/spf13/cobra"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Run a generated test suite against a persona",
	Long: `Generates test cases from the persona's sample responses, voice and frameworks, adds
fixed edge cases (empty, trivial, jargon and off-topic text), runs them and reports the results.

The command exits with an error when the pass rate is below --min-pass-rate or any edge case
fails, so it can gate CI. Use --format junit to produce a report CI systems can ingest.`,
	RunE: runTests,
}

var (
	testPersonaPath string
	testMinPassRate float64
	testOutputFile  string
)

func init() {
	testCmd.Flags().StringVarP(&testPersonaPath, "persona", "p", "", "Path to persona YAML/JSON file (required)")
	testCmd.Flags().Float64Var(&testMinPassRate, "min-pass-rate", 0, "Fraction of tests that must pass (default 0.8)")
	testCmd.Flags().StringVarP(&testOutputFile, "out", "o", "", "Write the report to a file instead of stdout")

	if err := testCmd.MarkFlagRequired("persona"); err != nil {
		panic(fmt.Sprintf("failed to mark persona flag as required: %v", err))
	}

	rootCmd.AddCommand(testCmd)
}

func runTests(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("min-pass-rate") {
		if testMinPassRate < 0 || testMinPassRate > 1 {
			return fmt.Errorf("--min-pass-rate must be between 0 and 1, got %g", testMinPassRate)
		}
		s.cfg.MinPassRate = testMinPassRate
	}
	format, err := s.format(cmd, config.FormatText, config.FormatJSON, config.FormatJUnit)
	if err != nil {
		return err
	}

	def, err := s.loadPersona(testPersonaPath)
	if err != nil {
		return err
	}

	cfg := s.validationConfig()
	runner := testrunner.NewRunner(nil)
	cases := testrunner.GenerateTestCases(def, cfg)
	result := runner.Run(def.DisplayName(persona.ID(testPersonaPath)), def, cases)
	s.logger.Debug("ran test suite",
		"run_id", result.RunID,
		"total", result.Total,
		"passed", result.Passed,
		"pass_rate", result.PassRate)

	var report string
	switch format {
	case config.FormatJUnit:
		report, err = testrunner.GenerateJUnitReport(result)
	case config.FormatJSON:
		report, err = testrunner.GenerateJSONReport(result)
	default:
		report = testrunner.FormatTestResults(result)
	}
	if err != nil {
		return err
	}

	if err := writeReport(cmd.OutOrStdout(), report); err != nil {
		return err
	}

	if passed, reasons := testrunner.PassesCI(result, s.cfg.MinPassRate); !passed {
		return fmt.Errorf("test suite failed: %s", strings.Join(reasons, "; "))
	}
	return nil
}

func writeReport(stdout io.Writer, report string) error {
	if !strings.HasSuffix(report, "\n") {
		report += "\n"
	}
	if testOutputFile == "" {
		_, _ = fmt.Fprint(stdout, report)
		return nil
	}

	// Ensure output directory exists
	if err := os.MkdirAll(filepath.Dir(testOutputFile), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(testOutputFile, []byte(report), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(stdout, "Report written to: %s\n", testOutputFile)
	return nil
}
