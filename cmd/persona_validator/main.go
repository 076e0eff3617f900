// Package main provides the entry point for the persona_validator CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "persona_validator",
	Short: "Persona fidelity, voice and framework scoring",
	Long: `persona_validator scores how faithfully a piece of text represents a persona.

It checks required, encouraged and forbidden patterns (fidelity), tone, phrases,
style and constraints (voice), and use of the persona's thinking frameworks. It can
rank a text across many personas, compare personas with each other, produce quality
reports and run generated test suites for CI.

Configuration can be loaded from a JSON file using --config or the
PERSONA_VALIDATOR_CONFIG environment variable. Command-line flags override config file values.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	configPath         string
	departmentPath     string
	outputFormat       string
	verbose            bool
	strictConstraints  bool
	fidelityThreshold  int
	voiceThreshold     int
	frameworkThreshold int
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	flags.StringVarP(&departmentPath, "department", "d", "", "Path to a department context YAML/JSON file")
	flags.StringVarP(&outputFormat, "format", "f", "", "Output format: text or json (test also accepts junit)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
	flags.BoolVar(&strictConstraints, "strict", false, "Treat any voice constraint violation as a failure")
	flags.IntVar(&fidelityThreshold, "fidelity-threshold", 0, "Minimum fidelity score (default 70)")
	flags.IntVar(&voiceThreshold, "voice-threshold", 0, "Minimum voice score (default 60)")
	flags.IntVar(&frameworkThreshold, "framework-threshold", 0, "Minimum framework score (default 50)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
