package main

import (
	"fmt"

	"github.com/jonathan/persona-validator/internal/config"
	"github.com/jonathan/persona-validator/internal/fidelity"
	"github.com/jonathan/persona-validator/internal/framework"
	"github.com/jonathan/persona-validator/internal/observability"
	"github.com/jonathan/persona-validator/internal/voice"
	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest edits that would bring a text closer to a persona",
	Long:  "Lists fidelity, voice and framework suggestions for a text: missing required patterns, forbidden patterns to remove, tones and phrases to add, and frameworks to reference.",
	RunE:  runSuggest,
}

var suggestPersonaPath string

func init() {
	suggestCmd.Flags().StringVarP(&suggestPersonaPath, "persona", "p", "", "Path to persona YAML/JSON file (required)")
	addInputFlags(suggestCmd)

	if err := suggestCmd.MarkFlagRequired("persona"); err != nil {
		panic(fmt.Sprintf("failed to mark persona flag as required: %v", err))
	}

	rootCmd.AddCommand(suggestCmd)
}

type suggestionSet struct {
	Fidelity  []string `json:"fidelity"`
	Voice     []string `json:"voice"`
	Framework []string `json:"framework"`
}

func runSuggest(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	format, err := s.format(cmd, config.FormatText, config.FormatJSON)
	if err != nil {
		return err
	}

	def, err := s.loadPersona(suggestPersonaPath)
	if err != nil {
		return err
	}
	text, err := readInput(cmd)
	if err != nil {
		return err
	}

	set := suggestionSet{
		Fidelity:  fidelity.SuggestionsFor(fidelity.Score(text, def, s.fidelityOptions())),
		Voice:     voice.Suggestions(voice.Analyze(text, def)),
		Framework: framework.Suggestions(framework.Analyze(text, def)),
	}

	out := cmd.OutOrStdout()
	if format == config.FormatJSON {
		return writeJSON(out, set)
	}

	printer := observability.NewPrinter(out)
	printer.PrintSuggestions("FIDELITY SUGGESTIONS", set.Fidelity)
	printer.PrintSuggestions("VOICE SUGGESTIONS", set.Voice)
	printer.PrintSuggestions("FRAMEWORK SUGGESTIONS", set.Framework)
	return nil
}
