package main

import (
	"fmt"

	"github.com/jonathan/persona-validator/internal/comparison"
	"github.com/jonathan/persona-validator/internal/config"
	"github.com/jonathan/persona-validator/internal/observability"
	"github.com/jonathan/persona-validator/internal/types"
	"github.com/spf13/cobra"
)

var similarityCmd = &cobra.Command{
	Use:   "similarity [persona files...]",
	Short: "Compare personas with each other",
	Long: `Computes pairwise persona similarity from voice, frameworks and validation markers,
reports the most similar pair, and lists what makes each persona distinct.

Personas are read the same way as for compare. At least two are required.`,
	RunE: runSimilarity,
}

var similarityDir string

func init() {
	similarityCmd.Flags().StringVar(&similarityDir, "dir", "", "Directory of persona files")

	rootCmd.AddCommand(similarityCmd)
}

type similarityOutput struct {
	Matrix          types.SimilarityMatrix         `json:"matrix"`
	MostSimilar     types.PersonaSimilarity        `json:"most_similar"`
	Differentiators []types.PersonaDifferentiators `json:"differentiators"`
}

func runSimilarity(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	format, err := s.format(cmd, config.FormatText, config.FormatJSON)
	if err != nil {
		return err
	}

	personas, err := s.loadPersonaSet(cmd, args, similarityDir)
	if err != nil {
		return err
	}
	pair, ok := comparison.MostSimilarPair(personas)
	if !ok {
		return fmt.Errorf("similarity needs at least two personas, got %d", len(personas))
	}

	result := similarityOutput{
		Matrix:          comparison.GenerateSimilarityMatrix(personas),
		MostSimilar:     pair,
		Differentiators: comparison.IdentifyDifferentiators(personas),
	}
	s.logger.Debug("computed persona similarity", "count", len(personas),
		"pair", pair.PersonaA+"/"+pair.PersonaB, "overall", pair.OverallSimilarity)

	out := cmd.OutOrStdout()
	if format == config.FormatJSON {
		return writeJSON(out, result)
	}

	printer := observability.NewPrinter(out)
	printer.PrintSimilarityMatrix(&result.Matrix)
	printer.PrintSimilarity(&result.MostSimilar)
	printer.PrintDifferentiators(result.Differentiators)
	return nil
}
