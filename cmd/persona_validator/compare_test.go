package main

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/persona-validator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareCommand_Files(t *testing.T) {
	output, err := executeCommand(t, "", "compare", "-t", goodText,
		christensenPath(), testdataPath("personas", "thiel.json"))

	require.NoError(t, err)
	assert.Contains(t, output, "PERSONA RANKING")
	assert.Contains(t, output, "Best match: christensen")
}

func TestCompareCommand_Dir(t *testing.T) {
	output, err := executeCommand(t, "", "compare", "-t", goodText, "--dir", testdataPath("personas"), "-f", "json")
	require.NoError(t, err)

	var result types.CrossPersonaComparison
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	require.Len(t, result.Results, 2)
	assert.Equal(t, "christensen", result.BestMatch)
	assert.Equal(t, "christensen", result.Results[0].PersonaID)
	assert.GreaterOrEqual(t, result.Results[0].QualityScore, result.Results[1].QualityScore)
}

func TestCompareCommand_PersonaDirFromConfig(t *testing.T) {
	cfgPath := writeFile(t, t.TempDir(), "config.json", `{"persona_dir": "`+testdataPath("personas")+`"}`)

	output, err := executeCommand(t, "", "compare", "-t", goodText, "--config", cfgPath)

	require.NoError(t, err)
	assert.Contains(t, output, "Best match: christensen")
}

func TestCompareCommand_Errors(t *testing.T) {
	_, err := executeCommand(t, "", "compare", "-t", goodText)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no personas given")

	_, err = executeCommand(t, "", "compare", "-t", goodText, "--dir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no personas found")
}

func TestSimilarityCommand(t *testing.T) {
	output, err := executeCommand(t, "", "similarity", christensenPath(), testdataPath("personas", "thiel.json"))

	require.NoError(t, err)
	assert.Contains(t, output, "PERSONA SIMILARITY")
	assert.Contains(t, output, "christensen ↔ thiel")
	assert.Contains(t, output, "DIFFERENTIATORS")
}

func TestSimilarityCommand_JSON(t *testing.T) {
	output, err := executeCommand(t, "", "similarity", "--dir", testdataPath("personas"), "-f", "json")
	require.NoError(t, err)

	var result similarityOutput
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, []string{"christensen", "thiel"}, result.Matrix.PersonaIDs)
	assert.Equal(t, 100, result.Matrix.Values[0][0])
	assert.Equal(t, result.Matrix.Values[0][1], result.Matrix.Values[1][0])
	assert.Equal(t, "christensen", result.MostSimilar.PersonaA)
	assert.Equal(t, []string{"analytical"}, result.MostSimilar.SharedTones)
	require.Len(t, result.Differentiators, 2)
	assert.Equal(t, []string{"zero_to_one"}, result.Differentiators[1].UniqueFrameworks)
}

func TestSimilarityCommand_NeedsTwoPersonas(t *testing.T) {
	_, err := executeCommand(t, "", "similarity", christensenPath())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least two personas, got 1")
}
