package main

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/persona-validator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoiceCommand(t *testing.T) {
	output, err := executeCommand(t, "", "voice", "-p", christensenPath(), "-t", goodText)

	require.NoError(t, err)
	assert.Contains(t, output, "VOICE ANALYSIS")
	assert.Contains(t, output, "NO VIOLATIONS FOUND")

	output, err = executeCommand(t, "", "voice", "-p", christensenPath(), "-t", goodText, "-f", "json")
	require.NoError(t, err)

	var result types.VoiceAnalysisResult
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, 2, result.TonesDetected)
	assert.Equal(t, 2, result.ExactPhrases)
	assert.Equal(t, 96, result.Score)
}

func TestVoiceCommand_Strict(t *testing.T) {
	output, err := executeCommand(t, "", "voice", "-p", christensenPath(), "-t", badText, "-f", "json")
	require.NoError(t, err)

	var result types.VoiceAnalysisResult
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	require.Len(t, result.ConstraintViolations, 1)
	assert.Contains(t, result.ConstraintViolations[0], "jargon detected")

	_, err = executeCommand(t, "", "voice", "-p", christensenPath(), "-t", badText, "--strict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 voice constraint violation(s) in strict mode")
}

func TestFrameworksCommand(t *testing.T) {
	output, err := executeCommand(t, "", "frameworks", "-p", christensenPath(), "-t", goodText, "-f", "json")
	require.NoError(t, err)

	var result types.FrameworkCoverageResult
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, 2, result.TotalFrameworks)
	require.Len(t, result.Frameworks, 2)
	assert.Equal(t, "disruptive_innovation", result.Frameworks[0].Name)
}

func TestSamplesCommand(t *testing.T) {
	output, err := executeCommand(t, "", "samples", "-p", christensenPath(), "-t", goodText)

	require.NoError(t, err)
	assert.Contains(t, output, "SAMPLE COMPARISON")
	assert.Contains(t, output, "Pass rate:  100%")
}

func TestSuggestCommand(t *testing.T) {
	output, err := executeCommand(t, "", "suggest", "-p", christensenPath(), "-t", badText, "-f", "json")
	require.NoError(t, err)

	var set suggestionSet
	require.NoError(t, json.Unmarshal([]byte(output), &set))
	assert.Equal(t, []string{
		"Include: Mentions disruption",
		"Include: Uses jobs-to-be-done framing",
		"Remove: Corporate jargon",
	}, set.Fidelity)
	assert.NotEmpty(t, set.Voice)
	assert.NotEmpty(t, set.Framework)
}

func TestSuggestCommand_Text(t *testing.T) {
	output, err := executeCommand(t, "", "suggest", "-p", christensenPath(), "-t", badText)

	require.NoError(t, err)
	assert.Contains(t, output, "FIDELITY SUGGESTIONS")
	assert.Contains(t, output, "1. Include: Mentions disruption")
	assert.Contains(t, output, "FRAMEWORK SUGGESTIONS")
}
