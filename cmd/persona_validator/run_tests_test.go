package main

import (
	"encoding/json"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/persona-validator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// weakPersona has one sample whose good response misses every required pattern,
// so its suite is seven cases with exactly one failure.
const weakPersona = `identity:
  name: Weak Persona
voice: {}
validation:
  must_include:
    - pattern: xyzzy
  should_include:
    - pattern: plugh
sample_responses:
  - question: Anything?
    good_response: hello there
`

func TestTestCommand_Text(t *testing.T) {
	path := writeFile(t, t.TempDir(), "weak.yaml", weakPersona)

	output, err := executeCommand(t, "", "test", "-p", path)

	require.NoError(t, err)
	assert.Contains(t, output, "PERSONA TEST SUITE: Weak Persona")
	assert.Contains(t, output, "FIDELITY (0/1)")
	assert.Contains(t, output, "EDGE_CASE (4/4)")
	assert.Contains(t, output, "Total: 7  Passed: 6  Failed: 1")
}

func TestTestCommand_MinPassRate(t *testing.T) {
	path := writeFile(t, t.TempDir(), "weak.yaml", weakPersona)

	_, err := executeCommand(t, "", "test", "-p", path, "--min-pass-rate", "0.9")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Pass rate 85.7% is below minimum 90.0%")
}

func TestTestCommand_MinPassRateFromConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "weak.yaml", weakPersona)
	cfgPath := writeFile(t, dir, "config.json", `{"min_pass_rate": 0.95}`)

	_, err := executeCommand(t, "", "test", "-p", path, "--config", cfgPath)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "below minimum 95.0%")
}

func TestTestCommand_BundledPersonasPassOwnSuites(t *testing.T) {
	for _, name := range []string{"christensen.yaml", "thiel.json"} {
		t.Run(name, func(t *testing.T) {
			output, err := executeCommand(t, "", "test", "-p", testdataPath("personas", name), "-f", "json")
			require.NoError(t, err)

			var result types.TestSuiteResult
			require.NoError(t, json.Unmarshal([]byte(output), &result))
			for _, r := range result.Results {
				assert.True(t, r.Passed, "%s: %s", r.TestCase.ID, r.Reason)
			}
			assert.Equal(t, 0, result.Failed)
			assert.Equal(t, 8, result.Total)
		})
	}
}

func TestTestCommand_InvalidMinPassRate(t *testing.T) {
	_, err := executeCommand(t, "", "test", "-p", christensenPath(), "--min-pass-rate", "80")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--min-pass-rate must be between 0 and 1")
}

func TestTestCommand_JSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "weak.yaml", weakPersona)

	output, err := executeCommand(t, "", "test", "-p", path, "-f", "json")
	require.NoError(t, err)

	var result types.TestSuiteResult
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, "Weak Persona", result.PersonaName)
	assert.Equal(t, 7, result.Total)
	assert.Len(t, result.FailedInCategory(types.CategoryEdgeCase), 0)
	require.Len(t, result.FailedInCategory(types.CategoryFidelity), 1)
	assert.Equal(t, "score 0 below minimum 70", result.FailedInCategory(types.CategoryFidelity)[0].Reason)
}

func TestTestCommand_JUnitToFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "weak.yaml", weakPersona)
	outPath := filepath.Join(dir, "reports", "junit.xml")

	output, err := executeCommand(t, "", "test", "-p", path, "-f", "junit", "--out", outPath)
	require.NoError(t, err)
	assert.Contains(t, output, "Report written to: "+outPath)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), xml.Header))

	var suites struct {
		Name  string `xml:"name,attr"`
		Tests int    `xml:"tests,attr"`
	}
	require.NoError(t, xml.Unmarshal(data, &suites))
	assert.Equal(t, "persona-validator", suites.Name)
	assert.Equal(t, 7, suites.Tests)
	assert.Contains(t, string(data), `classname="persona.weak_persona.fidelity"`)
	assert.Contains(t, string(data), `type="ExpectationMismatch"`)
}

func TestScoreCommand_UnsupportedConfigFormatFallsBackToText(t *testing.T) {
	cfgPath := writeFile(t, t.TempDir(), "config.json", `{"format": "junit"}`)

	output, err := executeCommand(t, "", "score", "-p", christensenPath(), "-t", goodText, "--config", cfgPath)

	require.NoError(t, err)
	assert.Contains(t, output, "FIDELITY SCORE")
}
