package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/persona-validator/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const (
	goodText = "Are these customers overserved by current offerings? I wonder what job did they " +
		"hire it for, because the theory suggests incumbents chase sustaining innovation for " +
		"their best customers while low-end disruption goes unanswered. For example, steel " +
		"minimills started with rebar, and the evidence shows integrated mills retreated " +
		"upmarket. What job is the customer hiring this product to do? The jobs to be done " +
		"view explains why disruptive innovation catches incumbents off guard."
	badText = "Leaders fail because they lack synergy and vision."
)

func testdataPath(parts ...string) string {
	return filepath.Join(append([]string{"..", "..", "testdata"}, parts...)...)
}

func christensenPath() string {
	return testdataPath("personas", "christensen.yaml")
}

// executeCommand runs rootCmd in-process with fresh flag state and returns stdout.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvConfigPath, "")

	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
