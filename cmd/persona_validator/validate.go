package main

import (
	"fmt"
	"os"

	"github.com/jonathan/persona-validator/internal/persona"
	"github.com/jonathan/persona-validator/internal/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate persona or department files against their schemas",
	Long: `Loads each file, checks it against the embedded JSON schema and reports every file that fails.
Exits with an error if any file is invalid.

With --schema, files are checked against the given schema file instead. YAML files
are converted to JSON first.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

var (
	validateDepartment bool
	validateSchemaPath string
)

func init() {
	validateCmd.Flags().BoolVar(&validateDepartment, "department-context", false, "Validate department context files instead of personas")
	validateCmd.Flags().StringVar(&validateSchemaPath, "schema", "", "Path to a JSON Schema file to validate JSON files against")
	validateCmd.MarkFlagsMutuallyExclusive("department-context", "schema")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	var schemaContent string
	if validateSchemaPath != "" {
		content, err := os.ReadFile(validateSchemaPath)
		if err != nil {
			return fmt.Errorf("failed to read schema: %w", err)
		}
		schemaContent = string(content)
	}

	failed := 0
	for _, path := range args {
		var err error
		switch {
		case validateSchemaPath != "" && persona.IsYAML(path):
			err = validateYAML(schemaContent, path)
		case validateSchemaPath != "":
			err = schemas.ValidateJSON(validateSchemaPath, path)
		case validateDepartment:
			_, err = persona.LoadDepartmentContext(path)
		default:
			_, err = persona.Load(path)
		}
		if err != nil {
			failed++
			_, _ = fmt.Fprintf(out, "✗ %s\n  %v\n", path, err)
			continue
		}
		_, _ = fmt.Fprintf(out, "✓ %s\n", path)
	}

	if failed > 0 {
		return fmt.Errorf("validation failed: %d of %d file(s) invalid", failed, len(args))
	}
	_, _ = fmt.Fprintf(out, "Validation passed: %d file(s)\n", len(args))
	return nil
}

// validateYAML checks a YAML document against schemaContent.
func validateYAML(schemaContent, path string) error {
	doc, err := persona.ReadYAMLAsJSON(path)
	if err != nil {
		return err
	}
	return schemas.ValidateJSONString(schemaContent, string(doc))
}
