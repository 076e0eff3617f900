// Package schemas holds the JSON Schemas for persona and department context files.
package schemas

import "embed"

// Schema file names.
const (
	Persona           = "persona.schema.json"
	DepartmentContext = "department_context.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Read returns the content of the named schema.
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}
