package persona

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonathan/persona-validator/internal/schemas"
	"github.com/jonathan/persona-validator/internal/types"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// maxConcurrentLoads bounds the number of persona files read at once.
const maxConcurrentLoads = 8

// Load reads a persona file, validates it against the persona schema and normalizes it.
// Files ending in .yaml or .yml are decoded as YAML; everything else as JSON.
func Load(path string) (*types.PersonaDefinition, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}
	return Parse(path, content)
}

// Parse decodes and validates persona content. name is used for error messages and
// to pick the decoder by extension.
func Parse(name string, content []byte) (*types.PersonaDefinition, error) {
	jsonContent, err := toJSON(name, content)
	if err != nil {
		return nil, err
	}

	if err := schemas.ValidatePersona(jsonContent); err != nil {
		return nil, &LoadError{Path: name, Message: "persona does not match schema", Cause: err}
	}

	var def types.PersonaDefinition
	if err := json.Unmarshal(jsonContent, &def); err != nil {
		return nil, &LoadError{Path: name, Message: "failed to unmarshal persona", Cause: err}
	}

	Normalize(&def)
	return &def, nil
}

// LoadDir loads every persona file in dir concurrently. The result is ordered by file
// name and each persona's ID is its file name without extension.
func LoadDir(ctx context.Context, dir string) ([]types.NamedPersona, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{Path: dir, Message: "failed to read directory", Cause: err}
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !IsPersonaFile(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	personas := make([]types.NamedPersona, len(paths))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)

	for i, path := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			def, err := Load(path)
			if err != nil {
				return err
			}
			personas[i] = types.NamedPersona{ID: ID(path), Persona: def}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return personas, nil
}

// LoadNamed loads each path and binds it to its file-derived ID, preserving argument order.
func LoadNamed(paths []string) ([]types.NamedPersona, error) {
	personas := make([]types.NamedPersona, 0, len(paths))
	for _, path := range paths {
		def, err := Load(path)
		if err != nil {
			return nil, err
		}
		personas = append(personas, types.NamedPersona{ID: ID(path), Persona: def})
	}
	return personas, nil
}

// LoadDepartmentContext reads and validates a department context file.
func LoadDepartmentContext(path string) (*types.DepartmentContext, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}

	jsonContent, err := toJSON(path, content)
	if err != nil {
		return nil, err
	}

	if err := schemas.ValidateDepartmentContext(jsonContent); err != nil {
		return nil, &LoadError{Path: path, Message: "department context does not match schema", Cause: err}
	}

	var dept types.DepartmentContext
	if err := json.Unmarshal(jsonContent, &dept); err != nil {
		return nil, &LoadError{Path: path, Message: "failed to unmarshal department context", Cause: err}
	}
	if err := dept.Validate(); err != nil {
		return nil, &LoadError{Path: path, Message: "invalid department context", Cause: err}
	}
	return &dept, nil
}

// ID derives a persona identifier from a file path.
func ID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// IsPersonaFile reports whether name has a persona file extension.
func IsPersonaFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}

// ReadYAMLAsJSON reads a YAML document and returns it converted to JSON.
func ReadYAMLAsJSON(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}
	return toJSON(path, content)
}

// IsYAML reports whether name has a YAML extension.
func IsYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// toJSON returns content as JSON, converting from YAML when name has a YAML extension.
func toJSON(name string, content []byte) ([]byte, error) {
	if !IsYAML(name) {
		if !json.Valid(content) {
			return nil, &LoadError{Path: name, Message: "invalid JSON"}
		}
		return content, nil
	}

	var doc any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, &LoadError{Path: name, Message: "failed to parse YAML", Cause: err}
	}

	out, err := json.Marshal(jsonCompatible(doc))
	if err != nil {
		return nil, &LoadError{Path: name, Message: "failed to convert YAML to JSON", Cause: err}
	}
	return out, nil
}

// jsonCompatible converts YAML-decoded values into types encoding/json accepts.
func jsonCompatible(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = jsonCompatible(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = jsonCompatible(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = jsonCompatible(item)
		}
		return out
	default:
		return val
	}
}
