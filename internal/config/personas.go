package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/learning-recommender/internal/schemas"
	"github.com/jonathan/learning-recommender/internal/types"
)

// WarnFunc reports a non-fatal problem, printf style.
type WarnFunc func(format string, args ...any)

// LoadError describes why a persona table could not be loaded.
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load personas from %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load personas from %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ReadPersonas reads and validates a persona table. The file is checked
// against the persona JSON Schema when the schema can be located, then
// decoded and validated structurally.
func ReadPersonas(path string) (types.PersonaTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "cannot read file", Cause: err}
	}

	if schemaPath := schemas.ResolveSchemaPath(schemas.PersonasSchema); schemaPath != "" {
		if err := schemas.ValidateBytes(schemaPath, data); err != nil {
			return nil, &LoadError{Path: path, Message: "schema validation failed", Cause: err}
		}
	}

	return ParsePersonas(path, data)
}

// ParsePersonas decodes and validates persona table JSON. path is used only
// for error messages.
func ParsePersonas(path string, data []byte) (types.PersonaTable, error) {
	var table types.PersonaTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, &LoadError{Path: path, Message: "invalid JSON", Cause: err}
	}
	if table == nil {
		table = types.PersonaTable{}
	}
	if err := table.Validate(); err != nil {
		return nil, &LoadError{Path: path, Message: "invalid persona", Cause: err}
	}
	return table, nil
}

// LoadPersonas loads the persona table at path. It never fails: an empty
// path yields an empty table, and any read or validation problem is reported
// through warnf and also yields an empty table, leaving only the default
// persona available to ranking.
func LoadPersonas(path string, warnf WarnFunc) types.PersonaTable {
	if path == "" {
		return types.PersonaTable{}
	}

	table, err := ReadPersonas(path)
	if err != nil {
		if warnf != nil {
			warnf("%v; continuing with the default persona only", err)
		}
		return types.PersonaTable{}
	}
	return table
}
