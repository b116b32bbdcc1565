package content

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// packSchema is the JSON Schema every content pack must satisfy.
var packSchema = map[string]any{
	"type":     "object",
	"required": []any{"lab", "engine", "predictions", "transfer", "questions"},
	"properties": map[string]any{
		"lab":    map[string]any{"type": "string", "minLength": 1},
		"engine": map[string]any{"type": "string", "pattern": "^v[0-9]+\\.[0-9]+\\.[0-9]+$"},
		"hook":   map[string]any{"type": "string"},
		"predictions": map[string]any{
			"type":     "object",
			"required": []any{"predict", "twist_predict"},
			"additionalProperties": map[string]any{
				"type":     "object",
				"required": []any{"prompt", "options"},
				"properties": map[string]any{
					"prompt": map[string]any{"type": "string", "minLength": 1},
					"options": map[string]any{
						"type":     "array",
						"minItems": 2,
						"items":    map[string]any{"type": "string", "minLength": 1},
					},
				},
			},
		},
		"transfer": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items":    map[string]any{"type": "string", "minLength": 1},
		},
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"prompt", "options", "answer", "explanation"},
				"properties": map[string]any{
					"prompt": map[string]any{"type": "string", "minLength": 1},
					"options": map[string]any{
						"type":     "array",
						"minItems": 2,
						"items":    map[string]any{"type": "string"},
					},
					"answer":      map[string]any{"type": "integer", "minimum": 0},
					"explanation": map[string]any{"type": "string"},
				},
			},
		},
	},
}

var (
	compileOnce  sync.Once
	compiled     *jsonschema.Schema
	compileError error
)

// validatePack checks raw pack JSON against packSchema.
func validatePack(raw []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile pack schema: %w", err)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// compiledSchema compiles packSchema once and caches it.
func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler expects a parsed JSON value, not Go maps with
		// typed values; round-trip through encoding/json first.
		defBytes, err := json.Marshal(packSchema)
		if err != nil {
			compileError = err
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileError = err
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://content-pack.json"
		if err := c.AddResource(url, defParsed); err != nil {
			compileError = err
			return
		}
		compiled, compileError = c.Compile(url)
	})
	return compiled, compileError
}
