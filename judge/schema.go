package judge

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// judgmentSchema is the JSON Schema every judgment must satisfy. Both
// backends also send it as the structured-output constraint.
var judgmentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"gibberish":  map[string]any{"type": "boolean"},
		"confidence": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
	},
	"required":             []any{"gibberish", "confidence"},
	"additionalProperties": false,
}

// compiledSchema compiles the judgment schema once. There is a single
// schema in this package, so no cache keyed by name is needed.
var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	// The jsonschema library expects a parsed JSON value, not a Go map
	// with native ints. Marshal then unmarshal to normalize.
	defBytes, err := json.Marshal(judgmentSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	const schemaURL = "schema://judgment.json"
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(schemaURL)
})

// parseJudgment validates raw model output against the judgment schema
// and decodes it. Returns *ErrInvalidResponse on any mismatch.
func parseJudgment(raw json.RawMessage) (*Judgment, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("invalid JSON: %w", err),
		}
	}

	schema, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compile judgment schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("schema validation failed: %w", err),
		}
	}

	var j Judgment
	if err := json.Unmarshal(raw, &j); err != nil {
		return nil, &ErrInvalidResponse{Content: raw, Err: err}
	}
	return &j, nil
}
