package snapshot

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://ndscreen-snapshot.json"

// nullable wraps a schema so that JSON null is also accepted. A null field
// is treated the same as an absent one.
func nullable(s map[string]any) map[string]any {
	return map[string]any{
		"anyOf": []any{map[string]any{"type": "null"}, s},
	}
}

func stringMap() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": map[string]any{"type": "string"},
	}
}

// documentSchema describes the structure accepted by Decode. Unknown
// top-level keys are allowed so that newer minor versions still import.
var documentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"version": nullable(map[string]any{"type": "string"}),
		"date":    nullable(map[string]any{"type": "string"}),
		"profile": nullable(map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":   map[string]any{"type": "string"},
				"dob":    map[string]any{"type": "string"},
				"gender": map[string]any{"type": "string"},
			},
		}),
		"responses": nullable(map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type": "object",
				"additionalProperties": map[string]any{
					"type":    "integer",
					"minimum": 0,
				},
			},
		}),
		"notes":        nullable(stringMap()),
		"sectionNotes": nullable(stringMap()),
	},
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	// The compiler expects a parsed JSON value, so round-trip the
	// definition through encoding/json.
	defBytes, err := json.Marshal(documentSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return compiled, nil
})
