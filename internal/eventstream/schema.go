package eventstream

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// CompileErrorSchema compiles a JSON Schema, given as a decoded
// map[string]any, for use as the dispatcher's optional error-payload
// validation.
func CompileErrorSchema(schema map[string]any) (*jsonschema.Schema, error) {
	if schema == nil {
		schema = map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		}
	}
	b, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("eventstream: marshal error schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("error-payload.json", strings.NewReader(string(b))); err != nil {
		return nil, fmt.Errorf("eventstream: add error schema resource: %w", err)
	}
	return c.Compile("error-payload.json")
}

// validateErrorPayload validates payload as JSON against schema. A nil
// schema always passes.
func validateErrorPayload(schema *jsonschema.Schema, payload []byte) error {
	if schema == nil {
		return nil
	}
	var v any
	if err := json.Unmarshal(payload, &v); err != nil {
		return fmt.Errorf("eventstream: error payload is not valid JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("eventstream: error payload failed schema validation: %w", err)
	}
	return nil
}
