package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildInterpretationJSONSchema returns the JSON-Schema (draft 2020-12
// subset) the interpret stage validates against before trusting the model's
// output. Unknown fields are tolerated: models pad their answers, and an
// extra key is no reason to discard otherwise-valid keywords.
func BuildInterpretationJSONSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"keywords":         map[string]any{"type": "string", "minLength": 1},
			"time_instruction": map[string]any{"type": "string"},
			"num_instruction":  map[string]any{"type": "string"},
			"language":         map[string]any{"type": "string"},
		},
		"required": []string{"keywords"},
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
