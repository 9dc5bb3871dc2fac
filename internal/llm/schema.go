package llm

import "github.com/joseph-ayodele/modbus-extractor/constants"

// BuildRegisterArraySchema returns the JSON schema the reply must satisfy:
// a flat array of register objects. Kept as a plain map so the schema and
// the prompt stay easy to diff against each other.
func BuildRegisterArraySchema() map[string]any {
	datatypes := make([]any, 0, len(constants.DataTypes))
	for _, dt := range constants.DataTypes {
		datatypes = append(datatypes, string(dt))
	}
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"address": map[string]any{
					"type":    "integer",
					"minimum": 0,
				},
				"name": map[string]any{
					"type": "string",
				},
				"datatype": map[string]any{
					"type": "string",
					"enum": datatypes,
				},
				"description": map[string]any{
					"type": "string",
				},
				"writable": map[string]any{
					"type": "boolean",
				},
			},
			"required":             []any{"address"},
			"additionalProperties": false,
		},
	}
}
