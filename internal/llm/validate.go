package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// compileSchema turns a map-form schema into a compiled validator.
func compileSchema(schemaMap map[string]any) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("registers.json", bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	s, err := c.Compile("registers.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return s, nil
}

var registerArraySchema = func() *jsonschema.Schema {
	s, err := compileSchema(BuildRegisterArraySchema())
	if err != nil {
		panic(fmt.Sprintf("register array schema failed to compile: %v", err))
	}
	return s
}()

// ValidateReplyShape checks repaired JSON against the register array schema.
// Callers treat a failure as advisory: element-level validation still runs,
// so a reply with one bad object is not thrown away wholesale.
func ValidateReplyShape(repaired string) error {
	var doc any
	if err := json.Unmarshal([]byte(repaired), &doc); err != nil {
		return fmt.Errorf("reply is not valid JSON: %w", err)
	}
	if err := registerArraySchema.Validate(doc); err != nil {
		return fmt.Errorf("reply does not match register schema: %w", err)
	}
	return nil
}
