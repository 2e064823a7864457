package auth

import (
	"bytes"
	"encoding/json"
	"fmt"

	ijs "github.com/invopop/jsonschema"
	sjs "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "thaimap-auth.schema.json"

// Schema returns the JSON schema of the auth config, generated from Config.
func Schema() ([]byte, error) {
	r := &ijs.Reflector{Anonymous: true, DoNotReference: true}
	data, err := json.MarshalIndent(r.Reflect(&Config{}), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal auth schema: %w", err)
	}
	return data, nil
}

// SchemaValidator compiles the auth config schema and returns a validator using it.
func SchemaValidator() (ConfigValidator, error) {
	data, err := Schema()
	if err != nil {
		return nil, err
	}

	compiler := sjs.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to add auth schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile auth schema: %w", err)
	}

	return func(doc map[string]any) error {
		if err := schema.Validate(normalizeDocument(doc)); err != nil {
			return fmt.Errorf("auth config validation failed: %w", err)
		}
		return nil
	}, nil
}

// normalizeDocument brings decoder-specific values to the JSON shapes the validator expects.
// yaml and toml produce integers and nested maps of their own types.
func normalizeDocument(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalizeDocument(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalizeDocument(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeDocument(item)
		}
		return out
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case uint64:
		return float64(val)
	default:
		return v
	}
}
