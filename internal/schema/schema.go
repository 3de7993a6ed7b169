// Package schema validates decoded JSON values against named JSON Schema
// definitions. Compiled schemas are cached by name.
package schema

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a named JSON Schema definition.
type Schema struct {
	Name       string
	Definition map[string]any
}

// ValidationError wraps a failed validation with the schema name.
type ValidationError struct {
	Schema string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Schema, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// cache holds compiled schemas by name.
var cache sync.Map // map[string]*jsonschema.Schema

// ValidateJSON parses raw and validates it against s.
func ValidateJSON(s *Schema, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ValidationError{Schema: s.Name, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	return Validate(s, parsed)
}

// Validate checks an already decoded value. Values decoded by something
// other than encoding/json (YAML, for instance) are normalized through a
// JSON round trip first.
func Validate(s *Schema, v any) error {
	compiled, err := compiled(s)
	if err != nil {
		return &ValidationError{Schema: s.Name, Err: fmt.Errorf("compile schema: %w", err)}
	}

	normalized, err := normalize(v)
	if err != nil {
		return &ValidationError{Schema: s.Name, Err: err}
	}

	if err := compiled.Validate(normalized); err != nil {
		return &ValidationError{Schema: s.Name, Err: err}
	}
	return nil
}

func normalize(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode value: %w", err)
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode value: %w", err)
	}
	return out, nil
}

func compiled(s *Schema) (*jsonschema.Schema, error) {
	if cached, ok := cache.Load(s.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	def, err := normalize(s.Definition)
	if err != nil {
		return nil, err
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", s.Name)
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	cache.Store(s.Name, sch)
	return sch, nil
}
