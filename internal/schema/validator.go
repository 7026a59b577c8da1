// Package schema checks model output against the response schema it was
// requested with.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"google.golang.org/genai"
)

// Validator checks JSON documents against response schemas. Compiled
// schemas are cached per schema value, so callers should reuse their
// *genai.Schema variables.
type Validator struct {
	cache sync.Map // map[*genai.Schema]*gojsonschema.Schema
}

func NewValidator() *Validator {
	return &Validator{}
}

// Validate reports whether doc satisfies s. A nil schema accepts anything.
func (v *Validator) Validate(s *genai.Schema, doc json.RawMessage) error {
	if s == nil {
		return nil
	}
	compiled, err := v.compile(s)
	if err != nil {
		return fmt.Errorf("invalid schema definition: %w", err)
	}

	result, err := compiled.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("validation execution failed: %w", err)
	}
	if result.Valid() {
		return nil
	}

	errs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("schema validation failed:\n- %s", dumpErrors(errs))
}

func (v *Validator) compile(s *genai.Schema) (*gojsonschema.Schema, error) {
	if val, ok := v.cache.Load(s); ok {
		return val.(*gojsonschema.Schema), nil
	}
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(ToJSONSchema(s)))
	if err != nil {
		return nil, err
	}
	v.cache.Store(s, compiled)
	return compiled, nil
}

// ToJSONSchema converts a Gemini response schema to JSON Schema (draft 4
// keywords only).
func ToJSONSchema(s *genai.Schema) map[string]any {
	out := map[string]any{}
	if s == nil {
		return out
	}
	if t := jsonType(s.Type); t != "" {
		out["type"] = t
	}
	if len(s.Enum) > 0 {
		enum := make([]any, len(s.Enum))
		for i, e := range s.Enum {
			enum[i] = e
		}
		out["enum"] = enum
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for name, p := range s.Properties {
			props[name] = ToJSONSchema(p)
		}
		out["properties"] = props
	}
	if len(s.Required) > 0 {
		req := make([]any, len(s.Required))
		for i, r := range s.Required {
			req[i] = r
		}
		out["required"] = req
	}
	if s.Items != nil {
		out["items"] = ToJSONSchema(s.Items)
	}
	return out
}

func jsonType(t genai.Type) string {
	switch t {
	case genai.TypeObject:
		return "object"
	case genai.TypeArray:
		return "array"
	case genai.TypeString:
		return "string"
	case genai.TypeInteger:
		return "integer"
	case genai.TypeNumber:
		return "number"
	case genai.TypeBoolean:
		return "boolean"
	}
	return ""
}

func dumpErrors(errs []string) string {
	if len(errs) > 3 {
		more := len(errs) - 3
		return strings.Join(errs[:3], "\n- ") + fmt.Sprintf("\n... and %d more", more)
	}
	return strings.Join(errs, "\n- ")
}
