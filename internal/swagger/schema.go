package swagger

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v2"
)

var primitiveTypes = map[string]string{
	"Int":     "integer",
	"Float":   "number",
	"String":  "string",
	"Boolean": "boolean",
	"ID":      "string",
	"FQDN":    "string",
}

// PrimitiveType maps a GraphQL scalar name to a JSON schema type.
// Unknown scalars are documented as strings.
func PrimitiveType(scalar string) string {
	if t, ok := primitiveTypes[scalar]; ok {
		return t
	}
	return "string"
}

// Object returns an object schema with the given properties.
func Object(props *Map[*Schema]) *Schema {
	return &Schema{Type: "object", Properties: props}
}

// Array returns an array schema of items.
func Array(items *Schema) *Schema {
	return &Schema{Type: "array", Items: items}
}

// Sample builds an example value shaped like the schema: objects become
// ordered maps, arrays hold a single item and primitives a placeholder.
func (s *Schema) Sample() any {
	if s == nil {
		return nil
	}
	switch s.Type {
	case "object":
		out := NewMap[any]()
		if s.Properties != nil {
			for _, k := range s.Properties.Keys() {
				v, _ := s.Properties.Get(k)
				out.Set(k, v.Sample())
			}
		}
		return out
	case "array":
		return []any{s.Items.Sample()}
	case "integer":
		return 0
	case "number":
		return 0.0
	case "boolean":
		return true
	case "string":
		return "string"
	}
	if s.Ref != "" {
		return NewMap[any]()
	}
	return nil
}

// Format is an output encoding.
type Format string

// Supported output formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Encode serialises v in the given format.
func Encode(v any, format Format) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("failed to encode JSON: %w", err)
		}
		return buf.Bytes(), nil
	case FormatYAML:
		out, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unknown output format: %s", format)
}
