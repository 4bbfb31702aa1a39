package tools

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"
)

// ErrInvalidSchema is returned when a schema's required list names a
// property it does not declare.
var ErrInvalidSchema = errors.New("invalid input schema")

// Primitive type tags a property may carry.
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
)

// Property describes a single named parameter.
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Enum        []any  `json:"enum,omitempty"`
	Default     any    `json:"default,omitempty"`
}

// Schema is the JSON-schema-shaped input description advertised to the model.
type Schema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required"`
}

// EmptySchema is an object schema with no parameters.
func EmptySchema() Schema {
	return Schema{Type: "object", Properties: map[string]Property{}, Required: []string{}}
}

// Validate checks that every required name is a declared property.
func (s Schema) Validate() error {
	if s.Type != "" && s.Type != "object" {
		return fmt.Errorf("%w: type must be object, got %q", ErrInvalidSchema, s.Type)
	}
	for _, name := range s.Required {
		if _, ok := s.Properties[name]; !ok {
			return fmt.Errorf("%w: required property %q is not declared", ErrInvalidSchema, name)
		}
	}
	return nil
}

// Defaults returns the declared default for each property that has one.
func (s Schema) Defaults() map[string]any {
	out := map[string]any{}
	for name, p := range s.Properties {
		if p.Default != nil {
			out[name] = p.Default
		}
	}
	return out
}

// Map renders the schema as a generic JSON object.
func (s Schema) Map() map[string]any {
	props := make(map[string]any, len(s.Properties))
	for name, p := range s.Properties {
		m := map[string]any{"type": p.Type}
		if p.Description != "" {
			m["description"] = p.Description
		}
		if len(p.Enum) > 0 {
			m["enum"] = p.Enum
		}
		if p.Default != nil {
			m["default"] = p.Default
		}
		props[name] = m
	}
	required := s.Required
	if required == nil {
		required = []string{}
	}
	return map[string]any{"type": "object", "properties": props, "required": required}
}

var reflector = jsonschema.Reflector{
	AllowAdditionalProperties: true,
	DoNotReference:            true,
	ExpandedStruct:            true,
}

// anonReflector handles unnamed struct types. Expanding a struct looks it up
// in the definitions by type name, and an unnamed type is never stored there.
var anonReflector = jsonschema.Reflector{
	AllowAdditionalProperties: true,
	DoNotReference:            true,
}

// Infer derives an input schema from c's declared parameters. Callables that
// don't declare a parameter struct get EmptySchema. Property types outside the
// four primitives are reported as string; a property is required unless its
// field is omitempty or declares a default.
func Infer(c Callable) Schema {
	p, ok := c.(ArgsPrototyper)
	if !ok {
		return EmptySchema()
	}
	proto := p.ArgsPrototype()
	if proto == nil {
		return EmptySchema()
	}
	t := reflect.TypeOf(proto)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || t.NumField() == 0 {
		return EmptySchema()
	}

	r := &reflector
	if t.Name() == "" {
		r = &anonReflector
	}
	js := r.ReflectFromType(t)
	out := EmptySchema()
	if js == nil || js.Properties == nil {
		return out
	}
	for pair := js.Properties.Oldest(); pair != nil; pair = pair.Next() {
		out.Properties[pair.Key] = Property{
			Type:        primitiveTag(pair.Value),
			Description: pair.Value.Description,
			Enum:        pair.Value.Enum,
			Default:     pair.Value.Default,
		}
	}
	for _, name := range js.Required {
		prop, ok := out.Properties[name]
		if !ok || prop.Default != nil {
			continue
		}
		out.Required = append(out.Required, name)
	}
	return out
}

func primitiveTag(s *jsonschema.Schema) string {
	if s == nil {
		return TypeString
	}
	switch s.Type {
	case TypeString, TypeInteger, TypeNumber, TypeBoolean:
		return s.Type
	}
	return TypeString
}
