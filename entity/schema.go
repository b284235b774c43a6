package entity

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
)

// Property is one named entry of an object schema.
type Property struct {
	Name   string
	Schema *jsonschema.Schema
}

func ObjectSchema(required []string, props ...Property) *jsonschema.Schema {
	properties := jsonschema.NewProperties()
	for _, p := range props {
		properties.Set(p.Name, p.Schema)
	}

	return &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

func StringProperty(name, description string, enum ...string) Property {
	schema := &jsonschema.Schema{
		Type:        "string",
		Description: description,
	}
	if len(enum) > 0 {
		schema.Enum = lo.Map(enum, func(v string, _ int) any { return v })
	}
	return Property{Name: name, Schema: schema}
}

func NumberProperty(name, description string) Property {
	return Property{Name: name, Schema: &jsonschema.Schema{
		Type:        "number",
		Description: description,
	}}
}

func ArrayProperty(name, description string, items *jsonschema.Schema) Property {
	return Property{Name: name, Schema: &jsonschema.Schema{
		Type:        "array",
		Description: description,
		Items:       items,
	}}
}

// SchemaFromMap converts a decoded JSON/YAML object into a schema.
func SchemaFromMap(m map[string]any) (*jsonschema.Schema, error) {
	if len(m) == 0 {
		return ObjectSchema(nil), nil
	}

	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}

	var schema jsonschema.Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, err
	}

	return &schema, nil
}

// EnumStrings returns the string members of a property's enum.
func EnumStrings(schema *jsonschema.Schema, property string) []string {
	if schema == nil || schema.Properties == nil {
		return nil
	}
	prop, ok := schema.Properties.Get(property)
	if !ok || prop == nil {
		return nil
	}

	var out []string
	for _, v := range prop.Enum {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
