package service

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldType is the declared primitive type of a response field.
type FieldType string

const (
	FieldString     FieldType = "string"
	FieldStringList FieldType = "string_list"
)

// SchemaField declares one required field of the model output.
type SchemaField struct {
	Name        string
	Type        FieldType
	Description string
}

// ResponseSchema declares the shape the model output must have. It is sent to the
// upstream API as a json_schema response format and used to validate the reply.
type ResponseSchema struct {
	Name   string
	Strict bool
	Fields []SchemaField
}

// RecipeSchema is the schema of a generated recipe.
func RecipeSchema() *ResponseSchema {
	return &ResponseSchema{
		Name:   "recipe",
		Strict: true,
		Fields: []SchemaField{
			{Name: "name", Type: FieldString, Description: "Name of the recipe"},
			{Name: "ingredients", Type: FieldStringList, Description: "Ingredients with quantities and units"},
			{Name: "instructions", Type: FieldStringList, Description: "Preparation steps in order"},
		},
	}
}

// ResponseFormat renders the response_format request field.
func (s *ResponseSchema) ResponseFormat() map[string]any {
	properties := make(map[string]any, len(s.Fields))
	required := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		prop := map[string]any{"type": "string"}
		if f.Type == FieldStringList {
			prop = map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			}
		}
		if f.Description != "" {
			prop["description"] = f.Description
		}
		properties[f.Name] = prop
		required = append(required, f.Name)
	}

	return map[string]any{
		"type": "json_schema",
		"json_schema": map[string]any{
			"name":   s.Name,
			"strict": s.Strict,
			"schema": map[string]any{
				"type":                 "object",
				"properties":           properties,
				"required":             required,
				"additionalProperties": false,
			},
		},
	}
}

// Validate checks that every declared field is present and coercible to a non-empty
// string. Lists are accepted only for FieldStringList fields. It returns a copy of obj in which declared fields hold their coerced string
// values; undeclared keys are kept unchanged.
func (s *ResponseSchema) Validate(obj map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(obj))
	for k, v := range obj {
		out[k] = v
	}

	for _, f := range s.Fields {
		raw, ok := obj[f.Name]
		if !ok || raw == nil {
			return nil, fmt.Errorf("missing required field %q", f.Name)
		}
		if f.Type != FieldStringList && isList(raw) {
			return nil, fmt.Errorf("field %q: list given for a string field", f.Name)
		}
		str, err := coerceString(raw)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		if strings.TrimSpace(str) == "" {
			return nil, fmt.Errorf("field %q must not be empty", f.Name)
		}
		out[f.Name] = str
	}
	return out, nil
}

// coerceString converts a decoded JSON value to a string. Lists of strings are joined
// with newlines.
func coerceString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(val), nil
	case []string:
		return strings.Join(val, "\n"), nil
	case []any:
		parts := make([]string, 0, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return "", fmt.Errorf("item %d is %T, expected string", i, item)
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, "\n"), nil
	default:
		return "", fmt.Errorf("value of type %T is not coercible to string", v)
	}
}

func isList(v any) bool {
	switch v.(type) {
	case []any, []string:
		return true
	}
	return false
}
