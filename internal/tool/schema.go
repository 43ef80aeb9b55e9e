// schema.go implements the structural argument schema for tools.
//
// Separated from tool.go to isolate validation logic. Arguments arrive
// from the model as an untyped map; validating them against a declared
// schema catches malformed calls before any executor runs.

package tool

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrMissingArgument is returned when a required argument is absent.
	ErrMissingArgument = errors.New("missing required argument")
	// ErrInvalidArgument is returned when an argument has the wrong type.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Property describes a single named parameter.
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// Schema is the structural contract for a tool's arguments.
// Mirrors the object-schema subset used by function-calling APIs.
type Schema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties,omitempty"`
	Required   []string            `json:"required,omitempty"`
}

// Object builds an object schema from named properties and a required list.
func Object(props map[string]Property, required ...string) Schema {
	return Schema{Type: "object", Properties: props, Required: required}
}

// Validate checks args against the schema: required keys must be present
// and every known key must carry a value of the declared type. Unknown
// keys are ignored (models occasionally invent extras).
func (s Schema) Validate(args map[string]any) error {
	for _, key := range s.Required {
		if _, ok := args[key]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingArgument, key)
		}
	}
	// Deterministic error attribution when several keys are malformed
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		prop, ok := s.Properties[key]
		if !ok {
			continue
		}
		if err := checkType(key, prop.Type, args[key]); err != nil {
			return err
		}
	}
	return nil
}

func checkType(key, want string, v any) error {
	ok := true
	switch want {
	case "string":
		_, ok = v.(string)
	case "boolean":
		_, ok = v.(bool)
	case "number", "integer":
		switch v.(type) {
		case float64, float32, int, int64:
		default:
			ok = false
		}
	case "array":
		_, ok = v.([]any)
	case "object":
		_, ok = v.(map[string]any)
	}
	if !ok {
		return fmt.Errorf("%w: %s must be a %s, got %T", ErrInvalidArgument, key, want, v)
	}
	return nil
}

// Map converts the schema to the generic map shape surfaced to backends.
func (s Schema) Map() map[string]any {
	props := make(map[string]any, len(s.Properties))
	for name, p := range s.Properties {
		prop := map[string]any{"type": p.Type}
		if p.Description != "" {
			prop["description"] = p.Description
		}
		props[name] = prop
	}
	m := map[string]any{
		"type":       s.Type,
		"properties": props,
	}
	if len(s.Required) > 0 {
		m["required"] = s.Required
	}
	return m
}
