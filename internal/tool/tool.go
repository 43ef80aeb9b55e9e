// Package tool defines the capability abstraction shared by built-in
// executors and externally provided tools: definitions with validated
// argument schemas, and the merged catalog that dispatches calls.
package tool

import (
	"context"
	"errors"
)

// ErrUnknownTool is returned when dispatching to a name that matches
// neither a built-in nor an exposed external tool.
var ErrUnknownTool = errors.New("unknown tool")

// ExternalPrefix marks tool names that belong to an external provider.
// Names are composed as ExternalPrefix + providerID + "_" + rawName.
const ExternalPrefix = "mcp_"

// Definition describes a dispatchable tool: its unique name, a
// description for the model, and the argument schema.
type Definition struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Parameters  Schema `json:"parameters"`
}

// Handler executes a tool with already-validated arguments.
// It returns either a success string or an error describing the failure;
// handlers never panic past this boundary.
type Handler func(ctx context.Context, args map[string]any) (string, error)

// Builtin pairs a tool definition with its executor.
type Builtin struct {
	Definition
	Run Handler
}
