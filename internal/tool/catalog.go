// catalog.go implements the merged tool catalog.
//
// Built-ins are always present; external tools come and go as providers
// connect and disconnect, so the catalog holds a read-only reference to
// the registry rather than a copy of its tool list.

package tool

import (
	"context"
	"fmt"
	"strings"
)

// ExternalSource provides tools discovered from external providers.
// Implemented by the provider registry; may be nil when no providers
// are configured.
type ExternalSource interface {
	// ExposedTools returns the current namespaced tool definitions.
	ExposedTools() []Definition
	// ExecuteTool dispatches a call to the owning provider.
	ExecuteTool(ctx context.Context, name string, args map[string]any) (string, error)
}

// Catalog merges built-in and externally provided tools into one
// dispatchable set.
type Catalog struct {
	builtins []Builtin
	index    map[string]int
	external ExternalSource
}

// NewCatalog creates a catalog over the given built-ins and an optional
// external source. Duplicate built-in names panic: they indicate a
// programming error, not a runtime condition.
func NewCatalog(builtins []Builtin, external ExternalSource) *Catalog {
	c := &Catalog{
		builtins: builtins,
		index:    make(map[string]int, len(builtins)),
		external: external,
	}
	for i, b := range builtins {
		if _, exists := c.index[b.Name]; exists {
			panic("tool: duplicate built-in name: " + b.Name)
		}
		c.index[b.Name] = i
	}
	return c
}

// BuiltIns returns the fixed built-in definitions, independent of
// provider state.
func (c *Catalog) BuiltIns() []Definition {
	defs := make([]Definition, len(c.builtins))
	for i, b := range c.builtins {
		defs[i] = b.Definition
	}
	return defs
}

// All returns built-ins followed by the current external tool list.
// Order affects presentation only.
func (c *Catalog) All() []Definition {
	defs := c.BuiltIns()
	if c.external != nil {
		defs = append(defs, c.external.ExposedTools()...)
	}
	return defs
}

// Dispatch routes a call to the owning executor and returns its output.
// Names carrying the external prefix go to the provider registry; all
// others must match a built-in exactly. Executor faults are converted to
// descriptive strings at this boundary so a failing tool never aborts
// the turn; the only error returned is ErrUnknownTool.
func (c *Catalog) Dispatch(ctx context.Context, name string, args map[string]any) (string, error) {
	if strings.HasPrefix(name, ExternalPrefix) {
		if c.external == nil {
			return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
		}
		out, err := c.external.ExecuteTool(ctx, name, args)
		if err != nil {
			return "Error: " + err.Error(), nil
		}
		return out, nil
	}

	i, ok := c.index[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	b := c.builtins[i]

	if args == nil {
		args = map[string]any{}
	}
	if err := b.Parameters.Validate(args); err != nil {
		return "Error: " + err.Error(), nil
	}

	out, err := run(ctx, b, args)
	if err != nil {
		return "Error: " + err.Error(), nil
	}
	return out, nil
}

// run executes a built-in with panic recovery. A panicking executor is
// reported as tool output like any other failure.
func run(ctx context.Context, b Builtin, args map[string]any) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tool %s panicked: %v", b.Name, r)
		}
	}()
	return b.Run(ctx, args)
}
