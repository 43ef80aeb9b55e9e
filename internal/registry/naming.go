// naming.go implements the namespacing rule for provider tools.
//
// Exposed name = "mcp_" + providerID + "_" + rawToolName. Reverse parsing
// takes the first underscore-delimited segment after the prefix as the
// provider id, so provider ids must never contain an underscore; ids are
// rejected at config load and connect time rather than left ambiguous.

package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jpl-au/llmsh/internal/tool"
)

var (
	// ErrInvalidProviderID is returned for empty ids or ids containing
	// the namespace separator.
	ErrInvalidProviderID = errors.New("invalid provider id")
	// ErrMalformedToolName is returned when an exposed name cannot be
	// reverse-parsed.
	ErrMalformedToolName = errors.New("malformed tool name")
)

// ValidateID checks that a provider id is usable as a namespace segment.
func ValidateID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty", ErrInvalidProviderID)
	}
	if strings.Contains(id, "_") {
		return fmt.Errorf("%w: %q must not contain underscores", ErrInvalidProviderID, id)
	}
	return nil
}

// ExposedName returns the namespaced name surfaced to the backend for a
// provider-supplied tool.
func ExposedName(providerID, rawName string) string {
	return tool.ExternalPrefix + providerID + "_" + rawName
}

// ParseExposedName recovers (providerID, rawToolName) from an exposed
// name.
func ParseExposedName(name string) (providerID, rawName string, err error) {
	rest, ok := strings.CutPrefix(name, tool.ExternalPrefix)
	if !ok {
		return "", "", fmt.Errorf("%w: %q lacks the %s prefix", ErrMalformedToolName, name, tool.ExternalPrefix)
	}
	providerID, rawName, ok = strings.Cut(rest, "_")
	if !ok || providerID == "" || rawName == "" {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedToolName, name)
	}
	return providerID, rawName, nil
}
