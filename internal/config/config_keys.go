// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic. This separation allows config.go to focus on YAML structure
// and loading, while this file handles the CLI interface where config is
// accessed by string keys (e.g., "limits.shell_timeout_ms").
//
// Design: Pointers are used for optional fields so we can distinguish between
// "not set" (nil) and "explicitly set to zero/false". This enables proper
// defaulting - we only apply defaults when the user hasn't set a value.

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"backend.name", "backend.model",
		"chat.auto_approve",
		"limits.shell_timeout_ms", "limits.fetch_max_chars",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "backend.name":
		return c.BackendName(), nil
	case "backend.model":
		return c.Backend.Model, nil
	case "chat.auto_approve":
		return strconv.FormatBool(c.AutoApprove()), nil
	case "limits.shell_timeout_ms":
		return strconv.Itoa(c.ShellTimeoutMs()), nil
	case "limits.fetch_max_chars":
		return strconv.Itoa(c.FetchMaxChars()), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "backend.name":
		c.Backend.Name = value
	case "backend.model":
		c.Backend.Model = value
	case "chat.auto_approve":
		v := strings.ToLower(value)
		if v != "true" && v != "false" {
			return fmt.Errorf("%w: chat.auto_approve must be true or false", ErrInvalidValue)
		}
		b := v == "true"
		c.Chat.AutoApprove = &b
	case "limits.shell_timeout_ms":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: limits.shell_timeout_ms must be a positive integer", ErrInvalidValue)
		}
		c.Limits.ShellTimeoutMs = &n
	case "limits.fetch_max_chars":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: limits.fetch_max_chars must be a positive integer", ErrInvalidValue)
		}
		c.Limits.FetchMaxChars = &n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	return map[string]string{
		"backend.name":            c.BackendName(),
		"backend.model":           c.Backend.Model,
		"chat.auto_approve":       strconv.FormatBool(c.AutoApprove()),
		"limits.shell_timeout_ms": strconv.Itoa(c.ShellTimeoutMs()),
		"limits.fetch_max_chars":  strconv.Itoa(c.FetchMaxChars()),
	}
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "backend.name":
		return c.Backend.Name != ""
	case "backend.model":
		return c.Backend.Model != ""
	case "chat.auto_approve":
		return c.Chat.AutoApprove != nil
	case "limits.shell_timeout_ms":
		return c.Limits.ShellTimeoutMs != nil
	case "limits.fetch_max_chars":
		return c.Limits.FetchMaxChars != nil
	default:
		return false
	}
}
