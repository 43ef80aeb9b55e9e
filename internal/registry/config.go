// config.go implements the persisted provider map.
//
// Providers live in ~/.llmsh/mcp.json under the conventional
// "mcpServers" key. A missing or malformed file is never fatal: loading
// falls back to an empty map so the assistant still starts with
// built-ins only.

package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ServerSpec describes how to launch one provider process.
type ServerSpec struct {
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

// Config is the persisted provider map.
type Config struct {
	Servers map[string]ServerSpec `json:"mcpServers"`
}

// ConfigPath returns the provider config location: ~/.llmsh/mcp.json
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".llmsh", "mcp.json")
	}
	return filepath.Join(home, ".llmsh", "mcp.json")
}

// LoadConfig reads the provider map from path. Absent or malformed
// content yields an empty map, never an error.
func LoadConfig(path string) Config {
	cfg := Config{Servers: map[string]ServerSpec{}}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	var parsed Config
	if err := json.Unmarshal(data, &parsed); err != nil || parsed.Servers == nil {
		return cfg
	}

	// Ids that would break reverse parsing are dropped here rather than
	// surfacing ambiguous dispatch failures later.
	for id, spec := range parsed.Servers {
		if ValidateID(id) == nil {
			cfg.Servers[id] = spec
		}
	}
	return cfg
}

// SaveConfig writes the provider map to path, creating the directory
// and file on first write.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal provider config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write provider config %s: %w", path, err)
	}
	return nil
}
