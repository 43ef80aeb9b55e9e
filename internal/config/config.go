// Package config provides reading and writing of llmsh configuration.
// Supports both global (~/.llmsh/config.yaml) and local (.llmsh/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.llmsh/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is project-specific config in .llmsh/config.yaml
	ScopeLocal
)

// Backend holds LLM backend selection stored in the config.
type Backend struct {
	Name  string `yaml:"name,omitempty"`
	Model string `yaml:"model,omitempty"`
}

// Chat holds conversation behaviour options.
type Chat struct {
	AutoApprove *bool `yaml:"auto_approve,omitempty"`
}

// Limits holds per-tool resource limit options.
type Limits struct {
	ShellTimeoutMs *int `yaml:"shell_timeout_ms,omitempty"`
	FetchMaxChars  *int `yaml:"fetch_max_chars,omitempty"`
}

// Defaults applied when not configured.
const (
	DefaultBackend        = "scripted"
	DefaultShellTimeoutMs = 30000
	DefaultFetchMaxChars  = 10000
)

// Validation bounds for configuration values.
const (
	MinShellTimeoutMs = 100
	MaxShellTimeoutMs = 10 * 60 * 1000 // 10 minutes
	MinFetchMaxChars  = 100
	MaxFetchMaxChars  = 10 * 1024 * 1024
)

// Config contains configuration for llmsh.
type Config struct {
	Backend Backend `yaml:"backend,omitempty"`
	Chat    Chat    `yaml:"chat,omitempty"`
	Limits  Limits  `yaml:"limits,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Limits.ShellTimeoutMs != nil {
		v := *c.Limits.ShellTimeoutMs
		if v < MinShellTimeoutMs || v > MaxShellTimeoutMs {
			return fmt.Errorf("%w: shell_timeout_ms must be between %d and %d, got %d",
				ErrInvalidValue, MinShellTimeoutMs, MaxShellTimeoutMs, v)
		}
	}
	if c.Limits.FetchMaxChars != nil {
		v := *c.Limits.FetchMaxChars
		if v < MinFetchMaxChars || v > MaxFetchMaxChars {
			return fmt.Errorf("%w: fetch_max_chars must be between %d and %d, got %d",
				ErrInvalidValue, MinFetchMaxChars, MaxFetchMaxChars, v)
		}
	}
	return nil
}

// BackendName returns the configured backend name (defaults to "scripted").
func (c *Config) BackendName() string {
	if c.Backend.Name == "" {
		return DefaultBackend
	}
	return c.Backend.Name
}

// Model returns the configured model identifier (may be empty).
func (c *Config) Model() string {
	return c.Backend.Model
}

// AutoApprove returns whether tool calls run without confirmation
// (defaults to false).
func (c *Config) AutoApprove() bool {
	if c.Chat.AutoApprove == nil {
		return false
	}
	return *c.Chat.AutoApprove
}

// ShellTimeoutMs returns the shell exec timeout in milliseconds
// (defaults to 30000).
func (c *Config) ShellTimeoutMs() int {
	if c.Limits.ShellTimeoutMs == nil {
		return DefaultShellTimeoutMs
	}
	return *c.Limits.ShellTimeoutMs
}

// FetchMaxChars returns the web fetch truncation limit in characters
// (defaults to 10000).
func (c *Config) FetchMaxChars() int {
	if c.Limits.FetchMaxChars == nil {
		return DefaultFetchMaxChars
	}
	return *c.Limits.FetchMaxChars
}

// LocalPath returns the path to the local (project) config file.
func LocalPath() string {
	return filepath.Join(".llmsh", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.llmsh/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".llmsh", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file %s: %w", path, err)
	}
	return nil
}

func pathForScope(scope Scope) string {
	if scope == ScopeLocal {
		return LocalPath()
	}
	return GlobalPath()
}
