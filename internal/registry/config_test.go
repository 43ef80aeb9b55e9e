package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("missing file yields empty map", func(t *testing.T) {
		cfg := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
		assert.NotNil(t, cfg.Servers)
		assert.Empty(t, cfg.Servers)
	})

	t.Run("malformed json yields empty map", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mcp.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

		cfg := LoadConfig(path)
		assert.Empty(t, cfg.Servers)
	})

	t.Run("valid servers load", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mcp.json")
		content := `{
  "mcpServers": {
    "browser": {
      "command": "npx",
      "args": ["-y", "@modelcontextprotocol/server-puppeteer"],
      "env": {"DISPLAY": ":0"}
    }
  }
}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		cfg := LoadConfig(path)
		require.Contains(t, cfg.Servers, "browser")
		spec := cfg.Servers["browser"]
		assert.Equal(t, "npx", spec.Command)
		assert.Equal(t, []string{"-y", "@modelcontextprotocol/server-puppeteer"}, spec.Args)
		assert.Equal(t, ":0", spec.Env["DISPLAY"])
	})

	t.Run("ids with underscores are dropped", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mcp.json")
		content := `{"mcpServers": {"good": {"command": "a"}, "bad_id": {"command": "b"}}}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		cfg := LoadConfig(path)
		assert.Contains(t, cfg.Servers, "good")
		assert.NotContains(t, cfg.Servers, "bad_id")
	})
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "mcp.json")
	cfg := Config{Servers: map[string]ServerSpec{
		"alpha": {Command: "run-alpha", Args: []string{"--port", "0"}},
	}}
	require.NoError(t, SaveConfig(path, cfg))

	loaded := LoadConfig(path)
	assert.Equal(t, cfg.Servers, loaded.Servers)
}

func TestSearchKnown(t *testing.T) {
	t.Run("empty query returns full catalog", func(t *testing.T) {
		assert.Len(t, SearchKnown(""), len(knownProviders))
	})

	t.Run("matches id", func(t *testing.T) {
		hits := SearchKnown("github")
		require.Len(t, hits, 1)
		assert.Equal(t, "github", hits[0].ID)
	})

	t.Run("matches description case-insensitively", func(t *testing.T) {
		hits := SearchKnown("BROWSER")
		require.NotEmpty(t, hits)
		assert.Equal(t, "puppeteer", hits[0].ID)
	})

	t.Run("no matches", func(t *testing.T) {
		assert.Empty(t, SearchKnown("kubernetes"))
	})
}

func TestInstall(t *testing.T) {
	t.Run("writes spec with env placeholders", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mcp.json")

		p, err := Install(path, "github")
		require.NoError(t, err)
		assert.Equal(t, []string{"GITHUB_PERSONAL_ACCESS_TOKEN"}, p.RequiredEnv)

		cfg := LoadConfig(path)
		require.Contains(t, cfg.Servers, "github")
		spec := cfg.Servers["github"]
		assert.Equal(t, "npx", spec.Command)

		// Required env is recorded with an empty value to fill in.
		val, present := spec.Env["GITHUB_PERSONAL_ACCESS_TOKEN"]
		assert.True(t, present)
		assert.Empty(t, val)
	})

	t.Run("preserves existing servers", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mcp.json")
		require.NoError(t, SaveConfig(path, Config{Servers: map[string]ServerSpec{
			"custom": {Command: "my-server"},
		}}))

		_, err := Install(path, "memory")
		require.NoError(t, err)

		cfg := LoadConfig(path)
		assert.Contains(t, cfg.Servers, "custom")
		assert.Contains(t, cfg.Servers, "memory")
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := Install(filepath.Join(t.TempDir(), "mcp.json"), "nonesuch")
		assert.ErrorIs(t, err, ErrNotInCatalog)
	})
}
