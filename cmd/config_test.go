package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigCommand(t *testing.T) {
	env := newEnv(t)

	t.Run("list shows defaults", func(t *testing.T) {
		out := env.run("config")
		assert.Contains(t, out, "backend.name = scripted")
		assert.Contains(t, out, "chat.auto_approve = false")
		assert.Contains(t, out, "limits.shell_timeout_ms = 30000")
	})

	t.Run("set then get", func(t *testing.T) {
		out := env.run("config", "limits.shell_timeout_ms", "5000")
		assert.Contains(t, out, "limits.shell_timeout_ms = 5000")

		out = env.run("config", "limits.shell_timeout_ms")
		assert.Equal(t, "5000\n", out)
	})

	t.Run("set boolean", func(t *testing.T) {
		env.run("config", "chat.auto_approve", "true")
		out := env.run("config", "chat.auto_approve")
		assert.Equal(t, "true\n", out)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := env.runFail("config", "no.such.key")
		assert.Contains(t, err.Error(), "unknown config key")
	})

	t.Run("invalid value", func(t *testing.T) {
		_, err := env.runFail("config", "chat.auto_approve", "maybe")
		assert.Contains(t, err.Error(), "must be true or false")
	})

	t.Run("out of bounds value", func(t *testing.T) {
		_, err := env.runFail("config", "limits.shell_timeout_ms", "10")
		assert.Contains(t, err.Error(), "shell_timeout_ms must be between")
	})

	t.Run("json get", func(t *testing.T) {
		out := env.run("config", "backend.name", "-o", "json")
		assert.Contains(t, out, `{"backend.name":"scripted"}`)
	})
}
