package cmd

import (
	"context"
	"fmt"
	"testing"

	"github.com/jpl-au/llmsh/internal/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedSession records a canned transcript under the test HOME.
func seedSession(t *testing.T) int64 {
	t.Helper()
	store, err := history.Open(history.DefaultPath())
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	id, err := store.BeginSession(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Append(ctx, id, "user", "list the files"))
	require.NoError(t, store.Append(ctx, id, "assistant", "# Files\nHere they are."))
	require.NoError(t, store.Append(ctx, id, "tool", "[call_1] main.go"))
	return id
}

func TestHistoryCommand(t *testing.T) {
	env := newEnv(t)

	t.Run("empty", func(t *testing.T) {
		out := env.run("history")
		assert.Contains(t, out, "No recorded sessions")
	})

	t.Run("lists sessions with counts", func(t *testing.T) {
		id := seedSession(t)
		out := env.run("history")
		assert.Contains(t, out, fmt.Sprintf("%d", id))
		assert.Contains(t, out, "3 messages")
	})

	t.Run("shows a transcript", func(t *testing.T) {
		id := seedSession(t)
		out := env.run("history", fmt.Sprintf("%d", id))
		assert.Contains(t, out, "[user] list the files")
		assert.Contains(t, out, "Here they are.")
		assert.Contains(t, out, "[tool] [call_1] main.go")
	})

	t.Run("invalid session id", func(t *testing.T) {
		_, err := env.runFail("history", "abc")
		assert.Contains(t, err.Error(), "invalid session id")
	})

	t.Run("json listing", func(t *testing.T) {
		seedSession(t)
		out := env.run("history", "-o", "json")
		assert.Contains(t, out, `"Messages":3`)
	})
}
