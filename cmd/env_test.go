// Testing Strategy Design Decision:
//
// The cmd/ package tests exercise commands in-process: they run the
// cobra tree directly with captured output rather than building a
// binary. Commands here are thin wrappers over internal packages that
// carry their own unit tests; what needs proving at this layer is flag
// parsing, wiring, and output shape, all of which in-process execution
// covers without a compile step per test run.
//
// Each test runs under a fresh HOME so config, provider map, history,
// and audit log land in a temp directory.

package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/jpl-au/llmsh/internal/registry"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	t    *testing.T
	home string
}

// newEnv isolates a test under a temp HOME and resets shared command
// state.
func newEnv(t *testing.T) *testEnv {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("LLMSH_MODEL", "")

	reg = registry.New()
	t.Cleanup(func() {
		reg.DisconnectAll()
		resetFlags()
	})
	return &testEnv{t: t, home: home}
}

// resetFlags clears package-level flag state between runs.
func resetFlags() {
	output = ""
	autoApprove = false
	model = ""
	chatScript = ""
	toolsConnect = false
	configLocal = false
	historyLimit = 10
	sessionID = 0
}

// run executes the CLI with args and returns captured output. The
// command must succeed.
func (env *testEnv) run(args ...string) string {
	env.t.Helper()
	out, err := env.tryRun(args...)
	require.NoError(env.t, err, "llmsh %v\n%s", args, out)
	return out
}

// runFail executes the CLI expecting an error; returns output and the
// error.
func (env *testEnv) runFail(args ...string) (string, error) {
	env.t.Helper()
	out, err := env.tryRun(args...)
	require.Error(env.t, err, "llmsh %v", args)
	return out, err
}

func (env *testEnv) tryRun(args ...string) (string, error) {
	resetFlags()

	buf := &bytes.Buffer{}
	prev := out
	SetOut(buf)
	defer SetOut(prev)

	rootCmd.SetArgs(args)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	err := rootCmd.Execute()
	return buf.String(), err
}

// writeHome writes a file under the test HOME, creating directories.
func (env *testEnv) writeHome(rel, content string) {
	env.t.Helper()
	path := env.home + "/" + rel
	require.NoError(env.t, os.MkdirAll(dirOf(path), 0755))
	require.NoError(env.t, os.WriteFile(path, []byte(content), 0644))
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "."
}
