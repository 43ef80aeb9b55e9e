// Package builtin implements the fixed set of capability executors
// available in every session: shell execution, file read/write/edit,
// filename and content search, and web fetch.
//
// Each executor maps validated arguments to either a success string or
// an error describing the failure. Faults never propagate past the
// catalog boundary; the orchestrator records them as tool output.
package builtin

import (
	"github.com/jpl-au/llmsh/internal/tool"
)

// Options configures executor limits. Zero values select defaults.
type Options struct {
	ShellTimeoutMs int // shell exec timeout (default 30000)
	FetchMaxChars  int // web fetch truncation limit (default 10000)
}

func (o Options) shellTimeoutMs() int {
	if o.ShellTimeoutMs <= 0 {
		return defaultShellTimeoutMs
	}
	return o.ShellTimeoutMs
}

func (o Options) fetchMaxChars() int {
	if o.FetchMaxChars <= 0 {
		return defaultFetchMaxChars
	}
	return o.FetchMaxChars
}

// All returns the built-in tool set in presentation order.
func All(opts Options) []tool.Builtin {
	return []tool.Builtin{
		shellTool(opts),
		readTool(),
		writeTool(),
		editTool(),
		globTool(),
		grepTool(),
		fetchTool(opts),
	}
}

// argString returns a string argument, or "" if absent.
func argString(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

// argInt returns an integer argument. JSON numbers decode as float64,
// so both forms are accepted.
func argInt(args map[string]any, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// argBool returns a boolean argument, or false if absent.
func argBool(args map[string]any, key string) bool {
	b, _ := args[key].(bool)
	return b
}
