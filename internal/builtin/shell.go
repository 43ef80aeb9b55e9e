// shell.go implements the shell execution tool.
//
// Commands run under "sh -c" with a bounded timeout and a cap on
// captured output. A timed-out command reports a specific message
// rather than hanging the turn; there is no retry.

package builtin

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/jpl-au/llmsh/internal/tool"
)

const (
	defaultShellTimeoutMs = 30000
	maxShellOutput        = 10 << 20 // 10 MiB of combined output
)

func shellTool(opts Options) tool.Builtin {
	return tool.Builtin{
		Definition: tool.Definition{
			Name:        "shell",
			Description: "Execute a shell command and return its combined output. Commands time out after " + fmt.Sprintf("%d", opts.shellTimeoutMs()) + "ms.",
			Parameters: tool.Object(map[string]tool.Property{
				"command": {Type: "string", Description: "The shell command to execute"},
				"timeout_ms": {Type: "number", Description: "Override the timeout in milliseconds"},
			}, "command"),
		},
		Run: func(ctx context.Context, args map[string]any) (string, error) {
			timeout := opts.shellTimeoutMs()
			if t := argInt(args, "timeout_ms"); t > 0 {
				timeout = t
			}
			return runShell(ctx, argString(args, "command"), time.Duration(timeout)*time.Millisecond)
		},
	}
}

func runShell(ctx context.Context, command string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()

	out := buf.Bytes()
	if len(out) > maxShellOutput {
		out = out[:maxShellOutput]
	}
	text := strings.TrimSpace(string(out))

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", fmt.Errorf("command timed out after %s", timeout)
	}
	if err != nil {
		// Surface the exit status alongside whatever the process wrote.
		// An interrupted command still reports its partial output.
		if text != "" {
			return "", fmt.Errorf("%v\n%s", err, text)
		}
		return "", err
	}

	if text == "" {
		return "(no output)", nil
	}
	return text, nil
}
