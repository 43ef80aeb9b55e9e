// approval.go implements the approval gate that precedes every tool
// execution.
//
// Only an explicit affirmative answer approves; anything else - other
// input, end of input, a read failure - denies. The gate never causes a
// tool to run silently: auto-approve is an explicit mode the user opts
// into.

package orchestrator

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// PendingApproval is the ephemeral record of a requested tool call. It
// exists between the backend's request and the user's answer, then is
// discarded.
type PendingApproval struct {
	Tool        string
	Args        map[string]any
	RequestedAt time.Time
}

// Gate decides whether a requested tool call may execute.
type Gate struct {
	auto   bool
	reader *bufio.Reader
	out    io.Writer
}

// NewGate creates an approval gate. When auto is true every request is
// approved immediately; otherwise the user is prompted on out and the
// answer read from in.
func NewGate(auto bool, in io.Reader, out io.Writer) *Gate {
	return &Gate{auto: auto, reader: bufio.NewReader(in), out: out}
}

// Approve resolves one pending approval to approved (true) or denied
// (false).
func (g *Gate) Approve(p PendingApproval) bool {
	if g.auto {
		return true
	}

	fmt.Fprintf(g.out, "\nAllow tool %s%s? [y/N] ", p.Tool, formatArgs(p.Args))

	line, err := g.reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// formatArgs renders arguments compactly for the prompt. Marshal
// failures simply omit the arguments; the tool name alone still
// identifies the request.
func formatArgs(args map[string]any) string {
	if len(args) == 0 {
		return ""
	}
	data, err := json.Marshal(args)
	if err != nil {
		return ""
	}
	const maxShown = 120
	s := string(data)
	if len(s) > maxShown {
		s = s[:maxShown] + "...}"
	}
	return " " + s
}
