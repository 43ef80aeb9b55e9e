package orchestrator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGateApprove(t *testing.T) {
	pending := PendingApproval{Tool: "shell", Args: map[string]any{"command": "ls"}}

	t.Run("auto approves without prompting", func(t *testing.T) {
		out := &bytes.Buffer{}
		g := NewGate(true, strings.NewReader(""), out)
		assert.True(t, g.Approve(pending))
		assert.Empty(t, out.String())
	})

	t.Run("answers", func(t *testing.T) {
		tests := []struct {
			input string
			want  bool
		}{
			{"y\n", true},
			{"Y\n", true},
			{"yes\n", true},
			{"YES\n", true},
			{"  y  \n", true},
			{"n\n", false},
			{"no\n", false},
			{"\n", false}, // default is deny
			{"maybe\n", false},
			{"yessir\n", false},
			{"", false}, // end of input denies
		}

		for _, tc := range tests {
			g := NewGate(false, strings.NewReader(tc.input), &bytes.Buffer{})
			assert.Equal(t, tc.want, g.Approve(pending), "input %q", tc.input)
		}
	})

	t.Run("prompt names tool and arguments", func(t *testing.T) {
		out := &bytes.Buffer{}
		g := NewGate(false, strings.NewReader("y\n"), out)
		g.Approve(pending)
		assert.Contains(t, out.String(), "Allow tool shell")
		assert.Contains(t, out.String(), `"command":"ls"`)
		assert.Contains(t, out.String(), "[y/N]")
	})

	t.Run("long arguments are truncated in the prompt", func(t *testing.T) {
		out := &bytes.Buffer{}
		g := NewGate(false, strings.NewReader("y\n"), out)
		g.Approve(PendingApproval{
			Tool: "write_file",
			Args: map[string]any{"content": strings.Repeat("a", 500)},
		})
		assert.Contains(t, out.String(), "...}")
		assert.Less(t, len(out.String()), 250)
	})

	t.Run("no arguments", func(t *testing.T) {
		out := &bytes.Buffer{}
		g := NewGate(false, strings.NewReader("y\n"), out)
		g.Approve(PendingApproval{Tool: "probe"})
		assert.Contains(t, out.String(), "Allow tool probe? [y/N]")
	})
}
