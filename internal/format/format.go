// Package format provides output formatting utilities for CLI display.
//
// Centralises presentation concerns - markdown rendering, column
// alignment for tool and provider listings - so command implementations
// focus on behaviour.
package format

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/jpl-au/llmsh/internal/registry"
	"github.com/jpl-au/llmsh/internal/tool"
	"golang.org/x/term"
)

// Markdown renders markdown for terminal display. Falls back to the
// raw text when stdout is not a terminal or rendering fails.
func Markdown(content string) string {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return content
	}
	rendered, err := glamour.Render(content, "dark")
	if err != nil {
		return content
	}
	return rendered
}

// Tools prints tool definitions as an aligned name/description listing.
func Tools(w io.Writer, defs []tool.Definition) {
	maxName := 4 // minimum "NAME"
	for _, d := range defs {
		if len(d.Name) > maxName {
			maxName = len(d.Name)
		}
	}
	fmt.Fprintf(w, "%-*s  %s\n", maxName, "NAME", "DESCRIPTION")
	for _, d := range defs {
		fmt.Fprintf(w, "%-*s  %s\n", maxName, d.Name, firstLine(d.Description))
	}
}

// Providers prints provider state and tool counts.
func Providers(w io.Writer, infos []registry.ProviderInfo) {
	if len(infos) == 0 {
		fmt.Fprintln(w, "No providers configured. See 'llmsh mcp search'.")
		return
	}
	for _, info := range infos {
		switch info.State {
		case registry.StateConnected:
			fmt.Fprintf(w, "%s  connected (%d tools)\n", info.ID, len(info.Tools))
			for _, name := range info.Tools {
				fmt.Fprintf(w, "  %s\n", name)
			}
		case registry.StateFailed:
			fmt.Fprintf(w, "%s  failed: %s\n", info.ID, info.Reason)
		default:
			fmt.Fprintf(w, "%s  %s\n", info.ID, info.State)
		}
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
