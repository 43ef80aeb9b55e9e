// glob.go implements the filename search tool.
//
// Matching is a restricted name/suffix match against each entry's base
// name rather than full recursive-glob semantics; patterns like "*.go"
// and "config.yaml" behave as expected, "**" does not.

package builtin

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/jpl-au/llmsh/internal/tool"
)

const maxGlobResults = 100

func globTool() tool.Builtin {
	return tool.Builtin{
		Definition: tool.Definition{
			Name:        "find_files",
			Description: "Find files by name pattern (e.g. *.go, README.md). Returns the first " + fmt.Sprintf("%d", maxGlobResults) + " matches.",
			Parameters: tool.Object(map[string]tool.Property{
				"pattern": {Type: "string", Description: "Filename pattern to match"},
				"dir":     {Type: "string", Description: "Directory to search (default: current)"},
			}, "pattern"),
		},
		Run: func(_ context.Context, args map[string]any) (string, error) {
			dir := argString(args, "dir")
			if dir == "" {
				dir = "."
			}
			return findFiles(dir, argString(args, "pattern"))
		},
	}
}

func findFiles(dir, pattern string) (string, error) {
	var matches []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if d.IsDir() {
			if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if matchName(pattern, d.Name()) {
			matches = append(matches, path)
			if len(matches) >= maxGlobResults {
				return filepath.SkipAll
			}
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("search %s: %w", dir, err)
	}

	if len(matches) == 0 {
		return fmt.Sprintf("No files matching %q", pattern), nil
	}
	return strings.Join(matches, "\n"), nil
}

// matchName matches a base name against the pattern: glob metacharacters
// use filepath.Match, plain patterns match by exact name or suffix.
func matchName(pattern, name string) bool {
	if strings.ContainsAny(pattern, "*?[") {
		ok, err := filepath.Match(pattern, name)
		return err == nil && ok
	}
	return name == pattern || strings.HasSuffix(name, pattern)
}
