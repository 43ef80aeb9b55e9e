// grep.go implements the line-oriented content search tool.

package builtin

import (
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jpl-au/llmsh/internal/tool"
)

const maxGrepLines = 50

func grepTool() tool.Builtin {
	return tool.Builtin{
		Definition: tool.Definition{
			Name:        "search_content",
			Description: "Search file contents with a regular expression. Returns the first " + fmt.Sprintf("%d", maxGrepLines) + " matching lines as path:line: content.",
			Parameters: tool.Object(map[string]tool.Property{
				"pattern":     {Type: "string", Description: "Regular expression to search for"},
				"dir":         {Type: "string", Description: "Directory to search (default: current)"},
				"include":     {Type: "string", Description: "Only search files whose name matches this pattern (e.g. *.go)"},
				"ignore_case": {Type: "boolean", Description: "Case-insensitive matching"},
			}, "pattern"),
		},
		Run: func(_ context.Context, args map[string]any) (string, error) {
			dir := argString(args, "dir")
			if dir == "" {
				dir = "."
			}
			return searchContent(dir, argString(args, "pattern"),
				argString(args, "include"), argBool(args, "ignore_case"))
		},
	}
}

func searchContent(dir, pattern, include string, ignoreCase bool) (string, error) {
	flags := ""
	if ignoreCase {
		flags = "(?i)"
	}
	re, err := regexp.Compile(flags + pattern)
	if err != nil {
		return "", fmt.Errorf("invalid regex: %w", err)
	}

	var hits []string
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if include != "" && !matchName(include, d.Name()) {
			return nil
		}
		n, err := grepFile(re, path, maxGrepLines-len(hits), &hits)
		if err != nil || n == 0 {
			return nil // unreadable or binary files are skipped
		}
		if len(hits) >= maxGrepLines {
			return filepath.SkipAll
		}
		return nil
	})
	if walkErr != nil {
		return "", fmt.Errorf("search %s: %w", dir, walkErr)
	}

	if len(hits) == 0 {
		return fmt.Sprintf("No matches for %q", pattern), nil
	}
	return strings.Join(hits, "\n"), nil
}

func grepFile(re *regexp.Regexp, path string, budget int, hits *[]string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	found := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() && found < budget {
		line++
		text := scanner.Text()
		if re.MatchString(text) {
			*hits = append(*hits, fmt.Sprintf("%s:%d: %s", path, line, text))
			found++
		}
	}
	return found, scanner.Err()
}
