// file.go implements the read and write tools.

package builtin

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/llmsh/internal/tool"
)

func readTool() tool.Builtin {
	return tool.Builtin{
		Definition: tool.Definition{
			Name:        "read_file",
			Description: "Read a file's content with 1-based line numbers. Use offset and limit to page through large files.",
			Parameters: tool.Object(map[string]tool.Property{
				"path":   {Type: "string", Description: "Path of the file to read"},
				"offset": {Type: "number", Description: "1-based line to start from (default 1)"},
				"limit":  {Type: "number", Description: "Maximum number of lines to return"},
			}, "path"),
		},
		Run: func(_ context.Context, args map[string]any) (string, error) {
			return readFile(argString(args, "path"), argInt(args, "offset"), argInt(args, "limit"))
		},
	}
}

func readFile(path string, offset, limit int) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("file not found: %s", path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")

	if offset < 1 {
		offset = 1
	}
	if offset > len(lines) {
		return "", fmt.Errorf("offset %d is past the end of %s (%d lines)", offset, path, len(lines))
	}
	end := len(lines)
	if limit > 0 && offset-1+limit < end {
		end = offset - 1 + limit
	}

	var b strings.Builder
	for i := offset - 1; i < end; i++ {
		fmt.Fprintf(&b, "%d: %s\n", i+1, lines[i])
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

func writeTool() tool.Builtin {
	return tool.Builtin{
		Definition: tool.Definition{
			Name:        "write_file",
			Description: "Write content to a file, creating parent directories as needed. Overwrites any existing file.",
			Parameters: tool.Object(map[string]tool.Property{
				"path":    {Type: "string", Description: "Path of the file to write"},
				"content": {Type: "string", Description: "Content to write"},
			}, "path", "content"),
		},
		Run: func(_ context.Context, args map[string]any) (string, error) {
			return writeFile(argString(args, "path"), argString(args, "content"))
		},
	}
}

func writeFile(path, content string) (string, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	lines := strings.Count(content, "\n")
	if content != "" && !strings.HasSuffix(content, "\n") {
		lines++
	}
	return fmt.Sprintf("Wrote %d lines to %s", lines, path), nil
}

// readRaw returns a file's content without line numbering.
func readRaw(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("file not found: %s", path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// writeRaw writes content back without creating directories; edit only
// ever touches an existing file.
func writeRaw(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
