// edit.go implements the exact search-and-replace tool.
//
// An absent search string fails with a specific message and leaves the
// file untouched. The result includes a compact diff of the change so
// the model can verify what it edited.

package builtin

import (
	"context"
	"fmt"
	"strings"

	"github.com/jpl-au/llmsh/internal/tool"
	"github.com/sergi/go-diff/diffmatchpatch"
)

func editTool() tool.Builtin {
	return tool.Builtin{
		Definition: tool.Definition{
			Name:        "edit_file",
			Description: "Replace exact text in a file. Replaces the first occurrence unless all is true.",
			Parameters: tool.Object(map[string]tool.Property{
				"path": {Type: "string", Description: "Path of the file to edit"},
				"old":  {Type: "string", Description: "Exact text to find"},
				"new":  {Type: "string", Description: "Replacement text"},
				"all":  {Type: "boolean", Description: "Replace every occurrence (default: first only)"},
			}, "path", "old"),
		},
		Run: func(_ context.Context, args map[string]any) (string, error) {
			return editFile(argString(args, "path"),
				argString(args, "old"), argString(args, "new"),
				argBool(args, "all"))
		},
	}
}

func editFile(path, old, newText string, all bool) (string, error) {
	out, err := readRaw(path)
	if err != nil {
		return "", err
	}
	content := out

	count := strings.Count(content, old)
	if old == "" || count == 0 {
		return "", fmt.Errorf("could not find text to replace in %s", path)
	}

	replaced := count
	if all {
		content = strings.ReplaceAll(content, old, newText)
	} else {
		content = strings.Replace(content, old, newText, 1)
		replaced = 1
	}

	if err := writeRaw(path, content); err != nil {
		return "", err
	}

	result := fmt.Sprintf("Replaced %d occurrence(s) in %s", replaced, path)
	if preview := diffPreview(old, newText); preview != "" {
		result += "\n" + preview
	}
	return result, nil
}

// diffPreview renders the replacement as removed/added lines.
func diffPreview(old, newText string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(old, newText, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	for _, d := range diffs {
		text := strings.TrimSuffix(d.Text, "\n")
		if text == "" {
			continue
		}
		for _, line := range strings.Split(text, "\n") {
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				b.WriteString("- " + line + "\n")
			case diffmatchpatch.DiffInsert:
				b.WriteString("+ " + line + "\n")
			}
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}
