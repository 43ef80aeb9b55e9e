package registry

import (
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractContent(t *testing.T) {
	t.Run("joins text parts", func(t *testing.T) {
		got := extractContent([]mcp.Content{
			mcp.TextContent{Type: "text", Text: "line one"},
			mcp.TextContent{Type: "text", Text: "line two"},
		})
		assert.Equal(t, "line one\nline two", got)
	})

	t.Run("empty content", func(t *testing.T) {
		assert.Equal(t, "", extractContent(nil))
	})

	t.Run("non-text parts are serialised", func(t *testing.T) {
		got := extractContent([]mcp.Content{
			mcp.TextContent{Type: "text", Text: "caption"},
			mcp.ImageContent{Type: "image", Data: "aGk=", MIMEType: "image/png"},
		})
		assert.Contains(t, got, "caption")
		assert.Contains(t, got, "image/png")
	})
}

func TestSchemaFromMCP(t *testing.T) {
	in := mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]any{
			"url": map[string]any{
				"type":        "string",
				"description": "Page to open",
			},
			"depth": map[string]any{"type": "integer"},
			"loose": "not-a-map",
		},
		Required: []string{"url"},
	}

	s := schemaFromMCP(in)
	assert.Equal(t, "object", s.Type)
	assert.Equal(t, []string{"url"}, s.Required)

	require.Contains(t, s.Properties, "url")
	assert.Equal(t, "string", s.Properties["url"].Type)
	assert.Equal(t, "Page to open", s.Properties["url"].Description)
	assert.Equal(t, "integer", s.Properties["depth"].Type)

	// Loosely described properties fall back to string.
	assert.Equal(t, "string", s.Properties["loose"].Type)
}

func TestSchemaFromMCPDefaultsType(t *testing.T) {
	s := schemaFromMCP(mcp.ToolInputSchema{})
	assert.Equal(t, "object", s.Type)
}
