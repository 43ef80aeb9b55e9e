// session.go binds the registry to the MCP protocol via mcp-go's stdio
// client.
//
// The session interface exists so registry logic can be tested against
// fakes; only this file knows the wire library. The registry is a
// protocol client only and never redefines the protocol.

package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jpl-au/llmsh/internal/tool"
	"github.com/jpl-au/llmsh/internal/version"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// session is the protocol connection to one provider process.
type session interface {
	initialize(ctx context.Context) error
	listTools(ctx context.Context) ([]tool.Definition, error)
	callTool(ctx context.Context, name string, args map[string]any) (string, error)
	close() error
}

// dialer launches a provider process and opens a protocol session over
// its standard streams.
type dialer func(spec ServerSpec) (session, error)

// dialStdio is the production dialer. Launching starts the child
// process immediately; spec.Env entries are merged over the ambient
// environment by the transport.
func dialStdio(spec ServerSpec) (session, error) {
	env := make([]string, 0, len(spec.Env))
	for k, v := range spec.Env {
		env = append(env, k+"="+v)
	}
	c, err := client.NewStdioMCPClient(spec.Command, env, spec.Args...)
	if err != nil {
		return nil, fmt.Errorf("spawn %s: %w", spec.Command, err)
	}
	return &mcpSession{client: c}, nil
}

// mcpSession adapts an mcp-go client to the session interface.
type mcpSession struct {
	client *client.Client
}

func (s *mcpSession) initialize(ctx context.Context) error {
	req := mcp.InitializeRequest{}
	req.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	req.Params.ClientInfo = mcp.Implementation{Name: "llmsh", Version: version.Short()}
	req.Params.Capabilities = mcp.ClientCapabilities{}

	if _, err := s.client.Initialize(ctx, req); err != nil {
		return fmt.Errorf("initialize handshake: %w", err)
	}
	return nil
}

func (s *mcpSession) listTools(ctx context.Context) ([]tool.Definition, error) {
	result, err := s.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}

	defs := make([]tool.Definition, 0, len(result.Tools))
	for _, t := range result.Tools {
		defs = append(defs, tool.Definition{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  schemaFromMCP(t.InputSchema),
		})
	}
	return defs, nil
}

func (s *mcpSession) callTool(ctx context.Context, name string, args map[string]any) (string, error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	result, err := s.client.CallTool(ctx, req)
	if err != nil {
		return "", fmt.Errorf("call %s: %w", name, err)
	}

	text := extractContent(result.Content)
	if result.IsError {
		return "", fmt.Errorf("tool %s failed: %s", name, text)
	}
	return text, nil
}

func (s *mcpSession) close() error {
	return s.client.Close()
}

// extractContent joins text parts with newlines and serialises anything
// else so no content shape is ever dropped silently.
func extractContent(content []mcp.Content) string {
	parts := make([]string, 0, len(content))
	for _, item := range content {
		if tc, ok := item.(mcp.TextContent); ok {
			parts = append(parts, tc.Text)
			continue
		}
		if data, err := json.Marshal(item); err == nil {
			parts = append(parts, string(data))
		}
	}
	return strings.Join(parts, "\n")
}

// schemaFromMCP converts a provider-declared input schema to the local
// schema type. Property entries the provider describes loosely keep a
// bare type.
func schemaFromMCP(in mcp.ToolInputSchema) tool.Schema {
	props := make(map[string]tool.Property, len(in.Properties))
	for name, raw := range in.Properties {
		p := tool.Property{Type: "string"}
		if m, ok := raw.(map[string]any); ok {
			if t, ok := m["type"].(string); ok {
				p.Type = t
			}
			if d, ok := m["description"].(string); ok {
				p.Description = d
			}
		}
		props[name] = p
	}
	typ := in.Type
	if typ == "" {
		typ = "object"
	}
	return tool.Schema{Type: typ, Properties: props, Required: in.Required}
}
