// Package llm defines the seam between the conversation loop and a
// language-model backend: message and tool-call types, the streaming
// Client interface, and a scripted implementation for tests and demos.
//
// Provider wire formats are deliberately not implemented here; a real
// backend client plugs in behind the Client interface.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrTransport indicates a backend communication failure. The
// orchestrator aborts the current turn on transport errors but never
// the process.
var ErrTransport = errors.New("backend transport failure")

// Role identifies a message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall is a backend request to execute a tool.
type ToolCall struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// Message is one entry in the conversation history.
type Message struct {
	Role       Role       `json:"role"`
	Content    string     `json:"content,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`   // assistant messages requesting tools
	ToolCallID string     `json:"tool_call_id,omitempty"` // tool result messages
}

// NewUserMessage creates a user message with text content.
func NewUserMessage(text string) Message {
	return Message{Role: RoleUser, Content: text}
}

// NewAssistantMessage creates an assistant message with text content
// and any tool calls it issued.
func NewAssistantMessage(text string, calls []ToolCall) Message {
	return Message{Role: RoleAssistant, Content: text, ToolCalls: calls}
}

// NewToolResultMessage creates a message carrying a tool's output back
// to the backend.
func NewToolResultMessage(callID, content string) Message {
	return Message{Role: RoleTool, ToolCallID: callID, Content: content}
}

// ToolDefinition describes a tool in the backend's function-calling
// format.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema"`
}

// Request is the input for one model response.
type Request struct {
	Model    string           `json:"model,omitempty"`
	System   string           `json:"system,omitempty"`
	Messages []Message        `json:"messages"`
	Tools    []ToolDefinition `json:"tools,omitempty"`
}

// Chunk is one streaming event: a text fragment, a tool-call request,
// or a transport error. The stream channel closes when the response
// completes.
type Chunk struct {
	Text string
	Call *ToolCall
	Err  error
}

// Client is the interface for LLM backend communication.
type Client interface {
	Stream(ctx context.Context, req Request) (<-chan Chunk, error)
}

// New constructs the configured backend client by name.
func New(name string) (Client, error) {
	switch name {
	case "scripted":
		return &Scripted{}, nil
	default:
		return nil, fmt.Errorf("unsupported backend %q (supported: scripted)", name)
	}
}
