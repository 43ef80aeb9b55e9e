// Package orchestrator drives one conversational turn: it streams model
// output through the think filter, intercepts tool-call requests, runs
// the approval gate, dispatches via the tool catalog, feeds results
// back, and repeats until the backend settles with no outstanding
// calls.
//
// Failure semantics: a backend transport failure aborts only the
// current turn; it is reported to the caller and the orchestrator
// returns to Idle with history intact. Tool failures never abort a
// turn at all - they become tool output.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jpl-au/llmsh/internal/filter"
	"github.com/jpl-au/llmsh/internal/llm"
	"github.com/jpl-au/llmsh/internal/tool"
)

// DeniedResult is fed back to the backend in place of output when the
// user denies a tool call.
const DeniedResult = "Tool execution not permitted by user"

// DefaultMaxIterations bounds the stream/execute cycles within a turn.
const DefaultMaxIterations = 50

// Config holds orchestrator configuration.
type Config struct {
	Model         string
	System        string
	MaxIterations int // 0 selects DefaultMaxIterations
}

// TurnStats summarises one completed turn.
type TurnStats struct {
	FilteredChars int // characters of reasoning hidden from presentation
	ToolCalls     int // calls dispatched
	Denied        int // calls denied at the gate
}

// Orchestrator manages the conversation loop. Not safe for concurrent
// Run calls; the session is a single cooperative flow.
type Orchestrator struct {
	client   llm.Client
	catalog  *tool.Catalog
	gate     *Gate
	config   Config
	state    *stateMachine
	messages []llm.Message
	out      io.Writer // presentation writer for filtered text
}

// New creates an orchestrator over the given backend client, tool
// catalog, and approval gate. Filtered model text is written to out.
func New(client llm.Client, catalog *tool.Catalog, gate *Gate, out io.Writer, config Config) *Orchestrator {
	if config.MaxIterations <= 0 {
		config.MaxIterations = DefaultMaxIterations
	}
	return &Orchestrator{
		client:  client,
		catalog: catalog,
		gate:    gate,
		config:  config,
		state:   newStateMachine(),
		out:     out,
	}
}

// State returns the current turn state.
func (o *Orchestrator) State() State {
	return o.state.current
}

// History returns the conversation history accumulated so far.
func (o *Orchestrator) History() []llm.Message {
	return append([]llm.Message(nil), o.messages...)
}

// Run executes one turn: user input in, streamed responses and tool
// cycles until the backend returns a response with no tool request.
func (o *Orchestrator) Run(ctx context.Context, input string) (TurnStats, error) {
	var stats TurnStats

	if err := o.state.transition(StateStreaming); err != nil {
		return stats, err
	}
	o.messages = append(o.messages, llm.NewUserMessage(input))

	for i := 0; i < o.config.MaxIterations; i++ {
		text, calls, err := o.streamResponse(ctx, &stats)
		if err != nil {
			o.state.reset()
			return stats, err
		}

		o.messages = append(o.messages, llm.NewAssistantMessage(text, calls))

		if len(calls) == 0 {
			if err := o.state.transition(StateIdle); err != nil {
				return stats, err
			}
			return stats, nil
		}

		for _, call := range calls {
			result, err := o.handleCall(ctx, call, &stats)
			if err != nil {
				o.state.reset()
				return stats, err
			}
			o.messages = append(o.messages, llm.NewToolResultMessage(call.ID, result))
		}
		if err := o.state.transition(StateStreaming); err != nil {
			o.state.reset()
			return stats, err
		}
	}

	o.state.reset()
	return stats, fmt.Errorf("turn exceeded %d iterations", o.config.MaxIterations)
}

// streamResponse opens one model stream and consumes it through the
// think filter, returning visible text and any tool calls requested.
func (o *Orchestrator) streamResponse(ctx context.Context, stats *TurnStats) (string, []llm.ToolCall, error) {
	stream, err := o.client.Stream(ctx, o.buildRequest())
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", llm.ErrTransport, err)
	}

	f := filter.New()
	var visible []byte
	var calls []llm.ToolCall
	received := 0

	for chunk := range stream {
		switch {
		case chunk.Err != nil:
			return "", nil, fmt.Errorf("%w: %v", llm.ErrTransport, chunk.Err)
		case chunk.Call != nil:
			calls = append(calls, *chunk.Call)
		default:
			received += len(chunk.Text)
			out := f.Write(chunk.Text)
			visible = append(visible, out...)
			fmt.Fprint(o.out, out)
		}
	}

	tail := f.Flush()
	visible = append(visible, tail...)
	fmt.Fprint(o.out, tail)

	stats.FilteredChars += received - len(visible)
	return string(visible), calls, nil
}

// handleCall runs the approval gate and, if approved, dispatches the
// call. The returned string is always a valid tool result: success
// text, a descriptive error, or the denial message.
func (o *Orchestrator) handleCall(ctx context.Context, call llm.ToolCall, stats *TurnStats) (string, error) {
	if err := o.state.transition(StateToolRequested); err != nil {
		return "", err
	}
	if err := o.state.transition(StateApproving); err != nil {
		return "", err
	}

	pending := PendingApproval{Tool: call.Name, Args: call.Arguments, RequestedAt: time.Now()}
	if !o.gate.Approve(pending) {
		stats.Denied++
		return DeniedResult, nil
	}

	if err := o.state.transition(StateExecuting); err != nil {
		return "", err
	}
	stats.ToolCalls++

	result, err := o.catalog.Dispatch(ctx, call.Name, call.Arguments)
	if errors.Is(err, tool.ErrUnknownTool) {
		return "Error: " + err.Error(), nil
	}
	if err != nil {
		return "Error: " + err.Error(), nil
	}
	return result, nil
}

func (o *Orchestrator) buildRequest() llm.Request {
	defs := o.catalog.All()
	tools := make([]llm.ToolDefinition, 0, len(defs))
	for _, d := range defs {
		tools = append(tools, llm.ToolDefinition{
			Name:        d.Name,
			Description: d.Description,
			InputSchema: d.Parameters.Map(),
		})
	}
	return llm.Request{
		Model:    o.config.Model,
		System:   o.config.System,
		Messages: o.messages,
		Tools:    tools,
	}
}
