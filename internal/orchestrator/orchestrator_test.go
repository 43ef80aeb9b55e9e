package orchestrator

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/jpl-au/llmsh/internal/builtin"
	"github.com/jpl-au/llmsh/internal/llm"
	"github.com/jpl-au/llmsh/internal/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingTool captures dispatches so tests can assert whether (and
// with what) it ran.
type recordingTool struct {
	calls []map[string]any
	out   string
}

func (r *recordingTool) builtin(name string) tool.Builtin {
	return tool.Builtin{
		Definition: tool.Definition{Name: name, Parameters: tool.Object(nil)},
		Run: func(_ context.Context, args map[string]any) (string, error) {
			r.calls = append(r.calls, args)
			return r.out, nil
		},
	}
}

func newTestOrchestrator(responses []llm.ScriptedResponse, auto bool, in string) (*Orchestrator, *recordingTool, *bytes.Buffer, *llm.Scripted) {
	rec := &recordingTool{out: "tool output"}
	catalog := tool.NewCatalog([]tool.Builtin{rec.builtin("probe")}, nil)
	client := &llm.Scripted{Responses: responses, ChunkSize: 5}
	out := &bytes.Buffer{}
	gate := NewGate(auto, strings.NewReader(in), out)
	o := New(client, catalog, gate, out, Config{Model: "test"})
	return o, rec, out, client
}

func TestRunPlainResponse(t *testing.T) {
	o, rec, out, _ := newTestOrchestrator([]llm.ScriptedResponse{
		{Text: "Nothing to do here."},
	}, true, "")

	stats, err := o.Run(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "Nothing to do here.", out.String())
	assert.Equal(t, 0, stats.ToolCalls)
	assert.Empty(t, rec.calls)
	assert.Equal(t, StateIdle, o.State())

	history := o.History()
	require.Len(t, history, 2)
	assert.Equal(t, llm.RoleUser, history[0].Role)
	assert.Equal(t, llm.RoleAssistant, history[1].Role)
}

func TestRunFiltersReasoning(t *testing.T) {
	o, _, out, _ := newTestOrchestrator([]llm.ScriptedResponse{
		{Text: "<think>let me reason about this</think>The answer is 4."},
	}, true, "")

	stats, err := o.Run(context.Background(), "2+2?")
	require.NoError(t, err)
	assert.Equal(t, "The answer is 4.", out.String())
	assert.Positive(t, stats.FilteredChars)

	// History records what was shown, not the hidden reasoning.
	history := o.History()
	assert.Equal(t, "The answer is 4.", history[1].Content)
}

func TestRunToolCycle(t *testing.T) {
	o, rec, _, client := newTestOrchestrator([]llm.ScriptedResponse{
		{Text: "Checking.", Calls: []llm.ToolCall{{Name: "probe", Arguments: map[string]any{"k": "v"}}}},
		{Text: "All done."},
	}, true, "")

	stats, err := o.Run(context.Background(), "check it")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ToolCalls)
	assert.Equal(t, 0, stats.Denied)
	require.Len(t, rec.calls, 1)
	assert.Equal(t, map[string]any{"k": "v"}, rec.calls[0])
	assert.Equal(t, StateIdle, o.State())

	// user, assistant+call, tool result, final assistant
	history := o.History()
	require.Len(t, history, 4)
	assert.Equal(t, llm.RoleTool, history[2].Role)
	assert.Equal(t, "tool output", history[2].Content)
	assert.Equal(t, history[1].ToolCalls[0].ID, history[2].ToolCallID)

	// The second request carried the tool result back.
	reqs := client.Requests()
	require.Len(t, reqs, 2)
	assert.Len(t, reqs[1].Messages, 3)
}

func TestRunDeniedCall(t *testing.T) {
	// Interactive gate; the user answers "n".
	o, rec, out, _ := newTestOrchestrator([]llm.ScriptedResponse{
		{Calls: []llm.ToolCall{{Name: "probe"}}},
		{Text: "Understood, skipping."},
	}, false, "n\n")

	stats, err := o.Run(context.Background(), "try it")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Denied)
	assert.Equal(t, 0, stats.ToolCalls)

	// The executor never ran, and the backend saw the denial message.
	assert.Empty(t, rec.calls)
	history := o.History()
	assert.Equal(t, DeniedResult, history[2].Content)
	assert.Contains(t, out.String(), "Allow tool probe?")
	assert.Equal(t, StateIdle, o.State())
}

func TestRunApprovedCall(t *testing.T) {
	o, rec, _, _ := newTestOrchestrator([]llm.ScriptedResponse{
		{Calls: []llm.ToolCall{{Name: "probe"}}},
		{Text: "done"},
	}, false, "y\n")

	stats, err := o.Run(context.Background(), "go")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ToolCalls)
	assert.Len(t, rec.calls, 1)
}

func TestRunMultipleCallsInOneResponse(t *testing.T) {
	o, rec, _, _ := newTestOrchestrator([]llm.ScriptedResponse{
		{Calls: []llm.ToolCall{
			{Name: "probe", Arguments: map[string]any{"n": float64(1)}},
			{Name: "probe", Arguments: map[string]any{"n": float64(2)}},
		}},
		{Text: "both done"},
	}, true, "")

	stats, err := o.Run(context.Background(), "do both")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.ToolCalls)
	require.Len(t, rec.calls, 2)
	assert.Equal(t, float64(1), rec.calls[0]["n"])
	assert.Equal(t, float64(2), rec.calls[1]["n"])
}

func TestRunMixedApprovals(t *testing.T) {
	o, rec, _, _ := newTestOrchestrator([]llm.ScriptedResponse{
		{Calls: []llm.ToolCall{{Name: "probe"}, {Name: "probe"}}},
		{Text: "done"},
	}, false, "y\nn\n")

	stats, err := o.Run(context.Background(), "two asks")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ToolCalls)
	assert.Equal(t, 1, stats.Denied)
	assert.Len(t, rec.calls, 1)
	assert.Equal(t, StateIdle, o.State())
}

func TestRunUnknownTool(t *testing.T) {
	o, _, _, _ := newTestOrchestrator([]llm.ScriptedResponse{
		{Calls: []llm.ToolCall{{Name: "vanished"}}},
		{Text: "noted"},
	}, true, "")

	_, err := o.Run(context.Background(), "call it")
	require.NoError(t, err)

	// The failure is fed back as tool output; the turn continues.
	history := o.History()
	assert.Contains(t, history[2].Content, "Error: ")
	assert.Contains(t, history[2].Content, "unknown tool")
	assert.Equal(t, StateIdle, o.State())
}

func TestRunTransportFailure(t *testing.T) {
	o, _, _, _ := newTestOrchestrator([]llm.ScriptedResponse{
		{Fail: "connection reset"},
	}, true, "")

	_, err := o.Run(context.Background(), "hello")
	assert.ErrorIs(t, err, llm.ErrTransport)

	// Aborted turn: back to Idle, history keeps the user message so the
	// session can continue.
	assert.Equal(t, StateIdle, o.State())
	require.Len(t, o.History(), 1)

	// A later turn still works.
	o2, _, out, _ := newTestOrchestrator([]llm.ScriptedResponse{
		{Fail: "reset"},
		{Text: "recovered"},
	}, true, "")
	_, err = o2.Run(context.Background(), "first")
	require.Error(t, err)
	_, err = o2.Run(context.Background(), "second")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "recovered")
}

func TestRunIterationLimit(t *testing.T) {
	// Every response requests another call; the turn must terminate.
	responses := make([]llm.ScriptedResponse, 10)
	for i := range responses {
		responses[i] = llm.ScriptedResponse{Calls: []llm.ToolCall{{Name: "probe"}}}
	}

	rec := &recordingTool{}
	catalog := tool.NewCatalog([]tool.Builtin{rec.builtin("probe")}, nil)
	client := &llm.Scripted{Responses: responses}
	out := &bytes.Buffer{}
	o := New(client, catalog, gateAuto(out), out, Config{MaxIterations: 3})

	_, err := o.Run(context.Background(), "loop")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeded 3 iterations")
	assert.Equal(t, StateIdle, o.State())
}

func gateAuto(out *bytes.Buffer) *Gate {
	return NewGate(true, strings.NewReader(""), out)
}

func TestBuildRequestIncludesTools(t *testing.T) {
	builtins := builtin.All(builtin.Options{})
	catalog := tool.NewCatalog(builtins, nil)
	client := &llm.Scripted{Responses: []llm.ScriptedResponse{{Text: "ok"}}}
	out := &bytes.Buffer{}
	o := New(client, catalog, gateAuto(out), out, Config{Model: "m", System: "be brief"})

	_, err := o.Run(context.Background(), "hi")
	require.NoError(t, err)

	reqs := client.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "m", reqs[0].Model)
	assert.Equal(t, "be brief", reqs[0].System)
	require.Len(t, reqs[0].Tools, len(builtins))
	assert.Equal(t, "shell", reqs[0].Tools[0].Name)
	assert.Equal(t, "object", reqs[0].Tools[0].InputSchema["type"])
}

func TestRunWhileBusy(t *testing.T) {
	o, _, _, _ := newTestOrchestrator(nil, true, "")

	// Force a non-idle state and confirm Run refuses to start.
	require.NoError(t, o.state.transition(StateStreaming))
	_, err := o.Run(context.Background(), "hi")
	assert.ErrorContains(t, err, "invalid state transition")
}
