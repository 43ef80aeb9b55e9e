/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// chat.go implements the "llmsh chat" command: one-shot prompts and the
// interactive session loop.
//
// Design: the command wires the whole stack - backend client, provider
// registry, tool catalog, approval gate, orchestrator - and owns their
// lifecycles. A failed provider connection degrades to built-ins only;
// a failed turn reports and returns to the prompt. Only user interrupt
// or end of input ends the session.

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jpl-au/llmsh/internal/builtin"
	"github.com/jpl-au/llmsh/internal/config"
	"github.com/jpl-au/llmsh/internal/history"
	"github.com/jpl-au/llmsh/internal/llm"
	"github.com/jpl-au/llmsh/internal/log"
	"github.com/jpl-au/llmsh/internal/orchestrator"
	"github.com/jpl-au/llmsh/internal/tool"
	"github.com/spf13/cobra"
)

var chatScript string

var chatCmd = &cobra.Command{
	Use:   "chat [prompt]",
	Short: "Converse with the assistant",
	Long: `Start an interactive session, or run a single prompt when one is given.
The backend may request tool execution; each request is confirmed unless
auto-approve is enabled (--yes or chat.auto_approve).`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		client, err := chatClient(cfg)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		catalog := buildCatalog(ctx, cfg)
		gate := orchestrator.NewGate(AutoApprove() || cfg.AutoApprove(), os.Stdin, Out())
		orch := orchestrator.New(client, catalog, gate, Out(), orchestrator.Config{
			Model: chatModel(cfg),
		})

		store := openTranscripts()
		if store != nil {
			defer store.Close()
		}

		if len(args) > 0 {
			return runTurn(ctx, orch, store, strings.Join(args, " "))
		}
		return runSession(ctx, orch, store)
	},
}

// chatClient resolves the backend client from config, honouring the
// --script override for replayed sessions.
func chatClient(cfg *config.Config) (llm.Client, error) {
	if chatScript != "" {
		return llm.LoadScript(chatScript)
	}
	return llm.New(cfg.BackendName())
}

func chatModel(cfg *config.Config) string {
	if m := Model(); m != "" {
		return m
	}
	return cfg.Model()
}

// buildCatalog connects configured providers and merges their tools
// with the built-ins. Connection failures are reported as status lines;
// the session continues with whatever connected.
func buildCatalog(ctx context.Context, cfg *config.Config) *tool.Catalog {
	servers := loadServers()
	results := reg.ConnectAll(ctx, servers.Servers)
	for _, res := range results {
		log.Event("mcp:connect", "connect").
			Provider(res.ID).
			Detail("tools", len(res.Tools)).
			Write(res.Err)
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "warning: provider %s unavailable: %v\n", res.ID, res.Err)
			continue
		}
		fmt.Fprintf(os.Stderr, "connected %s (%d tools)\n", res.ID, len(res.Tools))
	}

	opts := builtin.Options{
		ShellTimeoutMs: cfg.ShellTimeoutMs(),
		FetchMaxChars:  cfg.FetchMaxChars(),
	}
	return tool.NewCatalog(builtin.All(opts), reg)
}

// openTranscripts opens the session store. Transcripts are best-effort:
// a failure warns and the chat proceeds unrecorded.
func openTranscripts() *history.Store {
	store, err := history.Open(history.DefaultPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: transcripts unavailable: %v\n", err)
		return nil
	}
	return store
}

// runTurn executes one prompt and records it.
func runTurn(ctx context.Context, orch *orchestrator.Orchestrator, store *history.Store, prompt string) error {
	recorded := len(orch.History())

	stats, err := orch.Run(ctx, prompt)
	log.Event("chat:turn", "chat").
		Detail("tool_calls", stats.ToolCalls).
		Detail("denied", stats.Denied).
		Detail("filtered_chars", stats.FilteredChars).
		Write(err)

	if store != nil {
		persistTurn(ctx, store, orch, recorded)
	}
	if err != nil {
		return fmt.Errorf("turn aborted: %w", err)
	}
	fmt.Fprintln(out)
	return nil
}

// runSession reads prompts until end of input or an exit command.
func runSession(ctx context.Context, orch *orchestrator.Orchestrator, store *history.Store) error {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Fprint(out, "> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Fprintln(out)
			return nil
		}
		prompt := strings.TrimSpace(line)
		switch prompt {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		// A failed turn is reported and the session continues; history
		// up to the failure is preserved.
		if err := runTurn(ctx, orch, store, prompt); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
	}
}

// persistTurn appends this turn's new messages to the transcript store.
var sessionID int64

func persistTurn(ctx context.Context, store *history.Store, orch *orchestrator.Orchestrator, from int) {
	var err error
	if sessionID == 0 {
		if sessionID, err = store.BeginSession(ctx); err != nil {
			return
		}
	}
	for _, msg := range orch.History()[from:] {
		content := msg.Content
		if msg.Role == "tool" {
			content = "[" + msg.ToolCallID + "] " + content
		}
		_ = store.Append(ctx, sessionID, string(msg.Role), content)
	}
}

func init() {
	chatCmd.Flags().StringVar(&chatScript, "script", "", "Play responses from a YAML script instead of a live backend")
	rootCmd.AddCommand(chatCmd)
}
