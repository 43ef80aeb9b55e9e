/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// history.go implements "llmsh history": lists recorded chat sessions
// and shows transcripts.

package cmd

import (
	"fmt"
	"strconv"

	"github.com/jpl-au/llmsh/internal/format"
	"github.com/jpl-au/llmsh/internal/history"
	"github.com/jpl-au/llmsh/internal/llm"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [session]",
	Short: "List recorded chat sessions, or show one transcript",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(history.DefaultPath())
		if err != nil {
			return PrintJSONError(err)
		}
		defer store.Close()

		if len(args) == 1 {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return PrintJSONError(fmt.Errorf("invalid session id %q", args[0]))
			}
			return showSession(cmd, store, id)
		}

		sessions, err := store.Recent(cmd.Context(), historyLimit)
		if err != nil {
			return PrintJSONError(err)
		}
		if JSON() {
			return PrintJSON(sessions)
		}
		if len(sessions) == 0 {
			fmt.Fprintln(Out(), "No recorded sessions")
			return nil
		}
		for _, s := range sessions {
			fmt.Fprintf(Out(), "%d  %s  %d messages\n",
				s.ID, s.Started.Format("2006-01-02 15:04"), s.Messages)
		}
		return nil
	},
}

func showSession(cmd *cobra.Command, store *history.Store, id int64) error {
	msgs, err := store.Messages(cmd.Context(), id)
	if err != nil {
		return PrintJSONError(err)
	}
	if JSON() {
		return PrintJSON(msgs)
	}
	for _, m := range msgs {
		switch llm.Role(m.Role) {
		case llm.RoleAssistant:
			fmt.Fprint(Out(), format.Markdown(m.Content))
		default:
			fmt.Fprintf(Out(), "[%s] %s\n", m.Role, m.Content)
		}
	}
	return nil
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Maximum sessions to list")
	rootCmd.AddCommand(historyCmd)
}
