/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// Design: the provider registry is constructed here and injected into
// the commands that need it rather than living as package state in the
// registry package. Commands that never talk to providers (config,
// version, history) skip provider startup entirely.

package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/jpl-au/llmsh/internal/log"
	"github.com/jpl-au/llmsh/internal/registry"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "llmsh",
	Short: "Interactive LLM assistant with approval-gated tool execution",
	Long:  `An assistant CLI that converses with a language-model backend which can request execution of built-in tools (shell, file I/O, search, web fetch) and tools supplied by external MCP providers.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}
		return nil
	},
}

// reg is the process-wide provider registry, constructed in Execute and
// handed to commands. Owned here; released before exit.
var reg *registry.Registry

// Execute runs the root command and handles process lifecycle.
// Opens audit logging, executes the command, and ensures provider
// processes are released before exit. Exit code 1 indicates error.
func Execute() {
	// Initialise audit logger (warn if it fails, but continue)
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	defer log.Close()

	reg = registry.New()
	err := rootCmd.Execute()
	reg.DisconnectAll()

	if err != nil {
		os.Exit(1)
	}
}

// Registry returns the injected provider registry.
func Registry() *registry.Registry {
	return reg
}

// RootCmd returns the root command for testing.
func RootCmd() *cobra.Command {
	return rootCmd
}
