/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// tools.go implements "llmsh tools": lists the merged catalog of
// built-in and provider tools.

package cmd

import (
	"github.com/jpl-au/llmsh/internal/builtin"
	"github.com/jpl-au/llmsh/internal/config"
	"github.com/jpl-au/llmsh/internal/format"
	"github.com/jpl-au/llmsh/internal/registry"
	"github.com/jpl-au/llmsh/internal/tool"
	"github.com/spf13/cobra"
)

var toolsConnect bool

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List available tools",
	Long:  `List built-in tools, plus provider tools when --connect is given.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return PrintJSONError(err)
		}

		opts := builtin.Options{
			ShellTimeoutMs: cfg.ShellTimeoutMs(),
			FetchMaxChars:  cfg.FetchMaxChars(),
		}

		var external tool.ExternalSource
		if toolsConnect {
			servers := loadServers()
			reg.ConnectAll(cmd.Context(), servers.Servers)
			external = reg
		}

		catalog := tool.NewCatalog(builtin.All(opts), external)
		defs := catalog.All()

		if JSON() {
			return PrintJSON(defs)
		}
		format.Tools(Out(), defs)
		return nil
	},
}

// loadServers reads the persisted provider map; missing or malformed
// config yields an empty map.
func loadServers() registry.Config {
	return registry.LoadConfig(registry.ConfigPath())
}

func init() {
	toolsCmd.Flags().BoolVar(&toolsConnect, "connect", false, "Connect configured providers and include their tools")
	rootCmd.AddCommand(toolsCmd)
}
