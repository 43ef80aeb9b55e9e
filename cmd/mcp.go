/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// mcp.go implements the "llmsh mcp" command group: provider listing,
// connect/disconnect, and the static install catalog. These are thin
// wrappers over the registry contracts.

package cmd

import (
	"fmt"

	"github.com/jpl-au/llmsh/internal/format"
	"github.com/jpl-au/llmsh/internal/log"
	"github.com/jpl-au/llmsh/internal/registry"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Manage external tool providers",
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

var mcpListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured providers and their connection state",
	RunE: func(cmd *cobra.Command, _ []string) error {
		servers := loadServers()
		results := reg.ConnectAll(cmd.Context(), servers.Servers)
		for _, res := range results {
			log.Event("mcp:connect", "connect").Provider(res.ID).Write(res.Err)
		}

		infos := reg.List()
		if JSON() {
			return PrintJSON(infos)
		}
		format.Providers(Out(), infos)
		return nil
	},
}

var mcpConnectCmd = &cobra.Command{
	Use:   "connect <id>",
	Short: "Connect one configured provider",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		servers := loadServers()
		spec, ok := servers.Servers[id]
		if !ok {
			return PrintJSONError(fmt.Errorf("provider %s not configured (see 'llmsh mcp search')", id))
		}

		res := reg.Connect(cmd.Context(), id, spec)
		log.Event("mcp:connect", "connect").
			Provider(id).
			Detail("tools", len(res.Tools)).
			Write(res.Err)
		if res.Err != nil {
			return PrintJSONError(res.Err)
		}

		if JSON() {
			return PrintJSON(res)
		}
		fmt.Fprintf(Out(), "connected %s (%d tools)\n", id, len(res.Tools))
		return nil
	},
}

var mcpDisconnectCmd = &cobra.Command{
	Use:   "disconnect <id>",
	Short: "Disconnect a provider and release its process",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		id := args[0]
		err := reg.Disconnect(id)
		log.Event("mcp:disconnect", "disconnect").Provider(id).Write(err)
		if err != nil {
			return PrintJSONError(err)
		}
		fmt.Fprintf(Out(), "disconnected %s\n", id)
		return nil
	},
}

var mcpSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the catalog of known providers",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		query := ""
		if len(args) > 0 {
			query = args[0]
		}
		matches := registry.SearchKnown(query)
		if JSON() {
			return PrintJSON(matches)
		}
		if len(matches) == 0 {
			fmt.Fprintf(Out(), "No catalog entries matching %q\n", query)
			return nil
		}
		for _, p := range matches {
			fmt.Fprintf(Out(), "%-12s %s\n", p.ID, p.Description)
		}
		return nil
	},
}

var mcpInstallCmd = &cobra.Command{
	Use:   "install <id>",
	Short: "Add a catalog provider to the configuration",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		p, err := registry.Install(registry.ConfigPath(), args[0])
		if err != nil {
			return PrintJSONError(err)
		}

		if JSON() {
			return PrintJSON(p)
		}
		fmt.Fprintf(Out(), "installed %s\n", p.ID)
		for _, name := range p.RequiredEnv {
			fmt.Fprintf(Out(), "  set %s in %s before connecting\n", name, registry.ConfigPath())
		}
		return nil
	},
}

func init() {
	mcpCmd.AddCommand(mcpListCmd, mcpConnectCmd, mcpDisconnectCmd, mcpSearchCmd, mcpInstallCmd)
	rootCmd.AddCommand(mcpCmd)
}
