/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// config.go implements "llmsh config": get/set of configuration keys.
//
// With no arguments, all keys are listed. With one argument, the value
// is printed. With two, the value is set and saved.

package cmd

import (
	"fmt"
	"sort"

	"github.com/jpl-au/llmsh/internal/config"
	"github.com/spf13/cobra"
)

var configLocal bool

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set configuration values.

Keys: ` + fmt.Sprint(config.ValidKeys()) + `

Reads prefer local (.llmsh/config.yaml) over global (~/.llmsh/config.yaml).
Writes go to global unless --local is given.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		if len(args) == 2 {
			return configSet(args[0], args[1])
		}

		cfg, err := config.Load()
		if err != nil {
			return PrintJSONError(err)
		}

		if len(args) == 1 {
			value, err := cfg.Get(args[0])
			if err != nil {
				return PrintJSONError(err)
			}
			if JSON() {
				return PrintJSON(map[string]string{args[0]: value})
			}
			fmt.Fprintln(Out(), value)
			return nil
		}

		all := cfg.All()
		if JSON() {
			return PrintJSON(all)
		}
		keys := make([]string, 0, len(all))
		for k := range all {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(Out(), "%s = %s\n", k, all[k])
		}
		return nil
	},
}

func configSet(key, value string) error {
	scope := config.ScopeGlobal
	if configLocal {
		scope = config.ScopeLocal
	}

	cfg, err := config.LoadScope(scope)
	if err != nil {
		return PrintJSONError(err)
	}
	if err := cfg.Set(key, value); err != nil {
		return PrintJSONError(err)
	}
	if err := cfg.Validate(); err != nil {
		return PrintJSONError(err)
	}
	if err := cfg.Save(); err != nil {
		return PrintJSONError(err)
	}

	if JSON() {
		return PrintJSON(map[string]string{key: value})
	}
	fmt.Fprintf(Out(), "%s = %s\n", key, value)
	return nil
}

func init() {
	configCmd.Flags().BoolVar(&configLocal, "local", false, "Write to the local project config")
	rootCmd.AddCommand(configCmd)
}
