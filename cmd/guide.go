/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// guide.go implements the "llmsh guide" command for documentation access.
//
// Guides are embedded in the binary via the guide package, ensuring
// documentation is always available without external files. Terminal
// output gets glamour rendering for readability; pipe/redirect gets raw
// markdown for machine consumption and LLM context loading.

package cmd

import (
	"fmt"
	"strings"

	"github.com/jpl-au/llmsh/guide"
	"github.com/jpl-au/llmsh/internal/format"
	"github.com/spf13/cobra"
)

var guideCmd = &cobra.Command{
	Use:   "guide [page]",
	Short: "Show the llmsh usage guide",
	Long: `Outputs the llmsh guide for LLMs and humans.

  llmsh guide           # main guide
  llmsh guide config    # configuration keys and scopes
  llmsh guide mcp       # external tool providers`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}

		content, err := guide.Get(name)
		if err != nil {
			available, listErr := guide.List()
			if listErr != nil {
				return listErr
			}
			return PrintJSONError(fmt.Errorf("guide %q not found. Available: %s", name, strings.Join(available, ", ")))
		}

		fmt.Fprint(Out(), format.Markdown(content))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(guideCmd)
}
