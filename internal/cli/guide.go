package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magpiehq/magpie/internal/mcp"
	"github.com/magpiehq/magpie/internal/ui"
)

var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Show the MQL language reference",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		display := ui.NewDisplayContext()
		if !display.IsTTY {
			fmt.Print(mcp.AgentGuide)
			return nil
		}
		rendered, err := ui.RenderMarkdown(mcp.AgentGuide, display.TermWidth)
		if err != nil {
			// Fall back to raw markdown when rendering fails.
			fmt.Print(mcp.AgentGuide)
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(guideCmd)
}
