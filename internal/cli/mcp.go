package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/magpiehq/magpie/internal/mcpclient"
	"github.com/magpiehq/magpie/internal/ui"
)

var (
	mcpClientFlag        string
	mcpWorkspaceName     string
	mcpWorkspacePathFlag string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Manage MCP client integrations",
	Long: `Manage MCP client integrations for magpie.

Install, remove, or inspect the magpie MCP server entry in supported
client config files (Claude Code, Claude Desktop, Cursor).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var mcpInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Add magpie to an MCP client config",
	Long: `Add magpie to an MCP client config file.

Supported clients: claude-code, claude-desktop, cursor

Examples:
  mgp mcp install --client claude-code
  mgp mcp install --client claude-desktop --workspace work`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := mcpclient.Client(mcpClientFlag)
		if !mcpclient.ValidClient(mcpClientFlag) {
			return handleErrorMsg(ErrMCPClientInvalid, fmt.Sprintf("unknown client: %s", mcpClientFlag),
				"Supported clients: claude-code, claude-desktop, cursor")
		}

		cfgPath, err := mcpclient.ConfigPath(client, "")
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		entry := mcpclient.BuildServerEntry(mcpWorkspaceName, mcpWorkspacePathFlag)
		result, err := mcpclient.Install(cfgPath, entry)
		if err != nil {
			return handleError(ErrMCPConfigWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"client":      string(client),
				"config_path": cfgPath,
				"result":      result.String(),
				"entry": map[string]interface{}{
					"command": entry.Command,
					"args":    entry.Args,
				},
			}, nil)
			return nil
		}

		switch result {
		case mcpclient.Installed:
			fmt.Println(ui.Successf("Installed magpie in %s config.", client))
		case mcpclient.Updated:
			fmt.Println(ui.Successf("Updated magpie in %s config.", client))
		case mcpclient.AlreadyInstalled:
			fmt.Println(ui.Infof("Already installed in %s config.", client))
		}
		fmt.Printf("config: %s\n", cfgPath)
		return nil
	},
}

var mcpRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove magpie from an MCP client config",
	Long: `Remove magpie from an MCP client config file.

Supported clients: claude-code, claude-desktop, cursor

Examples:
  mgp mcp remove --client claude-code`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := mcpclient.Client(mcpClientFlag)
		if !mcpclient.ValidClient(mcpClientFlag) {
			return handleErrorMsg(ErrMCPClientInvalid, fmt.Sprintf("unknown client: %s", mcpClientFlag),
				"Supported clients: claude-code, claude-desktop, cursor")
		}

		cfgPath, err := mcpclient.ConfigPath(client, "")
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		removed, err := mcpclient.Remove(cfgPath)
		if err != nil {
			return handleError(ErrMCPConfigWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"client":      string(client),
				"config_path": cfgPath,
				"removed":     removed,
			}, nil)
			return nil
		}

		if removed {
			fmt.Println(ui.Successf("Removed magpie from %s config.", client))
		} else {
			fmt.Println(ui.Infof("Magpie not found in %s config.", client))
		}
		fmt.Printf("config: %s\n", cfgPath)
		return nil
	},
}

var mcpStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show magpie MCP status across all clients",
	Long: `Show magpie MCP status across all supported clients.

Checks each client's config file and reports whether magpie is configured.

Examples:
  mgp mcp status
  mgp mcp status --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		clients := mcpclient.AllClients()
		statuses := make([]map[string]interface{}, 0, len(clients))
		tbl := ui.NewTable(3)
		installed := 0

		for _, client := range clients {
			cfgPath, err := mcpclient.ConfigPath(client, "")
			if err != nil {
				continue
			}

			cs, err := mcpclient.Status(client, cfgPath)
			if err != nil {
				statuses = append(statuses, map[string]interface{}{
					"client":      string(client),
					"config_path": cfgPath,
					"error":       err.Error(),
				})
				tbl.AddRow(string(client), ui.Error("error"), err.Error())
				continue
			}

			entry := map[string]interface{}(nil)
			if cs.Entry != nil {
				entry = map[string]interface{}{
					"command": cs.Entry.Command,
					"args":    cs.Entry.Args,
				}
			}
			statuses = append(statuses, map[string]interface{}{
				"client":      string(cs.Client),
				"config_path": cs.ConfigPath,
				"exists":      cs.Exists,
				"installed":   cs.Installed,
				"entry":       entry,
			})

			switch {
			case cs.Installed && cs.Entry != nil:
				installed++
				tbl.AddRow(string(client), "installed",
					cs.Entry.Command+" "+strings.Join(cs.Entry.Args, " "))
			case !cs.Exists:
				tbl.AddRow(string(client), "no config file", "")
			default:
				tbl.AddRow(string(client), "not installed", "")
			}
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"clients": statuses,
			}, &Meta{Count: installed})
			return nil
		}

		fmt.Print(tbl.String())
		return nil
	},
}

var mcpShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the MCP config snippet for manual setup",
	Long: `Print the JSON config snippet for manual setup.

Outputs the JSON that would be added to the client config file,
useful for unsupported clients or manual configuration.

Examples:
  mgp mcp show --client claude-code
  mgp mcp show --client cursor --workspace work`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if mcpClientFlag != "" && !mcpclient.ValidClient(mcpClientFlag) {
			return handleErrorMsg(ErrMCPClientInvalid, fmt.Sprintf("unknown client: %s", mcpClientFlag),
				"Supported clients: claude-code, claude-desktop, cursor")
		}

		entry := mcpclient.BuildServerEntry(mcpWorkspaceName, mcpWorkspacePathFlag)

		snippet := map[string]interface{}{
			"mcpServers": map[string]interface{}{
				"magpie": map[string]interface{}{
					"command": entry.Command,
					"args":    entry.Args,
				},
			},
		}

		if isJSONOutput() {
			outputSuccess(snippet, nil)
			return nil
		}

		out, err := json.MarshalIndent(snippet, "", "  ")
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		fmt.Println(string(out))

		if mcpClientFlag != "" {
			cfgPath, err := mcpclient.ConfigPath(mcpclient.Client(mcpClientFlag), "")
			if err == nil {
				fmt.Printf("\nAdd this to: %s\n", cfgPath)
			}
		}

		return nil
	},
}

func init() {
	mcpInstallCmd.Flags().StringVar(&mcpClientFlag, "client", "", "MCP client (claude-code, claude-desktop, cursor)")
	mcpInstallCmd.Flags().StringVar(&mcpWorkspaceName, "workspace", "", "Pin a named workspace")
	mcpInstallCmd.Flags().StringVar(&mcpWorkspacePathFlag, "workspace-path", "", "Pin an explicit workspace path")
	_ = mcpInstallCmd.MarkFlagRequired("client")

	mcpRemoveCmd.Flags().StringVar(&mcpClientFlag, "client", "", "MCP client (claude-code, claude-desktop, cursor)")
	_ = mcpRemoveCmd.MarkFlagRequired("client")

	mcpShowCmd.Flags().StringVar(&mcpClientFlag, "client", "", "MCP client (claude-code, claude-desktop, cursor)")
	mcpShowCmd.Flags().StringVar(&mcpWorkspaceName, "workspace", "", "Pin a named workspace")
	mcpShowCmd.Flags().StringVar(&mcpWorkspacePathFlag, "workspace-path", "", "Pin an explicit workspace path")

	mcpCmd.AddCommand(mcpInstallCmd)
	mcpCmd.AddCommand(mcpRemoveCmd)
	mcpCmd.AddCommand(mcpStatusCmd)
	mcpCmd.AddCommand(mcpShowCmd)

	rootCmd.AddCommand(mcpCmd)
}
