package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/magpiehq/magpie/internal/config"
	"github.com/magpiehq/magpie/internal/ui"
)

var workspaceCmd = &cobra.Command{
	Use:   "workspace",
	Short: "Manage configured workspaces",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var workspaceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured workspaces",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		globalCfg, configPath, err := loadGlobalConfig()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		state, err := config.LoadState(config.StatePath(configPath))
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		names := make([]string, 0, len(globalCfg.Workspaces))
		for name := range globalCfg.Workspaces {
			names = append(names, name)
		}
		sort.Strings(names)

		if isJSONOutput() {
			type wsInfo struct {
				Name    string `json:"name"`
				Path    string `json:"path"`
				Default bool   `json:"default"`
				Active  bool   `json:"active"`
			}
			items := make([]wsInfo, 0, len(names))
			for _, name := range names {
				items = append(items, wsInfo{
					Name:    name,
					Path:    globalCfg.Workspaces[name],
					Default: name == globalCfg.DefaultWorkspace,
					Active:  name == state.ActiveWorkspace,
				})
			}
			outputSuccess(map[string]interface{}{"workspaces": items}, &Meta{Count: len(items)})
			return nil
		}

		if len(names) == 0 {
			fmt.Println("No workspaces configured.")
			fmt.Println("\nRun 'mgp init /path/to/workspace' to create one.")
			return nil
		}

		tbl := ui.NewTable(3)
		for _, name := range names {
			marker := " "
			if name == state.ActiveWorkspace {
				marker = "*"
			} else if state.ActiveWorkspace == "" && name == globalCfg.DefaultWorkspace {
				marker = "*"
			}
			label := name
			if name == globalCfg.DefaultWorkspace {
				label += " (default)"
			}
			tbl.AddRow(marker, label, globalCfg.Workspaces[name])
		}
		fmt.Print(tbl.String())
		return nil
	},
}

var workspaceUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the active workspace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])

		globalCfg, configPath, err := loadGlobalConfig()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		if _, err := globalCfg.WorkspacePath(name); err != nil {
			return handleErrorMsg(ErrWorkspaceNotFound, err.Error(), "Run 'mgp workspace list' to see configured workspaces")
		}

		state, err := config.LoadState(config.StatePath(configPath))
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		state.ActiveWorkspace = name
		if err := state.Save(); err != nil {
			return handleError(ErrInternal, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"active_workspace": name}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Switched to workspace '%s'", name))
		return nil
	},
}

var workspaceAddCmd = &cobra.Command{
	Use:   "add <name> <path>",
	Short: "Register an existing workspace directory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])
		path := args[1]

		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if _, err := os.Stat(abs); os.IsNotExist(err) {
			return handleErrorMsg(ErrWorkspaceNotFound,
				fmt.Sprintf("directory not found: %s", abs),
				fmt.Sprintf("Run 'mgp init %s' to create it", path))
		}

		globalCfg, _, err := loadGlobalConfig()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		globalCfg.RegisterWorkspace(name, abs)
		if err := globalCfg.Save(); err != nil {
			return handleError(ErrInternal, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"name": name, "path": abs}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Registered workspace '%s' at %s", name, abs))
		return nil
	},
}

func init() {
	workspaceCmd.AddCommand(workspaceListCmd)
	workspaceCmd.AddCommand(workspaceUseCmd)
	workspaceCmd.AddCommand(workspaceAddCmd)
	rootCmd.AddCommand(workspaceCmd)
}
