// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/magpiehq/magpie/internal/config"
	"github.com/magpiehq/magpie/internal/ui"
)

var (
	// Global flags
	workspaceName     string // named workspace from config
	workspacePathFlag string // explicit path (rare)
	configPathFlag    string
	statePathFlag     string

	// Resolved values
	resolvedWorkspacePath string
	resolvedConfigPath    string
	resolvedStatePath     string
	cfg                   *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mgp",
	Short: "Magpie - a project memory engine for coding agents",
	Long: `Magpie keeps a queryable record of projects, sessions, and their context,
and answers MQL queries from agents and scripts.

Like its namesake, it hoards the shiny fragments of your work so they
can be found again later.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip workspace resolution for commands that don't need it
		switch cmd.Name() {
		case "init", "workspace", "completion", "help", "version", "guide", "mcp":
			return nil
		}
		if cmd.Parent() != nil {
			switch cmd.Parent().Name() {
			case "completion", "workspace", "mcp":
				return nil
			}
		}

		var err error
		cfg, resolvedConfigPath, err = loadGlobalConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		resolvedStatePath = statePathFlag
		if resolvedStatePath == "" {
			resolvedStatePath = config.StatePath(resolvedConfigPath)
		}
		ui.ConfigureTheme(cfg.UI.Accent)
		ui.ConfigureMarkdownCodeTheme(cfg.UI.CodeTheme)

		// Resolve workspace path: explicit path > named workspace > active state > default
		if workspacePathFlag != "" {
			resolvedWorkspacePath = workspacePathFlag
		} else if workspaceName != "" {
			resolvedWorkspacePath, err = cfg.WorkspacePath(workspaceName)
			if err != nil {
				return fmt.Errorf("workspace '%s' not found\n\nRun 'mgp workspace list' to see configured workspaces", workspaceName)
			}
		} else {
			state, stateErr := config.LoadState(resolvedStatePath)
			if stateErr != nil {
				return fmt.Errorf("failed to load state: %w", stateErr)
			}

			active := strings.TrimSpace(state.ActiveWorkspace)
			if active != "" {
				resolvedWorkspacePath, err = cfg.WorkspacePath(active)
				if err != nil {
					resolvedWorkspacePath, err = cfg.WorkspacePath("")
					if err != nil {
						return fmt.Errorf("active workspace '%s' not found in config and no default workspace configured\n\nRun 'mgp workspace use <name>' or set default_workspace in config.toml", active)
					}
					if !jsonOutput {
						fmt.Fprintln(os.Stderr, ui.Warningf("active workspace '%s' not found in config, falling back to default", active))
					}
				}
			} else {
				resolvedWorkspacePath, err = cfg.WorkspacePath("")
				if err != nil {
					return fmt.Errorf(`no workspace specified

Either:
  1. Use --workspace <name> (from config)
  2. Use --workspace-path /path/to/workspace
  3. Run 'mgp workspace use <name>' to set active_workspace in state.toml
  4. Set default_workspace in ~/.config/magpie/config.toml
  5. Run 'mgp init /path/to/new/workspace' to create one`)
				}
			}
		}

		if _, err := os.Stat(resolvedWorkspacePath); os.IsNotExist(err) {
			return fmt.Errorf("workspace not found: %s\n\nRun 'mgp init %s' to create it", resolvedWorkspacePath, resolvedWorkspacePath)
		}

		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&workspaceName, "workspace", "w", "", "Named workspace from config")
	rootCmd.PersistentFlags().StringVar(&workspacePathFlag, "workspace-path", "", "Explicit path to workspace directory")
	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&statePathFlag, "state", "", "Path to state file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
}

// getWorkspacePath returns the resolved workspace path.
func getWorkspacePath() string {
	return resolvedWorkspacePath
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	return cfg
}

// getStatePath returns the resolved global state path.
func getStatePath() string {
	return resolvedStatePath
}

func loadGlobalConfig() (*config.Config, string, error) {
	path := strings.TrimSpace(configPathFlag)
	if path == "" {
		path = config.DefaultPath()
	}
	loaded, err := config.LoadFrom(path)
	if err != nil {
		return nil, "", err
	}
	return loaded, path, nil
}
