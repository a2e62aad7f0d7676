package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/magpiehq/magpie/internal/config"
	"github.com/magpiehq/magpie/internal/store"
	"github.com/magpiehq/magpie/internal/ui"
)

var initNameFlag string

var initCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Initialize a new workspace",
	Long: `Creates a new workspace at the specified path.

Creates:
  - magpie.yaml    (workspace configuration)
  - .magpie/       (database directory)
  - .gitignore     (ignores derived files)

The workspace is registered in the global config under --name
(defaults to the directory name) and becomes the default if it is
the first one.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		fmt.Printf("Initializing workspace at: %s\n", path)

		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("failed to create workspace directory: %w", err)
		}

		// Creates .magpie/ and the database schema.
		st, err := store.Open(path)
		if err != nil {
			return fmt.Errorf("failed to create workspace database: %w", err)
		}
		if err := st.Close(); err != nil {
			return fmt.Errorf("failed to close workspace database: %w", err)
		}

		if err := ensureGitignore(path); err != nil {
			return err
		}

		wcfg, err := config.LoadWorkspaceConfig(path)
		if err != nil {
			return fmt.Errorf("failed to load magpie.yaml: %w", err)
		}
		name := strings.TrimSpace(initNameFlag)
		if name == "" {
			abs, err := filepath.Abs(path)
			if err != nil {
				abs = path
			}
			name = filepath.Base(abs)
		}
		if wcfg.Name == "" {
			wcfg.Name = name
		}
		if err := wcfg.Save(); err != nil {
			return fmt.Errorf("failed to write magpie.yaml: %w", err)
		}

		// Register in the global config so --workspace <name> works.
		globalCfg, _, err := loadGlobalConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		globalCfg.RegisterWorkspace(name, abs)
		if err := globalCfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Println(ui.Successf("Created workspace '%s'", name))
		fmt.Printf("  %s\n", abs)
		fmt.Println("\n" + ui.Info("Next steps:"))
		steps := ui.NewList()
		steps.SetBullet("-")
		steps.Add("mgp project register <name>   # register a project")
		steps.Add("mgp query --list               # list saved queries")
		fmt.Print(steps.String())
		return nil
	},
}

func ensureGitignore(path string) error {
	gitignorePath := filepath.Join(path, ".gitignore")
	entries := []string{".magpie/"}

	existing := ""
	if data, err := os.ReadFile(gitignorePath); err == nil {
		existing = string(data)
	}

	var missing []string
	for _, entry := range entries {
		if !strings.Contains(existing, entry) {
			missing = append(missing, entry)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var content string
	if existing == "" {
		content = `# Magpie (auto-generated)
# The database is derived state

.magpie/
`
	} else {
		addition := "\n# Magpie\n"
		for _, entry := range missing {
			addition += entry + "\n"
		}
		content = strings.TrimRight(existing, "\n") + "\n" + addition
	}

	if err := os.WriteFile(gitignorePath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write .gitignore: %w", err)
	}
	return nil
}

func init() {
	initCmd.Flags().StringVar(&initNameFlag, "name", "", "Workspace name for the global config (defaults to directory name)")
	rootCmd.AddCommand(initCmd)
}
