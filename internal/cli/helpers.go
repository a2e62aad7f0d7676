package cli

import (
	"fmt"

	"github.com/magpiehq/magpie/internal/config"
	"github.com/magpiehq/magpie/internal/mql"
	"github.com/magpiehq/magpie/internal/store"
)

// openWorkspaceStore opens the workspace database.
// Caller is responsible for calling st.Close().
func openWorkspaceStore() (*store.Store, error) {
	st, err := store.Open(getWorkspacePath())
	if err != nil {
		return nil, fmt.Errorf("opening workspace database: %w", err)
	}
	return st, nil
}

// loadWorkspaceConfigSafe loads the workspace config.
// Returns an error if magpie.yaml exists but is invalid.
func loadWorkspaceConfigSafe() (*config.WorkspaceConfig, error) {
	wcfg, err := config.LoadWorkspaceConfig(getWorkspacePath())
	if err != nil {
		return nil, fmt.Errorf("failed to load magpie.yaml: %w", err)
	}
	return wcfg, nil
}

// newExecutor builds an MQL executor backed by the workspace store.
func newExecutor(st *store.Store) *mql.Executor {
	return mql.NewExecutor(st, st)
}

// parseKeyValue splits a key=value argument.
func parseKeyValue(arg string) (string, string, error) {
	for i := 0; i < len(arg); i++ {
		if arg[i] == '=' {
			if i == 0 {
				break
			}
			return arg[:i], arg[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("invalid format: %s (expected key=value)", arg)
}
