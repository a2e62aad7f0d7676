package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/magpiehq/magpie/internal/atomicfile"
)

// WorkspaceConfigName is the per-workspace configuration file.
const WorkspaceConfigName = "magpie.yaml"

// WorkspaceConfig is the per-workspace configuration loaded from magpie.yaml
// at the workspace root. All fields are optional.
type WorkspaceConfig struct {
	// Name is a human-readable label for the workspace.
	Name string `yaml:"name,omitempty"`

	// DefaultContext overrides the context specifier used when a query
	// omits a CONTEXT clause.
	DefaultContext string `yaml:"default_context,omitempty"`

	// Queries are saved queries runnable by name with `mgp query --saved`.
	Queries map[string]*SavedQuery `yaml:"queries,omitempty"`

	path string
}

// SavedQuery is a named query stored in the workspace config.
type SavedQuery struct {
	Query       string `yaml:"query"`
	Description string `yaml:"description,omitempty"`
}

// LoadWorkspaceConfig reads magpie.yaml from a workspace root. A missing
// file yields an empty config bound to that path.
func LoadWorkspaceConfig(workspacePath string) (*WorkspaceConfig, error) {
	path := filepath.Join(workspacePath, WorkspaceConfigName)
	wc := &WorkspaceConfig{path: path}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return wc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, wc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return wc, nil
}

// Save writes the workspace config back to magpie.yaml atomically.
func (wc *WorkspaceConfig) Save() error {
	data, err := yaml.Marshal(wc)
	if err != nil {
		return fmt.Errorf("encoding workspace config: %w", err)
	}
	if err := atomicfile.WriteFile(wc.path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", wc.path, err)
	}
	return nil
}

// SavedQueryNames returns saved query names in sorted order.
func (wc *WorkspaceConfig) SavedQueryNames() []string {
	names := make([]string, 0, len(wc.Queries))
	for name := range wc.Queries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SavedQuery looks up a saved query by name.
func (wc *WorkspaceConfig) SavedQuery(name string) (*SavedQuery, bool) {
	q, ok := wc.Queries[name]
	return q, ok
}

// SetSavedQuery adds or replaces a saved query.
func (wc *WorkspaceConfig) SetSavedQuery(name string, q *SavedQuery) {
	if wc.Queries == nil {
		wc.Queries = make(map[string]*SavedQuery)
	}
	wc.Queries[name] = q
}
