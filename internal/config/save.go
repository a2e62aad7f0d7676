package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/magpiehq/magpie/internal/atomicfile"
)

// persistedConfig mirrors Config without unexported fields so the TOML
// encoder writes only user-facing keys.
type persistedConfig struct {
	DefaultWorkspace string            `toml:"default_workspace,omitempty"`
	Workspaces       map[string]string `toml:"workspaces,omitempty"`
	UI               UIConfig          `toml:"ui,omitempty"`
}

// Save writes the config back to its path, creating parent directories.
func (c *Config) Save() error {
	path := c.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	pc := persistedConfig{
		DefaultWorkspace: c.DefaultWorkspace,
		Workspaces:       c.Workspaces,
		UI:               c.UI,
	}
	if err := enc.Encode(pc); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
