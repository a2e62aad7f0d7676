// Package config loads the global magpie configuration and tracks which
// workspace is active between invocations.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the user-level configuration stored in config.toml.
type Config struct {
	// DefaultWorkspace names the workspace used when none is selected.
	DefaultWorkspace string `toml:"default_workspace"`

	// Workspaces maps workspace names to their root directories.
	Workspaces map[string]string `toml:"workspaces"`

	// UI tweaks terminal rendering.
	UI UIConfig `toml:"ui"`

	// path is where this config was loaded from, for Save.
	path string
}

// UIConfig holds appearance settings.
type UIConfig struct {
	// Accent is a hex color for highlighted output.
	Accent string `toml:"accent"`
	// CodeTheme is the chroma style used when rendering markdown.
	CodeTheme string `toml:"code_theme"`
}

// Load reads the config from the default location. A missing file is not an
// error; it returns an empty config bound to the default path.
func Load() (*Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom reads the config from an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.path = path
	return cfg, nil
}

// DefaultPath returns ~/.config/magpie/config.toml, falling back to the
// platform config dir when the home directory is unknown.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "magpie", "config.toml")
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "magpie", "config.toml")
	}
	return filepath.Join(".magpie", "config.toml")
}

// Path returns where the config was loaded from or will be saved.
func (c *Config) Path() string {
	if c.path == "" {
		return DefaultPath()
	}
	return c.path
}

// WorkspacePath resolves a workspace name to its directory. An empty name
// resolves through the active state and then the default workspace.
func (c *Config) WorkspacePath(name string) (string, error) {
	if name == "" {
		name = c.DefaultWorkspace
	}
	if name == "" {
		return "", fmt.Errorf("no workspace selected: pass --workspace or set default_workspace in %s", c.Path())
	}
	path, ok := c.Workspaces[name]
	if !ok {
		known := make([]string, 0, len(c.Workspaces))
		for k := range c.Workspaces {
			known = append(known, k)
		}
		if len(known) == 0 {
			return "", fmt.Errorf("unknown workspace %q: no workspaces registered in %s", name, c.Path())
		}
		return "", fmt.Errorf("unknown workspace %q (known: %s)", name, strings.Join(known, ", "))
	}
	return expandHome(path), nil
}

// RegisterWorkspace records a workspace directory under a name. The first
// registered workspace becomes the default.
func (c *Config) RegisterWorkspace(name, path string) {
	if c.Workspaces == nil {
		c.Workspaces = make(map[string]string)
	}
	c.Workspaces[name] = path
	if c.DefaultWorkspace == "" {
		c.DefaultWorkspace = name
	}
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
