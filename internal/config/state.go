package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/magpiehq/magpie/internal/atomicfile"
)

const stateVersion = 1

// State records per-user runtime state that is not configuration, currently
// just which workspace the user last switched to. It lives in state.toml
// next to config.toml.
type State struct {
	Version         int    `toml:"version"`
	ActiveWorkspace string `toml:"active_workspace,omitempty"`

	path string
}

// StatePath derives the state file path from a config path.
func StatePath(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), "state.toml")
}

// LoadState reads state from disk. A missing file yields empty state.
func LoadState(path string) (*State, error) {
	st := &State{Version: stateVersion, path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return st, nil
	}
	if _, err := toml.DecodeFile(path, st); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	st.path = path
	if st.Version == 0 {
		st.Version = stateVersion
	}
	return st, nil
}

// Save writes the state file atomically.
func (s *State) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := atomicfile.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}
