// Package testutil provides reusable test utilities for magpie integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestWorkspace represents a temporary workspace for testing.
// ConfigPath points at a throwaway global config so tests never touch
// the real one under the user's home directory.
type TestWorkspace struct {
	Path       string
	ConfigPath string
	t          *testing.T
	files      map[string]string
}

// NewTestWorkspace creates a new test workspace builder.
// Call Build() to create the actual workspace directory.
func NewTestWorkspace(t *testing.T) *TestWorkspace {
	t.Helper()
	return &TestWorkspace{
		t:     t,
		files: make(map[string]string),
	}
}

// WithMagpieYAML sets the magpie.yaml content for the workspace.
func (w *TestWorkspace) WithMagpieYAML(yaml string) *TestWorkspace {
	w.files["magpie.yaml"] = yaml
	return w
}

// WithFile adds a file to the workspace.
// The path is relative to the workspace root.
func (w *TestWorkspace) WithFile(path, content string) *TestWorkspace {
	w.files[path] = content
	return w
}

// Build creates the workspace directory and all configured files.
// Returns the TestWorkspace for method chaining.
func (w *TestWorkspace) Build() *TestWorkspace {
	w.t.Helper()

	w.Path = w.t.TempDir()
	w.ConfigPath = filepath.Join(w.t.TempDir(), "config.toml")
	for path, content := range w.files {
		w.writeFile(path, content)
	}
	return w
}

func (w *TestWorkspace) writeFile(relPath, content string) {
	w.t.Helper()
	fullPath := filepath.Join(w.Path, relPath)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		w.t.Fatalf("failed to create directory %s: %v", dir, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		w.t.Fatalf("failed to write %s: %v", fullPath, err)
	}
}
