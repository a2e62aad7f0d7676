package config

import (
	"path/filepath"
	"testing"
)

func TestSaveRoundTrip(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "nested", "config.toml")

	cfg := &Config{
		DefaultWorkspace: "work",
		Workspaces: map[string]string{
			"work": "/tmp/work",
			"oss":  "/tmp/oss",
		},
		UI:   UIConfig{Accent: "#7f5af0", CodeTheme: "dracula"},
		path: path,
	}

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	if loaded.DefaultWorkspace != "work" {
		t.Errorf("expected default_workspace=work, got %q", loaded.DefaultWorkspace)
	}
	if loaded.Workspaces["oss"] != "/tmp/oss" {
		t.Errorf("expected oss workspace to round-trip, got %q", loaded.Workspaces["oss"])
	}
	if loaded.UI.Accent != "#7f5af0" {
		t.Errorf("expected ui accent to round-trip, got %q", loaded.UI.Accent)
	}
}

func TestStateRoundTrip(t *testing.T) {
	tmp := t.TempDir()
	path := StatePath(filepath.Join(tmp, "config.toml"))

	st, err := LoadState(path)
	if err != nil {
		t.Fatalf("LoadState returned error: %v", err)
	}
	if st.ActiveWorkspace != "" {
		t.Errorf("fresh state should have no active workspace, got %q", st.ActiveWorkspace)
	}

	st.ActiveWorkspace = "work"
	if err := st.Save(); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := LoadState(path)
	if err != nil {
		t.Fatalf("LoadState returned error: %v", err)
	}
	if loaded.ActiveWorkspace != "work" {
		t.Errorf("expected active workspace to round-trip, got %q", loaded.ActiveWorkspace)
	}
	if loaded.Version != stateVersion {
		t.Errorf("expected version %d, got %d", stateVersion, loaded.Version)
	}
}
