package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadWorkspaceConfig(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		tmp := t.TempDir()
		wc, err := LoadWorkspaceConfig(tmp)
		if err != nil {
			t.Fatalf("missing magpie.yaml should not be an error: %v", err)
		}
		if wc.Name != "" || len(wc.Queries) != 0 {
			t.Errorf("expected empty config, got %+v", wc)
		}
	})

	t.Run("parses queries", func(t *testing.T) {
		tmp := t.TempDir()
		data := `name: Platform
default_context: LAST_5_COMMITS
queries:
  active:
    query: WHERE STATUS = "active" IN ALL_PROJECTS
    description: Projects currently in flight
  auth:
    query: FIND "auth" IN ALL_PROJECTS
`
		if err := os.WriteFile(filepath.Join(tmp, WorkspaceConfigName), []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}

		wc, err := LoadWorkspaceConfig(tmp)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if wc.Name != "Platform" {
			t.Errorf("expected name=Platform, got %q", wc.Name)
		}
		if wc.DefaultContext != "LAST_5_COMMITS" {
			t.Errorf("expected default_context=LAST_5_COMMITS, got %q", wc.DefaultContext)
		}
		q, ok := wc.SavedQuery("active")
		if !ok {
			t.Fatal("expected saved query 'active'")
		}
		if q.Query != `WHERE STATUS = "active" IN ALL_PROJECTS` {
			t.Errorf("unexpected query text: %q", q.Query)
		}
		if got, want := wc.SavedQueryNames(), []string{"active", "auth"}; !reflect.DeepEqual(got, want) {
			t.Errorf("expected names %v, got %v", want, got)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		tmp := t.TempDir()
		if err := os.WriteFile(filepath.Join(tmp, WorkspaceConfigName), []byte("queries: [not a map"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadWorkspaceConfig(tmp); err == nil {
			t.Fatal("expected parse error")
		}
	})
}

func TestWorkspaceConfigSave(t *testing.T) {
	tmp := t.TempDir()
	wc, err := LoadWorkspaceConfig(tmp)
	if err != nil {
		t.Fatal(err)
	}
	wc.SetSavedQuery("stale", &SavedQuery{
		Query:       `WHERE STATUS = "paused" IN ALL_PROJECTS`,
		Description: "Paused work",
	})
	if err := wc.Save(); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := LoadWorkspaceConfig(tmp)
	if err != nil {
		t.Fatal(err)
	}
	q, ok := loaded.SavedQuery("stale")
	if !ok {
		t.Fatal("expected saved query to round-trip")
	}
	if q.Description != "Paused work" {
		t.Errorf("expected description to round-trip, got %q", q.Description)
	}
}
