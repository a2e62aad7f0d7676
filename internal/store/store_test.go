package store

import (
	"errors"
	"testing"
	"time"

	"github.com/magpiehq/magpie/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRegisterProject(t *testing.T) {
	s := openTestStore(t)

	p, err := s.RegisterProject("Payments API", "billing service", map[string]interface{}{
		"priority": "high",
	})
	if err != nil {
		t.Fatalf("RegisterProject: %v", err)
	}
	if p.ID != "payments-api" {
		t.Errorf("id = %q, want payments-api", p.ID)
	}
	if p.Status != "active" {
		t.Errorf("status = %q", p.Status)
	}
	if p.Metadata["priority"] != "high" {
		t.Errorf("metadata = %#v", p.Metadata)
	}
	if len(p.History) != 1 || p.History[0].Event != "registered" {
		t.Errorf("history = %#v", p.History)
	}

	if _, err := s.RegisterProject("Payments API", "", nil); !errors.Is(err, ErrProjectExists) {
		t.Errorf("duplicate registration error = %v, want ErrProjectExists", err)
	}
}

func TestProjectNotFound(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Project("nope"); !errors.Is(err, model.ErrProjectNotFound) {
		t.Errorf("err = %v, want ErrProjectNotFound", err)
	}
}

func TestAllProjectsOrdered(t *testing.T) {
	s := openTestStore(t)
	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		if _, err := s.RegisterProject(name, "", nil); err != nil {
			t.Fatalf("RegisterProject(%s): %v", name, err)
		}
	}
	projects, err := s.AllProjects()
	if err != nil {
		t.Fatalf("AllProjects: %v", err)
	}
	want := []string{"alpha", "mid", "zeta"}
	if len(projects) != len(want) {
		t.Fatalf("got %d projects", len(projects))
	}
	for i, p := range projects {
		if p.ID != want[i] {
			t.Errorf("projects[%d] = %q, want %q", i, p.ID, want[i])
		}
	}
}

func TestDeleteProject(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.RegisterProject("Payments API", "", nil); err != nil {
		t.Fatalf("RegisterProject: %v", err)
	}
	if _, err := s.StartSession("payments-api"); err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	if err := s.DeleteProject("payments-api"); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	if _, err := s.Project("payments-api"); !errors.Is(err, model.ErrProjectNotFound) {
		t.Errorf("err = %v, want ErrProjectNotFound after delete", err)
	}
	sessions, err := s.AllSessions()
	if err != nil {
		t.Fatalf("AllSessions: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("got %d sessions, want 0 after delete", len(sessions))
	}

	if err := s.DeleteProject("payments-api"); !errors.Is(err, model.ErrProjectNotFound) {
		t.Errorf("second delete err = %v, want ErrProjectNotFound", err)
	}
}

func TestProjectMutations(t *testing.T) {
	s := openTestStore(t)
	p, err := s.RegisterProject("Docs Site", "", nil)
	if err != nil {
		t.Fatalf("RegisterProject: %v", err)
	}

	if err := s.SetProjectStatus(p.ID, "paused"); err != nil {
		t.Fatalf("SetProjectStatus: %v", err)
	}
	if err := s.SetProjectMeta(p.ID, "priority", "low"); err != nil {
		t.Fatalf("SetProjectMeta: %v", err)
	}
	if err := s.SetProjectContext(p.ID, "readme", "style guide"); err != nil {
		t.Fatalf("SetProjectContext: %v", err)
	}

	got, err := s.Project(p.ID)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if got.Status != "paused" {
		t.Errorf("status = %q", got.Status)
	}
	if got.Metadata["priority"] != "low" {
		t.Errorf("metadata = %#v", got.Metadata)
	}
	if got.Context["readme"] != "style guide" {
		t.Errorf("context = %#v", got.Context)
	}
	if !got.UpdatedAt.After(p.UpdatedAt) && !got.UpdatedAt.Equal(p.UpdatedAt) {
		t.Errorf("updated_at went backwards: %v -> %v", p.UpdatedAt, got.UpdatedAt)
	}

	// status change is recorded in history, most recent first
	if got.History[0].Event != "status_changed" {
		t.Errorf("history = %#v", got.History)
	}

	if err := s.SetProjectStatus("nope", "active"); !errors.Is(err, model.ErrProjectNotFound) {
		t.Errorf("err = %v, want ErrProjectNotFound", err)
	}
}

func TestSessions(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.RegisterProject("Payments API", "", nil); err != nil {
		t.Fatalf("RegisterProject: %v", err)
	}

	sess, err := s.StartSession("payments-api")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if sess.CurrentProject != "payments-api" || !sess.Active() {
		t.Errorf("session = %#v", sess)
	}

	if err := s.SetSessionContext(sess.ID, "focus", "auth flow"); err != nil {
		t.Fatalf("SetSessionContext: %v", err)
	}
	got, err := s.Session(sess.ID)
	if err != nil {
		t.Fatalf("Session: %v", err)
	}
	if got.Context["focus"] != "auth flow" {
		t.Errorf("context = %#v", got.Context)
	}

	latest, err := s.LatestSession()
	if err != nil {
		t.Fatalf("LatestSession: %v", err)
	}
	if latest.ID != sess.ID {
		t.Errorf("latest = %q, want %q", latest.ID, sess.ID)
	}

	if err := s.EndSession(sess.ID); err != nil {
		t.Fatalf("EndSession: %v", err)
	}
	got, _ = s.Session(sess.ID)
	if got.Active() {
		t.Error("session still active after EndSession")
	}
	// ending twice is harmless
	if err := s.EndSession(sess.ID); err != nil {
		t.Errorf("second EndSession: %v", err)
	}

	if _, err := s.StartSession("nope"); !errors.Is(err, model.ErrProjectNotFound) {
		t.Errorf("err = %v, want ErrProjectNotFound", err)
	}
}

func TestGitContextUsesInjectedLog(t *testing.T) {
	s := openTestStore(t)
	s.gitLog = func(path string, limit int) ([]model.Commit, error) {
		return []model.Commit{{Hash: "abc", Message: "hello", Date: time.Now()}}, nil
	}

	gc, err := s.GitContext("/anywhere")
	if err != nil {
		t.Fatalf("GitContext: %v", err)
	}
	if len(gc.Commits) != 1 || gc.Commits[0].Hash != "abc" {
		t.Errorf("commits = %#v", gc.Commits)
	}
}
