package lastquery

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/magpiehq/magpie/internal/mql"
)

func TestWriteAndRead(t *testing.T) {
	tmpDir := t.TempDir()

	lq := &LastQuery{
		Query:     `FIND "auth" IN ALL_PROJECTS`,
		Timestamp: time.Now().UTC(),
		Envelope: &mql.Envelope{
			QueryType:        "find",
			Scope:            "all_projects",
			ProjectsSearched: 2,
			ProjectsMatched:  1,
		},
	}

	if err := Write(tmpDir, lq); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if _, err := os.Stat(Path(tmpDir)); os.IsNotExist(err) {
		t.Fatal("last-query.json was not created")
	}

	got, err := Read(tmpDir)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got.Query != lq.Query {
		t.Errorf("Query mismatch: got %q, want %q", got.Query, lq.Query)
	}
	if got.Envelope == nil {
		t.Fatal("Envelope was not round-tripped")
	}
	if got.Envelope.QueryType != "find" {
		t.Errorf("QueryType mismatch: got %q, want %q", got.Envelope.QueryType, "find")
	}
	if got.Envelope.ProjectsMatched != 1 {
		t.Errorf("ProjectsMatched mismatch: got %d, want 1", got.Envelope.ProjectsMatched)
	}
}

func TestReadNoLastQuery(t *testing.T) {
	_, err := Read(t.TempDir())
	if !errors.Is(err, ErrNoLastQuery) {
		t.Errorf("expected ErrNoLastQuery, got %v", err)
	}
}

func TestWriteOverwritesPrevious(t *testing.T) {
	tmpDir := t.TempDir()

	first := &LastQuery{Query: "FIND \"a\"", Timestamp: time.Now().UTC()}
	if err := Write(tmpDir, first); err != nil {
		t.Fatalf("first Write failed: %v", err)
	}

	second := &LastQuery{Query: "FIND \"b\"", Timestamp: time.Now().UTC()}
	if err := Write(tmpDir, second); err != nil {
		t.Fatalf("second Write failed: %v", err)
	}

	got, err := Read(tmpDir)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got.Query != second.Query {
		t.Errorf("expected latest query %q, got %q", second.Query, got.Query)
	}
}
