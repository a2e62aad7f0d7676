// Package lastquery persists the most recent query envelope so that
// follow-up commands can re-render it without hitting the store again.
package lastquery

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/magpiehq/magpie/internal/atomicfile"
	"github.com/magpiehq/magpie/internal/mql"
)

// LastQuery records the most recent query run in a workspace.
// Persisted to .magpie/last-query.json.
type LastQuery struct {
	Query     string        `json:"query"`
	Timestamp time.Time     `json:"timestamp"`
	Envelope  *mql.Envelope `json:"envelope"`
}

// ErrNoLastQuery is returned by Read when no query has been run yet.
var ErrNoLastQuery = errors.New("no last query available")

// Path returns the path to the last-query.json file.
func Path(workspacePath string) string {
	return filepath.Join(workspacePath, ".magpie", "last-query.json")
}

// Write saves the query and its envelope to disk.
func Write(workspacePath string, lq *LastQuery) error {
	dir := filepath.Join(workspacePath, ".magpie")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create .magpie directory: %w", err)
	}

	data, err := json.MarshalIndent(lq, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal last query: %w", err)
	}

	if err := atomicfile.WriteFile(Path(workspacePath), data, 0o644); err != nil {
		return fmt.Errorf("failed to write last query: %w", err)
	}
	return nil
}

// Read loads the last query from disk. Returns ErrNoLastQuery if no
// query has been run in this workspace.
func Read(workspacePath string) (*LastQuery, error) {
	data, err := os.ReadFile(Path(workspacePath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoLastQuery
		}
		return nil, fmt.Errorf("failed to read last query: %w", err)
	}

	var lq LastQuery
	if err := json.Unmarshal(data, &lq); err != nil {
		return nil, fmt.Errorf("failed to parse last query: %w", err)
	}
	return &lq, nil
}
