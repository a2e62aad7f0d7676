// Package store handles the SQLite workspace database: registered
// projects, their history, and sessions. It is the concrete backing
// for the query engine's ProjectSource and SessionSource.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/magpiehq/magpie/internal/gitctx"
	"github.com/magpiehq/magpie/internal/model"
)

// DirName is the workspace metadata directory.
const DirName = ".magpie"

const dbFileName = "workspace.db"

// schemaVersion tracks the on-disk schema. Bump on incompatible change.
const schemaVersion = 1

var (
	// ErrProjectExists indicates a project with the same ID is already registered.
	ErrProjectExists = errors.New("project already registered")
	// ErrSchemaVersion indicates the database was written by an incompatible version.
	ErrSchemaVersion = errors.New("workspace database schema version mismatch")
)

// Store is the workspace database handle.
type Store struct {
	db *sql.DB

	// gitLog fetches commit history for LAST_<N>_COMMITS context.
	// Overridable in tests.
	gitLog func(path string, limit int) ([]model.Commit, error)
}

// DB returns the underlying sql.DB for advanced queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Open opens or creates the workspace database under
// <workspacePath>/.magpie/workspace.db.
func Open(workspacePath string) (*Store, error) {
	dir := filepath.Join(workspacePath, DirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s directory: %w", DirName, err)
	}

	dbPath := filepath.Join(dir, dbFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db, gitLog: gitctx.Log}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initialize() error {
	schema := `
		-- WAL keeps concurrent readers (MCP server + CLI) cheap
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;

		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'active',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			metadata TEXT NOT NULL DEFAULT '{}',
			context TEXT NOT NULL DEFAULT '{}'
		);

		CREATE TABLE IF NOT EXISTS history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id TEXT NOT NULL,
			ts TEXT NOT NULL,
			event TEXT NOT NULL,
			detail TEXT NOT NULL DEFAULT '{}'
		);

		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			project_id TEXT NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT,
			context TEXT NOT NULL DEFAULT '{}'
		);

		CREATE INDEX IF NOT EXISTS idx_history_project ON history(project_id, ts);
		CREATE INDEX IF NOT EXISTS idx_sessions_project ON sessions(project_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s.checkVersion()
}

func (s *Store) checkVersion() error {
	var current string
	err := s.db.QueryRow(`SELECT value FROM meta WHERE key = 'schema_version'`).Scan(&current)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = s.db.Exec(`INSERT INTO meta (key, value) VALUES ('schema_version', ?)`,
			fmt.Sprint(schemaVersion))
		return err
	case err != nil:
		return err
	}
	if current != fmt.Sprint(schemaVersion) {
		return fmt.Errorf("%w: have %s, want %d", ErrSchemaVersion, current, schemaVersion)
	}
	return nil
}

// marshalMap encodes a metadata/context map for storage. A nil map
// stores as an empty object.
func marshalMap(m map[string]interface{}) (string, error) {
	if m == nil {
		return "{}", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("failed to encode map: %w", err)
	}
	return string(data), nil
}

func unmarshalMap(data string) (map[string]interface{}, error) {
	if data == "" || data == "{}" {
		return nil, nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		return nil, fmt.Errorf("failed to decode map: %w", err)
	}
	return m, nil
}
