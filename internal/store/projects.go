package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/magpiehq/magpie/internal/model"
	"github.com/magpiehq/magpie/internal/slugs"
	"github.com/magpiehq/magpie/internal/sqlutil"
)

// RegisterProject creates a new project. The project ID is a slug
// derived from the name ("Payments API" -> "payments-api"); MQL scopes
// and all other store calls take that ID.
func (s *Store) RegisterProject(name, description string, metadata map[string]interface{}) (*model.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("project name is required")
	}

	id := slugs.ProjectID(name)
	now := time.Now().UTC()

	meta, err := marshalMap(metadata)
	if err != nil {
		return nil, err
	}

	_, err = s.db.Exec(`
		INSERT INTO projects (id, name, description, status, created_at, updated_at, metadata)
		VALUES (?, ?, ?, 'active', ?, ?, ?)
	`, id, name, description, formatTime(now), formatTime(now), meta)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrProjectExists, id)
		}
		return nil, fmt.Errorf("failed to register project: %w", err)
	}

	if err := s.AppendHistory(id, "registered", nil); err != nil {
		return nil, err
	}
	return s.Project(id)
}

// Project loads a single project by ID, including its history
// (most recent first). Returns model.ErrProjectNotFound for unknown IDs.
func (s *Store) Project(id string) (*model.Project, error) {
	row := s.db.QueryRow(`
		SELECT id, name, description, status, created_at, updated_at, metadata, context
		FROM projects WHERE id = ?
	`, id)

	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", model.ErrProjectNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	history, err := s.projectHistory(id)
	if err != nil {
		return nil, err
	}
	p.History = history
	return p, nil
}

// AllProjects returns every registered project, ordered by ID.
// History is not loaded here; callers needing it use Project.
func (s *Store) AllProjects() ([]*model.Project, error) {
	rows, err := s.db.Query(`
		SELECT id, name, description, status, created_at, updated_at, metadata, context
		FROM projects ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	return sqlutil.ScanRows(rows, func(r *sql.Rows) (*model.Project, error) {
		return scanProject(r)
	})
}

// SetProjectStatus updates the lifecycle status and touches updated_at.
func (s *Store) SetProjectStatus(id, status string) error {
	if err := s.touchProject(id, "status", status); err != nil {
		return err
	}
	return s.AppendHistory(id, "status_changed", map[string]interface{}{"status": status})
}

// DeleteProject removes a project along with its sessions and history.
// Returns model.ErrProjectNotFound for unknown IDs.
func (s *Store) DeleteProject(id string) error {
	if _, err := s.Project(id); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM sessions WHERE project_id = ?`,
		`DELETE FROM history WHERE project_id = ?`,
		`DELETE FROM projects WHERE id = ?`,
	} {
		if _, err := tx.Exec(stmt, id); err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}
	}
	return tx.Commit()
}

// SetProjectDescription updates the description and touches updated_at.
func (s *Store) SetProjectDescription(id, description string) error {
	return s.touchProject(id, "description", description)
}

// SetProjectMeta sets a single metadata key and touches updated_at.
func (s *Store) SetProjectMeta(id, key string, value interface{}) error {
	return s.updateMapColumn(id, "metadata", key, value)
}

// SetProjectContext sets a single context key and touches updated_at.
func (s *Store) SetProjectContext(id, key string, value interface{}) error {
	return s.updateMapColumn(id, "context", key, value)
}

// AppendHistory records an event in the project's history and touches
// updated_at.
func (s *Store) AppendHistory(id, event string, detail map[string]interface{}) error {
	if _, err := s.Project(id); err != nil {
		return err
	}
	det, err := marshalMap(detail)
	if err != nil {
		return err
	}
	now := formatTime(time.Now().UTC())
	if _, err := s.db.Exec(`
		INSERT INTO history (project_id, ts, event, detail) VALUES (?, ?, ?, ?)
	`, id, now, event, det); err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	_, err = s.db.Exec(`UPDATE projects SET updated_at = ? WHERE id = ?`, now, id)
	return err
}

// GitContext fetches commit history for a project's git_path.
func (s *Store) GitContext(path string) (*model.GitContext, error) {
	commits, err := s.gitLog(path, gitLogLimit)
	if err != nil {
		return nil, err
	}
	return &model.GitContext{Commits: commits}, nil
}

// gitLogLimit bounds how much history a single query can pull. Context
// specs slice this list further.
const gitLogLimit = 100

func (s *Store) touchProject(id, column, value string) error {
	res, err := s.db.Exec(
		`UPDATE projects SET `+column+` = ?, updated_at = ? WHERE id = ?`,
		value, formatTime(time.Now().UTC()), id)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return requireRow(res, id)
}

// updateMapColumn read-modify-writes one key in a JSON map column.
func (s *Store) updateMapColumn(id, column, key string, value interface{}) error {
	var raw string
	err := s.db.QueryRow(`SELECT `+column+` FROM projects WHERE id = ?`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", model.ErrProjectNotFound, id)
	}
	if err != nil {
		return err
	}

	m, err := unmarshalMap(raw)
	if err != nil {
		return err
	}
	if m == nil {
		m = make(map[string]interface{})
	}
	m[key] = value

	encoded, err := marshalMap(m)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`UPDATE projects SET `+column+` = ?, updated_at = ? WHERE id = ?`,
		encoded, formatTime(time.Now().UTC()), id)
	return err
}

func (s *Store) projectHistory(id string) ([]model.HistoryEntry, error) {
	rows, err := s.db.Query(`
		SELECT ts, event, detail FROM history
		WHERE project_id = ? ORDER BY ts DESC, id DESC
	`, id)
	if err != nil {
		return nil, err
	}
	return sqlutil.ScanRows(rows, func(r *sql.Rows) (model.HistoryEntry, error) {
		var entry model.HistoryEntry
		var ts, detail string
		if err := r.Scan(&ts, &entry.Event, &detail); err != nil {
			return entry, err
		}
		var err error
		if entry.Timestamp, err = parseTime(ts); err != nil {
			return entry, err
		}
		entry.Detail, err = unmarshalMap(detail)
		return entry, err
	})
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProject(row rowScanner) (*model.Project, error) {
	var (
		p                    model.Project
		created, updated     string
		metadata, contextRaw string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Status,
		&created, &updated, &metadata, &contextRaw); err != nil {
		return nil, err
	}

	var err error
	if p.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	if p.Metadata, err = unmarshalMap(metadata); err != nil {
		return nil, err
	}
	if p.Context, err = unmarshalMap(contextRaw); err != nil {
		return nil, err
	}
	return &p, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}
	return t, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", model.ErrProjectNotFound, id)
	}
	return nil
}
