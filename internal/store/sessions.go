package store

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/magpiehq/magpie/internal/model"
	"github.com/magpiehq/magpie/internal/sqlutil"
)

// StartSession begins a new session on a project. The most recently
// started session becomes the CURRENT_PROJECT scope target and backs
// the LAST_SESSION context spec.
func (s *Store) StartSession(projectID string) (*model.Session, error) {
	if _, err := s.Project(projectID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	id := newSessionID(now)

	if _, err := s.db.Exec(`
		INSERT INTO sessions (id, project_id, started_at) VALUES (?, ?, ?)
	`, id, projectID, formatTime(now)); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	if err := s.AppendHistory(projectID, "session_started", map[string]interface{}{
		"session_id": id,
	}); err != nil {
		return nil, err
	}
	return s.Session(id)
}

// EndSession marks a session as ended. Ending an already-ended
// session is a no-op.
func (s *Store) EndSession(id string) error {
	sess, err := s.Session(id)
	if err != nil {
		return err
	}
	if sess.EndedAt != nil {
		return nil
	}
	_, err = s.db.Exec(`UPDATE sessions SET ended_at = ? WHERE id = ?`,
		formatTime(time.Now().UTC()), id)
	if err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return s.AppendHistory(sess.CurrentProject, "session_ended", map[string]interface{}{
		"session_id": id,
	})
}

// Session loads a single session by ID.
func (s *Store) Session(id string) (*model.Session, error) {
	row := s.db.QueryRow(`
		SELECT id, project_id, started_at, ended_at, context
		FROM sessions WHERE id = ?
	`, id)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", model.ErrSessionNotFound, id)
	}
	return sess, err
}

// AllSessions returns every session, most recently started first.
func (s *Store) AllSessions() ([]*model.Session, error) {
	rows, err := s.db.Query(`
		SELECT id, project_id, started_at, ended_at, context
		FROM sessions ORDER BY started_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	return sqlutil.ScanRows(rows, func(r *sql.Rows) (*model.Session, error) {
		return scanSession(r)
	})
}

// LatestSession returns the most recently started session, or
// model.ErrSessionNotFound when the workspace has none.
func (s *Store) LatestSession() (*model.Session, error) {
	row := s.db.QueryRow(`
		SELECT id, project_id, started_at, ended_at, context
		FROM sessions ORDER BY started_at DESC, id DESC LIMIT 1
	`)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrSessionNotFound
	}
	return sess, err
}

// SetSessionContext sets one key in a session's context payload.
func (s *Store) SetSessionContext(id, key string, value interface{}) error {
	sess, err := s.Session(id)
	if err != nil {
		return err
	}

	ctx := sess.Context
	if ctx == nil {
		ctx = make(map[string]interface{})
	}
	ctx[key] = value

	encoded, err := marshalMap(ctx)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(`UPDATE sessions SET context = ? WHERE id = ?`, encoded, id); err != nil {
		return fmt.Errorf("failed to update session context: %w", err)
	}
	// Touch the project so RECENCY ranking reflects fresh session notes.
	_, err = s.db.Exec(`UPDATE projects SET updated_at = ? WHERE id = ?`,
		formatTime(time.Now().UTC()), sess.CurrentProject)
	return err
}

func scanSession(row rowScanner) (*model.Session, error) {
	var (
		sess       model.Session
		started    string
		ended      sql.NullString
		contextRaw string
	)
	if err := row.Scan(&sess.ID, &sess.CurrentProject, &started, &ended, &contextRaw); err != nil {
		return nil, err
	}

	var err error
	if sess.StartedAt, err = parseTime(started); err != nil {
		return nil, err
	}
	if ended.Valid {
		t, err := parseTime(ended.String)
		if err != nil {
			return nil, err
		}
		sess.EndedAt = &t
	}
	if sess.Context, err = unmarshalMap(contextRaw); err != nil {
		return nil, err
	}
	return &sess, nil
}

// newSessionID builds a sortable, collision-resistant session ID like
// "20260826-143501-a1b2c3".
func newSessionID(now time.Time) string {
	var suffix [3]byte
	if _, err := rand.Read(suffix[:]); err != nil {
		// Timestamp alone still identifies the session well enough.
		return now.Format("20060102-150405")
	}
	return now.Format("20060102-150405") + "-" + hex.EncodeToString(suffix[:])
}
