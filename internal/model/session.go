package model

import "time"

// Session represents a single working session against a project.
// The most recently started session determines CURRENT_PROJECT scope
// resolution and backs the LAST_SESSION context spec.
type Session struct {
	// ID uniquely identifies this session, e.g. "20260826-143501-a1b2".
	ID string `json:"id"`

	// CurrentProject is the ID of the project this session works on.
	CurrentProject string `json:"current_project"`

	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`

	// Context is the session's context payload: notes, decisions, open
	// threads, whatever the agent chose to record.
	Context map[string]interface{} `json:"context,omitempty"`
}

// Active reports whether the session has not been ended.
func (s *Session) Active() bool { return s.EndedAt == nil }
