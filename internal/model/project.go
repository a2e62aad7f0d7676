// Package model defines the core records magpie stores and queries:
// projects, sessions, and git history slices.
package model

import "time"

// Project represents a registered project in the workspace.
type Project struct {
	// ID uniquely identifies this project. It is a slug derived from
	// the name at registration time, e.g. "payments-api".
	ID string `json:"id"`

	// Name is the human-readable project name.
	Name string `json:"name"`

	// Description is an optional free-form summary.
	Description string `json:"description,omitempty"`

	// Status is the lifecycle state (e.g. "active", "paused", "archived").
	Status string `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Metadata holds arbitrary key/value data attached to the project.
	// Well-known keys include "git_path" (enables LAST_<N>_COMMITS context)
	// and "priority".
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	// Context is the project's accumulated context payload: nested
	// JSON-like data written by agents and sessions.
	Context map[string]interface{} `json:"context,omitempty"`

	// History is the project's event log, most recent first.
	History []HistoryEntry `json:"history,omitempty"`
}

// GitPath returns the project's git repository path from metadata,
// or "" if none is configured.
func (p *Project) GitPath() string {
	if p.Metadata == nil {
		return ""
	}
	if s, ok := p.Metadata["git_path"].(string); ok {
		return s
	}
	return ""
}

// HistoryEntry is a single event in a project's history.
type HistoryEntry struct {
	Timestamp time.Time              `json:"timestamp"`
	Event     string                 `json:"event"`
	Detail    map[string]interface{} `json:"detail,omitempty"`
}

// Commit is a single git commit summary.
type Commit struct {
	Hash    string    `json:"hash"`
	Author  string    `json:"author"`
	Date    time.Time `json:"date"`
	Message string    `json:"message"`
}

// GitContext holds the git history slice for a project.
type GitContext struct {
	Commits []Commit `json:"commits"`
}
