package mql

import (
	"errors"

	"github.com/magpiehq/magpie/internal/model"
)

// Reserved scope tokens.
const (
	ScopeCurrentProject = "CURRENT_PROJECT"
	ScopeAllProjects    = "ALL_PROJECTS"
)

// resolveScope expands a scope token into a concrete list of project
// IDs. Resolution misses degrade to an empty list; only collaborator
// failures surface as errors.
func (e *Executor) resolveScope(scope string) ([]string, error) {
	switch scope {
	case ScopeCurrentProject:
		sessions, err := e.sessions.AllSessions()
		if err != nil {
			return nil, err
		}
		latest := latestSession(sessions, "")
		if latest == nil || latest.CurrentProject == "" {
			return nil, nil
		}
		return []string{latest.CurrentProject}, nil

	case ScopeAllProjects:
		projects, err := e.projects.AllProjects()
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(projects))
		for _, p := range projects {
			ids = append(ids, p.ID)
		}
		return ids, nil

	default:
		// Anything else is an already-resolved project ID. No name
		// lookup happens here; scopes take the slug IDs that
		// registration hands out.
		p, err := e.projects.Project(scope)
		if errors.Is(err, model.ErrProjectNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return []string{p.ID}, nil
	}
}

// latestSession returns the most recently started session, optionally
// restricted to one project. Nil when none qualify.
func latestSession(sessions []*model.Session, projectID string) *model.Session {
	var latest *model.Session
	for _, s := range sessions {
		if projectID != "" && s.CurrentProject != projectID {
			continue
		}
		if latest == nil || s.StartedAt.After(latest.StartedAt) {
			latest = s
		}
	}
	return latest
}
