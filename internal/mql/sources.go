package mql

import "github.com/magpiehq/magpie/internal/model"

// ProjectSource supplies project records to the engine. Lookups for
// unknown projects return model.ErrProjectNotFound; any other error is
// treated as an engine failure and rendered in the error envelope.
type ProjectSource interface {
	Project(id string) (*model.Project, error)
	AllProjects() ([]*model.Project, error)
	GitContext(path string) (*model.GitContext, error)
}

// SessionSource supplies session records to the engine. AllSessions
// may return sessions in any order; the engine picks the most recently
// started one where recency matters.
type SessionSource interface {
	Session(id string) (*model.Session, error)
	AllSessions() ([]*model.Session, error)
}
