package mql

import (
	"strconv"
	"strings"
	"time"
)

// DefaultContextSpec is used when a query names no CONTEXT clause.
const DefaultContextSpec = "LAST_SESSION"

// retrieveContext resolves a context spec into a per-project context
// payload. Projects whose context cannot be resolved (no matching
// session, malformed spec, git failure) are omitted rather than
// failing the whole query.
func (e *Executor) retrieveContext(ids []string, spec string) map[string]interface{} {
	if spec == "" {
		spec = DefaultContextSpec
	}
	out := make(map[string]interface{}, len(ids))
	for _, id := range ids {
		payload, ok := e.projectContext(id, spec)
		if ok {
			out[id] = payload
		}
	}
	return out
}

// projectContext resolves one project's context for a spec:
//
//	LAST_SESSION       context of the most recent session on the project
//	LAST_<N>_COMMITS   first N commits (requires git_path metadata)
//	LAST_<N>_DAYS      history entries newer than N days
//	anything else      the project's full context map
func (e *Executor) projectContext(id, spec string) (interface{}, bool) {
	switch {
	case spec == "LAST_SESSION":
		sessions, err := e.sessions.AllSessions()
		if err != nil {
			return nil, false
		}
		latest := latestSession(sessions, id)
		if latest == nil {
			return nil, false
		}
		if latest.Context == nil {
			return map[string]interface{}{}, true
		}
		return latest.Context, true

	case strings.HasPrefix(spec, "LAST_") && strings.HasSuffix(spec, "_COMMITS"):
		n, ok := specCount(spec, "_COMMITS")
		if !ok {
			return nil, false
		}
		p, err := e.projects.Project(id)
		if err != nil {
			return nil, false
		}
		path := p.GitPath()
		if path == "" {
			return nil, false
		}
		gc, err := e.projects.GitContext(path)
		if err != nil || gc == nil {
			return nil, false
		}
		commits := gc.Commits
		if len(commits) > n {
			commits = commits[:n]
		}
		entries := make([]interface{}, len(commits))
		for i, c := range commits {
			entries[i] = map[string]interface{}{
				"hash":    c.Hash,
				"author":  c.Author,
				"date":    c.Date.UTC().Format(time.RFC3339),
				"message": c.Message,
			}
		}
		return map[string]interface{}{"commits": entries}, true

	case strings.HasPrefix(spec, "LAST_") && strings.HasSuffix(spec, "_DAYS"):
		n, ok := specCount(spec, "_DAYS")
		if !ok {
			return nil, false
		}
		p, err := e.projects.Project(id)
		if err != nil {
			return nil, false
		}
		cutoff := e.now().AddDate(0, 0, -n)
		var entries []interface{}
		for _, h := range p.History {
			if h.Timestamp.Before(cutoff) {
				continue
			}
			entry := map[string]interface{}{
				"timestamp": h.Timestamp.UTC().Format(time.RFC3339),
				"event":     h.Event,
			}
			if len(h.Detail) > 0 {
				entry["detail"] = h.Detail
			}
			entries = append(entries, entry)
		}
		return map[string]interface{}{"history": entries}, true

	default:
		p, err := e.projects.Project(id)
		if err != nil {
			return nil, false
		}
		if p.Context == nil {
			return map[string]interface{}{}, true
		}
		return p.Context, true
	}
}

// specCount extracts N from LAST_<N>_COMMITS / LAST_<N>_DAYS. A
// malformed count is a resolution miss, not an error.
func specCount(spec, suffix string) (int, bool) {
	mid := strings.TrimSuffix(strings.TrimPrefix(spec, "LAST_"), suffix)
	n, err := strconv.Atoi(mid)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
