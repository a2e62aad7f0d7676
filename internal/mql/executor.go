package mql

import (
	"errors"
	"fmt"
	"time"

	"github.com/magpiehq/magpie/internal/model"
)

// Envelope is the uniform record returned by Execute for both success
// and failure. Error and Query are set only on failure.
type Envelope struct {
	QueryType        string      `json:"query_type,omitempty"`
	Scope            string      `json:"scope,omitempty"`
	ProjectsSearched int         `json:"projects_searched"`
	ProjectsMatched  int         `json:"projects_matched"`
	Value            interface{} `json:"value,omitempty"`
	Condition        string      `json:"condition,omitempty"`
	ContextSpec      string      `json:"context_spec,omitempty"`
	Results          []Result    `json:"results,omitempty"`
	Error            string      `json:"error,omitempty"`
	Query            string      `json:"query,omitempty"`
}

// Executor runs MQL queries against injected project and session
// sources. It holds no mutable state: every call builds and discards
// its own AST, so concurrent Execute calls are safe as long as the
// sources tolerate concurrent reads.
type Executor struct {
	projects ProjectSource
	sessions SessionSource
	now      func() time.Time
}

// NewExecutor creates a query executor over the given sources.
func NewExecutor(projects ProjectSource, sessions SessionSource) *Executor {
	return &Executor{projects: projects, sessions: sessions, now: time.Now}
}

// Execute parses and runs an MQL query string. It never returns an
// error: parse failures, collaborator failures and internal panics all
// render as an envelope carrying error and the original query text.
func (e *Executor) Execute(queryStr string) (env *Envelope) {
	defer func() {
		if r := recover(); r != nil {
			env = &Envelope{Error: fmt.Sprintf("internal error: %v", r), Query: queryStr}
		}
	}()

	q, err := Parse(queryStr)
	if err != nil {
		return &Envelope{Error: err.Error(), Query: queryStr}
	}

	switch qt := q.(type) {
	case *FindQuery:
		env, err = e.executeFind(qt)
	case *WhereQuery:
		env, err = e.executeWhere(qt)
	case *ContextQuery:
		env, err = e.executeContext(qt)
	default:
		err = fmt.Errorf("unhandled query type %T", q)
	}
	if err != nil {
		return &Envelope{Error: err.Error(), Query: queryStr}
	}
	return env
}

// executeFind resolves the scope, optionally filters it, retrieves
// each project's context and searches it for the target value.
func (e *Executor) executeFind(q *FindQuery) (*Envelope, error) {
	ids, err := e.resolveScope(q.Scope)
	if err != nil {
		return nil, err
	}
	if q.Condition != nil {
		ids, err = e.filterIDs(ids, q.Condition)
		if err != nil {
			return nil, err
		}
	}

	contexts := e.retrieveContext(ids, q.ContextSpec)
	target := q.Value.Text()

	var results []Result
	for _, id := range ids {
		payload, ok := contexts[id]
		if !ok {
			continue
		}
		matches := SearchValues(target, payload)
		if len(matches) == 0 {
			continue
		}
		entry := Result{
			"project_id":  id,
			"matches":     matches,
			"match_count": len(matches),
		}
		e.stampUpdatedAt(entry, id)
		results = append(results, entry)
	}

	return &Envelope{
		QueryType:        "find",
		Scope:            q.Scope,
		Value:            q.Value.Native(),
		ProjectsSearched: len(ids),
		Results:          Rank(results, q.Priority),
	}, nil
}

// executeWhere resolves the scope and returns the projects matching
// the condition, optionally with their context attached.
func (e *Executor) executeWhere(q *WhereQuery) (*Envelope, error) {
	ids, err := e.resolveScope(q.Scope)
	if err != nil {
		return nil, err
	}

	var (
		results    []Result
		matchedIDs []string
	)
	for _, id := range ids {
		p, err := e.projects.Project(id)
		if errors.Is(err, model.ErrProjectNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if !Evaluate(q.Condition, p) {
			continue
		}
		entry := Result{
			"project_id": p.ID,
			"name":       p.Name,
			"status":     p.Status,
			"updated_at": p.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if p.Description != "" {
			entry["description"] = p.Description
		}
		results = append(results, entry)
		matchedIDs = append(matchedIDs, p.ID)
	}

	if q.ContextSpec != "" {
		contexts := e.retrieveContext(matchedIDs, q.ContextSpec)
		for _, entry := range results {
			id, _ := entry["project_id"].(string)
			if payload, ok := contexts[id]; ok {
				entry["context"] = payload
			}
		}
	}

	return &Envelope{
		QueryType:        "where",
		Scope:            q.Scope,
		Condition:        q.Condition.String(),
		ContextSpec:      q.ContextSpec,
		ProjectsSearched: len(ids),
		ProjectsMatched:  len(results),
		Results:          Rank(results, q.Priority),
	}, nil
}

// executeContext resolves the scope, optionally filters it, and
// returns each project's context payload. Projects whose context
// cannot be resolved still appear, without a context key.
func (e *Executor) executeContext(q *ContextQuery) (*Envelope, error) {
	ids, err := e.resolveScope(q.Scope)
	if err != nil {
		return nil, err
	}
	if q.Condition != nil {
		ids, err = e.filterIDs(ids, q.Condition)
		if err != nil {
			return nil, err
		}
	}

	spec := q.ContextSpec
	if spec == "" {
		spec = DefaultContextSpec
	}
	contexts := e.retrieveContext(ids, spec)

	results := make([]Result, 0, len(ids))
	for _, id := range ids {
		entry := Result{"project_id": id}
		if payload, ok := contexts[id]; ok {
			entry["context"] = payload
		}
		e.stampUpdatedAt(entry, id)
		results = append(results, entry)
	}

	return &Envelope{
		QueryType:       "context",
		Scope:           q.Scope,
		ContextSpec:     spec,
		ProjectsMatched: len(results),
		Results:         Rank(results, q.Priority),
	}, nil
}

// filterIDs keeps the project IDs whose records satisfy the condition.
// IDs that no longer resolve are dropped silently.
func (e *Executor) filterIDs(ids []string, cond Condition) ([]string, error) {
	var kept []string
	for _, id := range ids {
		p, err := e.projects.Project(id)
		if errors.Is(err, model.ErrProjectNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if Evaluate(cond, p) {
			kept = append(kept, id)
		}
	}
	return kept, nil
}

// stampUpdatedAt attaches the project's updated_at so PRIORITIZE
// RECENCY has a sort key. Best-effort; missing projects are left
// unstamped.
func (e *Executor) stampUpdatedAt(entry Result, id string) {
	p, err := e.projects.Project(id)
	if err != nil {
		return
	}
	entry["updated_at"] = p.UpdatedAt.UTC().Format(time.RFC3339)
}
