package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/magpiehq/magpie/internal/config"
)

// Resource URIs served by the workspace.
const (
	resourceGuideURI    = "magpie://guide"
	resourceQueriesURI  = "magpie://queries"
	resourceProjectsURI = "magpie://projects"
)

func (s *Server) handleResourcesList(req *Request) {
	resources := []Resource{
		{
			URI:         resourceGuideURI,
			Name:        "MQL language reference",
			Description: "How to query the workspace with MQL: query forms, scopes, clauses, and examples.",
			MimeType:    "text/markdown",
		},
		{
			URI:         resourceQueriesURI,
			Name:        "Saved queries",
			Description: "Saved queries defined in magpie.yaml, runnable via the magpie_query tool.",
			MimeType:    "application/json",
		},
		{
			URI:         resourceProjectsURI,
			Name:        "Registered projects",
			Description: "All projects in the workspace with status and last-updated time.",
			MimeType:    "application/json",
		},
	}
	s.sendResult(req.ID, map[string]interface{}{"resources": resources})
}

func (s *Server) handleResourcesRead(req *Request) {
	var params struct {
		URI string `json:"uri"`
	}
	if req.Params != nil {
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			s.sendError(req.ID, -32602, "Invalid params", err.Error())
			return
		}
	}

	var (
		text     string
		mimeType string
		err      error
	)
	switch params.URI {
	case resourceGuideURI:
		text, mimeType = AgentGuide, "text/markdown"
	case resourceQueriesURI:
		text, err = s.readSavedQueriesResource()
		mimeType = "application/json"
	case resourceProjectsURI:
		text, err = s.readProjectsResource()
		mimeType = "application/json"
	default:
		s.sendError(req.ID, -32602, "Unknown resource", params.URI)
		return
	}
	if err != nil {
		s.sendError(req.ID, -32603, "Resource read failed", err.Error())
		return
	}

	s.sendResult(req.ID, map[string]interface{}{
		"contents": []ResourceContent{{
			URI:      params.URI,
			MimeType: mimeType,
			Text:     text,
		}},
	})
}

type savedQueryResource struct {
	Name        string `json:"name"`
	Query       string `json:"query"`
	Description string `json:"description,omitempty"`
}

func (s *Server) readSavedQueriesResource() (string, error) {
	wcfg, err := config.LoadWorkspaceConfig(s.workspacePath)
	if err != nil {
		return "", err
	}

	queries := make([]savedQueryResource, 0, len(wcfg.Queries))
	for _, name := range wcfg.SavedQueryNames() {
		q := wcfg.Queries[name]
		if q == nil {
			continue
		}
		queries = append(queries, savedQueryResource{
			Name:        name,
			Query:       q.Query,
			Description: q.Description,
		})
	}

	out, err := json.MarshalIndent(map[string]interface{}{"queries": queries}, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (s *Server) readProjectsResource() (string, error) {
	st, err := s.openStore()
	if err != nil {
		return "", fmt.Errorf("opening workspace database: %w", err)
	}
	defer st.Close()

	projects, err := st.AllProjects()
	if err != nil {
		return "", err
	}

	out, err := json.MarshalIndent(map[string]interface{}{"projects": projects}, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}
