package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/magpiehq/magpie/internal/model"
	"github.com/magpiehq/magpie/internal/mql"
	"github.com/magpiehq/magpie/internal/store"
)

func (s *Server) handleToolsList(req *Request) {
	tools := []Tool{
		{
			Name:        "magpie_query",
			Description: "Run an MQL query against the workspace. Use FIND to search context for a value, WHERE to filter projects by field conditions, and CONTEXT to retrieve a project's recent context. See the magpie://guide resource for the full language reference.",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"query": map[string]interface{}{
						"type":        "string",
						"description": `MQL query string (e.g., 'FIND "auth" IN ALL_PROJECTS', 'CONTEXT CURRENT_PROJECT CONTEXT LAST_5_COMMITS')`,
					},
				},
				Required: []string{"query"},
			},
		},
		{
			Name:        "magpie_project_register",
			Description: "Register a new project in the workspace. The project ID is derived from the name.",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"name": map[string]interface{}{
						"type":        "string",
						"description": "Project name (e.g., 'Payments API')",
					},
					"description": map[string]interface{}{
						"type":        "string",
						"description": "What the project is about",
					},
					"git_path": map[string]interface{}{
						"type":        "string",
						"description": "Path to the project's git repository, enables LAST_N_COMMITS context",
					},
					"metadata": map[string]interface{}{
						"type":        "object",
						"description": "Additional metadata as key-value pairs",
					},
				},
				Required: []string{"name"},
			},
		},
		{
			Name:        "magpie_project_list",
			Description: "List all registered projects with status and last-updated time.",
			InputSchema: InputSchema{
				Type: "object",
			},
		},
		{
			Name:        "magpie_project_log",
			Description: "Append an event to a project's history (deploys, reviews, decisions). History feeds LAST_N_DAYS context queries.",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"project_id": map[string]interface{}{
						"type":        "string",
						"description": "Project ID (e.g., payments-api)",
					},
					"event": map[string]interface{}{
						"type":        "string",
						"description": "Short event description (e.g., 'deployed v2.3.1')",
					},
					"detail": map[string]interface{}{
						"type":        "object",
						"description": "Optional structured detail for the event",
					},
				},
				Required: []string{"project_id", "event"},
			},
		},
		{
			Name:        "magpie_session_start",
			Description: "Start a work session on a project. The project becomes CURRENT_PROJECT for subsequent queries.",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"project_id": map[string]interface{}{
						"type":        "string",
						"description": "Project ID to work on",
					},
				},
				Required: []string{"project_id"},
			},
		},
		{
			Name:        "magpie_session_end",
			Description: "End a work session.",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"session_id": map[string]interface{}{
						"type":        "string",
						"description": "Session ID returned by magpie_session_start",
					},
				},
				Required: []string{"session_id"},
			},
		},
		{
			Name:        "magpie_session_set",
			Description: "Record context on a session (what you were doing, open questions, branch names). This is what CONTEXT LAST_SESSION queries return, so write notes your future self will need.",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"session_id": map[string]interface{}{
						"type":        "string",
						"description": "Session ID to update",
					},
					"context": map[string]interface{}{
						"type":        "object",
						"description": `Context as key-value pairs (e.g., {"focus": "token refresh bug", "branch": "fix/refresh"})`,
					},
				},
				Required: []string{"session_id", "context"},
			},
		},
	}

	s.sendResult(req.ID, map[string]interface{}{"tools": tools})
}

func (s *Server) callTool(name string, args map[string]interface{}) (string, bool) {
	st, err := s.openStore()
	if err != nil {
		return toolError("DATABASE_ERROR", err.Error()), true
	}
	defer st.Close()

	switch name {
	case "magpie_query":
		query, _ := args["query"].(string)
		env := mql.NewExecutor(st, st).Execute(query)
		if env.Error != "" {
			return toolError("QUERY_INVALID", env.Error), true
		}
		return toolSuccess(env), false

	case "magpie_project_register":
		projName, _ := args["name"].(string)
		description, _ := args["description"].(string)
		metadata, _ := args["metadata"].(map[string]interface{})
		if gitPath, ok := args["git_path"].(string); ok && gitPath != "" {
			if metadata == nil {
				metadata = make(map[string]interface{})
			}
			metadata["git_path"] = gitPath
		}
		project, err := st.RegisterProject(projName, description, metadata)
		if err != nil {
			if errors.Is(err, store.ErrProjectExists) {
				return toolError("PROJECT_EXISTS", err.Error()), true
			}
			return toolError("DATABASE_ERROR", err.Error()), true
		}
		return toolSuccess(project), false

	case "magpie_project_list":
		projects, err := st.AllProjects()
		if err != nil {
			return toolError("DATABASE_ERROR", err.Error()), true
		}
		return toolSuccess(map[string]interface{}{"projects": projects}), false

	case "magpie_project_log":
		projectID, _ := args["project_id"].(string)
		event, _ := args["event"].(string)
		detail, _ := args["detail"].(map[string]interface{})
		if err := st.AppendHistory(projectID, event, detail); err != nil {
			if errors.Is(err, model.ErrProjectNotFound) {
				return toolError("PROJECT_NOT_FOUND", err.Error()), true
			}
			return toolError("DATABASE_ERROR", err.Error()), true
		}
		return toolSuccess(map[string]interface{}{"project_id": projectID, "event": event}), false

	case "magpie_session_start":
		projectID, _ := args["project_id"].(string)
		session, err := st.StartSession(projectID)
		if err != nil {
			if errors.Is(err, model.ErrProjectNotFound) {
				return toolError("PROJECT_NOT_FOUND", err.Error()), true
			}
			return toolError("DATABASE_ERROR", err.Error()), true
		}
		return toolSuccess(session), false

	case "magpie_session_end":
		sessionID, _ := args["session_id"].(string)
		if err := st.EndSession(sessionID); err != nil {
			if errors.Is(err, model.ErrSessionNotFound) {
				return toolError("SESSION_NOT_FOUND", err.Error()), true
			}
			return toolError("DATABASE_ERROR", err.Error()), true
		}
		return toolSuccess(map[string]interface{}{"session_id": sessionID, "ended": true}), false

	case "magpie_session_set":
		sessionID, _ := args["session_id"].(string)
		context, _ := args["context"].(map[string]interface{})
		for k, v := range context {
			if err := st.SetSessionContext(sessionID, k, v); err != nil {
				if errors.Is(err, model.ErrSessionNotFound) {
					return toolError("SESSION_NOT_FOUND", err.Error()), true
				}
				return toolError("DATABASE_ERROR", err.Error()), true
			}
		}
		return toolSuccess(map[string]interface{}{"session_id": sessionID, "updated": len(context)}), false

	default:
		return toolError("UNKNOWN_TOOL", fmt.Sprintf("unknown tool: %s", name)), true
	}
}

func toolSuccess(data interface{}) string {
	out, err := json.MarshalIndent(map[string]interface{}{
		"ok":   true,
		"data": data,
	}, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "[magpie-mcp] Marshal error:", err)
		return `{"ok":false,"error":{"code":"INTERNAL_ERROR","message":"failed to encode result"}}`
	}
	return string(out)
}

func toolError(code, message string) string {
	out, err := json.Marshal(map[string]interface{}{
		"ok": false,
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
	if err != nil {
		return `{"ok":false,"error":{"code":"INTERNAL_ERROR","message":"failed to encode error"}}`
	}
	return string(out)
}
