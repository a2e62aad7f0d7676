// Package cli implements the command-line interface.
package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by agents.
const (
	// Workspace errors
	ErrWorkspaceNotFound     = "WORKSPACE_NOT_FOUND"
	ErrWorkspaceNotSpecified = "WORKSPACE_NOT_SPECIFIED"
	ErrConfigInvalid         = "CONFIG_INVALID"

	// Project errors
	ErrProjectNotFound = "PROJECT_NOT_FOUND"
	ErrProjectExists   = "PROJECT_EXISTS"

	// Session errors
	ErrSessionNotFound = "SESSION_NOT_FOUND"
	ErrSessionEnded    = "SESSION_ENDED"

	// Database errors
	ErrDatabaseError   = "DATABASE_ERROR"
	ErrDatabaseVersion = "DATABASE_VERSION_MISMATCH"

	// Query errors
	ErrQueryNotFound = "QUERY_NOT_FOUND"
	ErrQueryInvalid  = "QUERY_INVALID"
	ErrDuplicateName = "DUPLICATE_NAME"

	// Input errors
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"

	// MCP client integration errors
	ErrMCPClientInvalid    = "MCP_CLIENT_INVALID"
	ErrMCPConfigWriteError = "MCP_CONFIG_WRITE_ERROR"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)
