package model

import "errors"

var (
	// ErrProjectNotFound indicates the requested project ID is not registered.
	ErrProjectNotFound = errors.New("project not found")
	// ErrSessionNotFound indicates the requested session ID does not exist.
	ErrSessionNotFound = errors.New("session not found")
)
