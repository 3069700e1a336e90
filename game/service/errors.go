package service

import "errors"

var (
	// ErrSessionNotFound is returned when no session has the requested ID
	ErrSessionNotFound = errors.New("session not found")
	// ErrConfigNotFound is returned when no configuration has the requested name
	ErrConfigNotFound = errors.New("configuration not found")
	// ErrInvalidRequest marks requests rejected before reaching the engine
	ErrInvalidRequest = errors.New("invalid request")
)
