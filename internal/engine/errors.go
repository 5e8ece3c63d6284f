package engine

import (
	"errors"
)

var (
	// ErrUpstream is returned when the engine can not be reached or answers
	// with something this package does not understand.
	ErrUpstream = errors.New("authorization engine request failed")

	// ErrClientNotInitialized is returned when the engine client has no base URL.
	ErrClientNotInitialized = errors.New("authorization engine client not initialized")
)
