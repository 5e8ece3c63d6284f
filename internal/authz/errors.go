package authz

import (
	"errors"
)

// ErrMalformedRequest is returned when a decision arrives without the state
// the interaction page left in the session.
var ErrMalformedRequest = errors.New("malformed request")

// RequestError is an ErrMalformedRequest with a message for the client.
type RequestError struct {
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// Unwrap makes errors.Is match ErrMalformedRequest.
func (e *RequestError) Unwrap() error {
	return ErrMalformedRequest
}

func missingSessionKey(key string) error {
	return &RequestError{Message: "'" + key + "' must be present in the session."}
}
