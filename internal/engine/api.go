package engine

import (
	"context"
)

// PasswordAuthenticator checks resource owner credentials for the password
// grant. It returns the subject or "" when the credentials are unknown.
type PasswordAuthenticator func(ctx context.Context, username, password string) (string, error)

// API is the subset of the engine used by the front-end.
type API interface {
	// Authorization analyses the raw authorization request parameters.
	Authorization(ctx context.Context, parameters string) (*Authorization, error)
	// AuthorizationError renders the response the engine prepared for an
	// action that needs no further processing.
	AuthorizationError(ctx context.Context, auth *Authorization) (*Response, error)
	// NoInteraction finishes a request that must not show any page.
	NoInteraction(ctx context.Context, auth *Authorization, cb Callbacks) (*Response, error)
	// Decide finishes a request after the end-user submitted the interaction page.
	Decide(ctx context.Context, params PendingParams, decision Decision, cb Callbacks) (*Response, error)

	Token(ctx context.Context, parameters, clientID, clientSecret string, authenticate PasswordAuthenticator) (*Response, error)
	Introspection(ctx context.Context, parameters string) (*Response, error)
	Revocation(ctx context.Context, parameters, clientID, clientSecret string) (*Response, error)
	JWKS(ctx context.Context) (*Response, error)
	Configuration(ctx context.Context) (*Response, error)

	// Ping checks that the engine is reachable with the configured credentials.
	Ping(ctx context.Context) error
}
