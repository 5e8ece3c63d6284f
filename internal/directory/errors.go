package directory

import "errors"

var (
	// ErrUserNotFound is returned when no user matches the credentials.
	ErrUserNotFound = errors.New("user not found")

	// ErrMultipleUsersFound is returned when a query expected one user but found multiple.
	// This typically indicates a misconfigured LDAP filter or duplicate entries.
	ErrMultipleUsersFound = errors.New("multiple users found")

	// ErrLDAPDisabled is returned when the LDAP directory is not enabled via configuration.
	ErrLDAPDisabled = errors.New("ldap directory is disabled")

	// ErrUnknownType is returned for an unsupported directory type.
	ErrUnknownType = errors.New("unknown directory type")
)
