// Package identity holds the end-user record served by the user directory
// and the mapping from standard OpenID Connect claim names to its fields.
package identity
