// Package directory looks up end-users by their login credentials.
//
// Three implementations exist: Static serves a fixed in-memory list, Database
// reads the users table through gorm and LDAP binds against a directory
// server. All of them report unknown credentials as ErrUserNotFound.
package directory
