package directory

import (
	"context"

	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/identity"
)

// Directory types selectable in the configuration.
const (
	TypeStatic   = "static"
	TypeDatabase = "database"
	TypeLDAP     = "ldap"
)

// UserDirectory finds users by login id and password. The match is exact
// and case-sensitive; a miss returns ErrUserNotFound.
type UserDirectory interface {
	FindByCredentials(ctx context.Context, loginID, password string) (*identity.User, error)
}
