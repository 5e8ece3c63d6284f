package directory

import (
	"context"
	"crypto/subtle"

	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/identity"
)

// Static is an in-memory directory. It is read-only after creation.
type Static struct {
	users map[string]identity.User
}

var _ UserDirectory = (*Static)(nil)

// DefaultUsers returns the demo accounts.
func DefaultUsers() []identity.User {
	return []identity.User{
		{
			Subject:     "1001",
			LoginID:     "john",
			Password:    "john",
			Name:        "John Flibble Smith",
			Email:       "john@example.com",
			Address:     &identity.Address{Country: "USA Flibble"},
			PhoneNumber: "+1 (425) 555-1212",
		},
		{
			Subject:     "1002",
			LoginID:     "jane",
			Password:    "jane",
			Name:        "Jane Smith",
			Email:       "jane@example.com",
			Address:     &identity.Address{Country: "Chile"},
			PhoneNumber: "+56 (2) 687 2400",
		},
		{
			Subject:     "1003",
			LoginID:     "max",
			Password:    "max",
			Name:        "Max Meier",
			Email:       "max@example.com",
			Address:     &identity.Address{Country: "Germany"},
			PhoneNumber: "+49 (30) 210 94-0",
		},
	}
}

// NewStatic creates a directory holding users. Later entries win on
// duplicate login ids.
func NewStatic(users []identity.User) *Static {
	s := &Static{users: make(map[string]identity.User, len(users))}

	for _, u := range users {
		if u.Address != nil {
			addr := *u.Address
			u.Address = &addr
		}

		s.users[u.LoginID] = u
	}

	return s
}

// FindByCredentials implements UserDirectory.
func (s *Static) FindByCredentials(_ context.Context, loginID, password string) (*identity.User, error) {
	if loginID == "" || password == "" {
		return nil, ErrUserNotFound
	}

	u, found := s.users[loginID]
	if !found || subtle.ConstantTimeCompare([]byte(u.Password), []byte(password)) != 1 {
		return nil, ErrUserNotFound
	}

	// hand out a copy so callers can not change the directory
	if u.Address != nil {
		addr := *u.Address
		u.Address = &addr
	}

	u.Password = ""

	return &u, nil
}
