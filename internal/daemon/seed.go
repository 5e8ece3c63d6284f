package daemon

import (
	"context"

	"github.com/pkg/errors"

	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/directory"
)

// seed fills an empty user table with the demo users.
func seed(dir *directory.Database) error {
	if err := dir.Seed(context.Background(), directory.DefaultUsers()); err != nil {
		return errors.Wrap(err, "failed to seed users")
	}

	return nil
}
