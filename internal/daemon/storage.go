package daemon

import (
	"github.com/gofiber/fiber/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"

	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/config"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/db/dsn"
)

const defaultSessionTable = "sessions"

// newSessionStorage returns nil for in-memory sessions.
func newSessionStorage(cfg config.Session) (fiber.Storage, error) {
	table := cfg.Table
	if table == "" {
		table = defaultSessionTable
	}

	switch cfg.Storage {
	case config.SessionStorageMySQL:
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.URI(cfg.DB),
			Table:         table,
		}), nil
	case config.SessionStoragePostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.URI(cfg.DB),
			Table:         table,
		}), nil
	case "", config.SessionStorageMemory:
		return nil, nil //nolint:nilnil
	}

	return nil, ErrUnknownSessionStorage
}
