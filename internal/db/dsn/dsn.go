// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"

	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/config"
)

// Create builds the Data Source Name of the directory database for its gorm engine.
func Create(db config.DB) string {
	switch db.GormEngine {
	case config.GormEnginePostgres:
		out := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
			db.Host,
			db.Port,
			db.User,
			db.Password,
			db.Name,
		)

		if db.Extras != "" {
			out += " " + db.Extras
		}

		return out
	case config.GormEngineSQLite:
		return db.Name
	}

	out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		db.User,
		db.Password,
		db.Host,
		db.Port,
		db.Name,
		db.Extras,
	)

	return out
}

// URI builds the connection URI used by the session storages.
func URI(db config.DB) string {
	if db.GormEngine == config.GormEnginePostgres {
		return fmt.Sprintf("postgres://%s:%s@%s:%d/%s", db.User, db.Password, db.Host, db.Port, db.Name)
	}

	return Create(db)
}
