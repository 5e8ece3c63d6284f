package daemon

import (
	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/config"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/db/dsn"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/directory"
)

func newDirectory(cfg *config.Config) (directory.UserDirectory, error) {
	switch cfg.Directory.Type {
	case directory.TypeStatic:
		log.Info().Msg("using the built-in user directory")

		return directory.NewStatic(directory.DefaultUsers()), nil
	case directory.TypeDatabase:
		return newDatabaseDirectory(cfg.Directory.DB)
	case directory.TypeLDAP:
		ldapDir, err := directory.NewLDAP(cfg.Directory.LDAP)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}

		if err := ldapDir.TestConnection(); err != nil {
			log.Warn().Err(err).Str("host", cfg.Directory.LDAP.Host).Msg("ldap server is not reachable")
		}

		return ldapDir, nil
	}

	return nil, errors.Wrap(directory.ErrUnknownType, cfg.Directory.Type)
}

func openDB(db config.DB) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch db.GormEngine {
	case config.GormEnginePostgres:
		dialector = gormpostgres.Open(dsn.Create(db))
	case config.GormEngineSQLite:
		dialector = sqlite.Open(dsn.Create(db))
	default:
		dialector = gormmysql.Open(dsn.Create(db))
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	return gdb, nil
}

func newDatabaseDirectory(db config.DB) (*directory.Database, error) {
	gdb, err := openDB(db)
	if err != nil {
		return nil, err
	}

	dir := directory.NewDatabase(gdb)

	if err := dir.Migrate(); err != nil {
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	if err := seed(dir); err != nil {
		return nil, err
	}

	return dir, nil
}
