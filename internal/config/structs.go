package config

import (
	"time"

	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/directory"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/engine"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/logger"
)

// Session storage backends.
const (
	SessionStorageMemory   = "memory"
	SessionStorageMySQL    = "mysql"
	SessionStoragePostgres = "postgres"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
	CookieName string
	// Storage is one of memory, mysql or postgres.
	Storage string `validate:"omitempty,oneof=memory mysql postgres"`
	Table   string
	DB      DB
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	Log       logger.Log
	Title     string
	Webserver Webserver
	Engine    engine.Config
	Directory Directory
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool    // disable recover middleware
	Domain         string  // cookie domain
	Port           int     `validate:"min=1,max=65535"` // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown
	URL            string  `validate:"url"` // base url for the webserver
	CookieSecure   bool    // send the session cookie over https only
	Session        Session // session settings
}

// Directory selects where end-users are looked up.
type Directory struct {
	// Type is one of static, database or ldap.
	Type string `validate:"required,oneof=static database ldap"`
	DB   DB
	LDAP directory.LDAPConfig
}
