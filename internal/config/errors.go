package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrEmptyEngineURL error if config engine.baseURL is empty.
	ErrEmptyEngineURL = errors.New("toml config engine.baseURL can not be empty")

	// ErrEmptyLDAPHost error if the ldap directory is selected without a host.
	ErrEmptyLDAPHost = errors.New("toml config directory.ldap.host can not be empty")

	// ErrEmptyDBName error if a database is used without a name.
	ErrEmptyDBName = errors.New("toml config db.name can not be empty")
)
