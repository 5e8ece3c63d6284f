// Package metadata publishes the JWK Set and the discovery document.
package metadata

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/config"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/engine"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/web/handler"
)

const (
	// JWKSPath serves the JWK Set of the service.
	JWKSPath = "/api/jwks"

	// ConfigurationPath serves the OpenID Provider metadata.
	ConfigurationPath = "/.well-known/openid-configuration"
)

// Service is the metadata handler service.
type Service struct {
	handler.Service
	engine engine.API
}

// Handler is the metadata handler.
var Handler = Service{}

// Init initializes the metadata handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) error {
	if app == nil || cfg == nil || deps == nil || deps.Engine == nil {
		return handler.ErrNilDeps
	}

	s.engine = deps.Engine

	app.Get(JWKSPath, s.JWKS)
	app.Get(ConfigurationPath, s.Configuration)

	return nil
}

// JWKS handles a JWK Set request.
func (s *Service) JWKS(c *fiber.Ctx) error {
	resp, err := s.engine.JWKS(c.UserContext())
	if err != nil {
		return err
	}

	return handler.Send(c, resp)
}

// Configuration handles a discovery request.
func (s *Service) Configuration(c *fiber.Ctx) error {
	resp, err := s.engine.Configuration(c.UserContext())
	if err != nil {
		return err
	}

	return handler.Send(c, resp)
}
