// Package introspection serves the token introspection endpoint to
// protected resources.
package introspection

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"

	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/config"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/engine"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/web/handler"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/web/middleware/contenttype"
)

const (
	// Path is the introspection endpoint.
	Path = "/api/introspection"

	// Realm is announced to callers without valid credentials.
	Realm = Path

	anonymousUser = "nobody"
)

// Service is the introspection handler service.
type Service struct {
	handler.Service
	engine engine.API
}

// Handler is the introspection handler.
var Handler = Service{}

// Init initializes the introspection handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) error {
	if app == nil || cfg == nil || deps == nil || deps.Engine == nil {
		return handler.ErrNilDeps
	}

	s.engine = deps.Engine

	app.Post(Path, contenttype.RequireForm(), basicauth.New(basicauth.Config{
		Realm:        Realm,
		Authorizer:   Authorize,
		Unauthorized: unauthorized,
	}), s.Post)

	return nil
}

// Authorize accepts any API caller except an empty or anonymous one.
// Replace it to check the credentials of protected resources.
func Authorize(user, _ string) bool {
	return user != "" && user != anonymousUser
}

func unauthorized(c *fiber.Ctx) error {
	c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="`+Realm+`"`)

	return c.SendStatus(fiber.StatusUnauthorized)
}

// Post handles an introspection request.
func (s *Service) Post(c *fiber.Ctx) error {
	resp, err := s.engine.Introspection(c.UserContext(), string(c.Body()))
	if err != nil {
		return err
	}

	return handler.Send(c, resp)
}
