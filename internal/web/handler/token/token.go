// Package token serves the token and revocation endpoints.
package token

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/config"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/directory"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/engine"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/web/handler"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/web/middleware/contenttype"
)

const (
	// Path is the token endpoint.
	Path = "/api/token"

	// RevocationPath is the revocation endpoint.
	RevocationPath = "/api/revocation"
)

// Service is the token handler service.
type Service struct {
	handler.Service
	engine    engine.API
	directory directory.UserDirectory
}

// Handler is the token handler.
var Handler = Service{}

// Init initializes the token handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) error {
	if app == nil || cfg == nil || deps == nil || deps.Engine == nil || deps.Directory == nil {
		return handler.ErrNilDeps
	}

	s.engine = deps.Engine
	s.directory = deps.Directory

	app.Post(Path, contenttype.RequireForm(), s.Token)
	app.Post(RevocationPath, contenttype.RequireForm(), s.Revocation)

	return nil
}

// Token handles a token request.
func (s *Service) Token(c *fiber.Ctx) error {
	clientID, clientSecret := handler.ClientCredentials(c)

	resp, err := s.engine.Token(c.UserContext(), string(c.Body()), clientID, clientSecret, s.authenticate)
	if err != nil {
		return err
	}

	return handler.Send(c, resp)
}

// Revocation handles a token revocation request.
func (s *Service) Revocation(c *fiber.Ctx) error {
	clientID, clientSecret := handler.ClientCredentials(c)

	resp, err := s.engine.Revocation(c.UserContext(), string(c.Body()), clientID, clientSecret)
	if err != nil {
		return err
	}

	return handler.Send(c, resp)
}

// authenticate checks resource owner credentials of the password grant.
func (s *Service) authenticate(ctx context.Context, username, password string) (string, error) {
	user, err := s.directory.FindByCredentials(ctx, username, password)

	switch {
	case errors.Is(err, directory.ErrUserNotFound):
		return "", nil
	case err != nil:
		return "", err
	}

	return user.Subject, nil
}
