package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/authz"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/config"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/directory"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/engine"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/web/session"
)

// ErrNilDeps is returned by Init when a dependency is missing.
var ErrNilDeps = errors.New(ErrNilDepsFatalLogMsg)

// Deps are the collaborators shared by the handlers.
type Deps struct {
	Engine       engine.API
	Directory    directory.UserDirectory
	Orchestrator *authz.Orchestrator
	Sessions     *session.Store
}

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, deps *Deps) error
}
