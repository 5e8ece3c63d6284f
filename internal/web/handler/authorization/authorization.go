// Package authorization serves the authorization endpoint and the form the
// interaction page posts the end-user's decision to.
package authorization

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/authz"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/config"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/web/handler"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/web/middleware/contenttype"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/web/session"
)

const (
	// Path is the authorization endpoint.
	Path = "/api/authorization"

	// DecisionPath receives the authorization page form.
	DecisionPath = "/decision"

	// Template renders the interaction page.
	Template = "authorization"
)

// Service is the authorization handler service.
type Service struct {
	handler.Service
	cfg          *config.Config
	orchestrator *authz.Orchestrator
	sessions     *session.Store
	validate     *validator.Validate
}

// Handler is the authorization handler.
var Handler = Service{}

// decisionForm is the form of the authorization page.
type decisionForm struct {
	LoginID  string `form:"loginId"  validate:"max=256"`
	Password string `form:"password" validate:"max=1024"`
}

// Init initializes the authorization handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) error {
	if app == nil || cfg == nil || deps == nil || deps.Orchestrator == nil || deps.Sessions == nil {
		return handler.ErrNilDeps
	}

	s.cfg = cfg
	s.orchestrator = deps.Orchestrator
	s.sessions = deps.Sessions
	s.validate = validator.New()

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RootPath, s.Get)
		router.Post(handler.RootPath, contenttype.RequireForm(), s.Post)
		router.Post(DecisionPath, contenttype.RequireForm(), s.Decision)
	})

	return nil
}

// Get handles an authorization request sent as query parameters.
func (s *Service) Get(c *fiber.Ctx) error {
	return s.authorize(c, string(c.Request().URI().QueryString()))
}

// Post handles an authorization request sent as a form.
func (s *Service) Post(c *fiber.Ctx) error {
	return s.authorize(c, string(c.Body()))
}

func (s *Service) authorize(c *fiber.Ctx, parameters string) error {
	sess, state, err := s.sessions.Load(c)
	if err != nil {
		return err
	}

	result, err := s.orchestrator.Authorize(c.UserContext(), state, parameters)
	if err != nil {
		return err
	}

	if err := sess.Save(); err != nil {
		return err
	}

	if result.Response != nil {
		return handler.Send(c, result.Response)
	}

	return s.render(c, result.Interaction)
}

func (s *Service) render(c *fiber.Ctx, in *authz.Interaction) error {
	info := in.Info

	data := fiber.Map{
		"title":       s.cfg.Title,
		"clientName":  info.Client.DisplayName(),
		"description": info.Client.Description,
		"logoUri":     info.Client.LogoURI,
		"policyUri":   info.Client.PolicyURI,
		"tosUri":      info.Client.TosURI,
		"scopes":      info.Scopes,
		"claims":      info.ClaimNames,
		"loginId":     info.LoginHint,
		"user":        in.User,
		"action":      Path + DecisionPath,
	}

	c.Set(fiber.HeaderCacheControl, "no-store")
	c.Set("Pragma", "no-cache")

	return c.Render(Template, data, handler.BaseLayout)
}

// Decision handles the end-user's answer on the authorization page.
func (s *Service) Decision(c *fiber.Ctx) error {
	form := new(decisionForm)
	if err := c.BodyParser(form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Malformed form data.")
	}

	if err := s.validate.Struct(form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Malformed form data.")
	}

	unlock := s.sessions.Acquire(c)
	defer unlock()

	sess, state, err := s.sessions.Load(c)
	if err != nil {
		return err
	}

	resp, err := s.orchestrator.Decide(c.UserContext(), state, authz.DecisionForm{
		Authorized: c.Request().PostArgs().Has("authorized"),
		LoginID:    form.LoginID,
		Password:   form.Password,
	})

	// params are consumed even when the engine fails
	if saveErr := sess.Save(); saveErr != nil {
		log.Error().Err(saveErr).Msg("failed to save session")

		if err == nil {
			err = saveErr
		}
	}

	if err != nil {
		return err
	}

	return handler.Send(c, resp)
}
