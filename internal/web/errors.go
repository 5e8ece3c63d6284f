package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/authz"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/web/middleware/contenttype"
)

// MsgInternalServerError is the body of every unexpected failure.
const MsgInternalServerError = "Something went wrong."

// ErrWrongContentType is returned by the POST endpoints for bodies that are
// not form encoded.
var ErrWrongContentType = contenttype.ErrWrongContentType

// ErrorHandler turns the errors of the handlers into plain-text responses.
// Details of unexpected failures are only logged.
func ErrorHandler(c *fiber.Ctx, err error) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)

	var fiberErr *fiber.Error

	switch {
	case errors.Is(err, authz.ErrMalformedRequest), errors.Is(err, ErrWrongContentType):
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	case errors.As(err, &fiberErr):
		return c.Status(fiberErr.Code).SendString(fiberErr.Message)
	}

	log.Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("request failed")

	return c.Status(fiber.StatusInternalServerError).SendString(MsgInternalServerError)
}
