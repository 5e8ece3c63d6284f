// Package contenttype rejects requests whose body has an unexpected media type.
package contenttype

import (
	"errors"
	"mime"

	"github.com/gofiber/fiber/v2"
)

// ErrWrongContentType is matched by every *Error.
var ErrWrongContentType = errors.New("wrong content type")

// Error names the media type the endpoint expects.
type Error struct {
	Expected string
}

func (e *Error) Error() string {
	return "Request 'Content-Type' must be '" + e.Expected + "'."
}

// Unwrap makes errors.Is match ErrWrongContentType.
func (e *Error) Unwrap() error {
	return ErrWrongContentType
}

// Require lets requests through whose Content-Type has the media type
// expected, parameters like charset ignored.
func Require(expected string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mediaType, _, err := mime.ParseMediaType(c.Get(fiber.HeaderContentType))
		if err != nil || mediaType != expected {
			return &Error{Expected: expected}
		}

		return c.Next()
	}
}

// RequireForm is Require for application/x-www-form-urlencoded.
func RequireForm() fiber.Handler {
	return Require(fiber.MIMEApplicationForm)
}
