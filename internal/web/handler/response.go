package handler

import (
	"encoding/base64"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/engine"
)

// Send writes a response prepared by the engine.
func Send(c *fiber.Ctx, r *engine.Response) error {
	for k, v := range r.Headers {
		c.Set(k, v)
	}

	if r.ContentType != "" {
		c.Set(fiber.HeaderContentType, r.ContentType)
	}

	c.Status(r.Status)

	if r.Body == "" {
		return nil
	}

	return c.SendString(r.Body)
}

// ClientCredentials returns the client id and secret of an HTTP Basic
// Authorization header, or empty strings.
func ClientCredentials(c *fiber.Ctx) (string, string) {
	const prefix = "basic "

	auth := c.Get(fiber.HeaderAuthorization)
	if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return "", ""
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(auth[len(prefix):]))
	if err != nil {
		return "", ""
	}

	id, secret, ok := strings.Cut(string(raw), ":")
	if !ok {
		return "", ""
	}

	return id, secret
}
