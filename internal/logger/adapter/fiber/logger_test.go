package fiber_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/logger"
	adapter "github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/logger/adapter/fiber"
)

type accessLine struct {
	IP     string `json:"IP"`
	Status int    `json:"status"`
	URI    string `json:"URI"`
	Method string `json:"method"`
	Host   string `json:"host"`
	Error  string `json:"error"`
}

func newApp(cfg adapter.Config) *fiber.App {
	app := fiber.New(fiber.Config{CaseSensitive: true, Immutable: true})
	app.Use(adapter.New(cfg))

	app.Get("/api/jwks", func(c *fiber.Ctx) error {
		return c.SendString(`{"keys":[]}`)
	})
	app.Get("/checkalive", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	app.Post("/api/authorization/decision", func(*fiber.Ctx) error {
		return errors.New("engine down") //nolint:err113
	})

	return app
}

func TestNew_AccessLine(t *testing.T) {
	testCases := []struct {
		name   string
		method string
		target string
		status int
		uri    string
		err    string
	}{
		{name: "ok", method: fiber.MethodGet, target: "/api/jwks", status: 200, uri: "/api/jwks"},
		{
			name:   "query kept",
			method: fiber.MethodGet,
			target: "/api/jwks?kid=1&x=2",
			status: 200,
			uri:    "/api/jwks?kid=1&x=2",
		},
		{
			name:   "unknown route",
			method: fiber.MethodGet,
			target: "/nope",
			status: 404,
			uri:    "/nope",
			err:    "Cannot GET /nope",
		},
		{
			name:   "chain error answered by error handler",
			method: fiber.MethodPost,
			target: "/api/authorization/decision",
			status: 500,
			uri:    "/api/authorization/decision",
			err:    "engine down",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer

			app := newApp(adapter.Config{Output: &out})

			resp, err := app.Test(httptest.NewRequest(tc.method, tc.target, nil))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get("X-Performance"))

			var line accessLine
			require.NoError(t, json.Unmarshal(out.Bytes(), &line), out.String())

			assert.Equal(t, tc.status, line.Status)
			assert.Equal(t, tc.uri, line.URI)
			assert.Equal(t, tc.method, line.Method)
			assert.Equal(t, "example.com", line.Host)
			assert.Equal(t, tc.err, line.Error)
		})
	}
}

func TestNew_CheckAlive(t *testing.T) {
	for _, disable := range []bool{true, false} {
		var out bytes.Buffer

		app := newApp(adapter.Config{
			Output:        &out,
			CheckAliveURI: "/checkalive",
			Config:        logger.Log{DisableCheckAlive: disable},
		})

		_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/checkalive", nil))
		require.NoError(t, err)

		assert.Equal(t, disable, out.Len() == 0)
	}
}

func TestNew_Next(t *testing.T) {
	var out bytes.Buffer

	app := newApp(adapter.Config{
		Output: &out,
		Next:   func(c *fiber.Ctx) bool { return c.Path() == "/api/jwks" },
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/jwks", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("X-Performance"))
	assert.Zero(t, out.Len())
}

func TestNew_NoWriters(t *testing.T) {
	app := newApp(adapter.Config{})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/jwks", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
