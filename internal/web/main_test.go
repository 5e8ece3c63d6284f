package web

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/authz"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/config"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/directory"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/engine"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/identity"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/web/handler"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/web/session"
)

// noOpViews writes the template name and the client name so tests can
// see what would have been rendered.
type noOpViews struct{}

func (noOpViews) Load() error { return nil }

func (noOpViews) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	_, _ = io.WriteString(w, name)

	if m, ok := data.(fiber.Map); ok {
		if v, exists := m["clientName"]; exists {
			_, _ = io.WriteString(w, ":"+v.(string))
		}

		if u, ok := m["user"].(*identity.User); ok && u != nil {
			_, _ = io.WriteString(w, ":logged-in")
		}
	}

	return nil
}

// fakeEngine answers like the engine would and records the decisions.
type fakeEngine struct {
	engine.API

	mu       sync.Mutex
	action   engine.Action
	err      error
	decided  []engine.Decision
	password []string
}

var (
	redirect = &engine.Response{
		Status:  http.StatusFound,
		Headers: map[string]string{fiber.HeaderLocation: "https://client.example.org/cb?code=abc"},
	}
	jsonOK = &engine.Response{
		Status:      http.StatusOK,
		ContentType: engine.ContentTypeJSON,
		Body:        `{"keys":[]}`,
		Headers:     map[string]string{fiber.HeaderCacheControl: "no-store", "Pragma": "no-cache"},
	}
)

func (f *fakeEngine) Authorization(context.Context, string) (*engine.Authorization, error) {
	if f.err != nil {
		return nil, f.err
	}

	return &engine.Authorization{
		Action:          f.action,
		ResponseContent: `{"error":"invalid_request"}`,
		Ticket:          "ticket-1",
		Client:          engine.ClientInfo{ClientID: 42, ClientName: "Demo Client"},
		Scopes:          []engine.Scope{{Name: "openid"}},
		ACRs:            []string{"urn:acr:pwd"},
	}, nil
}

func (f *fakeEngine) AuthorizationError(_ context.Context, auth *engine.Authorization) (*engine.Response, error) {
	return &engine.Response{Status: http.StatusBadRequest, ContentType: engine.ContentTypeJSON, Body: auth.ResponseContent}, nil
}

func (f *fakeEngine) NoInteraction(context.Context, *engine.Authorization, engine.Callbacks) (*engine.Response, error) {
	return redirect, nil
}

func (f *fakeEngine) Decide(
	_ context.Context, _ engine.PendingParams, d engine.Decision, _ engine.Callbacks,
) (*engine.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.decided = append(f.decided, d)

	return redirect, nil
}

func (f *fakeEngine) Token(
	ctx context.Context, _, clientID, _ string, authenticate engine.PasswordAuthenticator,
) (*engine.Response, error) {
	subject, err := authenticate(ctx, "john", "john")
	if err != nil {
		return nil, err
	}

	f.password = append(f.password, clientID+"/"+subject)

	return jsonOK, nil
}

func (f *fakeEngine) Introspection(context.Context, string) (*engine.Response, error) {
	return jsonOK, nil
}

func (f *fakeEngine) Revocation(context.Context, string, string, string) (*engine.Response, error) {
	return jsonOK, nil
}

func (f *fakeEngine) JWKS(context.Context) (*engine.Response, error) {
	return jsonOK, nil
}

func (f *fakeEngine) Configuration(context.Context) (*engine.Response, error) {
	if f.err != nil {
		return nil, f.err
	}

	return jsonOK, nil
}

func newTestService(t *testing.T, f *fakeEngine) *Service {
	t.Helper()

	cfg := &config.Config{
		Title:     "test",
		Webserver: config.Webserver{URL: "http://localhost", Port: 1902},
	}

	dir := directory.NewStatic(directory.DefaultUsers())

	deps := &handler.Deps{
		Engine:       f,
		Directory:    dir,
		Orchestrator: authz.New(f, dir),
		Sessions:     session.NewStore(nil, session.Config{CookieName: "session_id"}),
	}

	s, err := newService(cfg, deps, noOpViews{})
	require.NoError(t, err)

	return s
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return string(b)
}

func postForm(target string, form url.Values, cookie string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	if cookie != "" {
		req.Header.Set(fiber.HeaderCookie, cookie)
	}

	return req
}

func sessionCookie(t *testing.T, resp *http.Response) string {
	t.Helper()

	for _, c := range resp.Cookies() {
		if c.Name == "session_id" {
			return c.Name + "=" + c.Value
		}
	}

	t.Fatalf("no session cookie in %v", resp.Header.Values(fiber.HeaderSetCookie))

	return ""
}

func TestAuthorization_InteractionRendersPage(t *testing.T) {
	s := newTestService(t, &fakeEngine{action: engine.ActionInteraction})

	resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, "/api/authorization?response_type=code&client_id=42", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "no-store", resp.Header.Get(fiber.HeaderCacheControl))
	assert.Equal(t, "authorization:Demo Client", body(t, resp))
	assert.NotEmpty(t, sessionCookie(t, resp))
}

func TestAuthorization_PassThroughActions(t *testing.T) {
	testCases := []struct {
		action engine.Action
		status int
	}{
		{action: engine.ActionNoInteraction, status: http.StatusFound},
		{action: engine.ActionBadRequest, status: http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(string(tc.action), func(t *testing.T) {
			s := newTestService(t, &fakeEngine{action: tc.action})

			resp, err := s.App.Test(postForm("/api/authorization", url.Values{"client_id": {"42"}}, ""))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestAuthorization_WrongContentType(t *testing.T) {
	s := newTestService(t, &fakeEngine{action: engine.ActionInteraction})

	for _, target := range []string{"/api/authorization", "/api/authorization/decision", "/api/token", "/api/introspection"} {
		req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(`{}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

		resp, err := s.App.Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, target)
		assert.Equal(t, "Request 'Content-Type' must be 'application/x-www-form-urlencoded'.", body(t, resp), target)
	}
}

func TestDecision_WithoutParams(t *testing.T) {
	f := &fakeEngine{action: engine.ActionInteraction}
	s := newTestService(t, f)

	resp, err := s.App.Test(postForm("/api/authorization/decision", url.Values{"authorized": {"Authorize"}}, ""))
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "'params' must be present in the session.", body(t, resp))
	assert.Empty(t, f.decided)
}

func TestDecision_FullFlow(t *testing.T) {
	f := &fakeEngine{action: engine.ActionInteraction}
	s := newTestService(t, f)

	resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, "/api/authorization?client_id=42", nil))
	require.NoError(t, err)

	cookie := sessionCookie(t, resp)

	form := url.Values{"authorized": {""}, "loginId": {"john"}, "password": {"john"}}

	resp, err = s.App.Test(postForm("/api/authorization/decision", form, cookie))
	require.NoError(t, err)

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "https://client.example.org/cb?code=abc", resp.Header.Get(fiber.HeaderLocation))

	require.Len(t, f.decided, 1)
	assert.True(t, f.decided[0].Authorized)
	assert.Equal(t, "1001", f.decided[0].Subject)
	assert.Positive(t, f.decided[0].AuthTime)
	assert.Equal(t, "urn:acr:pwd", f.decided[0].ACR)

	// params were consumed
	resp, err = s.App.Test(postForm("/api/authorization/decision", form, cookie))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// the login survives, the next interaction page shows the user
	resp, err = s.App.Test(func() *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/api/authorization?client_id=42", nil)
		req.Header.Set(fiber.HeaderCookie, cookie)

		return req
	}())
	require.NoError(t, err)
	assert.Equal(t, "authorization:Demo Client:logged-in", body(t, resp))
}

func TestDecision_DeniedWithWrongPassword(t *testing.T) {
	f := &fakeEngine{action: engine.ActionInteraction}
	s := newTestService(t, f)

	resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, "/api/authorization", nil))
	require.NoError(t, err)

	resp, err = s.App.Test(postForm("/api/authorization/decision",
		url.Values{"denied": {"Deny"}, "loginId": {"john"}, "password": {"nope"}}, sessionCookie(t, resp)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	require.Len(t, f.decided, 1)
	assert.False(t, f.decided[0].Authorized)
	assert.Empty(t, f.decided[0].Subject)
	assert.Zero(t, f.decided[0].AuthTime)
}

func TestDecision_ConcurrentSubmissionsConsumeParamsOnce(t *testing.T) {
	f := &fakeEngine{action: engine.ActionInteraction}
	s := newTestService(t, f)

	resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, "/api/authorization", nil))
	require.NoError(t, err)

	cookie := sessionCookie(t, resp)

	const submissions = 4

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		statuses []int
	)

	for range submissions {
		wg.Add(1)

		go func() {
			defer wg.Done()

			r, err := s.App.Test(postForm("/api/authorization/decision", url.Values{"authorized": {""}}, cookie), -1)
			if !assert.NoError(t, err) {
				return
			}

			mu.Lock()
			statuses = append(statuses, r.StatusCode)
			mu.Unlock()
		}()
	}

	wg.Wait()

	assert.Len(t, f.decided, 1)
	assert.ElementsMatch(t, []int{http.StatusFound, http.StatusBadRequest, http.StatusBadRequest, http.StatusBadRequest}, statuses)
}

func TestToken_PasswordGrantUsesDirectory(t *testing.T) {
	f := &fakeEngine{}
	s := newTestService(t, f)

	req := postForm("/api/token", url.Values{"grant_type": {"password"}}, "")
	req.Header.Set(fiber.HeaderAuthorization, "Basic "+base64.StdEncoding.EncodeToString([]byte("42:secret")))

	resp, err := s.App.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "no-store", resp.Header.Get(fiber.HeaderCacheControl))
	assert.Equal(t, []string{"42/1001"}, f.password)
}

func TestIntrospection_RequiresAPICaller(t *testing.T) {
	s := newTestService(t, &fakeEngine{})

	testCases := []struct {
		name   string
		creds  string
		status int
	}{
		{name: "missing", status: http.StatusUnauthorized},
		{name: "nobody", creds: "nobody:x", status: http.StatusUnauthorized},
		{name: "empty user", creds: ":x", status: http.StatusUnauthorized},
		{name: "resource server", creds: "rs:secret", status: http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := postForm("/api/introspection", url.Values{"token": {"abc"}}, "")
			if tc.creds != "" {
				req.Header.Set(fiber.HeaderAuthorization, "Basic "+base64.StdEncoding.EncodeToString([]byte(tc.creds)))
			}

			resp, err := s.App.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			if tc.status == http.StatusUnauthorized {
				assert.Equal(t, `Basic realm="/api/introspection"`, resp.Header.Get(fiber.HeaderWWWAuthenticate))
			}
		})
	}
}

func TestMetadataAndRevocation(t *testing.T) {
	s := newTestService(t, &fakeEngine{})

	resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, "/api/jwks", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, engine.ContentTypeJSON, resp.Header.Get(fiber.HeaderContentType))
	assert.JSONEq(t, `{"keys":[]}`, body(t, resp))

	resp, err = s.App.Test(postForm("/api/revocation", url.Values{"token": {"abc"}}, ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUpstreamFailureIsGeneric500(t *testing.T) {
	f := &fakeEngine{err: errors.Join(engine.ErrUpstream, errors.New("dial tcp: refused"))}
	s := newTestService(t, f)

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api/authorization", nil),
		httptest.NewRequest(http.MethodGet, "/.well-known/openid-configuration", nil),
	} {
		resp, err := s.App.Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, MsgInternalServerError, body(t, resp))
	}
}

func TestCheckAliveAndMetrics(t *testing.T) {
	s := newTestService(t, &fakeEngine{})

	resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, CheckAlivePath, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	s.alive.Store(false)

	resp, err = s.App.Test(httptest.NewRequest(http.MethodGet, CheckAlivePath, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp, err = s.App.Test(httptest.NewRequest(http.MethodGet, MetricsPath, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "go_goroutines")
}

func TestNew_NilDeps(t *testing.T) {
	_, err := New(nil, nil)
	assert.ErrorIs(t, err, handler.ErrNilDeps)
}
