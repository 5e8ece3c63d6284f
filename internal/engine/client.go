package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	defaultTimeout = 30 * time.Second
	maxBodySize    = 4 << 20
)

// Engine API endpoints.
const (
	pathAuthorization        = "/api/auth/authorization"
	pathAuthorizationIssue   = "/api/auth/authorization/issue"
	pathAuthorizationFail    = "/api/auth/authorization/fail"
	pathToken                = "/api/auth/token"
	pathTokenIssue           = "/api/auth/token/issue"
	pathTokenFail            = "/api/auth/token/fail"
	pathIntrospection        = "/api/auth/introspection/standard"
	pathRevocation           = "/api/auth/revocation"
	pathJWKS                 = "/api/service/jwks/get"
	pathServiceConfiguration = "/api/service/configuration"
)

// Config holds the engine connection settings.
type Config struct {
	BaseURL   string        `toml:"baseURL" validate:"required,url"`
	APIKey    string        `toml:"apiKey" validate:"required"`
	APISecret string        `toml:"apiSecret"`
	Timeout   time.Duration `toml:"timeout"`
}

// Client is the HTTP implementation of API.
type Client struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	httpClient *http.Client

	// Now is the clock used for max_age checks.
	Now func() time.Time
}

var _ API = (*Client)(nil)

// New creates an engine client from cfg.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrClientNotInitialized
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = timeout

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		httpClient: httpClient,
		Now:        time.Now,
	}, nil
}

// actionResponse is the common shape of engine answers.
type actionResponse struct {
	Action          Action `json:"action"`
	ResponseContent string `json:"responseContent"`
}

// do sends one API request. in is encoded as JSON when not nil; the raw
// answer is returned for any 2xx status.
func (c *Client) do(ctx context.Context, method, path string, in any) ([]byte, error) {
	started := time.Now()

	var body io.Reader

	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, errors.Wrapf(err, "encode %s request", path)
		}

		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, errors.Wrapf(ErrUpstream, "build %s request: %v", path, err)
	}

	req.SetBasicAuth(c.apiKey, c.apiSecret)
	req.Header.Set("Accept", "application/json")

	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		observe(path, "error", started)
		log.Error().Err(err).Str("endpoint", path).Msg("authorization engine unreachable")

		return nil, errors.Wrapf(ErrUpstream, "%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		observe(path, "error", started)

		return nil, errors.Wrapf(ErrUpstream, "read %s response: %v", path, err)
	}

	observe(path, strconv.Itoa(resp.StatusCode), started)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Error().
			Str("endpoint", path).
			Int("status", resp.StatusCode).
			Msg("authorization engine returned an error status")

		return nil, errors.Wrapf(ErrUpstream, "%s %s: status %d", method, path, resp.StatusCode)
	}

	return raw, nil
}

// call posts in and decodes the answer into out.
func (c *Client) call(ctx context.Context, path string, in, out any) error {
	raw, err := c.do(ctx, http.MethodPost, path, in)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		log.Error().Err(err).Str("endpoint", path).Msg("undecodable authorization engine response")

		return errors.Wrapf(ErrUpstream, "decode %s response: %v", path, err)
	}

	return nil
}

// callAction posts in and converts the action of the answer into a Response.
func (c *Client) callAction(ctx context.Context, path string, in any) (*Response, error) {
	var res actionResponse
	if err := c.call(ctx, path, in, &res); err != nil {
		return nil, err
	}

	log.Debug().Str("endpoint", path).Str("action", string(res.Action)).Msg("authorization engine answered")

	return newResponse(res.Action, res.ResponseContent)
}

func (c *Client) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}

	return c.Now()
}

// Ping checks that the engine answers the service configuration request.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil {
		return ErrClientNotInitialized
	}

	if _, err := c.do(ctx, http.MethodGet, pathServiceConfiguration, nil); err != nil {
		return err
	}

	log.Info().Str("url", c.baseURL).Msg("authorization engine connection test successful")

	return nil
}
