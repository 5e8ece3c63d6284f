package engine

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
)

type clientRequest struct {
	Parameters   string `json:"parameters"`
	ClientID     string `json:"clientId,omitempty"`
	ClientSecret string `json:"clientSecret,omitempty"`
}

type tokenResponse struct {
	actionResponse

	Ticket   string `json:"ticket"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenIssueRequest struct {
	Ticket  string `json:"ticket"`
	Subject string `json:"subject"`
}

// Token forwards a token request. For the resource owner password grant the
// credentials are checked with authenticate before the engine issues.
func (c *Client) Token(
	ctx context.Context, parameters, clientID, clientSecret string, authenticate PasswordAuthenticator,
) (*Response, error) {
	var res tokenResponse

	req := clientRequest{Parameters: parameters, ClientID: clientID, ClientSecret: clientSecret}
	if err := c.call(ctx, pathToken, req, &res); err != nil {
		return nil, err
	}

	if res.Action != ActionPassword {
		return newResponse(res.Action, res.ResponseContent)
	}

	var subject string

	if authenticate != nil {
		var err error

		subject, err = authenticate(ctx, res.Username, res.Password)
		if err != nil {
			return nil, err
		}
	}

	if subject == "" {
		log.Info().Msg("resource owner credentials rejected")

		return c.callAction(ctx, pathTokenFail, failRequest{
			Ticket: res.Ticket,
			Reason: ReasonInvalidResourceOwnerCredentials,
		})
	}

	return c.callAction(ctx, pathTokenIssue, tokenIssueRequest{Ticket: res.Ticket, Subject: subject})
}

// Introspection forwards an RFC 7662 introspection request.
func (c *Client) Introspection(ctx context.Context, parameters string) (*Response, error) {
	return c.callAction(ctx, pathIntrospection, parametersRequest{Parameters: parameters})
}

// Revocation forwards an RFC 7009 revocation request.
func (c *Client) Revocation(ctx context.Context, parameters, clientID, clientSecret string) (*Response, error) {
	return c.callAction(ctx, pathRevocation, clientRequest{
		Parameters:   parameters,
		ClientID:     clientID,
		ClientSecret: clientSecret,
	})
}

// JWKS returns the JWK Set document of the service.
func (c *Client) JWKS(ctx context.Context) (*Response, error) {
	raw, err := c.do(ctx, http.MethodGet, pathJWKS, nil)
	if err != nil {
		return nil, err
	}

	return rawJSON(raw), nil
}

// Configuration returns the OpenID Provider metadata of the service.
func (c *Client) Configuration(ctx context.Context) (*Response, error) {
	raw, err := c.do(ctx, http.MethodGet, pathServiceConfiguration, nil)
	if err != nil {
		return nil, err
	}

	return rawJSON(raw), nil
}
