package engine

import (
	"context"
	"encoding/json"
	"slices"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type parametersRequest struct {
	Parameters string `json:"parameters"`
}

type issueRequest struct {
	Ticket   string `json:"ticket"`
	Subject  string `json:"subject"`
	AuthTime int64  `json:"authTime,omitempty"`
	ACR      string `json:"acr,omitempty"`
	Claims   string `json:"claims,omitempty"`
}

type failRequest struct {
	Ticket string `json:"ticket"`
	Reason Reason `json:"reason"`
}

// Authorization forwards the authorization request parameters.
func (c *Client) Authorization(ctx context.Context, parameters string) (*Authorization, error) {
	var res Authorization
	if err := c.call(ctx, pathAuthorization, parametersRequest{Parameters: parameters}, &res); err != nil {
		return nil, err
	}

	if res.Action == "" {
		return nil, errors.Wrap(ErrUpstream, "authorization response without action")
	}

	log.Debug().
		Str("action", string(res.Action)).
		Int64("client_id", res.Client.ClientID).
		Msg("authorization request analysed")

	return &res, nil
}

// AuthorizationError renders the response content of auth as is.
func (c *Client) AuthorizationError(_ context.Context, auth *Authorization) (*Response, error) {
	return newResponse(auth.Action, auth.ResponseContent)
}

// NoInteraction issues without showing a page, provided the session already
// holds a user satisfying the request.
func (c *Client) NoInteraction(ctx context.Context, auth *Authorization, cb Callbacks) (*Response, error) {
	if !cb.isUserAuthenticated() {
		return c.fail(ctx, auth.Ticket, ReasonNotLoggedIn)
	}

	authTime := cb.userAuthenticatedAt()
	if auth.MaxAge > 0 && authTime+auth.MaxAge < c.now().Unix() {
		return c.fail(ctx, auth.Ticket, ReasonExceedsMaxAge)
	}

	subject := cb.userSubject()
	if auth.Subject != "" && auth.Subject != subject {
		return c.fail(ctx, auth.Ticket, ReasonDifferentSubject)
	}

	return c.issue(ctx, auth.Ticket, subject, authTime, cb.acr(), collectClaims(auth.ClaimNames, auth.ClaimLocales, cb))
}

// Decide issues or refuses according to the end-user's decision.
func (c *Client) Decide(ctx context.Context, params PendingParams, d Decision, cb Callbacks) (*Response, error) {
	if !d.Authorized {
		return c.fail(ctx, params.Ticket, ReasonDenied)
	}

	if d.Subject == "" {
		return c.fail(ctx, params.Ticket, ReasonNotLoggedIn)
	}

	return c.issue(ctx, params.Ticket, d.Subject, d.AuthTime, d.acr(), collectClaims(params.ClaimNames, params.ClaimLocales, cb))
}

// acr is the ACR to report, dropped when the client requested others.
func (d Decision) acr() string {
	if len(d.ACRs) > 0 && !slices.Contains(d.ACRs, d.ACR) {
		log.Warn().Str("acr", d.ACR).Strs("requested", d.ACRs).Msg("acr was not requested, not reporting it")

		return ""
	}

	return d.ACR
}

func (c *Client) issue(
	ctx context.Context, ticket, subject string, authTime int64, acr string, claims map[string]any,
) (*Response, error) {
	req := issueRequest{
		Ticket:   ticket,
		Subject:  subject,
		AuthTime: authTime,
		ACR:      acr,
	}

	if len(claims) > 0 {
		b, err := json.Marshal(claims)
		if err != nil {
			return nil, errors.Wrap(err, "encode claims")
		}

		req.Claims = string(b)
	}

	log.Info().Str("subject", subject).Int("claims", len(claims)).Msg("issuing authorization")

	return c.callAction(ctx, pathAuthorizationIssue, req)
}

func (c *Client) fail(ctx context.Context, ticket string, reason Reason) (*Response, error) {
	log.Info().Str("reason", string(reason)).Msg("refusing authorization")

	return c.callAction(ctx, pathAuthorizationFail, failRequest{Ticket: ticket, Reason: reason})
}
