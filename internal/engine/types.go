package engine

// Action is the engine's instruction on what to do next.
type Action string

// Actions returned by the engine endpoints.
const (
	ActionInternalServerError Action = "INTERNAL_SERVER_ERROR"
	ActionBadRequest          Action = "BAD_REQUEST"
	ActionLocation            Action = "LOCATION"
	ActionForm                Action = "FORM"
	ActionNoInteraction       Action = "NO_INTERACTION"
	ActionInteraction         Action = "INTERACTION"
	ActionOK                  Action = "OK"
	ActionInvalidClient       Action = "INVALID_CLIENT"
	ActionPassword            Action = "PASSWORD"
	ActionUnauthorized        Action = "UNAUTHORIZED"
	ActionForbidden           Action = "FORBIDDEN"
)

// Reason explains why an authorization or token request was refused.
type Reason string

// Failure reasons understood by the engine.
const (
	ReasonNotLoggedIn                     Reason = "NOT_LOGGED_IN"
	ReasonDenied                          Reason = "DENIED"
	ReasonExceedsMaxAge                   Reason = "EXCEEDS_MAX_AGE"
	ReasonDifferentSubject                Reason = "DIFFERENT_SUBJECT"
	ReasonInvalidResourceOwnerCredentials Reason = "INVALID_RESOURCE_OWNER_CREDENTIALS"
)

// PromptLogin is the "prompt" value forcing re-authentication.
const PromptLogin = "login"

// ClientInfo describes the client application behind a request.
type ClientInfo struct {
	ClientID      int64  `json:"clientId"`
	ClientIDAlias string `json:"clientIdAlias,omitempty"`
	ClientName    string `json:"clientName,omitempty"`
	Description   string `json:"description,omitempty"`
	LogoURI       string `json:"logoUri,omitempty"`
	PolicyURI     string `json:"policyUri,omitempty"`
	TosURI        string `json:"tosUri,omitempty"`
}

// DisplayName returns the best human readable name of the client.
func (c *ClientInfo) DisplayName() string {
	switch {
	case c == nil:
		return ""
	case c.ClientName != "":
		return c.ClientName
	case c.ClientIDAlias != "":
		return c.ClientIDAlias
	}

	return ""
}

// Scope is a scope requested by the client.
type Scope struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Authorization is the engine's analysis of an authorization request.
type Authorization struct {
	Action          Action     `json:"action"`
	ResponseContent string     `json:"responseContent,omitempty"`
	Ticket          string     `json:"ticket,omitempty"`
	Client          ClientInfo `json:"client"`
	Scopes          []Scope    `json:"scopes,omitempty"`
	MaxAge          int64      `json:"maxAge,omitempty"`
	Prompts         []string   `json:"prompts,omitempty"`
	ClaimNames      []string   `json:"claims,omitempty"`
	ClaimLocales    []string   `json:"claimsLocales,omitempty"`
	IDTokenClaims   string     `json:"idTokenClaims,omitempty"`
	ACRs            []string   `json:"acrs,omitempty"`
	Subject         string     `json:"subject,omitempty"`
	LoginHint       string     `json:"loginHint,omitempty"`
}

// PendingParams snapshots the request until the end-user decides.
func (a *Authorization) PendingParams() PendingParams {
	scopes := make([]string, 0, len(a.Scopes))
	for _, s := range a.Scopes {
		scopes = append(scopes, s.Name)
	}

	return PendingParams{
		Ticket:        a.Ticket,
		Scopes:        scopes,
		MaxAge:        a.MaxAge,
		Prompts:       a.Prompts,
		ClaimNames:    a.ClaimNames,
		ClaimLocales:  a.ClaimLocales,
		IDTokenClaims: a.IDTokenClaims,
		ACRs:          a.ACRs,
		ClientID:      a.Client.ClientID,
		Subject:       a.Subject,
	}
}

// PendingParams is the part of an authorization request needed to finish it
// after the interaction page was shown.
type PendingParams struct {
	Ticket        string   `json:"ticket"`
	Scopes        []string `json:"scopes,omitempty"`
	MaxAge        int64    `json:"maxAge,omitempty"`
	Prompts       []string `json:"prompts,omitempty"`
	ClaimNames    []string `json:"claimNames,omitempty"`
	ClaimLocales  []string `json:"claimLocales,omitempty"`
	IDTokenClaims string   `json:"idTokenClaims,omitempty"`
	ACRs          []string `json:"acrs,omitempty"`
	ClientID      int64    `json:"clientId,omitempty"`
	Subject       string   `json:"subject,omitempty"`
}

// Decision is the end-user's answer to an interaction page.
type Decision struct {
	Authorized bool
	// Subject of the authenticated user, empty when nobody logged in.
	Subject string
	// AuthTime in seconds since the epoch, 0 when unknown.
	AuthTime int64
	ACR      string
	// ACRs requested by the client. ACR is only reported when it is one of
	// them or none were requested.
	ACRs []string
}
