// Package authz drives an authorization request through the external engine:
// it forwards the request, keeps what the interaction page needs in the
// session and finishes the request once the end-user decided.
package authz

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/authn"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/claims"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/directory"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/engine"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/identity"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/web/session"
)

// Orchestrator runs the authorization and decision steps.
type Orchestrator struct {
	Engine    engine.API
	Directory directory.UserDirectory
	Freshness authn.Freshness
	Claims    claims.Resolver
	Now       func() time.Time
}

// New creates an orchestrator using the wall clock.
func New(api engine.API, dir directory.UserDirectory) *Orchestrator {
	return &Orchestrator{
		Engine:    api,
		Directory: dir,
		Freshness: authn.Freshness{Now: time.Now},
		Now:       time.Now,
	}
}

// Interaction is what the authorization page shows.
type Interaction struct {
	Info *engine.Authorization
	// User is the still valid login of the session, nil when anonymous.
	User *identity.User
}

// Result of Authorize: either a page to render or a response to send.
type Result struct {
	Interaction *Interaction
	Response    *engine.Response
}

// DecisionForm is the submitted authorization page.
type DecisionForm struct {
	// Authorized is true when the end-user granted the request.
	Authorized bool
	LoginID    string
	Password   string
}

// Authorize forwards the authorization request parameters to the engine and
// acts on its answer.
func (o *Orchestrator) Authorize(ctx context.Context, state *session.State, parameters string) (*Result, error) {
	auth, err := o.Engine.Authorization(ctx, parameters)
	if err != nil {
		return nil, err
	}

	countOutcome("authorization", string(auth.Action))

	switch auth.Action {
	case engine.ActionInteraction:
		return o.interaction(state, auth)
	case engine.ActionNoInteraction:
		resp, err := o.Engine.NoInteraction(ctx, auth, o.sessionCallbacks(state, claims.Parse(auth.IDTokenClaims), ""))
		if err != nil {
			return nil, err
		}

		return &Result{Response: resp}, nil
	default:
		resp, err := o.Engine.AuthorizationError(ctx, auth)
		if err != nil {
			return nil, err
		}

		return &Result{Response: resp}, nil
	}
}

func (o *Orchestrator) interaction(state *session.State, auth *engine.Authorization) (*Result, error) {
	if err := state.SetParams(auth.PendingParams()); err != nil {
		return nil, err
	}

	if err := state.SetACRs(auth.ACRs); err != nil {
		return nil, err
	}

	if err := state.SetClient(auth.Client); err != nil {
		return nil, err
	}

	verdict := o.Freshness.Evaluate(state, auth.Prompts, auth.MaxAge)

	var user *identity.User
	if verdict.KeepAuthentication {
		user, _ = state.User()
	}

	log.Debug().
		Int64("client_id", auth.Client.ClientID).
		Str("freshness", string(verdict.Reason)).
		Msg("showing authorization page")

	return &Result{Interaction: &Interaction{Info: auth, User: user}}, nil
}

// Decide finishes the pending request of the session with the end-user's
// decision. Concurrent calls for the same session must be serialized by the
// caller.
func (o *Orchestrator) Decide(ctx context.Context, state *session.State, form DecisionForm) (*engine.Response, error) {
	if err := o.authenticateIfNecessary(ctx, state, form); err != nil {
		return nil, err
	}

	params, ok := state.TakeParams()
	if !ok {
		countOutcome("decision", "malformed")

		return nil, missingSessionKey(session.KeyParams)
	}

	acrs, _ := state.TakeACRs()

	var acr string
	if len(acrs) > 0 {
		acr = acrs[0]
	}

	cb := o.sessionCallbacks(state, claims.Parse(params.IDTokenClaims), acr)

	decision := engine.Decision{
		Authorized: form.Authorized,
		Subject:    cb.UserSubject(),
		AuthTime:   cb.UserAuthenticatedAt(),
		ACR:        acr,
		ACRs:       acrs,
	}

	if decision.Authorized {
		countOutcome("decision", "authorized")
	} else {
		countOutcome("decision", "denied")
	}

	log.Info().
		Bool("authorized", decision.Authorized).
		Str("subject", decision.Subject).
		Msg("authorization decision")

	return o.Engine.Decide(ctx, params, decision, cb)
}

// authenticateIfNecessary logs the user of the form in unless the session
// already holds one. Unknown credentials leave the session anonymous.
func (o *Orchestrator) authenticateIfNecessary(ctx context.Context, state *session.State, form DecisionForm) error {
	if _, ok := state.User(); ok {
		return nil
	}

	user, err := o.Directory.FindByCredentials(ctx, form.LoginID, form.Password)

	switch {
	case errors.Is(err, directory.ErrUserNotFound):
		log.Info().Str("login_id", form.LoginID).Msg("login failed")

		return nil
	case err != nil:
		return err
	}

	if err := state.SetUser(user, o.now()); err != nil {
		return err
	}

	log.Info().Str("subject", user.Subject).Msg("user authenticated")

	return nil
}

// sessionCallbacks answer the engine from the session's user. They never
// change the session.
func (o *Orchestrator) sessionCallbacks(state *session.State, spec claims.Spec, acr string) engine.Callbacks {
	user, hasUser := state.User()
	authTime, hasAuthTime := state.AuthTime()

	return engine.Callbacks{
		IsUserAuthenticated: func() bool {
			return hasUser
		},
		UserAuthenticatedAt: func() int64 {
			if !hasUser || !hasAuthTime {
				return 0
			}

			return authTime.Round(time.Second).Unix()
		},
		UserSubject: func() string {
			if !hasUser {
				return ""
			}

			return user.Subject
		},
		UserClaim: func(claimName, languageTag string) any {
			return o.Claims.Resolve(claimName, languageTag, user, spec)
		},
		ACR: func() string {
			return acr
		},
	}
}

func (o *Orchestrator) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}

	return o.Now()
}
