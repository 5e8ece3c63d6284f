// Package authn decides whether an existing login may be reused for a new
// authorization request.
package authn

import (
	"slices"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/engine"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/identity"
)

// Session is the part of the session state the policy works on.
type Session interface {
	User() (*identity.User, bool)
	AuthTime() (time.Time, bool)
	ClearUser()
}

// Reason tells why a login was kept or dropped.
type Reason string

// Verdict reasons.
const (
	ReasonFresh          Reason = "fresh"
	ReasonAnonymous      Reason = "anonymous"
	ReasonPromptLogin    Reason = "prompt_login"
	ReasonMaxAgeExceeded Reason = "max_age_exceeded"
)

// Verdict is the outcome of Evaluate.
type Verdict struct {
	// KeepAuthentication is true when the session still holds its user.
	KeepAuthentication bool
	Reason             Reason
}

// Freshness drops logins the request does not accept any longer.
type Freshness struct {
	Now func() time.Time
}

// Evaluate clears the user of s when prompts contain "login" or when the
// login is older than maxAge seconds. A maxAge of zero or less puts no limit
// on the age.
func (f Freshness) Evaluate(s Session, prompts []string, maxAge int64) Verdict {
	user, ok := s.User()
	if !ok {
		return Verdict{Reason: ReasonAnonymous}
	}

	if slices.Contains(prompts, engine.PromptLogin) {
		s.ClearUser()
		log.Debug().Str("subject", user.Subject).Msg("login forced by prompt")

		return Verdict{Reason: ReasonPromptLogin}
	}

	if maxAge <= 0 {
		return Verdict{KeepAuthentication: true, Reason: ReasonFresh}
	}

	authTime, ok := s.AuthTime()
	if !ok {
		s.ClearUser()

		return Verdict{Reason: ReasonAnonymous}
	}

	authAge := int64(f.now().Sub(authTime).Round(time.Second) / time.Second)
	if authAge > maxAge {
		s.ClearUser()
		log.Debug().
			Str("subject", user.Subject).
			Int64("auth_age", authAge).
			Int64("max_age", maxAge).
			Msg("login too old")

		return Verdict{Reason: ReasonMaxAgeExceeded}
	}

	return Verdict{KeepAuthentication: true, Reason: ReasonFresh}
}

func (f Freshness) now() time.Time {
	if f.Now == nil {
		return time.Now()
	}

	return f.Now()
}
