package engine

import (
	"strings"
)

// Callbacks answer the engine's questions about the current end-user.
// Unset fields answer with zero values.
type Callbacks struct {
	IsUserAuthenticated func() bool
	UserAuthenticatedAt func() int64
	UserSubject         func() string
	UserClaim           func(claimName, languageTag string) any
	ACR                 func() string
}

func (cb Callbacks) isUserAuthenticated() bool {
	if cb.IsUserAuthenticated == nil {
		return false
	}

	return cb.IsUserAuthenticated()
}

func (cb Callbacks) userAuthenticatedAt() int64 {
	if cb.UserAuthenticatedAt == nil {
		return 0
	}

	return cb.UserAuthenticatedAt()
}

func (cb Callbacks) userSubject() string {
	if cb.UserSubject == nil {
		return ""
	}

	return cb.UserSubject()
}

func (cb Callbacks) userClaim(claimName, languageTag string) any {
	if cb.UserClaim == nil {
		return nil
	}

	return cb.UserClaim(claimName, languageTag)
}

func (cb Callbacks) acr() string {
	if cb.ACR == nil {
		return ""
	}

	return cb.ACR()
}

// collectClaims asks for every requested claim. A name may carry a language
// tag ("name#ja"); untagged names fall back to the requested locales in order.
func collectClaims(claimNames, claimLocales []string, cb Callbacks) map[string]any {
	collected := make(map[string]any, len(claimNames))

	for _, requested := range claimNames {
		if requested == "" {
			continue
		}

		name, tag, _ := strings.Cut(requested, "#")

		value := cb.userClaim(name, tag)
		if value == nil && tag == "" {
			for _, locale := range claimLocales {
				if value = cb.userClaim(name, locale); value != nil {
					break
				}
			}
		}

		if value != nil {
			collected[requested] = value
		}
	}

	return collected
}
