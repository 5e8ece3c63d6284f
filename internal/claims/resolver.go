package claims

import (
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/identity"
)

// IntentIDClaim is the Open Banking intent id extension claim.
const IntentIDClaim = "openbanking_intent_id"

// Resolver produces claim values for the engine's ID token callback.
type Resolver struct{}

// Resolve returns the value of claimName for user, or nil.
//
// IntentIDClaim is answered with the "value" of its descriptor in spec; every
// other name is delegated to the user. languageTag is forwarded untouched.
func (Resolver) Resolve(claimName, languageTag string, user *identity.User, spec Spec) any {
	if claimName == IntentIDClaim {
		d, ok := spec.Descriptor(claimName)
		if !ok {
			return nil
		}

		return d.Value
	}

	return user.GetClaim(claimName, languageTag)
}
