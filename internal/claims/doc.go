// Package claims resolves the values of claims requested for an ID token.
//
// A claims request is the "id_token" section of the OpenID Connect
// "claims" request parameter:
//
//	{
//	  "openbanking_intent_id": {"value": "urn:bank:intent:58923", "essential": true},
//	  "email": {"essential": true}
//	}
//
// Standard claims are answered from the authenticated identity.User. The
// vendor extension "openbanking_intent_id" is answered from the request
// itself: the "value" the relying party put into its descriptor is echoed
// back. Nothing in this package returns an error; anything malformed or
// missing resolves to nil.
package claims
