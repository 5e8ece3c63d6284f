// Package engine talks to the external OAuth 2.0 / OpenID Connect
// authorization engine.
//
// The engine owns every protocol decision: it validates requests, issues and
// signs tokens and builds the responses sent to user agents and clients. This
// package only forwards requests to its HTTP API, answers the questions the
// engine asks about the end-user through Callbacks, and turns the engine's
// action plus response content into a Response to write back.
package engine
