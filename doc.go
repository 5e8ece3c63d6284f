// Package main starts GoOIDC-Frontend, the browser and API facing part of an
// OpenID Connect provider. Authorization, token, introspection and
// revocation requests are forwarded to an external authorization engine;
// the front-end renders the consent page, authenticates end-users against
// the configured directory and keeps the per-browser session.
package main
