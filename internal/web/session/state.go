package session

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/engine"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/identity"
)

// Keys of the values kept in a browser session.
const (
	KeyUser     = "user"
	KeyAuthTime = "authTime"
	KeyParams   = "params"
	KeyACRs     = "acrs"
	KeyClient   = "client"
)

// Backend is the key/value view of a browser session. *session.Session of
// fiber satisfies it.
type Backend interface {
	Get(key string) interface{}
	Set(key string, val interface{})
	Delete(key string)
}

// State is the typed content of one browser session. Values are kept as JSON
// strings so every session storage can persist them.
type State struct {
	backend Backend
}

// NewState wraps backend.
func NewState(backend Backend) *State {
	return &State{backend: backend}
}

// Has reports whether key holds a value.
func (s *State) Has(key string) bool {
	return s.backend.Get(key) != nil
}

// Get decodes the value of key into v. It returns false when the key is
// missing or its value can not be decoded.
func (s *State) Get(key string, v any) bool {
	raw := s.backend.Get(key)
	if raw == nil {
		return false
	}

	var data []byte

	switch t := raw.(type) {
	case string:
		data = []byte(t)
	case []byte:
		data = t
	default:
		log.Warn().Str("key", key).Msgf("unexpected session value type %T", raw)

		return false
	}

	if err := json.Unmarshal(data, v); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("undecodable session value")

		return false
	}

	return true
}

// Set stores v under key, replacing any previous value.
func (s *State) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err //nolint:wrapcheck
	}

	s.backend.Set(key, string(data))

	return nil
}

// Take is Get followed by Delete. The key is removed even when its value can
// not be decoded.
func (s *State) Take(key string, v any) bool {
	found := s.Get(key, v)
	s.backend.Delete(key)

	return found
}

// Delete removes key.
func (s *State) Delete(key string) {
	s.backend.Delete(key)
}

// User returns the authenticated user. A user without a decodable
// authentication time is treated as absent.
func (s *State) User() (*identity.User, bool) {
	u, _, ok := s.login()

	return u, ok
}

// AuthTime returns when the user of the session authenticated. It is only
// reported together with a user.
func (s *State) AuthTime() (time.Time, bool) {
	_, at, ok := s.login()

	return at, ok
}

// login decodes user and authTime together. Either one missing or broken
// makes both absent.
func (s *State) login() (*identity.User, time.Time, bool) {
	var u identity.User
	if !s.Get(KeyUser, &u) {
		return nil, time.Time{}, false
	}

	var millis int64
	if !s.Get(KeyAuthTime, &millis) || millis <= 0 {
		return nil, time.Time{}, false
	}

	return &u, time.UnixMilli(millis), true
}

// SetUser marks u as authenticated at at.
func (s *State) SetUser(u *identity.User, at time.Time) error {
	if err := s.Set(KeyUser, u); err != nil {
		return err
	}

	if err := s.Set(KeyAuthTime, at.UnixMilli()); err != nil {
		s.backend.Delete(KeyUser)

		return err
	}

	return nil
}

// ClearUser forgets the authenticated user.
func (s *State) ClearUser() {
	s.backend.Delete(KeyUser)
	s.backend.Delete(KeyAuthTime)
}

// SetParams stores the pending authorization request.
func (s *State) SetParams(p engine.PendingParams) error {
	return s.Set(KeyParams, p)
}

// PeekParams returns the pending authorization request without consuming it.
func (s *State) PeekParams() (engine.PendingParams, bool) {
	var p engine.PendingParams
	if !s.Get(KeyParams, &p) {
		return engine.PendingParams{}, false
	}

	return p, true
}

// TakeParams consumes the pending authorization request.
func (s *State) TakeParams() (engine.PendingParams, bool) {
	var p engine.PendingParams
	if !s.Take(KeyParams, &p) {
		return engine.PendingParams{}, false
	}

	return p, true
}

// HasParams reports whether an authorization request is pending.
func (s *State) HasParams() bool {
	return s.Has(KeyParams)
}

// SetACRs stores the ACRs requested by the pending request.
func (s *State) SetACRs(acrs []string) error {
	return s.Set(KeyACRs, acrs)
}

// TakeACRs consumes the requested ACRs.
func (s *State) TakeACRs() ([]string, bool) {
	var acrs []string
	if !s.Take(KeyACRs, &acrs) {
		return nil, false
	}

	return acrs, true
}

// SetClient stores the client of the pending request.
func (s *State) SetClient(c engine.ClientInfo) error {
	return s.Set(KeyClient, c)
}

// Client returns the client of the pending request.
func (s *State) Client() (engine.ClientInfo, bool) {
	var c engine.ClientInfo
	if !s.Get(KeyClient, &c) {
		return engine.ClientInfo{}, false
	}

	return c, true
}
