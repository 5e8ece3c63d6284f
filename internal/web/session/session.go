// Package session keeps the per-browser state of the authorization flow.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog/log"
)

const (
	defaultCookieName = "session_id"
	defaultExpiration = 24 * time.Hour
)

// Config holds the session cookie settings.
type Config struct {
	CookieName   string
	CookieDomain string
	CookieSecure bool
	Expiration   time.Duration
}

// Store loads and saves browser sessions.
type Store struct {
	store      *fibersession.Store
	locker     *Locker
	cookieName string
}

// NewStore creates a session store on top of storage. A nil storage keeps
// the sessions in memory.
func NewStore(storage fiber.Storage, cfg Config) *Store {
	if cfg.CookieName == "" {
		cfg.CookieName = defaultCookieName
	}

	if cfg.Expiration <= 0 {
		cfg.Expiration = defaultExpiration
	}

	return &Store{
		store: fibersession.New(fibersession.Config{
			Storage:        storage,
			Expiration:     cfg.Expiration,
			KeyLookup:      "cookie:" + cfg.CookieName,
			CookieDomain:   cfg.CookieDomain,
			CookiePath:     "/",
			CookieSecure:   cfg.CookieSecure,
			CookieHTTPOnly: true,
			CookieSameSite: fiber.CookieSameSiteLaxMode,
			KeyGenerator:   keyGenerator,
		}),
		locker:     NewLocker(),
		cookieName: cfg.CookieName,
	}
}

// Load returns the session of the request and its typed state. Changes are
// persisted by calling Save on the returned session.
func (s *Store) Load(c *fiber.Ctx) (*fibersession.Session, *State, error) {
	sess, err := s.store.Get(c)
	if err != nil {
		return nil, nil, err //nolint:wrapcheck
	}

	return sess, NewState(sess), nil
}

// Acquire serializes requests carrying the same session cookie until the
// returned function is called. Requests without a cookie are not serialized.
func (s *Store) Acquire(c *fiber.Ctx) func() {
	id := c.Cookies(s.cookieName)
	if id == "" {
		return func() {}
	}

	return s.locker.Lock(id)
}

// GenerateSessionID generates a new secure random session ID.
func GenerateSessionID() (string, error) {
	// 32 bytes = 256 bits
	b := make([]byte, 32) //nolint:mnd
	if _, err := rand.Read(b); err != nil {
		return "", err //nolint:wrapcheck
	}

	return hex.EncodeToString(b), nil
}

func keyGenerator() string {
	id, err := GenerateSessionID()
	if err != nil {
		log.Error().Err(err).Msg("random session id failed, falling back to uuid")

		return utils.UUIDv4()
	}

	return id
}
