// Package daemon wires the configured components into a running server.
package daemon

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/authz"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/config"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/engine"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/logger"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/web"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/web/handler"
	"github.com/GoOIDC-Frontend/GoOIDC-Frontend/internal/web/session"
)

const pingTimeout = 10 * time.Second

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start serves until SIGINT or SIGTERM.
func (d *Daemon) Start() error {
	addr := ":" + strconv.Itoa(d.cfg.Webserver.Port)

	go func() {
		if err := d.webService.Start(addr); err != nil {
			log.Error().Err(err).Msg("web service stopped")
		}
	}()

	log.Info().Str("addr", addr).Msg("web service started")

	d.webService.WaitShutdown()

	return nil
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	if err := logger.Init(cfg.Log); err != nil {
		return nil, errors.Wrap(err, "failed to init logger")
	}

	dir, err := newDirectory(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create user directory")
	}

	api, err := engine.New(cfg.Engine)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create engine client")
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	// an unreachable engine is reported but does not prevent the start
	if err := api.Ping(ctx); err != nil {
		log.Warn().Err(err).Str("base_url", cfg.Engine.BaseURL).Msg("engine is not reachable")
	}

	storage, err := newSessionStorage(cfg.Webserver.Session)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create session storage")
	}

	sessions := session.NewStore(storage, session.Config{
		CookieName:   cfg.Webserver.Session.CookieName,
		CookieDomain: cfg.Webserver.Domain,
		CookieSecure: cfg.Webserver.CookieSecure && !cfg.DevMode,
		Expiration:   cfg.Webserver.Session.ExpiryTime,
	})

	webService, err := web.New(cfg, &handler.Deps{
		Engine:       api,
		Directory:    dir,
		Orchestrator: authz.New(api, dir),
		Sessions:     sessions,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create web service")
	}

	return &Daemon{
		cfg:        cfg,
		webService: webService,
	}, nil
}
