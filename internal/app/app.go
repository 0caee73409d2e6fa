// Package app wires the hub, the session handler and the listeners.
package app

import (
	"context"
	"fmt"
	"net"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/telnet-chat/internal/config"
	"github.com/vovakirdan/telnet-chat/internal/core"
	"github.com/vovakirdan/telnet-chat/internal/session"
	transporthttp "github.com/vovakirdan/telnet-chat/internal/transport/http"
	"github.com/vovakirdan/telnet-chat/internal/transport/tcp"
)

// App wires together core and transport layers.
type App struct {
	cfg    *config.Config
	hub    *core.Hub
	telnet *tcp.Server
	ops    *transporthttp.Server
	log    *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg *config.Config, logger *zerolog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	hub := core.NewHub(logger)
	dir := core.NewDirectory()
	handler := session.NewHandler(hub, dir, session.Options{
		DefaultWidth:       cfg.DefaultWidth,
		DefaultHeight:      cfg.DefaultHeight,
		WriteTimeout:       cfg.WriteTimeout,
		MaxInputsPerMinute: cfg.MaxInputsPerMinute,
	}, logger)

	a := &App{
		cfg:    cfg,
		hub:    hub,
		telnet: tcp.NewServer(cfg.Addr, handler, logger),
		log:    logger,
	}
	if cfg.OpsAddr != "" {
		a.ops = transporthttp.NewServer(cfg.OpsAddr, hub, dir, handler, logger)
	}
	return a, nil
}

// TelnetAddr returns the bound telnet address once Run has started listening.
func (a *App) TelnetAddr() net.Addr {
	return a.telnet.Addr()
}

// Run binds the telnet listener, then serves until ctx is cancelled or a
// listener fails. Connections are closed before the hub stops.
func (a *App) Run(ctx context.Context) error {
	if err := a.telnet.Listen(); err != nil {
		return fmt.Errorf("start telnet listener: %w", err)
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	defer func() {
		stopHub()
		<-a.hub.Done()
		a.log.Info().Msg("hub stopped")
	}()
	go a.hub.Run(hubCtx)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.telnet.Serve(gctx)
	})
	if a.ops != nil {
		g.Go(func() error {
			return a.ops.Run(gctx, a.cfg.ShutdownTimeout)
		})
	}
	return g.Wait()
}
