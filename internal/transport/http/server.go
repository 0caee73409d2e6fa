// Package http exposes the ops surface: health, a state snapshot, and a
// websocket carrying the same byte stream as the telnet listener.
package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	stdhttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/telnet-chat/internal/core"
	"github.com/vovakirdan/telnet-chat/internal/proto"
)

const readHeaderTimeout = 5 * time.Second

// ConnHandler runs one byte-stream connection until it ends.
type ConnHandler interface {
	ServeConn(ctx context.Context, conn net.Conn) error
}

// Server is the ops HTTP server.
type Server struct {
	srv *stdhttp.Server
	hub *core.Hub
	dir *core.Directory
	log *zerolog.Logger
}

// NewServer builds the gin engine and the HTTP server around it.
func NewServer(addr string, hub *core.Hub, dir *core.Directory, conns ConnHandler, logger *zerolog.Logger) *Server {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	gin.SetMode(gin.ReleaseMode)

	s := &Server{hub: hub, dir: dir, log: logger}

	router := gin.New()
	router.Use(gin.CustomRecovery(s.recoverPanic), LoggerMiddleware(logger))
	router.GET("/health", s.health)
	router.GET("/state", s.state)
	router.GET("/ws", gin.WrapH(NewWSHandler(conns, logger)))

	s.srv = &stdhttp.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return s
}

func (s *Server) recoverPanic(c *gin.Context, recovered any) {
	s.log.Error().
		Str("panic", fmt.Sprint(recovered)).
		Str("path", c.Request.URL.Path).
		Msg("http handler panicked")
	c.AbortWithStatusJSON(stdhttp.StatusInternalServerError, proto.Error{
		Code: proto.ErrCodeInternal,
		Msg:  "internal server error",
	})
}

// Handler returns the routed handler.
func (s *Server) Handler() stdhttp.Handler {
	return s.srv.Handler
}

// Run serves until ctx is cancelled, then shuts down within shutdownTimeout.
// Websocket sessions run under ctx and end with it.
func (s *Server) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	s.srv.BaseContext = func(net.Listener) context.Context { return ctx }

	serverErr := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.srv.Addr).Msg("ops http listener started")
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			serverErr <- fmt.Errorf("ops http: %w", err)
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		s.log.Info().Msg("shutting down ops http server")
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("ops http shutdown: %w", err)
		}
		return <-serverErr
	}
}

func (s *Server) health(c *gin.Context) {
	c.String(stdhttp.StatusOK, proto.StatusOK)
}

func (s *Server) state(c *gin.Context) {
	var snap core.Snapshot
	err := s.hub.Do(c.Request.Context(), func() {
		snap = s.dir.Snapshot()
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("state snapshot unavailable")
		c.JSON(stdhttp.StatusServiceUnavailable, proto.Error{Code: proto.ErrCodeUnavailable, Msg: err.Error()})
		return
	}
	c.JSON(stdhttp.StatusOK, stateFromSnapshot(snap))
}
