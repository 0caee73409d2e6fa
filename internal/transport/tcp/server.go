// Package tcp serves the chat over raw TCP connections.
package tcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/rs/zerolog"
)

// ConnHandler runs one connection until it ends.
type ConnHandler interface {
	ServeConn(ctx context.Context, conn net.Conn) error
}

// Server accepts TCP connections and hands each one to a ConnHandler.
type Server struct {
	addr    string
	handler ConnHandler
	log     *zerolog.Logger

	mu sync.Mutex
	ln net.Listener
	wg sync.WaitGroup
}

// NewServer builds a server for addr. Call Listen, then Serve.
func NewServer(addr string, handler ConnHandler, logger *zerolog.Logger) *Server {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Server{addr: addr, handler: handler, log: logger}
}

// Listen binds the listening socket.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()
	s.log.Info().Str("addr", ln.Addr().String()).Msg("telnet listener started")
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Serve accepts connections until ctx is cancelled, then closes the listener
// and waits for every connection to finish.
func (s *Server) Serve(ctx context.Context) error {
	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()
	if ln == nil {
		if err := s.Listen(); err != nil {
			return err
		}
		ln = s.ln
	}

	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()
	defer s.wg.Wait()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serveConn(ctx, conn)
		}()
	}
}

func (s *Server) serveConn(ctx context.Context, conn net.Conn) {
	remote := conn.RemoteAddr().String()
	s.log.Debug().Str("remote", remote).Msg("connection accepted")
	if err := s.handler.ServeConn(ctx, conn); err != nil {
		s.log.Warn().Err(err).Str("remote", remote).Msg("connection ended with error")
		return
	}
	s.log.Debug().Str("remote", remote).Msg("connection closed")
}
