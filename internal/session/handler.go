package session

import (
	"context"
	"errors"
	"io"
	"net"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/telnet-chat/internal/core"
)

const readBufferSize = 4096

// Handler bridges byte-stream connections to hub-owned sessions.
type Handler struct {
	hub  *core.Hub
	dir  *core.Directory
	opts Options
	log  *zerolog.Logger
}

// NewHandler builds a connection handler.
func NewHandler(hub *core.Hub, dir *core.Directory, opts Options, logger *zerolog.Logger) *Handler {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Handler{hub: hub, dir: dir, opts: opts, log: logger}
}

// ServeConn runs a session for conn until the peer disconnects, a write
// fails, or ctx is cancelled. Each successful read is handed to the session
// as one chunk.
func (h *Handler) ServeConn(ctx context.Context, conn net.Conn) error {
	var sess *Session
	err := h.hub.Do(ctx, func() {
		sess = New(conn, h.dir, h.opts, h.log)
		sess.Start()
		if ctx.Err() != nil {
			sess.Close()
		}
	})
	if err != nil {
		// The create task may still be queued or may have finished after
		// ctx was cancelled. Tasks run in order, so this close follows it.
		h.hub.Post(func() {
			if sess != nil {
				sess.Close()
			}
		})
		conn.Close()
		return err
	}

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	err = h.readLoop(conn, sess)

	// The hub may already be gone during shutdown; the session dies with it.
	h.hub.Post(sess.Close)

	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
		return nil
	}
	return err
}

func (h *Handler) readLoop(conn net.Conn, sess *Session) error {
	buf := make([]byte, readBufferSize)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			if !h.hub.Post(func() { sess.HandleInput(chunk) }) {
				return core.ErrHubStopped
			}
		}
		if err != nil {
			return err
		}
	}
}
