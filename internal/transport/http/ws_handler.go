package http

import (
	stdhttp "net/http"

	"github.com/coder/websocket"
	"github.com/rs/zerolog"
)

// WSHandler upgrades HTTP connections and runs a chat session over binary
// websocket messages.
type WSHandler struct {
	conns ConnHandler
	log   *zerolog.Logger
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(conns ConnHandler, logger *zerolog.Logger) stdhttp.Handler {
	return &WSHandler{conns: conns, log: logger}
}

func (h *WSHandler) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	ctx := r.Context()

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.CloseNow()

	netConn := websocket.NetConn(ctx, conn, websocket.MessageBinary)
	if err := h.conns.ServeConn(ctx, netConn); err != nil {
		h.log.Debug().Err(err).Str("remote", r.RemoteAddr).Msg("ws session ended")
	}
}
