// Package proto holds the JSON shapes served by the ops HTTP surface.
package proto

const (
	// StatusOK is the body of a healthy /health response.
	StatusOK = "ok"

	ErrCodeUnavailable = "unavailable"
	ErrCodeInternal    = "internal"
)

// State is a point-in-time view of the chat directory.
type State struct {
	Channels []Channel `json:"channels"`
	Sessions []Session `json:"sessions"`
}

// Channel describes one channel.
type Channel struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Visibility string   `json:"visibility"`
	Members    []string `json:"members"`
	Messages   int      `json:"messages"`
}

// Session describes one connected client. Name is empty until login.
type Session struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Screen string `json:"screen"`
}

// Error describes a failed request.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
