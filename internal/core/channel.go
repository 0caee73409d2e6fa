package core

import (
	"time"

	"github.com/vovakirdan/telnet-chat/internal/registry"
	"github.com/vovakirdan/telnet-chat/internal/utils"
)

// Visibility controls who may see a channel. Private channels are modelled
// but not enforced.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Channel is a named conversation with an append-only message log.
type Channel struct {
	id         string
	name       string
	visibility Visibility
	messages   []Message

	participants func() []Participant
	now          func() time.Time
	message      registry.Signal[Message]
}

// ID returns the channel id.
func (c *Channel) ID() string { return c.id }

// Name returns the channel name.
func (c *Channel) Name() string { return c.name }

// SetName is used by the registry on rename.
func (c *Channel) SetName(name string) { c.name = name }

// Visibility returns the channel visibility.
func (c *Channel) Visibility() Visibility { return c.visibility }

// Messages returns the message log in send order.
func (c *Channel) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Members returns every live participant currently viewing this channel.
// The set is derived on each call.
func (c *Channel) Members() []Participant {
	if c.participants == nil {
		return nil
	}
	var members []Participant
	for _, p := range c.participants() {
		if p.Screen().Channel() == c {
			members = append(members, p)
		}
	}
	return members
}

// AddMessage appends a message and notifies message observers before
// returning.
func (c *Channel) AddMessage(author Identity, body string) Message {
	msg := Message{
		ID:        utils.NewID(),
		Author:    author,
		Body:      body,
		Timestamp: c.now(),
	}
	c.messages = append(c.messages, msg)
	c.message.Emit(msg)
	return msg
}

// OnMessage subscribes to new messages.
func (c *Channel) OnMessage(fn func(Message)) func() {
	return c.message.Subscribe(fn)
}
