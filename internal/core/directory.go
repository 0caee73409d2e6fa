package core

import (
	"time"

	"github.com/vovakirdan/telnet-chat/internal/registry"
	"github.com/vovakirdan/telnet-chat/internal/utils"
)

// Directory is the shared state injected into every session: the registry of
// connected participants and the registry of channels.
type Directory struct {
	Sessions *registry.Registry[Participant]
	Channels *registry.Registry[*Channel]

	membership registry.Signal[struct{}]
	now        func() time.Time
}

// NewDirectory returns empty registries.
func NewDirectory() *Directory {
	return &Directory{
		Sessions: registry.New[Participant](),
		Channels: registry.New[*Channel](),
		now:      time.Now,
	}
}

// SetClock overrides the time source used for message timestamps.
func (d *Directory) SetClock(now func() time.Time) {
	d.now = now
}

// NewChannel builds a channel bound to this directory's session registry.
// It is not registered; see EnsureChannel.
func (d *Directory) NewChannel(name string, visibility Visibility) *Channel {
	return &Channel{
		id:           utils.NewID(),
		name:         name,
		visibility:   visibility,
		participants: d.Sessions.All,
		now:          func() time.Time { return d.now() },
	}
}

// EnsureChannel returns the channel called name, creating and registering a
// public one when it does not exist yet.
func (d *Directory) EnsureChannel(name string) (ch *Channel, created bool) {
	if ch, ok := d.Channels.GetByName(name); ok {
		return ch, false
	}
	ch = d.NewChannel(name, VisibilityPublic)
	d.Channels.Add(ch)
	return ch, true
}

// MembershipChanged tells observers that some session entered or left a
// channel screen.
func (d *Directory) MembershipChanged() {
	d.membership.Emit(struct{}{})
}

// OnMembershipChanged subscribes to membership changes.
func (d *Directory) OnMembershipChanged(fn func()) func() {
	return d.membership.Subscribe(func(struct{}) { fn() })
}

// SessionSnapshot describes one session for diagnostics.
type SessionSnapshot struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Screen string `json:"screen"`
}

// ChannelSnapshot describes one channel for diagnostics.
type ChannelSnapshot struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Visibility string   `json:"visibility"`
	Members    []string `json:"members"`
	Messages   int      `json:"messages"`
}

// Snapshot is a point-in-time copy of the directory.
type Snapshot struct {
	Channels []ChannelSnapshot `json:"channels"`
	Sessions []SessionSnapshot `json:"sessions"`
}

// Snapshot copies the current registry state.
func (d *Directory) Snapshot() Snapshot {
	snap := Snapshot{
		Channels: make([]ChannelSnapshot, 0, d.Channels.Len()),
		Sessions: make([]SessionSnapshot, 0, d.Sessions.Len()),
	}
	for _, ch := range d.Channels.All() {
		members := ch.Members()
		names := make([]string, 0, len(members))
		for _, m := range members {
			names = append(names, m.Name())
		}
		snap.Channels = append(snap.Channels, ChannelSnapshot{
			ID:         ch.ID(),
			Name:       ch.Name(),
			Visibility: string(ch.Visibility()),
			Members:    names,
			Messages:   len(ch.messages),
		})
	}
	for _, s := range d.Sessions.All() {
		snap.Sessions = append(snap.Sessions, SessionSnapshot{
			ID:     s.ID(),
			Name:   s.Name(),
			Screen: s.Screen().String(),
		})
	}
	return snap
}
