package http

import (
	"github.com/vovakirdan/telnet-chat/internal/core"
	"github.com/vovakirdan/telnet-chat/internal/proto"
)

func stateFromSnapshot(snap core.Snapshot) proto.State {
	state := proto.State{
		Channels: make([]proto.Channel, 0, len(snap.Channels)),
		Sessions: make([]proto.Session, 0, len(snap.Sessions)),
	}
	for _, ch := range snap.Channels {
		members := ch.Members
		if members == nil {
			members = []string{}
		}
		state.Channels = append(state.Channels, proto.Channel{
			ID:         ch.ID,
			Name:       ch.Name,
			Visibility: ch.Visibility,
			Members:    members,
			Messages:   ch.Messages,
		})
	}
	for _, s := range snap.Sessions {
		state.Sessions = append(state.Sessions, proto.Session{
			ID:     s.ID,
			Name:   s.Name,
			Screen: s.Screen,
		})
	}
	return state
}
