package session

import (
	"github.com/vovakirdan/telnet-chat/internal/core"
	"github.com/vovakirdan/telnet-chat/internal/telnet"
	"github.com/vovakirdan/telnet-chat/internal/term"
)

func (s *Session) runCommand(input string) {
	s.log.Info().Str("command", input).Msg("user input command")
	cmd := core.ParseCommand(input)

	switch cmd.Kind {
	case core.CommandHelp:
		s.navigate(core.HelpScreen())
	case core.CommandLogin:
		s.login(cmd.Arg(0))
	case core.CommandLogout:
		s.logout()
	case core.CommandRename:
		s.rename(cmd.Arg(0))
	case core.CommandJoin:
		s.join(cmd.Arg(0))
	case core.CommandLeave:
		s.navigate(core.HomeScreen())
	case core.CommandChannels:
		s.navigate(core.ChannelListScreen())
	case core.CommandUsers:
		s.navigate(core.UserListScreen())
	case core.CommandMembers:
		s.listMembers()
	case core.CommandDebug:
		s.debug()
	default:
		s.send("Unknown command: "+cmd.Name, errorStyle)
	}
}

// setName renames the session through the registry so every observer
// redraws.
func (s *Session) setName(name string) {
	if err := s.dir.Sessions.RenameByID(s.id, name); err != nil {
		s.log.Warn().Err(err).Msg("session missing from registry")
		s.name = name
	}
	s.updateLogContext()
}

func (s *Session) login(name string) {
	s.setName(name)
	s.log.Info().Msg("logged in")
	s.send("Welcome to the chat, "+name+"!", helloStyle)
	s.send(`Type "/help" for a list of commands`, term.Plain)
	s.sendTelnetCommand(telnet.DO, telnet.OptWindowSize)
}

func (s *Session) logout() {
	oldName := s.name
	s.setName("")
	s.log.Info().Str("old_name", oldName).Msg("logged out")
	s.send("You have been logged out.", noticeStyle)
}

func (s *Session) rename(name string) {
	oldName := s.name
	s.setName(name)
	s.log.Info().Str("old_name", oldName).Str("new_name", name).Msg("renamed")
	s.send("Your username has been changed to "+name+".", term.Plain)
}

func (s *Session) join(name string) {
	var (
		ch      *core.Channel
		created bool
	)
	s.quietly(func() { ch, created = s.dir.EnsureChannel(name) })
	if created {
		s.log.Info().Str("channel_name", name).Str("channel_id", ch.ID()).Msg("created new channel")
	}
	s.navigate(core.ChannelScreen(ch))
	if created {
		s.send("Channel "+name+" created.", term.Plain)
	}
	s.send("You have joined "+name+".", term.Plain)
}

func (s *Session) listMembers() {
	ch := s.screen.Channel()
	if ch == nil {
		s.send("You are not in a channel.", noticeStyle)
		return
	}
	s.send("Channel members:", term.Style{Attr: term.AttrUnderline})
	for _, member := range ch.Members() {
		s.send(member.Name(), term.Plain)
	}
}

func (s *Session) debug() {
	s.log.Info().Interface("snapshot", s.dir.Snapshot()).Msg("debug snapshot")
}
