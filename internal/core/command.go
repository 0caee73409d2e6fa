package core

import "strings"

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandUnknown is any slash command not listed below.
	CommandUnknown CommandKind = iota
	CommandHelp
	CommandLogin
	CommandLogout
	CommandRename
	CommandJoin
	CommandLeave
	CommandChannels
	CommandUsers
	CommandMembers
	CommandDebug
)

var commandKinds = map[string]CommandKind{
	"help":     CommandHelp,
	"login":    CommandLogin,
	"logout":   CommandLogout,
	"rename":   CommandRename,
	"join":     CommandJoin,
	"leave":    CommandLeave,
	"channels": CommandChannels,
	"users":    CommandUsers,
	"members":  CommandMembers,
	"debug":    CommandDebug,
}

// Command is a parsed slash command.
type Command struct {
	Kind CommandKind
	// Name is the first word as typed, slash included.
	Name string
	Args []string
}

// Arg returns the i-th argument, or "" when it was not supplied.
func (c Command) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}

// IsCommand reports whether input is a slash command.
func IsCommand(input string) bool {
	return strings.HasPrefix(input, "/")
}

// ParseCommand splits input on single spaces. Lookup is case-sensitive and
// ignores the first slash.
func ParseCommand(input string) Command {
	fields := strings.Split(input, " ")
	name := fields[0]
	kind, ok := commandKinds[strings.Replace(name, "/", "", 1)]
	if !ok {
		kind = CommandUnknown
	}
	return Command{Kind: kind, Name: name, Args: fields[1:]}
}
