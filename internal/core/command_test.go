package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		kind  CommandKind
		arg   string
	}{
		{"/help", CommandHelp, ""},
		{"/login alice", CommandLogin, "alice"},
		{"/join general extra", CommandJoin, "general"},
		{"/join", CommandJoin, ""},
		{"/rename  bob", CommandRename, ""},
		{"/Help", CommandUnknown, ""},
		{"/nope x", CommandUnknown, "x"},
		{"/members", CommandMembers, ""},
		{"/debug", CommandDebug, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd := ParseCommand(tt.input)
			assert.Equal(t, tt.kind, cmd.Kind)
			assert.Equal(t, tt.arg, cmd.Arg(0))
		})
	}
}

func TestParseCommandKeepsTypedName(t *testing.T) {
	cmd := ParseCommand("/frobnicate now")
	assert.Equal(t, "/frobnicate", cmd.Name)
	assert.Equal(t, []string{"now"}, cmd.Args)
	assert.True(t, IsCommand("/x"))
	assert.False(t, IsCommand("hello /x"))
}
