package term

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestLine(t *testing.T) {
	tests := []struct {
		name  string
		style Style
		want  string
	}{
		{"plain", Plain, "\x1b[mhello\x1b[0m\r\n"},
		{"fg", Style{Fg: Red}, "\x1b[31;mhello\x1b[0m\r\n"},
		{"fg default", Style{Fg: Default}, "\x1b[39;mhello\x1b[0m\r\n"},
		{"bg", Style{Bg: Black}, "\x1b[40;mhello\x1b[0m\r\n"},
		{"all", Style{Fg: Cyan, Bg: White, Attr: AttrBold}, "\x1b[36;47;1;mhello\x1b[0m\r\n"},
		{"invert", Style{Attr: AttrInvert}, "\x1b[7;mhello\x1b[0m\r\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Line("hello", tt.style))
		})
	}
}

func TestLineStripsToText(t *testing.T) {
	out := Line("Channels:", Style{Fg: Green, Attr: AttrUnderline})
	assert.Equal(t, "Channels:", strings.TrimSpace(ansi.Strip(out)))
}

func TestSequences(t *testing.T) {
	assert.Equal(t, "\x1b[3A", CursorUp(3))
	assert.Equal(t, "\x1b[1A", CursorUp(1))
	assert.Equal(t, "\x1b[2J\x1b[0;0H", ClearScreen)
}
