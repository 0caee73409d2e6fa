// Package term holds the ANSI display-control sequences written to remote
// terminals.
package term

import (
	"strconv"
	"strings"
)

const (
	ClearScreen   = "\x1b[2J\x1b[0;0H"
	ClearLine     = "\x1b[2K"
	SaveScreen    = "\x1b[?47h"
	RestoreScreen = "\x1b[?47l"
	SaveCursor    = "\x1b 7"
	RestoreCursor = "\x1b 8"
	Reset         = "\x1b[0m"

	lineEnd = "\r\n"
)

// CursorUp moves the cursor up n rows.
func CursorUp(n int) string {
	return "\x1b[" + strconv.Itoa(n) + "A"
}

// Color is an SGR colour name.
type Color int

const (
	ColorNone Color = iota
	Black
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	Default
)

var colorOffsets = map[Color]int{
	Black: 0, Red: 1, Green: 2, Yellow: 3, Blue: 4,
	Magenta: 5, Cyan: 6, White: 7, Default: 9,
}

// Attr is an SGR text attribute.
type Attr int

const (
	AttrNone      Attr = 0
	AttrBold      Attr = 1
	AttrItalic    Attr = 3
	AttrUnderline Attr = 4
	AttrBlink     Attr = 5
	AttrInvert    Attr = 7
	AttrHidden    Attr = 8
)

// Style is the SGR state applied to one emitted line.
type Style struct {
	Fg   Color
	Bg   Color
	Attr Attr
}

// Plain is the empty style.
var Plain = Style{}

// Line frames text as ESC[<fg;><bg;><attr;>m text ESC[0m CRLF.
func Line(text string, style Style) string {
	var b strings.Builder
	b.Grow(len(text) + 16)
	b.WriteString("\x1b[")
	if off, ok := colorOffsets[style.Fg]; ok {
		b.WriteString(strconv.Itoa(30 + off))
		b.WriteByte(';')
	}
	if off, ok := colorOffsets[style.Bg]; ok {
		b.WriteString(strconv.Itoa(40 + off))
		b.WriteByte(';')
	}
	if style.Attr != AttrNone {
		b.WriteString(strconv.Itoa(int(style.Attr)))
		b.WriteByte(';')
	}
	b.WriteByte('m')
	b.WriteString(text)
	b.WriteString(Reset)
	b.WriteString(lineEnd)
	return b.String()
}
