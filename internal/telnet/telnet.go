// Package telnet implements the subset of the TELNET control protocol
// (RFC 854) the chat server needs: telling control sequences apart from user
// text, decoding option negotiation and the NAWS window-size sub-negotiation
// (RFC 1073), and framing outbound option commands.
//
// The codec keeps no state between chunks. Each transport read is treated as
// one complete logical unit.
package telnet

import (
	"bytes"
	"encoding/binary"
	"strings"
	"unicode"
)

// Command is a TELNET command byte.
type Command byte

const (
	EOF   Command = 236 // end of file
	SUSP  Command = 237 // suspend process
	ABORT Command = 238 // abort process
	EOR   Command = 239 // end of record
	SE    Command = 240 // end sub-negotiation
	NOP   Command = 241
	DM    Command = 242 // data mark
	BREAK Command = 243
	IP    Command = 244 // interrupt process
	AO    Command = 245 // abort output
	AYT   Command = 246 // are you there
	EC    Command = 247 // erase character
	EL    Command = 248 // erase line
	GA    Command = 249 // go ahead
	SB    Command = 250 // begin sub-negotiation
	WILL  Command = 251
	WONT  Command = 252
	DO    Command = 253
	DONT  Command = 254
	IAC   Command = 255 // interpret as command

	SYNCH = DM
)

// Option is a TELNET option code.
type Option byte

const (
	OptBinary          Option = 0  // RFC 856
	OptEcho            Option = 1  // RFC 857
	OptSuppressGoAhead Option = 3  // RFC 858
	OptStatus          Option = 5  // RFC 859
	OptTimingMark      Option = 6  // RFC 860
	OptTerminalType    Option = 24 // RFC 1091
	OptWindowSize      Option = 31 // RFC 1073
	OptLineMode        Option = 34 // RFC 1184
	OptNewEnviron      Option = 39 // RFC 1572
	OptCompress2       Option = 86 // MCCP2

	// Sub-negotiation qualifiers share their codes with BINARY and ECHO.
	TelQualIs   Option = 0
	TelQualSend Option = 1
)

var commandNames = map[Command]string{
	EOF: "EOF", SUSP: "SUSP", ABORT: "ABORT", EOR: "EOR", SE: "SE",
	NOP: "NOP", DM: "DM", BREAK: "BREAK", IP: "IP", AO: "AO",
	AYT: "AYT", EC: "EC", EL: "EL", GA: "GA", SB: "SB",
	WILL: "WILL", WONT: "WONT", DO: "DO", DONT: "DONT", IAC: "IAC",
}

var optionNames = map[Option]string{
	OptBinary:          "OPT_BINARY",
	OptEcho:            "OPT_ECHO",
	OptSuppressGoAhead: "OPT_SUPPRESS_GO_AHEAD",
	OptStatus:          "OPT_STATUS",
	OptTimingMark:      "OPT_TIMING_MARK",
	OptTerminalType:    "OPT_TTYPE",
	OptWindowSize:      "OPT_WINDOW_SIZE",
	OptLineMode:        "OPT_LINE_MODE",
	OptNewEnviron:      "OPT_NEW_ENVIRON",
	OptCompress2:       "OPT_COMPRESS2",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

func (o Option) String() string {
	if name, ok := optionNames[o]; ok {
		return name
	}
	return "UNKNOWN"
}

// WindowSize is the terminal size reported through NAWS.
type WindowSize struct {
	Width  int
	Height int
}

// Negotiation is the decoded content of one control chunk.
type Negotiation struct {
	// Tokens names every recognised command or option byte in order.
	Tokens []string
	// SubOption is the option of the sub-negotiation, valid if HasSub.
	SubOption Option
	HasSub    bool
	// WindowSize is set when the chunk carried a NAWS sub-negotiation.
	WindowSize *WindowSize
}

// IsCommand reports whether chunk starts with IAC.
func IsCommand(chunk []byte) bool {
	return len(chunk) > 0 && chunk[0] == byte(IAC)
}

// DecodeText turns a non-command chunk into a string with trailing
// whitespace and line endings removed.
func DecodeText(chunk []byte) string {
	return strings.TrimRightFunc(strings.ToValidUTF8(string(chunk), "\uFFFD"), unicode.IsSpace)
}

// Parse decodes a control chunk. Unknown bytes are skipped and malformed
// sub-negotiations are ignored.
func Parse(chunk []byte) Negotiation {
	var n Negotiation
	for _, b := range chunk {
		if name, ok := commandNames[Command(b)]; ok {
			n.Tokens = append(n.Tokens, name)
		} else if name, ok := optionNames[Option(b)]; ok {
			n.Tokens = append(n.Tokens, name)
		}
	}

	sub, ok := subnegotiation(chunk)
	if !ok {
		return n
	}
	n.HasSub = true
	n.SubOption = Option(sub[1])
	if n.SubOption == OptWindowSize && len(sub) >= 6 {
		n.WindowSize = &WindowSize{
			Width:  int(int16(binary.BigEndian.Uint16(sub[2:4]))),
			Height: int(int16(binary.BigEndian.Uint16(sub[4:6]))),
		}
	}
	return n
}

// subnegotiation returns the span from the first SB to the last SE.
func subnegotiation(chunk []byte) ([]byte, bool) {
	start := bytes.IndexByte(chunk, byte(SB))
	if start < 0 {
		return nil, false
	}
	end := bytes.LastIndexByte(chunk, byte(SE))
	if end <= start+1 {
		return nil, false
	}
	return chunk[start : end+1], true
}

// Frame builds the three-byte sequence IAC cmd opt.
func Frame(cmd Command, opt Option) []byte {
	return []byte{byte(IAC), byte(cmd), byte(opt)}
}
