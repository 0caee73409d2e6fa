// Package session implements the per-connection UI state machine.
//
// A Session is driven entirely from the hub goroutine: input handling,
// registry notifications, rendering and writes never run concurrently.
package session

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/telnet-chat/internal/core"
	"github.com/vovakirdan/telnet-chat/internal/render"
	"github.com/vovakirdan/telnet-chat/internal/telnet"
	"github.com/vovakirdan/telnet-chat/internal/term"
	"github.com/vovakirdan/telnet-chat/internal/utils"
)

const loginPrompt = `Please login by typing "/login <username>"`

var (
	noticeStyle = term.Style{Fg: term.Yellow}
	errorStyle  = term.Style{Fg: term.Red}
	helloStyle  = term.Style{Fg: term.Green, Attr: term.AttrBold}
)

// Conn is the transport a session writes to.
type Conn interface {
	io.Writer
	io.Closer
}

type deadliner interface {
	SetWriteDeadline(t time.Time) error
}

// Options tune a session.
type Options struct {
	DefaultWidth       int
	DefaultHeight      int
	WriteTimeout       time.Duration
	MaxInputsPerMinute int
	Now                func() time.Time
}

// Session is one connected client.
type Session struct {
	id     string
	name   string
	screen core.Screen
	width  int
	height int

	conn   Conn
	dir    *core.Directory
	opts   Options
	base   zerolog.Logger
	log    zerolog.Logger
	limit  *rateLimiter
	broken bool
	closed bool
	// quiet suppresses refreshes while the session itself fires signals
	// and is about to render anyway.
	quiet bool

	unsubscribe   []func()
	unsubMessages func()
}

// New builds a session for conn. It is inert until Start is called.
func New(conn Conn, dir *core.Directory, opts Options, logger *zerolog.Logger) *Session {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	s := &Session{
		id:     utils.NewID(),
		screen: core.HomeScreen(),
		width:  opts.DefaultWidth,
		height: opts.DefaultHeight,
		conn:   conn,
		dir:    dir,
		opts:   opts,
		base:   *logger,
		limit:  newRateLimiter(opts.MaxInputsPerMinute),
	}
	s.updateLogContext()
	return s
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Name returns the display name, empty until login.
func (s *Session) Name() string { return s.name }

// SetName is called by the session registry on rename.
func (s *Session) SetName(name string) { s.name = name }

// Screen returns the current UI state.
func (s *Session) Screen() core.Screen { return s.screen }

// Viewport returns the remote terminal size.
func (s *Session) Viewport() (width, height int) { return s.width, s.height }

// Closed reports whether Close has run.
func (s *Session) Closed() bool { return s.closed }

// Start switches the remote terminal to the alternate screen, subscribes to
// directory changes and registers the session, which renders the home screen
// for it.
func (s *Session) Start() {
	s.write(term.SaveScreen + term.SaveCursor)
	s.unsubscribe = append(s.unsubscribe,
		s.dir.Sessions.OnChanged(s.refresh),
		s.dir.Channels.OnChanged(s.refresh),
		s.dir.OnMembershipChanged(s.refreshChannel),
	)
	s.dir.Sessions.Add(s)
	s.log.Info().Msg("client connected")
}

// Close releases every subscription, removes the session from the directory
// and hands the remote terminal its original screen back. It is safe to call
// more than once.
func (s *Session) Close() {
	if s.closed {
		return
	}

	for _, unsub := range s.unsubscribe {
		unsub()
	}
	s.unsubscribe = nil
	if s.unsubMessages != nil {
		s.unsubMessages()
		s.unsubMessages = nil
	}

	wasMember := s.screen.Channel() != nil
	s.dir.Sessions.Remove(s.id)
	if wasMember {
		s.dir.MembershipChanged()
	}
	s.write(term.RestoreScreen + term.RestoreCursor)
	s.closed = true
	if err := s.conn.Close(); err != nil {
		s.log.Debug().Err(err).Msg("close connection")
	}
	s.log.Info().Msg("client disconnected")
}

// HandleInput processes one chunk read from the transport.
func (s *Session) HandleInput(chunk []byte) {
	if s.closed {
		return
	}
	if telnet.IsCommand(chunk) {
		s.handleNegotiation(chunk)
		return
	}
	if !s.limit.allow(s.opts.Now()) {
		s.log.Warn().Int("limit", s.opts.MaxInputsPerMinute).Msg("input rate limit exceeded")
		return
	}

	input := telnet.DecodeText(chunk)
	s.log.Info().Str("input", input).Msg("received input")
	if input == "" {
		s.eraseInputLine()
		return
	}

	if s.name == "" && !strings.HasPrefix(input, "/login ") && !strings.HasPrefix(input, "/help") {
		s.send(loginPrompt, noticeStyle)
		return
	}

	if core.IsCommand(input) {
		s.runCommand(input)
		return
	}

	ch := s.screen.Channel()
	if ch == nil {
		s.log.Debug().Str("input", input).Msg("ignoring text outside a channel")
		return
	}
	s.eraseInputLine()
	ch.AddMessage(s.identity(), input)
	s.log.Info().Str("message_text", input).Str("channel", ch.Name()).Msg("client sent message")
}

func (s *Session) handleNegotiation(chunk []byte) {
	n := telnet.Parse(chunk)
	s.log.Info().Strs("commands", n.Tokens).Msg("received telnet commands")
	if n.WindowSize == nil {
		return
	}
	s.log.Info().Int("width", n.WindowSize.Width).Int("height", n.WindowSize.Height).Msg("received telnet window size")
	s.width = n.WindowSize.Width
	s.height = n.WindowSize.Height
}

func (s *Session) identity() core.Identity {
	return core.Identity{ID: s.id, Name: s.name}
}

// navigate switches screens and redraws once. Moving between channels swaps
// the message subscription and announces the membership change.
func (s *Session) navigate(next core.Screen) {
	prev := s.screen
	s.screen = next
	s.updateLogContext()

	if prev.Channel() != next.Channel() {
		if s.unsubMessages != nil {
			s.unsubMessages()
			s.unsubMessages = nil
		}
		if ch := next.Channel(); ch != nil {
			s.unsubMessages = ch.OnMessage(func(core.Message) { s.refresh() })
		}
		s.quietly(s.dir.MembershipChanged)
	}
	s.render()
}

// quietly runs fn without redrawing this session from the signals it fires.
func (s *Session) quietly(fn func()) {
	prev := s.quiet
	s.quiet = true
	defer func() { s.quiet = prev }()
	fn()
}

func (s *Session) refresh() {
	if s.closed || s.quiet {
		return
	}
	s.render()
}

// refreshChannel redraws only when the member column is on screen.
func (s *Session) refreshChannel() {
	if s.screen.Kind() == core.ScreenChannel {
		s.refresh()
	}
}

// render clears the remote screen and sends the full content of the current
// screen. A layout failure skips this render only.
func (s *Session) render() {
	lines, err := render.Screen(s.viewer(), s.screen, s.dir)
	if err != nil {
		s.log.Warn().Err(err).Int("width", s.width).Int("height", s.height).Msg("render failed")
		return
	}

	var b strings.Builder
	b.WriteString(term.ClearScreen)
	for _, line := range lines {
		b.WriteString(term.Line(line, term.Plain))
	}
	s.write(b.String())
}

func (s *Session) viewer() render.Viewer {
	return render.Viewer{Name: s.name, Width: s.width, Height: s.height}
}

func (s *Session) send(text string, style term.Style) {
	s.write(term.Line(text, style))
}

func (s *Session) eraseInputLine() {
	s.write(term.CursorUp(1) + term.ClearLine)
}

func (s *Session) sendTelnetCommand(cmd telnet.Command, opt telnet.Option) {
	s.log.Info().Stringer("command", cmd).Stringer("option", opt).Msg("sending telnet command")
	s.writeBytes(telnet.Frame(cmd, opt))
}

func (s *Session) write(data string) {
	s.writeBytes([]byte(data))
}

// writeBytes writes to the transport. The first failure marks the session
// broken and closes the connection so the read loop ends; later writes are
// dropped.
func (s *Session) writeBytes(data []byte) {
	if s.broken || s.closed {
		return
	}
	if d, ok := s.conn.(deadliner); ok && s.opts.WriteTimeout > 0 {
		_ = d.SetWriteDeadline(time.Now().Add(s.opts.WriteTimeout))
	}
	if _, err := s.conn.Write(data); err != nil {
		s.broken = true
		s.log.Warn().Err(err).Msg("write failed, closing connection")
		_ = s.conn.Close()
	}
}

func (s *Session) updateLogContext() {
	ctx := s.base.With().Str("client_id", s.id).Str("screen", s.screen.Kind().String())
	if s.name != "" {
		ctx = ctx.Str("name", s.name)
	}
	if ch := s.screen.Channel(); ch != nil {
		ctx = ctx.Str("channel", ch.Name())
	}
	s.log = ctx.Logger()
}
