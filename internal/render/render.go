// Package render builds the text content of every UI screen on a canvas.
package render

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/vovakirdan/telnet-chat/internal/canvas"
	"github.com/vovakirdan/telnet-chat/internal/core"
)

// margin is subtracted from both viewport dimensions to size the canvas.
const margin = 10

// Canvas bounds regardless of the size a terminal reports.
const (
	maxCanvasWidth  = 1000
	maxCanvasHeight = 500
)

const (
	sideColumn   = 25
	gutterColumn = 3
	headerRows   = 2
	footerRows   = 4

	timestampLayout = "Mon Jan 02 2006 3:04:05 PM"
)

//go:embed banner.txt
var banner string

// Viewer is the session a screen is rendered for.
type Viewer struct {
	Name   string
	Width  int
	Height int
}

func (v Viewer) canvas() *canvas.Canvas {
	return canvas.New(min(v.Height-margin, maxCanvasHeight), min(v.Width-margin, maxCanvasWidth))
}

// Screen renders whichever screen s denotes.
func Screen(v Viewer, s core.Screen, dir *core.Directory) ([]string, error) {
	switch s.Kind() {
	case core.ScreenChannel:
		return Channel(v, s.Channel(), dir.Channels.All())
	case core.ScreenHelp:
		return Help(v)
	case core.ScreenChannelList:
		return ChannelList(v, dir.Channels.All())
	case core.ScreenUserList:
		return UserList(v, dir.Sessions.All())
	case core.ScreenLogin:
		return Login(v)
	default:
		return Home(v)
	}
}

// Home shows the banner and, for anonymous viewers, how to log in.
func Home(v Viewer) ([]string, error) {
	cv := v.canvas()
	art := strings.Split(strings.TrimRight(banner, "\n"), "\n")
	if err := writeRows(cv, 0, art); err != nil {
		return nil, err
	}
	if v.Name == "" {
		if err := writeRows(cv, len(art)+1, []string{`Type "/login <username>" to log in`}); err != nil {
			return nil, err
		}
	}
	return cv.Lines(), nil
}

// Login greets a logged-in viewer.
func Login(v Viewer) ([]string, error) {
	cv := v.canvas()
	err := writeRows(cv, 0, []string{
		"Welcome to the chat, " + v.Name + "!",
		`Type "/help" for a list of commands`,
	})
	if err != nil {
		return nil, err
	}
	return cv.Lines(), nil
}

// Help lists the commands inside a comment-style frame.
func Help(v Viewer) ([]string, error) {
	cv := v.canvas()
	rule := strings.Repeat("*", cv.Width())
	lines := []string{
		rule,
		" HELP",
		" Available commands:",
		"",
		"  /help - displays this help page",
		"  /login <username> - logs in as the given username",
		"  /logout - logs out",
		"  /rename <username> - changes your username",
		"  /join <channel name> - joins the channel with the given name. If the channel does not exist, it will be created",
		"  /leave - leaves the current channel",
		"  /channels - lists all channels",
		"  /users - lists all users",
		"  /members - lists the members of the current channel",
		rule,
	}
	for i, line := range lines {
		if i >= cv.Height() {
			break
		}
		if err := cv.SplitColumns(i, 2, cv.Width()-4, 2); err != nil {
			return nil, fmt.Errorf("help row %d: %w", i, err)
		}
		if err := writeCells(cv, i, "/*", line, "*/"); err != nil {
			return nil, fmt.Errorf("help row %d: %w", i, err)
		}
	}
	return cv.Lines(), nil
}

// ChannelList lists every channel by name.
func ChannelList(v Viewer, channels []*core.Channel) ([]string, error) {
	cv := v.canvas()
	lines := []string{"Available channels:"}
	if len(channels) == 0 {
		lines = append(lines, `No channels available yet. Create the first one! Type "/join <channel name>"`)
	}
	for _, ch := range channels {
		lines = append(lines, ch.Name())
	}
	if err := writeRows(cv, 0, lines); err != nil {
		return nil, err
	}
	return cv.Lines(), nil
}

// UserList lists every logged-in participant.
func UserList(v Viewer, users []core.Participant) ([]string, error) {
	cv := v.canvas()
	lines := []string{"Available users:"}
	for _, u := range users {
		if u.Name() == "" {
			continue
		}
		lines = append(lines, u.Name())
	}
	if err := writeRows(cv, 0, lines); err != nil {
		return nil, err
	}
	return cv.Lines(), nil
}

// Channel draws the dashboard for ch: a header, then channel names on the
// left, members on the right and the most recent messages in the middle.
func Channel(v Viewer, ch *core.Channel, channels []*core.Channel) ([]string, error) {
	if ch == nil {
		return nil, core.ErrNotInChannel
	}
	cv := v.canvas()
	width := cv.Width()

	if err := cv.SplitColumns(0, sideColumn, width-sideColumn); err != nil {
		return nil, fmt.Errorf("channel header: %w", err)
	}
	if err := writeCells(cv, 0, "Logged in as: "+v.Name, "Viewing channel: "+ch.Name()); err != nil {
		return nil, fmt.Errorf("channel header: %w", err)
	}
	if err := cv.WriteLine(1, strings.Repeat("-", width)); err != nil {
		return nil, fmt.Errorf("channel rule: %w", err)
	}

	mainStart := headerRows
	mainEnd := cv.Height() - footerRows
	paneWidth := width - 2*sideColumn - 2*gutterColumn
	for row := mainStart; row < mainEnd; row++ {
		if err := cv.SplitColumns(row, sideColumn, gutterColumn, paneWidth, gutterColumn, sideColumn); err != nil {
			return nil, fmt.Errorf("channel row %d: %w", row, err)
		}
		for _, gutter := range []int{1, 3} {
			if err := cv.WriteCell(row, gutter, "|"); err != nil {
				return nil, fmt.Errorf("channel row %d: %w", row, err)
			}
		}
	}
	if mainEnd <= mainStart {
		return cv.Lines(), nil
	}

	listRows := mainEnd - mainStart - 1
	channelNames := []string{"Channels:"}
	for _, other := range head(channels, listRows) {
		channelNames = append(channelNames, other.Name())
	}
	if err := writeColumn(cv, mainStart, 0, channelNames); err != nil {
		return nil, fmt.Errorf("channel list: %w", err)
	}

	memberNames := []string{"Active Users Here:"}
	for _, member := range head(ch.Members(), listRows) {
		memberNames = append(memberNames, member.Name())
	}
	if err := writeColumn(cv, mainStart, 4, memberNames); err != nil {
		return nil, fmt.Errorf("member list: %w", err)
	}

	lines := messageLines(ch.Messages(), paneWidth, width)
	if err := writeColumn(cv, mainStart, 2, tail(lines, mainEnd-mainStart)); err != nil {
		return nil, fmt.Errorf("message pane: %w", err)
	}
	return cv.Lines(), nil
}

func messageLines(messages []core.Message, paneWidth, ruleWidth int) []string {
	var lines []string
	for _, msg := range messages {
		name := msg.Author.Name
		lines = append(lines,
			name,
			strings.Repeat("-", runewidth.StringWidth(name)),
			msg.Timestamp.Format(timestampLayout),
		)
		lines = append(lines, wrapBody(msg.Body, paneWidth)...)
		lines = append(lines, strings.Repeat("-", ruleWidth))
	}
	return lines
}

func wrapBody(body string, width int) []string {
	if width <= 0 {
		return []string{body}
	}
	return strings.Split(wrap.String(wordwrap.String(body, width), width), "\n")
}

func writeRows(cv *canvas.Canvas, start int, lines []string) error {
	for i, line := range lines {
		row := start + i
		if row >= cv.Height() {
			break
		}
		if err := cv.WriteLine(row, line); err != nil {
			return err
		}
	}
	return nil
}

// writeCells fills the leading cells of row in order.
func writeCells(cv *canvas.Canvas, row int, texts ...string) error {
	for i, text := range texts {
		if err := cv.WriteCell(row, i, text); err != nil {
			return err
		}
	}
	return nil
}

// writeColumn fills cell index of consecutive rows starting at start.
func writeColumn(cv *canvas.Canvas, start, index int, texts []string) error {
	for i, text := range texts {
		if err := cv.WriteCell(start+i, index, text); err != nil {
			return err
		}
	}
	return nil
}

func head[T any](items []T, n int) []T {
	if n <= 0 {
		return nil
	}
	if len(items) > n {
		return items[:n]
	}
	return items
}

func tail[T any](items []T, n int) []T {
	if n <= 0 {
		return nil
	}
	if len(items) > n {
		return items[len(items)-n:]
	}
	return items
}
