package core

// ScreenKind enumerates the UI states a session can be in.
type ScreenKind int

const (
	// ScreenHome is the initial, unauthenticated view.
	ScreenHome ScreenKind = iota
	// ScreenLogin greets a freshly logged-in user.
	ScreenLogin
	// ScreenHelp lists the available commands.
	ScreenHelp
	// ScreenChannelList lists every channel.
	ScreenChannelList
	// ScreenUserList lists every connected user.
	ScreenUserList
	// ScreenChannel shows one channel's dashboard.
	ScreenChannel
)

var screenNames = map[ScreenKind]string{
	ScreenHome:        "home",
	ScreenLogin:       "login",
	ScreenHelp:        "help",
	ScreenChannelList: "channelList",
	ScreenUserList:    "usersList",
	ScreenChannel:     "channel",
}

func (k ScreenKind) String() string {
	if name, ok := screenNames[k]; ok {
		return name
	}
	return "unknown"
}

// Screen is the tagged UI state of a session. Only ScreenChannel carries a
// channel reference.
type Screen struct {
	kind    ScreenKind
	channel *Channel
}

func HomeScreen() Screen        { return Screen{kind: ScreenHome} }
func LoginScreen() Screen       { return Screen{kind: ScreenLogin} }
func HelpScreen() Screen        { return Screen{kind: ScreenHelp} }
func ChannelListScreen() Screen { return Screen{kind: ScreenChannelList} }
func UserListScreen() Screen    { return Screen{kind: ScreenUserList} }

// ChannelScreen returns the screen viewing ch. A nil channel yields Home.
func ChannelScreen(ch *Channel) Screen {
	if ch == nil {
		return HomeScreen()
	}
	return Screen{kind: ScreenChannel, channel: ch}
}

// Kind returns the variant tag.
func (s Screen) Kind() ScreenKind { return s.kind }

// Channel returns the viewed channel, or nil for every other variant.
func (s Screen) Channel() *Channel { return s.channel }

func (s Screen) String() string {
	if s.channel != nil {
		return s.kind.String() + "/" + s.channel.Name()
	}
	return s.kind.String()
}

// Participant is a connected session as seen by the directory.
type Participant interface {
	ID() string
	Name() string
	SetName(name string)
	Screen() Screen
}
