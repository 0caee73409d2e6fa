package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureChannelCreatesOnce(t *testing.T) {
	dir := NewDirectory()

	added := 0
	dir.Channels.OnAdded(func(*Channel) { added++ })

	first, created := dir.EnsureChannel("lobby")
	require.True(t, created)
	second, created := dir.EnsureChannel("lobby")
	require.False(t, created)

	assert.Same(t, first, second)
	assert.Equal(t, 1, added)
	assert.Equal(t, VisibilityPublic, first.Visibility())
}

func TestMembersAreDerivedFromScreens(t *testing.T) {
	dir := NewDirectory()
	lobby, _ := dir.EnsureChannel("lobby")
	other, _ := dir.EnsureChannel("other")

	a := &fakeParticipant{id: "a", name: "A", screen: ChannelScreen(lobby)}
	b := &fakeParticipant{id: "b", name: "B", screen: ChannelScreen(lobby)}
	c := &fakeParticipant{id: "c", name: "C", screen: HelpScreen()}
	for _, p := range []*fakeParticipant{a, b, c} {
		dir.Sessions.Add(p)
	}

	assert.ElementsMatch(t, []Participant{a, b}, lobby.Members())
	assert.Empty(t, other.Members())

	a.screen = HomeScreen()
	assert.ElementsMatch(t, []Participant{b}, lobby.Members())

	dir.Sessions.Remove("b")
	assert.Empty(t, lobby.Members())
}

func TestMessagesKeepSendOrderAndNotify(t *testing.T) {
	dir := NewDirectory()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	dir.SetClock(func() time.Time { return at })
	ch, _ := dir.EnsureChannel("lobby")

	var seen []string
	unsub := ch.OnMessage(func(m Message) { seen = append(seen, m.Body) })

	author := Identity{ID: "a", Name: "alice"}
	for _, body := range []string{"one", "two", "three"} {
		ch.AddMessage(author, body)
	}
	unsub()
	ch.AddMessage(author, "four")

	msgs := ch.Messages()
	require.Len(t, msgs, 4)
	for i, body := range []string{"one", "two", "three", "four"} {
		assert.Equal(t, body, msgs[i].Body)
		assert.Equal(t, author, msgs[i].Author)
		assert.Equal(t, at, msgs[i].Timestamp)
		assert.NotEmpty(t, msgs[i].ID)
	}
	assert.Equal(t, []string{"one", "two", "three"}, seen)
}

func TestScreenVariants(t *testing.T) {
	dir := NewDirectory()
	ch, _ := dir.EnsureChannel("general")

	assert.Nil(t, HomeScreen().Channel())
	assert.Equal(t, ScreenHome, ChannelScreen(nil).Kind())
	assert.Equal(t, ScreenChannel, ChannelScreen(ch).Kind())
	assert.Same(t, ch, ChannelScreen(ch).Channel())
	assert.Equal(t, "channel/general", ChannelScreen(ch).String())
	assert.Equal(t, "usersList", UserListScreen().String())
}

func TestSnapshot(t *testing.T) {
	dir := NewDirectory()
	ch, _ := dir.EnsureChannel("general")
	ch.AddMessage(Identity{ID: "a", Name: "alice"}, "hi")
	dir.Sessions.Add(&fakeParticipant{id: "a", name: "alice", screen: ChannelScreen(ch)})
	dir.Sessions.Add(&fakeParticipant{id: "b", name: "", screen: HomeScreen()})

	snap := dir.Snapshot()
	require.Len(t, snap.Channels, 1)
	assert.Equal(t, []string{"alice"}, snap.Channels[0].Members)
	assert.Equal(t, 1, snap.Channels[0].Messages)
	require.Len(t, snap.Sessions, 2)
	assert.Equal(t, "channel/general", snap.Sessions[0].Screen)
	assert.Equal(t, "home", snap.Sessions[1].Screen)
}
