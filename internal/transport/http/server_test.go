package http

import (
	"context"
	"encoding/json"
	"net"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/telnet-chat/internal/core"
	"github.com/vovakirdan/telnet-chat/internal/proto"
	"github.com/vovakirdan/telnet-chat/internal/session"
)

type testServer struct {
	ts     *httptest.Server
	hub    *core.Hub
	dir    *core.Directory
	ctx    context.Context
	cancel context.CancelFunc
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	hub := core.NewHub(nil)
	go hub.Run(ctx)

	dir := core.NewDirectory()
	handler := session.NewHandler(hub, dir, session.Options{DefaultWidth: 200, DefaultHeight: 80}, nil)
	server := NewServer(":0", hub, dir, handler, nil)

	ts := httptest.NewUnstartedServer(server.Handler())
	ts.Config.BaseContext = func(net.Listener) context.Context { return ctx }
	ts.Start()
	t.Cleanup(func() {
		cancel()
		<-hub.Done()
		ts.Close()
	})

	return &testServer{ts: ts, hub: hub, dir: dir, ctx: ctx, cancel: cancel}
}

type wsClient struct {
	conn net.Conn
	mu   sync.Mutex
	out  strings.Builder
}

func dialWS(t *testing.T, ts *httptest.Server) *wsClient {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	require.NoError(t, err)

	c := &wsClient{conn: websocket.NetConn(ctx, conn, websocket.MessageBinary)}
	t.Cleanup(func() { c.conn.Close() })
	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := c.conn.Read(buf)
			c.mu.Lock()
			c.out.Write(buf[:n])
			c.mu.Unlock()
			if err != nil {
				return
			}
		}
	}()
	return c
}

func (c *wsClient) send(t *testing.T, line, want string) {
	t.Helper()
	_, err := c.conn.Write([]byte(line + "\r\n"))
	require.NoError(t, err)
	c.waitFor(t, want)
}

func (c *wsClient) waitFor(t *testing.T, want string) {
	t.Helper()
	require.Eventually(t, func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		return strings.Contains(ansi.Strip(c.out.String()), want)
	}, 3*time.Second, 5*time.Millisecond, "waiting for %q", want)
}

func getState(t *testing.T, ts *httptest.Server) (int, []byte) {
	t.Helper()
	resp, err := ts.Client().Get(ts.URL + "/state")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHealthEndpoint(t *testing.T) {
	s := startTestServer(t)

	resp, err := s.ts.Client().Get(s.ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, stdhttp.StatusOK, resp.StatusCode)
}

func TestStateEmpty(t *testing.T) {
	s := startTestServer(t)

	status, body := getState(t, s.ts)
	require.Equal(t, stdhttp.StatusOK, status)
	assert.JSONEq(t, `{"channels":[],"sessions":[]}`, string(body))
}

func TestWebSocketSessionAppearsInState(t *testing.T) {
	s := startTestServer(t)

	alice := dialWS(t, s.ts)
	alice.waitFor(t, "to log in")
	alice.send(t, "/login alice", "Welcome to the chat, alice!")
	alice.send(t, "/join general", "You have joined general.")

	bob := dialWS(t, s.ts)
	bob.waitFor(t, "to log in")
	bob.send(t, "/login bob", "Welcome to the chat, bob!")
	bob.send(t, "/join general", "You have joined general.")

	alice.send(t, "hi there", "hi there")
	bob.waitFor(t, "hi there")

	status, body := getState(t, s.ts)
	require.Equal(t, stdhttp.StatusOK, status)

	var state proto.State
	require.NoError(t, json.Unmarshal(body, &state))
	require.Len(t, state.Channels, 1)
	assert.Equal(t, "general", state.Channels[0].Name)
	assert.Equal(t, "public", state.Channels[0].Visibility)
	assert.ElementsMatch(t, []string{"alice", "bob"}, state.Channels[0].Members)
	assert.Equal(t, 1, state.Channels[0].Messages)
	require.Len(t, state.Sessions, 2)
	assert.Equal(t, "channel/general", state.Sessions[0].Screen)
}

func TestWebSocketDisconnectRemovesSession(t *testing.T) {
	s := startTestServer(t)

	c := dialWS(t, s.ts)
	c.waitFor(t, "to log in")
	c.send(t, "/login carol", "Welcome")
	require.NoError(t, c.conn.Close())

	require.Eventually(t, func() bool {
		var n int
		if err := s.hub.Do(s.ctx, func() { n = s.dir.Sessions.Len() }); err != nil {
			return false
		}
		return n == 0
	}, 3*time.Second, 5*time.Millisecond)
}

func TestStateUnavailableWhenHubStopped(t *testing.T) {
	hub := core.NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	cancel()
	<-hub.Done()

	server := NewServer(":0", hub, core.NewDirectory(), nil, nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/state", nil))

	assert.Equal(t, stdhttp.StatusServiceUnavailable, rec.Code)
	var perr proto.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &perr))
	assert.Equal(t, proto.ErrCodeUnavailable, perr.Code)
}

func TestStateFromSnapshotNeverNullMembers(t *testing.T) {
	state := stateFromSnapshot(core.Snapshot{
		Channels: []core.ChannelSnapshot{{ID: "c1", Name: "empty", Visibility: "public"}},
		Sessions: []core.SessionSnapshot{{ID: "s1", Screen: "home"}},
	})

	require.Len(t, state.Channels, 1)
	assert.NotNil(t, state.Channels[0].Members)
	assert.Equal(t, proto.Session{ID: "s1", Screen: "home"}, state.Sessions[0])
}

func TestPanicBecomesInternalError(t *testing.T) {
	hub := core.NewHub(nil)
	server := NewServer(":0", hub, core.NewDirectory(), nil, nil)
	engine, ok := server.Handler().(*gin.Engine)
	require.True(t, ok)
	engine.GET("/boom", func(*gin.Context) { panic("boom") })

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/boom", nil))

	assert.Equal(t, stdhttp.StatusInternalServerError, rec.Code)
	var body proto.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, proto.ErrCodeInternal, body.Code)
	assert.Equal(t, "internal server error", body.Msg)
}
