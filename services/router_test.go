package services

import (
	"strconv"
	"testing"

	"github.com/bellapacxx/bingo-client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() (*Router, *Engine, *fakeTransport) {
	e, conn, _ := newTestEngine()
	return NewRouter(e, LogSink{}), e, conn
}

func TestRouterMalformedFrameIsDropped(t *testing.T) {
	r, e, _ := newTestRouter()
	r.Handle([]byte(`{not json`))
	r.Handle([]byte(``))
	assert.Empty(t, e.Status().PlayerID, "a bad frame must not change state")
}

func TestRouterUnknownTypeIsIgnored(t *testing.T) {
	r, e, _ := newTestRouter()
	r.Handle([]byte(`{"type":"telemetry","payload":42}`))
	assert.Empty(t, e.Status().PlayerID)
}

func TestRouterConnected(t *testing.T) {
	r, e, _ := newTestRouter()
	r.Handle([]byte(`{"type":"connected","playerId":"p7"}`))
	assert.Equal(t, "p7", e.Status().PlayerID)
}

func TestRouterPingAnsweredWithPong(t *testing.T) {
	r, _, conn := newTestRouter()
	r.Handle([]byte(`{"type":"ping"}`))
	assert.Len(t, conn.sentOfType("pong"), 1)
}

func TestRouterPongConsumedSilently(t *testing.T) {
	r, e, conn := newTestRouter()
	before := e.Status()
	r.Handle([]byte(`{"type":"pong"}`))
	assert.Equal(t, before.PlayerID, e.Status().PlayerID)
	assert.Empty(t, conn.sentOfType("pong"))
}

func TestRouterGameFlow(t *testing.T) {
	r, e, _ := newTestRouter()

	r.Handle([]byte(`{"type":"connected","playerId":"p1"}`))
	r.Handle([]byte(`{"type":"game_started","game":{
		"id":"g1","type":"75ball","status":"running","stake":25,
		"players":[{"id":"p1","name":"Abebe","stake":25,"status":"ready","balance":0}]
	}}`))

	st := e.Status()
	require.Equal(t, models.PlayerPlaying, st.Player.Status)
	board := e.Board()
	require.NotNil(t, board)

	n := board.Numbers()[0]
	r.Handle([]byte(`{"type":"number_called","number":` + strconv.Itoa(n) + `}`))
	assert.Equal(t, []int{n}, e.Status().Player.Marked)

	r.Handle([]byte(`{"type":"game_stopped"}`))
	st = e.Status()
	assert.Equal(t, models.PlayerWaiting, st.Player.Status)
	assert.Empty(t, st.Player.Marked)
}

func TestRouterChatMessage(t *testing.T) {
	r, e, _ := newTestRouter()
	r.Handle([]byte(`{"type":"chat_message","message":{"sender":"Kebede","text":"selam","timestamp":1700000000000}}`))

	chat := e.Status().Chat
	require.Len(t, chat, 1)
	assert.Equal(t, "Kebede", chat[0].Sender)
	assert.Equal(t, "selam", chat[0].Text)
}

func TestRouterChatWithBadPayload(t *testing.T) {
	r, e, _ := newTestRouter()
	r.Handle([]byte(`{"type":"chat_message","message":"not an object"}`))
	assert.Empty(t, e.Status().Chat)
}

func TestRouterServerError(t *testing.T) {
	r, e, _ := newTestRouter()
	r.Handle([]byte(`{"type":"error","message":"stake too low"}`))
	// errors are surfaced, never fatal; the engine keeps serving actions
	assert.NotPanics(t, func() { e.Status() })
}

func TestRouterPlayerListUpdates(t *testing.T) {
	r, e, _ := newTestRouter()
	r.Handle([]byte(`{"type":"connected","playerId":"p1"}`))
	r.Handle([]byte(`{"type":"player_joined","playerName":"Kebede","players":[
		{"id":"p1","name":"Abebe","status":"waiting","balance":0},
		{"id":"p2","name":"Kebede","status":"waiting","balance":0}
	]}`))

	assert.Len(t, e.Status().Game.Players, 2)
}
