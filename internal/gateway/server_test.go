package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calliof/switchboard/internal/config"
	"github.com/calliof/switchboard/internal/domain"
	"github.com/calliof/switchboard/internal/hub"
	"github.com/calliof/switchboard/internal/logging"
	"github.com/calliof/switchboard/internal/protocol"
	"github.com/calliof/switchboard/internal/responder"
	"github.com/calliof/switchboard/internal/store"
)

func testServer(t *testing.T) (*Server, *httptest.Server, *hub.Hub) {
	t.Helper()
	cfg := config.Defaults()
	log := logging.New(nil, "silent")

	rsp := &responder.MockClient{CompleteFunc: func(ctx context.Context, turns []domain.Turn) (domain.Reply, error) {
		return domain.Reply{Message: "echo: " + turns[len(turns)-1].Content}, nil
	}}
	h := hub.New(rsp, store.NewMemoryLeadStore(), log)

	srv := New(cfg, h, log)
	srv.startedAt = time.Now()

	ts := httptest.NewServer(srv.routes())
	t.Cleanup(ts.Close)
	return srv, ts, h
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) protocol.Envelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var env protocol.Envelope
	require.NoError(t, conn.ReadJSON(&env))
	return env
}

func loginAs(t *testing.T, conn *websocket.Conn, id string, role domain.Role) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(protocol.Envelope{
		Type: protocol.TypeLogin, UserID: id, Role: role,
	}))
}

func TestHealthEndpoint(t *testing.T) {
	_, ts, _ := testServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var health HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 0, health.Connections)
	assert.Equal(t, 0, health.AgentsOnline)
}

func TestNotFoundEndpoint(t *testing.T) {
	_, ts, _ := testServer(t)

	resp, err := http.Get(ts.URL + "/nonexistent")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUserLoginReceivesWelcome(t *testing.T) {
	_, ts, _ := testServer(t)

	conn := dialWS(t, ts)
	loginAs(t, conn, "u1", domain.RoleUser)

	env := readEnvelope(t, conn)
	assert.Equal(t, protocol.TypeWelcome, env.Type)
	assert.NotEmpty(t, env.Buttons)
}

func TestMalformedPayloadGetsError(t *testing.T) {
	_, ts, _ := testServer(t)

	conn := dialWS(t, ts)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	env := readEnvelope(t, conn)
	assert.Equal(t, protocol.TypeError, env.Type)

	// The connection survives a bad payload.
	loginAs(t, conn, "u1", domain.RoleUser)
	assert.Equal(t, protocol.TypeWelcome, readEnvelope(t, conn).Type)
}

func TestUnknownTypeGetsError(t *testing.T) {
	_, ts, _ := testServer(t)

	conn := dialWS(t, ts)
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "bogus"}))
	env := readEnvelope(t, conn)
	assert.Equal(t, protocol.TypeError, env.Type)
}

func TestBotReplyOverSocket(t *testing.T) {
	_, ts, _ := testServer(t)

	conn := dialWS(t, ts)
	loginAs(t, conn, "u1", domain.RoleUser)
	readEnvelope(t, conn) // welcome

	require.NoError(t, conn.WriteJSON(protocol.Envelope{
		Type: protocol.TypePrivateMessage, Message: "what is a closure",
	}))

	env := readEnvelope(t, conn)
	assert.Equal(t, protocol.TypePrivateMessage, env.Type)
	assert.Equal(t, "echo: what is a closure", env.Message)
	assert.Equal(t, protocol.BotSenderName, env.SenderName)
}

func TestAgentHandoffOverSockets(t *testing.T) {
	_, ts, _ := testServer(t)

	agentConn := dialWS(t, ts)
	loginAs(t, agentConn, "a1", domain.RoleAgent)
	assert.Equal(t, protocol.TypeAgentStatus, readEnvelope(t, agentConn).Type)

	userConn := dialWS(t, ts)
	loginAs(t, userConn, "u1", domain.RoleUser)
	readEnvelope(t, userConn) // welcome

	require.NoError(t, userConn.WriteJSON(protocol.Envelope{
		Type: protocol.TypePrivateMessage, Message: "I want to speak to a human",
	}))

	assert.Equal(t, protocol.TypeClearChat, readEnvelope(t, userConn).Type)
	status := readEnvelope(t, userConn)
	assert.Equal(t, protocol.TypeSupportStatus, status.Type)
	assert.Equal(t, "a1", status.AgentID)

	assigned := readEnvelope(t, agentConn)
	assert.Equal(t, protocol.TypeUserAssigned, assigned.Type)
	assert.Equal(t, "u1", assigned.UserID)
	forwarded := readEnvelope(t, agentConn)
	assert.Equal(t, "I want to speak to a human", forwarded.Message)

	// Agent replies through the hub to the user.
	require.NoError(t, agentConn.WriteJSON(protocol.Envelope{
		Type: protocol.TypePrivateMessage, RecipientID: "u1", Message: "hi, how can I help?",
	}))
	line := readEnvelope(t, userConn)
	assert.Equal(t, "hi, how can I help?", line.Message)
	assert.Equal(t, protocol.AgentSenderName("a1"), line.SenderName)
}

func TestLoginTakeoverClosesOldSocket(t *testing.T) {
	_, ts, _ := testServer(t)

	first := dialWS(t, ts)
	loginAs(t, first, "u1", domain.RoleUser)
	readEnvelope(t, first) // welcome

	second := dialWS(t, ts)
	loginAs(t, second, "u1", domain.RoleUser)

	// The first socket is closed by the takeover.
	require.NoError(t, first.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := first.ReadMessage()
	assert.Error(t, err)
}

func TestRejectedLoginKeepsSocketOpen(t *testing.T) {
	_, ts, h := testServer(t)
	for i := 0; i < 6; i++ {
		h.RecordConnectionFailure("flappy")
	}

	conn := dialWS(t, ts)
	loginAs(t, conn, "flappy", domain.RoleUser)
	env := readEnvelope(t, conn)
	require.Equal(t, protocol.TypeError, env.Type)

	// The rejection does not drop the socket; another login still works
	// on the same connection.
	loginAs(t, conn, "calm", domain.RoleUser)
	env = readEnvelope(t, conn)
	assert.Equal(t, protocol.TypeWelcome, env.Type)
}
