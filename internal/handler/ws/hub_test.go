package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/fx-desk/internal/backend"
	"github.com/MKhiriev/fx-desk/internal/logger"
	"github.com/MKhiriev/fx-desk/internal/utils"
	"github.com/MKhiriev/fx-desk/models"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSignKey = "test-sign-key"
	testIssuer  = "fx-desk-test"
)

// fakeRooms maps ticket IDs to their owners. Staff may join every room.
type fakeRooms map[string]string

func (f fakeRooms) CanJoin(v backend.Viewer, ticketID string) bool {
	owner, ok := f[ticketID]
	return ok && (v.Role != models.RoleClient || owner == v.UserID)
}

func newTestHub(t *testing.T) (*Hub, string) {
	t.Helper()
	hub := NewHub(fakeRooms{"t1": "u-client"}, testSignKey, testIssuer, logger.Nop())
	srv := httptest.NewServer(hub)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func token(t *testing.T, userID string, role models.Role, name string) string {
	t.Helper()
	tok, err := utils.GenerateJWTToken(testIssuer, userID, role, name, time.Hour, testSignKey)
	require.NoError(t, err)
	return tok
}

func write(t *testing.T, conn *websocket.Conn, event string, data any) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(models.SocketFrame{Event: event, Data: raw}))
}

func read(t *testing.T, conn *websocket.Conn) models.SocketFrame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var frame models.SocketFrame
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

// connect dials and authenticates with the handshake frame.
func connect(t *testing.T, url, tok string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	write(t, conn, models.EventAuth, models.SocketHandshake{Auth: models.SocketAuth{Token: tok}})
	return conn
}

func joinRoom(t *testing.T, conn *websocket.Conn, ticketID string) {
	t.Helper()
	write(t, conn, models.EventJoinTicket, models.RoomRequest{TicketID: ticketID})
	frame := read(t, conn)
	require.Equal(t, models.EventJoinedTicket, frame.Event, string(frame.Data))
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

// ── Authentication ───────────────────────────────────────────────────────────

func TestHub_RejectsMissingAuthFrame(t *testing.T) {
	_, url := newTestHub(t)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	write(t, conn, models.EventJoinTicket, models.RoomRequest{TicketID: "t1"})

	frame := read(t, conn)
	assert.Equal(t, models.EventError, frame.Event)
	assert.Equal(t, "unauthorized", decode[models.SocketError](t, frame.Data).Message)

	var next models.SocketFrame
	assert.Error(t, conn.ReadJSON(&next), "connection closes after rejection")
}

func TestHub_RejectsBadToken(t *testing.T) {
	_, url := newTestHub(t)

	conn := connect(t, url, "not-a-token")
	assert.Equal(t, models.EventError, read(t, conn).Event)
}

func TestHub_AcceptsBearerHeader(t *testing.T) {
	_, url := newTestHub(t)

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token(t, "u-client", models.RoleClient, "Dana"))
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	defer conn.Close()

	write(t, conn, models.EventAuth, models.SocketHandshake{})
	joinRoom(t, conn, "t1")
}

// ── Rooms ────────────────────────────────────────────────────────────────────

func TestHub_JoinForbiddenRoom(t *testing.T) {
	_, url := newTestHub(t)
	conn := connect(t, url, token(t, "u-other", models.RoleClient, "Eve"))

	write(t, conn, models.EventJoinTicket, models.RoomRequest{TicketID: "t1"})

	frame := read(t, conn)
	assert.Equal(t, models.EventError, frame.Event)
	assert.Equal(t, "access denied", decode[models.SocketError](t, frame.Data).Message)
}

func TestHub_TypingRelayedWithSenderName(t *testing.T) {
	_, url := newTestHub(t)
	owner := connect(t, url, token(t, "u-client", models.RoleClient, "Dana"))
	agent := connect(t, url, token(t, "u-agent", models.RoleAgent, "Alex Support"))
	joinRoom(t, owner, "t1")
	joinRoom(t, agent, "t1")

	write(t, agent, models.EventTyping, models.TypingEvent{TicketID: "t1", UserLabel: "spoofed", IsTyping: true})

	frame := read(t, owner)
	require.Equal(t, models.EventUserTyping, frame.Event)
	ev := decode[models.TypingEvent](t, frame.Data)
	assert.Equal(t, "Alex Support", ev.UserLabel)
	assert.True(t, ev.IsTyping)
}

func TestHub_MessageRelayedToOthers(t *testing.T) {
	_, url := newTestHub(t)
	owner := connect(t, url, token(t, "u-client", models.RoleClient, "Dana"))
	agent := connect(t, url, token(t, "u-agent", models.RoleAgent, "Alex"))
	joinRoom(t, owner, "t1")
	joinRoom(t, agent, "t1")

	write(t, owner, models.EventSendMessage, models.ChatMessage{ID: "m1", TicketID: "t1", Text: "hello"})

	frame := read(t, agent)
	require.Equal(t, models.EventNewMessage, frame.Event)
	assert.Equal(t, "hello", decode[models.ChatMessage](t, frame.Data).Text)
}

func TestHub_SendOutsideRoom(t *testing.T) {
	_, url := newTestHub(t)
	conn := connect(t, url, token(t, "u-agent", models.RoleAgent, "Alex"))

	write(t, conn, models.EventSendMessage, models.ChatMessage{TicketID: "t1", Text: "hi"})

	frame := read(t, conn)
	assert.Equal(t, models.EventError, frame.Event)
	assert.Equal(t, "not in room", decode[models.SocketError](t, frame.Data).Message)
}

func TestHub_LeaveStopsRelay(t *testing.T) {
	_, url := newTestHub(t)
	owner := connect(t, url, token(t, "u-client", models.RoleClient, "Dana"))
	agent := connect(t, url, token(t, "u-agent", models.RoleAgent, "Alex"))
	joinRoom(t, owner, "t1")
	joinRoom(t, agent, "t1")

	write(t, owner, models.EventLeaveTicket, models.RoomRequest{TicketID: "t1"})
	assert.Equal(t, models.EventLeftTicket, read(t, owner).Event)

	write(t, agent, models.EventSendMessage, models.ChatMessage{TicketID: "t1", Text: "anyone?"})
	write(t, owner, "bogus", nil)

	frame := read(t, owner)
	assert.Equal(t, models.EventError, frame.Event, "the relayed message must not arrive first")
	assert.Contains(t, decode[models.SocketError](t, frame.Data).Message, "unknown event")
}

// ── Notifications ────────────────────────────────────────────────────────────

func TestHub_NotifyReachesUserSockets(t *testing.T) {
	hub, url := newTestHub(t)
	conn := connect(t, url, token(t, "u-client", models.RoleClient, "Dana"))
	joinRoom(t, conn, "t1") // the ack proves the socket is registered

	hub.Notify(backend.Delivery{
		UserID: "u-client",
		Notification: backend.NotificationRecord{
			NotificationHeader: models.NotificationHeader{ID: "n1", Title: "Deposit approved"},
			Type:               models.NotificationDeposit,
			Data:               map[string]any{"depositId": "d1", "amount": 250},
		},
	})

	frame := read(t, conn)
	require.Equal(t, models.EventNotification, frame.Event)
	n, err := models.DecodeNotification(frame.Data)
	require.NoError(t, err)
	dep, ok := n.(models.DepositNotification)
	require.True(t, ok)
	assert.Equal(t, "d1", dep.DepositID)
	assert.Equal(t, "Deposit approved", dep.Title)
}
