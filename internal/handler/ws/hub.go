// Package ws is the realtime side of the development server: a websocket
// hub that authenticates sockets, keeps ticket rooms and relays typing,
// chat and notification events.
package ws

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/MKhiriev/fx-desk/internal/backend"
	"github.com/MKhiriev/fx-desk/internal/logger"
	"github.com/MKhiriev/fx-desk/internal/utils"
	"github.com/MKhiriev/fx-desk/models"
	"github.com/gorilla/websocket"
)

const (
	authWait  = 10 * time.Second
	writeWait = 10 * time.Second
	pongWait  = 60 * time.Second
)

// Rooms decides who may join a ticket room. *backend.Backend implements it.
type Rooms interface {
	CanJoin(v backend.Viewer, ticketID string) bool
}

// Hub is the root websocket transport handler.
//
// Every socket must authenticate with its first frame (an auth event); a
// bearer header is used when the frame carries no token. Room membership is
// checked against [Rooms] on join.
type Hub struct {
	rooms    Rooms
	signKey  string
	issuer   string
	upgrader websocket.Upgrader

	mu      sync.Mutex
	members map[string]map[*client]struct{} // ticket ID
	users   map[string]map[*client]struct{} // user ID
	closed  bool

	logger *logger.Logger
}

// NewHub returns a hub validating session tokens with signKey and issuer.
func NewHub(rooms Rooms, signKey, issuer string, log *logger.Logger) *Hub {
	log.Debug().Msg("websocket hub created")
	return &Hub{
		rooms:   rooms,
		signKey: signKey,
		issuer:  issuer,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		members: make(map[string]map[*client]struct{}),
		users:   make(map[string]map[*client]struct{}),
		logger:  log.Component("ws"),
	}
}

type client struct {
	conn   *websocket.Conn
	viewer backend.Viewer
	rooms  map[string]struct{}

	writeMu sync.Mutex
}

func (c *client) send(event string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(models.SocketFrame{Event: event, Data: raw})
}

func (c *client) fail(message string) {
	_ = c.send(models.EventError, models.SocketError{Message: message})
}

var errUnauthorized = errors.New("unauthorized")

// ServeHTTP upgrades the request and serves the socket until it drops.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Err(err).Str("func", "Hub.ServeHTTP").Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	c := &client{conn: conn, rooms: make(map[string]struct{})}

	viewer, err := h.authenticate(conn, r.Header.Get("Authorization"))
	if err != nil {
		log.Warn().Err(err).Str("func", "Hub.ServeHTTP").Msg("socket rejected")
		c.fail(errUnauthorized.Error())
		return
	}
	c.viewer = viewer

	if !h.register(c) {
		return
	}
	defer h.unregister(c)

	log.Info().Str("user_id", viewer.UserID).Str("role", string(viewer.Role)).Msg("socket connected")

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPingHandler(func(data string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		err := conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(writeWait))
		if errors.Is(err, websocket.ErrCloseSent) {
			return nil
		}
		return err
	})

	for {
		var frame models.SocketFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Str("func", "Hub.ServeHTTP").Msg("socket read failed")
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		h.handle(c, frame)
	}
}

// authenticate reads the auth frame and validates its token.
func (h *Hub) authenticate(conn *websocket.Conn, authHeader string) (backend.Viewer, error) {
	_ = conn.SetReadDeadline(time.Now().Add(authWait))

	var frame models.SocketFrame
	if err := conn.ReadJSON(&frame); err != nil {
		return backend.Viewer{}, err
	}
	if frame.Event != models.EventAuth {
		return backend.Viewer{}, errUnauthorized
	}

	var hs models.SocketHandshake
	_ = json.Unmarshal(frame.Data, &hs)
	token := hs.Auth.Token
	if token == "" {
		var err error
		if token, err = utils.ParseBearerToken(authHeader); err != nil {
			return backend.Viewer{}, errUnauthorized
		}
	}

	claims, err := utils.ValidateAndParseJWTToken(token, h.signKey, h.issuer)
	if err != nil {
		return backend.Viewer{}, err
	}
	return backend.Viewer{UserID: claims.Subject, Name: claims.Name, Role: claims.Role}, nil
}

func (h *Hub) handle(c *client, frame models.SocketFrame) {
	switch frame.Event {
	case models.EventJoinTicket:
		var req models.RoomRequest
		if err := json.Unmarshal(frame.Data, &req); err != nil || req.TicketID == "" {
			c.fail("invalid room request")
			return
		}
		if !h.rooms.CanJoin(c.viewer, req.TicketID) {
			c.fail("access denied")
			return
		}
		h.join(c, req.TicketID)
		_ = c.send(models.EventJoinedTicket, req)

	case models.EventLeaveTicket:
		var req models.RoomRequest
		if err := json.Unmarshal(frame.Data, &req); err != nil {
			c.fail("invalid room request")
			return
		}
		h.leave(c, req.TicketID)
		_ = c.send(models.EventLeftTicket, req)

	case models.EventTyping:
		var ev models.TypingEvent
		if err := json.Unmarshal(frame.Data, &ev); err != nil {
			c.fail("invalid typing event")
			return
		}
		ev.UserLabel = c.viewer.Name
		h.broadcast(c, ev.TicketID, models.EventUserTyping, ev)

	case models.EventSendMessage:
		var msg models.ChatMessage
		if err := json.Unmarshal(frame.Data, &msg); err != nil {
			c.fail("invalid message")
			return
		}
		h.broadcast(c, msg.TicketID, models.EventNewMessage, msg)

	default:
		c.fail("unknown event " + frame.Event)
	}
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	if h.users[c.viewer.UserID] == nil {
		h.users[c.viewer.UserID] = make(map[*client]struct{})
	}
	h.users[c.viewer.UserID][c] = struct{}{}
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for room := range c.rooms {
		h.leaveLocked(c, room)
	}
	delete(h.users[c.viewer.UserID], c)
	if len(h.users[c.viewer.UserID]) == 0 {
		delete(h.users, c.viewer.UserID)
	}
}

func (h *Hub) join(c *client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.members[room] == nil {
		h.members[room] = make(map[*client]struct{})
	}
	h.members[room][c] = struct{}{}
	c.rooms[room] = struct{}{}
}

func (h *Hub) leave(c *client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(c, room)
}

func (h *Hub) leaveLocked(c *client, room string) {
	delete(c.rooms, room)
	delete(h.members[room], c)
	if len(h.members[room]) == 0 {
		delete(h.members, room)
	}
}

// broadcast sends to every member of room except the sender. A sender that
// is not in the room gets an error instead.
func (h *Hub) broadcast(from *client, room, event string, data any) {
	h.mu.Lock()
	_, joined := h.members[room][from]
	targets := make([]*client, 0, len(h.members[room]))
	for c := range h.members[room] {
		if c != from {
			targets = append(targets, c)
		}
	}
	h.mu.Unlock()

	if !joined {
		from.fail("not in room")
		return
	}
	for _, c := range targets {
		if err := c.send(event, data); err != nil {
			h.logger.Debug().Err(err).Str("func", "Hub.broadcast").Str("event", event).Msg("failed to relay event")
		}
	}
}

// Notify pushes a stored notification to every socket of its user.
func (h *Hub) Notify(d backend.Delivery) {
	h.mu.Lock()
	targets := make([]*client, 0, len(h.users[d.UserID]))
	for c := range h.users[d.UserID] {
		targets = append(targets, c)
	}
	h.mu.Unlock()

	for _, c := range targets {
		if err := c.send(models.EventNotification, d.Notification); err != nil {
			h.logger.Debug().Err(err).Str("func", "Hub.Notify").Msg("failed to push notification")
		}
	}
}

// Close drops every socket. Hijacked connections are not closed by
// http.Server.Shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	conns := make([]*websocket.Conn, 0)
	for _, set := range h.users {
		for c := range set {
			conns = append(conns, c.conn)
		}
	}
	h.mu.Unlock()

	for _, conn := range conns {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"), time.Now().Add(writeWait))
		_ = conn.Close()
	}
	h.logger.Info().Int("sockets", len(conns)).Msg("websocket hub closed")
}
