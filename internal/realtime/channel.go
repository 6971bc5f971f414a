// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package realtime is the client side of the chat push connection: a
// reconnecting websocket [Channel], the [TypingDebouncer] and the
// per-ticket [TicketChat] built on both.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/MKhiriev/fx-desk/internal/logger"
	"github.com/MKhiriev/fx-desk/internal/notify"
	"github.com/MKhiriev/fx-desk/models"
	"github.com/gorilla/websocket"
	"github.com/juju/clock"
	"github.com/sethvargo/go-retry"
)

const (
	handshakeTimeout = 10 * time.Second
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = pongWait * 9 / 10

	reconnectBase = 500 * time.Millisecond
	reconnectCap  = 30 * time.Second
)

// ConnectivityMessage is the notice shown when the chat connection drops.
const ConnectivityMessage = "Live chat connection lost. Reconnecting..."

// State is the connection state of a [Channel].
type State int

const (
	Disconnected State = iota
	Connecting
	Connected
	JoinedRoom
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case JoinedRoom:
		return "joined-room"
	default:
		return "unknown"
	}
}

// Handler receives the raw payload of an inbound event.
type Handler func(data json.RawMessage)

// TokenSource yields the bearer token the channel authenticates with.
// *session.Session implements it.
type TokenSource interface {
	Token(ctx context.Context) (string, models.Role)
}

// Option configures a [Channel].
type Option func(*Channel)

// WithClock replaces the wall clock used for reconnect waits.
func WithClock(clk clock.Clock) Option {
	return func(c *Channel) { c.clock = clk }
}

// WithBackoff replaces the reconnect backoff. newBackoff is called once per
// outage.
func WithBackoff(newBackoff func() retry.Backoff) Option {
	return func(c *Channel) { c.newBackoff = newBackoff }
}

// WithNotifier sets where connectivity notices go.
func WithNotifier(n notify.Notifier) Option {
	return func(c *Channel) { c.notifier = n }
}

// DefaultBackoff is a capped exponential backoff with 20% jitter and no
// retry limit.
func DefaultBackoff() retry.Backoff {
	b := retry.NewExponential(reconnectBase)
	b = retry.WithJitterPercent(20, b)
	return retry.WithCappedDuration(reconnectCap, b)
}

// Channel is a websocket connection that reconnects by itself. The token is
// sent both as a bearer header and as the first frame. After a reconnect the
// last joined room is joined again without telling anybody.
type Channel struct {
	url        string
	tokens     TokenSource
	dialer     *websocket.Dialer
	clock      clock.Clock
	newBackoff func() retry.Backoff
	notifier   notify.Notifier
	logger     *logger.Logger

	mu       sync.Mutex
	state    State
	conn     *websocket.Conn
	room     string
	started  bool
	closed   bool
	outage   bool
	cancel   context.CancelFunc
	done     chan struct{}
	handlers map[string]map[int]Handler
	nextID   int

	writeMu sync.Mutex
}

// NewChannel returns a disconnected channel for url.
func NewChannel(url string, tokens TokenSource, log *logger.Logger, opts ...Option) *Channel {
	c := &Channel{
		url:        url,
		tokens:     tokens,
		dialer:     &websocket.Dialer{HandshakeTimeout: handshakeTimeout, Proxy: http.ProxyFromEnvironment},
		clock:      clock.WallClock,
		newBackoff: DefaultBackoff,
		logger:     log.Component("realtime"),
		handlers:   make(map[string]map[int]Handler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dial starts connecting in the background and keeps the connection up until
// Close or until ctx is done. Failures are reported through the error event
// and the notifier, never returned.
func (c *Channel) Dial(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.started {
		return nil
	}

	ctx, c.cancel = context.WithCancel(ctx)
	c.started = true
	c.done = make(chan struct{})
	go c.run(ctx)
	return nil
}

// State returns the current connection state.
func (c *Channel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Room returns the ticket room the channel is (or will be) joined to.
func (c *Channel) Room() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.room
}

// On registers fn for event. The returned func unregisters it.
func (c *Channel) On(event string, fn Handler) (off func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.handlers[event] == nil {
		c.handlers[event] = make(map[int]Handler)
	}
	id := c.nextID
	c.nextID++
	c.handlers[event][id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.handlers[event], id)
	}
}

// OnMessage registers fn for pushed chat messages.
func (c *Channel) OnMessage(fn func(models.ChatMessage)) (off func()) {
	return c.On(models.EventNewMessage, func(data json.RawMessage) {
		var msg models.ChatMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.logger.Warn().Err(err).Str("func", "Channel.OnMessage").Msg("malformed newMessage payload")
			return
		}
		fn(msg)
	})
}

// OnTyping registers fn for typing indicators of other participants.
func (c *Channel) OnTyping(fn func(models.TypingEvent)) (off func()) {
	return c.On(models.EventUserTyping, func(data json.RawMessage) {
		var ev models.TypingEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			c.logger.Warn().Err(err).Str("func", "Channel.OnTyping").Msg("malformed userTyping payload")
			return
		}
		fn(ev)
	})
}

// OnNotification registers fn for notifications the backend pushes to the
// signed-in user. Kinds this client does not know are dropped.
func (c *Channel) OnNotification(fn func(models.Notification)) (off func()) {
	return c.On(models.EventNotification, func(data json.RawMessage) {
		n, err := models.DecodeNotification(data)
		if err != nil {
			c.logger.Warn().Err(err).Str("func", "Channel.OnNotification").Msg("undecodable notification payload")
			return
		}
		fn(n)
	})
}

// Join moves the channel into the room of ticketID, leaving the previous
// room. While disconnected the room is remembered and joined on connect.
func (c *Channel) Join(ticketID string) error {
	if ticketID == "" {
		return ErrNoTicket
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	prev := c.room
	c.room = ticketID
	conn := c.conn
	c.mu.Unlock()

	if conn == nil {
		return nil
	}
	if prev != "" && prev != ticketID {
		c.emit(conn, models.EventLeaveTicket, models.RoomRequest{TicketID: prev})
	}
	if err := c.send(conn, models.EventJoinTicket, models.RoomRequest{TicketID: ticketID}); err != nil {
		return err
	}
	c.setState(conn, JoinedRoom)
	return nil
}

// Leave leaves the current room, if any.
func (c *Channel) Leave() error {
	c.mu.Lock()
	room := c.room
	c.room = ""
	conn := c.conn
	c.mu.Unlock()

	if conn == nil || room == "" {
		return nil
	}
	if err := c.send(conn, models.EventLeaveTicket, models.RoomRequest{TicketID: room}); err != nil {
		return err
	}
	c.setState(conn, Connected)
	return nil
}

// Typing announces that the user started or stopped typing in ticketID.
func (c *Channel) Typing(ticketID string, isTyping bool) {
	c.publish(models.EventTyping, models.TypingEvent{TicketID: ticketID, IsTyping: isTyping})
}

// SendMessage pushes a message that was already persisted to the other
// participants of its room.
func (c *Channel) SendMessage(msg models.ChatMessage) {
	c.publish(models.EventSendMessage, msg)
}

// Close leaves the room and disconnects. It is safe to call while a dial is
// still in flight and more than once.
func (c *Channel) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	conn := c.conn
	room := c.room
	c.room = ""
	cancel := c.cancel
	done := c.done
	c.mu.Unlock()

	if conn != nil {
		if room != "" {
			c.emit(conn, models.EventLeaveTicket, models.RoomRequest{TicketID: room})
		}
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	}
	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}

	c.mu.Lock()
	c.state = Disconnected
	c.handlers = make(map[string]map[int]Handler)
	c.mu.Unlock()

	c.logger.Debug().Str("func", "Channel.Close").Msg("realtime channel closed")
	return nil
}

// run keeps one connection alive at a time.
func (c *Channel) run(ctx context.Context) {
	defer close(c.done)

	var backoff retry.Backoff
	for {
		conn, unwatch, err := c.dial(ctx)
		if err == nil {
			backoff = nil
			c.serve(ctx, conn)
			unwatch()
		} else if ctx.Err() == nil {
			c.reportError(err)
		}
		if ctx.Err() != nil {
			return
		}

		if backoff == nil {
			backoff = c.newBackoff()
		}
		delay, stop := backoff.Next()
		if stop {
			c.logger.Warn().Str("func", "Channel.run").Msg("giving up reconnecting")
			return
		}
		c.logger.Debug().Str("func", "Channel.run").Dur("delay", delay).Msg("reconnecting")

		select {
		case <-ctx.Done():
			return
		case <-c.clock.After(delay):
		}
	}
}

// dial opens one connection and authenticates it. The returned unwatch
// detaches the close-on-cancel hook from the connection.
func (c *Channel) dial(ctx context.Context) (*websocket.Conn, func() bool, error) {
	c.mu.Lock()
	c.state = Connecting
	c.mu.Unlock()

	token, _ := c.tokens.Token(ctx)
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	// The handshake only honours its own timeout, so closing the raw
	// connection is what aborts an in-flight dial on Close.
	unwatch := func() bool { return false }
	dialer := *c.dialer
	dialer.NetDialContext = func(dctx context.Context, network, addr string) (net.Conn, error) {
		var d net.Dialer
		nc, err := d.DialContext(dctx, network, addr)
		if err != nil {
			return nil, err
		}
		unwatch = context.AfterFunc(ctx, func() { _ = nc.Close() })
		return nc, nil
	}

	fail := func(err error) (*websocket.Conn, func() bool, error) {
		unwatch()
		c.mu.Lock()
		c.state = Disconnected
		c.mu.Unlock()
		return nil, nil, err
	}

	conn, resp, err := dialer.DialContext(ctx, c.url, header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return fail(fmt.Errorf("%w: %w", ErrDial, err))
	}

	if err = c.send(conn, models.EventAuth, models.SocketHandshake{Auth: models.SocketAuth{Token: token}}); err != nil {
		_ = conn.Close()
		return fail(fmt.Errorf("%w: %w", ErrHandshake, err))
	}
	return conn, unwatch, nil
}

// serve runs the read loop of conn until it drops.
func (c *Channel) serve(ctx context.Context, conn *websocket.Conn) {
	c.mu.Lock()
	c.conn = conn
	c.state = Connected
	room := c.room
	restored := c.outage
	c.outage = false
	c.mu.Unlock()

	stop := make(chan struct{})
	defer close(stop)
	go c.ping(conn, stop)

	if room != "" {
		if err := c.send(conn, models.EventJoinTicket, models.RoomRequest{TicketID: room}); err == nil {
			c.setState(conn, JoinedRoom)
		}
	}
	c.logger.Info().Str("func", "Channel.serve").Bool("restored", restored).Msg("realtime connected")
	c.dispatch(models.EventConnect, nil)

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var frame models.SocketFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if ctx.Err() == nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				c.logger.Warn().Err(err).Str("func", "Channel.serve").Msg("realtime connection dropped")
			}
			break
		}
		if frame.Event == models.EventError {
			c.reportServerError(frame.Data)
		}
		c.dispatch(frame.Event, frame.Data)
	}

	_ = conn.Close()
	c.mu.Lock()
	if c.conn == conn {
		c.conn = nil
	}
	c.state = Disconnected
	c.mu.Unlock()
	c.dispatch(models.EventDisconnect, nil)
}

func (c *Channel) ping(conn *websocket.Conn, stop <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				c.logger.Debug().Err(err).Str("func", "Channel.ping").Msg("failed to write ping")
				return
			}
		}
	}
}

// reportError tells the user about the first failure of an outage only.
func (c *Channel) reportError(err error) {
	c.logger.Warn().Err(err).Str("func", "Channel.reportError").Msg("realtime connection failed")

	c.mu.Lock()
	first := !c.outage
	c.outage = true
	c.mu.Unlock()

	payload, _ := json.Marshal(models.SocketError{Message: err.Error()})
	c.dispatch(models.EventError, payload)
	if first && c.notifier != nil {
		c.notifier.Notify(notify.Warning(ConnectivityMessage))
	}
}

func (c *Channel) reportServerError(data json.RawMessage) {
	var se models.SocketError
	_ = json.Unmarshal(data, &se)
	c.logger.Warn().Str("func", "Channel.reportServerError").Str("message", se.Message).Msg("realtime server error")
	if c.notifier != nil {
		c.notifier.Notify(notify.Warning(ConnectivityMessage))
	}
}

func (c *Channel) dispatch(event string, data json.RawMessage) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	handlers := make([]Handler, 0, len(c.handlers[event]))
	for _, h := range c.handlers[event] {
		handlers = append(handlers, h)
	}
	c.mu.Unlock()

	for _, h := range handlers {
		h(data)
	}
}

// setState moves to s if conn is still the live connection.
func (c *Channel) setState(conn *websocket.Conn, s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == conn && !c.closed {
		c.state = s
	}
}

// publish is fire-and-forget: with no connection the event is dropped.
func (c *Channel) publish(event string, data any) {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn == nil {
		c.logger.Debug().Str("func", "Channel.publish").Str("event", event).Msg("not connected, event dropped")
		return
	}
	c.emit(conn, event, data)
}

func (c *Channel) emit(conn *websocket.Conn, event string, data any) {
	if err := c.send(conn, event, data); err != nil {
		c.logger.Warn().Err(err).Str("func", "Channel.emit").Str("event", event).Msg("failed to send event")
	}
}

func (c *Channel) send(conn *websocket.Conn, event string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("error marshaling %s payload: %w", event, err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err = conn.WriteJSON(models.SocketFrame{Event: event, Data: raw}); err != nil {
		return fmt.Errorf("error writing %s frame: %w", event, err)
	}
	return nil
}
