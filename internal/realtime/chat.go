package realtime

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/fx-desk/internal/lifecycle"
	"github.com/MKhiriev/fx-desk/internal/logger"
	"github.com/MKhiriev/fx-desk/models"
	"github.com/juju/clock"
)

// MessageStore persists and lists ticket messages. adapter.ServerAdapter
// implements it.
type MessageStore interface {
	TicketMessages(ctx context.Context, ticketID string) ([]models.ChatMessage, error)
	PostTicketMessage(ctx context.Context, ticketID, text string) (models.ChatMessage, error)
}

// Room is the part of [Channel] a chat needs.
type Room interface {
	Join(ticketID string) error
	Leave() error
	OnMessage(fn func(models.ChatMessage)) (off func())
	OnTyping(fn func(models.TypingEvent)) (off func())
	Typing(ticketID string, isTyping bool)
	SendMessage(msg models.ChatMessage)
}

// ChatView is what observers of a [TicketChat] render.
type ChatView struct {
	TicketID    string
	Messages    []models.ChatMessage
	TypingLabel string
}

// TicketChat is the live conversation of one ticket. Messages arrive from
// the history endpoint, from the push channel and from the user's own
// sends; each message ID is shown once, in arrival order.
type TicketChat struct {
	ticketID string
	store    MessageStore
	room     Room
	clock    clock.Clock
	window   time.Duration
	logger   *logger.Logger

	typing *TypingDebouncer
	scope  lifecycle.Scope

	mu          sync.Mutex
	messages    []models.ChatMessage
	seen        map[string]struct{}
	typingLabel string
	labelTimer  clock.Timer
	observers   map[int]func(ChatView)
	nextObs     int
}

// NewTicketChat returns a chat for ticketID. Nothing is loaded or joined
// until Open.
func NewTicketChat(ticketID string, store MessageStore, room Room, clk clock.Clock, window time.Duration, log *logger.Logger) *TicketChat {
	if window <= 0 {
		window = DefaultTypingWindow
	}
	c := &TicketChat{
		ticketID:  ticketID,
		store:     store,
		room:      room,
		clock:     clk,
		window:    window,
		logger:    log.Component("ticket-chat"),
		seen:      make(map[string]struct{}),
		observers: make(map[int]func(ChatView)),
	}
	c.typing = NewTypingDebouncer(clk, window, func(isTyping bool) {
		room.Typing(ticketID, isTyping)
	})
	return c
}

// Open subscribes to pushed events, joins the ticket room and loads the
// history. Close releases all of it.
func (c *TicketChat) Open(ctx context.Context) error {
	if c.ticketID == "" {
		return ErrNoTicket
	}

	c.scope.Defer(c.room.OnMessage(c.receive))
	c.scope.Defer(c.room.OnTyping(c.receiveTyping))
	if err := c.room.Join(c.ticketID); err != nil {
		return fmt.Errorf("error joining ticket room: %w", err)
	}
	c.scope.Defer(func() {
		if err := c.room.Leave(); err != nil {
			c.logger.Debug().Err(err).Str("func", "TicketChat.Close").Msg("failed to leave ticket room")
		}
	})
	c.scope.Defer(c.typing.Stop)
	c.scope.Defer(c.stopLabelTimer)

	return c.Reload(ctx)
}

// Reload fetches the history and merges it with what is already shown.
func (c *TicketChat) Reload(ctx context.Context) error {
	history, err := c.store.TicketMessages(ctx, c.ticketID)
	if err != nil {
		return fmt.Errorf("error loading ticket messages: %w", err)
	}

	c.mu.Lock()
	merged := make([]models.ChatMessage, 0, len(history)+len(c.messages))
	seen := make(map[string]struct{}, len(history)+len(c.messages))
	for _, list := range [][]models.ChatMessage{history, c.messages} {
		for _, m := range list {
			if _, dup := seen[m.ID]; dup && m.ID != "" {
				continue
			}
			seen[m.ID] = struct{}{}
			merged = append(merged, m)
		}
	}
	c.messages = merged
	c.seen = seen
	c.mu.Unlock()

	c.emit()
	return nil
}

// Send persists text and then pushes the stored message to the room.
func (c *TicketChat) Send(ctx context.Context, text string) (models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.ChatMessage{}, ErrEmptyMessage
	}

	msg, err := c.store.PostTicketMessage(ctx, c.ticketID, text)
	if err != nil {
		return models.ChatMessage{}, fmt.Errorf("error sending message: %w", err)
	}
	if msg.TicketID == "" {
		msg.TicketID = c.ticketID
	}

	c.typing.Done()
	c.room.SendMessage(msg)
	c.append(msg)
	return msg, nil
}

// Keystroke feeds the typing debouncer.
func (c *TicketChat) Keystroke() {
	c.typing.Keystroke()
}

// View returns the current conversation.
func (c *TicketChat) View() ChatView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

// Subscribe registers fn for every change of the view.
func (c *TicketChat) Subscribe(fn func(ChatView)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextObs
	c.nextObs++
	c.observers[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.observers, id)
	}
}

// Close leaves the room and drops every subscription and timer.
func (c *TicketChat) Close() {
	c.mu.Lock()
	c.observers = make(map[int]func(ChatView))
	c.mu.Unlock()

	_ = c.scope.Close()
}

func (c *TicketChat) receive(msg models.ChatMessage) {
	if msg.TicketID != "" && msg.TicketID != c.ticketID {
		return
	}
	c.append(msg)
}

func (c *TicketChat) append(msg models.ChatMessage) {
	c.mu.Lock()
	if msg.ID != "" {
		if _, dup := c.seen[msg.ID]; dup {
			c.mu.Unlock()
			return
		}
		c.seen[msg.ID] = struct{}{}
	}
	c.messages = append(c.messages, msg)
	c.mu.Unlock()

	c.emit()
}

// receiveTyping keeps the latest announcement. A label expires by itself one
// window after it was set, in case the matching false never arrives.
func (c *TicketChat) receiveTyping(ev models.TypingEvent) {
	if ev.TicketID != "" && ev.TicketID != c.ticketID {
		return
	}

	c.mu.Lock()
	if ev.IsTyping {
		c.typingLabel = typingLabel(ev.UserLabel)
		if c.labelTimer == nil {
			c.labelTimer = c.clock.AfterFunc(c.window, c.expireLabel)
		} else {
			c.labelTimer.Reset(c.window)
		}
	} else {
		c.typingLabel = ""
		if c.labelTimer != nil {
			c.labelTimer.Stop()
		}
	}
	c.mu.Unlock()

	c.emit()
}

func (c *TicketChat) expireLabel() {
	c.mu.Lock()
	changed := c.typingLabel != ""
	c.typingLabel = ""
	c.mu.Unlock()

	if changed {
		c.emit()
	}
}

func (c *TicketChat) stopLabelTimer() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.labelTimer != nil {
		c.labelTimer.Stop()
	}
}

func (c *TicketChat) viewLocked() ChatView {
	return ChatView{
		TicketID:    c.ticketID,
		Messages:    append([]models.ChatMessage(nil), c.messages...),
		TypingLabel: c.typingLabel,
	}
}

func (c *TicketChat) emit() {
	c.mu.Lock()
	view := c.viewLocked()
	observers := make([]func(ChatView), 0, len(c.observers))
	for _, fn := range c.observers {
		observers = append(observers, fn)
	}
	c.mu.Unlock()

	for _, fn := range observers {
		fn(view)
	}
}

func typingLabel(user string) string {
	if user == "" {
		return "Someone is typing..."
	}
	return user + " is typing..."
}
