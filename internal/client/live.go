package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/fx-desk/internal/config"
	"github.com/MKhiriev/fx-desk/internal/logger"
	"github.com/MKhiriev/fx-desk/internal/notify"
	"github.com/MKhiriev/fx-desk/internal/realtime"
	"github.com/MKhiriev/fx-desk/internal/tui"
	"github.com/MKhiriev/fx-desk/models"
	"github.com/juju/clock"
)

// liveChat owns the realtime channel of the signed-in user. A channel lives
// for one sign-in: it is dialed on SignedIn and closed on SignedOut.
type liveChat struct {
	ctx      context.Context
	url      string
	window   time.Duration
	tokens   realtime.TokenSource
	messages realtime.MessageStore
	notifier notify.Notifier
	clock    clock.Clock
	logger   *logger.Logger

	// newChannel is replaced in tests.
	newChannel func() room

	mu      sync.Mutex
	channel room
	pushes  map[int]func(models.Notification)
	nextID  int
}

// room is the channel as liveChat uses it. *realtime.Channel implements it.
type room interface {
	realtime.Room
	OnNotification(fn func(models.Notification)) (off func())
	Dial(ctx context.Context) error
	Close() error
}

func newLiveChat(ctx context.Context, cfg *config.ClientConfig, tokens realtime.TokenSource, messages realtime.MessageStore, notifier notify.Notifier, log *logger.Logger) *liveChat {
	l := &liveChat{
		ctx:      ctx,
		url:      cfg.Adapter.SocketURL,
		window:   cfg.Chat.TypingWindow,
		tokens:   tokens,
		messages: messages,
		notifier: notifier,
		clock:    clock.WallClock,
		logger:   log.Component("live-chat"),
	}
	l.newChannel = func() room {
		return realtime.NewChannel(l.url, l.tokens, log,
			realtime.WithClock(l.clock),
			realtime.WithNotifier(l.notifier),
		)
	}
	return l
}

// SignedIn implements tui.SessionHooks.
func (l *liveChat) SignedIn(role models.Role) {
	l.mu.Lock()
	prev := l.channel
	ch := l.newChannel()
	l.channel = ch
	l.mu.Unlock()

	if prev != nil {
		go l.closeChannel(prev)
	}
	ch.OnNotification(l.deliver)
	if err := ch.Dial(l.ctx); err != nil {
		l.logger.Err(err).Str("func", "liveChat.SignedIn").Msg("error dialing realtime channel")
		return
	}
	l.logger.Debug().Str("func", "liveChat.SignedIn").Str("role", string(role)).Msg("realtime channel dialing")
}

// SignedOut implements tui.SessionHooks. The channel is closed in the
// background so the UI does not wait for the socket to drain.
func (l *liveChat) SignedOut() {
	l.mu.Lock()
	ch := l.channel
	l.channel = nil
	l.mu.Unlock()

	if ch != nil {
		go l.closeChannel(ch)
	}
}

// Open implements tui.Chats.
func (l *liveChat) Open(ctx context.Context, ticketID string) (tui.Chat, error) {
	l.mu.Lock()
	ch := l.channel
	l.mu.Unlock()

	if ch == nil {
		return nil, realtime.ErrNotConnected
	}

	chat := realtime.NewTicketChat(ticketID, l.messages, ch, l.clock, l.window, l.logger)
	if err := chat.Open(ctx); err != nil {
		chat.Close()
		return nil, fmt.Errorf("error opening ticket chat: %w", err)
	}
	return chat, nil
}

// SubscribeNotifications implements tui.NotificationPush. fn is called for
// every notification pushed over whichever channel is live.
func (l *liveChat) SubscribeNotifications(fn func(models.Notification)) (unsubscribe func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.pushes == nil {
		l.pushes = make(map[int]func(models.Notification))
	}
	id := l.nextID
	l.nextID++
	l.pushes[id] = fn

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.pushes, id)
	}
}

// deliver shows a pushed notification as a notice and hands it to the
// subscribers.
func (l *liveChat) deliver(n models.Notification) {
	h := n.Header()
	if l.notifier != nil {
		l.notifier.Notify(notify.Notice{Level: notify.LevelInfo, Title: h.Title, Message: h.Message, At: l.clock.Now()})
	}

	l.mu.Lock()
	subs := make([]func(models.Notification), 0, len(l.pushes))
	for _, fn := range l.pushes {
		subs = append(subs, fn)
	}
	l.mu.Unlock()

	for _, fn := range subs {
		fn(n)
	}
}

func (l *liveChat) close() {
	l.mu.Lock()
	ch := l.channel
	l.channel = nil
	l.mu.Unlock()

	if ch != nil {
		l.closeChannel(ch)
	}
}

func (l *liveChat) closeChannel(ch room) {
	if err := ch.Close(); err != nil {
		l.logger.Err(err).Str("func", "liveChat.closeChannel").Msg("error closing realtime channel")
	}
}
