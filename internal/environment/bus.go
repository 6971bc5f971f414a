// Package environment tracks the two environmental signals the synchronizer
// reacts to: backend connectivity and whether the user is looking at the
// client.
package environment

import (
	"sync"

	"github.com/MKhiriev/fx-desk/internal/logger"
	"github.com/juju/pubsub/v2"
)

// Event is a change of an environmental signal.
type Event string

const (
	Online  Event = "online"
	Offline Event = "offline"
	Visible Event = "visible"
	Hidden  Event = "hidden"
)

const (
	connectivityTopic = "environment.connectivity"
	visibilityTopic   = "environment.visibility"
)

func (e Event) topic() string {
	if e == Online || e == Offline {
		return connectivityTopic
	}
	return visibilityTopic
}

// Bus publishes environment transitions. Subscribers are called
// asynchronously; a subscriber sees its events in publish order.
//
// A fresh Bus assumes the client is online and visible.
type Bus struct {
	hub *pubsub.SimpleHub

	mu      sync.RWMutex
	online  bool
	visible bool

	logger *logger.Logger
}

// NewBus returns a Bus in the online and visible state.
func NewBus(log *logger.Logger) *Bus {
	return &Bus{
		hub:     pubsub.NewSimpleHub(&pubsub.SimpleHubConfig{}),
		online:  true,
		visible: true,
		logger:  log,
	}
}

// Publish records e and delivers it to subscribers. Publishing the state the
// bus is already in is a no-op, so subscribers only ever see transitions.
// It reports whether e was a transition.
func (b *Bus) Publish(e Event) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch e {
	case Online, Offline:
		if b.online == (e == Online) {
			return false
		}
		b.online = e == Online
	case Visible, Hidden:
		if b.visible == (e == Visible) {
			return false
		}
		b.visible = e == Visible
	default:
		b.logger.Warn().Str("func", "Bus.Publish").Str("event", string(e)).Msg("unknown environment event")
		return false
	}

	b.logger.Debug().Str("func", "Bus.Publish").Str("event", string(e)).Msg("environment changed")
	_ = b.hub.Publish(e.topic(), e)
	return true
}

// Subscribe registers fn for every event. The returned func unsubscribes and
// may be called any number of times.
func (b *Bus) Subscribe(fn func(Event)) (unsubscribe func()) {
	handler := func(_ string, data interface{}) {
		if e, ok := data.(Event); ok {
			fn(e)
		}
	}

	unsubConnectivity := b.hub.Subscribe(connectivityTopic, handler)
	unsubVisibility := b.hub.Subscribe(visibilityTopic, handler)

	var once sync.Once
	return func() {
		once.Do(func() {
			unsubConnectivity()
			unsubVisibility()
		})
	}
}

// IsOnline reports the last published connectivity state.
func (b *Bus) IsOnline() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.online
}

// IsVisible reports the last published visibility state.
func (b *Bus) IsVisible() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.visible
}
