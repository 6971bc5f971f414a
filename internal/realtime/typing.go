package realtime

import (
	"sync"
	"time"

	"github.com/juju/clock"
)

// DefaultTypingWindow is how long after the last keystroke the user still
// counts as typing.
const DefaultTypingWindow = 2 * time.Second

// TypingDebouncer turns keystrokes into typing on/off announcements. The
// first keystroke after a silence announces true, and false follows one
// window after the last keystroke. A single timer is reset on every
// keystroke, so a burst of typing yields exactly one true/false pair.
type TypingDebouncer struct {
	clock  clock.Clock
	window time.Duration
	emit   func(isTyping bool)

	mu      sync.Mutex
	timer   clock.Timer
	typing  bool
	stopped bool
	lastKey time.Time
}

// NewTypingDebouncer returns a debouncer calling emit. A non-positive window
// means [DefaultTypingWindow].
func NewTypingDebouncer(clk clock.Clock, window time.Duration, emit func(isTyping bool)) *TypingDebouncer {
	if window <= 0 {
		window = DefaultTypingWindow
	}
	return &TypingDebouncer{clock: clk, window: window, emit: emit}
}

// Keystroke records one keystroke.
func (d *TypingDebouncer) Keystroke() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	d.lastKey = d.clock.Now()
	if d.timer == nil {
		d.timer = d.clock.AfterFunc(d.window, d.expire)
	} else {
		d.timer.Reset(d.window)
	}
	if !d.typing {
		d.typing = true
		d.emit(true)
	}
}

// Done announces false right away if typing was announced, e.g. after the
// message was sent. Later keystrokes start a new burst.
func (d *TypingDebouncer) Done() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	if d.typing && !d.stopped {
		d.typing = false
		d.emit(false)
	}
}

// Stop cancels the pending announcement. Nothing is emitted afterwards.
func (d *TypingDebouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}

// Typing reports whether true was announced without a matching false.
func (d *TypingDebouncer) Typing() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.typing
}

func (d *TypingDebouncer) expire() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.typing || d.stopped {
		return
	}
	// A fire that waited for the lock while a keystroke reset the timer is
	// stale; the reset timer announces false later.
	if d.clock.Now().Sub(d.lastKey) < d.window {
		return
	}
	d.typing = false
	d.emit(false)
}
