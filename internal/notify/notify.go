// Package notify delivers short user-facing notices (toasts) without ever
// blocking the caller.
package notify

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/fx-desk/internal/logger"
)

//go:generate mockgen -source=notify.go -destination=../mock/notifier_mock.go -package=mock

// Level is the severity of a notice.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notice is one dismissible message.
type Notice struct {
	Level   Level
	Title   string
	Message string
	At      time.Time
}

// Notifier accepts notices. Implementations must return immediately.
type Notifier interface {
	Notify(n Notice)
}

// Info, Success, Warning and Error build notices stamped with the current time.
func Info(msg string) Notice    { return Notice{Level: LevelInfo, Message: msg, At: time.Now()} }
func Success(msg string) Notice { return Notice{Level: LevelSuccess, Message: msg, At: time.Now()} }
func Warning(msg string) Notice { return Notice{Level: LevelWarning, Message: msg, At: time.Now()} }
func Error(msg string) Notice   { return Notice{Level: LevelError, Message: msg, At: time.Now()} }

// Queue is a bounded notice buffer read by the presentation layer. When the
// buffer is full the oldest pending notice is dropped.
type Queue struct {
	ch      chan Notice
	mu      sync.Mutex
	dropped atomic.Int64
}

// NewQueue returns a Queue holding up to size pending notices.
func NewQueue(size int) *Queue {
	if size < 1 {
		size = 1
	}
	return &Queue{ch: make(chan Notice, size)}
}

func (q *Queue) Notify(n Notice) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for {
		select {
		case q.ch <- n:
			return
		default:
		}
		select {
		case <-q.ch:
			q.dropped.Add(1)
		default:
		}
	}
}

// Notices is the channel the UI drains.
func (q *Queue) Notices() <-chan Notice {
	return q.ch
}

// Dropped returns how many notices were discarded because nobody read them.
func (q *Queue) Dropped() int64 {
	return q.dropped.Load()
}

// LogNotifier mirrors notices to the log.
type LogNotifier struct {
	logger *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{logger: log}
}

func (l *LogNotifier) Notify(n Notice) {
	l.logger.Info().
		Str("func", "LogNotifier.Notify").
		Str("notice_level", n.Level.String()).
		Str("title", n.Title).
		Msg(n.Message)
}

type multi []Notifier

func (m multi) Notify(n Notice) {
	for _, target := range m {
		target.Notify(n)
	}
}

// Multi fans a notice out to every target in order.
func Multi(targets ...Notifier) Notifier {
	return multi(targets)
}

// Recorder keeps every notice in memory.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// All returns a copy of the recorded notices.
func (r *Recorder) All() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// Messages returns the recorded notice texts.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.notices))
	for i, n := range r.notices {
		out[i] = n.Message
	}
	return out
}

// Reset forgets the recorded notices.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = nil
}
