package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// mailbox hands values from background goroutines to the Bubble Tea loop.
// put never blocks and keeps only the latest undelivered value, so an
// observer called from inside Update cannot deadlock the program.
type mailbox[T any] struct {
	ch   chan T
	done chan struct{}
	once *sync.Once
}

func newMailbox[T any]() mailbox[T] {
	return mailbox[T]{
		ch:   make(chan T, 1),
		done: make(chan struct{}),
		once: &sync.Once{},
	}
}

func (m mailbox[T]) put(v T) {
	for {
		select {
		case <-m.done:
			return
		case m.ch <- v:
			return
		default:
		}
		select {
		case <-m.ch:
		default:
		}
	}
}

// next waits for the next value and wraps it into a message. The command
// yields nil once the mailbox is closed.
func (m mailbox[T]) next(wrap func(T) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		select {
		case v := <-m.ch:
			return wrap(v)
		case <-m.done:
			return nil
		}
	}
}

func (m mailbox[T]) close() {
	m.once.Do(func() { close(m.done) })
}
