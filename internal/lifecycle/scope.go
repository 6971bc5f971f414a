// Package lifecycle ties the resources a component acquires while it is
// active (timers, subscriptions, connections, room memberships) to one
// teardown call.
package lifecycle

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/juju/clock"
)

// Scope collects teardown funcs and runs them once, in reverse order of
// registration. Registering on a closed Scope runs the teardown immediately,
// so a resource acquired after teardown began is never leaked.
//
// The zero value is ready to use.
type Scope struct {
	mu       sync.Mutex
	teardown []func() error
	closed   bool
	err      error
}

// Defer registers fn.
func (s *Scope) Defer(fn func()) {
	s.add(func() error {
		fn()
		return nil
	})
}

// AddTimer stops t on Close.
func (s *Scope) AddTimer(t clock.Timer) {
	s.Defer(func() { t.Stop() })
}

// AddCloser closes c on Close. Its error is reported by Close.
func (s *Scope) AddCloser(c io.Closer) {
	s.add(c.Close)
}

// Context returns a child of parent that is cancelled on Close.
func (s *Scope) Context(parent context.Context) context.Context {
	ctx, cancel := context.WithCancel(parent)
	s.Defer(cancel)
	return ctx
}

func (s *Scope) add(fn func() error) {
	s.mu.Lock()
	if !s.closed {
		s.teardown = append(s.teardown, fn)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	_ = fn()
}

// Close runs every registered teardown once. Later calls return the result
// of the first.
func (s *Scope) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return s.err
	}
	s.closed = true
	teardown := s.teardown
	s.teardown = nil
	s.mu.Unlock()

	var errs []error
	for i := len(teardown) - 1; i >= 0; i-- {
		if err := teardown[i](); err != nil {
			errs = append(errs, err)
		}
	}

	s.mu.Lock()
	s.err = errors.Join(errs...)
	s.mu.Unlock()
	return s.err
}

// Closed reports whether Close has been called.
func (s *Scope) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
