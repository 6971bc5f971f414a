// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package synchronizer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/fx-desk/internal/adapter"
	"github.com/MKhiriev/fx-desk/internal/environment"
	"github.com/MKhiriev/fx-desk/internal/lifecycle"
	"github.com/MKhiriev/fx-desk/internal/logger"
	"github.com/MKhiriev/fx-desk/internal/notify"
	"github.com/MKhiriev/fx-desk/models"
	"github.com/juju/clock"
	"github.com/sethvargo/go-retry"
)

// DefaultInterval is used when auto refresh is on but no interval is set.
const DefaultInterval = 5 * time.Minute

// RestoredMessage is the notice shown when a background refresh succeeds
// after a failure the user has seen.
const RestoredMessage = "Connection restored"

// ErrFetchPanicked wraps a panic recovered from a FetchFunc.
var ErrFetchPanicked = errors.New("fetch panicked")

// FetchFunc loads the current value of a resource. ctx is cancelled when the
// poller closes.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// EventSource delivers environment transitions. [environment.Bus] implements it.
type EventSource interface {
	Subscribe(fn func(environment.Event)) (unsubscribe func())
}

// Options configure a [Poller].
type Options struct {
	// AutoRefresh re-fetches in the background every Interval.
	AutoRefresh bool
	Interval    time.Duration
	// AutoRetry schedules retries of a failed fetch according to Retry.
	AutoRetry bool
	Retry     models.RetryPolicy
	// Countdown runs the 1s display countdown to the next auto refresh.
	Countdown bool
}

// Deps are the collaborators of a [Poller]. Only Clock is required in
// practice; a nil Clock means the wall clock.
type Deps struct {
	Clock    clock.Clock
	Events   EventSource
	Notifier notify.Notifier
	Logger   *logger.Logger
}

// State is what observers of a [Poller] see.
type State[T any] struct {
	Name string
	models.SyncState
	// Snapshot is nil until the first successful fetch.
	Snapshot         *models.ResourceSnapshot[T]
	SecondsToRefresh int
}

// Payload returns the snapshot payload, if there is one.
func (s State[T]) Payload() (T, bool) {
	if s.Snapshot == nil {
		var zero T
		return zero, false
	}
	return s.Snapshot.Payload, true
}

// call is one fetch attempt.
type call struct {
	seq        uint64
	source     models.SnapshotSource
	background bool
	// loading is set for a foreground fetch with nothing on display yet.
	loading bool
}

// Poller keeps one resource fresh. It is a self-contained state machine the
// presentation layer only observes:
//
//	Idle -> Loading -> Ready | Failed
//	Ready -> Refreshing -> Ready | FailedStale
//	Failed -> Loading (manual retry) | Refreshing (auto retry, reconnect)
//
// Every fetch carries a sequence number and a response older than the one
// already applied is discarded, so a slow manual refresh never overwrites a
// newer background result. Failures never replace the snapshot.
//
// Observers are called synchronously and must not call back into the Poller.
type Poller[T any] struct {
	name  string
	fetch FetchFunc[T]
	opts  Options

	clock    clock.Clock
	events   EventSource
	notifier notify.Notifier
	logger   *logger.Logger

	scope lifecycle.Scope

	mu       sync.Mutex
	started  bool
	closed   bool
	ctx      context.Context
	state    models.SyncState
	snapshot *models.ResourceSnapshot[T]

	seq             uint64
	applied         uint64
	loadingCalls    int
	refreshingCalls int
	// surfaced is set while the last failure came from a foreground fetch.
	surfaced bool

	backoff        retry.Backoff
	retryTimer     clock.Timer
	intervalTimer  clock.Timer
	countdownTimer clock.Timer
	countdown      int

	emitMu    sync.Mutex
	observers map[int]func(State[T])
	nextObs   int
}

// New returns an idle Poller. Nothing happens until Start.
func New[T any](name string, fetch FetchFunc[T], opts Options, deps Deps) *Poller[T] {
	if opts.AutoRefresh && opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.AutoRetry && (opts.Retry.MaxRetries <= 0 || opts.Retry.BaseDelay <= 0) {
		opts.Retry = models.DefaultRetryPolicy
	}
	if deps.Clock == nil {
		deps.Clock = clock.WallClock
	}
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}

	return &Poller[T]{
		name:      name,
		fetch:     fetch,
		opts:      opts,
		clock:     deps.Clock,
		events:    deps.Events,
		notifier:  deps.Notifier,
		logger:    deps.Logger.Component("synchronizer"),
		observers: make(map[int]func(State[T])),
	}
}

// Start runs the initial fetch and acquires the interval timer, the
// countdown timer and the environment subscription. Everything is released
// by Close. Calling Start twice has no effect.
func (p *Poller[T]) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started || p.closed {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.ctx = p.scope.Context(ctx)
	p.scope.Defer(p.stopTimers)
	if p.events != nil {
		p.scope.Defer(p.events.Subscribe(p.onEvent))
	}
	if p.opts.AutoRefresh {
		p.rearmInterval()
		if p.opts.Countdown {
			p.countdown = p.intervalSeconds()
			p.countdownTimer = p.clock.AfterFunc(time.Second, p.tick)
		}
	}
	p.mu.Unlock()

	p.launch(models.SourceInitial, false)
}

// Refresh fetches now, on behalf of the user. It is always allowed: the
// current payload stays on display with Refreshing set, a pending automatic
// retry is dropped and the interval restarts once the refresh resolves.
func (p *Poller[T]) Refresh() {
	p.mu.Lock()
	if !p.started || p.closed {
		p.mu.Unlock()
		return
	}
	p.stopRetry()
	if p.intervalTimer != nil {
		p.intervalTimer.Stop()
	}
	p.mu.Unlock()

	p.launch(models.SourceManualRefresh, false)
}

// ClearError resets the error and the retry count. It does not fetch.
func (p *Poller[T]) ClearError() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.state.Error = ""
	p.state.RetryCount = 0
	p.surfaced = false
	p.stopRetry()
	p.mu.Unlock()

	p.emit()
}

// Close releases every timer and subscription. Fetches still in flight are
// cancelled and their results ignored.
func (p *Poller[T]) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.observers = nil
	p.mu.Unlock()

	if err := p.scope.Close(); err != nil {
		p.logger.Err(err).Str("func", "Poller.Close").Str("resource", p.name).Msg("teardown failed")
	}
}

// Subscribe registers fn for every state change. The returned func
// unsubscribes.
func (p *Poller[T]) Subscribe(fn func(State[T])) (unsubscribe func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return func() {}
	}

	id := p.nextObs
	p.nextObs++
	p.observers[id] = fn
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.observers, id)
	}
}

// State returns the current state.
func (p *Poller[T]) State() State[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stateLocked()
}

// SecondsToRefresh returns the countdown to the next auto refresh.
func (p *Poller[T]) SecondsToRefresh() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.countdown
}

func (p *Poller[T]) stateLocked() State[T] {
	st := p.state
	st.Loading = p.loadingCalls > 0
	st.Refreshing = p.refreshingCalls > 0

	switch {
	case st.Loading:
		st.Phase = models.PhaseLoading
	case st.Refreshing:
		st.Phase = models.PhaseRefreshing
	case st.Error != "" && p.snapshot != nil:
		st.Phase = models.PhaseFailedStale
	case st.Error != "":
		st.Phase = models.PhaseFailed
	case p.snapshot != nil:
		st.Phase = models.PhaseReady
	default:
		st.Phase = models.PhaseIdle
	}

	return State[T]{
		Name:             p.name,
		SyncState:        st,
		Snapshot:         p.snapshot,
		SecondsToRefresh: p.countdown,
	}
}

// launch starts one fetch. Background fetches never touch Loading and never
// notify the user about their failure.
func (p *Poller[T]) launch(source models.SnapshotSource, background bool) {
	p.mu.Lock()
	if !p.started || p.closed {
		p.mu.Unlock()
		return
	}
	p.seq++
	c := call{seq: p.seq, source: source, background: background}
	if !background && p.snapshot == nil {
		c.loading = true
		p.loadingCalls++
	} else {
		p.refreshingCalls++
	}
	ctx := p.ctx
	p.mu.Unlock()

	if background {
		ctx = adapter.SilentContext(ctx)
	}
	p.logger.Debug().
		Str("func", "Poller.launch").
		Str("resource", p.name).
		Str("source", string(source)).
		Uint64("seq", c.seq).
		Msg("fetch started")

	p.emit()
	go p.run(ctx, c)
}

func (p *Poller[T]) run(ctx context.Context, c call) {
	payload, err := p.safeFetch(ctx)
	p.settle(c, payload, err)
}

func (p *Poller[T]) safeFetch(ctx context.Context) (payload T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrFetchPanicked, r)
		}
	}()
	return p.fetch(ctx)
}

// settle applies the outcome of c.
func (p *Poller[T]) settle(c call, payload T, err error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	if c.loading {
		p.loadingCalls--
	} else {
		p.refreshingCalls--
	}

	now := p.clock.Now()
	restored := false
	switch {
	case err == nil && c.seq > p.applied:
		p.applied = c.seq
		p.snapshot = &models.ResourceSnapshot[T]{Payload: payload, FetchedAt: now, Source: c.source, Seq: c.seq}
		p.state.Error = ""
		p.state.RetryCount = 0
		p.state.LastUpdated = now
		p.stopRetry()
		restored = c.background && p.surfaced
		p.surfaced = false
	case err == nil:
		p.logger.Debug().
			Str("func", "Poller.settle").
			Str("resource", p.name).
			Uint64("seq", c.seq).
			Uint64("applied", p.applied).
			Msg("discarding out-of-date response")
	case c.seq < p.applied:
		// The snapshot on display is newer than the request that failed.
	default:
		p.state.Error = adapter.UserMessage(err)
		if !c.background {
			p.surfaced = true
		}
		if p.opts.AutoRetry {
			p.scheduleRetry(err)
		}
	}

	if p.opts.AutoRefresh {
		p.rearmInterval()
		p.countdown = p.intervalSeconds()
	}
	p.mu.Unlock()

	if err != nil {
		p.logger.Warn().
			Str("func", "Poller.settle").
			Str("resource", p.name).
			Str("source", string(c.source)).
			Msg("fetch failed")
		if ev := p.logger.Diagnostic(); ev != nil {
			ev.Err(err).Str("resource", p.name).Uint64("seq", c.seq).Msg("fetch failure detail")
		}
	}
	if restored && p.notifier != nil {
		p.notifier.Notify(notify.Success(RestoredMessage))
	}
	p.emit()
}

// scheduleRetry arms the next retry of the current backoff chain. Errors a
// repeat cannot fix are not retried.
func (p *Poller[T]) scheduleRetry(err error) {
	if p.retryTimer != nil {
		return
	}

	var retryAfter time.Duration
	if apiErr, ok := adapter.AsAPIError(err); ok {
		if !apiErr.Retryable() {
			return
		}
		retryAfter = apiErr.RetryAfter
	}

	if p.backoff == nil {
		p.backoff = p.opts.Retry.Backoff()
		p.state.RetryCount = 0
	}
	delay, stop := p.backoff.Next()
	if stop {
		return
	}
	if retryAfter > delay {
		delay = retryAfter
	}

	p.state.RetryCount++
	p.retryTimer = p.clock.AfterFunc(delay, p.onRetry)
	p.logger.Debug().
		Str("func", "Poller.scheduleRetry").
		Str("resource", p.name).
		Int("retry", p.state.RetryCount).
		Dur("delay", delay).
		Msg("retry scheduled")
}

// stopRetry drops a pending retry and the backoff chain. Callers hold mu.
func (p *Poller[T]) stopRetry() {
	if p.retryTimer != nil {
		p.retryTimer.Stop()
		p.retryTimer = nil
	}
	p.backoff = nil
}

// rearmInterval (re)starts the single interval timer. Callers hold mu.
func (p *Poller[T]) rearmInterval() {
	if p.intervalTimer == nil {
		p.intervalTimer = p.clock.AfterFunc(p.opts.Interval, p.onInterval)
		return
	}
	p.intervalTimer.Reset(p.opts.Interval)
}

func (p *Poller[T]) intervalSeconds() int {
	return int(p.opts.Interval / time.Second)
}

func (p *Poller[T]) stopTimers() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopRetry()
	for _, t := range []clock.Timer{p.intervalTimer, p.countdownTimer} {
		if t != nil {
			t.Stop()
		}
	}
}

func (p *Poller[T]) onRetry() {
	p.mu.Lock()
	p.retryTimer = nil
	p.mu.Unlock()

	p.launch(models.SourceRetry, true)
}

func (p *Poller[T]) onInterval() {
	p.launch(models.SourceAutoRefresh, true)
}

func (p *Poller[T]) tick() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	if p.countdown > 0 {
		p.countdown--
	}
	p.countdownTimer.Reset(time.Second)
	p.mu.Unlock()

	p.emit()
}

// onEvent refreshes in the background when connectivity returns after a
// failure, or when the client becomes visible again.
func (p *Poller[T]) onEvent(e environment.Event) {
	p.mu.Lock()
	failed := p.state.Error != ""
	p.mu.Unlock()

	switch {
	case e == environment.Online && failed:
		p.launch(models.SourceAutoRefresh, true)
	case e == environment.Visible && p.opts.AutoRefresh:
		p.launch(models.SourceAutoRefresh, true)
	}
}

func (p *Poller[T]) emit() {
	p.emitMu.Lock()
	defer p.emitMu.Unlock()

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	st := p.stateLocked()
	observers := make([]func(State[T]), 0, len(p.observers))
	for _, fn := range p.observers {
		observers = append(observers, fn)
	}
	p.mu.Unlock()

	for _, fn := range observers {
		fn(st)
	}
}
