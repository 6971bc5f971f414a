package synchronizer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/fx-desk/internal/adapter"
	"github.com/MKhiriev/fx-desk/internal/environment"
	"github.com/MKhiriev/fx-desk/internal/logger"
	"github.com/MKhiriev/fx-desk/internal/notify"
	"github.com/MKhiriev/fx-desk/models"
	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Test doubles ─────────────────────────────────────────────────────────────

type stats struct {
	Total int
}

type result struct {
	value stats
	err   error
}

type pendingCall struct {
	ctx   context.Context
	reply chan result
}

func (c *pendingCall) succeed(total int) { c.reply <- result{value: stats{Total: total}} }
func (c *pendingCall) fail(err error)    { c.reply <- result{err: err} }

// fetcher hands every fetch to the test, which answers it explicitly.
type fetcher struct {
	calls chan *pendingCall
}

func newFetcher() *fetcher {
	return &fetcher{calls: make(chan *pendingCall, 16)}
}

func (f *fetcher) fetch(ctx context.Context) (stats, error) {
	c := &pendingCall{ctx: ctx, reply: make(chan result, 1)}
	f.calls <- c
	select {
	case r := <-c.reply:
		return r.value, r.err
	case <-ctx.Done():
		return stats{}, ctx.Err()
	}
}

func (f *fetcher) next(t *testing.T) *pendingCall {
	t.Helper()
	select {
	case c := <-f.calls:
		return c
	case <-time.After(time.Second):
		t.Fatal("expected a fetch")
		return nil
	}
}

func (f *fetcher) assertIdle(t *testing.T) {
	t.Helper()
	select {
	case <-f.calls:
		t.Fatal("unexpected fetch")
	case <-time.After(30 * time.Millisecond):
	}
}

type fakeEvents struct {
	mu sync.Mutex
	fn func(environment.Event)
}

func (e *fakeEvents) Subscribe(fn func(environment.Event)) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fn = fn
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.fn = nil
	}
}

func (e *fakeEvents) publish(ev environment.Event) {
	e.mu.Lock()
	fn := e.fn
	e.mu.Unlock()
	if fn != nil {
		fn(ev)
	}
}

func networkErr() error {
	return &adapter.APIError{Kind: adapter.KindNetwork, Err: errors.New("dial tcp: connection refused")}
}

type fixture struct {
	clock    *testclock.Clock
	fetcher  *fetcher
	events   *fakeEvents
	notifier *notify.Recorder
	poller   *Poller[stats]
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	f := &fixture{
		clock:    testclock.NewClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)),
		fetcher:  newFetcher(),
		events:   &fakeEvents{},
		notifier: &notify.Recorder{},
	}
	f.poller = New("client.stats", f.fetcher.fetch, opts, Deps{
		Clock:    f.clock,
		Events:   f.events,
		Notifier: f.notifier,
		Logger:   logger.Nop(),
	})
	t.Cleanup(f.poller.Close)
	return f
}

func (f *fixture) eventually(t *testing.T, cond func(State[stats]) bool, msg string) {
	t.Helper()
	assert.Eventually(t, func() bool { return cond(f.poller.State()) }, time.Second, 2*time.Millisecond, msg)
}

func total(st State[stats]) int {
	v, _ := st.Payload()
	return v.Total
}

// ── Initial load ─────────────────────────────────────────────────────────────

func TestPoller_InitialLoadSucceeds(t *testing.T) {
	f := newFixture(t, Options{})
	assert.Equal(t, models.PhaseIdle, f.poller.State().Phase)

	f.poller.Start(context.Background())
	call := f.fetcher.next(t)

	st := f.poller.State()
	assert.True(t, st.Loading)
	assert.Equal(t, models.PhaseLoading, st.Phase)

	call.succeed(42)
	f.eventually(t, func(s State[stats]) bool { return s.Phase == models.PhaseReady }, "ready")

	st = f.poller.State()
	assert.False(t, st.Loading)
	assert.Empty(t, st.Error)
	assert.Equal(t, 42, total(st))
	assert.Equal(t, f.clock.Now(), st.LastUpdated)
	assert.Equal(t, models.SourceInitial, st.Snapshot.Source)
}

func TestPoller_InitialFailureIsCaptured(t *testing.T) {
	f := newFixture(t, Options{})
	f.poller.Start(context.Background())

	f.fetcher.next(t).fail(networkErr())
	f.eventually(t, func(s State[stats]) bool { return s.Phase == models.PhaseFailed }, "failed")

	st := f.poller.State()
	assert.Equal(t, "Network error. Please check your connection.", st.Error)
	assert.Nil(t, st.Snapshot)
}

func TestPoller_RecoversFromPanickingFetch(t *testing.T) {
	clk := testclock.NewClock(time.Now())
	p := New("boom", func(context.Context) (int, error) { panic("nil map") }, Options{}, Deps{Clock: clk})
	defer p.Close()

	p.Start(context.Background())

	assert.Eventually(t, func() bool { return p.State().Phase == models.PhaseFailed }, time.Second, 2*time.Millisecond)
	assert.NotEmpty(t, p.State().Error)
}

func TestPoller_StartTwiceFetchesOnce(t *testing.T) {
	f := newFixture(t, Options{})
	f.poller.Start(context.Background())
	f.poller.Start(context.Background())

	f.fetcher.next(t).succeed(1)
	f.fetcher.assertIdle(t)
}

// ── Ordering and in-flight bookkeeping ──────────────────────────────────────

func TestPoller_OlderResponseNeverOverwritesNewer(t *testing.T) {
	f := newFixture(t, Options{})
	f.poller.Start(context.Background())
	f.fetcher.next(t).succeed(1)
	f.eventually(t, func(s State[stats]) bool { return total(s) == 1 }, "initial")

	f.poller.Refresh()
	slow := f.fetcher.next(t)
	f.poller.Refresh()
	fast := f.fetcher.next(t)

	fast.succeed(3)
	f.eventually(t, func(s State[stats]) bool { return total(s) == 3 }, "newer applied")
	assert.True(t, f.poller.State().Refreshing, "older call still in flight")

	slow.succeed(2)
	f.eventually(t, func(s State[stats]) bool { return !s.Refreshing }, "all settled")

	st := f.poller.State()
	assert.Equal(t, 3, total(st))
	assert.Equal(t, models.PhaseReady, st.Phase)
}

func TestPoller_FailureKeepsPreviousPayload(t *testing.T) {
	f := newFixture(t, Options{})
	f.poller.Start(context.Background())
	f.fetcher.next(t).succeed(7)
	f.eventually(t, func(s State[stats]) bool { return s.Phase == models.PhaseReady }, "ready")

	f.poller.Refresh()
	assert.Equal(t, models.PhaseRefreshing, f.poller.State().Phase)
	assert.False(t, f.poller.State().Loading, "a refresh keeps the payload on display")

	f.fetcher.next(t).fail(networkErr())
	f.eventually(t, func(s State[stats]) bool { return s.Phase == models.PhaseFailedStale }, "failed stale")
	assert.Equal(t, 7, total(f.poller.State()))
}

func TestPoller_FailureOlderThanSnapshotIsIgnored(t *testing.T) {
	f := newFixture(t, Options{})
	f.poller.Start(context.Background())
	f.fetcher.next(t).succeed(1)
	f.eventually(t, func(s State[stats]) bool { return total(s) == 1 }, "initial")

	f.poller.Refresh()
	older := f.fetcher.next(t)
	f.poller.Refresh()
	f.fetcher.next(t).succeed(2)
	f.eventually(t, func(s State[stats]) bool { return total(s) == 2 }, "newer applied")

	older.fail(networkErr())
	f.eventually(t, func(s State[stats]) bool { return !s.Refreshing }, "settled")
	assert.Empty(t, f.poller.State().Error)
}

func TestPoller_ClearError(t *testing.T) {
	f := newFixture(t, Options{})
	f.poller.Start(context.Background())
	f.fetcher.next(t).fail(networkErr())
	f.eventually(t, func(s State[stats]) bool { return s.HasError() }, "failed")

	f.poller.ClearError()

	st := f.poller.State()
	assert.Empty(t, st.Error)
	assert.Zero(t, st.RetryCount)
	f.fetcher.assertIdle(t)
}

// ── Retry ───────────────────────────────────────────────────────────────────

func TestPoller_RetriesWithExponentialBackoffThenStops(t *testing.T) {
	f := newFixture(t, Options{AutoRetry: true, Retry: models.RetryPolicy{MaxRetries: 3, BaseDelay: time.Second}})
	f.poller.Start(context.Background())
	f.fetcher.next(t).fail(networkErr())

	for i, delay := range []time.Duration{time.Second, 2 * time.Second, 4 * time.Second} {
		require.NoError(t, f.clock.WaitAdvance(delay-time.Millisecond, time.Second, 1))
		f.fetcher.assertIdle(t)
		f.clock.Advance(time.Millisecond)

		call := f.fetcher.next(t)
		assert.Equal(t, i+1, f.poller.State().RetryCount)
		call.fail(networkErr())
	}

	f.eventually(t, func(s State[stats]) bool { return !s.Refreshing && s.HasError() }, "settled")
	f.clock.Advance(time.Hour)
	f.fetcher.assertIdle(t)

	st := f.poller.State()
	assert.Equal(t, 3, st.RetryCount)
	assert.Equal(t, "Network error. Please check your connection.", st.Error)
}

func TestPoller_SuccessfulRetryResetsCountAndAnnouncesRecovery(t *testing.T) {
	f := newFixture(t, Options{AutoRetry: true, Retry: models.RetryPolicy{MaxRetries: 3, BaseDelay: time.Second}})
	f.poller.Start(context.Background())
	f.fetcher.next(t).fail(networkErr())

	require.NoError(t, f.clock.WaitAdvance(time.Second, time.Second, 1))
	retry := f.fetcher.next(t)
	assert.True(t, f.poller.State().Refreshing)
	retry.succeed(5)

	f.eventually(t, func(s State[stats]) bool { return s.Phase == models.PhaseReady }, "ready")
	st := f.poller.State()
	assert.Zero(t, st.RetryCount)
	assert.Equal(t, models.SourceRetry, st.Snapshot.Source)
	assert.Eventually(t, func() bool {
		return assert.ObjectsAreEqual([]string{RestoredMessage}, f.notifier.Messages())
	}, time.Second, 2*time.Millisecond)
}

func TestPoller_NonRetryableErrorIsNotRetried(t *testing.T) {
	f := newFixture(t, Options{AutoRetry: true})
	f.poller.Start(context.Background())
	f.fetcher.next(t).fail(&adapter.APIError{Kind: adapter.KindNotFound})
	f.eventually(t, func(s State[stats]) bool { return s.HasError() }, "failed")

	f.clock.Advance(time.Hour)
	f.fetcher.assertIdle(t)
	assert.Zero(t, f.poller.State().RetryCount)
}

func TestPoller_RetryAfterExtendsDelay(t *testing.T) {
	f := newFixture(t, Options{AutoRetry: true, Retry: models.RetryPolicy{MaxRetries: 3, BaseDelay: time.Second}})
	f.poller.Start(context.Background())
	f.fetcher.next(t).fail(&adapter.APIError{Kind: adapter.KindRateLimited, RetryAfter: 10 * time.Second})

	require.NoError(t, f.clock.WaitAdvance(9*time.Second, time.Second, 1))
	f.fetcher.assertIdle(t)
	f.clock.Advance(time.Second)
	f.fetcher.next(t).succeed(1)
}

func TestPoller_ManualRefreshCancelsPendingRetry(t *testing.T) {
	f := newFixture(t, Options{AutoRetry: true, Retry: models.RetryPolicy{MaxRetries: 3, BaseDelay: time.Second}})
	f.poller.Start(context.Background())
	f.fetcher.next(t).fail(networkErr())
	f.eventually(t, func(s State[stats]) bool { return s.RetryCount == 1 }, "retry scheduled")

	f.poller.Refresh()
	manual := f.fetcher.next(t)
	assert.True(t, f.poller.State().Loading, "nothing on display yet")

	f.clock.Advance(time.Minute)
	f.fetcher.assertIdle(t)

	manual.succeed(9)
	f.eventually(t, func(s State[stats]) bool { return total(s) == 9 }, "manual applied")
	assert.Empty(t, f.notifier.Messages(), "a foreground success needs no recovery notice")
}

// ── Auto refresh ────────────────────────────────────────────────────────────

func TestPoller_ManualRefreshRestartsInterval(t *testing.T) {
	f := newFixture(t, Options{AutoRefresh: true, Interval: 5 * time.Second})
	f.poller.Start(context.Background())
	f.fetcher.next(t).succeed(1)
	f.eventually(t, func(s State[stats]) bool { return s.Phase == models.PhaseReady }, "ready")

	require.NoError(t, f.clock.WaitAdvance(2*time.Second, time.Second, 1))
	f.poller.Refresh()
	manual := f.fetcher.next(t)

	f.clock.Advance(10 * time.Second)
	f.fetcher.assertIdle(t)

	manual.succeed(2)
	require.NoError(t, f.clock.WaitAdvance(5*time.Second-time.Millisecond, time.Second, 1))
	f.fetcher.assertIdle(t)
	f.clock.Advance(time.Millisecond)

	auto := f.fetcher.next(t)
	auto.succeed(3)
	f.eventually(t, func(s State[stats]) bool { return total(s) == 3 }, "auto applied")
	assert.Equal(t, models.SourceAutoRefresh, f.poller.State().Snapshot.Source)
}

func TestPoller_BackgroundFailureIsSilent(t *testing.T) {
	f := newFixture(t, Options{AutoRefresh: true, Interval: 5 * time.Second})
	f.poller.Start(context.Background())
	f.fetcher.next(t).succeed(1)
	f.eventually(t, func(s State[stats]) bool { return s.Phase == models.PhaseReady }, "ready")

	require.NoError(t, f.clock.WaitAdvance(5*time.Second, time.Second, 1))
	call := f.fetcher.next(t)
	assert.False(t, f.poller.State().Loading)
	call.fail(networkErr())

	f.eventually(t, func(s State[stats]) bool { return s.Phase == models.PhaseFailedStale }, "failed stale")
	assert.Empty(t, f.notifier.Messages())
}

func TestPoller_CountdownTicksAndResetsOnRefresh(t *testing.T) {
	f := newFixture(t, Options{AutoRefresh: true, Interval: 5 * time.Second, Countdown: true})
	f.poller.Start(context.Background())
	f.fetcher.next(t).succeed(1)
	f.eventually(t, func(s State[stats]) bool { return s.Phase == models.PhaseReady }, "ready")
	assert.Equal(t, 5, f.poller.SecondsToRefresh())

	for want := 4; want >= 2; want-- {
		require.NoError(t, f.clock.WaitAdvance(time.Second, time.Second, 2))
		assert.Eventually(t, func() bool { return f.poller.SecondsToRefresh() == want }, time.Second, 2*time.Millisecond)
	}

	f.poller.Refresh()
	f.fetcher.next(t).succeed(2)
	assert.Eventually(t, func() bool { return f.poller.SecondsToRefresh() == 5 }, time.Second, 2*time.Millisecond)
}

// ── Environment ─────────────────────────────────────────────────────────────

func TestPoller_ReconnectRefreshesAfterFailure(t *testing.T) {
	f := newFixture(t, Options{})
	f.poller.Start(context.Background())

	f.events.publish(environment.Online)
	f.fetcher.next(t).fail(networkErr())
	f.eventually(t, func(s State[stats]) bool { return s.HasError() }, "failed")

	f.events.publish(environment.Online)
	f.fetcher.next(t).succeed(4)
	f.eventually(t, func(s State[stats]) bool { return s.Phase == models.PhaseReady }, "recovered")
	f.fetcher.assertIdle(t)
}

func TestPoller_VisibleRefreshesOnlyWithAutoRefresh(t *testing.T) {
	manual := newFixture(t, Options{})
	manual.poller.Start(context.Background())
	manual.fetcher.next(t).succeed(1)
	manual.events.publish(environment.Visible)
	manual.fetcher.assertIdle(t)

	auto := newFixture(t, Options{AutoRefresh: true, Interval: time.Minute})
	auto.poller.Start(context.Background())
	auto.fetcher.next(t).succeed(1)
	auto.events.publish(environment.Visible)
	auto.fetcher.next(t).succeed(2)
}

// ── Observers and teardown ──────────────────────────────────────────────────

func TestPoller_ObserversSeeEveryTransition(t *testing.T) {
	f := newFixture(t, Options{})
	var mu sync.Mutex
	var phases []models.SyncPhase
	unsubscribe := f.poller.Subscribe(func(s State[stats]) {
		mu.Lock()
		defer mu.Unlock()
		phases = append(phases, s.Phase)
	})

	f.poller.Start(context.Background())
	f.fetcher.next(t).succeed(1)
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(phases) == 2
	}, time.Second, 2*time.Millisecond)

	unsubscribe()
	f.poller.Refresh()
	f.fetcher.next(t).succeed(2)
	f.eventually(t, func(s State[stats]) bool { return total(s) == 2 }, "applied")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []models.SyncPhase{models.PhaseLoading, models.PhaseReady}, phases)
}

func TestPoller_CloseStopsTimersAndIgnoresLateResults(t *testing.T) {
	f := newFixture(t, Options{
		AutoRefresh: true,
		Interval:    5 * time.Second,
		Countdown:   true,
		AutoRetry:   true,
	})
	notified := 0
	f.poller.Subscribe(func(State[stats]) { notified++ })

	f.poller.Start(context.Background())
	call := f.fetcher.next(t)
	before := f.poller.State()
	seen := notified

	f.poller.Close()
	call.succeed(99)
	assert.Error(t, call.ctx.Err(), "in-flight fetch is cancelled")

	f.clock.Advance(time.Hour)
	f.fetcher.assertIdle(t)
	f.events.publish(environment.Online)
	f.poller.Refresh()
	f.fetcher.assertIdle(t)

	assert.Equal(t, before, f.poller.State())
	assert.Equal(t, seen, notified)
}

// ── Group ───────────────────────────────────────────────────────────────────

type recordingResource struct {
	name string
	log  *[]string
}

func (r recordingResource) Start(context.Context) { *r.log = append(*r.log, "start "+r.name) }
func (r recordingResource) Refresh()              { *r.log = append(*r.log, "refresh "+r.name) }
func (r recordingResource) ClearError()           { *r.log = append(*r.log, "clear "+r.name) }
func (r recordingResource) Close()                { *r.log = append(*r.log, "close "+r.name) }

func TestGroup_DrivesMembers(t *testing.T) {
	var log []string
	g := NewGroup(recordingResource{"stats", &log}, recordingResource{"accounts", &log})

	g.Start(context.Background())
	g.Refresh()
	g.ClearError()
	g.Close()
	g.Close()

	assert.Equal(t, []string{
		"start stats", "start accounts",
		"refresh stats", "refresh accounts",
		"clear stats", "clear accounts",
		"close accounts", "close stats",
	}, log)
}
