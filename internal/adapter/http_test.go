// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/MKhiriev/fx-desk/internal/config"
	"github.com/MKhiriev/fx-desk/internal/logger"
	"github.com/MKhiriev/fx-desk/internal/notify"
	"github.com/MKhiriev/fx-desk/internal/session"
	"github.com/MKhiriev/fx-desk/internal/store"
	"github.com/MKhiriev/fx-desk/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (n *recordingNavigator) Redirect(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *recordingNavigator) Paths() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

type testDeps struct {
	transport *Transport
	adapter   ServerAdapter
	storage   store.LocalStorage
	session   *session.Session
	navigator *recordingNavigator
	notices   *notify.Recorder
}

// newTestAdapter builds a transport pointed at the test server, backed by an
// in-memory session store.
func newTestAdapter(t *testing.T, serverURL string) testDeps {
	t.Helper()
	log := logger.Nop()
	storage := store.NewMemoryLocalStorage()
	sess := session.New(storage, log)
	nav := &recordingNavigator{}
	rec := &notify.Recorder{}

	tr, err := NewTransport(config.ClientAdapter{
		BaseURL:        serverURL,
		RequestTimeout: 2 * time.Second,
		HealthTimeout:  time.Second,
	}, sess, nav, rec, log)
	require.NoError(t, err)

	return testDeps{
		transport: tr,
		adapter:   NewHTTPServerAdapter(tr),
		storage:   storage,
		session:   sess,
		navigator: nav,
		notices:   rec,
	}
}

func writeEnvelope(t *testing.T, w http.ResponseWriter, status int, env any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(env))
}

func ok(data any) map[string]any {
	return map[string]any{"success": true, "data": data}
}

// ── NewTransport ────────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "full url", raw: "http://localhost:5000/", want: "http://localhost:5000"},
		{name: "no scheme", raw: "localhost:5000", want: "http://localhost:5000"},
		{name: "https with path", raw: " https://api.example.com/v1/ ", want: "https://api.example.com/v1"},
		{name: "empty", raw: "   ", wantErr: true},
		{name: "no host", raw: "http://", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewTransport_InvalidBaseURL(t *testing.T) {
	_, err := NewTransport(config.ClientAdapter{}, session.New(store.NewMemoryLocalStorage(), logger.Nop()),
		&recordingNavigator{}, &notify.Recorder{}, logger.Nop())
	assert.ErrorIs(t, err, ErrInvalidBaseURL)
}

func TestNewTransport_DefaultTimeouts(t *testing.T) {
	tr, err := NewTransport(config.ClientAdapter{BaseURL: "localhost:5000"}, session.New(store.NewMemoryLocalStorage(), logger.Nop()),
		&recordingNavigator{}, &notify.Recorder{}, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, config.DefaultRequestTimeout, tr.timeout)
	assert.Equal(t, config.DefaultHealthTimeout, tr.healthTimeout)
}

// ── Request: authorization ──────────────────────────────────────────────────

func TestRequest_UsesFirstTokenInRolePriority(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(t, w, http.StatusOK, ok(map[string]int{"total": 1}))
	}))
	defer srv.Close()

	d := newTestAdapter(t, srv.URL)
	ctx := context.Background()
	require.NoError(t, d.storage.SetMany(ctx, map[string]string{
		models.RoleAgent.TokenKey(): "agent-token",
		models.RoleAdmin.TokenKey(): "admin-token",
	}))

	_, err := d.transport.Request(ctx, http.MethodGet, "/api/admin/dashboard/stats", nil)

	require.NoError(t, err)
	assert.Equal(t, "Bearer admin-token", gotAuth)
}

func TestRequest_ExplicitTokenOverridesSession(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(t, w, http.StatusOK, ok(true))
	}))
	defer srv.Close()

	d := newTestAdapter(t, srv.URL)
	ctx := context.Background()
	require.NoError(t, d.storage.Set(ctx, models.RoleClient.TokenKey(), "client-token"))

	_, err := d.transport.Request(ctx, http.MethodGet, "/x", nil, WithToken("explicit"))

	require.NoError(t, err)
	assert.Equal(t, "Bearer explicit", gotAuth)
}

func TestRequest_AnonymousSendsNoAuthorization(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(t, w, http.StatusOK, ok(true))
	}))
	defer srv.Close()

	d := newTestAdapter(t, srv.URL)
	ctx := context.Background()
	require.NoError(t, d.storage.Set(ctx, models.RoleClient.TokenKey(), "client-token"))

	_, err := d.transport.Request(ctx, http.MethodGet, "/x", nil, Anonymous())

	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

// ── Request: envelope ───────────────────────────────────────────────────────

func TestRequest_ReturnsDataMember(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.False(t, r.URL.Query().Has("status"))
		writeEnvelope(t, w, http.StatusOK, ok(map[string]int{"total": 42}))
	}))
	defer srv.Close()

	d := newTestAdapter(t, srv.URL)
	raw, err := d.transport.Request(context.Background(), http.MethodGet, "/api/client/dashboard/stats", nil,
		WithQuery(map[string]string{"limit": "5", "status": ""}))

	require.NoError(t, err)
	assert.JSONEq(t, `{"total":42}`, string(raw))
	assert.Empty(t, d.notices.All())
}

func TestRequest_SuccessWithoutData_IsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusOK, map[string]any{"success": true})
	}))
	defer srv.Close()

	d := newTestAdapter(t, srv.URL)
	stats, err := d.adapter.ClientStats(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Equal(t, models.DashboardStats{}, stats)

	apiErr, isAPI := AsAPIError(err)
	require.True(t, isAPI)
	assert.True(t, apiErr.Retryable())
	require.Len(t, d.notices.All(), 1)
	assert.Equal(t, notify.LevelError, d.notices.All()[0].Level)
}

func TestRequest_NullDataIsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":null}`))
	}))
	defer srv.Close()

	d := newTestAdapter(t, srv.URL)
	_, err := d.transport.Request(context.Background(), http.MethodGet, "/x", nil)

	assert.ErrorIs(t, err, ErrMalformed)
}

func TestRequest_SuccessFalseCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusOK, map[string]any{"success": false, "error": "Account is locked"})
	}))
	defer srv.Close()

	d := newTestAdapter(t, srv.URL)
	_, err := d.transport.Request(context.Background(), http.MethodGet, "/x", nil)

	require.ErrorIs(t, err, ErrMalformed)
	assert.Equal(t, "Account is locked", UserMessage(err))
	assert.Equal(t, []string{"Account is locked"}, d.notices.Messages())
}

func TestRequest_NonJSONSuccessBodyIsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	d := newTestAdapter(t, srv.URL)
	_, err := d.transport.Request(context.Background(), http.MethodGet, "/x", nil)

	assert.ErrorIs(t, err, ErrMalformed)
}

// ── Request: classification ─────────────────────────────────────────────────

func TestRequest_ClassifiesStatusCodes(t *testing.T) {
	tests := []struct {
		status    int
		body      string
		sentinel  error
		kind      Kind
		message   string
		retryable bool
	}{
		{status: http.StatusBadRequest, body: `{"success":false,"message":"amount is required"}`, sentinel: ErrBadRequest, kind: KindBadRequest, message: "amount is required"},
		{status: http.StatusForbidden, sentinel: ErrForbidden, kind: KindForbidden, message: KindForbidden.defaultMessage()},
		{status: http.StatusNotFound, sentinel: ErrNotFound, kind: KindNotFound, message: KindNotFound.defaultMessage()},
		{status: http.StatusUnprocessableEntity, body: `{"success":false,"error":"rate must be positive"}`, sentinel: ErrValidation, kind: KindValidation, message: "rate must be positive"},
		{status: http.StatusTooManyRequests, sentinel: ErrRateLimited, kind: KindRateLimited, message: KindRateLimited.defaultMessage(), retryable: true},
		{status: http.StatusInternalServerError, sentinel: ErrServerError, kind: KindServerError, message: KindServerError.defaultMessage(), retryable: true},
		{status: http.StatusBadGateway, body: "<html>bad gateway</html>", sentinel: ErrServerError, kind: KindServerError, message: KindServerError.defaultMessage(), retryable: true},
		{status: http.StatusServiceUnavailable, sentinel: ErrServerError, kind: KindServerError, message: KindServerError.defaultMessage(), retryable: true},
		{status: http.StatusGatewayTimeout, sentinel: ErrServerError, kind: KindServerError, message: KindServerError.defaultMessage(), retryable: true},
		{status: http.StatusConflict, sentinel: ErrUnknown, kind: KindUnknown, message: KindUnknown.defaultMessage()},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			d := newTestAdapter(t, srv.URL)
			_, err := d.transport.Request(context.Background(), http.MethodGet, "/x", nil)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			apiErr, isAPI := AsAPIError(err)
			require.True(t, isAPI)
			assert.Equal(t, tt.kind, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.message, apiErr.UserMessage())
			assert.Equal(t, tt.retryable, apiErr.Retryable())
			assert.Equal(t, []string{tt.message}, d.notices.Messages())
			assert.Empty(t, d.navigator.Paths())
		})
	}
}

func TestRequest_PlainTextErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "deposit already reviewed", http.StatusBadRequest)
	}))
	defer srv.Close()

	d := newTestAdapter(t, srv.URL)
	_, err := d.transport.Request(context.Background(), http.MethodPost, "/x", nil)

	assert.Equal(t, "deposit already reviewed", UserMessage(err))
}

func TestRequest_RateLimitedParsesRetryAfter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	d := newTestAdapter(t, srv.URL)
	_, err := d.transport.Request(context.Background(), http.MethodGet, "/x", nil)

	apiErr, isAPI := AsAPIError(err)
	require.True(t, isAPI)
	assert.Equal(t, 7*time.Second, apiErr.RetryAfter)
	assert.Equal(t, notify.LevelWarning, d.notices.All()[0].Level)
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

	assert.Equal(t, time.Duration(0), parseRetryAfter("", now))
	assert.Equal(t, time.Duration(0), parseRetryAfter("-3", now))
	assert.Equal(t, 2*time.Second, parseRetryAfter(" 2 ", now))
	assert.Equal(t, 30*time.Second, parseRetryAfter(now.Add(30*time.Second).Format(http.TimeFormat), now))
	assert.Equal(t, time.Duration(0), parseRetryAfter(now.Add(-time.Minute).Format(http.TimeFormat), now))
	assert.Equal(t, time.Duration(0), parseRetryAfter("soon", now))
}

// ── Request: session expiry ─────────────────────────────────────────────────

func TestRequest_UnauthorizedExpiresSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusUnauthorized, map[string]any{"success": false, "error": "jwt expired"})
	}))
	defer srv.Close()

	d := newTestAdapter(t, srv.URL)
	ctx := context.Background()
	require.NoError(t, d.session.SignIn(ctx, models.RoleClient, "client-token", models.User{ID: "u1", Email: "c@example.com"}))

	_, err := d.transport.Request(ctx, http.MethodGet, "/api/client/dashboard/stats", nil)

	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, []string{RootPath}, d.navigator.Paths())

	_, err = d.storage.Get(ctx, models.RoleClient.TokenKey())
	assert.ErrorIs(t, err, store.ErrKeyNotFound)
	_, err = d.storage.Get(ctx, models.RoleClient.UserKey())
	assert.ErrorIs(t, err, store.ErrKeyNotFound)

	notices := d.notices.All()
	require.Len(t, notices, 1)
	assert.Equal(t, SessionExpiredTitle, notices[0].Title)
	assert.Equal(t, notify.LevelWarning, notices[0].Level)
}

func TestRequest_UnauthorizedClearsEveryRole(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	d := newTestAdapter(t, srv.URL)
	ctx := context.Background()
	for _, role := range models.RolePriority {
		require.NoError(t, d.session.SignIn(ctx, role, string(role)+"-token", models.User{ID: string(role)}))
	}

	// The agent token is the one sent; every other role must go as well.
	_, err := d.transport.Request(ctx, http.MethodGet, "/x", nil, WithToken("agent-token"), Silent())

	require.ErrorIs(t, err, ErrUnauthorized)
	for _, key := range models.SessionKeys() {
		_, err = d.storage.Get(ctx, key)
		assert.ErrorIs(t, err, store.ErrKeyNotFound, key)
	}
	assert.False(t, d.session.Active(ctx))
	require.Len(t, d.notices.All(), 1, "silent calls still show the session-expired notice")
}

func TestRequest_AnonymousUnauthorizedKeepsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Invalid email or password"})
	}))
	defer srv.Close()

	d := newTestAdapter(t, srv.URL)
	ctx := context.Background()
	require.NoError(t, d.session.SignIn(ctx, models.RoleAdmin, "admin-token", models.User{ID: "a1"}))

	_, err := d.adapter.Login(ctx, models.RoleClient, models.Credentials{Email: "c@example.com", Password: "bad"})

	require.ErrorIs(t, err, ErrUnauthorized)
	assert.True(t, d.session.Active(ctx))
	assert.Empty(t, d.navigator.Paths())
	assert.Equal(t, []string{"Invalid email or password"}, d.notices.Messages())
}

func TestBatch_UnauthorizedShowsOnlySessionNotices(t *testing.T) {
	release := make(chan struct{})
	var arrived sync.WaitGroup
	arrived.Add(3)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		arrived.Done()
		<-release
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	d := newTestAdapter(t, srv.URL)
	go func() {
		arrived.Wait()
		close(release)
	}()

	_, err := d.transport.Batch(context.Background(),
		Call{Method: http.MethodGet, Path: "/a"},
		Call{Method: http.MethodGet, Path: "/b"},
		Call{Method: http.MethodGet, Path: "/c"},
	)

	require.ErrorIs(t, err, ErrUnauthorized)
	assert.LessOrEqual(t, len(d.navigator.Paths()), 3)
	assert.NotEmpty(t, d.navigator.Paths())
	for _, n := range d.notices.All() {
		assert.Equal(t, SessionExpiredTitle, n.Title)
	}
}

// ── Request: transport failures ─────────────────────────────────────────────

func TestRequest_TimeoutIsDistinctFromNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	d := newTestAdapter(t, srv.URL)
	_, err := d.transport.Request(context.Background(), http.MethodGet, "/slow", nil, WithTimeout(50*time.Millisecond))

	require.ErrorIs(t, err, ErrTimeout)
	assert.NotErrorIs(t, err, ErrNetwork)
	assert.Equal(t, []string{KindTimeout.defaultMessage()}, d.notices.Messages())
}

func TestRequest_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	d := newTestAdapter(t, url)
	_, err := d.transport.Request(context.Background(), http.MethodGet, "/x", nil)

	require.ErrorIs(t, err, ErrNetwork)
	apiErr, _ := AsAPIError(err)
	assert.True(t, apiErr.Retryable())
	assert.Equal(t, 0, apiErr.Status)
}

func TestRequest_CallerCancellationIsNotNotified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	d := newTestAdapter(t, srv.URL)
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	_, err := d.transport.Request(ctx, http.MethodGet, "/x", nil)

	require.ErrorIs(t, err, ErrCanceled)
	assert.Empty(t, d.notices.All())
}

func TestRequest_CallerDeadlineIsTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	d := newTestAdapter(t, srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := d.transport.Request(ctx, http.MethodGet, "/x", nil)

	require.ErrorIs(t, err, ErrTimeout)
	assert.NotErrorIs(t, err, ErrCanceled)
}

func TestClassifyTransportError(t *testing.T) {
	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	expired, cancelExpired := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancelExpired()
	live := context.Background()

	tests := []struct {
		name   string
		parent context.Context
		call   context.Context
		err    error
		want   Kind
	}{
		{name: "caller canceled", parent: canceled, call: canceled, err: context.Canceled, want: KindCanceled},
		{name: "caller deadline", parent: expired, call: expired, err: context.DeadlineExceeded, want: KindTimeout},
		{name: "call deadline", parent: live, call: expired, err: context.DeadlineExceeded, want: KindTimeout},
		{name: "connection refused", parent: live, call: live, err: errors.New("dial tcp: connection refused"), want: KindNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyTransportError(tt.parent, tt.call, tt.err).Kind)
		})
	}
}

func TestPlainMessage_CutsOnRuneBoundary(t *testing.T) {
	body := strings.Repeat("a", maxPlainMessage-1) + "éééé"

	msg := plainMessage([]byte(body))

	assert.True(t, utf8.ValidString(msg))
	assert.Equal(t, strings.Repeat("a", maxPlainMessage-1), msg)
	assert.Equal(t, "short", plainMessage([]byte("  short \n")))
}

func TestRequest_SilentSuppressesNotice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	d := newTestAdapter(t, srv.URL)

	_, err := d.transport.Request(context.Background(), http.MethodGet, "/x", nil, Silent())
	require.ErrorIs(t, err, ErrServerError)

	_, err = d.adapter.ClientStats(SilentContext(context.Background()))
	require.ErrorIs(t, err, ErrServerError)

	assert.Empty(t, d.notices.All())
}

// ── Batch ───────────────────────────────────────────────────────────────────

func TestBatch_ReturnsResultsInInputOrder(t *testing.T) {
	delays := map[string]time.Duration{"/a": 60 * time.Millisecond, "/b": 0, "/c": 30 * time.Millisecond}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(delays[r.URL.Path])
		writeEnvelope(t, w, http.StatusOK, ok(r.URL.Path))
	}))
	defer srv.Close()

	d := newTestAdapter(t, srv.URL)
	got, err := d.transport.Batch(context.Background(),
		Call{Method: http.MethodGet, Path: "/a"},
		Call{Method: http.MethodGet, Path: "/b"},
		Call{Method: http.MethodGet, Path: "/c"},
	)

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.JSONEq(t, `"/a"`, string(got[0]))
	assert.JSONEq(t, `"/b"`, string(got[1]))
	assert.JSONEq(t, `"/c"`, string(got[2]))
}

func TestBatch_FailsFast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
			writeEnvelope(t, w, http.StatusOK, ok(1))
		}
	}))
	defer srv.Close()

	d := newTestAdapter(t, srv.URL)
	started := time.Now()
	got, err := d.transport.Batch(context.Background(),
		Call{Method: http.MethodGet, Path: "/slow"},
		Call{Method: http.MethodGet, Path: "/broken"},
	)

	require.ErrorIs(t, err, ErrServerError)
	assert.Nil(t, got)
	assert.Less(t, time.Since(started), time.Second)
	assert.Len(t, d.notices.All(), 1, "the cancelled sibling is not reported")
}

func TestBatch_Empty(t *testing.T) {
	d := newTestAdapter(t, "http://localhost:1")
	got, err := d.transport.Batch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

// ── Upload ──────────────────────────────────────────────────────────────────

func TestUpload_StreamsMultipartWithProgress(t *testing.T) {
	content := bytes.Repeat([]byte("x"), 256*1024)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/tickets/t1/attachments", r.URL.Path)
		assert.Equal(t, "Bearer client-token", r.Header.Get("Authorization"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		got, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, content, got)
		assert.Equal(t, "statement.pdf", header.Filename)
		assert.Equal(t, "bank", r.FormValue("source"))

		writeEnvelope(t, w, http.StatusCreated, ok(models.UploadedFile{URL: "/files/statement.pdf", FileName: header.Filename, Size: int64(len(got))}))
	}))
	defer srv.Close()

	d := newTestAdapter(t, srv.URL)
	ctx := context.Background()
	require.NoError(t, d.storage.Set(ctx, models.RoleClient.TokenKey(), "client-token"))

	var (
		mu       sync.Mutex
		progress []int
	)
	uploaded, err := d.adapter.UploadTicketAttachment(ctx, "t1", UploadFile{
		FileName: "statement.pdf",
		Content:  bytes.NewReader(content),
		Size:     int64(len(content)),
		Fields:   map[string]string{"source": "bank"},
	}, func(pct int) {
		mu.Lock()
		defer mu.Unlock()
		progress = append(progress, pct)
	})

	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), uploaded.Size)

	mu.Lock()
	defer mu.Unlock()
	require.GreaterOrEqual(t, len(progress), 3)
	assert.Equal(t, 0, progress[0])
	assert.Equal(t, 100, progress[len(progress)-1])
	for i := 1; i < len(progress); i++ {
		assert.Greater(t, progress[i], progress[i-1], "progress must be strictly increasing")
	}
}

func TestUpload_FailureNeverReportsCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusRequestEntityTooLarge)
	}))
	defer srv.Close()

	d := newTestAdapter(t, srv.URL)
	var last atomic.Int64
	_, err := d.transport.Upload(context.Background(), "/upload", UploadFile{
		FileName: "a.png",
		Content:  bytes.NewReader([]byte("png")),
		Size:     3,
	}, func(pct int) { last.Store(int64(pct)) })

	require.ErrorIs(t, err, ErrUnknown)
	assert.Less(t, last.Load(), int64(100))
}

func TestUpload_RequiresContent(t *testing.T) {
	d := newTestAdapter(t, "http://localhost:1")
	_, err := d.transport.Upload(context.Background(), "/upload", UploadFile{FileName: "a"}, nil)
	assert.ErrorIs(t, err, ErrUploadNoContent)
}

func TestUploadKYCDocument_AddsDocumentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/client/kyc/documents", r.URL.Path)
		assert.Equal(t, "passport", r.FormValue("documentType"))
		_, _, err := r.FormFile("document")
		assert.NoError(t, err)
		writeEnvelope(t, w, http.StatusOK, ok(models.UploadedFile{FileName: "id.jpg"}))
	}))
	defer srv.Close()

	d := newTestAdapter(t, srv.URL)
	fields := map[string]string{"side": "front"}
	got, err := d.adapter.UploadKYCDocument(context.Background(), "passport", UploadFile{
		FileName: "id.jpg",
		Content:  bytes.NewReader([]byte("jpg")),
		Fields:   fields,
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, "id.jpg", got.FileName)
	assert.NotContains(t, fields, "documentType")
}

// ── Typed endpoints ─────────────────────────────────────────────────────────

func TestLogin_UsesRoleEndpoint(t *testing.T) {
	tests := []struct {
		role models.Role
		path string
	}{
		{role: models.RoleClient, path: "/api/auth/login"},
		{role: models.RoleAdmin, path: "/api/admin/auth/login"},
		{role: models.RoleSuperAdmin, path: "/api/superadmin/auth/login"},
		{role: models.RoleAgent, path: "/api/agent/auth/login"},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.path, r.URL.Path)
				var creds models.Credentials
				require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
				assert.Equal(t, "user@example.com", creds.Email)
				writeEnvelope(t, w, http.StatusOK, ok(models.LoginResult{Token: "tok", User: models.User{ID: "1"}}))
			}))
			defer srv.Close()

			d := newTestAdapter(t, srv.URL)
			got, err := d.adapter.Login(context.Background(), tt.role, models.Credentials{Email: "user@example.com", Password: "pw"})

			require.NoError(t, err)
			assert.Equal(t, "tok", got.Token)
			assert.Equal(t, tt.role, got.User.Role)
		})
	}
}

func TestLogin_UnknownRole(t *testing.T) {
	d := newTestAdapter(t, "http://localhost:1")
	_, err := d.adapter.Login(context.Background(), models.Role("broker"), models.Credentials{})
	assert.Error(t, err)
}

func TestLogin_MissingTokenIsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusOK, ok(models.LoginResult{User: models.User{ID: "1"}}))
	}))
	defer srv.Close()

	d := newTestAdapter(t, srv.URL)
	_, err := d.adapter.Login(context.Background(), models.RoleClient, models.Credentials{})
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestHealth_UsesShortDeadlineAndStaysSilent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		<-r.Context().Done()
	}))
	defer srv.Close()

	d := newTestAdapter(t, srv.URL)
	started := time.Now()
	err := d.adapter.Health(context.Background())

	require.ErrorIs(t, err, ErrTimeout)
	assert.Less(t, time.Since(started), 1900*time.Millisecond)
	assert.Empty(t, d.notices.All())
}

func TestAdminOverview_DecodesAllThreeResources(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/admin/dashboard/stats":
			writeEnvelope(t, w, http.StatusOK, ok(models.DashboardStats{Total: 42}))
		case "/api/admin/dashboard/revenue":
			writeEnvelope(t, w, http.StatusOK, ok([]models.RevenuePoint{{Period: "2026-01", Revenue: 10}}))
		case "/api/admin/dashboard/transactions":
			assert.Equal(t, "10", r.URL.Query().Get("limit"))
			writeEnvelope(t, w, http.StatusOK, ok([]models.Transaction{{ID: "tx1"}}))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	d := newTestAdapter(t, srv.URL)
	got, err := d.adapter.AdminOverview(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 42, got.Stats.Total)
	assert.Len(t, got.Revenue, 1)
	assert.Equal(t, "tx1", got.Transactions[0].ID)
}

func TestNotifications_DecodesUnionAndSkipsUnknownKinds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":[
			{"id":"n1","type":"deposit","title":"Deposit approved","data":{"depositId":"d1","amount":100,"currency":"USD"}},
			{"id":"n2","type":"promo","title":"?"},
			{"id":"n3","type":"ticket_reply","title":"New reply","data":{"ticketId":"t9"}}
		]}`))
	}))
	defer srv.Close()

	d := newTestAdapter(t, srv.URL)
	got, err := d.adapter.Notifications(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	deposit, isDeposit := got[0].(models.DepositNotification)
	require.True(t, isDeposit)
	assert.Equal(t, "d1", deposit.DepositID)
	assert.Equal(t, models.NotificationTicketReply, got[1].Kind())
}

func TestDecodeMismatchIsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusOK, ok("not-a-list"))
	}))
	defer srv.Close()

	d := newTestAdapter(t, srv.URL)
	_, err := d.adapter.Tickets(context.Background())

	require.ErrorIs(t, err, ErrMalformed)
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestDeposits_SendsFilterAsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "pending", q.Get("status"))
		assert.Equal(t, "2", q.Get("page"))
		assert.False(t, q.Has("limit"))
		writeEnvelope(t, w, http.StatusOK, ok(models.Page[models.Deposit]{Items: []models.Deposit{{ID: "d1"}}, Total: 1, Page: 2}))
	}))
	defer srv.Close()

	d := newTestAdapter(t, srv.URL)
	page, err := d.adapter.Deposits(context.Background(), models.DepositFilter{Status: models.DepositPending, Page: 2})

	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, "d1", page.Items[0].ID)
}

func TestRejectDeposit_EscapesIDAndSendsReason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/deposits/a%2Fb/reject", r.URL.EscapedPath())
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "blurry receipt", body["reason"])
		writeEnvelope(t, w, http.StatusOK, ok(models.Deposit{ID: "a/b", Status: models.DepositRejected}))
	}))
	defer srv.Close()

	d := newTestAdapter(t, srv.URL)
	got, err := d.adapter.RejectDeposit(context.Background(), "a/b", "blurry receipt")

	require.NoError(t, err)
	assert.Equal(t, models.DepositRejected, got.Status)
}
