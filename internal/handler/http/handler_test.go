package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/fx-desk/internal/backend"
	"github.com/MKhiriev/fx-desk/internal/config"
	"github.com/MKhiriev/fx-desk/internal/logger"
	"github.com/MKhiriev/fx-desk/models"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "plain$" + p, nil }
func (plainHasher) Verify(p, enc string) bool     { return enc == "plain$"+p }

var testConfig = config.ServerConfig{
	HTTPAddress:    "localhost:0",
	RequestTimeout: 5 * time.Second,
	TokenSignKey:   "test-sign-key",
	TokenIssuer:    "fx-desk-test",
	TokenDuration:  time.Hour,
	Version:        "1.2.3",
}

type testAPI struct {
	backend *backend.Backend
	handler *Handler
	router  *chi.Mux
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	b := backend.New(plainHasher{}, testclock.NewClock(time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)), logger.Nop())
	require.NoError(t, b.Seed(context.Background(), backend.DemoPassword))

	h := NewHandler(b, nil, testConfig, logger.Nop())
	return &testAPI{backend: b, handler: h, router: h.Init()}
}

// call sends a JSON request and decodes the envelope of the answer.
func (a *testAPI) call(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, models.Envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return a.serve(t, req)
}

func (a *testAPI) serve(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, models.Envelope) {
	t.Helper()
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)

	var env models.Envelope
	if rr.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	}
	return rr, env
}

func (a *testAPI) login(t *testing.T, path, email string) string {
	t.Helper()
	rr, env := a.call(t, http.MethodPost, path, "", models.Credentials{Email: email, Password: backend.DemoPassword})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	result := data[models.LoginResult](t, env)
	require.NotEmpty(t, result.Token)
	return result.Token
}

func (a *testAPI) clientToken(t *testing.T) string {
	return a.login(t, "/api/auth/login", backend.DemoClientEmail)
}

func (a *testAPI) adminToken(t *testing.T) string {
	return a.login(t, "/api/admin/auth/login", backend.DemoAdminEmail)
}

func data[T any](t *testing.T, env models.Envelope) T {
	t.Helper()
	require.True(t, env.Success, env.Text())
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

// ── Auth ─────────────────────────────────────────────────────────────────────

func TestLogin_EveryRoleHasItsEndpoint(t *testing.T) {
	api := newTestAPI(t)

	cases := []struct {
		path  string
		email string
		role  models.Role
	}{
		{"/api/auth/login", backend.DemoClientEmail, models.RoleClient},
		{"/api/admin/auth/login", backend.DemoAdminEmail, models.RoleAdmin},
		{"/api/superadmin/auth/login", backend.DemoSuperAdminEmail, models.RoleSuperAdmin},
		{"/api/agent/auth/login", backend.DemoAgentEmail, models.RoleAgent},
	}
	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			_, env := api.call(t, http.MethodPost, tc.path, "", models.Credentials{Email: tc.email, Password: backend.DemoPassword})
			result := data[models.LoginResult](t, env)
			assert.Equal(t, tc.role, result.User.Role)

			claims := &models.TokenClaims{}
			_, err := jwt.ParseWithClaims(result.Token, claims, func(*jwt.Token) (any, error) {
				return []byte(testConfig.TokenSignKey), nil
			})
			require.NoError(t, err)
			assert.Equal(t, tc.role, claims.Role)
			assert.Equal(t, result.User.ID, claims.Subject)
			assert.Equal(t, result.User.DisplayName(), claims.Name)
		})
	}
}

func TestLogin_Rejections(t *testing.T) {
	api := newTestAPI(t)

	rr, env := api.call(t, http.MethodPost, "/api/auth/login", "",
		models.Credentials{Email: backend.DemoClientEmail, Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, env.Success)
	assert.Equal(t, backend.ErrInvalidCredentials.Error(), env.Error)

	rr, _ = api.call(t, http.MethodPost, "/api/admin/auth/login", "",
		models.Credentials{Email: backend.DemoClientEmail, Password: backend.DemoPassword})
	assert.Equal(t, http.StatusUnauthorized, rr.Code, "a client account cannot sign in as admin")

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{broken"))
	rr, env = api.serve(t, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, errInvalidJSON.Error(), env.Error)
}

func TestAuthMiddleware(t *testing.T) {
	api := newTestAPI(t)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testConfig.TokenIssuer,
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
		Role: models.RoleClient,
	})
	expiredToken, err := expired.SignedString([]byte(testConfig.TokenSignKey))
	require.NoError(t, err)

	cases := []struct {
		name    string
		header  string
		wantErr string
	}{
		{"no header", "", ErrEmptyAuthorizationHeader.Error()},
		{"not bearer", "Basic abc", ErrInvalidAuthorizationHeader.Error()},
		{"garbage token", "Bearer abc.def.ghi", http.StatusText(http.StatusUnauthorized)},
		{"expired token", "Bearer " + expiredToken, ErrTokenExpired.Error()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/tickets", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr, env := api.serve(t, req)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Equal(t, tc.wantErr, env.Error)
		})
	}
}

func TestRequireRole(t *testing.T) {
	api := newTestAPI(t)
	client := api.clientToken(t)
	admin := api.adminToken(t)
	superadmin := api.login(t, "/api/superadmin/auth/login", backend.DemoSuperAdminEmail)

	rr, env := api.call(t, http.MethodGet, "/api/admin/dashboard/stats", client, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, ErrRoleNotAllowed.Error(), env.Error)

	rr, _ = api.call(t, http.MethodGet, "/api/client/accounts", admin, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr, _ = api.call(t, http.MethodGet, "/api/admin/dashboard/stats", superadmin, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

// ── Routing ──────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	rr, env := api.call(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	status := data[healthStatus](t, env)
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "1.2.3", status.Version)
	assert.NotEmpty(t, rr.Header().Get(traceIDHeader))
}

func TestUnknownRoutesAnswer404Envelope(t *testing.T) {
	api := newTestAPI(t)

	rr, env := api.call(t, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.False(t, env.Success)

	rr, env = api.call(t, http.MethodDelete, "/api/health", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code, "wrong method is hidden as 404")
	assert.Equal(t, http.StatusText(http.StatusNotFound), env.Error)
}

// ── Client ───────────────────────────────────────────────────────────────────

func TestClientDashboard(t *testing.T) {
	api := newTestAPI(t)
	token := api.clientToken(t)

	_, env := api.call(t, http.MethodGet, "/api/client/dashboard/stats", token, nil)
	stats := data[models.DashboardStats](t, env)
	assert.Equal(t, 2050.0, stats.Balance)

	_, env = api.call(t, http.MethodGet, "/api/client/accounts", token, nil)
	assert.Len(t, data[[]models.TradingAccount](t, env), 2)

	_, env = api.call(t, http.MethodGet, "/api/client/transactions?limit=3", token, nil)
	assert.Len(t, data[[]models.Transaction](t, env), 3)

	rr, env := api.call(t, http.MethodGet, "/api/client/transactions?limit=abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid limit", env.Error)
}

// ── Admin ────────────────────────────────────────────────────────────────────

func TestAdminDashboard(t *testing.T) {
	api := newTestAPI(t)
	token := api.adminToken(t)

	_, env := api.call(t, http.MethodGet, "/api/admin/dashboard/stats", token, nil)
	assert.Equal(t, 2, data[models.DashboardStats](t, env).PendingCount)

	_, env = api.call(t, http.MethodGet, "/api/admin/dashboard/revenue", token, nil)
	assert.Len(t, data[[]models.RevenuePoint](t, env), 3)

	_, env = api.call(t, http.MethodGet, "/api/admin/dashboard/transactions?limit=2", token, nil)
	assert.Len(t, data[[]models.Transaction](t, env), 2)
}

func TestDepositReview(t *testing.T) {
	api := newTestAPI(t)
	token := api.adminToken(t)

	_, env := api.call(t, http.MethodGet, "/api/admin/deposits?status=pending&page=1&limit=10", token, nil)
	page := data[models.Page[models.Deposit]](t, env)
	require.Equal(t, 2, page.Total)
	first, second := page.Items[0].ID, page.Items[1].ID

	rr, env := api.call(t, http.MethodPost, "/api/admin/deposits/"+first+"/approve", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, models.DepositApproved, data[models.Deposit](t, env).Status)

	rr, env = api.call(t, http.MethodPost, "/api/admin/deposits/"+first+"/approve", token, nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, backend.ErrAlreadyReviewed.Error(), env.Error)

	rr, _ = api.call(t, http.MethodPost, "/api/admin/deposits/"+second+"/reject", token, map[string]string{"reason": ""})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr, env = api.call(t, http.MethodPost, "/api/admin/deposits/"+second+"/reject", token, map[string]string{"reason": "blurry proof"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "blurry proof", data[models.Deposit](t, env).RejectReason)

	rr, _ = api.call(t, http.MethodPost, "/api/admin/deposits/missing/approve", token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPlatformSettings(t *testing.T) {
	api := newTestAPI(t)
	token := api.adminToken(t)

	rr, env := api.call(t, http.MethodPost, "/api/admin/payment-methods", token,
		models.PaymentMethod{Name: "Card", Currency: "EUR", MinAmount: 10, MaxAmount: 1000})
	require.Equal(t, http.StatusCreated, rr.Code)
	created := data[models.PaymentMethod](t, env)

	created.MaxAmount = 2000
	_, env = api.call(t, http.MethodPut, "/api/admin/payment-methods/"+created.ID, token, created)
	assert.Equal(t, 2000.0, data[models.PaymentMethod](t, env).MaxAmount)

	rr, env = api.call(t, http.MethodDelete, "/api/admin/payment-methods/"+created.ID, token, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, env.HasData(), "delete answers with a data member")
	assert.Equal(t, deletedResource{ID: created.ID, Deleted: true}, data[deletedResource](t, env))

	_, env = api.call(t, http.MethodGet, "/api/admin/payment-methods", token, nil)
	assert.Len(t, data[[]models.PaymentMethod](t, env), 2)

	_, env = api.call(t, http.MethodGet, "/api/admin/leverage-groups", token, nil)
	group := data[[]models.LeverageGroup](t, env)[0]
	group.Leverage = 50
	_, env = api.call(t, http.MethodPut, "/api/admin/leverage-groups/"+group.ID, token, group)
	assert.Equal(t, 50, data[models.LeverageGroup](t, env).Leverage)

	_, env = api.call(t, http.MethodGet, "/api/admin/exchange-rates", token, nil)
	rate := data[[]models.ExchangeRate](t, env)[0]
	rr, _ = api.call(t, http.MethodPut, "/api/admin/exchange-rates/"+rate.ID, token, models.ExchangeRate{Rate: -1})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// ── Tickets ──────────────────────────────────────────────────────────────────

func TestTicketConversation(t *testing.T) {
	api := newTestAPI(t)
	client := api.clientToken(t)
	agent := api.login(t, "/api/agent/auth/login", backend.DemoAgentEmail)

	_, env := api.call(t, http.MethodGet, "/api/tickets", client, nil)
	tickets := data[[]models.Ticket](t, env)
	require.Len(t, tickets, 1)
	id := tickets[0].ID

	_, env = api.call(t, http.MethodGet, "/api/tickets/"+id, agent, nil)
	assert.Equal(t, id, data[models.Ticket](t, env).ID)

	rr, env := api.call(t, http.MethodPost, "/api/tickets/"+id+"/messages", agent, models.NewTicketMessage{Text: "On it"})
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, models.RoleAgent, data[models.ChatMessage](t, env).SenderRole)

	rr, _ = api.call(t, http.MethodPost, "/api/tickets/"+id+"/messages", client, models.NewTicketMessage{Text: " "})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	_, env = api.call(t, http.MethodGet, "/api/tickets/"+id+"/messages", client, nil)
	assert.Len(t, data[[]models.ChatMessage](t, env), 3)
}

func TestTicket_OtherClientIsForbidden(t *testing.T) {
	api := newTestAPI(t)
	_, err := api.backend.AddUser(context.Background(),
		models.User{Email: "eve@fx.dev", Role: models.RoleClient}, "secret")
	require.NoError(t, err)

	_, env := api.call(t, http.MethodGet, "/api/tickets", api.clientToken(t), nil)
	id := data[[]models.Ticket](t, env)[0].ID

	_, env = api.call(t, http.MethodPost, "/api/auth/login", "", models.Credentials{Email: "eve@fx.dev", Password: "secret"})
	eve := data[models.LoginResult](t, env).Token

	rr, env := api.call(t, http.MethodGet, "/api/tickets/"+id, eve, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, backend.ErrForbidden.Error(), env.Error)
}

func multipartRequest(t *testing.T, path, token, field, fileName string, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, form.WriteField(k, v))
	}
	part, err := form.CreateFormFile(field, fileName)
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 fake"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestUploads(t *testing.T) {
	api := newTestAPI(t)
	token := api.clientToken(t)

	_, env := api.call(t, http.MethodGet, "/api/tickets", token, nil)
	id := data[[]models.Ticket](t, env)[0].ID

	rr, env := api.serve(t, multipartRequest(t, "/api/tickets/"+id+"/attachments", token, "file", "receipt.pdf", nil))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	file := data[models.UploadedFile](t, env)
	assert.Equal(t, "receipt.pdf", file.FileName)
	assert.Equal(t, int64(len("%PDF-1.4 fake")), file.Size)

	rr, env = api.serve(t, multipartRequest(t, "/api/tickets/"+id+"/attachments", token, "other", "x.pdf", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "missing file field file", env.Error)

	rr, env = api.serve(t, multipartRequest(t, "/api/client/kyc/documents", token, "document", "id.png",
		map[string]string{"documentType": "passport"}))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Contains(t, data[models.UploadedFile](t, env).URL, "/kyc/")

	rr, _ = api.serve(t, multipartRequest(t, "/api/client/kyc/documents", token, "document", "id.png", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// ── Notifications ────────────────────────────────────────────────────────────

func TestNotifications(t *testing.T) {
	api := newTestAPI(t)
	token := api.clientToken(t)

	_, env := api.call(t, http.MethodGet, "/api/notifications", token, nil)
	raws := data[[]json.RawMessage](t, env)
	list, err := models.DecodeNotifications(raws)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.NotificationSystem, list[0].Kind())

	id := list[0].Header().ID
	rr, env := api.call(t, http.MethodPatch, "/api/notifications/"+id+"/read", token, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, readState{ID: id, Read: true}, data[readState](t, env))

	_, env = api.call(t, http.MethodGet, "/api/notifications", token, nil)
	list, err = models.DecodeNotifications(data[[]json.RawMessage](t, env))
	require.NoError(t, err)
	assert.True(t, list[0].Header().Read)

	rr, _ = api.call(t, http.MethodPatch, "/api/notifications/missing/read", token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
