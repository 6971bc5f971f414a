package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/MKhiriev/fx-desk/models"
)

type httpServerAdapter struct {
	transport *Transport
}

// NewHTTPServerAdapter returns the REST implementation of [ServerAdapter] on
// top of transport.
func NewHTTPServerAdapter(transport *Transport) ServerAdapter {
	return &httpServerAdapter{transport: transport}
}

// do performs the call and decodes the data member into dst. A data member
// that does not fit dst is a malformed response.
func (h *httpServerAdapter) do(ctx context.Context, method, path string, body, dst any, opts ...RequestOption) error {
	raw, err := h.transport.Request(ctx, method, path, body, opts...)
	if err != nil {
		return err
	}
	return h.decode(ctx, method, path, raw, dst, opts)
}

func (h *httpServerAdapter) decode(ctx context.Context, method, path string, raw json.RawMessage, dst any, opts []RequestOption) error {
	if dst == nil {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return h.transport.fail(ctx, method, path, h.transport.options(opts),
			&APIError{Kind: KindMalformed, Status: http.StatusOK, Err: fmt.Errorf("decode %s: %w", path, err)})
	}
	return nil
}

func loginPath(role models.Role) (string, error) {
	switch role {
	case models.RoleClient:
		return "/api/auth/login", nil
	case models.RoleAdmin, models.RoleSuperAdmin, models.RoleAgent:
		return "/api/" + string(role) + "/auth/login", nil
	default:
		return "", fmt.Errorf("no login endpoint for role %q", role)
	}
}

func limitQuery(limit int) RequestOption {
	if limit <= 0 {
		return WithQuery(nil)
	}
	return WithQuery(map[string]string{"limit": strconv.Itoa(limit)})
}

// Login implements [ServerAdapter]. It POSTs creds to the login endpoint of
// role and returns the issued token together with the user object.
func (h *httpServerAdapter) Login(ctx context.Context, role models.Role, creds models.Credentials) (models.LoginResult, error) {
	path, err := loginPath(role)
	if err != nil {
		return models.LoginResult{}, err
	}

	var result models.LoginResult
	if err = h.do(ctx, http.MethodPost, path, creds, &result, Anonymous()); err != nil {
		return models.LoginResult{}, err
	}
	if result.Token == "" {
		return models.LoginResult{}, h.transport.fail(ctx, http.MethodPost, path, h.transport.options(nil),
			&APIError{Kind: KindMalformed, Status: http.StatusOK, Err: fmt.Errorf("login response has no token")})
	}
	if result.User.Role == "" {
		result.User.Role = role
	}
	return result, nil
}

// Health implements [ServerAdapter].
func (h *httpServerAdapter) Health(ctx context.Context) error {
	_, err := h.transport.Request(ctx, http.MethodGet, "/api/health", nil,
		Anonymous(), Silent(), WithTimeout(h.transport.healthTimeout))
	return err
}

func (h *httpServerAdapter) ClientStats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats
	err := h.do(ctx, http.MethodGet, "/api/client/dashboard/stats", nil, &stats)
	return stats, err
}

func (h *httpServerAdapter) ClientAccounts(ctx context.Context) ([]models.TradingAccount, error) {
	var accounts []models.TradingAccount
	err := h.do(ctx, http.MethodGet, "/api/client/accounts", nil, &accounts)
	return accounts, err
}

func (h *httpServerAdapter) ClientTransactions(ctx context.Context, limit int) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := h.do(ctx, http.MethodGet, "/api/client/transactions", nil, &txs, limitQuery(limit))
	return txs, err
}

func (h *httpServerAdapter) AdminStats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats
	err := h.do(ctx, http.MethodGet, "/api/admin/dashboard/stats", nil, &stats)
	return stats, err
}

func (h *httpServerAdapter) AdminRevenue(ctx context.Context) ([]models.RevenuePoint, error) {
	var points []models.RevenuePoint
	err := h.do(ctx, http.MethodGet, "/api/admin/dashboard/revenue", nil, &points)
	return points, err
}

func (h *httpServerAdapter) AdminTransactions(ctx context.Context, limit int) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := h.do(ctx, http.MethodGet, "/api/admin/dashboard/transactions", nil, &txs, limitQuery(limit))
	return txs, err
}

// AdminOverview implements [ServerAdapter]. The three resources are fetched
// concurrently; any failure fails the whole overview.
func (h *httpServerAdapter) AdminOverview(ctx context.Context) (models.AdminOverview, error) {
	calls := []Call{
		{Method: http.MethodGet, Path: "/api/admin/dashboard/stats"},
		{Method: http.MethodGet, Path: "/api/admin/dashboard/revenue"},
		{Method: http.MethodGet, Path: "/api/admin/dashboard/transactions", Options: []RequestOption{limitQuery(10)}},
	}
	raws, err := h.transport.Batch(ctx, calls...)
	if err != nil {
		return models.AdminOverview{}, err
	}

	var overview models.AdminOverview
	targets := []any{&overview.Stats, &overview.Revenue, &overview.Transactions}
	for i, raw := range raws {
		if err = h.decode(ctx, calls[i].Method, calls[i].Path, raw, targets[i], nil); err != nil {
			return models.AdminOverview{}, err
		}
	}
	return overview, nil
}

func (h *httpServerAdapter) Deposits(ctx context.Context, filter models.DepositFilter) (models.Page[models.Deposit], error) {
	query := map[string]string{"status": string(filter.Status)}
	if filter.Page > 0 {
		query["page"] = strconv.Itoa(filter.Page)
	}
	if filter.Limit > 0 {
		query["limit"] = strconv.Itoa(filter.Limit)
	}

	var page models.Page[models.Deposit]
	err := h.do(ctx, http.MethodGet, "/api/admin/deposits", nil, &page, WithQuery(query))
	return page, err
}

func (h *httpServerAdapter) ApproveDeposit(ctx context.Context, id string) (models.Deposit, error) {
	var deposit models.Deposit
	err := h.do(ctx, http.MethodPost, "/api/admin/deposits/"+url.PathEscape(id)+"/approve", nil, &deposit)
	return deposit, err
}

func (h *httpServerAdapter) RejectDeposit(ctx context.Context, id, reason string) (models.Deposit, error) {
	var deposit models.Deposit
	body := map[string]string{"reason": reason}
	err := h.do(ctx, http.MethodPost, "/api/admin/deposits/"+url.PathEscape(id)+"/reject", body, &deposit)
	return deposit, err
}

func (h *httpServerAdapter) PaymentMethods(ctx context.Context) ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	err := h.do(ctx, http.MethodGet, "/api/admin/payment-methods", nil, &methods)
	return methods, err
}

func (h *httpServerAdapter) CreatePaymentMethod(ctx context.Context, method models.PaymentMethod) (models.PaymentMethod, error) {
	var created models.PaymentMethod
	err := h.do(ctx, http.MethodPost, "/api/admin/payment-methods", method, &created)
	return created, err
}

func (h *httpServerAdapter) UpdatePaymentMethod(ctx context.Context, method models.PaymentMethod) (models.PaymentMethod, error) {
	var updated models.PaymentMethod
	err := h.do(ctx, http.MethodPut, "/api/admin/payment-methods/"+url.PathEscape(method.ID), method, &updated)
	return updated, err
}

func (h *httpServerAdapter) DeletePaymentMethod(ctx context.Context, id string) error {
	_, err := h.transport.Request(ctx, http.MethodDelete, "/api/admin/payment-methods/"+url.PathEscape(id), nil)
	return err
}

func (h *httpServerAdapter) LeverageGroups(ctx context.Context) ([]models.LeverageGroup, error) {
	var groups []models.LeverageGroup
	err := h.do(ctx, http.MethodGet, "/api/admin/leverage-groups", nil, &groups)
	return groups, err
}

func (h *httpServerAdapter) UpdateLeverageGroup(ctx context.Context, group models.LeverageGroup) (models.LeverageGroup, error) {
	var updated models.LeverageGroup
	err := h.do(ctx, http.MethodPut, "/api/admin/leverage-groups/"+url.PathEscape(group.ID), group, &updated)
	return updated, err
}

func (h *httpServerAdapter) ExchangeRates(ctx context.Context) ([]models.ExchangeRate, error) {
	var rates []models.ExchangeRate
	err := h.do(ctx, http.MethodGet, "/api/admin/exchange-rates", nil, &rates)
	return rates, err
}

func (h *httpServerAdapter) UpdateExchangeRate(ctx context.Context, rate models.ExchangeRate) (models.ExchangeRate, error) {
	var updated models.ExchangeRate
	err := h.do(ctx, http.MethodPut, "/api/admin/exchange-rates/"+url.PathEscape(rate.ID), rate, &updated)
	return updated, err
}

func (h *httpServerAdapter) Tickets(ctx context.Context) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := h.do(ctx, http.MethodGet, "/api/tickets", nil, &tickets)
	return tickets, err
}

func (h *httpServerAdapter) Ticket(ctx context.Context, id string) (models.Ticket, error) {
	var ticket models.Ticket
	err := h.do(ctx, http.MethodGet, "/api/tickets/"+url.PathEscape(id), nil, &ticket)
	return ticket, err
}

func (h *httpServerAdapter) TicketMessages(ctx context.Context, ticketID string) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := h.do(ctx, http.MethodGet, "/api/tickets/"+url.PathEscape(ticketID)+"/messages", nil, &messages)
	return messages, err
}

func (h *httpServerAdapter) PostTicketMessage(ctx context.Context, ticketID, text string) (models.ChatMessage, error) {
	var message models.ChatMessage
	err := h.do(ctx, http.MethodPost, "/api/tickets/"+url.PathEscape(ticketID)+"/messages",
		models.NewTicketMessage{Text: text}, &message)
	return message, err
}

func (h *httpServerAdapter) UploadTicketAttachment(ctx context.Context, ticketID string, file UploadFile, onProgress ProgressFunc) (models.UploadedFile, error) {
	return h.upload(ctx, "/api/tickets/"+url.PathEscape(ticketID)+"/attachments", file, onProgress)
}

// Notifications implements [ServerAdapter]. Items are decoded one by one into
// the notification union.
func (h *httpServerAdapter) Notifications(ctx context.Context) ([]models.Notification, error) {
	const path = "/api/notifications"

	var raws []json.RawMessage
	if err := h.do(ctx, http.MethodGet, path, nil, &raws); err != nil {
		return nil, err
	}
	notifications, err := models.DecodeNotifications(raws)
	if err != nil {
		return nil, h.transport.fail(ctx, http.MethodGet, path, h.transport.options(nil),
			&APIError{Kind: KindMalformed, Status: http.StatusOK, Err: err})
	}
	return notifications, nil
}

func (h *httpServerAdapter) MarkNotificationRead(ctx context.Context, id string) error {
	_, err := h.transport.Request(ctx, http.MethodPatch, "/api/notifications/"+url.PathEscape(id)+"/read", nil)
	return err
}

func (h *httpServerAdapter) UploadKYCDocument(ctx context.Context, docType string, file UploadFile, onProgress ProgressFunc) (models.UploadedFile, error) {
	if file.Field == "" {
		file.Field = "document"
	}
	fields := make(map[string]string, len(file.Fields)+1)
	for k, v := range file.Fields {
		fields[k] = v
	}
	fields["documentType"] = docType
	file.Fields = fields
	return h.upload(ctx, "/api/client/kyc/documents", file, onProgress)
}

func (h *httpServerAdapter) upload(ctx context.Context, path string, file UploadFile, onProgress ProgressFunc) (models.UploadedFile, error) {
	raw, err := h.transport.Upload(ctx, path, file, onProgress)
	if err != nil {
		return models.UploadedFile{}, err
	}

	var uploaded models.UploadedFile
	if err = h.decode(ctx, http.MethodPost, path, raw, &uploaded, nil); err != nil {
		return models.UploadedFile{}, err
	}
	return uploaded, nil
}
