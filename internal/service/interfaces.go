package service

import (
	"context"

	"github.com/MKhiriev/fx-desk/internal/adapter"
	"github.com/MKhiriev/fx-desk/models"
)

// SessionManager is the part of the session context the services drive.
// *session.Session implements it.
type SessionManager interface {
	Token(ctx context.Context) (string, models.Role)
	User(ctx context.Context, role models.Role) (models.User, error)
	SignIn(ctx context.Context, role models.Role, token string, user models.User) error
	Invalidate(ctx context.Context) error
}

// AuthService signs users in and out. Every role has its own login endpoint
// and its own token slot.
type AuthService interface {
	// Login validates creds, authenticates them against the login endpoint of
	// role and stores the returned token and user in the session.
	Login(ctx context.Context, role models.Role, creds models.Credentials) (models.User, error)

	// Logout clears every role's token.
	Logout(ctx context.Context) error

	// Restore returns the user of the session left by a previous run, if a
	// token is still stored.
	Restore(ctx context.Context) (models.User, models.Role, error)
}

// DashboardService loads the figures shown on the dashboards. Every method
// is a poller fetch: it returns the whole resource or an error.
type DashboardService interface {
	ClientStats(ctx context.Context) (models.DashboardStats, error)
	ClientAccounts(ctx context.Context) ([]models.TradingAccount, error)
	RecentTransactions(ctx context.Context) ([]models.Transaction, error)

	// AdminOverview loads stats, revenue and recent transactions together;
	// one failure fails the whole overview.
	AdminOverview(ctx context.Context) (models.AdminOverview, error)
}

// AdminService is the back-office: deposit review and platform settings.
type AdminService interface {
	Deposits(ctx context.Context, filter models.DepositFilter) (models.Page[models.Deposit], error)
	ApproveDeposit(ctx context.Context, id string) (models.Deposit, error)
	RejectDeposit(ctx context.Context, id, reason string) (models.Deposit, error)

	PaymentMethods(ctx context.Context) ([]models.PaymentMethod, error)
	CreatePaymentMethod(ctx context.Context, method models.PaymentMethod) (models.PaymentMethod, error)
	UpdatePaymentMethod(ctx context.Context, method models.PaymentMethod) (models.PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, id string) error

	LeverageGroups(ctx context.Context) ([]models.LeverageGroup, error)
	UpdateLeverageGroup(ctx context.Context, group models.LeverageGroup) (models.LeverageGroup, error)

	ExchangeRates(ctx context.Context) ([]models.ExchangeRate, error)
	UpdateExchangeRate(ctx context.Context, rate models.ExchangeRate) (models.ExchangeRate, error)
}

// AdminServiceWrapper decorates an AdminService, e.g. with input checks.
type AdminServiceWrapper interface {
	Wrap(AdminService) AdminService
}

// TicketService lists support tickets and uploads files to them. The live
// conversation itself runs through realtime.TicketChat.
type TicketService interface {
	Tickets(ctx context.Context) ([]models.Ticket, error)
	Ticket(ctx context.Context, id string) (models.Ticket, error)
	Messages(ctx context.Context, ticketID string) ([]models.ChatMessage, error)
	PostMessage(ctx context.Context, ticketID, text string) (models.ChatMessage, error)
	Attach(ctx context.Context, ticketID string, file adapter.UploadFile, onProgress adapter.ProgressFunc) (models.UploadedFile, error)
	UploadKYCDocument(ctx context.Context, docType string, file adapter.UploadFile, onProgress adapter.ProgressFunc) (models.UploadedFile, error)
}

// NotificationFeed is the notification list with its unread count.
type NotificationFeed struct {
	Items  []models.Notification
	Unread int
}

// NotificationService reads the notification feed.
type NotificationService interface {
	Feed(ctx context.Context) (NotificationFeed, error)
	MarkRead(ctx context.Context, id string) error
}
