// Package backend is the in-memory brokerage used by the development
// server. It keeps users, trading accounts, deposits, platform settings,
// support tickets and notifications, and enforces who may see what.
//
// Nothing is persisted: a restart reseeds the demo data.
package backend

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/fx-desk/internal/crypto"
	"github.com/MKhiriev/fx-desk/internal/logger"
	"github.com/MKhiriev/fx-desk/internal/utils"
	"github.com/MKhiriev/fx-desk/models"
	"github.com/juju/clock"
	"github.com/juju/pubsub/v2"
)

const notificationTopic = "backend.notification"

type account struct {
	user         models.User
	passwordHash string
}

type transactionRecord struct {
	userID string
	tx     models.Transaction
}

// NotificationRecord is a stored notification in its wire shape: the
// common header, the type tag and the type-specific data member.
type NotificationRecord struct {
	models.NotificationHeader
	Type models.NotificationKind `json:"type"`
	Data any                     `json:"data,omitempty"`
}

// Delivery is a notification addressed to one user, as published to
// notification subscribers.
type Delivery struct {
	UserID       string
	Notification NotificationRecord
}

// Backend is safe for concurrent use.
type Backend struct {
	hasher crypto.PasswordHasher
	clock  clock.Clock
	ids    *utils.UUIDGenerator
	logger *logger.Logger
	hub    *pubsub.SimpleHub

	mu            sync.RWMutex
	users         map[string]account // role|email
	accounts      map[string][]models.TradingAccount
	transactions  []transactionRecord
	deposits      []*models.Deposit
	methods       []models.PaymentMethod
	leverage      []models.LeverageGroup
	rates         []models.ExchangeRate
	tickets       []*models.Ticket
	messages      map[string][]models.ChatMessage
	notifications map[string][]*NotificationRecord
	documents     map[string][]models.UploadedFile
}

// New returns an empty backend. Call Seed to add the demo accounts.
func New(hasher crypto.PasswordHasher, clk clock.Clock, log *logger.Logger) *Backend {
	return &Backend{
		hasher:        hasher,
		clock:         clk,
		ids:           utils.NewUUIDGenerator(),
		logger:        log.Component("backend"),
		hub:           pubsub.NewSimpleHub(&pubsub.SimpleHubConfig{}),
		users:         make(map[string]account),
		accounts:      make(map[string][]models.TradingAccount),
		messages:      make(map[string][]models.ChatMessage),
		notifications: make(map[string][]*NotificationRecord),
		documents:     make(map[string][]models.UploadedFile),
	}
}

// SubscribeNotifications calls fn for every notification stored from now on.
// fn runs asynchronously, in publish order.
func (b *Backend) SubscribeNotifications(fn func(Delivery)) (unsubscribe func()) {
	return b.hub.Subscribe(notificationTopic, func(_ string, data interface{}) {
		if d, ok := data.(Delivery); ok {
			fn(d)
		}
	})
}

func userKey(role models.Role, email string) string {
	return string(role) + "|" + strings.ToLower(strings.TrimSpace(email))
}

func (b *Backend) now() time.Time {
	return b.clock.Now().UTC()
}

// AddUser registers an account for role. The password is stored hashed.
func (b *Backend) AddUser(ctx context.Context, user models.User, password string) (models.User, error) {
	if !user.Role.Valid() || strings.TrimSpace(user.Email) == "" || password == "" {
		return models.User{}, ErrInvalidInput
	}

	hash, err := b.hasher.Hash(password)
	if err != nil {
		return models.User{}, fmt.Errorf("error hashing password: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if user.ID == "" {
		user.ID = b.ids.Generate()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = b.now()
	}
	b.users[userKey(user.Role, user.Email)] = account{user: user, passwordHash: hash}

	logger.FromContext(ctx).Debug().Str("func", "Backend.AddUser").Str("role", string(user.Role)).Msg("user added")
	return user, nil
}

// Authenticate checks creds against the accounts of role.
func (b *Backend) Authenticate(ctx context.Context, role models.Role, creds models.Credentials) (models.User, error) {
	b.mu.RLock()
	acc, ok := b.users[userKey(role, creds.Email)]
	b.mu.RUnlock()

	if !ok || !b.hasher.Verify(creds.Password, acc.passwordHash) {
		return models.User{}, ErrInvalidCredentials
	}
	return acc.user, nil
}

// ClientStats sums the accounts, transactions and tickets of userID.
func (b *Backend) ClientStats(ctx context.Context, userID string) (models.DashboardStats, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var stats models.DashboardStats
	for _, a := range b.accounts[userID] {
		stats.Balance += a.Balance
		stats.Equity += a.Equity
		stats.ActiveAccounts++
	}
	for _, rec := range b.transactions {
		if rec.userID != userID {
			continue
		}
		stats.Total++
		addTotals(&stats, rec.tx)
	}
	for _, d := range b.deposits {
		if d.UserID == userID && d.Status == models.DepositPending {
			stats.PendingCount++
		}
	}
	for _, t := range b.tickets {
		if t.UserID == userID && isOpen(t.Status) {
			stats.OpenTickets++
		}
	}
	return stats, nil
}

// ClientAccounts returns the trading accounts of userID.
func (b *Backend) ClientAccounts(ctx context.Context, userID string) ([]models.TradingAccount, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.accounts[userID]), nil
}

// ClientTransactions returns the newest transactions of userID first. A
// limit of zero means all of them.
func (b *Backend) ClientTransactions(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.latestTransactions(func(rec transactionRecord) bool { return rec.userID == userID }, limit), nil
}

// AdminStats sums the whole platform.
func (b *Backend) AdminStats(ctx context.Context) (models.DashboardStats, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var stats models.DashboardStats
	for _, acc := range b.users {
		if acc.user.Role == models.RoleClient {
			stats.Total++
		}
	}
	for _, list := range b.accounts {
		for _, a := range list {
			stats.Balance += a.Balance
			stats.Equity += a.Equity
			stats.ActiveAccounts++
		}
	}
	for _, rec := range b.transactions {
		addTotals(&stats, rec.tx)
	}
	for _, d := range b.deposits {
		if d.Status == models.DepositPending {
			stats.PendingCount++
		}
	}
	for _, t := range b.tickets {
		if isOpen(t.Status) {
			stats.OpenTickets++
		}
	}
	return stats, nil
}

// Revenue groups completed deposits by month, oldest first.
func (b *Backend) Revenue(ctx context.Context) ([]models.RevenuePoint, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	byMonth := make(map[string]float64)
	for _, rec := range b.transactions {
		if rec.tx.Type == models.TransactionDeposit && rec.tx.Status == "completed" {
			byMonth[rec.tx.CreatedAt.Format("2006-01")] += rec.tx.Amount
		}
	}

	points := make([]models.RevenuePoint, 0, len(byMonth))
	for period, revenue := range byMonth {
		points = append(points, models.RevenuePoint{Period: period, Revenue: revenue})
	}
	slices.SortFunc(points, func(a, b models.RevenuePoint) int { return strings.Compare(a.Period, b.Period) })
	return points, nil
}

// AdminTransactions returns the newest platform transactions first.
func (b *Backend) AdminTransactions(ctx context.Context, limit int) ([]models.Transaction, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.latestTransactions(func(transactionRecord) bool { return true }, limit), nil
}

func (b *Backend) latestTransactions(keep func(transactionRecord) bool, limit int) []models.Transaction {
	txs := make([]models.Transaction, 0)
	for _, rec := range b.transactions {
		if keep(rec) {
			txs = append(txs, rec.tx)
		}
	}
	slices.SortStableFunc(txs, func(a, b models.Transaction) int { return b.CreatedAt.Compare(a.CreatedAt) })
	if limit > 0 && len(txs) > limit {
		txs = txs[:limit]
	}
	return txs
}

func addTotals(stats *models.DashboardStats, tx models.Transaction) {
	if tx.Status != "completed" {
		return
	}
	switch tx.Type {
	case models.TransactionDeposit:
		stats.TotalDeposits += tx.Amount
	case models.TransactionWithdrawal:
		stats.TotalWithdraws += tx.Amount
	}
}

func isOpen(s models.TicketStatus) bool {
	return s == models.TicketOpen || s == models.TicketInProgress
}

func isStaff(role models.Role) bool {
	return role != models.RoleClient
}
