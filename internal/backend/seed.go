package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/fx-desk/models"
)

// Demo account emails. Every role gets one; all share the seed password.
const (
	DemoClientEmail     = "client@fx.dev"
	DemoAdminEmail      = "admin@fx.dev"
	DemoSuperAdminEmail = "superadmin@fx.dev"
	DemoAgentEmail      = "agent@fx.dev"

	DemoPassword = "password"
)

// Seed adds one account per role, a funded client with history, pending
// deposits, platform settings and an open support ticket.
func (b *Backend) Seed(ctx context.Context, password string) error {
	demo := []models.User{
		{Email: DemoClientEmail, FirstName: "Dana", LastName: "Client", Role: models.RoleClient},
		{Email: DemoAdminEmail, FirstName: "Ari", LastName: "Admin", Role: models.RoleAdmin},
		{Email: DemoSuperAdminEmail, FirstName: "Sam", LastName: "Root", Role: models.RoleSuperAdmin},
		{Email: DemoAgentEmail, FirstName: "Alex", LastName: "Support", Role: models.RoleAgent},
	}

	users := make(map[models.Role]models.User, len(demo))
	for _, u := range demo {
		added, err := b.AddUser(ctx, u, password)
		if err != nil {
			return fmt.Errorf("error seeding %s: %w", u.Role, err)
		}
		users[u.Role] = added
	}
	client := users[models.RoleClient]
	agent := users[models.RoleAgent]

	now := b.now()

	b.mu.Lock()
	b.accounts[client.ID] = []models.TradingAccount{
		{ID: b.ids.Generate(), Login: "5001001", Group: "standard", Leverage: 100, Balance: 1250, Equity: 1312.4, Currency: "USD"},
		{ID: b.ids.Generate(), Login: "5001002", Group: "pro", Leverage: 200, Balance: 800, Equity: 776.1, Margin: 40, Currency: "EUR"},
	}
	primary := b.accounts[client.ID][0]
	for i, amount := range []float64{500, 750, 1000} {
		b.transactions = append(b.transactions, transactionRecord{userID: client.ID, tx: models.Transaction{
			ID:        b.ids.Generate(),
			Type:      models.TransactionDeposit,
			Amount:    amount,
			Currency:  primary.Currency,
			Status:    "completed",
			AccountID: primary.ID,
			CreatedAt: now.AddDate(0, i-3, 0),
		}})
	}
	b.transactions = append(b.transactions, transactionRecord{userID: client.ID, tx: models.Transaction{
		ID:        b.ids.Generate(),
		Type:      models.TransactionWithdrawal,
		Amount:    1000,
		Currency:  primary.Currency,
		Status:    "completed",
		AccountID: primary.ID,
		CreatedAt: now.Add(-48 * time.Hour),
	}})

	b.methods = []models.PaymentMethod{
		{ID: b.ids.Generate(), Name: "Bank transfer", Type: "bank", Currency: "USD", MinAmount: 100, MaxAmount: 50000, Active: true},
		{ID: b.ids.Generate(), Name: "USDT (TRC20)", Type: "crypto", Currency: "USDT", MinAmount: 50, MaxAmount: 100000, Active: true},
	}
	b.leverage = []models.LeverageGroup{
		{ID: b.ids.Generate(), Name: "standard", Leverage: 100, MaxLeverage: 500},
		{ID: b.ids.Generate(), Name: "pro", Leverage: 200, MaxLeverage: 1000},
	}
	b.rates = []models.ExchangeRate{
		{ID: b.ids.Generate(), From: "EUR", To: "USD", Rate: 1.08, UpdatedAt: now},
		{ID: b.ids.Generate(), From: "USDT", To: "USD", Rate: 1, UpdatedAt: now},
	}

	ticket := &models.Ticket{
		ID:        b.ids.Generate(),
		Subject:   "Withdrawal still pending",
		Category:  "payments",
		Priority:  "high",
		Status:    models.TicketOpen,
		UserID:    client.ID,
		CreatedAt: now.Add(-2 * time.Hour),
		UpdatedAt: now.Add(-time.Hour),
	}
	b.tickets = append(b.tickets, ticket)
	b.messages[ticket.ID] = []models.ChatMessage{
		{ID: b.ids.Generate(), TicketID: ticket.ID, SenderID: client.ID, SenderName: client.DisplayName(),
			SenderRole: models.RoleClient, Text: "My withdrawal from yesterday is still pending.", CreatedAt: now.Add(-2 * time.Hour)},
		{ID: b.ids.Generate(), TicketID: ticket.ID, SenderID: agent.ID, SenderName: agent.DisplayName(),
			SenderRole: models.RoleAgent, Text: "Checking with the payments team now.", CreatedAt: now.Add(-time.Hour)},
	}
	b.notifyLocked(client.ID, models.NotificationSystem, "Welcome", "Your account is ready", nil)
	b.mu.Unlock()

	b.AddDeposit(ctx, models.Deposit{UserID: client.ID, UserEmail: client.Email, AccountID: primary.ID,
		Amount: 250, Currency: primary.Currency, Method: "Bank transfer"})
	b.AddDeposit(ctx, models.Deposit{UserID: client.ID, UserEmail: client.Email, AccountID: primary.ID,
		Amount: 1200, Currency: "USDT", Method: "USDT (TRC20)"})

	b.logger.Info().Str("func", "Backend.Seed").Int("users", len(demo)).Msg("demo data seeded")
	return nil
}
