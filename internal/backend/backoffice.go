package backend

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/MKhiriev/fx-desk/models"
)

const defaultPageLimit = 20

// Deposits returns one page of deposits, newest first. An empty status
// means every status.
func (b *Backend) Deposits(ctx context.Context, filter models.DepositFilter) (models.Page[models.Deposit], error) {
	if filter.Page < 0 || filter.Limit < 0 {
		return models.Page[models.Deposit]{}, ErrInvalidInput
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = defaultPageLimit
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	matched := make([]models.Deposit, 0)
	for i := len(b.deposits) - 1; i >= 0; i-- {
		d := b.deposits[i]
		if filter.Status == "" || d.Status == filter.Status {
			matched = append(matched, *d)
		}
	}

	page := models.Page[models.Deposit]{Items: []models.Deposit{}, Total: len(matched), Page: filter.Page, Limit: filter.Limit}
	start := (filter.Page - 1) * filter.Limit
	if start < len(matched) {
		end := min(start+filter.Limit, len(matched))
		page.Items = matched[start:end]
	}
	return page, nil
}

// ApproveDeposit credits a pending deposit to its trading account and tells
// the owner.
func (b *Backend) ApproveDeposit(ctx context.Context, id string) (models.Deposit, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	d, err := b.pendingDeposit(id)
	if err != nil {
		return models.Deposit{}, err
	}

	now := b.now()
	d.Status = models.DepositApproved
	d.ReviewedAt = &now

	accounts := b.accounts[d.UserID]
	for i := range accounts {
		if accounts[i].ID == d.AccountID {
			accounts[i].Balance += d.Amount
			accounts[i].Equity += d.Amount
		}
	}
	b.transactions = append(b.transactions, transactionRecord{userID: d.UserID, tx: models.Transaction{
		ID:        b.ids.Generate(),
		Type:      models.TransactionDeposit,
		Amount:    d.Amount,
		Currency:  d.Currency,
		Status:    "completed",
		AccountID: d.AccountID,
		CreatedAt: now,
	}})
	b.notifyLocked(d.UserID, models.NotificationDeposit, "Deposit approved",
		fmt.Sprintf("Your deposit of %.2f %s was approved", d.Amount, d.Currency),
		depositData(d))

	return *d, nil
}

// RejectDeposit marks a pending deposit rejected with reason.
func (b *Backend) RejectDeposit(ctx context.Context, id, reason string) (models.Deposit, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return models.Deposit{}, ErrInvalidInput
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	d, err := b.pendingDeposit(id)
	if err != nil {
		return models.Deposit{}, err
	}

	now := b.now()
	d.Status = models.DepositRejected
	d.RejectReason = reason
	d.ReviewedAt = &now

	b.notifyLocked(d.UserID, models.NotificationDeposit, "Deposit rejected", reason,
		depositData(d))

	return *d, nil
}

func (b *Backend) pendingDeposit(id string) (*models.Deposit, error) {
	for _, d := range b.deposits {
		if d.ID != id {
			continue
		}
		if d.Status != models.DepositPending {
			return nil, ErrAlreadyReviewed
		}
		return d, nil
	}
	return nil, ErrNotFound
}

// AddDeposit files a pending deposit for userID.
func (b *Backend) AddDeposit(ctx context.Context, d models.Deposit) models.Deposit {
	b.mu.Lock()
	defer b.mu.Unlock()

	if d.ID == "" {
		d.ID = b.ids.Generate()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = b.now()
	}
	d.Status = models.DepositPending
	b.deposits = append(b.deposits, &d)
	return d
}

func (b *Backend) PaymentMethods(ctx context.Context) ([]models.PaymentMethod, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.methods), nil
}

func (b *Backend) CreatePaymentMethod(ctx context.Context, m models.PaymentMethod) (models.PaymentMethod, error) {
	if err := checkPaymentMethod(m); err != nil {
		return models.PaymentMethod{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	m.ID = b.ids.Generate()
	b.methods = append(b.methods, m)
	return m, nil
}

func (b *Backend) UpdatePaymentMethod(ctx context.Context, m models.PaymentMethod) (models.PaymentMethod, error) {
	if err := checkPaymentMethod(m); err != nil {
		return models.PaymentMethod{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	i := slices.IndexFunc(b.methods, func(x models.PaymentMethod) bool { return x.ID == m.ID })
	if i < 0 {
		return models.PaymentMethod{}, ErrNotFound
	}
	b.methods[i] = m
	return m, nil
}

func (b *Backend) DeletePaymentMethod(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := slices.IndexFunc(b.methods, func(x models.PaymentMethod) bool { return x.ID == id })
	if i < 0 {
		return ErrNotFound
	}
	b.methods = slices.Delete(b.methods, i, i+1)
	return nil
}

func checkPaymentMethod(m models.PaymentMethod) error {
	if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.Currency) == "" {
		return ErrInvalidInput
	}
	if m.MinAmount < 0 || (m.MaxAmount > 0 && m.MaxAmount < m.MinAmount) {
		return ErrInvalidInput
	}
	return nil
}

func (b *Backend) LeverageGroups(ctx context.Context) ([]models.LeverageGroup, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.leverage), nil
}

func (b *Backend) UpdateLeverageGroup(ctx context.Context, g models.LeverageGroup) (models.LeverageGroup, error) {
	if g.Leverage <= 0 || (g.MaxLeverage > 0 && g.Leverage > g.MaxLeverage) {
		return models.LeverageGroup{}, ErrInvalidInput
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	i := slices.IndexFunc(b.leverage, func(x models.LeverageGroup) bool { return x.ID == g.ID })
	if i < 0 {
		return models.LeverageGroup{}, ErrNotFound
	}
	if g.Name == "" {
		g.Name = b.leverage[i].Name
	}
	b.leverage[i] = g
	return g, nil
}

func (b *Backend) ExchangeRates(ctx context.Context) ([]models.ExchangeRate, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.rates), nil
}

func (b *Backend) UpdateExchangeRate(ctx context.Context, r models.ExchangeRate) (models.ExchangeRate, error) {
	if r.Rate <= 0 {
		return models.ExchangeRate{}, ErrInvalidInput
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	i := slices.IndexFunc(b.rates, func(x models.ExchangeRate) bool { return x.ID == r.ID })
	if i < 0 {
		return models.ExchangeRate{}, ErrNotFound
	}
	if r.From == "" {
		r.From = b.rates[i].From
	}
	if r.To == "" {
		r.To = b.rates[i].To
	}
	r.UpdatedAt = b.now()
	b.rates[i] = r
	return r, nil
}

func depositData(d *models.Deposit) map[string]any {
	return map[string]any{"depositId": d.ID, "amount": d.Amount, "currency": d.Currency, "status": d.Status}
}
