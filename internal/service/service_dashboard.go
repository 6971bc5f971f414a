package service

import (
	"context"

	"github.com/MKhiriev/fx-desk/internal/adapter"
	"github.com/MKhiriev/fx-desk/internal/logger"
	"github.com/MKhiriev/fx-desk/models"
)

// RecentTransactionsLimit is how many transactions a dashboard shows.
const RecentTransactionsLimit = 10

type dashboardService struct {
	adapter adapter.ServerAdapter

	logger *logger.Logger
}

func NewDashboardService(serverAdapter adapter.ServerAdapter, logger *logger.Logger) DashboardService {
	return &dashboardService{adapter: serverAdapter, logger: logger}
}

func (d *dashboardService) ClientStats(ctx context.Context) (models.DashboardStats, error) {
	return d.adapter.ClientStats(ctx)
}

func (d *dashboardService) ClientAccounts(ctx context.Context) ([]models.TradingAccount, error) {
	return d.adapter.ClientAccounts(ctx)
}

func (d *dashboardService) RecentTransactions(ctx context.Context) ([]models.Transaction, error) {
	return d.adapter.ClientTransactions(ctx, RecentTransactionsLimit)
}

func (d *dashboardService) AdminOverview(ctx context.Context) (models.AdminOverview, error) {
	overview, err := d.adapter.AdminOverview(ctx)
	if err != nil {
		return models.AdminOverview{}, err
	}
	if len(overview.Transactions) > RecentTransactionsLimit {
		overview.Transactions = overview.Transactions[:RecentTransactionsLimit]
	}
	return overview, nil
}
