// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// DashboardStats are the aggregate figures shown on top of a dashboard.
type DashboardStats struct {
	Total          int     `json:"total"`
	Balance        float64 `json:"balance"`
	Equity         float64 `json:"equity"`
	TotalDeposits  float64 `json:"totalDeposits"`
	TotalWithdraws float64 `json:"totalWithdrawals"`
	PendingCount   int     `json:"pendingCount"`
	ActiveAccounts int     `json:"activeAccounts"`
	OpenTickets    int     `json:"openTickets"`
}

// RevenuePoint is one bucket of the admin revenue chart.
type RevenuePoint struct {
	Period  string  `json:"period"`
	Revenue float64 `json:"revenue"`
}

// TransactionType classifies money movements.
type TransactionType string

const (
	TransactionDeposit    TransactionType = "deposit"
	TransactionWithdrawal TransactionType = "withdrawal"
	TransactionTransfer   TransactionType = "transfer"
)

// Transaction is a row of the transaction history table.
type Transaction struct {
	ID        string          `json:"id"`
	Type      TransactionType `json:"type"`
	Amount    float64         `json:"amount"`
	Currency  string          `json:"currency"`
	Status    string          `json:"status"`
	AccountID string          `json:"accountId"`
	CreatedAt time.Time       `json:"createdAt"`
}

// TradingAccount is a live account summary shown on the client dashboard.
type TradingAccount struct {
	ID       string  `json:"id"`
	Login    string  `json:"login"`
	Group    string  `json:"group"`
	Leverage int     `json:"leverage"`
	Balance  float64 `json:"balance"`
	Equity   float64 `json:"equity"`
	Margin   float64 `json:"margin"`
	Currency string  `json:"currency"`
}

// AdminOverview bundles the three resources an admin dashboard loads together.
type AdminOverview struct {
	Stats        DashboardStats
	Revenue      []RevenuePoint
	Transactions []Transaction
}
