// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// DepositStatus is the review state of a deposit request.
type DepositStatus string

const (
	DepositPending  DepositStatus = "pending"
	DepositApproved DepositStatus = "approved"
	DepositRejected DepositStatus = "rejected"
)

// Deposit is a client funding request reviewed in the back-office.
type Deposit struct {
	ID           string        `json:"id"`
	UserID       string        `json:"userId"`
	UserEmail    string        `json:"userEmail"`
	AccountID    string        `json:"accountId"`
	Amount       float64       `json:"amount"`
	Currency     string        `json:"currency"`
	Method       string        `json:"method"`
	Status       DepositStatus `json:"status"`
	ProofURL     string        `json:"proofUrl,omitempty"`
	RejectReason string        `json:"rejectReason,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	ReviewedAt   *time.Time    `json:"reviewedAt,omitempty"`
}

// DepositFilter narrows the deposit list.
type DepositFilter struct {
	Status DepositStatus
	Page   int
	Limit  int
}

// PaymentMethod is a funding channel configured by admins.
type PaymentMethod struct {
	ID        string  `json:"id,omitempty"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Currency  string  `json:"currency"`
	MinAmount float64 `json:"minAmount"`
	MaxAmount float64 `json:"maxAmount"`
	Details   string  `json:"details,omitempty"`
	Active    bool    `json:"isActive"`
}

// LeverageGroup maps a trading group to its leverage settings.
type LeverageGroup struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Leverage    int    `json:"leverage"`
	MaxLeverage int    `json:"maxLeverage"`
	Description string `json:"description,omitempty"`
}

// ExchangeRate converts between a deposit currency and an account currency.
type ExchangeRate struct {
	ID        string    `json:"id,omitempty"`
	From      string    `json:"fromCurrency"`
	To        string    `json:"toCurrency"`
	Rate      float64   `json:"rate"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}
