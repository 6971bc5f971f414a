// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer between the client and the
// brokerage REST API.
//
// [Transport] is the single choke point for outbound requests: it injects the
// bearer token of the session, decodes the {success,data,message,error}
// envelope and classifies every failure as an [APIError] whose kind matches a
// package sentinel with [errors.Is] (e.g. [ErrUnauthorized] for 401,
// [ErrMalformed] for a 2xx envelope without data).
//
// A 401 on an authenticated call invalidates the whole session and redirects
// to the root route through the injected [Navigator]. Every other failure is
// surfaced as a non-blocking notice unless the call is silent.
//
// [ServerAdapter] is the typed endpoint layer used by the services.
package adapter

import (
	"context"

	"github.com/MKhiriev/fx-desk/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// SessionContext is the part of the session the transport depends on.
type SessionContext interface {
	// Token returns the first stored token in role priority order, or an
	// empty string when nobody is signed in.
	Token(ctx context.Context) (string, models.Role)

	// Invalidate removes the tokens and user objects of every role at once.
	Invalidate(ctx context.Context) error
}

// Navigator switches the visible screen. The TUI implements it.
type Navigator interface {
	// Redirect replaces the current screen with the one registered for path.
	Redirect(path string)
}

// ServerAdapter defines the REST endpoints used by the client. Every method
// returns an *[APIError] on failure.
type ServerAdapter interface {
	// Login authenticates credentials against the login endpoint of role.
	// The call is anonymous: a 401 means wrong credentials, not an expired
	// session.
	Login(ctx context.Context, role models.Role, creds models.Credentials) (models.LoginResult, error)

	// Health checks that the backend is reachable using the short health
	// deadline. It never notifies the user.
	Health(ctx context.Context) error

	ClientStats(ctx context.Context) (models.DashboardStats, error)
	ClientAccounts(ctx context.Context) ([]models.TradingAccount, error)
	ClientTransactions(ctx context.Context, limit int) ([]models.Transaction, error)

	AdminStats(ctx context.Context) (models.DashboardStats, error)
	AdminRevenue(ctx context.Context) ([]models.RevenuePoint, error)
	AdminTransactions(ctx context.Context, limit int) ([]models.Transaction, error)

	// AdminOverview loads stats, revenue and recent transactions as one
	// fail-fast batch.
	AdminOverview(ctx context.Context) (models.AdminOverview, error)

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

	Tickets(ctx context.Context) ([]models.Ticket, error)
	Ticket(ctx context.Context, id string) (models.Ticket, error)
	TicketMessages(ctx context.Context, ticketID string) ([]models.ChatMessage, error)

	// PostTicketMessage persists a chat message. The realtime fan-out is
	// emitted by the caller only after this succeeds.
	PostTicketMessage(ctx context.Context, ticketID, text string) (models.ChatMessage, error)

	UploadTicketAttachment(ctx context.Context, ticketID string, file UploadFile, onProgress ProgressFunc) (models.UploadedFile, error)

	// Notifications returns the decoded notification union. Kinds this
	// client does not know are skipped.
	Notifications(ctx context.Context) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error

	UploadKYCDocument(ctx context.Context, docType string, file UploadFile, onProgress ProgressFunc) (models.UploadedFile, error)
}
