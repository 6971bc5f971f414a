package tui

import (
	"github.com/MKhiriev/fx-desk/internal/notify"
	"github.com/MKhiriev/fx-desk/internal/realtime"
	"github.com/MKhiriev/fx-desk/internal/service"
	"github.com/MKhiriev/fx-desk/internal/synchronizer"
	"github.com/MKhiriev/fx-desk/models"
)

// NavigateTo switches to the screen registered for Page. Payload is passed
// to the screen factory.
type NavigateTo struct {
	Page    string
	Payload any
}

// redirectMsg is a navigation requested from outside the program.
type redirectMsg struct {
	path string
}

type noticeMsg struct {
	notice notify.Notice
}

type expireToastMsg struct {
	id int
}

type loginDoneMsg struct {
	user models.User
	role models.Role
	err  error
}

type restoreDoneMsg struct {
	user models.User
	role models.Role
	err  error
}

type logoutDoneMsg struct{}

// Poller states carry the generation of the screen that started the
// poller, so a late state of a closed screen is dropped.
type statsStateMsg struct {
	gen   int
	state synchronizer.State[models.DashboardStats]
}

type accountsStateMsg struct {
	gen   int
	state synchronizer.State[[]models.TradingAccount]
}

type transactionsStateMsg struct {
	gen   int
	state synchronizer.State[[]models.Transaction]
}

type overviewStateMsg struct {
	gen   int
	state synchronizer.State[models.AdminOverview]
}

type feedStateMsg struct {
	gen   int
	state synchronizer.State[service.NotificationFeed]
}

type ticketsLoadedMsg struct {
	tickets []models.Ticket
	err     error
}

type chatOpenedMsg struct {
	gen  int
	chat Chat
	err  error
}

type chatViewMsg struct {
	gen  int
	view realtime.ChatView
}

type messageSentMsg struct {
	err error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
