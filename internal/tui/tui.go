package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/fx-desk/internal/config"
	"github.com/MKhiriev/fx-desk/internal/environment"
	"github.com/MKhiriev/fx-desk/internal/logger"
	"github.com/MKhiriev/fx-desk/internal/notify"
	"github.com/MKhiriev/fx-desk/internal/realtime"
	"github.com/MKhiriev/fx-desk/internal/service"
	"github.com/MKhiriev/fx-desk/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/juju/clock"
)

// Chat is a live ticket conversation. *realtime.TicketChat implements it.
type Chat interface {
	View() realtime.ChatView
	Subscribe(fn func(realtime.ChatView)) (unsubscribe func())
	Send(ctx context.Context, text string) (models.ChatMessage, error)
	Keystroke()
	Close()
}

// Chats opens ticket conversations over the shared realtime channel.
type Chats interface {
	Open(ctx context.Context, ticketID string) (Chat, error)
}

// SessionHooks is told when a user signs in or out, so the owner of the
// realtime channel can connect or disconnect it.
type SessionHooks interface {
	SignedIn(role models.Role)
	SignedOut()
}

// NotificationPush delivers notifications the backend pushes over the
// realtime channel.
type NotificationPush interface {
	SubscribeNotifications(fn func(models.Notification)) (unsubscribe func())
}

// Deps are everything the screens need.
type Deps struct {
	Services  *service.Services
	Chats     Chats
	Hooks     SessionHooks
	Push      NotificationPush
	Bus       *environment.Bus
	Notices   <-chan notify.Notice
	Notifier  notify.Notifier
	Navigator *Navigator
	Clock     clock.Clock
	Sync      config.ClientSync
	BuildInfo models.AppBuildInfo
	Logger    *logger.Logger
}

type TUI struct {
	deps Deps
}

func New(deps Deps) *TUI {
	if deps.Clock == nil {
		deps.Clock = clock.WallClock
	}
	if deps.Navigator == nil {
		deps.Navigator = NewNavigator()
	}
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	return &TUI{deps: deps}
}

// Run shows the client until the user quits or ctx is cancelled. It closes
// whatever screen is open on the way out.
func (t *TUI) Run(ctx context.Context) error {
	root := NewRootModel(ctx, t.deps)
	finalModel, runErr := tea.NewProgram(root,
		tea.WithAltScreen(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	).Run()
	t.deps.Navigator.close()

	if result, ok := finalModel.(RootModel); ok {
		result.closePage()
	}
	if runErr != nil {
		if errors.Is(runErr, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("error running tui: %w", runErr)
	}
	return nil
}
