package tui

import (
	"github.com/MKhiriev/fx-desk/internal/adapter"
	tea "github.com/charmbracelet/bubbletea"
)

// Screen paths. The login screen sits at the adapter's root path, where the
// session-expiry flow sends the user.
const (
	PathLogin     = adapter.RootPath
	PathDashboard = "/dashboard"
	PathTickets   = "/tickets"
	PathChat      = "/tickets/chat"
)

// Navigator lets code outside the TUI switch screens. It implements
// adapter.Navigator and may be called from any goroutine, before or while
// the program runs.
type Navigator struct {
	redirects mailbox[string]
}

func NewNavigator() *Navigator {
	return &Navigator{redirects: newMailbox[string]()}
}

// Redirect replaces the current screen with the one at path.
func (n *Navigator) Redirect(path string) {
	n.redirects.put(path)
}

func (n *Navigator) listen() tea.Cmd {
	return n.redirects.next(func(path string) tea.Msg {
		return redirectMsg{path: path}
	})
}

func (n *Navigator) close() {
	n.redirects.close()
}
