package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/fx-desk/internal/service"
	"github.com/MKhiriev/fx-desk/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// TicketsModel lists the support tickets visible to the user. Enter opens
// the live chat of the selected ticket.
type TicketsModel struct {
	ctx     context.Context
	tickets service.TicketService

	items   []models.Ticket
	idx     int
	loading bool
	spinner spinner.Model
	errMsg  string
}

func NewTicketsModel(ctx context.Context, tickets service.TicketService) *TicketsModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return &TicketsModel{ctx: ctx, tickets: tickets, spinner: s, loading: true}
}

func (m *TicketsModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdLoad())
}

func (m *TicketsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ticketsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.items = msg.tickets
		if m.idx >= len(m.items) {
			m.idx = len(m.items) - 1
		}
		if m.idx < 0 {
			m.idx = 0
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.up):
			if m.idx > 0 {
				m.idx--
			}
		case key.Matches(msg, keys.down):
			if m.idx < len(m.items)-1 {
				m.idx++
			}
		case key.Matches(msg, keys.refresh):
			if !m.loading {
				m.loading = true
				return m, m.cmdLoad()
			}
		case key.Matches(msg, keys.enter):
			if ticket, ok := m.current(); ok {
				return m, func() tea.Msg { return NavigateTo{Page: PathChat, Payload: ticket} }
			}
		case key.Matches(msg, keys.esc):
			return m, func() tea.Msg { return NavigateTo{Page: PathDashboard} }
		}
	}
	return m, nil
}

func (m *TicketsModel) View() string {
	var b strings.Builder

	switch {
	case m.loading && len(m.items) == 0:
		b.WriteString(m.spinner.View() + " Loading...\n")
	case len(m.items) == 0:
		b.WriteString("No tickets\n")
	default:
		fmt.Fprintf(&b, "  %-12s │ %-11s │ %-8s │ %s\n", "ID", "Status", "Priority", "Subject")
		for i, t := range m.items {
			cursor := " "
			if i == m.idx {
				cursor = ">"
			}
			fmt.Fprintf(&b, "%s %-12s │ %-11s │ %-8s │ %s\n",
				cursor, fitText(t.ID, 12), t.Status, fitText(t.Priority, 8), fitText(t.Subject, 40))
		}
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("TICKETS", strings.TrimRight(b.String(), "\n"), "enter: open chat │ ↑/↓: navigate │ r: reload │ esc: back")
}

func (m *TicketsModel) Close() {}

func (m *TicketsModel) current() (models.Ticket, bool) {
	if len(m.items) == 0 || m.idx < 0 || m.idx >= len(m.items) {
		return models.Ticket{}, false
	}
	return m.items[m.idx], true
}

func (m *TicketsModel) cmdLoad() tea.Cmd {
	ctx := m.ctx
	tickets := m.tickets
	return func() tea.Msg {
		items, err := tickets.Tickets(ctx)
		return ticketsLoadedMsg{tickets: items, err: err}
	}
}
