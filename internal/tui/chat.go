package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/fx-desk/internal/realtime"
	"github.com/MKhiriev/fx-desk/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const chatHistoryLines = 15

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

// ChatModel is the live conversation of one ticket. Every keystroke feeds
// the typing debouncer; enter persists the message and then pushes it.
type ChatModel struct {
	ctx    context.Context
	gen    int
	chats  Chats
	ticket models.Ticket
	user   models.User

	chat  Chat
	box   mailbox[realtime.ChatView]
	unsub func()

	view    realtime.ChatView
	input   textinput.Model
	sending bool
	status  string
	errMsg  string
}

func NewChatModel(ctx context.Context, chats Chats, ticket models.Ticket, user models.User) *ChatModel {
	input := textinput.New()
	input.Placeholder = "message"
	input.CharLimit = 2000
	input.Width = 60
	input.Focus()

	return &ChatModel{
		ctx:    ctx,
		gen:    nextGen(),
		chats:  chats,
		ticket: ticket,
		user:   user,
		box:    newMailbox[realtime.ChatView](),
		input:  input,
		view:   realtime.ChatView{TicketID: ticket.ID},
	}
}

func (m *ChatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.cmdOpen())
}

func (m *ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case chatOpenedMsg:
		if msg.gen != m.gen {
			if msg.chat != nil {
				msg.chat.Close()
			}
			return m, nil
		}
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.chat = msg.chat
		m.view = msg.chat.View()
		gen := m.gen
		m.unsub = msg.chat.Subscribe(m.box.put)
		return m, m.box.next(func(v realtime.ChatView) tea.Msg { return chatViewMsg{gen: gen, view: v} })

	case chatViewMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.view = msg.view
		gen := m.gen
		return m, m.box.next(func(v realtime.ChatView) tea.Msg { return chatViewMsg{gen: gen, view: v} })

	case messageSentMsg:
		m.sending = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.input.Reset()
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Copy failed: %v", msg.err)
			return m, nil
		}
		m.status = "Ticket ID copied"
		return m, tea.Tick(2*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{} })

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			return m, func() tea.Msg { return NavigateTo{Page: PathTickets} }
		case key.Matches(msg, keys.copyID):
			return m, cmdCopyToClipboard(m.ticket.ID)
		case key.Matches(msg, keys.enter):
			if m.chat == nil || m.sending {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.sending = true
			return m, m.cmdSend(text)
		}

		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.chat != nil && m.input.Value() != before {
			m.chat.Keystroke()
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *ChatModel) View() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s · %s · %s\n\n", m.ticket.ID, m.ticket.Subject, m.ticket.Status)

	msgs := m.view.Messages
	if len(msgs) > chatHistoryLines {
		fmt.Fprintf(&b, "  ... %d earlier messages\n", len(msgs)-chatHistoryLines)
		msgs = msgs[len(msgs)-chatHistoryLines:]
	}
	if len(msgs) == 0 {
		b.WriteString("  no messages yet\n")
	}
	for _, msg := range msgs {
		sender := msg.SenderName
		if msg.SenderID != "" && msg.SenderID == m.user.ID {
			sender = "you"
		}
		if sender == "" {
			sender = string(msg.SenderRole)
		}
		fmt.Fprintf(&b, "  %s %s: %s\n", msg.CreatedAt.Local().Format("15:04"), sender, msg.Text)
	}

	b.WriteString("\n")
	if m.view.TypingLabel != "" {
		b.WriteString(helpStyle.Render(m.view.TypingLabel))
	}
	b.WriteString("\n> ")
	b.WriteString(m.input.View())
	if m.sending {
		b.WriteString("  sending...")
	}
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("SUPPORT CHAT", strings.TrimRight(b.String(), "\n"), "enter: send │ ctrl+y: copy ticket ID │ esc: back")
}

// Close leaves the room. A chat still being opened is closed when its
// chatOpenedMsg arrives for a stale generation.
func (m *ChatModel) Close() {
	m.gen = -1
	if m.unsub != nil {
		m.unsub()
	}
	m.box.close()
	if m.chat != nil {
		m.chat.Close()
	}
}

func (m *ChatModel) cmdOpen() tea.Cmd {
	ctx := m.ctx
	chats := m.chats
	ticketID := m.ticket.ID
	gen := m.gen
	return func() tea.Msg {
		if chats == nil {
			return chatOpenedMsg{gen: gen, err: realtime.ErrNotConnected}
		}
		chat, err := chats.Open(ctx, ticketID)
		return chatOpenedMsg{gen: gen, chat: chat, err: err}
	}
}

func (m *ChatModel) cmdSend(text string) tea.Cmd {
	ctx := m.ctx
	chat := m.chat
	return func() tea.Msg {
		_, err := chat.Send(ctx, text)
		return messageSentMsg{err: err}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := copyToClipboard(text); err != nil {
			return copiedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}
