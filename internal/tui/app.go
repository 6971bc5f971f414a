package tui

import (
	"context"
	"strings"
	"time"

	"github.com/MKhiriev/fx-desk/internal/environment"
	"github.com/MKhiriev/fx-desk/internal/notify"
	"github.com/MKhiriev/fx-desk/models"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	toastTTL  = 5 * time.Second
	maxToasts = 3
)

// page is a screen. Close releases its pollers and subscriptions.
type page interface {
	tea.Model
	Close()
}

type toast struct {
	id     int
	notice notify.Notice
}

// RootModel is the TUI router:
// 1) keeps the active page and the signed-in user
// 2) handles global keys and terminal focus
// 3) handles NavigateTo and external redirects
// 4) shows notification toasts
// 5) delegates all other messages to the active page
type RootModel struct {
	ctx  context.Context
	deps Deps

	current page
	path    string

	user models.User
	role models.Role

	toasts    []toast
	nextToast int

	showBuildInfo bool
}

// NewRootModel opens the login screen; Init then tries to restore a
// previous session.
func NewRootModel(ctx context.Context, deps Deps) RootModel {
	r := RootModel{ctx: ctx, deps: deps}
	r.current = r.build(PathLogin, nil)
	r.path = PathLogin
	return r
}

func (r RootModel) Init() tea.Cmd {
	return tea.Batch(
		r.current.Init(),
		r.listenNotices(),
		r.deps.Navigator.listen(),
		r.cmdRestore(),
	)
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return r, tea.Quit
		case "ctrl+b":
			r.showBuildInfo = !r.showBuildInfo
			return r, nil
		case "esc":
			if r.showBuildInfo {
				r.showBuildInfo = false
				return r, nil
			}
		}
		if r.showBuildInfo {
			return r, nil
		}

	case tea.FocusMsg:
		r.publish(environment.Visible)
		return r, nil
	case tea.BlurMsg:
		r.publish(environment.Hidden)
		return r, nil

	case noticeMsg:
		return r.addToast(msg.notice)
	case expireToastMsg:
		r.dropToast(msg.id)
		return r, nil

	case redirectMsg:
		var cmd tea.Cmd
		if msg.path == PathLogin {
			r, cmd = r.signOut()
		} else {
			r, cmd = r.navigate(msg.path, nil)
		}
		return r, tea.Batch(cmd, r.deps.Navigator.listen())

	case NavigateTo:
		return r.navigate(msg.Page, msg.Payload)

	case restoreDoneMsg:
		if msg.err != nil || r.path != PathLogin {
			return r, nil
		}
		return r.signIn(msg.user, msg.role)

	case loginDoneMsg:
		if msg.err == nil {
			return r.signIn(msg.user, msg.role)
		}

	case logoutDoneMsg:
		return r.signOut()
	}

	updated, cmd := r.current.Update(msg)
	if p, ok := updated.(page); ok {
		r.current = p
	}
	return r, cmd
}

func (r RootModel) View() string {
	if r.showBuildInfo {
		return renderBuildInfoWindow(r.deps.BuildInfo)
	}

	var b strings.Builder
	b.WriteString(r.current.View())
	if len(r.toasts) > 0 {
		b.WriteString("\n\n")
		for _, t := range r.toasts {
			b.WriteString(renderToast(t.notice))
			b.WriteString("\n")
		}
	}
	return appStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (r RootModel) signIn(user models.User, role models.Role) (RootModel, tea.Cmd) {
	r.user = user
	r.role = role
	if r.deps.Hooks != nil {
		r.deps.Hooks.SignedIn(role)
	}
	return r.navigate(PathDashboard, nil)
}

func (r RootModel) signOut() (RootModel, tea.Cmd) {
	r.user = models.User{}
	r.role = ""
	if r.deps.Hooks != nil {
		r.deps.Hooks.SignedOut()
	}
	return r.navigate(PathLogin, nil)
}

// navigate closes the current page and opens the one at path. Screens other
// than login need a signed-in user.
func (r RootModel) navigate(path string, payload any) (RootModel, tea.Cmd) {
	if path != PathLogin && r.role == "" {
		path = PathLogin
	}
	next := r.build(path, payload)
	if next == nil {
		return r, nil
	}

	r.closePage()
	r.showBuildInfo = false
	r.current = next
	r.path = path
	return r, r.current.Init()
}

func (r RootModel) build(path string, payload any) page {
	switch path {
	case PathLogin:
		return NewLoginModel(r.ctx, r.deps.Services.AuthService)
	case PathDashboard:
		return NewDashboardModel(r.ctx, r.deps, r.user, r.role)
	case PathTickets:
		return NewTicketsModel(r.ctx, r.deps.Services.TicketService)
	case PathChat:
		ticket, _ := payload.(models.Ticket)
		return NewChatModel(r.ctx, r.deps.Chats, ticket, r.user)
	default:
		r.deps.Logger.Warn().Str("func", "RootModel.navigate").Str("path", path).Msg("unknown screen")
		return nil
	}
}

func (r RootModel) closePage() {
	if r.current != nil {
		r.current.Close()
	}
}

func (r RootModel) publish(e environment.Event) {
	if r.deps.Bus != nil {
		r.deps.Bus.Publish(e)
	}
}

func (r RootModel) addToast(n notify.Notice) (RootModel, tea.Cmd) {
	r.nextToast++
	id := r.nextToast
	r.toasts = append(r.toasts, toast{id: id, notice: n})
	if len(r.toasts) > maxToasts {
		r.toasts = r.toasts[len(r.toasts)-maxToasts:]
	}

	expire := tea.Tick(toastTTL, func(time.Time) tea.Msg { return expireToastMsg{id: id} })
	return r, tea.Batch(expire, r.listenNotices())
}

func (r *RootModel) dropToast(id int) {
	kept := r.toasts[:0:0]
	for _, t := range r.toasts {
		if t.id != id {
			kept = append(kept, t)
		}
	}
	r.toasts = kept
}

func (r RootModel) listenNotices() tea.Cmd {
	notices := r.deps.Notices
	if notices == nil {
		return nil
	}
	ctx := r.ctx
	return func() tea.Msg {
		select {
		case n := <-notices:
			return noticeMsg{notice: n}
		case <-ctx.Done():
			return nil
		}
	}
}

func (r RootModel) cmdRestore() tea.Cmd {
	ctx := r.ctx
	auth := r.deps.Services.AuthService
	return func() tea.Msg {
		user, role, err := auth.Restore(ctx)
		return restoreDoneMsg{user: user, role: role, err: err}
	}
}
