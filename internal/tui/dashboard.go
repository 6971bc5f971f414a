package tui

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/MKhiriev/fx-desk/internal/service"
	"github.com/MKhiriev/fx-desk/internal/synchronizer"
	"github.com/MKhiriev/fx-desk/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Poller names, also the keys of the dashboard streams.
const (
	resourceStats        = "client-stats"
	resourceAccounts     = "client-accounts"
	resourceTransactions = "recent-transactions"
	resourceOverview     = "admin-overview"
	resourceFeed         = "notifications"
)

var screenGen atomic.Int64

func nextGen() int {
	return int(screenGen.Add(1))
}

// stream forwards the states of one poller into the Bubble Tea loop.
type stream struct {
	listen func() tea.Cmd
	stop   func()
}

func watch[T any](p *synchronizer.Poller[T], wrap func(synchronizer.State[T]) tea.Msg) stream {
	box := newMailbox[synchronizer.State[T]]()
	unsubscribe := p.Subscribe(box.put)
	return stream{
		listen: func() tea.Cmd { return box.next(wrap) },
		stop: func() {
			unsubscribe()
			box.close()
		},
	}
}

// DashboardModel shows the polled figures of the signed-in role. Clients
// see their stats, live accounts and recent transactions; admins see the
// platform overview. Everybody sees the notification feed.
type DashboardModel struct {
	ctx  context.Context
	gen  int
	user models.User
	role models.Role
	auth service.AuthService

	group    *synchronizer.Group
	streams  map[string]stream
	spinner  spinner.Model
	stopPush func()

	stats        synchronizer.State[models.DashboardStats]
	accounts     synchronizer.State[[]models.TradingAccount]
	transactions synchronizer.State[[]models.Transaction]
	overview     synchronizer.State[models.AdminOverview]
	feed         synchronizer.State[service.NotificationFeed]
}

func NewDashboardModel(ctx context.Context, deps Deps, user models.User, role models.Role) *DashboardModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	m := &DashboardModel{
		ctx:     ctx,
		gen:     nextGen(),
		user:    user,
		role:    role,
		auth:    deps.Services.AuthService,
		streams: make(map[string]stream),
		spinner: s,
	}

	pollerDeps := synchronizer.Deps{
		Clock:    deps.Clock,
		Notifier: deps.Notifier,
		Logger:   deps.Logger,
	}
	if deps.Bus != nil {
		pollerDeps.Events = deps.Bus
	}
	retry := models.RetryPolicy{MaxRetries: deps.Sync.MaxRetries, BaseDelay: deps.Sync.BaseDelay}
	opts := func(live bool) synchronizer.Options {
		o := synchronizer.Options{
			AutoRefresh: true,
			Interval:    deps.Sync.DashboardInterval,
			AutoRetry:   true,
			Retry:       retry,
			Countdown:   true,
		}
		if live {
			o.Interval = deps.Sync.LiveInterval
			o.Countdown = false
		}
		return o
	}

	dashboard := deps.Services.DashboardService
	var members []synchronizer.Resource
	gen := m.gen

	switch role {
	case models.RoleClient:
		stats := synchronizer.New(resourceStats, dashboard.ClientStats, opts(false), pollerDeps)
		accounts := synchronizer.New(resourceAccounts, dashboard.ClientAccounts, opts(true), pollerDeps)
		transactions := synchronizer.New(resourceTransactions, dashboard.RecentTransactions, opts(false), pollerDeps)

		m.streams[resourceStats] = watch(stats, func(s synchronizer.State[models.DashboardStats]) tea.Msg {
			return statsStateMsg{gen: gen, state: s}
		})
		m.streams[resourceAccounts] = watch(accounts, func(s synchronizer.State[[]models.TradingAccount]) tea.Msg {
			return accountsStateMsg{gen: gen, state: s}
		})
		m.streams[resourceTransactions] = watch(transactions, func(s synchronizer.State[[]models.Transaction]) tea.Msg {
			return transactionsStateMsg{gen: gen, state: s}
		})
		members = append(members, stats, accounts, transactions)

	case models.RoleAdmin, models.RoleSuperAdmin:
		overview := synchronizer.New(resourceOverview, dashboard.AdminOverview, opts(false), pollerDeps)
		m.streams[resourceOverview] = watch(overview, func(s synchronizer.State[models.AdminOverview]) tea.Msg {
			return overviewStateMsg{gen: gen, state: s}
		})
		members = append(members, overview)
	}

	feed := synchronizer.New(resourceFeed, deps.Services.NotificationService.Feed, opts(false), pollerDeps)
	m.streams[resourceFeed] = watch(feed, func(s synchronizer.State[service.NotificationFeed]) tea.Msg {
		return feedStateMsg{gen: gen, state: s}
	})
	members = append(members, feed)
	if deps.Push != nil {
		m.stopPush = deps.Push.SubscribeNotifications(func(models.Notification) { feed.Refresh() })
	}

	m.group = synchronizer.NewGroup(members...)
	return m
}

func (m *DashboardModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	for _, s := range m.streams {
		cmds = append(cmds, s.listen())
	}
	m.group.Start(m.ctx)
	return tea.Batch(cmds...)
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statsStateMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.stats = msg.state
		return m, m.streams[resourceStats].listen()
	case accountsStateMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.accounts = msg.state
		return m, m.streams[resourceAccounts].listen()
	case transactionsStateMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.transactions = msg.state
		return m, m.streams[resourceTransactions].listen()
	case overviewStateMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.overview = msg.state
		return m, m.streams[resourceOverview].listen()
	case feedStateMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.feed = msg.state
		return m, m.streams[resourceFeed].listen()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.refresh):
			m.group.Refresh()
		case key.Matches(msg, keys.clearError):
			m.group.ClearError()
		case key.Matches(msg, keys.tickets):
			return m, func() tea.Msg { return NavigateTo{Page: PathTickets} }
		case key.Matches(msg, keys.logout):
			return m, m.cmdLogout()
		}
	}
	return m, nil
}

func (m *DashboardModel) View() string {
	var b strings.Builder
	spin := m.spinner.View()

	switch m.role {
	case models.RoleClient:
		b.WriteString(m.viewClient(spin))
	case models.RoleAdmin, models.RoleSuperAdmin:
		b.WriteString(m.viewOverview(spin))
	default:
		b.WriteString("Open the ticket queue to start working.\n")
	}

	b.WriteString("\n")
	b.WriteString(m.viewFeed(spin))

	title := fmt.Sprintf("DASHBOARD · %s (%s)", m.user.DisplayName(), m.role)
	return renderPage(title, strings.TrimRight(b.String(), "\n"),
		"r: refresh │ c: clear error │ t: tickets │ l: sign out")
}

func (m *DashboardModel) Close() {
	if m.stopPush != nil {
		m.stopPush()
	}
	m.group.Close()
	for _, s := range m.streams {
		s.stop()
	}
}

func (m *DashboardModel) viewClient(spin string) string {
	var b strings.Builder

	b.WriteString("Overview\n")
	if stats, ok := m.stats.Payload(); ok {
		fmt.Fprintf(&b, "  Balance %.2f · Equity %.2f · Deposits %.2f · Withdrawals %.2f\n",
			stats.Balance, stats.Equity, stats.TotalDeposits, stats.TotalWithdraws)
	}
	writeSyncLine(&b, m.stats.SyncState, m.stats.SecondsToRefresh, spin)

	b.WriteString("\nAccounts\n")
	if accounts, ok := m.accounts.Payload(); ok {
		if len(accounts) == 0 {
			b.WriteString("  no trading accounts\n")
		}
		for _, a := range accounts {
			fmt.Fprintf(&b, "  %-10s %-10s 1:%-5d %14s  equity %.2f\n",
				fitText(a.Login, 10), fitText(a.Group, 10), a.Leverage, money(a.Balance, a.Currency), a.Equity)
		}
	}
	writeSyncLine(&b, m.accounts.SyncState, 0, spin)

	b.WriteString("\nRecent transactions\n")
	if txs, ok := m.transactions.Payload(); ok {
		writeTransactions(&b, txs)
	}
	writeSyncLine(&b, m.transactions.SyncState, m.transactions.SecondsToRefresh, spin)
	return b.String()
}

func (m *DashboardModel) viewOverview(spin string) string {
	var b strings.Builder

	b.WriteString("Platform\n")
	if o, ok := m.overview.Payload(); ok {
		fmt.Fprintf(&b, "  Users %d · Active accounts %d · Pending deposits %d · Open tickets %d\n",
			o.Stats.Total, o.Stats.ActiveAccounts, o.Stats.PendingCount, o.Stats.OpenTickets)
		fmt.Fprintf(&b, "  Deposits %.2f · Withdrawals %.2f\n", o.Stats.TotalDeposits, o.Stats.TotalWithdraws)

		if len(o.Revenue) > 0 {
			b.WriteString("\nRevenue\n")
			for _, p := range o.Revenue {
				fmt.Fprintf(&b, "  %-10s %12.2f\n", p.Period, p.Revenue)
			}
		}

		b.WriteString("\nRecent transactions\n")
		writeTransactions(&b, o.Transactions)
	}
	writeSyncLine(&b, m.overview.SyncState, m.overview.SecondsToRefresh, spin)
	return b.String()
}

func (m *DashboardModel) viewFeed(spin string) string {
	var b strings.Builder

	feed, ok := m.feed.Payload()
	fmt.Fprintf(&b, "Notifications (%d unread)\n", feed.Unread)
	if ok {
		for i, n := range feed.Items {
			if i == 5 {
				fmt.Fprintf(&b, "  ... %d more\n", len(feed.Items)-i)
				break
			}
			marker := " "
			if !n.Header().Read {
				marker = "*"
			}
			fmt.Fprintf(&b, "  %s %s\n", marker, service.DescribeNotification(n))
		}
	}
	writeSyncLine(&b, m.feed.SyncState, 0, spin)
	return b.String()
}

func (m *DashboardModel) cmdLogout() tea.Cmd {
	ctx := m.ctx
	auth := m.auth
	return func() tea.Msg {
		_ = auth.Logout(ctx)
		return logoutDoneMsg{}
	}
}

func writeSyncLine(b *strings.Builder, state models.SyncState, secondsToRefresh int, spin string) {
	if line := renderSyncLine(state, secondsToRefresh, spin); line != "" {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}
}

func writeTransactions(b *strings.Builder, txs []models.Transaction) {
	if len(txs) == 0 {
		b.WriteString("  no transactions yet\n")
		return
	}
	for _, tx := range txs {
		fmt.Fprintf(b, "  %s  %-10s %14s  %s\n",
			tx.CreatedAt.Local().Format("2006-01-02 15:04"), tx.Type, money(tx.Amount, tx.Currency), tx.Status)
	}
}
