package client

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/fx-desk/internal/adapter"
	"github.com/MKhiriev/fx-desk/internal/config"
	"github.com/MKhiriev/fx-desk/internal/environment"
	"github.com/MKhiriev/fx-desk/internal/logger"
	"github.com/MKhiriev/fx-desk/internal/notify"
	"github.com/MKhiriev/fx-desk/internal/service"
	"github.com/MKhiriev/fx-desk/internal/session"
	"github.com/MKhiriev/fx-desk/internal/store"
	"github.com/MKhiriev/fx-desk/internal/tui"
	"github.com/MKhiriev/fx-desk/internal/workers"
	"github.com/MKhiriev/fx-desk/models"
	"github.com/juju/clock"
)

const noticeQueueSize = 16

var _ Client = (*App)(nil)

// App owns every long-lived client component. Components are created by
// NewApp and released by Run on the way out.
type App struct {
	cfg    *config.ClientConfig
	logger *logger.Logger

	storages *store.ClientStorages
	session  *session.Session
	notices  *notify.Queue
	bus      *environment.Bus
	workers  *workers.Workers
	live     *liveChat
	ui       *tui.TUI
}

// NewApp wires storage, session, transport, services, background workers
// and the TUI.
func NewApp(ctx context.Context, cfg *config.ClientConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	sess := session.New(storages.Local, log.Component("session"))

	queue := notify.NewQueue(noticeQueueSize)
	notifier := notify.Multi(queue, notify.NewLogNotifier(log))
	navigator := tui.NewNavigator()

	transport, err := adapter.NewTransport(cfg.Adapter, sess, navigator, notifier, log)
	if err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("create transport: %w", err)
	}
	serverAdapter := adapter.NewHTTPServerAdapter(transport)
	services := service.NewServices(serverAdapter, sess, log)

	bus := environment.NewBus(log)
	probe := workers.NewConnectivityProbe(serverAdapter, bus, clock.WallClock, cfg.Sync.ProbeInterval, log)

	live := newLiveChat(ctx, cfg, sess, serverAdapter, notifier, log)

	ui := tui.New(tui.Deps{
		Services:  services,
		Chats:     live,
		Hooks:     live,
		Push:      live,
		Bus:       bus,
		Notices:   queue.Notices(),
		Notifier:  notifier,
		Navigator: navigator,
		Clock:     clock.WallClock,
		Sync:      cfg.Sync,
		BuildInfo: buildInfo,
		Logger:    log.Component("tui"),
	})

	return &App{
		cfg:      cfg,
		logger:   log,
		storages: storages,
		session:  sess,
		notices:  queue,
		bus:      bus,
		workers:  workers.NewWorkers(probe),
		live:     live,
		ui:       ui,
	}, nil
}

// Run blocks until the user quits or the process gets SIGINT/SIGTERM.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.workers.Start(ctx)
	defer a.workers.Stop()
	defer a.live.close()

	a.logger.Info().Str("func", "App.Run").Str("api", a.cfg.Adapter.BaseURL).Msg("client started")

	runErr := a.ui.Run(ctx)

	if err := a.storages.Close(); err != nil {
		a.logger.Err(err).Str("func", "App.Run").Msg("error closing local storage")
	}
	if dropped := a.notices.Dropped(); dropped > 0 {
		a.logger.Debug().Str("func", "App.Run").Int64("dropped", dropped).Msg("notices dropped while the queue was full")
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}
