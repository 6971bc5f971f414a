package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	// Version is shown in the TUI footer.
	Version string
	// DevMode enables the development diagnostic log channel.
	DevMode bool
}

// ClientAdapter holds settings used by the client transport layer.
type ClientAdapter struct {
	// BaseURL is the REST API root.
	BaseURL string
	// SocketURL is the realtime chat endpoint.
	SocketURL string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// HealthTimeout is the timeout of health checks.
	HealthTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite connection string used by the client.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientSync contains resource synchronizer settings.
type ClientSync struct {
	DashboardInterval time.Duration
	LiveInterval      time.Duration
	MaxRetries        int
	BaseDelay         time.Duration
	ProbeInterval     time.Duration
}

// ClientChat contains realtime chat settings.
type ClientChat struct {
	TypingWindow time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Sync    ClientSync
	Chat    ClientChat
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return newClientConfig(cfg)
}

func newClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	socketURL := cfg.Adapter.SocketURL
	if socketURL == "" {
		derived, err := DeriveSocketURL(cfg.Adapter.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidAdapterConfigs, err)
		}
		socketURL = derived
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			Version: cfg.App.Version,
			DevMode: cfg.App.DevMode,
		},
		Adapter: ClientAdapter{
			BaseURL:        cfg.Adapter.BaseURL,
			SocketURL:      socketURL,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			HealthTimeout:  cfg.Adapter.HealthTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: cfg.Storage.DB.DSN},
		},
		Sync: ClientSync{
			DashboardInterval: cfg.Sync.DashboardInterval,
			LiveInterval:      cfg.Sync.LiveInterval,
			MaxRetries:        cfg.Sync.MaxRetries,
			BaseDelay:         cfg.Sync.BaseDelay,
			ProbeInterval:     cfg.Sync.ProbeInterval,
		},
		Chat: ClientChat{TypingWindow: cfg.Chat.TypingWindow},
	}

	return clientCfg, clientCfg.validate()
}

// DeriveSocketURL turns a REST base URL into the realtime endpoint:
// http becomes ws, https becomes wss, and the path is /ws.
func DeriveSocketURL(baseURL string) (string, error) {
	raw := strings.TrimSpace(baseURL)
	if raw == "" {
		return "", fmt.Errorf("empty base url")
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}

	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = "/ws"
	u.RawQuery = ""

	return u.String(), nil
}
