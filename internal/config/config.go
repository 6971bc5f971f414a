// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// fx-desk client and the development backend. It is populated by merging
// values from environment variables, command-line flags, and an optional
// JSON file, and finally completed with defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: token parameters of the
	// development backend, the version string and the dev-mode switch.
	App App `envPrefix:"APP_"`

	// Storage holds the local persistence settings of the client.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the listen address and timeouts of the development backend.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the REST and socket endpoints the client talks to.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Sync holds polling and retry settings of resource synchronizers.
	Sync Sync `envPrefix:"SYNC_"`

	// Chat holds realtime ticket chat settings.
	Chat Chat `envPrefix:"CHAT_"`

	// APIURL is a shorthand for Adapter.BaseURL kept for deployments that
	// export the backend location as a single variable.
	// Env: API_URL
	APIURL string `env:"API_URL"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey is the secret used by the development backend to sign
	// session tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of issued session tokens.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is how long an issued session token stays valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// DevMode enables the development diagnostic log channel.
	// Env: APP_DEV_MODE
	DevMode bool `env:"DEV_MODE"`
}

// Storage groups local persistence settings.
type Storage struct {
	// DB holds the SQLite database that backs the session key/value store.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite file path or URI.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Server holds network and timeout settings of the development backend.
type Server struct {
	// HTTPAddress is the TCP address to listen on, in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration of a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds outbound transport settings.
type Adapter struct {
	// BaseURL is the REST API root every request path is resolved against.
	// Env: ADAPTER_API_URL
	BaseURL string `env:"API_URL"`

	// SocketURL is the realtime endpoint. Derived from BaseURL when empty.
	// Env: ADAPTER_SOCKET_URL
	SocketURL string `env:"SOCKET_URL"`

	// RequestTimeout is the default deadline of an outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// HealthTimeout is the deadline of lightweight health checks.
	// Env: ADAPTER_HEALTH_TIMEOUT
	HealthTimeout time.Duration `env:"HEALTH_TIMEOUT"`
}

// Sync holds resource synchronizer settings.
type Sync struct {
	// DashboardInterval is the auto-refresh period of aggregate dashboards.
	// Env: SYNC_DASHBOARD_INTERVAL
	DashboardInterval time.Duration `env:"DASHBOARD_INTERVAL"`

	// LiveInterval is the auto-refresh period of live account views.
	// Env: SYNC_LIVE_INTERVAL
	LiveInterval time.Duration `env:"LIVE_INTERVAL"`

	// MaxRetries bounds automatic retries after a failed fetch.
	// Env: SYNC_MAX_RETRIES
	MaxRetries int `env:"MAX_RETRIES"`

	// BaseDelay is the first retry delay; every next retry doubles it.
	// Env: SYNC_BASE_DELAY
	BaseDelay time.Duration `env:"BASE_DELAY"`

	// ProbeInterval is how often the connectivity probe checks the backend.
	// Env: SYNC_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`
}

// Chat holds realtime chat settings.
type Chat struct {
	// TypingWindow is the silence after which "stopped typing" is sent.
	// Env: CHAT_TYPING_WINDOW
	TypingWindow time.Duration `env:"TYPING_WINDOW"`
}

// Defaults applied to fields left empty by every configuration source.
const (
	DefaultAPIURL            = "http://localhost:5000"
	DefaultServerAddress     = "localhost:5000"
	DefaultRequestTimeout    = 30 * time.Second
	DefaultHealthTimeout     = 5 * time.Second
	DefaultDashboardInterval = 5 * time.Minute
	DefaultLiveInterval      = 5 * time.Second
	DefaultMaxRetries        = 3
	DefaultBaseDelay         = time.Second
	DefaultProbeInterval     = 10 * time.Second
	DefaultTypingWindow      = 2 * time.Second
	DefaultTokenDuration     = 12 * time.Hour
	DefaultTokenIssuer       = "fx-desk"
	DefaultDSN               = "fx-desk.db"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   DefaultTokenIssuer,
			TokenDuration: DefaultTokenDuration,
		},
		Storage: Storage{DB: DB{DSN: DefaultDSN}},
		Server: Server{
			HTTPAddress:    DefaultServerAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Adapter: Adapter{
			BaseURL:        DefaultAPIURL,
			RequestTimeout: DefaultRequestTimeout,
			HealthTimeout:  DefaultHealthTimeout,
		},
		Sync: Sync{
			DashboardInterval: DefaultDashboardInterval,
			LiveInterval:      DefaultLiveInterval,
			MaxRetries:        DefaultMaxRetries,
			BaseDelay:         DefaultBaseDelay,
			ProbeInterval:     DefaultProbeInterval,
		},
		Chat: Chat{TypingWindow: DefaultTypingWindow},
	}
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Fields that are still empty afterwards take their defaults.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
