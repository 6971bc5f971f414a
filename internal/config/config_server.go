package config

import (
	"fmt"
	"time"
)

// ServerConfig is the configuration view of the development backend.
type ServerConfig struct {
	HTTPAddress    string
	RequestTimeout time.Duration
	TokenSignKey   string
	TokenIssuer    string
	TokenDuration  time.Duration
	Version        string
	DevMode        bool
}

// GetServerConfig builds and validates the development backend config view.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return newServerConfig(cfg)
}

func newServerConfig(cfg *StructuredConfig) (*ServerConfig, error) {
	serverCfg := &ServerConfig{
		HTTPAddress:    cfg.Server.HTTPAddress,
		RequestTimeout: cfg.Server.RequestTimeout,
		TokenSignKey:   cfg.App.TokenSignKey,
		TokenIssuer:    cfg.App.TokenIssuer,
		TokenDuration:  cfg.App.TokenDuration,
		Version:        cfg.App.Version,
		DevMode:        cfg.App.DevMode,
	}

	return serverCfg, serverCfg.validate()
}
