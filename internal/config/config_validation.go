// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// validate checks invariants shared by every config view. Per-view rules
// live in [ClientConfig.validate] and [ServerConfig.validate].
func (cfg *StructuredConfig) validate() error {
	if cfg.Sync.MaxRetries < 0 {
		return ErrInvalidSyncConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.BaseURL == "" || cfg.Adapter.SocketURL == "" ||
		cfg.Adapter.RequestTimeout <= 0 || cfg.Adapter.HealthTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Sync.DashboardInterval <= 0 || cfg.Sync.LiveInterval <= 0 ||
		cfg.Sync.BaseDelay <= 0 || cfg.Sync.ProbeInterval <= 0 || cfg.Sync.MaxRetries < 0 {
		return ErrInvalidSyncConfigs
	}

	if cfg.Chat.TypingWindow <= 0 {
		return ErrInvalidChatConfigs
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.HTTPAddress == "" || cfg.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.TokenSignKey == "" || cfg.TokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}

	return nil
}
