package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing base URL or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid client storage settings
	// (for example, empty DSN or unsupported in-memory DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, missing token sign key on the development backend).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidSyncConfigs indicates invalid synchronizer settings
	// (for example, zero refresh interval or negative retry count).
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")
	// ErrInvalidChatConfigs indicates invalid chat settings.
	ErrInvalidChatConfigs = errors.New("invalid chat configuration")
	// ErrInvalidServerConfigs indicates invalid development backend settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
)
