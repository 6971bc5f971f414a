package config

import (
	"flag"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// TestNetAddress_String tests the String method of NetAddress
func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{name: "empty address", addr: NetAddress{}, expected: ""},
		{name: "localhost with port", addr: NetAddress{Host: "localhost", Port: 5000}, expected: "localhost:5000"},
		{name: "IP address with port", addr: NetAddress{Host: "127.0.0.1", Port: 9090}, expected: "127.0.0.1:9090"},
		{name: "only port no host", addr: NetAddress{Port: 8080}, expected: ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

// TestNetAddress_Set tests the Set method of NetAddress
func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expectError  bool
		expectedAddr NetAddress
	}{
		{name: "valid localhost", input: "localhost:5000", expectedAddr: NetAddress{Host: "localhost", Port: 5000}},
		{name: "valid IPv4", input: "127.0.0.1:9090", expectedAddr: NetAddress{Host: "127.0.0.1", Port: 9090}},
		{name: "all interfaces", input: ":8080", expectedAddr: NetAddress{Port: 8080}},
		{name: "missing colon", input: "localhost8080", expectError: true},
		{name: "port not a number", input: "localhost:http", expectError: true},
		{name: "zero port", input: "localhost:0", expectError: true},
		{name: "port too big", input: "localhost:70000", expectError: true},
		{name: "bad ip", input: "300.1.1.1:80", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr NetAddress
			err := addr.Set(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedAddr, addr)
		})
	}
}

func TestParseFlags(t *testing.T) {
	args := []string{
		"-a", "localhost:5001",
		"-api-url", "http://localhost:5001",
		"-d", "/tmp/client.db",
		"-config", "/etc/fx.json",
		"-request-timeout", "20s",
		"-health-timeout", "3s",
		"-dashboard-interval", "1m",
		"-live-interval", "2s",
		"-max-retries", "5",
		"-retry-delay", "250ms",
		"-typing-window", "3s",
		"-token-sign-key", "secret",
		"-token-issuer", "fx",
		"-token-duration", "2h",
		"-dev",
	}

	cfg, err := parseFlags(newTestFlagSet(), args)
	require.NoError(t, err)

	assert.Equal(t, "localhost:5001", cfg.Server.HTTPAddress)
	assert.Equal(t, "http://localhost:5001", cfg.Adapter.BaseURL)
	assert.Equal(t, "/tmp/client.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/etc/fx.json", cfg.JSONFilePath)
	assert.Equal(t, 20*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 3*time.Second, cfg.Adapter.HealthTimeout)
	assert.Equal(t, time.Minute, cfg.Sync.DashboardInterval)
	assert.Equal(t, 2*time.Second, cfg.Sync.LiveInterval)
	assert.Equal(t, 5, cfg.Sync.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.Sync.BaseDelay)
	assert.Equal(t, 3*time.Second, cfg.Chat.TypingWindow)
	assert.Equal(t, "secret", cfg.App.TokenSignKey)
	assert.Equal(t, "fx", cfg.App.TokenIssuer)
	assert.Equal(t, 2*time.Hour, cfg.App.TokenDuration)
	assert.True(t, cfg.App.DevMode)
}

func TestParseFlags_Empty(t *testing.T) {
	cfg, err := parseFlags(newTestFlagSet(), []string{})
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseFlags_InvalidAddress(t *testing.T) {
	_, err := parseFlags(newTestFlagSet(), []string{"-a", "nowhere"})
	assert.Error(t, err)
}
