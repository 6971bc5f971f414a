package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags from the process command line.
//
// Flags:
//
//	-a development backend address in format [host]:[port]
//	-api-url REST API base URL
//	-socket-url realtime endpoint URL
//	-d SQLite DSN of the local store
//	-c/-config json file path with configs
//	-request-timeout default outbound request timeout (e.g., "30s")
//	-health-timeout health check timeout (e.g., "5s")
//	-dashboard-interval dashboard auto-refresh period (e.g., "5m")
//	-live-interval live view auto-refresh period (e.g., "5s")
//	-max-retries automatic retries after a failed fetch
//	-retry-delay first retry delay (e.g., "1s")
//	-typing-window chat typing silence window (e.g., "2s")
//	-token-sign-key token signing key of the development backend
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-dev enable the development diagnostic channel
func ParseFlags() (*StructuredConfig, error) {
	return parseFlags(flag.CommandLine, os.Args[1:])
}

func parseFlags(fs *flag.FlagSet, args []string) (*StructuredConfig, error) {
	var (
		cfg           StructuredConfig
		serverAddress NetAddress
	)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&cfg.Adapter.BaseURL, "api-url", "", "REST API base URL")
	fs.StringVar(&cfg.Adapter.SocketURL, "socket-url", "", "Realtime endpoint URL")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "SQLite DSN")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.DurationVar(&cfg.Adapter.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&cfg.Adapter.HealthTimeout, "health-timeout", 0, "Health check timeout (e.g., 5s)")
	fs.DurationVar(&cfg.Sync.DashboardInterval, "dashboard-interval", 0, "Dashboard refresh period (e.g., 5m)")
	fs.DurationVar(&cfg.Sync.LiveInterval, "live-interval", 0, "Live view refresh period (e.g., 5s)")
	fs.IntVar(&cfg.Sync.MaxRetries, "max-retries", 0, "Automatic retries after a failed fetch")
	fs.DurationVar(&cfg.Sync.BaseDelay, "retry-delay", 0, "First retry delay (e.g., 1s)")
	fs.DurationVar(&cfg.Chat.TypingWindow, "typing-window", 0, "Typing silence window (e.g., 2s)")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&cfg.App.TokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.BoolVar(&cfg.App.DevMode, "dev", false, "Enable development diagnostics")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg.Server.HTTPAddress = serverAddress.String()

	return &cfg, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
