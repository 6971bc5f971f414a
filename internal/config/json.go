package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk shape of the optional JSON config file.
type StructuredJSONConfig struct {
	APIURL string `json:"api_url"`

	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		Version       string   `json:"version"`
		DevMode       bool     `json:"dev_mode"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		BaseURL        string   `json:"api_url"`
		SocketURL      string   `json:"socket_url"`
		RequestTimeout Duration `json:"request_timeout"`
		HealthTimeout  Duration `json:"health_timeout"`
	} `json:"adapter,omitempty"`

	Sync struct {
		DashboardInterval Duration `json:"dashboard_interval"`
		LiveInterval      Duration `json:"live_interval"`
		MaxRetries        int      `json:"max_retries"`
		BaseDelay         Duration `json:"base_delay"`
		ProbeInterval     Duration `json:"probe_interval"`
	} `json:"sync,omitempty"`

	Chat struct {
		TypingWindow Duration `json:"typing_window"`
	} `json:"chat,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		APIURL: jsonCfg.APIURL,
		App: App{
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			Version:       jsonCfg.App.Version,
			DevMode:       jsonCfg.App.DevMode,
		},
		Storage: Storage{
			DB: DB{DSN: jsonCfg.Storage.DB.DSN},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			BaseURL:        jsonCfg.Adapter.BaseURL,
			SocketURL:      jsonCfg.Adapter.SocketURL,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			HealthTimeout:  time.Duration(jsonCfg.Adapter.HealthTimeout),
		},
		Sync: Sync{
			DashboardInterval: time.Duration(jsonCfg.Sync.DashboardInterval),
			LiveInterval:      time.Duration(jsonCfg.Sync.LiveInterval),
			MaxRetries:        jsonCfg.Sync.MaxRetries,
			BaseDelay:         time.Duration(jsonCfg.Sync.BaseDelay),
			ProbeInterval:     time.Duration(jsonCfg.Sync.ProbeInterval),
		},
		Chat: Chat{TypingWindow: time.Duration(jsonCfg.Chat.TypingWindow)},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
