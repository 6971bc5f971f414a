// Package handler assembles the transport handlers of the development
// server.
package handler

import (
	"sync"

	"github.com/MKhiriev/fx-desk/internal/backend"
	"github.com/MKhiriev/fx-desk/internal/config"
	"github.com/MKhiriev/fx-desk/internal/handler/http"
	"github.com/MKhiriev/fx-desk/internal/handler/ws"
	"github.com/MKhiriev/fx-desk/internal/logger"
)

type Handlers struct {
	HTTP *http.Handler
	WS   *ws.Hub

	unsubscribe func()
	closeOnce   sync.Once
}

// NewHandlers builds the REST handler and the websocket hub, and wires
// stored notifications to the hub so connected users get them pushed.
func NewHandlers(b *backend.Backend, cfg config.ServerConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if b == nil {
		return nil, errNoBackend
	}

	hub := ws.NewHub(b, cfg.TokenSignKey, cfg.TokenIssuer, logger)
	handlers := &Handlers{
		HTTP: http.NewHandler(b, hub, cfg, logger),
		WS:   hub,
	}
	handlers.unsubscribe = b.SubscribeNotifications(hub.Notify)

	return handlers, nil
}

// Close stops the notification push. It is safe to call more than once.
func (h *Handlers) Close() {
	h.closeOnce.Do(func() {
		if h.unsubscribe != nil {
			h.unsubscribe()
		}
	})
}
