package http

import (
	"net/http"

	"github.com/MKhiriev/fx-desk/internal/backend"
	"github.com/MKhiriev/fx-desk/internal/config"
	"github.com/MKhiriev/fx-desk/internal/logger"
)

type Handler struct {
	backend *backend.Backend
	socket  http.Handler
	cfg     config.ServerConfig

	logger *logger.Logger
}

// NewHandler returns the REST handler. socket serves the realtime endpoint
// and may be nil.
func NewHandler(b *backend.Backend, socket http.Handler, cfg config.ServerConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		backend: b,
		socket:  socket,
		cfg:     cfg,
		logger:  logger,
	}
}
