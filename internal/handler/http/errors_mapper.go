package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/fx-desk/internal/backend"
	"github.com/MKhiriev/fx-desk/internal/logger"
	"github.com/MKhiriev/fx-desk/internal/utils"
)

var errorStatusMap = map[error]int{
	backend.ErrInvalidCredentials: http.StatusUnauthorized,
	backend.ErrForbidden:          http.StatusForbidden,
	backend.ErrNotFound:           http.StatusNotFound,
	backend.ErrInvalidInput:       http.StatusBadRequest,
	backend.ErrAlreadyReviewed:    http.StatusConflict,
	backend.ErrEmptyMessage:       http.StatusUnprocessableEntity,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeBackendError answers with the status mapped from err. Unmapped errors
// are logged and hidden behind a generic 500.
func writeBackendError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Str("path", r.URL.Path).Msg("unexpected backend error")
		utils.WriteError(w, http.StatusText(status), status)
		return
	}

	logger.FromRequest(r).Debug().Err(err).Int("status", status).Send()
	utils.WriteError(w, err.Error(), status)
}
