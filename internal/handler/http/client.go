package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/MKhiriev/fx-desk/internal/logger"
	"github.com/MKhiriev/fx-desk/internal/utils"
)

func (h *Handler) clientStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.backend.ClientStats(r.Context(), viewer(r).UserID)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	utils.WriteEnvelope(w, stats, http.StatusOK)
}

func (h *Handler) clientAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.backend.ClientAccounts(r.Context(), viewer(r).UserID)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	utils.WriteEnvelope(w, accounts, http.StatusOK)
}

func (h *Handler) clientTransactions(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}

	txs, err := h.backend.ClientTransactions(r.Context(), viewer(r).UserID, limit)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	utils.WriteEnvelope(w, txs, http.StatusOK)
}

// queryInt reads a non-negative integer query parameter. A missing parameter
// is zero. On a bad value it answers 400 and reports false.
func queryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		logger.FromRequest(r).Debug().Str("param", name).Str("value", raw).Msg("invalid query parameter")
		utils.WriteError(w, "invalid "+name, http.StatusBadRequest)
		return 0, false
	}
	return n, true
}

// decodeJSON reads the request body into dst. On failure it answers 400 and
// reports false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.FromRequest(r).Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, errInvalidJSON.Error(), http.StatusBadRequest)
		return false
	}
	return true
}
