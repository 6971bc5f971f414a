package http

import (
	"net/http"

	"github.com/MKhiriev/fx-desk/internal/utils"
	"github.com/MKhiriev/fx-desk/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) adminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.backend.AdminStats(r.Context())
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	utils.WriteEnvelope(w, stats, http.StatusOK)
}

func (h *Handler) adminRevenue(w http.ResponseWriter, r *http.Request) {
	points, err := h.backend.Revenue(r.Context())
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	utils.WriteEnvelope(w, points, http.StatusOK)
}

func (h *Handler) adminTransactions(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}

	txs, err := h.backend.AdminTransactions(r.Context(), limit)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	utils.WriteEnvelope(w, txs, http.StatusOK)
}

func (h *Handler) deposits(w http.ResponseWriter, r *http.Request) {
	page, ok := queryInt(w, r, "page")
	if !ok {
		return
	}
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}

	filter := models.DepositFilter{
		Status: models.DepositStatus(r.URL.Query().Get("status")),
		Page:   page,
		Limit:  limit,
	}
	result, err := h.backend.Deposits(r.Context(), filter)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	utils.WriteEnvelope(w, result, http.StatusOK)
}

func (h *Handler) approveDeposit(w http.ResponseWriter, r *http.Request) {
	deposit, err := h.backend.ApproveDeposit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	utils.WriteEnvelope(w, deposit, http.StatusOK)
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) rejectDeposit(w http.ResponseWriter, r *http.Request) {
	var req rejectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	deposit, err := h.backend.RejectDeposit(r.Context(), chi.URLParam(r, "id"), req.Reason)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	utils.WriteEnvelope(w, deposit, http.StatusOK)
}

func (h *Handler) paymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := h.backend.PaymentMethods(r.Context())
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	utils.WriteEnvelope(w, methods, http.StatusOK)
}

func (h *Handler) createPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var method models.PaymentMethod
	if !decodeJSON(w, r, &method) {
		return
	}

	created, err := h.backend.CreatePaymentMethod(r.Context(), method)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	utils.WriteEnvelope(w, created, http.StatusCreated)
}

func (h *Handler) updatePaymentMethod(w http.ResponseWriter, r *http.Request) {
	var method models.PaymentMethod
	if !decodeJSON(w, r, &method) {
		return
	}
	method.ID = chi.URLParam(r, "id")

	updated, err := h.backend.UpdatePaymentMethod(r.Context(), method)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	utils.WriteEnvelope(w, updated, http.StatusOK)
}

// deletedResource is the data member of a delete response.
type deletedResource struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

func (h *Handler) deletePaymentMethod(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.backend.DeletePaymentMethod(r.Context(), id); err != nil {
		writeBackendError(w, r, err)
		return
	}
	utils.WriteEnvelope(w, deletedResource{ID: id, Deleted: true}, http.StatusOK)
}

func (h *Handler) leverageGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.backend.LeverageGroups(r.Context())
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	utils.WriteEnvelope(w, groups, http.StatusOK)
}

func (h *Handler) updateLeverageGroup(w http.ResponseWriter, r *http.Request) {
	var group models.LeverageGroup
	if !decodeJSON(w, r, &group) {
		return
	}
	group.ID = chi.URLParam(r, "id")

	updated, err := h.backend.UpdateLeverageGroup(r.Context(), group)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	utils.WriteEnvelope(w, updated, http.StatusOK)
}

func (h *Handler) exchangeRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.backend.ExchangeRates(r.Context())
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	utils.WriteEnvelope(w, rates, http.StatusOK)
}

func (h *Handler) updateExchangeRate(w http.ResponseWriter, r *http.Request) {
	var rate models.ExchangeRate
	if !decodeJSON(w, r, &rate) {
		return
	}
	rate.ID = chi.URLParam(r, "id")

	updated, err := h.backend.UpdateExchangeRate(r.Context(), rate)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	utils.WriteEnvelope(w, updated, http.StatusOK)
}
