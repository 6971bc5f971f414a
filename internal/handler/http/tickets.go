package http

import (
	"net/http"

	"github.com/MKhiriev/fx-desk/internal/logger"
	"github.com/MKhiriev/fx-desk/internal/utils"
	"github.com/MKhiriev/fx-desk/models"
	"github.com/go-chi/chi/v5"
)

const maxUploadSize = 10 << 20

func (h *Handler) tickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.backend.Tickets(r.Context(), viewer(r))
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	utils.WriteEnvelope(w, tickets, http.StatusOK)
}

func (h *Handler) ticket(w http.ResponseWriter, r *http.Request) {
	ticket, err := h.backend.Ticket(r.Context(), viewer(r), chi.URLParam(r, "id"))
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	utils.WriteEnvelope(w, ticket, http.StatusOK)
}

func (h *Handler) ticketMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.backend.Messages(r.Context(), viewer(r), chi.URLParam(r, "id"))
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	utils.WriteEnvelope(w, messages, http.StatusOK)
}

func (h *Handler) postTicketMessage(w http.ResponseWriter, r *http.Request) {
	var body models.NewTicketMessage
	if !decodeJSON(w, r, &body) {
		return
	}

	msg, err := h.backend.PostMessage(r.Context(), viewer(r), chi.URLParam(r, "id"), body.Text)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	utils.WriteEnvelope(w, msg, http.StatusCreated)
}

func (h *Handler) uploadTicketAttachment(w http.ResponseWriter, r *http.Request) {
	name, size, ok := readUpload(w, r, "file")
	if !ok {
		return
	}

	file, err := h.backend.Attach(r.Context(), viewer(r), chi.URLParam(r, "id"), name, size)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	utils.WriteEnvelope(w, file, http.StatusCreated)
}

func (h *Handler) uploadKYCDocument(w http.ResponseWriter, r *http.Request) {
	name, size, ok := readUpload(w, r, "document")
	if !ok {
		return
	}

	file, err := h.backend.SaveKYCDocument(r.Context(), viewer(r), r.FormValue("documentType"), name, size)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	utils.WriteEnvelope(w, file, http.StatusCreated)
}

// readUpload parses a multipart body and returns the name and size of the
// file in field. The content itself is discarded. On failure it answers and
// reports false.
func readUpload(w http.ResponseWriter, r *http.Request, field string) (string, int64, bool) {
	log := logger.FromRequest(r)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		log.Err(err).Msg("invalid multipart body")
		utils.WriteError(w, "invalid upload", http.StatusBadRequest)
		return "", 0, false
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		log.Err(err).Str("field", field).Msg("upload has no file part")
		utils.WriteError(w, "missing file field "+field, http.StatusBadRequest)
		return "", 0, false
	}
	defer file.Close()

	return header.Filename, header.Size, true
}

func (h *Handler) notifications(w http.ResponseWriter, r *http.Request) {
	list, err := h.backend.Notifications(r.Context(), viewer(r).UserID)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	utils.WriteEnvelope(w, list, http.StatusOK)
}

type readState struct {
	ID   string `json:"id"`
	Read bool   `json:"read"`
}

func (h *Handler) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.backend.MarkNotificationRead(r.Context(), viewer(r).UserID, id); err != nil {
		writeBackendError(w, r, err)
		return
	}
	utils.WriteEnvelope(w, readState{ID: id, Read: true}, http.StatusOK)
}
