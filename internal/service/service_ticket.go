package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/fx-desk/internal/adapter"
	"github.com/MKhiriev/fx-desk/internal/logger"
	"github.com/MKhiriev/fx-desk/models"
)

type ticketService struct {
	adapter adapter.ServerAdapter

	logger *logger.Logger
}

func NewTicketService(serverAdapter adapter.ServerAdapter, logger *logger.Logger) TicketService {
	return &ticketService{adapter: serverAdapter, logger: logger}
}

func (s *ticketService) Tickets(ctx context.Context) ([]models.Ticket, error) {
	tickets, err := s.adapter.Tickets(ctx)
	return tickets, mapAdapterError(err)
}

func (s *ticketService) Ticket(ctx context.Context, id string) (models.Ticket, error) {
	if strings.TrimSpace(id) == "" {
		return models.Ticket{}, ErrNoTicket
	}
	ticket, err := s.adapter.Ticket(ctx, id)
	return ticket, mapAdapterError(err)
}

func (s *ticketService) Messages(ctx context.Context, ticketID string) ([]models.ChatMessage, error) {
	if strings.TrimSpace(ticketID) == "" {
		return nil, ErrNoTicket
	}
	messages, err := s.adapter.TicketMessages(ctx, ticketID)
	return messages, mapAdapterError(err)
}

func (s *ticketService) PostMessage(ctx context.Context, ticketID, text string) (models.ChatMessage, error) {
	if strings.TrimSpace(ticketID) == "" {
		return models.ChatMessage{}, ErrNoTicket
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return models.ChatMessage{}, ErrEmptyMessage
	}

	msg, err := s.adapter.PostTicketMessage(ctx, ticketID, text)
	return msg, mapAdapterError(err)
}

func (s *ticketService) Attach(ctx context.Context, ticketID string, file adapter.UploadFile, onProgress adapter.ProgressFunc) (models.UploadedFile, error) {
	if strings.TrimSpace(ticketID) == "" {
		return models.UploadedFile{}, ErrNoTicket
	}

	uploaded, err := s.adapter.UploadTicketAttachment(ctx, ticketID, file, onProgress)
	if err != nil {
		return models.UploadedFile{}, mapAdapterError(err)
	}

	s.logger.Info().
		Str("func", "ticketService.Attach").
		Str("ticket_id", ticketID).
		Str("file", uploaded.FileName).
		Int64("size", uploaded.Size).
		Msg("attachment uploaded")
	return uploaded, nil
}

func (s *ticketService) UploadKYCDocument(ctx context.Context, docType string, file adapter.UploadFile, onProgress adapter.ProgressFunc) (models.UploadedFile, error) {
	if strings.TrimSpace(docType) == "" {
		return models.UploadedFile{}, ErrNoDocumentType
	}

	uploaded, err := s.adapter.UploadKYCDocument(ctx, docType, file, onProgress)
	return uploaded, mapAdapterError(err)
}
