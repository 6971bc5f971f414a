package service

import (
	"github.com/MKhiriev/fx-desk/internal/adapter"
	"github.com/MKhiriev/fx-desk/internal/logger"
)

type Services struct {
	AuthService         AuthService
	DashboardService    DashboardService
	AdminService        AdminService
	TicketService       TicketService
	NotificationService NotificationService
}

func NewServices(serverAdapter adapter.ServerAdapter, session SessionManager, logger *logger.Logger) *Services {
	log := logger.Component("service")

	return &Services{
		AuthService:         NewAuthService(serverAdapter, session, log),
		DashboardService:    NewDashboardService(serverAdapter, log),
		AdminService:        NewAdminValidationService().Wrap(NewAdminService(serverAdapter, log)),
		TicketService:       NewTicketService(serverAdapter, log),
		NotificationService: NewNotificationService(serverAdapter, log),
	}
}
