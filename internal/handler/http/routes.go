package http

import (
	"github.com/MKhiriev/fx-desk/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const socketPath = "/ws"

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging)

	// the socket outlives the request timeout and must not be compressed
	if h.socket != nil {
		router.Handle(socketPath, h.socket)
	}

	router.Group(func(r chi.Router) {
		r.Use(withGZip, middleware.Timeout(h.cfg.RequestTimeout))

		// routes without authorization
		r.Get("/api/health", h.health)
		r.Post("/api/auth/login", h.login(models.RoleClient))
		r.Post("/api/admin/auth/login", h.login(models.RoleAdmin))
		r.Post("/api/superadmin/auth/login", h.login(models.RoleSuperAdmin))
		r.Post("/api/agent/auth/login", h.login(models.RoleAgent))

		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Route("/api/client", func(r chi.Router) {
				r.Use(requireRole(models.RoleClient))
				r.Get("/dashboard/stats", h.clientStats)
				r.Get("/accounts", h.clientAccounts)
				r.Get("/transactions", h.clientTransactions)
				r.Post("/kyc/documents", h.uploadKYCDocument)
			})

			r.Route("/api/admin", func(r chi.Router) {
				r.Use(requireRole(models.RoleAdmin, models.RoleSuperAdmin))
				r.Get("/dashboard/stats", h.adminStats)
				r.Get("/dashboard/revenue", h.adminRevenue)
				r.Get("/dashboard/transactions", h.adminTransactions)

				r.Get("/deposits", h.deposits)
				r.Post("/deposits/{id}/approve", h.approveDeposit)
				r.Post("/deposits/{id}/reject", h.rejectDeposit)

				r.Get("/payment-methods", h.paymentMethods)
				r.Post("/payment-methods", h.createPaymentMethod)
				r.Put("/payment-methods/{id}", h.updatePaymentMethod)
				r.Delete("/payment-methods/{id}", h.deletePaymentMethod)

				r.Get("/leverage-groups", h.leverageGroups)
				r.Put("/leverage-groups/{id}", h.updateLeverageGroup)

				r.Get("/exchange-rates", h.exchangeRates)
				r.Put("/exchange-rates/{id}", h.updateExchangeRate)
			})

			r.Route("/api/tickets", func(r chi.Router) {
				r.Get("/", h.tickets)
				r.Get("/{id}", h.ticket)
				r.Get("/{id}/messages", h.ticketMessages)
				r.Post("/{id}/messages", h.postTicketMessage)
				r.Post("/{id}/attachments", h.uploadTicketAttachment)
			})

			r.Get("/api/notifications", h.notifications)
			r.Patch("/api/notifications/{id}/read", h.markNotificationRead)
		})
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
