package http

import (
	"net/http"

	"travel-crm/internal/handlers"
	"travel-crm/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	inquiryHandler *handlers.InquiryHandler,
	reportHandler *handlers.ReportHandler,
	invoiceHandler *handlers.InvoiceHandler,
	detailHandler *handlers.DetailHandler,
	paymentLinkHandler *handlers.PaymentLinkHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)

	// Public routes
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.HealthDetailed).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Authenticated profile
	authAPI := r.PathPrefix("/auth").Subrouter()
	authAPI.Use(authMiddleware.Authenticate)
	authAPI.HandleFunc("/me", authHandler.Me).Methods("GET")
	authAPI.HandleFunc("/profile", authHandler.UpdateProfile).Methods("PUT")
	authAPI.HandleFunc("/password", authHandler.ChangePassword).Methods("POST")
	authAPI.HandleFunc("/refresh", authHandler.RefreshToken).Methods("POST")

	// Users (admin only)
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.RequireAdmin)
	usersAPI.HandleFunc("", userHandler.List).Methods("GET")
	usersAPI.HandleFunc("", userHandler.Create).Methods("POST")
	usersAPI.HandleFunc("/{id}", userHandler.Get).Methods("GET")
	usersAPI.HandleFunc("/{id}", userHandler.Update).Methods("PUT")
	usersAPI.HandleFunc("/{id}", userHandler.Deactivate).Methods("DELETE")

	// Inquiries
	inquiriesAPI := r.PathPrefix("/api/inquiries").Subrouter()
	inquiriesAPI.Use(authMiddleware.Authenticate)

	// Fixed paths before /{id}
	inquiriesAPI.HandleFunc("/board", reportHandler.Board).Methods("GET")
	inquiriesAPI.HandleFunc("/stats", reportHandler.Dashboard).Methods("GET")
	inquiriesAPI.HandleFunc("/export", reportHandler.Export).Methods("GET")
	inquiriesAPI.HandleFunc("/bulk-update", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(inquiryHandler.BulkUpdate)).ServeHTTP).Methods("PATCH")

	inquiriesAPI.HandleFunc("", reportHandler.List).Methods("GET")
	inquiriesAPI.HandleFunc("", inquiryHandler.Create).Methods("POST")
	inquiriesAPI.HandleFunc("/{id}", inquiryHandler.Get).Methods("GET")
	inquiriesAPI.HandleFunc("/{id}", inquiryHandler.Update).Methods("PUT")
	inquiriesAPI.HandleFunc("/{id}", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(inquiryHandler.Delete)).ServeHTTP).Methods("DELETE")
	inquiriesAPI.HandleFunc("/{id}/stage", inquiryHandler.ChangeStage).Methods("PATCH")
	inquiriesAPI.HandleFunc("/{id}/assign", authMiddleware.RequireRole("admin", "manager")(http.HandlerFunc(inquiryHandler.Assign)).ServeHTTP).Methods("PATCH")
	inquiriesAPI.HandleFunc("/{id}/history", inquiryHandler.History).Methods("GET")
	// Older clients fetch the stage audit trail as /timeline.
	inquiriesAPI.HandleFunc("/{id}/timeline", inquiryHandler.History).Methods("GET")

	// Payments
	inquiriesAPI.HandleFunc("/{id}/payments", inquiryHandler.ListPayments).Methods("GET")
	inquiriesAPI.HandleFunc("/{id}/payments", inquiryHandler.AddPayment).Methods("POST")
	inquiriesAPI.HandleFunc("/{id}/payment-order", paymentLinkHandler.CreateOrder).Methods("POST")

	// Invoices
	inquiriesAPI.HandleFunc("/{id}/invoices", invoiceHandler.ListByInquiry).Methods("GET")
	inquiriesAPI.HandleFunc("/{id}/invoices", invoiceHandler.Create).Methods("POST")

	invoicesAPI := r.PathPrefix("/api/invoices").Subrouter()
	invoicesAPI.Use(authMiddleware.Authenticate)
	invoicesAPI.HandleFunc("/{invoiceId}", invoiceHandler.Get).Methods("GET")
	invoicesAPI.HandleFunc("/{invoiceId}/status", invoiceHandler.UpdateStatus).Methods("PATCH")
	invoicesAPI.HandleFunc("/{invoiceId}/pdf", invoiceHandler.PDF).Methods("GET")

	// Details (quotations, notes, reminders)
	inquiriesAPI.HandleFunc("/{id}/details", detailHandler.List).Methods("GET")
	inquiriesAPI.HandleFunc("/{id}/details", detailHandler.Add).Methods("POST")

	detailsAPI := r.PathPrefix("/api/details").Subrouter()
	detailsAPI.Use(authMiddleware.Authenticate)
	detailsAPI.HandleFunc("/attachment", detailHandler.Attachment).Methods("GET")
	detailsAPI.HandleFunc("/{detailId}/complete", detailHandler.Complete).Methods("PATCH")

	return r
}
