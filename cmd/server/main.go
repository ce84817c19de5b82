package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travel-crm/internal/auth"
	"travel-crm/internal/cache"
	"travel-crm/internal/config"
	"travel-crm/internal/database"
	"travel-crm/internal/db"
	"travel-crm/internal/handlers"
	"travel-crm/internal/health"
	httprouter "travel-crm/internal/http"
	"travel-crm/internal/logging"
	"travel-crm/internal/metrics"
	"travel-crm/internal/middleware"
	"travel-crm/internal/repositories"
	"travel-crm/internal/services"
	"travel-crm/migrations"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	pool, err := db.Connect(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer pool.Close()

	migrator := database.NewMigrator(pool, migrations.Files, log)
	if err := migrator.Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	if err := cache.Init(cfg); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, caching disabled")
	}

	metrics.Register()

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	inquiryRepo := repositories.NewInquiryRepository(pool)
	paymentRepo := repositories.NewPaymentRepository(pool)
	historyRepo := repositories.NewStageHistoryRepository(pool)
	invoiceRepo := repositories.NewInvoiceRepository(pool)
	detailRepo := repositories.NewDetailRepository(pool)

	// Services
	jwtManager := auth.NewJWTManager(cfg)
	userService := services.NewUserService(userRepo, jwtManager)
	inquiryService := services.NewInquiryService(inquiryRepo, paymentRepo, historyRepo, userRepo)
	reportService := services.NewReportService(inquiryRepo)
	invoiceService := services.NewInvoiceService(invoiceRepo, inquiryRepo)
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("storage setup failed")
	}
	if !storageService.Enabled() {
		log.Warn().Msg("object storage not configured, attachments disabled")
	}
	detailService := services.NewDetailService(detailRepo, inquiryRepo, storageService)
	paymentLinkService := services.NewPaymentLinkService(inquiryRepo, cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
	if !paymentLinkService.Enabled() {
		log.Warn().Msg("payment gateway not configured, online payments disabled")
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, log)
	userHandler := handlers.NewUserHandler(userService, log)
	inquiryHandler := handlers.NewInquiryHandler(inquiryService, log)
	reportHandler := handlers.NewReportHandler(reportService, log)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService, log)
	detailHandler := handlers.NewDetailHandler(detailService, log)
	paymentLinkHandler := handlers.NewPaymentLinkHandler(paymentLinkService, log)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(pool))

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)

	router := httprouter.NewRouter(
		authHandler,
		userHandler,
		inquiryHandler,
		reportHandler,
		invoiceHandler,
		detailHandler,
		paymentLinkHandler,
		healthHandler,
		authMiddleware,
	)

	var handler http.Handler = router
	handler = middleware.RequestLogging(log)(handler)
	handler = middleware.NewCORS(cfg)(handler)
	handler = middleware.PanicRecovery(log)(handler)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Str("env", cfg.App.Environment).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
