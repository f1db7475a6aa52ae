package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "evrental-backend/internal/api/http"
	"evrental-backend/internal/cache"
	"evrental-backend/internal/config"
	"evrental-backend/internal/logger"
	"evrental-backend/internal/payment"
	"evrental-backend/internal/repository/postgres"
	"evrental-backend/internal/security"
	"evrental-backend/internal/service"
	"evrental-backend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting EV Rental Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Redis (penalty catalog cache + idempotency keys)
	redisCache, err := cache.NewRedisCache(cfg.Redis.URL)
	if err != nil {
		logger.Error("Failed to connect to Redis", "error", err)
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Initialize Storage Service
	var storageService storage.StorageInterface
	var mockStorage *storage.MockStorageService
	switch cfg.Storage.Type {
	case "", "mock":
		logger.Info("Using mock storage (local filesystem)", "upload_dir", cfg.Storage.UploadDir)
		mockStorage, err = storage.NewMockStorageService(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
		if err != nil {
			logger.Error("Failed to initialize mock storage", "error", err)
			log.Fatalf("Failed to initialize mock storage: %v", err)
		}
		storageService = mockStorage
	case "minio":
		logger.Info("Using MinIO storage", "endpoint", cfg.Storage.Endpoint, "bucket", cfg.Storage.Bucket)
		minioStorage, err := storage.NewMinIOStorageService(
			cfg.Storage.Endpoint, cfg.Storage.AccessKey, cfg.Storage.SecretKey,
			cfg.Storage.Bucket, cfg.Storage.UseSSL,
		)
		if err != nil {
			logger.Error("Failed to initialize MinIO storage", "error", err)
			log.Fatalf("Failed to initialize MinIO storage: %v", err)
		}
		storageService = minioStorage
	default:
		log.Fatalf("Storage type '%s' not supported", cfg.Storage.Type)
	}

	// Initialize Payment Gateway
	var gateway payment.Gateway
	if cfg.Gateway.BaseURL != "" {
		gateway = payment.NewHTTPGateway(cfg.Gateway.BaseURL, cfg.Gateway.APIKey, time.Duration(cfg.Gateway.TimeoutMS)*time.Millisecond)
		logger.Info("Payment gateway configured", "base_url", cfg.Gateway.BaseURL)
	} else {
		logger.Warn("No payment gateway configured; online payments will fail verification")
	}

	// Initialize Email Service
	var emailSvc service.EmailService
	if cfg.Email.APIKey != "" {
		emailSvc = service.NewSendGridEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName, cfg.Billing.Currency)
	} else {
		logger.Warn("No SendGrid API key configured; emails will be skipped")
		emailSvc = service.NoopEmailService{}
	}

	// Initialize Services
	catalogSvc := service.NewPenaltyCatalogService(store.PenaltyFeeRepository, redisCache, time.Duration(cfg.Redis.CatalogTTLSecs)*time.Second)
	bookingSvc := service.NewBookingService(
		store.BookingRepository,
		store.VehicleRepository,
		store.RefundRequestRepository,
		store.PhotoRepository,
		store.PaymentRepository,
		store.UserRepository,
		store.NotificationRepository,
		catalogSvc,
		emailSvc,
		gateway,
		redisCache,
		service.BookingConfig{
			ReservationDepositCents: cfg.Billing.ReservationDepositCents,
			RentalDepositPercent:    cfg.Billing.RentalDepositPercent,
			IdemKeyTTL:              time.Duration(cfg.Redis.IdemKeyTTLSecs) * time.Second,
		},
	)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	photoSvc := service.NewPhotoService(store.PhotoRepository, store.BookingRepository, storageService)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Build router
	router := httpapi.NewRouter(httpapi.RouterDeps{
		Bookings:      bookingSvc,
		Catalog:       catalogSvc,
		Auth:          authSvc,
		Photos:        photoSvc,
		Notifications: noteSvc,
		Tokens:        tokenManager,
	})
	if mockStorage != nil {
		httpapi.RegisterMockStorageRoutes(router, mockStorage)
	}

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
