package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "smartlab-backend/internal/api/http"
	"smartlab-backend/internal/config"
	"smartlab-backend/internal/logger"
	"smartlab-backend/internal/repository/realtime"
	"smartlab-backend/internal/security"
	"smartlab-backend/internal/service"
	"smartlab-backend/internal/store"
	"smartlab-backend/internal/store/firebase"
	"smartlab-backend/internal/store/memory"
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
	logger.Info("Starting SmartLab Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Store configuration", "type", cfg.Store.Type)

	// Initialize document store gateway
	gateway, err := newGateway(cfg)
	if err != nil {
		logger.Error("Failed to initialize store", "error", err)
		log.Fatalf("Failed to initialize store: %v", err)
	}
	logger.Info("Document store ready", "type", cfg.Store.Type)

	// Initialize Repositories
	repos := realtime.NewStore(gateway)

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Minute,
	)

	// Initialize Email Service
	var emailSvc service.EmailService
	if cfg.SendGrid.APIKey != "" {
		logger.Info("Using SendGrid email delivery", "from", cfg.SendGrid.FromEmail)
		emailSvc = service.NewSendGridEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	} else {
		logger.Info("No SendGrid API key configured, email delivery disabled")
		emailSvc = service.NewNoopEmailService()
	}

	// Initialize Services
	reconcileSvc := service.NewReconcileService(repos.InventoryRepository, repos.NotificationRepository, repos.SettingsRepository)
	authSvc := service.NewAuthService(repos.UserRepository, repos.SettingsRepository, tokenManager, cfg.Auth.AdminEmailDomain)
	borrowSvc := service.NewBorrowService(
		repos.RequestRepository,
		repos.InventoryRepository,
		repos.UserRepository,
		repos.NotificationRepository,
		repos.SettingsRepository,
		emailSvc,
		reconcileSvc,
	)
	inventorySvc := service.NewInventoryService(repos.InventoryRepository)
	noteSvc := service.NewNotificationService(repos.NotificationRepository)
	userSvc := service.NewUserService(repos.UserRepository, repos.RequestRepository)
	metricSvc := service.NewMetricService(repos.MetricRepository, repos.NotificationRepository, repos.SettingsRepository)
	settingsSvc := service.NewSettingsService(repos.SettingsRepository)

	// Set up HTTP server
	router := httpapi.NewRouter(httpapi.Services{
		Auth:          authSvc,
		Borrow:        borrowSvc,
		Inventory:     inventorySvc,
		Notifications: noteSvc,
		Users:         userSvc,
		Metrics:       metricSvc,
		Settings:      settingsSvc,
	}, tokenManager, repos.UserRepository)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}

// newGateway builds the configured document store backend.
func newGateway(cfg *config.Config) (store.Store, error) {
	if cfg.Store.Type == "firebase" {
		return firebase.New(context.Background(), firebase.Config{
			CredentialsFile: cfg.Firebase.CredentialsFile,
			DatabaseURL:     cfg.Firebase.DatabaseURL,
			PollInterval:    time.Duration(cfg.Firebase.PollIntervalSeconds) * time.Second,
		})
	}
	return memory.New(), nil
}
