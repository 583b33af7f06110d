package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartlab-backend/internal/config"
	"smartlab-backend/internal/jobs"
	"smartlab-backend/internal/logger"
	"smartlab-backend/internal/repository/realtime"
	"smartlab-backend/internal/scheduler"
	"smartlab-backend/internal/service"
	"smartlab-backend/internal/store"
	"smartlab-backend/internal/store/firebase"
	"smartlab-backend/internal/store/memory"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'send-overdue-reminders', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting SmartLab Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize document store gateway
	gateway, err := newGateway(cfg)
	if err != nil {
		logger.Error("Failed to initialize store", "error", err)
		log.Fatalf("Failed to initialize store: %v", err)
	}
	logger.Info("Document store ready", "type", cfg.Store.Type)

	// Initialize Repositories
	repos := realtime.NewStore(gateway)

	// Initialize Services
	reconcileSvc := service.NewReconcileService(repos.InventoryRepository, repos.NotificationRepository, repos.SettingsRepository)

	jobRepos := &jobs.Repositories{
		Requests:      repos.RequestRepository,
		Notifications: repos.NotificationRepository,
		Settings:      repos.SettingsRepository,
		Metrics:       repos.MetricRepository,
	}
	jobServices := &jobs.Services{
		Reconcile: reconcileSvc,
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(jobRepos, jobServices, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "send-overdue-reminders":
		jobRunner.SendOverdueReminders()
	case "reconcile-inventory":
		jobRunner.ReconcileInventory()
	case "sweep-metrics":
		jobRunner.SweepMetrics()
	case "all":
		jobRunner.RunAllJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - send-overdue-reminders\n")
		fmt.Printf("  - reconcile-inventory\n")
		fmt.Printf("  - sweep-metrics\n")
		fmt.Printf("  - all\n")
		os.Exit(1)
	}
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
