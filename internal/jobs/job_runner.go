package jobs

import (
	"smartlab-backend/internal/config"
	"smartlab-backend/internal/logger"
	"smartlab-backend/internal/repository"
	"smartlab-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	repos    *Repositories
	services *Services
	config   *config.Config
}

// Repositories holds the repository dependencies needed by jobs
type Repositories struct {
	Requests      repository.RequestRepository
	Notifications repository.NotificationRepository
	Settings      repository.SettingsRepository
	Metrics       repository.MetricRepository
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Reconcile service.ReconcileService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(repos *Repositories, services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		repos:    repos,
		services: services,
		config:   cfg,
	}
}

// Config exposes the configuration for the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllJobs runs every job once (for manual execution)
func (jr *JobRunner) RunAllJobs() {
	jr.SendOverdueReminders()
	jr.ReconcileInventory()
	jr.SweepMetrics()
}
