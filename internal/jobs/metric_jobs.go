package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"smartlab-backend/internal/domain"
	"smartlab-backend/internal/logger"
)

// staleAfter is how long a sensor may stay silent before admins hear about it.
const staleAfter = 1 * time.Hour

// SweepMetrics flags sensors that have stopped reporting
func (jr *JobRunner) SweepMetrics() {
	jr.runWithRecovery("SweepMetrics", func() {
		ctx := context.Background()

		settings, err := jr.repos.Settings.Get(ctx)
		if err != nil {
			logger.Error("Failed to load settings for metric sweep", "error", err)
			return
		}
		if !settings.NotifyOnMetricAlerts {
			logger.Debug("Metric alerts disabled, skipping sweep")
			return
		}

		metrics, err := jr.repos.Metrics.List(ctx)
		if err != nil {
			logger.Error("Failed to list metrics", "error", err)
			return
		}

		now := time.Now().UTC()
		count := 0
		for _, metric := range metrics {
			seen, err := time.Parse(time.RFC3339, metric.Timestamp)
			if err != nil || now.Sub(seen) < staleAfter {
				continue
			}
			note := &domain.Notification{
				ID:        uuid.NewString(),
				Recipient: domain.RecipientRole(domain.RoleAdmin),
				Title:     "Sensor Offline",
				Message: fmt.Sprintf("%s has not reported since %s.",
					metric.Name, seen.Format(time.RFC3339)),
				Type: domain.NotificationWarning,
				Date: now.Format(time.RFC3339),
			}
			if err := jr.repos.Notifications.Create(ctx, note); err != nil {
				logger.Error("Failed to create stale sensor alert", "metric_id", metric.ID, "error", err)
				continue
			}
			count++
		}

		logger.Info("Metric sweep completed", "stale", count)
	})
}
