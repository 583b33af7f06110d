package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"smartlab-backend/internal/domain"
	"smartlab-backend/internal/logger"
)

// SendOverdueReminders notifies students holding equipment past its due date
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()

		requests, err := jr.repos.Requests.List(ctx)
		if err != nil {
			logger.Error("Failed to list requests for overdue check", "error", err)
			return
		}

		now := time.Now().UTC()
		count := 0
		for _, req := range requests {
			if req.Status != domain.RequestStatusApproved {
				continue
			}
			due, err := time.Parse(time.RFC3339, req.DueDate)
			if err != nil || !due.Before(now) {
				continue
			}

			days := int(now.Sub(due).Hours() / 24)
			note := &domain.Notification{
				ID:        uuid.NewString(),
				Recipient: domain.RecipientUser(req.UserID),
				Title:     "Overdue Equipment",
				Message: fmt.Sprintf("Your loan of %d x %s was due on %s (%d day(s) ago). Please return it.",
					req.Quantity, req.ItemName, due.Format("2006-01-02"), days),
				Type: domain.NotificationWarning,
				Date: now.Format(time.RFC3339),
			}
			if err := jr.repos.Notifications.Create(ctx, note); err != nil {
				logger.Error("Failed to create overdue reminder",
					"request_id", req.ID, "user_id", req.UserID, "error", err)
				continue
			}
			count++
			logger.Debug("Sent overdue reminder",
				"request_id", req.ID,
				"user_id", req.UserID,
				"item", req.ItemName,
				"due_date", req.DueDate)
		}

		logger.Info("Sent overdue reminders", "count", count)
	})
}
