package jobs

import (
	"context"

	"smartlab-backend/internal/logger"
)

// ReconcileInventory runs the full drift and low-stock sweep
func (jr *JobRunner) ReconcileInventory() {
	jr.runWithRecovery("ReconcileInventory", func() {
		if err := jr.services.Reconcile.SweepInventory(context.Background()); err != nil {
			logger.Error("Inventory sweep failed", "error", err)
		}
	})
}
