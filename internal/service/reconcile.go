package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"smartlab-backend/internal/domain"
	"smartlab-backend/internal/logger"
	"smartlab-backend/internal/repository"
)

type reconcileService struct {
	inventoryRepo repository.InventoryRepository
	noteRepo      repository.NotificationRepository
	settingsRepo  repository.SettingsRepository
}

func NewReconcileService(
	inventoryRepo repository.InventoryRepository,
	noteRepo repository.NotificationRepository,
	settingsRepo repository.SettingsRepository,
) ReconcileService {
	return &reconcileService{
		inventoryRepo: inventoryRepo,
		noteRepo:      noteRepo,
		settingsRepo:  settingsRepo,
	}
}

func (s *reconcileService) CheckItem(ctx context.Context, item *domain.InventoryItem) (bool, error) {
	if item.AvailableQuantity == item.PhysicalQuantity {
		return false, nil
	}
	note := &domain.Notification{
		ID:        uuid.NewString(),
		Recipient: domain.RecipientRole(domain.RoleAdmin),
		Title:     "Inventory Discrepancy",
		Message: fmt.Sprintf(
			"Item %s has a discrepancy between available quantity (%d) and physical quantity (%d).",
			item.Name, item.AvailableQuantity, item.PhysicalQuantity),
		Date: time.Now().UTC().Format(time.RFC3339),
		Type: domain.NotificationWarning,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return false, err
	}
	return true, nil
}

func (s *reconcileService) SweepInventory(ctx context.Context) error {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return err
	}
	items, err := s.inventoryRepo.List(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		item := &items[i]
		flagged, err := s.CheckItem(ctx, item)
		if err != nil {
			logger.Warn("Drift check failed during sweep", "item_id", item.ID, "error", err)
			continue
		}
		if flagged {
			logger.Info("Inventory drift flagged", "item_id", item.ID,
				"available", item.AvailableQuantity, "physical", item.PhysicalQuantity)
		}
		if lowStock(item, settings.LowStockThreshold) {
			s.notifyLowStock(ctx, item)
		}
	}
	return nil
}

// lowStock treats the threshold as a percentage of total stock.
func lowStock(item *domain.InventoryItem, thresholdPct int) bool {
	if item.TotalQuantity <= 0 || thresholdPct <= 0 {
		return false
	}
	return item.AvailableQuantity*100 < item.TotalQuantity*thresholdPct
}

func (s *reconcileService) notifyLowStock(ctx context.Context, item *domain.InventoryItem) {
	note := &domain.Notification{
		ID:        uuid.NewString(),
		Recipient: domain.RecipientRole(domain.RoleAdmin),
		Title:     "Low Stock",
		Message: fmt.Sprintf("Item %s is running low: %d of %d units available.",
			item.Name, item.AvailableQuantity, item.TotalQuantity),
		Date: time.Now().UTC().Format(time.RFC3339),
		Type: domain.NotificationWarning,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("Failed to create low-stock notification", "item_id", item.ID, "error", err)
	}
}
