// Package realtime provides store-gateway-backed implementations of the
// entity repositories. Collections are read whole and filtered in memory,
// matching how the browser clients consume the same paths.
package realtime

import (
	"errors"

	"smartlab-backend/internal/domain"
	"smartlab-backend/internal/repository"
	"smartlab-backend/internal/store"
)

// Store bundles all repositories over one gateway connection.
type Store struct {
	repository.UserRepository
	repository.InventoryRepository
	repository.RequestRepository
	repository.NotificationRepository
	repository.MetricRepository
	repository.SettingsRepository
}

func NewStore(gw store.Store) *Store {
	return &Store{
		UserRepository:         NewUserRepository(gw),
		InventoryRepository:    NewInventoryRepository(gw),
		RequestRepository:      NewRequestRepository(gw),
		NotificationRepository: NewNotificationRepository(gw),
		MetricRepository:       NewMetricRepository(gw),
		SettingsRepository:     NewSettingsRepository(gw),
	}
}

// mapReadErr translates a missing path into the domain's not-found error.
func mapReadErr(err error) error {
	if errors.Is(err, store.ErrPathNotFound) {
		return domain.ErrNotFound
	}
	return err
}
