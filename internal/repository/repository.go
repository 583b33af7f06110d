package repository

import (
	"context"

	"smartlab-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type InventoryRepository interface {
	Create(ctx context.Context, item *domain.InventoryItem) error
	GetByID(ctx context.Context, id string) (*domain.InventoryItem, error)
	List(ctx context.Context) ([]domain.InventoryItem, error)
	Update(ctx context.Context, item *domain.InventoryItem) error
	Delete(ctx context.Context, id string) error

	// AdjustAvailable atomically shifts availableQuantity by delta,
	// failing with domain.ErrInsufficientStock below zero and
	// domain.ErrQuantityBounds above totalQuantity. Returns the item as
	// written.
	AdjustAvailable(ctx context.Context, id string, delta int) (*domain.InventoryItem, error)
}

type RequestRepository interface {
	Create(ctx context.Context, req *domain.BorrowRequest) error
	GetByID(ctx context.Context, id string) (*domain.BorrowRequest, error)
	Update(ctx context.Context, req *domain.BorrowRequest) error
	List(ctx context.Context) ([]domain.BorrowRequest, error)
	ListByUser(ctx context.Context, userID string) ([]domain.BorrowRequest, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	ListFor(ctx context.Context, userID string, role domain.Role) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, id string) error
}

type MetricRepository interface {
	List(ctx context.Context) ([]domain.EnvironmentalMetric, error)
	GetByID(ctx context.Context, id string) (*domain.EnvironmentalMetric, error)
	Upsert(ctx context.Context, metric *domain.EnvironmentalMetric) error
}

type SettingsRepository interface {
	// Get returns the stored settings document, or the defaults when none
	// has been saved yet.
	Get(ctx context.Context) (*domain.Settings, error)
	Save(ctx context.Context, settings *domain.Settings) error
}
