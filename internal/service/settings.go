package service

import (
	"context"
	"fmt"

	"smartlab-backend/internal/domain"
	"smartlab-backend/internal/repository"
)

type settingsService struct {
	settingsRepo repository.SettingsRepository
}

func NewSettingsService(settingsRepo repository.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo}
}

func (s *settingsService) GetSettings(ctx context.Context, sess domain.Session) (*domain.Settings, error) {
	if !sess.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.settingsRepo.Get(ctx)
}

func (s *settingsService) UpdateSettings(ctx context.Context, sess domain.Session, settings *domain.Settings) (*domain.Settings, error) {
	if !sess.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if settings.SiteName == "" {
		return nil, fmt.Errorf("siteName is required: %w", domain.ErrInvalidArgument)
	}
	if settings.LowStockThreshold < 0 || settings.LowStockThreshold > 100 {
		return nil, fmt.Errorf("lowStockThreshold must be between 0 and 100: %w", domain.ErrInvalidArgument)
	}
	if settings.DefaultBorrowDays < 1 {
		return nil, fmt.Errorf("defaultBorrowDays must be at least 1: %w", domain.ErrInvalidArgument)
	}
	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
