package realtime

import (
	"context"
	"errors"

	"smartlab-backend/internal/domain"
	"smartlab-backend/internal/repository"
	"smartlab-backend/internal/store"
)

type settingsRepository struct {
	gw store.Store
}

func NewSettingsRepository(gw store.Store) repository.SettingsRepository {
	return &settingsRepository{gw: gw}
}

func (r *settingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	var settings domain.Settings
	if err := r.gw.Read(ctx, store.PathSettings, &settings); err != nil {
		if errors.Is(err, store.ErrPathNotFound) {
			defaults := domain.DefaultSettings()
			return &defaults, nil
		}
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings *domain.Settings) error {
	return r.gw.Create(ctx, store.PathSettings, settings)
}
