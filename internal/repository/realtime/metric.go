package realtime

import (
	"context"
	"errors"
	"sort"

	"smartlab-backend/internal/domain"
	"smartlab-backend/internal/repository"
	"smartlab-backend/internal/store"
)

type metricRepository struct {
	gw store.Store
}

func NewMetricRepository(gw store.Store) repository.MetricRepository {
	return &metricRepository{gw: gw}
}

func (r *metricRepository) List(ctx context.Context) ([]domain.EnvironmentalMetric, error) {
	byID := map[string]domain.EnvironmentalMetric{}
	if err := r.gw.Read(ctx, store.PathMetrics, &byID); err != nil {
		if errors.Is(err, store.ErrPathNotFound) {
			return nil, nil
		}
		return nil, err
	}
	metrics := make([]domain.EnvironmentalMetric, 0, len(byID))
	for id, metric := range byID {
		if metric.ID == "" {
			metric.ID = id
		}
		metrics = append(metrics, metric)
	}
	sort.Slice(metrics, func(i, j int) bool { return metrics[i].Name < metrics[j].Name })
	return metrics, nil
}

func (r *metricRepository) GetByID(ctx context.Context, id string) (*domain.EnvironmentalMetric, error) {
	var metric domain.EnvironmentalMetric
	if err := r.gw.Read(ctx, store.EntityPath(store.PathMetrics, id), &metric); err != nil {
		return nil, mapReadErr(err)
	}
	if metric.ID == "" {
		metric.ID = id
	}
	return &metric, nil
}

func (r *metricRepository) Upsert(ctx context.Context, metric *domain.EnvironmentalMetric) error {
	return r.gw.Create(ctx, store.EntityPath(store.PathMetrics, metric.ID), metric)
}
