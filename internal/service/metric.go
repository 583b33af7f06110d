package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"smartlab-backend/internal/domain"
	"smartlab-backend/internal/logger"
	"smartlab-backend/internal/repository"
)

type metricService struct {
	metricRepo   repository.MetricRepository
	noteRepo     repository.NotificationRepository
	settingsRepo repository.SettingsRepository
}

func NewMetricService(
	metricRepo repository.MetricRepository,
	noteRepo repository.NotificationRepository,
	settingsRepo repository.SettingsRepository,
) MetricService {
	return &metricService{metricRepo: metricRepo, noteRepo: noteRepo, settingsRepo: settingsRepo}
}

func (s *metricService) ListMetrics(ctx context.Context) ([]domain.EnvironmentalMetric, error) {
	return s.metricRepo.List(ctx)
}

// Ingest records a sensor reading, derives its status from the configured
// bounds, and alerts admins when the status leaves the normal band.
func (s *metricService) Ingest(ctx context.Context, sess domain.Session, input MetricInput) (*domain.EnvironmentalMetric, error) {
	if !sess.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if input.Name == "" {
		return nil, fmt.Errorf("metric name is required: %w", domain.ErrInvalidArgument)
	}
	if input.MinValue > input.MaxValue {
		return nil, fmt.Errorf("minValue %v exceeds maxValue %v: %w", input.MinValue, input.MaxValue, domain.ErrInvalidArgument)
	}

	metric := &domain.EnvironmentalMetric{
		ID:        input.ID,
		Name:      input.Name,
		Value:     input.Value,
		Unit:      input.Unit,
		Status:    statusFor(input.Value, input.MinValue, input.MaxValue),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		MinValue:  input.MinValue,
		MaxValue:  input.MaxValue,
		Icon:      input.Icon,
	}
	if metric.ID == "" {
		metric.ID = uuid.NewString()
	}

	previous, err := s.metricRepo.GetByID(ctx, metric.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if err := s.metricRepo.Upsert(ctx, metric); err != nil {
		return nil, err
	}

	// Alert only on transitions into a degraded state so a sensor stuck out
	// of range does not flood the admin feed on every reading.
	if metric.Status != domain.MetricStatusNormal && (previous == nil || previous.Status != metric.Status) {
		s.alertAdmins(ctx, metric)
	}
	return metric, nil
}

func (s *metricService) alertAdmins(ctx context.Context, metric *domain.EnvironmentalMetric) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		logger.Warn("failed to load settings for metric alert", "metric_id", metric.ID, "error", err)
		return
	}
	if !settings.NotifyOnMetricAlerts {
		return
	}
	noteType := domain.NotificationWarning
	if metric.Status == domain.MetricStatusCritical {
		noteType = domain.NotificationError
	}
	note := &domain.Notification{
		ID:        uuid.NewString(),
		Recipient: domain.RecipientRole(domain.RoleAdmin),
		Title:     fmt.Sprintf("%s Alert", metric.Name),
		Message: fmt.Sprintf("%s reading is %v%s, outside the allowed range %v-%v%s.",
			metric.Name, metric.Value, metric.Unit, metric.MinValue, metric.MaxValue, metric.Unit),
		Type: noteType,
		Date: metric.Timestamp,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("failed to create metric alert notification", "metric_id", metric.ID, "error", err)
	}
}

// statusFor grades a reading against its bounds. Readings within 10% of a
// bound count as warning, readings past a bound as critical.
func statusFor(value, min, max float64) domain.MetricStatus {
	if value < min || value > max {
		return domain.MetricStatusCritical
	}
	margin := (max - min) * 0.1
	if value < min+margin || value > max-margin {
		return domain.MetricStatusWarning
	}
	return domain.MetricStatusNormal
}
