package jobs_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartlab-backend/internal/config"
	"smartlab-backend/internal/domain"
	"smartlab-backend/internal/jobs"
	"smartlab-backend/internal/repository/realtime"
	"smartlab-backend/internal/service"
	"smartlab-backend/internal/store/memory"
)

func newRunner(t *testing.T) (*jobs.JobRunner, *realtime.Store) {
	t.Helper()
	repos := realtime.NewStore(memory.New())
	reconcileSvc := service.NewReconcileService(repos.InventoryRepository, repos.NotificationRepository, repos.SettingsRepository)
	runner := jobs.NewJobRunner(
		&jobs.Repositories{
			Requests:      repos.RequestRepository,
			Notifications: repos.NotificationRepository,
			Settings:      repos.SettingsRepository,
			Metrics:       repos.MetricRepository,
		},
		&jobs.Services{Reconcile: reconcileSvc},
		&config.Config{},
	)
	return runner, repos
}

func TestSendOverdueReminders(t *testing.T) {
	ctx := context.Background()
	runner, repos := newRunner(t)

	overdue := &domain.BorrowRequest{
		ID: "r1", UserID: "u1", UserName: "Alice", ItemName: "Microscope",
		Quantity: 2, Status: domain.RequestStatusApproved,
		DueDate: time.Now().Add(-48 * time.Hour).UTC().Format(time.RFC3339),
	}
	onTime := &domain.BorrowRequest{
		ID: "r2", UserID: "u2", UserName: "Bob", ItemName: "Beaker Set",
		Quantity: 1, Status: domain.RequestStatusApproved,
		DueDate: time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
	}
	require.NoError(t, repos.RequestRepository.Create(ctx, overdue))
	require.NoError(t, repos.RequestRepository.Create(ctx, onTime))

	runner.SendOverdueReminders()

	notes, err := repos.NotificationRepository.ListFor(ctx, "u1", domain.RoleStudent)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Overdue Equipment", notes[0].Title)
	assert.Equal(t, domain.NotificationWarning, notes[0].Type)

	quiet, err := repos.NotificationRepository.ListFor(ctx, "u2", domain.RoleStudent)
	require.NoError(t, err)
	assert.Empty(t, quiet)
}

func TestReconcileInventory(t *testing.T) {
	ctx := context.Background()
	runner, repos := newRunner(t)

	require.NoError(t, repos.InventoryRepository.Create(ctx, &domain.InventoryItem{
		ID: "item1", Name: "Microscope",
		TotalQuantity: 10, AvailableQuantity: 5, PhysicalQuantity: 10,
	}))

	runner.ReconcileInventory()

	notes, err := repos.NotificationRepository.ListFor(ctx, "a1", domain.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, notes)
	assert.Equal(t, "Inventory Discrepancy", notes[0].Title)
}

func TestSweepMetrics(t *testing.T) {
	ctx := context.Background()
	runner, repos := newRunner(t)

	require.NoError(t, repos.MetricRepository.Upsert(ctx, &domain.EnvironmentalMetric{
		ID: "temp", Name: "Temperature",
		Timestamp: time.Now().Add(-2 * time.Hour).UTC().Format(time.RFC3339),
	}))
	require.NoError(t, repos.MetricRepository.Upsert(ctx, &domain.EnvironmentalMetric{
		ID: "hum", Name: "Humidity",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}))

	runner.SweepMetrics()

	notes, err := repos.NotificationRepository.ListFor(ctx, "a1", domain.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Sensor Offline", notes[0].Title)
	assert.Contains(t, notes[0].Message, "Temperature")
}
