package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"smartlab-backend/internal/domain"
	"smartlab-backend/internal/security"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockInventoryRepo
type MockInventoryRepo struct {
	mock.Mock
}

func (m *MockInventoryRepo) Create(ctx context.Context, item *domain.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockInventoryRepo) GetByID(ctx context.Context, id string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}
func (m *MockInventoryRepo) List(ctx context.Context) ([]domain.InventoryItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}
func (m *MockInventoryRepo) Update(ctx context.Context, item *domain.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockInventoryRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockInventoryRepo) AdjustAvailable(ctx context.Context, id string, delta int) (*domain.InventoryItem, error) {
	args := m.Called(ctx, id, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

// MockRequestRepo
type MockRequestRepo struct {
	mock.Mock
}

func (m *MockRequestRepo) Create(ctx context.Context, req *domain.BorrowRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockRequestRepo) GetByID(ctx context.Context, id string) (*domain.BorrowRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BorrowRequest), args.Error(1)
}
func (m *MockRequestRepo) Update(ctx context.Context, req *domain.BorrowRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockRequestRepo) List(ctx context.Context) ([]domain.BorrowRequest, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.BorrowRequest), args.Error(1)
}
func (m *MockRequestRepo) ListByUser(ctx context.Context, userID string) ([]domain.BorrowRequest, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.BorrowRequest), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) ListFor(ctx context.Context, userID string, role domain.Role) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, role)
	return args.Get(0).([]domain.Notification), args.Error(1)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMetricRepo
type MockMetricRepo struct {
	mock.Mock
}

func (m *MockMetricRepo) List(ctx context.Context) ([]domain.EnvironmentalMetric, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.EnvironmentalMetric), args.Error(1)
}
func (m *MockMetricRepo) GetByID(ctx context.Context, id string) (*domain.EnvironmentalMetric, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EnvironmentalMetric), args.Error(1)
}
func (m *MockMetricRepo) Upsert(ctx context.Context, metric *domain.EnvironmentalMetric) error {
	args := m.Called(ctx, metric)
	return args.Error(0)
}

// MockSettingsRepo
type MockSettingsRepo struct {
	mock.Mock
}

func (m *MockSettingsRepo) Get(ctx context.Context) (*domain.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}
func (m *MockSettingsRepo) Save(ctx context.Context, settings *domain.Settings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRequestSubmitted(ctx context.Context, adminEmail, studentName, itemName string, quantity int) error {
	args := m.Called(ctx, adminEmail, studentName, itemName, quantity)
	return args.Error(0)
}
func (m *MockEmailService) SendRequestApproved(ctx context.Context, studentEmail, itemName string, quantity int, dueDate string) error {
	args := m.Called(ctx, studentEmail, itemName, quantity, dueDate)
	return args.Error(0)
}
func (m *MockEmailService) SendRequestRejected(ctx context.Context, studentEmail, itemName string) error {
	args := m.Called(ctx, studentEmail, itemName)
	return args.Error(0)
}
func (m *MockEmailService) SendRequestReturned(ctx context.Context, adminEmail, studentName, itemName string, quantity int) error {
	args := m.Called(ctx, adminEmail, studentName, itemName, quantity)
	return args.Error(0)
}

// MockReconcileService
type MockReconcileService struct {
	mock.Mock
}

func (m *MockReconcileService) CheckItem(ctx context.Context, item *domain.InventoryItem) (bool, error) {
	args := m.Called(ctx, item)
	return args.Bool(0), args.Error(1)
}
func (m *MockReconcileService) SweepInventory(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockTokenManager
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateAccessToken(userID, email, role string) (string, error) {
	args := m.Called(userID, email, role)
	return args.String(0), args.Error(1)
}
func (m *MockTokenManager) GenerateRefreshToken(userID string) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}
func (m *MockTokenManager) ValidateToken(tokenString string) (*security.UserClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.UserClaims), args.Error(1)
}
