package service

import (
	"context"

	"smartlab-backend/internal/domain"
)

type AuthService interface {
	// Login returns the user plus access and refresh tokens.
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	RegisterStudent(ctx context.Context, input RegisterInput) (*domain.User, error)
	// CreateAdmin provisions an admin account; the email must belong to the
	// configured admin domain.
	CreateAdmin(ctx context.Context, email, password string) (*domain.User, error)
}

type RegisterInput struct {
	Email      string
	Password   string
	Name       string
	Department string
	StudentID  string
}

type SubmitRequestInput struct {
	ItemID   string
	Quantity int
	Purpose  string
	// DueDate is RFC 3339 or YYYY-MM-DD; empty picks the configured
	// default borrow period.
	DueDate string
}

type BorrowService interface {
	SubmitRequest(ctx context.Context, sess domain.Session, input SubmitRequestInput) (*domain.BorrowRequest, error)
	// Transition applies approve, reject or return to the request,
	// adjusting inventory availability and emitting notifications.
	Transition(ctx context.Context, sess domain.Session, requestID string, action domain.RequestAction) (*domain.BorrowRequest, error)
	GetRequest(ctx context.Context, sess domain.Session, requestID string) (*domain.BorrowRequest, error)
	// ListRequests returns every request for admins and the caller's own
	// requests for students, optionally filtered by status.
	ListRequests(ctx context.Context, sess domain.Session, status domain.RequestStatus) ([]domain.BorrowRequest, error)
}

type InventoryService interface {
	AddItem(ctx context.Context, sess domain.Session, item *domain.InventoryItem) (*domain.InventoryItem, error)
	GetItem(ctx context.Context, id string) (*domain.InventoryItem, error)
	UpdateItem(ctx context.Context, sess domain.Session, item *domain.InventoryItem) error
	DeleteItem(ctx context.Context, sess domain.Session, id string) error
	// ListItems filters by case-insensitive name/description match and by
	// exact category; empty arguments match everything.
	ListItems(ctx context.Context, query, category string) ([]domain.InventoryItem, error)
	ListCategories(ctx context.Context) ([]string, error)
}

type ReconcileService interface {
	// CheckItem raises an admin warning when availableQuantity has drifted
	// from physicalQuantity. Reports only; never corrects.
	CheckItem(ctx context.Context, item *domain.InventoryItem) (bool, error)
	// SweepInventory runs the drift check plus low-stock detection across
	// the whole inventory.
	SweepInventory(ctx context.Context) error
}

type NotificationService interface {
	ListNotifications(ctx context.Context, sess domain.Session) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, sess domain.Session, id string) error
}

type StudentSummary struct {
	User           domain.User `json:"user"`
	TotalRequests  int         `json:"totalRequests"`
	ActiveLoans    int         `json:"activeLoans"`
	PendingCount   int         `json:"pendingCount"`
	OverdueReturns int         `json:"overdueReturns"`
}

type UpdateProfileInput struct {
	Name         string
	Department   string
	StudentID    string
	ProfileImage string
}

type UserService interface {
	GetProfile(ctx context.Context, sess domain.Session) (*domain.User, error)
	UpdateProfile(ctx context.Context, sess domain.Session, input UpdateProfileInput) (*domain.User, error)
	ListStudents(ctx context.Context, sess domain.Session) ([]StudentSummary, error)
}

type MetricInput struct {
	ID       string
	Name     string
	Value    float64
	Unit     string
	MinValue float64
	MaxValue float64
	Icon     string
}

type MetricService interface {
	ListMetrics(ctx context.Context) ([]domain.EnvironmentalMetric, error)
	// Ingest stores a reading, derives its status from the bounds and
	// alerts admins on warning/critical when enabled in settings.
	Ingest(ctx context.Context, sess domain.Session, input MetricInput) (*domain.EnvironmentalMetric, error)
}

type SettingsService interface {
	GetSettings(ctx context.Context, sess domain.Session) (*domain.Settings, error)
	UpdateSettings(ctx context.Context, sess domain.Session, settings *domain.Settings) (*domain.Settings, error)
}

type EmailService interface {
	SendRequestSubmitted(ctx context.Context, adminEmail, studentName, itemName string, quantity int) error
	SendRequestApproved(ctx context.Context, studentEmail, itemName string, quantity int, dueDate string) error
	SendRequestRejected(ctx context.Context, studentEmail, itemName string) error
	SendRequestReturned(ctx context.Context, adminEmail, studentName, itemName string, quantity int) error
}
