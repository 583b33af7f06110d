package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"smartlab-backend/internal/domain"
	"smartlab-backend/internal/service"
)

type borrowFixture struct {
	requestRepo   *MockRequestRepo
	inventoryRepo *MockInventoryRepo
	userRepo      *MockUserRepo
	noteRepo      *MockNotificationRepo
	settingsRepo  *MockSettingsRepo
	emailSvc      *MockEmailService
	reconciler    *MockReconcileService
	svc           service.BorrowService
}

func newBorrowFixture() *borrowFixture {
	f := &borrowFixture{
		requestRepo:   new(MockRequestRepo),
		inventoryRepo: new(MockInventoryRepo),
		userRepo:      new(MockUserRepo),
		noteRepo:      new(MockNotificationRepo),
		settingsRepo:  new(MockSettingsRepo),
		emailSvc:      new(MockEmailService),
		reconciler:    new(MockReconcileService),
	}
	f.svc = service.NewBorrowService(
		f.requestRepo, f.inventoryRepo, f.userRepo,
		f.noteRepo, f.settingsRepo, f.emailSvc, f.reconciler,
	)
	return f
}

func quietSettings() *domain.Settings {
	s := domain.DefaultSettings()
	s.SendEmailNotifications = false
	s.RequirePurpose = false
	return &s
}

var (
	studentSess = domain.Session{UserID: "u1", Name: "Alice", Role: domain.RoleStudent}
	adminSess   = domain.Session{UserID: "a1", Name: "Admin", Role: domain.RoleAdmin}
)

func microscopeItem() *domain.InventoryItem {
	return &domain.InventoryItem{
		ID:                "item1",
		Name:              "Microscope",
		TotalQuantity:     10,
		AvailableQuantity: 5,
		PhysicalQuantity:  5,
	}
}

func TestBorrowService_SubmitRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newBorrowFixture()
		f.settingsRepo.On("Get", ctx).Return(quietSettings(), nil)
		f.inventoryRepo.On("GetByID", ctx, "item1").Return(microscopeItem(), nil)
		f.requestRepo.On("Create", ctx, mock.AnythingOfType("*domain.BorrowRequest")).Return(nil)
		f.noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		req, err := f.svc.SubmitRequest(ctx, studentSess, service.SubmitRequestInput{
			ItemID:   "item1",
			Quantity: 3,
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.RequestStatusPending, req.Status)
		assert.Equal(t, "Alice", req.UserName)
		assert.Equal(t, "Microscope", req.ItemName)

		// Submission alone never touches availability.
		f.inventoryRepo.AssertNotCalled(t, "AdjustAvailable", mock.Anything, mock.Anything, mock.Anything)

		// The admin side gets notified.
		f.noteRepo.AssertCalled(t, "Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.Recipient.Role == domain.RoleAdmin && n.Title == "New Borrow Request"
		}))
	})

	t.Run("Insufficient Stock", func(t *testing.T) {
		f := newBorrowFixture()
		f.settingsRepo.On("Get", ctx).Return(quietSettings(), nil)
		f.inventoryRepo.On("GetByID", ctx, "item1").Return(microscopeItem(), nil)

		req, err := f.svc.SubmitRequest(ctx, studentSess, service.SubmitRequestInput{
			ItemID:   "item1",
			Quantity: 6, // only 5 available
		})
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		assert.Nil(t, req)
		f.requestRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Purpose Required", func(t *testing.T) {
		f := newBorrowFixture()
		settings := quietSettings()
		settings.RequirePurpose = true
		f.settingsRepo.On("Get", ctx).Return(settings, nil)

		_, err := f.svc.SubmitRequest(ctx, studentSess, service.SubmitRequestInput{
			ItemID:   "item1",
			Quantity: 1,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("Past Due Date", func(t *testing.T) {
		f := newBorrowFixture()
		f.settingsRepo.On("Get", ctx).Return(quietSettings(), nil)

		_, err := f.svc.SubmitRequest(ctx, studentSess, service.SubmitRequestInput{
			ItemID:   "item1",
			Quantity: 1,
			DueDate:  "2020-01-01",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("Auto Approve", func(t *testing.T) {
		f := newBorrowFixture()
		settings := quietSettings()
		settings.AutoApproveRequests = true
		f.settingsRepo.On("Get", ctx).Return(settings, nil)
		item := microscopeItem()
		f.inventoryRepo.On("GetByID", ctx, "item1").Return(item, nil)
		f.requestRepo.On("Create", ctx, mock.AnythingOfType("*domain.BorrowRequest")).Return(nil)
		adjusted := microscopeItem()
		adjusted.AvailableQuantity = 2
		f.inventoryRepo.On("AdjustAvailable", ctx, "item1", -3).Return(adjusted, nil)
		f.requestRepo.On("Update", ctx, mock.AnythingOfType("*domain.BorrowRequest")).Return(nil)
		f.noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		req, err := f.svc.SubmitRequest(ctx, studentSess, service.SubmitRequestInput{
			ItemID:   "item1",
			Quantity: 3,
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.RequestStatusApproved, req.Status)
		assert.Equal(t, "auto-approval", req.ApprovedBy)
	})
}

func TestBorrowService_Approve(t *testing.T) {
	ctx := context.Background()

	pending := func() *domain.BorrowRequest {
		return &domain.BorrowRequest{
			ID:       "req1",
			UserID:   "u1",
			UserName: "Alice",
			ItemID:   "item1",
			ItemName: "Microscope",
			Quantity: 3,
			DueDate:  time.Now().Add(7 * 24 * time.Hour).UTC().Format(time.RFC3339),
			Status:   domain.RequestStatusPending,
		}
	}

	t.Run("Decrements Availability", func(t *testing.T) {
		f := newBorrowFixture()
		f.requestRepo.On("GetByID", ctx, "req1").Return(pending(), nil)
		f.settingsRepo.On("Get", ctx).Return(quietSettings(), nil)
		adjusted := microscopeItem()
		adjusted.AvailableQuantity = 2
		f.inventoryRepo.On("AdjustAvailable", ctx, "item1", -3).Return(adjusted, nil)
		f.requestRepo.On("Update", ctx, mock.AnythingOfType("*domain.BorrowRequest")).Return(nil)
		f.noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		req, err := f.svc.Transition(ctx, adminSess, "req1", domain.ActionApprove)
		assert.NoError(t, err)
		assert.Equal(t, domain.RequestStatusApproved, req.Status)
		assert.Equal(t, "Admin", req.ApprovedBy)
		assert.NotEmpty(t, req.ApprovalDate)

		f.inventoryRepo.AssertCalled(t, "AdjustAvailable", ctx, "item1", -3)
		f.noteRepo.AssertCalled(t, "Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.Recipient.UserID == "u1" && n.Type == domain.NotificationSuccess
		}))
	})

	t.Run("Insufficient Stock At Approval", func(t *testing.T) {
		f := newBorrowFixture()
		f.requestRepo.On("GetByID", ctx, "req1").Return(pending(), nil)
		f.settingsRepo.On("Get", ctx).Return(quietSettings(), nil)
		f.inventoryRepo.On("AdjustAvailable", ctx, "item1", -3).Return(nil, domain.ErrInsufficientStock)

		req, err := f.svc.Transition(ctx, adminSess, "req1", domain.ActionApprove)
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		assert.Nil(t, req)
		f.requestRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Student Cannot Approve", func(t *testing.T) {
		f := newBorrowFixture()
		f.requestRepo.On("GetByID", ctx, "req1").Return(pending(), nil)
		f.settingsRepo.On("Get", ctx).Return(quietSettings(), nil)

		_, err := f.svc.Transition(ctx, studentSess, "req1", domain.ActionApprove)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("Rejected Request Cannot Be Approved", func(t *testing.T) {
		f := newBorrowFixture()
		rejected := pending()
		rejected.Status = domain.RequestStatusRejected
		f.requestRepo.On("GetByID", ctx, "req1").Return(rejected, nil)
		f.settingsRepo.On("Get", ctx).Return(quietSettings(), nil)

		_, err := f.svc.Transition(ctx, adminSess, "req1", domain.ActionApprove)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		f.inventoryRepo.AssertNotCalled(t, "AdjustAvailable", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestBorrowService_Reject(t *testing.T) {
	ctx := context.Background()
	f := newBorrowFixture()

	pending := &domain.BorrowRequest{
		ID: "req1", UserID: "u1", ItemID: "item1", ItemName: "Microscope",
		Quantity: 3, Status: domain.RequestStatusPending,
	}
	f.requestRepo.On("GetByID", ctx, "req1").Return(pending, nil)
	f.settingsRepo.On("Get", ctx).Return(quietSettings(), nil)
	f.requestRepo.On("Update", ctx, mock.AnythingOfType("*domain.BorrowRequest")).Return(nil)
	f.noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

	req, err := f.svc.Transition(ctx, adminSess, "req1", domain.ActionReject)
	assert.NoError(t, err)
	assert.Equal(t, domain.RequestStatusRejected, req.Status)

	// Rejection never touches inventory.
	f.inventoryRepo.AssertNotCalled(t, "AdjustAvailable", mock.Anything, mock.Anything, mock.Anything)
	f.noteRepo.AssertCalled(t, "Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.Recipient.UserID == "u1" && n.Type == domain.NotificationError
	}))
}

func TestBorrowService_Return(t *testing.T) {
	ctx := context.Background()

	approved := func() *domain.BorrowRequest {
		return &domain.BorrowRequest{
			ID: "req1", UserID: "u1", UserName: "Alice",
			ItemID: "item1", ItemName: "Microscope",
			Quantity: 3, Status: domain.RequestStatusApproved,
		}
	}

	t.Run("Increments Availability And Reconciles", func(t *testing.T) {
		f := newBorrowFixture()
		f.requestRepo.On("GetByID", ctx, "req1").Return(approved(), nil)
		f.settingsRepo.On("Get", ctx).Return(quietSettings(), nil)
		adjusted := microscopeItem()
		f.inventoryRepo.On("AdjustAvailable", ctx, "item1", 3).Return(adjusted, nil)
		f.requestRepo.On("Update", ctx, mock.AnythingOfType("*domain.BorrowRequest")).Return(nil)
		f.noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)
		f.reconciler.On("CheckItem", ctx, adjusted).Return(false, nil)

		req, err := f.svc.Transition(ctx, studentSess, "req1", domain.ActionReturn)
		assert.NoError(t, err)
		assert.Equal(t, domain.RequestStatusReturned, req.Status)
		assert.NotEmpty(t, req.ReturnDate)

		f.inventoryRepo.AssertCalled(t, "AdjustAvailable", ctx, "item1", 3)
		f.reconciler.AssertCalled(t, "CheckItem", ctx, adjusted)
	})

	t.Run("Double Return Fails Without Double Increment", func(t *testing.T) {
		f := newBorrowFixture()
		returned := approved()
		returned.Status = domain.RequestStatusReturned
		returned.ReturnDate = "2026-01-10T12:00:00Z"
		f.requestRepo.On("GetByID", ctx, "req1").Return(returned, nil)
		f.settingsRepo.On("Get", ctx).Return(quietSettings(), nil)

		_, err := f.svc.Transition(ctx, studentSess, "req1", domain.ActionReturn)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		f.inventoryRepo.AssertNotCalled(t, "AdjustAvailable", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Other Student Cannot Return", func(t *testing.T) {
		f := newBorrowFixture()
		f.requestRepo.On("GetByID", ctx, "req1").Return(approved(), nil)
		f.settingsRepo.On("Get", ctx).Return(quietSettings(), nil)

		other := domain.Session{UserID: "u2", Name: "Bob", Role: domain.RoleStudent}
		_, err := f.svc.Transition(ctx, other, "req1", domain.ActionReturn)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestBorrowService_ListRequests(t *testing.T) {
	ctx := context.Background()
	f := newBorrowFixture()

	all := []domain.BorrowRequest{
		{ID: "r1", UserID: "u1", Status: domain.RequestStatusPending},
		{ID: "r2", UserID: "u2", Status: domain.RequestStatusApproved},
		{ID: "r3", UserID: "u1", Status: domain.RequestStatusApproved},
	}
	f.requestRepo.On("List", ctx).Return(all, nil)
	f.requestRepo.On("ListByUser", ctx, "u1").Return([]domain.BorrowRequest{all[0], all[2]}, nil)

	t.Run("Admin Sees All", func(t *testing.T) {
		got, err := f.svc.ListRequests(ctx, adminSess, "")
		assert.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("Student Sees Own", func(t *testing.T) {
		got, err := f.svc.ListRequests(ctx, studentSess, "")
		assert.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("Status Filter", func(t *testing.T) {
		got, err := f.svc.ListRequests(ctx, adminSess, domain.RequestStatusApproved)
		assert.NoError(t, err)
		assert.Len(t, got, 2)
	})
}
