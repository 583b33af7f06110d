package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"smartlab-backend/internal/domain"
	"smartlab-backend/internal/service"
)

func TestNotificationService_MarkAsRead(t *testing.T) {
	ctx := context.Background()

	notes := []domain.Notification{
		{ID: "n1", Recipient: domain.RecipientUser("u1"), Title: "Request Approved"},
		{ID: "n2", Recipient: domain.RecipientRole(domain.RoleStudent), Title: "Maintenance"},
	}

	t.Run("Own Notification", func(t *testing.T) {
		noteRepo := new(MockNotificationRepo)
		svc := service.NewNotificationService(noteRepo)
		noteRepo.On("ListFor", ctx, "u1", domain.RoleStudent).Return(notes, nil)
		noteRepo.On("MarkAsRead", ctx, "n1").Return(nil)

		assert.NoError(t, svc.MarkAsRead(ctx, studentSess, "n1"))
	})

	t.Run("Someone Else's Notification", func(t *testing.T) {
		noteRepo := new(MockNotificationRepo)
		svc := service.NewNotificationService(noteRepo)
		noteRepo.On("ListFor", ctx, "u1", domain.RoleStudent).Return(notes, nil)

		err := svc.MarkAsRead(ctx, studentSess, "n-other")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		noteRepo.AssertNotCalled(t, "MarkAsRead", mock.Anything, mock.Anything)
	})
}

func TestUserService_ListStudents(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepo)
	requestRepo := new(MockRequestRepo)
	svc := service.NewUserService(userRepo, requestRepo)

	userRepo.On("List", ctx).Return([]domain.User{
		{ID: "u1", Name: "Alice", Role: domain.RoleStudent},
		{ID: "a1", Name: "Admin", Role: domain.RoleAdmin},
	}, nil)
	requestRepo.On("List", ctx).Return([]domain.BorrowRequest{
		{ID: "r1", UserID: "u1", Status: domain.RequestStatusPending},
		{ID: "r2", UserID: "u1", Status: domain.RequestStatusApproved, DueDate: "2020-01-01T00:00:00Z"},
		{ID: "r3", UserID: "u1", Status: domain.RequestStatusReturned},
	}, nil)

	t.Run("Admin Gets Stats", func(t *testing.T) {
		students, err := svc.ListStudents(ctx, adminSess)
		assert.NoError(t, err)
		assert.Len(t, students, 1)
		assert.Equal(t, "Alice", students[0].User.Name)
		assert.Equal(t, 3, students[0].TotalRequests)
		assert.Equal(t, 1, students[0].PendingCount)
		assert.Equal(t, 1, students[0].ActiveLoans)
		assert.Equal(t, 1, students[0].OverdueReturns)
	})

	t.Run("Student Forbidden", func(t *testing.T) {
		_, err := svc.ListStudents(ctx, studentSess)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}
