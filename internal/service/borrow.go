package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"smartlab-backend/internal/domain"
	"smartlab-backend/internal/logger"
	"smartlab-backend/internal/repository"
)

type borrowService struct {
	requestRepo   repository.RequestRepository
	inventoryRepo repository.InventoryRepository
	userRepo      repository.UserRepository
	noteRepo      repository.NotificationRepository
	settingsRepo  repository.SettingsRepository
	emailSvc      EmailService
	reconciler    ReconcileService
}

func NewBorrowService(
	requestRepo repository.RequestRepository,
	inventoryRepo repository.InventoryRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	settingsRepo repository.SettingsRepository,
	emailSvc EmailService,
	reconciler ReconcileService,
) BorrowService {
	return &borrowService{
		requestRepo:   requestRepo,
		inventoryRepo: inventoryRepo,
		userRepo:      userRepo,
		noteRepo:      noteRepo,
		settingsRepo:  settingsRepo,
		emailSvc:      emailSvc,
		reconciler:    reconciler,
	}
}

func (s *borrowService) SubmitRequest(ctx context.Context, sess domain.Session, input SubmitRequestInput) (*domain.BorrowRequest, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if input.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be greater than 0: %w", domain.ErrInvalidArgument)
	}
	if settings.RequirePurpose && input.Purpose == "" {
		return nil, fmt.Errorf("purpose is required: %w", domain.ErrInvalidArgument)
	}

	now := time.Now().UTC()
	dueDate, err := resolveDueDate(input.DueDate, now, settings.DefaultBorrowDays)
	if err != nil {
		return nil, err
	}

	item, err := s.inventoryRepo.GetByID(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	if input.Quantity > item.AvailableQuantity {
		return nil, fmt.Errorf("only %d of %s available: %w", item.AvailableQuantity, item.Name, domain.ErrInsufficientStock)
	}

	req := &domain.BorrowRequest{
		ID:          uuid.NewString(),
		UserID:      sess.UserID,
		UserName:    sess.Name,
		ItemID:      item.ID,
		ItemName:    item.Name,
		Quantity:    input.Quantity,
		RequestDate: now.Format(time.RFC3339),
		DueDate:     dueDate.Format(time.RFC3339),
		Status:      domain.RequestStatusPending,
		Purpose:     input.Purpose,
	}

	// Availability is not touched here: the decrement happens at approval
	// time, re-checked against current stock.
	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.notify(ctx, domain.RecipientRole(domain.RoleAdmin), "New Borrow Request",
		fmt.Sprintf("%s has requested to borrow %d %s", sess.Name, req.Quantity, req.ItemName),
		domain.NotificationInfo)

	if settings.SendEmailNotifications && settings.NotificationEmail != "" {
		if err := s.emailSvc.SendRequestSubmitted(ctx, settings.NotificationEmail, sess.Name, req.ItemName, req.Quantity); err != nil {
			logger.Warn("Failed to send request-submitted email", "request_id", req.ID, "error", err)
		}
	}

	if settings.AutoApproveRequests {
		approved, err := s.approve(ctx, req, "auto-approval", settings)
		if err != nil {
			// Leave the request pending for manual review.
			logger.Warn("Auto-approval failed", "request_id", req.ID, "error", err)
			return req, nil
		}
		return approved, nil
	}

	return req, nil
}

func (s *borrowService) Transition(ctx context.Context, sess domain.Session, requestID string, action domain.RequestAction) (*domain.BorrowRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	switch action {
	case domain.ActionApprove:
		if !sess.IsAdmin() {
			return nil, domain.ErrForbidden
		}
		if req.Status != domain.RequestStatusPending {
			return nil, fmt.Errorf("cannot approve a %s request: %w", req.Status, domain.ErrInvalidTransition)
		}
		return s.approve(ctx, req, sess.Name, settings)

	case domain.ActionReject:
		if !sess.IsAdmin() {
			return nil, domain.ErrForbidden
		}
		if req.Status != domain.RequestStatusPending {
			return nil, fmt.Errorf("cannot reject a %s request: %w", req.Status, domain.ErrInvalidTransition)
		}
		return s.reject(ctx, req, sess.Name, settings)

	case domain.ActionReturn:
		if !sess.IsAdmin() && sess.UserID != req.UserID {
			return nil, domain.ErrForbidden
		}
		if req.Status != domain.RequestStatusApproved || req.ReturnDate != "" {
			return nil, fmt.Errorf("cannot return a %s request: %w", req.Status, domain.ErrInvalidTransition)
		}
		return s.markReturned(ctx, req, settings)

	default:
		return nil, fmt.Errorf("unknown action %q: %w", action, domain.ErrInvalidArgument)
	}
}

// approve re-checks stock at execution time: availability can shrink
// between request creation and approval.
func (s *borrowService) approve(ctx context.Context, req *domain.BorrowRequest, approver string, settings *domain.Settings) (*domain.BorrowRequest, error) {
	if _, err := s.inventoryRepo.AdjustAvailable(ctx, req.ItemID, -req.Quantity); err != nil {
		return nil, err
	}

	req.Status = domain.RequestStatusApproved
	req.ApprovedBy = approver
	req.ApprovalDate = time.Now().UTC().Format(time.RFC3339)
	// The item is already decremented; a failure here leaves the pair
	// inconsistent until the reconciliation sweep flags it.
	if err := s.requestRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	s.notify(ctx, domain.RecipientUser(req.UserID), "Request Approved",
		fmt.Sprintf("Your request to borrow %d %s has been approved", req.Quantity, req.ItemName),
		domain.NotificationSuccess)
	s.emailStudent(ctx, req, settings, func(email string) error {
		return s.emailSvc.SendRequestApproved(ctx, email, req.ItemName, req.Quantity, req.DueDate)
	})

	return req, nil
}

func (s *borrowService) reject(ctx context.Context, req *domain.BorrowRequest, approver string, settings *domain.Settings) (*domain.BorrowRequest, error) {
	req.Status = domain.RequestStatusRejected
	req.ApprovedBy = approver
	req.ApprovalDate = time.Now().UTC().Format(time.RFC3339)
	if err := s.requestRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	s.notify(ctx, domain.RecipientUser(req.UserID), "Request Rejected",
		fmt.Sprintf("Your request to borrow %d %s has been rejected", req.Quantity, req.ItemName),
		domain.NotificationError)
	s.emailStudent(ctx, req, settings, func(email string) error {
		return s.emailSvc.SendRequestRejected(ctx, email, req.ItemName)
	})

	return req, nil
}

func (s *borrowService) markReturned(ctx context.Context, req *domain.BorrowRequest, settings *domain.Settings) (*domain.BorrowRequest, error) {
	item, err := s.inventoryRepo.AdjustAvailable(ctx, req.ItemID, req.Quantity)
	if err != nil {
		return nil, err
	}

	req.Status = domain.RequestStatusReturned
	req.ReturnDate = time.Now().UTC().Format(time.RFC3339)
	if err := s.requestRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	s.notify(ctx, domain.RecipientRole(domain.RoleAdmin), "Item Returned",
		fmt.Sprintf("%s has returned %d %s", req.UserName, req.Quantity, req.ItemName),
		domain.NotificationInfo)
	if settings.SendEmailNotifications && settings.NotificationEmail != "" {
		if err := s.emailSvc.SendRequestReturned(ctx, settings.NotificationEmail, req.UserName, req.ItemName, req.Quantity); err != nil {
			logger.Warn("Failed to send request-returned email", "request_id", req.ID, "error", err)
		}
	}

	if _, err := s.reconciler.CheckItem(ctx, item); err != nil {
		logger.Warn("Reconciliation check failed", "item_id", item.ID, "error", err)
	}

	return req, nil
}

func (s *borrowService) GetRequest(ctx context.Context, sess domain.Session, requestID string) (*domain.BorrowRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !sess.IsAdmin() && req.UserID != sess.UserID {
		return nil, domain.ErrForbidden
	}
	return req, nil
}

func (s *borrowService) ListRequests(ctx context.Context, sess domain.Session, status domain.RequestStatus) ([]domain.BorrowRequest, error) {
	var (
		requests []domain.BorrowRequest
		err      error
	)
	if sess.IsAdmin() {
		requests, err = s.requestRepo.List(ctx)
	} else {
		requests, err = s.requestRepo.ListByUser(ctx, sess.UserID)
	}
	if err != nil {
		return nil, err
	}
	if status == "" {
		return requests, nil
	}
	var out []domain.BorrowRequest
	for _, req := range requests {
		if req.Status == status {
			out = append(out, req)
		}
	}
	return out, nil
}

// notify records a notification; failures are logged and never fail the
// surrounding transition.
func (s *borrowService) notify(ctx context.Context, to domain.Recipient, title, message string, kind domain.NotificationType) {
	note := &domain.Notification{
		ID:        uuid.NewString(),
		Recipient: to,
		Title:     title,
		Message:   message,
		Date:      time.Now().UTC().Format(time.RFC3339),
		Type:      kind,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("Failed to create notification", "title", title, "error", err)
	}
}

func (s *borrowService) emailStudent(ctx context.Context, req *domain.BorrowRequest, settings *domain.Settings, send func(email string) error) {
	if !settings.SendEmailNotifications {
		return
	}
	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		logger.Warn("Failed to look up student for email", "user_id", req.UserID, "error", err)
		return
	}
	if err := send(user.Email); err != nil {
		logger.Warn("Failed to send status email", "request_id", req.ID, "error", err)
	}
}

func resolveDueDate(raw string, now time.Time, defaultDays int) (time.Time, error) {
	if raw == "" {
		return now.AddDate(0, 0, defaultDays), nil
	}
	due, err := parseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable due date %q: %w", raw, domain.ErrInvalidArgument)
	}
	if !due.After(now) {
		return time.Time{}, fmt.Errorf("due date must be in the future: %w", domain.ErrInvalidArgument)
	}
	return due, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
