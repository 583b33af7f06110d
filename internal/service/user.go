package service

import (
	"context"
	"time"

	"smartlab-backend/internal/domain"
	"smartlab-backend/internal/repository"
)

type userService struct {
	userRepo    repository.UserRepository
	requestRepo repository.RequestRepository
}

func NewUserService(userRepo repository.UserRepository, requestRepo repository.RequestRepository) UserService {
	return &userService{userRepo: userRepo, requestRepo: requestRepo}
}

func (s *userService) GetProfile(ctx context.Context, sess domain.Session) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, sess.UserID)
}

// UpdateProfile applies the non-empty input fields to the caller's profile.
func (s *userService) UpdateProfile(ctx context.Context, sess domain.Session, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Department != "" {
		user.Department = input.Department
	}
	if input.StudentID != "" {
		user.StudentID = input.StudentID
	}
	if input.ProfileImage != "" {
		user.ProfileImage = input.ProfileImage
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListStudents aggregates per-student borrowing stats for the admin view.
func (s *userService) ListStudents(ctx context.Context, sess domain.Session) ([]StudentSummary, error) {
	if !sess.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	requests, err := s.requestRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	byUser := make(map[string][]domain.BorrowRequest)
	for _, r := range requests {
		byUser[r.UserID] = append(byUser[r.UserID], r)
	}

	now := time.Now().UTC()
	summaries := make([]StudentSummary, 0, len(users))
	for _, u := range users {
		if u.Role != domain.RoleStudent {
			continue
		}
		sum := StudentSummary{User: u}
		for _, r := range byUser[u.ID] {
			sum.TotalRequests++
			switch r.Status {
			case domain.RequestStatusPending:
				sum.PendingCount++
			case domain.RequestStatusApproved:
				sum.ActiveLoans++
				if due, err := time.Parse(time.RFC3339, r.DueDate); err == nil && due.Before(now) {
					sum.OverdueReturns++
				}
			}
		}
		summaries = append(summaries, sum)
	}
	return summaries, nil
}
