package service

import (
	"context"

	"smartlab-backend/internal/domain"
	"smartlab-backend/internal/repository"
)

type notificationService struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo}
}

func (s *notificationService) ListNotifications(ctx context.Context, sess domain.Session) ([]domain.Notification, error) {
	return s.noteRepo.ListFor(ctx, sess.UserID, sess.Role)
}

func (s *notificationService) MarkAsRead(ctx context.Context, sess domain.Session, id string) error {
	// Only notifications addressed to the caller (directly or via role)
	// can be marked.
	notes, err := s.noteRepo.ListFor(ctx, sess.UserID, sess.Role)
	if err != nil {
		return err
	}
	for _, note := range notes {
		if note.ID == id {
			return s.noteRepo.MarkAsRead(ctx, id)
		}
	}
	return domain.ErrNotFound
}
