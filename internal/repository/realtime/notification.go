package realtime

import (
	"context"
	"errors"
	"sort"

	"smartlab-backend/internal/domain"
	"smartlab-backend/internal/repository"
	"smartlab-backend/internal/store"
)

type notificationRepository struct {
	gw store.Store
}

func NewNotificationRepository(gw store.Store) repository.NotificationRepository {
	return &notificationRepository{gw: gw}
}

func (r *notificationRepository) Create(ctx context.Context, note *domain.Notification) error {
	return r.gw.Create(ctx, store.EntityPath(store.PathNotifications, note.ID), note)
}

func (r *notificationRepository) ListFor(ctx context.Context, userID string, role domain.Role) ([]domain.Notification, error) {
	byID := map[string]domain.Notification{}
	if err := r.gw.Read(ctx, store.PathNotifications, &byID); err != nil {
		if errors.Is(err, store.ErrPathNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var out []domain.Notification
	for id, note := range byID {
		if !note.Recipient.Matches(userID, role) {
			continue
		}
		if note.ID == "" {
			note.ID = id
		}
		out = append(out, note)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id string) error {
	path := store.EntityPath(store.PathNotifications, id)
	var note domain.Notification
	if err := r.gw.Read(ctx, path, &note); err != nil {
		return mapReadErr(err)
	}
	return r.gw.Update(ctx, path, map[string]interface{}{"read": true})
}
