package realtime

import (
	"context"
	"errors"
	"sort"

	"smartlab-backend/internal/domain"
	"smartlab-backend/internal/repository"
	"smartlab-backend/internal/store"
)

type requestRepository struct {
	gw store.Store
}

func NewRequestRepository(gw store.Store) repository.RequestRepository {
	return &requestRepository{gw: gw}
}

func (r *requestRepository) Create(ctx context.Context, req *domain.BorrowRequest) error {
	return r.gw.Create(ctx, store.EntityPath(store.PathBorrowRequests, req.ID), req)
}

func (r *requestRepository) GetByID(ctx context.Context, id string) (*domain.BorrowRequest, error) {
	var req domain.BorrowRequest
	if err := r.gw.Read(ctx, store.EntityPath(store.PathBorrowRequests, id), &req); err != nil {
		return nil, mapReadErr(err)
	}
	if req.ID == "" {
		req.ID = id
	}
	return &req, nil
}

func (r *requestRepository) Update(ctx context.Context, req *domain.BorrowRequest) error {
	return r.gw.Create(ctx, store.EntityPath(store.PathBorrowRequests, req.ID), req)
}

func (r *requestRepository) List(ctx context.Context) ([]domain.BorrowRequest, error) {
	byID := map[string]domain.BorrowRequest{}
	if err := r.gw.Read(ctx, store.PathBorrowRequests, &byID); err != nil {
		if errors.Is(err, store.ErrPathNotFound) {
			return nil, nil
		}
		return nil, err
	}
	requests := make([]domain.BorrowRequest, 0, len(byID))
	for id, req := range byID {
		if req.ID == "" {
			req.ID = id
		}
		requests = append(requests, req)
	}
	// Newest first, the order every screen shows them in.
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].RequestDate > requests[j].RequestDate
	})
	return requests, nil
}

func (r *requestRepository) ListByUser(ctx context.Context, userID string) ([]domain.BorrowRequest, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.BorrowRequest
	for _, req := range all {
		if req.UserID == userID {
			out = append(out, req)
		}
	}
	return out, nil
}
