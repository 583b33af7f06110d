package realtime

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"smartlab-backend/internal/domain"
	"smartlab-backend/internal/repository"
	"smartlab-backend/internal/store"
)

// userRecord is the persisted shape of a user document. The password hash
// never leaves the repository on a domain.User JSON encoding, so it is held
// in a separate storage type and copied across explicitly.
type userRecord struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash,omitempty"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Department   string `json:"department,omitempty"`
	StudentID    string `json:"studentId,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
}

func (rec userRecord) toDomain(id string) (*domain.User, error) {
	if rec.ID == "" {
		rec.ID = id
	}
	if rec.Email == "" {
		return nil, fmt.Errorf("user %s: missing email: %w", rec.ID, domain.ErrInvalidArgument)
	}
	role := domain.Role(rec.Role)
	if role != domain.RoleStudent && role != domain.RoleAdmin {
		return nil, fmt.Errorf("user %s: unknown role %q: %w", rec.ID, rec.Role, domain.ErrInvalidArgument)
	}
	return &domain.User{
		ID:           rec.ID,
		Email:        rec.Email,
		PasswordHash: rec.PasswordHash,
		Name:         rec.Name,
		Role:         role,
		Department:   rec.Department,
		StudentID:    rec.StudentID,
		ProfileImage: rec.ProfileImage,
		CreatedAt:    rec.CreatedAt,
	}, nil
}

func recordFromDomain(user *domain.User) userRecord {
	return userRecord{
		ID:           user.ID,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Name:         user.Name,
		Role:         string(user.Role),
		Department:   user.Department,
		StudentID:    user.StudentID,
		ProfileImage: user.ProfileImage,
		CreatedAt:    user.CreatedAt,
	}
}

type userRepository struct {
	gw store.Store
}

func NewUserRepository(gw store.Store) repository.UserRepository {
	return &userRepository{gw: gw}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return r.gw.Create(ctx, store.EntityPath(store.PathUsers, user.ID), recordFromDomain(user))
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var rec userRecord
	if err := r.gw.Read(ctx, store.EntityPath(store.PathUsers, id), &rec); err != nil {
		return nil, mapReadErr(err)
	}
	return rec.toDomain(id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return &users[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	byID := map[string]userRecord{}
	if err := r.gw.Read(ctx, store.PathUsers, &byID); err != nil {
		if errors.Is(err, store.ErrPathNotFound) {
			return nil, nil
		}
		return nil, err
	}
	users := make([]domain.User, 0, len(byID))
	for id, rec := range byID {
		user, err := rec.toDomain(id)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	return r.gw.Create(ctx, store.EntityPath(store.PathUsers, user.ID), recordFromDomain(user))
}
