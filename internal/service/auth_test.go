package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"smartlab-backend/internal/domain"
	"smartlab-backend/internal/service"
)

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	alice := func(t *testing.T) *domain.User {
		return &domain.User{
			ID: "u1", Email: "alice@lab.edu", Name: "Alice",
			Role: domain.RoleStudent, PasswordHash: hashOf(t, "secret-pass"),
		}
	}

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		settingsRepo := new(MockSettingsRepo)
		tokens := new(MockTokenManager)
		svc := service.NewAuthService(userRepo, settingsRepo, tokens, "admin.com")

		userRepo.On("GetByEmail", ctx, "alice@lab.edu").Return(alice(t), nil)
		tokens.On("GenerateAccessToken", "u1", "alice@lab.edu", "student").Return("access", nil)
		tokens.On("GenerateRefreshToken", "u1").Return("refresh", nil)

		user, access, refresh, err := svc.Login(ctx, "alice@lab.edu", "secret-pass")
		assert.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
		assert.Equal(t, "access", access)
		assert.Equal(t, "refresh", refresh)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		settingsRepo := new(MockSettingsRepo)
		tokens := new(MockTokenManager)
		svc := service.NewAuthService(userRepo, settingsRepo, tokens, "admin.com")

		userRepo.On("GetByEmail", ctx, "alice@lab.edu").Return(alice(t), nil)

		_, _, _, err := svc.Login(ctx, "alice@lab.edu", "wrong")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		settingsRepo := new(MockSettingsRepo)
		tokens := new(MockTokenManager)
		svc := service.NewAuthService(userRepo, settingsRepo, tokens, "admin.com")

		userRepo.On("GetByEmail", ctx, "nobody@lab.edu").Return(nil, domain.ErrNotFound)

		_, _, _, err := svc.Login(ctx, "nobody@lab.edu", "whatever")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestAuthService_RegisterStudent(t *testing.T) {
	ctx := context.Background()

	open := func() *domain.Settings {
		s := domain.DefaultSettings()
		s.AllowStudentRegistration = true
		return &s
	}

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		settingsRepo := new(MockSettingsRepo)
		tokens := new(MockTokenManager)
		svc := service.NewAuthService(userRepo, settingsRepo, tokens, "admin.com")

		settingsRepo.On("Get", ctx).Return(open(), nil)
		userRepo.On("GetByEmail", ctx, "bob@lab.edu").Return(nil, domain.ErrNotFound)
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		user, err := svc.RegisterStudent(ctx, service.RegisterInput{
			Email:    "bob@lab.edu",
			Password: "longenough",
			Name:     "Bob",
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleStudent, user.Role)
		assert.NotEmpty(t, user.ID)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("longenough")))
	})

	t.Run("Registration Disabled", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		settingsRepo := new(MockSettingsRepo)
		tokens := new(MockTokenManager)
		svc := service.NewAuthService(userRepo, settingsRepo, tokens, "admin.com")

		closed := domain.DefaultSettings()
		closed.AllowStudentRegistration = false
		settingsRepo.On("Get", ctx).Return(&closed, nil)

		_, err := svc.RegisterStudent(ctx, service.RegisterInput{
			Email: "bob@lab.edu", Password: "longenough", Name: "Bob",
		})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("Short Password", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		settingsRepo := new(MockSettingsRepo)
		tokens := new(MockTokenManager)
		svc := service.NewAuthService(userRepo, settingsRepo, tokens, "admin.com")

		settingsRepo.On("Get", ctx).Return(open(), nil)

		_, err := svc.RegisterStudent(ctx, service.RegisterInput{
			Email: "bob@lab.edu", Password: "short", Name: "Bob",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		settingsRepo := new(MockSettingsRepo)
		tokens := new(MockTokenManager)
		svc := service.NewAuthService(userRepo, settingsRepo, tokens, "admin.com")

		settingsRepo.On("Get", ctx).Return(open(), nil)
		userRepo.On("GetByEmail", ctx, "bob@lab.edu").Return(&domain.User{ID: "u2"}, nil)

		_, err := svc.RegisterStudent(ctx, service.RegisterInput{
			Email: "bob@lab.edu", Password: "longenough", Name: "Bob",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})
}

func TestAuthService_CreateAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		settingsRepo := new(MockSettingsRepo)
		tokens := new(MockTokenManager)
		svc := service.NewAuthService(userRepo, settingsRepo, tokens, "admin.com")

		userRepo.On("GetByEmail", ctx, "ops@admin.com").Return(nil, domain.ErrNotFound)
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		user, err := svc.CreateAdmin(ctx, "ops@admin.com", "strongpassword")
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, user.Role)
		assert.Equal(t, "ops", user.Name)
	})

	t.Run("Wrong Domain", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		settingsRepo := new(MockSettingsRepo)
		tokens := new(MockTokenManager)
		svc := service.NewAuthService(userRepo, settingsRepo, tokens, "admin.com")

		_, err := svc.CreateAdmin(ctx, "ops@lab.edu", "strongpassword")
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
