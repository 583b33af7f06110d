package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"smartlab-backend/internal/domain"
	"smartlab-backend/internal/repository"
	"smartlab-backend/internal/security"
)

const minPasswordLength = 8

type authService struct {
	userRepo         repository.UserRepository
	settingsRepo     repository.SettingsRepository
	tokens           security.TokenManager
	adminEmailDomain string
}

func NewAuthService(
	userRepo repository.UserRepository,
	settingsRepo repository.SettingsRepository,
	tokens security.TokenManager,
	adminEmailDomain string,
) AuthService {
	return &authService{
		userRepo:         userRepo,
		settingsRepo:     settingsRepo,
		tokens:           tokens,
		adminEmailDomain: adminEmailDomain,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", "", domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", "", domain.ErrInvalidCredentials
	}

	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return "", "", err
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", security.ErrWrongTokenType
	}
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", err
	}
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *authService) RegisterStudent(ctx context.Context, input RegisterInput) (*domain.User, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.AllowStudentRegistration {
		return nil, fmt.Errorf("student self-registration is disabled: %w", domain.ErrForbidden)
	}
	if err := validateNewAccount(input.Email, input.Password); err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, fmt.Errorf("name is required: %w", domain.ErrInvalidArgument)
	}
	if _, err := s.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, fmt.Errorf("email %s already registered: %w", input.Email, domain.ErrInvalidArgument)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		PasswordHash: string(hash),
		Name:         input.Name,
		Role:         domain.RoleStudent,
		Department:   input.Department,
		StudentID:    input.StudentID,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) CreateAdmin(ctx context.Context, email, password string) (*domain.User, error) {
	if !strings.HasSuffix(strings.ToLower(email), "@"+s.adminEmailDomain) {
		return nil, fmt.Errorf("invalid admin email domain, must use @%s: %w", s.adminEmailDomain, domain.ErrInvalidArgument)
	}
	if err := validateNewAccount(email, password); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email %s already registered: %w", email, domain.ErrInvalidArgument)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.SplitN(email, "@", 2)[0],
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func validateNewAccount(email, password string) error {
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("a valid email is required: %w", domain.ErrInvalidArgument)
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long: %w", minPasswordLength, domain.ErrInvalidArgument)
	}
	return nil
}
