package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"auth-server/internal/auth"
	"auth-server/internal/domain"
	"auth-server/internal/repository"
)

// CreateUserInput carries the fields for a new account. ExtraRoles are
// assigned on top of the default "user" role, atomically with the insert.
type CreateUserInput struct {
	Username   string
	Password   string
	Email      string
	FirstName  string
	LastName   string
	ExtraRoles []string
}

// UserService describes user lifecycle operations.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	VerifyCredentials(ctx context.Context, username, password string) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type userService struct {
	users  repository.UserRepository
	logger *logrus.Logger
}

func NewUserService(users repository.UserRepository, logger *logrus.Logger) UserService {
	if logger == nil {
		logger = logrus.New()
	}
	return &userService{users: users, logger: logger}
}

func (s *userService) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	password := input.Password

	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	roles := []string{domain.RoleUser}
	for _, role := range input.ExtraRoles {
		if role != domain.RoleUser {
			roles = append(roles, role)
		}
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Email:        strings.TrimSpace(input.Email),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
	}

	if _, err := s.users.Create(ctx, user, roles); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown role", ErrValidation)
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

// VerifyCredentials returns the user id for a correct username/password pair
// on an active account. Unknown user, inactive user, and wrong password are
// indistinguishable to the caller.
func (s *userService) VerifyCredentials(ctx context.Context, username, password string) (int64, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return 0, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrInvalidCredentials
		}
		return 0, err
	}
	if !user.IsActive {
		return 0, ErrInvalidCredentials
	}

	ok, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return 0, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return 0, ErrInvalidCredentials
	}

	// best effort; a failed timestamp write must not fail the login
	if err := s.users.UpdateLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		s.logger.WithError(err).Warnf("update last login for user %d", user.ID)
	}

	return user.ID, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

// sanitizeUser strips the password hash before the user leaves the service.
func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	clean := *user
	clean.PasswordHash = ""
	return &clean
}
