package repository

import (
	"context"
	"time"

	"auth-server/internal/domain"
)

// UserRepository defines persistence operations for User entities. Creation
// assigns the given roles in the same transaction as the user row insert;
// either everything lands or nothing does.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User, roles []string) (int64, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

// RoleRepository resolves role membership via the user_roles join table.
type RoleRepository interface {
	Init(ctx context.Context) error
	RolesOf(ctx context.Context, userID int64) ([]string, error)
	HasRole(ctx context.Context, userID int64, role string) (bool, error)
	Assign(ctx context.Context, userID int64, role string) error
}
