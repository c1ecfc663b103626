package repository

import (
	"context"

	"auth-server/internal/domain"
)

// TaskRepository defines persistence operations for Task entities and their
// many-to-many ownership.
type TaskRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, task *domain.Task, ownerID int64) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Task, error)
	AddOwner(ctx context.Context, taskID, userID int64) error
	Delete(ctx context.Context, id int64) error
}

// RequestRepository defines persistence operations for Request entities.
type RequestRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, request *domain.Request) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Request, error)
	ListBySolicitor(ctx context.Context, solicitorID int64) ([]domain.Request, error)
	Delete(ctx context.Context, id int64) error
}
