package service

import (
	"context"
	"fmt"
	"strings"

	"auth-server/internal/domain"
	"auth-server/internal/repository"
)

// Actor identifies the user performing an operation, with its resolved
// admin standing. Ownership checks run after authentication, so failures
// here surface as ErrForbidden, never an authentication error.
type Actor struct {
	UserID int64
	Admin  bool
}

// TaskService coordinates task CRUD scoped to owning users.
type TaskService interface {
	Create(ctx context.Context, ownerID int64, description string) (*domain.Task, error)
	ListOwned(ctx context.Context, ownerID int64) ([]domain.Task, error)
	Get(ctx context.Context, actor Actor, id int64) (*domain.Task, error)
	Delete(ctx context.Context, actor Actor, id int64) error
	AddOwner(ctx context.Context, taskID, userID int64) error
}

type taskService struct {
	tasks repository.TaskRepository
}

func NewTaskService(tasks repository.TaskRepository) TaskService {
	return &taskService{tasks: tasks}
}

func (s *taskService) Create(ctx context.Context, ownerID int64, description string) (*domain.Task, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}

	task := &domain.Task{Description: description}
	if _, err := s.tasks.Create(ctx, task, ownerID); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) ListOwned(ctx context.Context, ownerID int64) ([]domain.Task, error) {
	tasks, err := s.tasks.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

func (s *taskService) Get(ctx context.Context, actor Actor, id int64) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Admin && !ownedBy(task, actor.UserID) {
		return nil, ErrForbidden
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, actor Actor, id int64) error {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.Admin && !ownedBy(task, actor.UserID) {
		return ErrForbidden
	}
	return s.tasks.Delete(ctx, id)
}

func (s *taskService) AddOwner(ctx context.Context, taskID, userID int64) error {
	return s.tasks.AddOwner(ctx, taskID, userID)
}

func ownedBy(task *domain.Task, userID int64) bool {
	for _, owner := range task.Owners {
		if owner == userID {
			return true
		}
	}
	return false
}
