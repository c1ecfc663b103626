package service

import (
	"context"
	"fmt"
	"strings"

	"auth-server/internal/domain"
	"auth-server/internal/repository"
)

// RequestService coordinates request CRUD scoped to the soliciting user.
type RequestService interface {
	Create(ctx context.Context, solicitorID int64, description string) (*domain.Request, error)
	ListOwn(ctx context.Context, solicitorID int64) ([]domain.Request, error)
	Get(ctx context.Context, actor Actor, id int64) (*domain.Request, error)
	Delete(ctx context.Context, actor Actor, id int64) error
}

type requestService struct {
	requests repository.RequestRepository
}

func NewRequestService(requests repository.RequestRepository) RequestService {
	return &requestService{requests: requests}
}

func (s *requestService) Create(ctx context.Context, solicitorID int64, description string) (*domain.Request, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}

	request := &domain.Request{Description: description, SolicitorID: solicitorID}
	if _, err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *requestService) ListOwn(ctx context.Context, solicitorID int64) ([]domain.Request, error) {
	requests, err := s.requests.ListBySolicitor(ctx, solicitorID)
	if err != nil {
		return nil, err
	}
	if requests == nil {
		requests = []domain.Request{}
	}
	return requests, nil
}

func (s *requestService) Get(ctx context.Context, actor Actor, id int64) (*domain.Request, error) {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Admin && request.SolicitorID != actor.UserID {
		return nil, ErrForbidden
	}
	return request, nil
}

func (s *requestService) Delete(ctx context.Context, actor Actor, id int64) error {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.Admin && request.SolicitorID != actor.UserID {
		return ErrForbidden
	}
	return s.requests.Delete(ctx, id)
}
