package service

import (
	"context"

	"auth-server/internal/repository"
)

// RoleService resolves role membership. A user's effective privilege is the
// union of its assigned role names; there is no inheritance between roles.
type RoleService interface {
	RolesOf(ctx context.Context, userID int64) ([]string, error)
	HasRole(ctx context.Context, userID int64, role string) (bool, error)
	Assign(ctx context.Context, userID int64, role string) error
}

type roleService struct {
	roles repository.RoleRepository
}

func NewRoleService(roles repository.RoleRepository) RoleService {
	return &roleService{roles: roles}
}

func (s *roleService) RolesOf(ctx context.Context, userID int64) ([]string, error) {
	names, err := s.roles.RolesOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func (s *roleService) HasRole(ctx context.Context, userID int64, role string) (bool, error) {
	return s.roles.HasRole(ctx, userID, role)
}

func (s *roleService) Assign(ctx context.Context, userID int64, role string) error {
	return s.roles.Assign(ctx, userID, role)
}
