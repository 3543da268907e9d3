package team

import (
	"context"

	"github.com/taka-daredemo/JICA/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=team
type Repository interface {
	ListUsers(ctx context.Context, filter ListFilter) ([]*User, error)
	CountUsers(ctx context.Context) (Counts, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type ListFilter struct {
	Status *Status
}

// Members lists users with their role names and task counts.
func (s *Service) Members(ctx context.Context, filter ListFilter) ([]*User, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, apperr.Validation("invalid status: " + string(*filter.Status))
	}

	return s.repo.ListUsers(ctx, filter)
}

// ActiveMembers is Members restricted to Active users.
func (s *Service) ActiveMembers(ctx context.Context) ([]*User, error) {
	return s.repo.ListUsers(ctx, ListFilter{Status: new(StatusActive)})
}

func (s *Service) Count(ctx context.Context) (Counts, error) {
	return s.repo.CountUsers(ctx)
}
