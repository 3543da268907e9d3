package task

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taka-daredemo/JICA/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=task
type Repository interface {
	CreateTask(ctx context.Context, t *Task) error
	GetTask(ctx context.Context, id uuid.UUID) (*Task, error)
	ListTasks(ctx context.Context, filter ListFilter) ([]*Task, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	UpdateAssignee(ctx context.Context, id uuid.UUID, assigneeID *uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name         string
	Description  string
	AssigneeID   *uuid.UUID
	DueDate      time.Time
	Status       Status
	Priority     Priority
	Recurrence   *RecurringPattern
	ParentTaskID *uuid.UUID
	CreatedByID  *uuid.UUID
}

// ListFilter narrows a task listing. Due bounds are inclusive.
type ListFilter struct {
	Status        *Status
	ExcludeStatus *Status
	AssigneeID    *uuid.UUID
	DueFrom       *time.Time
	DueTo         *time.Time
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Task, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, apperr.Validation("name is required")
	}

	if params.DueDate.IsZero() {
		return nil, apperr.Validation("dueDate is required")
	}

	if params.Status == "" {
		params.Status = StatusNotStarted
	}

	if params.Priority == "" {
		params.Priority = PriorityMedium
	}

	if !params.Status.Valid() {
		return nil, apperr.Validation("invalid status: " + string(params.Status))
	}

	if !params.Priority.Valid() {
		return nil, apperr.Validation("invalid priority: " + string(params.Priority))
	}

	t := &Task{
		Name:         strings.TrimSpace(params.Name),
		Description:  params.Description,
		AssigneeID:   params.AssigneeID,
		DueDate:      params.DueDate,
		Status:       params.Status,
		Priority:     params.Priority,
		IsRecurring:  params.Recurrence != nil,
		Recurrence:   params.Recurrence,
		ParentTaskID: params.ParentTaskID,
		CreatedByID:  params.CreatedByID,
	}
	if err := s.repo.CreateTask(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Task, error) {
	return s.repo.GetTask(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Task, error) {
	return s.repo.ListTasks(ctx, filter)
}

// Overdue lists unfinished tasks whose due date has passed, regardless of the
// stored status.
func (s *Service) Overdue(ctx context.Context, now time.Time) ([]*Task, error) {
	return s.repo.ListTasks(ctx, ListFilter{
		ExcludeStatus: new(StatusCompleted),
		DueTo:         &now,
	})
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	if !status.Valid() {
		return apperr.Validation("invalid status: " + string(status))
	}

	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *Service) Assign(ctx context.Context, id uuid.UUID, assigneeID *uuid.UUID) error {
	return s.repo.UpdateAssignee(ctx, id, assigneeID)
}
