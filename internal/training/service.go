package training

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taka-daredemo/JICA/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=training
type Repository interface {
	CreateTraining(ctx context.Context, t *Training) error
	GetTraining(ctx context.Context, id uuid.UUID) (*Training, error)
	ListTrainings(ctx context.Context, filter ListFilter) ([]*Training, error)

	ListAttendance(ctx context.Context, sessionID uuid.UUID) ([]*Attendance, error)
	FarmerExists(ctx context.Context, farmerID uuid.UUID) (bool, error)
	CreateAttendance(ctx context.Context, a *Attendance) error
	ReplaceAttendance(ctx context.Context, sessionID uuid.UUID, rows []*Attendance) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Topic         string
	Description   string
	Date          time.Time
	Location      string
	FacilitatorID *uuid.UUID
	Capacity      *int
	Status        Status
}

// ListFilter narrows a session listing. Date bounds are inclusive.
type ListFilter struct {
	Status *Status
	From   *time.Time
	To     *time.Time
}

type AttendanceEntry struct {
	FarmerID uuid.UUID
	Status   AttendanceStatus
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Training, error) {
	if strings.TrimSpace(params.Topic) == "" {
		return nil, apperr.Validation("topic is required")
	}

	if params.Date.IsZero() {
		return nil, apperr.Validation("date is required")
	}

	if params.Capacity != nil && *params.Capacity < 0 {
		return nil, apperr.Validation("capacity must not be negative")
	}

	if params.Status == "" {
		params.Status = StatusUpcoming
	}

	if !params.Status.Valid() {
		return nil, apperr.Validation("invalid status: " + string(params.Status))
	}

	t := &Training{
		Topic:         strings.TrimSpace(params.Topic),
		Description:   params.Description,
		Date:          params.Date,
		Location:      params.Location,
		FacilitatorID: params.FacilitatorID,
		Capacity:      params.Capacity,
		Status:        params.Status,
	}
	if err := s.repo.CreateTraining(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Training, error) {
	return s.repo.GetTraining(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Training, error) {
	return s.repo.ListTrainings(ctx, filter)
}

// Attendance returns a session together with its attendance rows.
func (s *Service) Attendance(ctx context.Context, sessionID uuid.UUID) (*Training, []*Attendance, error) {
	t, err := s.repo.GetTraining(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.repo.ListAttendance(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	return t, rows, nil
}

// Register adds a farmer to a session with status Registered.
func (s *Service) Register(ctx context.Context, sessionID, farmerID uuid.UUID) (*Attendance, error) {
	t, err := s.repo.GetTraining(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	ok, err := s.repo.FarmerExists(ctx, farmerID)
	if err != nil {
		return nil, fmt.Errorf("checking farmer: %w", err)
	}

	if !ok {
		return nil, ErrFarmerNotFound
	}

	if t.IsFull() {
		return nil, ErrSessionFull
	}

	a := &Attendance{
		SessionID: sessionID,
		FarmerID:  farmerID,
		Status:    AttendanceRegistered,
	}
	if err := s.repo.CreateAttendance(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

// ReplaceAttendance overwrites every attendance row of a session. Entries
// without a status default to Registered.
func (s *Service) ReplaceAttendance(ctx context.Context, sessionID uuid.UUID, entries []AttendanceEntry) ([]*Attendance, error) {
	if _, err := s.repo.GetTraining(ctx, sessionID); err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool, len(entries))
	rows := make([]*Attendance, 0, len(entries))

	for _, e := range entries {
		if e.FarmerID == uuid.Nil {
			return nil, apperr.Validation("farmerId is required")
		}

		if seen[e.FarmerID] {
			return nil, apperr.Validation("duplicate farmerId: " + e.FarmerID.String())
		}

		seen[e.FarmerID] = true

		status := e.Status
		if status == "" {
			status = AttendanceRegistered
		}

		if !status.Valid() {
			return nil, apperr.Validation("invalid attendance status: " + string(status))
		}

		rows = append(rows, &Attendance{SessionID: sessionID, FarmerID: e.FarmerID, Status: status})
	}

	if err := s.repo.ReplaceAttendance(ctx, sessionID, rows); err != nil {
		return nil, err
	}

	return rows, nil
}
