// Package report assembles dashboard, alert and periodic report views from
// the domain services.
package report

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/taka-daredemo/JICA/internal/alert"
	"github.com/taka-daredemo/JICA/internal/budget"
	"github.com/taka-daredemo/JICA/internal/farmer"
	"github.com/taka-daredemo/JICA/internal/metrics"
	"github.com/taka-daredemo/JICA/internal/task"
	"github.com/taka-daredemo/JICA/internal/team"
	"github.com/taka-daredemo/JICA/internal/training"
)

type TaskReader interface {
	List(ctx context.Context, filter task.ListFilter) ([]*task.Task, error)
}

type BudgetReader interface {
	ListBudgets(ctx context.Context, filter budget.BudgetFilter) ([]*budget.Budget, error)
	ListPlans(ctx context.Context, filter budget.PlanFilter) ([]*budget.PaymentPlan, error)
}

type FarmerReader interface {
	Get(ctx context.Context, id uuid.UUID) (*farmer.Farmer, error)
	List(ctx context.Context, filter farmer.ListFilter) ([]*farmer.Farmer, error)
	CountByYearGroup(ctx context.Context) (farmer.GroupCounts, error)
	ListIncome(ctx context.Context, filter farmer.IncomeFilter) ([]*farmer.IncomeRecord, error)
}

type TrainingReader interface {
	List(ctx context.Context, filter training.ListFilter) ([]*training.Training, error)
	Attendance(ctx context.Context, sessionID uuid.UUID) (*training.Training, []*training.Attendance, error)
}

type TeamReader interface {
	ActiveMembers(ctx context.Context) ([]*team.User, error)
	Count(ctx context.Context) (team.Counts, error)
}

// Readers groups the data sources the Service aggregates over.
type Readers struct {
	Tasks     TaskReader
	Budgets   BudgetReader
	Farmers   FarmerReader
	Trainings TrainingReader
	Team      TeamReader
}

type Service struct {
	r      Readers
	th     metrics.Thresholds
	alerts *alert.Engine
	loc    *time.Location
	now    func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithLocation sets the time zone used for calendar boundaries.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		s.loc = loc
	}
}

func NewService(r Readers, th metrics.Thresholds, opts ...Option) *Service {
	s := &Service{
		r:      r,
		th:     th,
		alerts: alert.NewEngine(th),
		loc:    time.Local,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) clock() time.Time {
	return s.now().In(s.loc)
}
