package report

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/taka-daredemo/JICA/internal/alert"
	"github.com/taka-daredemo/JICA/internal/budget"
	"github.com/taka-daredemo/JICA/internal/farmer"
	"github.com/taka-daredemo/JICA/internal/metrics"
	"github.com/taka-daredemo/JICA/internal/task"
	"github.com/taka-daredemo/JICA/internal/team"
	"github.com/taka-daredemo/JICA/internal/training"
)

const dashboardTaskLimit = 10

type TaskBrief struct {
	ID       uuid.UUID     `json:"id"`
	Name     string        `json:"name"`
	DueDate  time.Time     `json:"dueDate"`
	Status   task.Status   `json:"status"`
	Priority task.Priority `json:"priority"`
	Assignee *AssigneeRef  `json:"assignee,omitempty"`
}

type AssigneeRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

func brief(t *task.Task) TaskBrief {
	b := TaskBrief{
		ID:       t.ID,
		Name:     t.Name,
		DueDate:  t.DueDate,
		Status:   t.Status,
		Priority: t.Priority,
	}

	if t.Assignee != nil {
		b.Assignee = &AssigneeRef{ID: t.Assignee.ID, Name: t.Assignee.Name, Email: t.Assignee.Email}
	}

	return b
}

type DashboardTasks struct {
	metrics.TaskSummary
	ThisMonthTasks []TaskBrief `json:"thisMonthTasks"`
}

type BudgetTotals struct {
	TotalBudget   decimal.Decimal `json:"totalBudget"`
	Spent         decimal.Decimal `json:"spent"`
	Remaining     decimal.Decimal `json:"remaining"`
	ExecutionRate float64         `json:"executionRate"`
}

type NextMonth struct {
	Tasks     int `json:"tasks"`
	Trainings int `json:"trainings"`
}

type Dashboard struct {
	Tasks     DashboardTasks     `json:"tasks"`
	Budget    BudgetTotals       `json:"budget"`
	Team      team.Counts        `json:"team"`
	Farmers   farmer.GroupCounts `json:"farmers"`
	NextMonth NextMonth          `json:"nextMonth"`
}

// Dashboard summarises the current calendar month. Status counts and the
// completion rate cover tasks due this month; overdue and due-soon counts
// cover every open task.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	now := s.clock()

	monthStart, monthEnd := metrics.StartOfMonth(now), metrics.EndOfMonth(now)
	nextStart := monthStart.AddDate(0, 1, 0)
	nextEnd := metrics.EndOfMonth(nextStart)
	soonEnd := metrics.EndOfDay(now.AddDate(0, 0, s.th.DueSoonDays))

	var (
		monthTasks    []*task.Task
		openTasks     []*task.Task
		budgets       []*budget.Budget
		teamCounts    team.Counts
		farmerCounts  farmer.GroupCounts
		nextTasks     []*task.Task
		nextTrainings []*training.Training
		completed     = task.StatusCompleted
		fiscalYear    = now.Year()
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		monthTasks, err = s.r.Tasks.List(ctx, task.ListFilter{DueFrom: &monthStart, DueTo: &monthEnd})
		return wrap("listing month tasks", err)
	})
	g.Go(func() (err error) {
		openTasks, err = s.r.Tasks.List(ctx, task.ListFilter{ExcludeStatus: &completed, DueTo: &soonEnd})
		return wrap("listing open tasks", err)
	})
	g.Go(func() (err error) {
		budgets, err = s.r.Budgets.ListBudgets(ctx, budget.BudgetFilter{FiscalYear: &fiscalYear})
		return wrap("listing budgets", err)
	})
	g.Go(func() (err error) {
		teamCounts, err = s.r.Team.Count(ctx)
		return wrap("counting team", err)
	})
	g.Go(func() (err error) {
		farmerCounts, err = s.r.Farmers.CountByYearGroup(ctx)
		return wrap("counting farmers", err)
	})
	g.Go(func() (err error) {
		nextTasks, err = s.r.Tasks.List(ctx, task.ListFilter{DueFrom: &nextStart, DueTo: &nextEnd})
		return wrap("listing next month tasks", err)
	})
	g.Go(func() (err error) {
		nextTrainings, err = s.r.Trainings.List(ctx, training.ListFilter{From: &nextStart, To: &nextEnd})
		return wrap("listing next month trainings", err)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := metrics.SummarizeTasks(monthTasks, now, s.th)
	open := metrics.SummarizeTasks(openTasks, now, s.th)
	summary.Overdue, summary.DueToday, summary.DueThisWeek = open.Overdue, open.DueToday, open.DueThisWeek

	b := metrics.SummarizeBudgets(budgets)

	return &Dashboard{
		Tasks: DashboardTasks{
			TaskSummary:    summary,
			ThisMonthTasks: topTasks(monthTasks, dashboardTaskLimit),
		},
		Budget: BudgetTotals{
			TotalBudget:   b.TotalBudget,
			Spent:         b.TotalSpent,
			Remaining:     b.TotalRemaining,
			ExecutionRate: b.ExecutionRate,
		},
		Team:    teamCounts,
		Farmers: farmerCounts,
		NextMonth: NextMonth{
			Tasks:     len(nextTasks),
			Trainings: len(nextTrainings),
		},
	}, nil
}

// topTasks orders by priority, most urgent first, then by due date.
func topTasks(tasks []*task.Task, limit int) []TaskBrief {
	sorted := slices.Clone(tasks)
	slices.SortStableFunc(sorted, func(a, b *task.Task) int {
		return cmp.Or(
			cmp.Compare(a.Priority.Rank(), b.Priority.Rank()),
			a.DueDate.Compare(b.DueDate),
		)
	})

	out := make([]TaskBrief, 0, min(limit, len(sorted)))
	for _, t := range sorted[:min(limit, len(sorted))] {
		out = append(out, brief(t))
	}

	return out
}

// Alerts evaluates the alert rules over open tasks, current fiscal year
// budgets, this month's payment plans and this month's trainings.
func (s *Service) Alerts(ctx context.Context) (*alert.Summary, error) {
	now := s.clock()

	monthStart, monthEnd := metrics.StartOfMonth(now), metrics.EndOfMonth(now)
	todayEnd := metrics.EndOfDay(now)
	fiscalYear := now.Year()
	completed := task.StatusCompleted
	upcoming := training.StatusUpcoming

	var (
		tasks      []*task.Task
		budgets    []*budget.Budget
		overdue    []*budget.PaymentPlan
		monthPlans []*budget.PaymentPlan
		trainings  []*training.Training
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		tasks, err = s.r.Tasks.List(ctx, task.ListFilter{ExcludeStatus: &completed, DueTo: &todayEnd})
		return wrap("listing open tasks", err)
	})
	g.Go(func() (err error) {
		budgets, err = s.r.Budgets.ListBudgets(ctx, budget.BudgetFilter{FiscalYear: &fiscalYear})
		return wrap("listing budgets", err)
	})
	g.Go(func() (err error) {
		overdue, err = s.r.Budgets.ListPlans(ctx, budget.PlanFilter{Statuses: []budget.PlanStatus{budget.PlanOverdue}})
		return wrap("listing overdue plans", err)
	})
	g.Go(func() (err error) {
		monthPlans, err = s.r.Budgets.ListPlans(ctx, budget.PlanFilter{
			Statuses: []budget.PlanStatus{budget.PlanScheduled, budget.PlanPending},
			DueFrom:  &monthStart,
			DueTo:    &monthEnd,
		})
		return wrap("listing month plans", err)
	})
	g.Go(func() (err error) {
		trainings, err = s.r.Trainings.List(ctx, training.ListFilter{Status: &upcoming, From: &monthStart, To: &monthEnd})
		return wrap("listing trainings", err)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := s.alerts.Evaluate(alert.Input{
		Now:       now,
		Tasks:     tasks,
		Budgets:   budgets,
		Plans:     append(overdue, monthPlans...),
		Trainings: trainings,
	})

	return &summary, nil
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s: %w", op, err)
}
