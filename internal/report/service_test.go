package report_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/taka-daredemo/JICA/internal/apperr"
	"github.com/taka-daredemo/JICA/internal/budget"
	"github.com/taka-daredemo/JICA/internal/farmer"
	"github.com/taka-daredemo/JICA/internal/metrics"
	"github.com/taka-daredemo/JICA/internal/report"
	"github.com/taka-daredemo/JICA/internal/task"
	"github.com/taka-daredemo/JICA/internal/team"
	"github.com/taka-daredemo/JICA/internal/training"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var now = time.Date(2025, 6, 18, 9, 0, 0, 0, time.UTC)

type fakeTasks struct {
	mu      sync.Mutex
	tasks   []*task.Task
	err     error
	filters []task.ListFilter
}

func (f *fakeTasks) List(_ context.Context, filter task.ListFilter) ([]*task.Task, error) {
	f.mu.Lock()
	f.filters = append(f.filters, filter)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}

	var out []*task.Task

	for _, t := range f.tasks {
		if filter.ExcludeStatus != nil && t.Status == *filter.ExcludeStatus {
			continue
		}

		if filter.DueFrom != nil && t.DueDate.Before(*filter.DueFrom) {
			continue
		}

		if filter.DueTo != nil && t.DueDate.After(*filter.DueTo) {
			continue
		}

		out = append(out, t)
	}

	return out, nil
}

type fakeBudgets struct {
	mu      sync.Mutex
	budgets []*budget.Budget
	plans   []*budget.PaymentPlan
	filters []budget.BudgetFilter
}

func (f *fakeBudgets) ListBudgets(_ context.Context, filter budget.BudgetFilter) ([]*budget.Budget, error) {
	f.mu.Lock()
	f.filters = append(f.filters, filter)
	f.mu.Unlock()

	return f.budgets, nil
}

func (f *fakeBudgets) ListPlans(_ context.Context, filter budget.PlanFilter) ([]*budget.PaymentPlan, error) {
	var out []*budget.PaymentPlan

	for _, p := range f.plans {
		for _, s := range filter.Statuses {
			if p.Status == s {
				out = append(out, p)
				break
			}
		}
	}

	return out, nil
}

type fakeFarmers struct {
	farmers []*farmer.Farmer
	incomes []*farmer.IncomeRecord
	counts  farmer.GroupCounts
}

func (f *fakeFarmers) Get(_ context.Context, id uuid.UUID) (*farmer.Farmer, error) {
	for _, fm := range f.farmers {
		if fm.ID == id {
			return fm, nil
		}
	}

	return nil, farmer.ErrNotFound
}

func (f *fakeFarmers) List(context.Context, farmer.ListFilter) ([]*farmer.Farmer, error) {
	return f.farmers, nil
}

func (f *fakeFarmers) CountByYearGroup(context.Context) (farmer.GroupCounts, error) {
	return f.counts, nil
}

func (f *fakeFarmers) ListIncome(_ context.Context, filter farmer.IncomeFilter) ([]*farmer.IncomeRecord, error) {
	var out []*farmer.IncomeRecord

	for _, r := range f.incomes {
		if filter.FarmerID != nil && r.FarmerID != *filter.FarmerID {
			continue
		}

		out = append(out, r)
	}

	return out, nil
}

type fakeTrainings struct {
	trainings []*training.Training
	rows      []*training.Attendance
}

func (f *fakeTrainings) List(_ context.Context, filter training.ListFilter) ([]*training.Training, error) {
	var out []*training.Training

	for _, t := range f.trainings {
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}

		if filter.From != nil && t.Date.Before(*filter.From) {
			continue
		}

		if filter.To != nil && t.Date.After(*filter.To) {
			continue
		}

		out = append(out, t)
	}

	return out, nil
}

func (f *fakeTrainings) Attendance(_ context.Context, id uuid.UUID) (*training.Training, []*training.Attendance, error) {
	for _, t := range f.trainings {
		if t.ID == id {
			return t, f.rows, nil
		}
	}

	return nil, nil, training.ErrNotFound
}

type fakeTeam struct {
	users  []*team.User
	counts team.Counts
}

func (f *fakeTeam) ActiveMembers(context.Context) ([]*team.User, error) {
	return f.users, nil
}

func (f *fakeTeam) Count(context.Context) (team.Counts, error) {
	return f.counts, nil
}

type fixture struct {
	tasks     *fakeTasks
	budgets   *fakeBudgets
	farmers   *fakeFarmers
	trainings *fakeTrainings
	team      *fakeTeam
}

func newFixture() *fixture {
	return &fixture{
		tasks:     &fakeTasks{},
		budgets:   &fakeBudgets{},
		farmers:   &fakeFarmers{},
		trainings: &fakeTrainings{},
		team:      &fakeTeam{},
	}
}

func (f *fixture) service() *report.Service {
	return report.NewService(report.Readers{
		Tasks:     f.tasks,
		Budgets:   f.budgets,
		Farmers:   f.farmers,
		Trainings: f.trainings,
		Team:      f.team,
	}, metrics.DefaultThresholds(), report.WithClock(func() time.Time { return now }), report.WithLocation(time.UTC))
}

func spent(name string, total, amount int64) *budget.Budget {
	return &budget.Budget{
		ID:          uuid.New(),
		Name:        name,
		TotalBudget: decimal.NewFromInt(total),
		Plans:       []*budget.PaymentPlan{{Expenses: []*budget.Expense{{Amount: decimal.NewFromInt(amount)}}}},
	}
}

func TestService_Dashboard(t *testing.T) {
	f := newFixture()
	f.tasks.tasks = []*task.Task{
		{ID: uuid.New(), Name: "late", Status: task.StatusInProgress, Priority: task.PriorityLow, DueDate: now.AddDate(0, 0, -1)},
		{ID: uuid.New(), Name: "done", Status: task.StatusCompleted, Priority: task.PriorityHigh, DueDate: now.AddDate(0, 0, -2)},
		{ID: uuid.New(), Name: "urgent", Status: task.StatusNotStarted, Priority: task.PriorityCritical, DueDate: now.AddDate(0, 0, 3)},
		{ID: uuid.New(), Name: "last month", Status: task.StatusNotStarted, Priority: task.PriorityMedium, DueDate: time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)},
		{ID: uuid.New(), Name: "next month", Status: task.StatusNotStarted, Priority: task.PriorityMedium, DueDate: time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC)},
	}
	f.budgets.budgets = []*budget.Budget{spent("Seeds", 100000, 85000)}
	f.team.counts = team.Counts{Total: 6, Active: 5}
	f.farmers.counts = farmer.GroupCounts{Total: 30, Year1: 10, Year2: 12, Year3: 8}
	f.trainings.trainings = []*training.Training{
		{ID: uuid.New(), Date: time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC), Status: training.StatusUpcoming},
	}

	got, err := f.service().Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, got.Tasks.Total)
	assert.Equal(t, 1, got.Tasks.Completed)
	assert.Equal(t, 33.3, got.Tasks.CompletionRate)
	assert.Equal(t, 2, got.Tasks.Overdue)
	assert.Equal(t, 1, got.Tasks.DueThisWeek)

	require.Len(t, got.Tasks.ThisMonthTasks, 3)
	assert.Equal(t, "urgent", got.Tasks.ThisMonthTasks[0].Name)
	assert.Equal(t, "late", got.Tasks.ThisMonthTasks[2].Name)

	assert.Equal(t, 85.0, got.Budget.ExecutionRate)
	assert.True(t, got.Budget.Remaining.Equal(decimal.NewFromInt(15000)))
	assert.Equal(t, 2025, *f.budgets.filters[0].FiscalYear)

	assert.Equal(t, team.Counts{Total: 6, Active: 5}, got.Team)
	assert.Equal(t, 30, got.Farmers.Total)
	assert.Equal(t, report.NextMonth{Tasks: 1, Trainings: 1}, got.NextMonth)
}

func TestService_Dashboard_PropagatesError(t *testing.T) {
	f := newFixture()
	f.tasks.err = errors.New("connection reset")

	_, err := f.service().Dashboard(context.Background())
	assert.ErrorContains(t, err, "connection reset")
}

func TestService_Alerts(t *testing.T) {
	f := newFixture()
	f.tasks.tasks = []*task.Task{
		{ID: uuid.New(), Name: "late", Status: task.StatusInProgress, DueDate: now.AddDate(0, 0, -1)},
	}
	f.budgets.budgets = []*budget.Budget{spent("Seeds", 100000, 85000)}
	f.budgets.plans = []*budget.PaymentPlan{
		{ID: uuid.New(), PlanName: "Tractor", Status: budget.PlanOverdue, DueDate: now.AddDate(0, -2, 0), Amount: decimal.NewFromInt(10)},
		{ID: uuid.New(), PlanName: "Seeds", Status: budget.PlanScheduled, DueDate: now.AddDate(0, 0, 5), Amount: decimal.NewFromInt(10)},
	}

	got, err := f.service().Alerts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, got.Count)
	assert.Equal(t, 2, got.CriticalCount)
	assert.Equal(t, 1, got.WarningCount)
	assert.Equal(t, 1, got.InfoCount)
}

func TestService_Generate_Formats(t *testing.T) {
	tests := []struct {
		format  report.Format
		wantErr error
	}{
		{format: report.FormatCSV, wantErr: apperr.ErrUnimplemented},
		{format: report.FormatPDF, wantErr: apperr.ErrUnimplemented},
		{format: "xml", wantErr: apperr.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			f := newFixture()

			_, err := f.service().Generate(context.Background(), report.Request{Format: tt.format})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.tasks.filters, "no data read before the format is accepted")
		})
	}
}

func TestService_Generate(t *testing.T) {
	f := newFixture()

	baseline := decimal.NewFromInt(100000)
	achiever := &farmer.Farmer{ID: uuid.New(), FarmerCode: "F-001", BaselineIncome: &baseline}
	laggard := &farmer.Farmer{ID: uuid.New(), FarmerCode: "F-002", BaselineIncome: &baseline}
	noRecord := &farmer.Farmer{ID: uuid.New(), FarmerCode: "F-003", BaselineIncome: &baseline}

	f.farmers.farmers = []*farmer.Farmer{achiever, laggard, noRecord}
	f.farmers.counts = farmer.GroupCounts{Total: 3, Year1: 3}
	f.farmers.incomes = []*farmer.IncomeRecord{
		{FarmerID: achiever.ID, RecordType: farmer.RecordAnnual, IncomeAmount: decimal.NewFromInt(115000), RecordDate: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		{FarmerID: laggard.ID, RecordType: farmer.RecordSale, IncomeAmount: decimal.NewFromInt(101000), RecordDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	f.budgets.budgets = []*budget.Budget{spent("Seeds", 1000, 333)}
	f.tasks.tasks = []*task.Task{
		{Status: task.StatusCompleted, DueDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)},
		{Status: task.StatusInProgress, DueDate: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)},
		{Status: task.StatusCompleted, DueDate: time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)},
	}
	f.trainings.trainings = []*training.Training{
		{Date: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), Status: training.StatusCompleted, Capacity: new(20), RegisteredCount: 18, PresentCount: 15},
		{Date: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), Status: training.StatusCompleted, Capacity: new(10), RegisteredCount: 10, PresentCount: 5},
		{Date: time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC), Status: training.StatusUpcoming},
	}

	got, err := f.service().Generate(context.Background(), report.Request{
		Period:      report.PeriodRequest{Type: report.Quarterly, Year: 2025, Quarter: 1},
		GeneratedBy: "officer@example.org",
	})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), got.Period.StartDate)
	assert.Equal(t, time.Date(2025, 3, 31, 23, 59, 59, 999999999, time.UTC), got.Period.EndDate)

	assert.Equal(t, 2, got.Tasks.Total)
	assert.Equal(t, 50.0, got.Tasks.CompletionRate)
	assert.Equal(t, 1, got.Tasks.Overdue)

	require.Len(t, got.Budget.Categories, 1)
	assert.Equal(t, 33.3, got.Budget.Categories[0].ExecutionRate)

	filter := f.budgets.filters[0]
	assert.Equal(t, 2025, *filter.FiscalYear)
	assert.Equal(t, got.Period.StartDate, *filter.ExpenseFrom)
	assert.Equal(t, got.Period.EndDate, *filter.ExpenseTo)

	assert.Equal(t, 2, got.Farmers.TotalAnalyzed)
	assert.Equal(t, 1, got.Farmers.TargetAchievers)
	assert.Equal(t, 50.0, got.Farmers.TargetAchievementRate)
	assert.Equal(t, 3, got.Farmers.Year1)

	assert.Equal(t, report.PeriodTraining{
		TotalSessions:     2,
		CompletedSessions: 2,
		TotalParticipants: 28,
		AvgAttendanceRate: 62.5,
	}, got.Training)

	assert.Equal(t, "officer@example.org", got.GeneratedBy)
	assert.Equal(t, now, got.GeneratedAt)
}

func TestService_BudgetOverview(t *testing.T) {
	f := newFixture()

	b := spent("Seeds", 1000, 400)
	b.Plans = append(b.Plans,
		&budget.PaymentPlan{Status: budget.PlanPending, DueDate: now.AddDate(0, 0, 3)},
		&budget.PaymentPlan{Status: budget.PlanScheduled, DueDate: now.AddDate(0, 0, -1)},
		&budget.PaymentPlan{Status: budget.PlanScheduled, DueDate: now.AddDate(0, 0, 10)},
		&budget.PaymentPlan{Status: budget.PlanScheduled, DueDate: now.AddDate(0, 0, 45)},
		&budget.PaymentPlan{Status: budget.PlanOverdue, DueDate: now.AddDate(0, -1, 0)},
		&budget.PaymentPlan{Status: budget.PlanPaid, DueDate: now.AddDate(0, 0, -3)},
	)
	f.budgets.budgets = []*budget.Budget{b}

	got, err := f.service().BudgetOverview(context.Background(), report.OverviewFilter{FiscalYear: new(2025)})
	require.NoError(t, err)

	assert.Equal(t, 40.0, got.ExecutionRate)
	assert.True(t, got.Remaining.Equal(decimal.NewFromInt(600)))
	assert.Equal(t, 1, got.PendingPayments)
	assert.Equal(t, 1, got.UpcomingPayments)
	assert.Equal(t, 2, got.OverduePayments)
}

func TestService_TeamStats(t *testing.T) {
	f := newFixture()
	f.team.counts = team.Counts{Total: 4, Active: 3}
	f.team.users = []*team.User{{ActiveTasks: 6}, {ActiveTasks: 2}, {}}
	f.tasks.tasks = []*task.Task{
		{Status: task.StatusCompleted, DueDate: now},
		{Status: task.StatusNotStarted, DueDate: now.AddDate(0, 0, -5)},
	}

	got, err := f.service().TeamStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, report.TeamCounts{TotalMembers: 4, ActiveMembers: 3, InactiveMembers: 1}, got.Team)
	assert.Equal(t, 1, got.Tasks.Overdue)
	assert.Equal(t, 50.0, got.Tasks.CompletionRate)
	assert.Equal(t, 8, got.Workload.TotalActiveTasks)
	assert.Equal(t, 2.7, got.Workload.AvgWorkload)
	assert.Equal(t, 1, got.Workload.OverloadedCount)
}

func TestService_FarmerIncome(t *testing.T) {
	f := newFixture()

	baseline := decimal.NewFromInt(50000)
	fm := &farmer.Farmer{ID: uuid.New(), BaselineIncome: &baseline}
	f.farmers.farmers = []*farmer.Farmer{fm}
	f.farmers.incomes = []*farmer.IncomeRecord{
		{FarmerID: fm.ID, RecordType: farmer.RecordSale, IncomeAmount: decimal.NewFromInt(56000), RecordDate: now.AddDate(0, -1, 0)},
		{FarmerID: fm.ID, RecordType: farmer.RecordOther, IncomeAmount: decimal.NewFromInt(1000), RecordDate: now},
		{FarmerID: uuid.New(), RecordType: farmer.RecordAnnual, IncomeAmount: decimal.NewFromInt(1), RecordDate: now},
	}

	got, err := f.service().FarmerIncome(context.Background(), fm.ID, report.IncomeFilter{})
	require.NoError(t, err)

	assert.Equal(t, report.RecordCounts{Annual: 0, Sale: 1, Total: 2}, got.Counts)
	require.NotNil(t, got.Analysis)
	assert.Equal(t, 12.0, got.Analysis.ChangePercent)
	assert.True(t, got.Analysis.MeetsTarget)

	_, err = f.service().FarmerIncome(context.Background(), uuid.New(), report.IncomeFilter{})
	assert.ErrorIs(t, err, farmer.ErrNotFound)
}

func TestService_SessionAttendance(t *testing.T) {
	f := newFixture()

	session := &training.Training{ID: uuid.New(), Capacity: new(20)}
	f.trainings.trainings = []*training.Training{session}
	for range 15 {
		f.trainings.rows = append(f.trainings.rows, &training.Attendance{Status: training.AttendancePresent})
	}

	got, err := f.service().SessionAttendance(context.Background(), session.ID)
	require.NoError(t, err)

	assert.Equal(t, 75.0, got.Statistics.AttendanceRate)
	assert.Equal(t, 15, got.Statistics.PresentCount)
}
