package metrics_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taka-daredemo/JICA/internal/budget"
	"github.com/taka-daredemo/JICA/internal/farmer"
	"github.com/taka-daredemo/JICA/internal/metrics"
	"github.com/taka-daredemo/JICA/internal/task"
	"github.com/taka-daredemo/JICA/internal/team"
	"github.com/taka-daredemo/JICA/internal/training"
)

var th = metrics.DefaultThresholds()

// 2025-06-18 is a Wednesday.
var now = time.Date(2025, 6, 18, 14, 0, 0, 0, time.UTC)

func budgetWithSpend(total, spent string) *budget.Budget {
	return &budget.Budget{
		ID:          uuid.New(),
		Name:        "Seeds",
		TotalBudget: decimal.RequireFromString(total),
		Plans: []*budget.PaymentPlan{
			{Expenses: []*budget.Expense{{Amount: decimal.RequireFromString(spent)}}},
		},
	}
}

func TestSummarizeTasks(t *testing.T) {
	tasks := []*task.Task{
		{Status: task.StatusInProgress, DueDate: now.AddDate(0, 0, -1)},
		{Status: task.StatusCompleted, DueDate: now.AddDate(0, 0, -3)},
		{Status: task.StatusNotStarted, DueDate: now.Add(2 * time.Hour)},
		{Status: task.StatusOverdue, DueDate: now.AddDate(0, 0, 5)},
		{Status: task.StatusNotStarted, DueDate: now.AddDate(0, 0, 12)},
	}

	got := metrics.SummarizeTasks(tasks, now, th)

	assert.Equal(t, metrics.TaskSummary{
		Total:          5,
		Completed:      1,
		InProgress:     1,
		NotStarted:     2,
		Overdue:        1,
		DueToday:       1,
		DueThisWeek:    2,
		CompletionRate: 20,
	}, got)
}

func TestSummarizeTasks_Empty(t *testing.T) {
	got := metrics.SummarizeTasks(nil, now, th)
	assert.Zero(t, got.CompletionRate)
	assert.Zero(t, got.Total)
}

func TestIsOverdue_IgnoresStoredStatus(t *testing.T) {
	storedOverdueButFuture := &task.Task{Status: task.StatusOverdue, DueDate: now.Add(time.Hour)}
	inProgressPastDue := &task.Task{Status: task.StatusInProgress, DueDate: now.Add(-time.Minute)}
	completedPastDue := &task.Task{Status: task.StatusCompleted, DueDate: now.Add(-time.Hour)}

	assert.False(t, metrics.IsOverdue(storedOverdueButFuture, now))
	assert.True(t, metrics.IsOverdue(inProgressPastDue, now))
	assert.False(t, metrics.IsOverdue(completedPastDue, now))
}

func TestIsDueToday_DayBoundaries(t *testing.T) {
	start := metrics.StartOfDay(now)
	end := metrics.EndOfDay(now)

	assert.True(t, metrics.IsDueToday(&task.Task{Status: task.StatusNotStarted, DueDate: start}, now))
	assert.True(t, metrics.IsDueToday(&task.Task{Status: task.StatusNotStarted, DueDate: end}, now))
	assert.False(t, metrics.IsDueToday(&task.Task{Status: task.StatusNotStarted, DueDate: end.Add(time.Nanosecond)}, now))
	assert.False(t, metrics.IsDueToday(&task.Task{Status: task.StatusNotStarted, DueDate: start.Add(-time.Nanosecond)}, now))
}

func TestExecutionRate(t *testing.T) {
	tests := []struct {
		name  string
		spent string
		total string
		want  float64
	}{
		{name: "ZeroBudget", spent: "500", total: "0", want: 0},
		{name: "Partial", spent: "85000", total: "100000", want: 85},
		{name: "Overspent", spent: "150", total: "100", want: 150},
		{name: "NothingSpent", spent: "0", total: "100", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := metrics.ExecutionRate(decimal.RequireFromString(tt.spent), decimal.RequireFromString(tt.total))
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestSummarizeBudgets(t *testing.T) {
	got := metrics.SummarizeBudgets([]*budget.Budget{
		budgetWithSpend("100000", "85000"),
		budgetWithSpend("1000", "1200"),
		budgetWithSpend("0", "0"),
	})

	require.Len(t, got.Categories, 3)

	assert.Equal(t, 85.0, got.Categories[0].ExecutionRate)
	assert.True(t, got.Categories[0].Remaining.Equal(decimal.NewFromInt(15000)))
	assert.True(t, got.Categories[1].Remaining.Equal(decimal.NewFromInt(-200)))
	assert.Equal(t, 0.0, got.Categories[2].ExecutionRate)

	assert.True(t, got.TotalBudget.Equal(decimal.NewFromInt(101000)))
	assert.True(t, got.TotalSpent.Equal(decimal.NewFromInt(86200)))
	assert.True(t, got.TotalRemaining.Equal(decimal.NewFromInt(14800)))
	assert.Equal(t, 85.3, got.ExecutionRate)
}

func TestClassifyWorkload(t *testing.T) {
	tests := []struct {
		active int
		want   metrics.WorkloadLevel
	}{
		{0, metrics.WorkloadLow},
		{1, metrics.WorkloadNormal},
		{3, metrics.WorkloadNormal},
		{4, metrics.WorkloadHigh},
		{5, metrics.WorkloadHigh},
		{6, metrics.WorkloadOverloaded},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, metrics.ClassifyWorkload(tt.active, th), "active=%d", tt.active)
	}
}

func TestSummarizeWorkload(t *testing.T) {
	users := []*team.User{
		{Name: "Aiko", Roles: []string{"Admin"}, ActiveTasks: 1, CompletedTasks: 4},
		{Name: "Ben", ActiveTasks: 7},
		{Name: "Chie", Roles: []string{"Admin"}, ActiveTasks: 4},
		{Name: "Dai", Roles: []string{"Field Officer"}},
	}

	got := metrics.SummarizeWorkload(users, th)

	names := make([]string, 0, len(got.Members))
	for _, m := range got.Members {
		names = append(names, m.Name)
	}

	assert.Equal(t, []string{"Ben", "Chie", "Aiko", "Dai"}, names)
	assert.Equal(t, 5, got.Members[2].TotalTasks)
	assert.Equal(t, "No Role", got.Members[0].Role)

	assert.Equal(t, metrics.WorkloadStatistics{
		TotalMembers:      4,
		TotalActiveTasks:  12,
		AvgWorkload:       3,
		OverloadedCount:   1,
		HighWorkloadCount: 1,
		NormalCount:       1,
		LowCount:          1,
		RoleDistribution:  map[string]int{"Admin": 2, "No Role": 1, "Field Officer": 1},
	}, got.Statistics)
}

func TestSummarizeWorkload_NoUsers(t *testing.T) {
	got := metrics.SummarizeWorkload(nil, th)
	assert.Empty(t, got.Members)
	assert.Zero(t, got.Statistics.AvgWorkload)
}

func TestAnalyzeIncome(t *testing.T) {
	baseline := decimal.NewFromInt(100000)
	record := func(typ farmer.RecordType, amount int64, daysAgo int) *farmer.IncomeRecord {
		return &farmer.IncomeRecord{RecordType: typ, IncomeAmount: decimal.NewFromInt(amount), RecordDate: now.AddDate(0, 0, -daysAgo)}
	}

	t.Run("MeetsTarget", func(t *testing.T) {
		f := &farmer.Farmer{ID: uuid.New(), BaselineIncome: &baseline}

		got := metrics.AnalyzeIncome(f, []*farmer.IncomeRecord{
			record(farmer.RecordAnnual, 90000, 400),
			record(farmer.RecordAnnual, 115000, 10),
			record(farmer.RecordOther, 500000, 1),
		}, th)

		require.NotNil(t, got)
		assert.Equal(t, 15.0, got.ChangePercent)
		assert.True(t, got.MeetsTarget)
		assert.True(t, got.TargetIncome.Equal(decimal.NewFromInt(110000)))
		assert.True(t, got.Change.Equal(decimal.NewFromInt(15000)))
	})

	t.Run("ExactlyTenPercent", func(t *testing.T) {
		f := &farmer.Farmer{BaselineIncome: &baseline}

		got := metrics.AnalyzeIncome(f, []*farmer.IncomeRecord{record(farmer.RecordSale, 110000, 1)}, th)
		require.NotNil(t, got)
		assert.True(t, got.MeetsTarget)
	})

	t.Run("Decline", func(t *testing.T) {
		f := &farmer.Farmer{BaselineIncome: &baseline}

		got := metrics.AnalyzeIncome(f, []*farmer.IncomeRecord{record(farmer.RecordSale, 95000, 1)}, th)
		require.NotNil(t, got)
		assert.Equal(t, -5.0, got.ChangePercent)
		assert.False(t, got.MeetsTarget)
	})

	t.Run("NoBaseline", func(t *testing.T) {
		assert.Nil(t, metrics.AnalyzeIncome(&farmer.Farmer{}, []*farmer.IncomeRecord{record(farmer.RecordAnnual, 1, 1)}, th))
	})

	t.Run("ZeroBaseline", func(t *testing.T) {
		zero := decimal.Zero
		assert.Nil(t, metrics.AnalyzeIncome(&farmer.Farmer{BaselineIncome: &zero}, []*farmer.IncomeRecord{record(farmer.RecordAnnual, 1, 1)}, th))
	})

	t.Run("NoQualifyingRecord", func(t *testing.T) {
		f := &farmer.Farmer{BaselineIncome: &baseline}
		assert.Nil(t, metrics.AnalyzeIncome(f, []*farmer.IncomeRecord{record(farmer.RecordOther, 200000, 1)}, th))
	})
}

func TestSummarizeIncomeTargets(t *testing.T) {
	baseline := decimal.NewFromInt(1000)
	a := &farmer.Farmer{ID: uuid.New(), BaselineIncome: &baseline}
	b := &farmer.Farmer{ID: uuid.New(), BaselineIncome: &baseline}
	c := &farmer.Farmer{ID: uuid.New(), BaselineIncome: &baseline}
	noSignal := &farmer.Farmer{ID: uuid.New()}

	records := map[uuid.UUID][]*farmer.IncomeRecord{
		a.ID: {{RecordType: farmer.RecordAnnual, IncomeAmount: decimal.NewFromInt(1200), RecordDate: now}},
		b.ID: {{RecordType: farmer.RecordAnnual, IncomeAmount: decimal.NewFromInt(1000), RecordDate: now}},
		c.ID: {{RecordType: farmer.RecordSale, IncomeAmount: decimal.NewFromInt(1100), RecordDate: now}},
	}

	got := metrics.SummarizeIncomeTargets([]*farmer.Farmer{a, b, c, noSignal}, records, th)

	assert.Equal(t, 3, got.TotalAnalyzed)
	assert.Equal(t, 2, got.TargetAchievers)
	assert.Equal(t, 66.7, got.TargetAchievementRate)
}

func TestSessionAttendanceRate(t *testing.T) {
	assert.Equal(t, 75.0, metrics.SessionAttendanceRate(new(20), 18, 15))
	assert.Equal(t, 0.0, metrics.SessionAttendanceRate(nil, 18, 15))
	assert.Equal(t, 0.0, metrics.SessionAttendanceRate(new(20), 0, 0))
	assert.Equal(t, 0.0, metrics.SessionAttendanceRate(new(0), 3, 3))
}

func TestSummarizeAttendance(t *testing.T) {
	rows := []*training.Attendance{
		{Status: training.AttendancePresent},
		{Status: training.AttendancePresent},
		{Status: training.AttendanceAbsent},
		{Status: training.AttendanceExcused},
		{Status: training.AttendanceRegistered},
	}

	got := metrics.SummarizeAttendance(&training.Training{Capacity: new(8)}, rows)

	assert.Equal(t, metrics.AttendanceSummary{
		RegisteredCount: 5,
		PresentCount:    2,
		AbsentCount:     1,
		ExcusedCount:    1,
		AttendanceRate:  25,
	}, got)
}

func TestAverageAttendanceRate(t *testing.T) {
	sessions := []*training.Training{
		{Capacity: new(20), RegisteredCount: 20, PresentCount: 15, Status: training.StatusCompleted},
		{Capacity: new(10), RegisteredCount: 10, PresentCount: 5, Status: training.StatusCompleted},
		{Capacity: new(10), RegisteredCount: 10, PresentCount: 10, Status: training.StatusCancelled},
	}

	assert.Equal(t, 62.5, metrics.AverageAttendanceRate(sessions))
	assert.Zero(t, metrics.AverageAttendanceRate(nil))
}

func TestAverageAttendanceRate_SkipsUnmeasurable(t *testing.T) {
	tests := []struct {
		name     string
		sessions []*training.Training
		want     float64
	}{
		{
			name: "NoCapacity",
			sessions: []*training.Training{
				{Capacity: new(20), RegisteredCount: 18, PresentCount: 15, Status: training.StatusCompleted},
				{RegisteredCount: 12, PresentCount: 12, Status: training.StatusCompleted},
			},
			want: 75,
		},
		{
			name: "ZeroCapacity",
			sessions: []*training.Training{
				{Capacity: new(20), RegisteredCount: 18, PresentCount: 15, Status: training.StatusCompleted},
				{Capacity: new(0), RegisteredCount: 4, PresentCount: 4, Status: training.StatusCompleted},
			},
			want: 75,
		},
		{
			name: "NotYetHeld",
			sessions: []*training.Training{
				{Capacity: new(20), RegisteredCount: 18, PresentCount: 15, Status: training.StatusCompleted},
				{Capacity: new(30), RegisteredCount: 25, Status: training.StatusUpcoming},
			},
			want: 75,
		},
		{
			name: "Mixed",
			sessions: []*training.Training{
				{Capacity: new(20), RegisteredCount: 20, PresentCount: 15, Status: training.StatusCompleted},
				{RegisteredCount: 12, Status: training.StatusCompleted},
				{Capacity: new(30), Status: training.StatusUpcoming},
			},
			want: 75,
		},
		{
			name: "NothingMeasurable",
			sessions: []*training.Training{
				{RegisteredCount: 12, Status: training.StatusCompleted},
				{Capacity: new(30), Status: training.StatusUpcoming},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, metrics.AverageAttendanceRate(tt.sessions))
		})
	}
}

func TestDaysUntil(t *testing.T) {
	assert.Equal(t, 1, metrics.DaysUntil(now, now.Add(time.Hour)))
	assert.Equal(t, 3, metrics.DaysUntil(now, now.Add(72*time.Hour)))
	assert.Equal(t, 4, metrics.DaysUntil(now, now.Add(72*time.Hour+time.Second)))
	assert.Equal(t, 0, metrics.DaysUntil(now, now.Add(-time.Hour)))
}

func TestMonthBoundaries(t *testing.T) {
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), metrics.StartOfMonth(now))
	assert.Equal(t, time.Date(2025, 6, 30, 23, 59, 59, 999999999, time.UTC), metrics.EndOfMonth(now))
}
