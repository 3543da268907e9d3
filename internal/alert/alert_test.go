package alert_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taka-daredemo/JICA/internal/alert"
	"github.com/taka-daredemo/JICA/internal/budget"
	"github.com/taka-daredemo/JICA/internal/metrics"
	"github.com/taka-daredemo/JICA/internal/task"
	"github.com/taka-daredemo/JICA/internal/training"
)

var now = time.Date(2025, 6, 18, 9, 0, 0, 0, time.UTC)

func engine() *alert.Engine {
	return alert.NewEngine(metrics.DefaultThresholds())
}

func spentBudget(name string, total, spent int64) *budget.Budget {
	return &budget.Budget{
		ID:          uuid.New(),
		Name:        name,
		TotalBudget: decimal.NewFromInt(total),
		Plans: []*budget.PaymentPlan{
			{Expenses: []*budget.Expense{{Amount: decimal.NewFromInt(spent)}}},
		},
	}
}

func TestEvaluate_OverdueTask(t *testing.T) {
	tk := &task.Task{
		ID:       uuid.New(),
		Name:     "Soil survey",
		Status:   task.StatusInProgress,
		DueDate:  now.AddDate(0, 0, -1),
		Assignee: &task.Assignee{Name: "Aiko"},
	}

	got := engine().Evaluate(alert.Input{Now: now, Tasks: []*task.Task{tk}})

	require.Len(t, got.Alerts, 1)
	assert.Equal(t, alert.SeverityCritical, got.Alerts[0].Severity)
	assert.Equal(t, alert.TypeTask, got.Alerts[0].Type)
	assert.Contains(t, got.Alerts[0].Message, "Aiko")
	assert.Equal(t, tk.ID, *got.Alerts[0].EntityID)
	assert.Equal(t, 1, got.CriticalCount)
}

func TestEvaluate_BudgetThresholds(t *testing.T) {
	tests := []struct {
		name  string
		spent int64
		want  []alert.Severity
	}{
		{name: "Below", spent: 79999, want: nil},
		{name: "Warning", spent: 85000, want: []alert.Severity{alert.SeverityWarning}},
		{name: "WarningBoundary", spent: 80000, want: []alert.Severity{alert.SeverityWarning}},
		{name: "Critical", spent: 90000, want: []alert.Severity{alert.SeverityCritical}},
		{name: "Overspent", spent: 120000, want: []alert.Severity{alert.SeverityCritical}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine().Evaluate(alert.Input{Now: now, Budgets: []*budget.Budget{spentBudget("Seeds", 100000, tt.spent)}})

			var severities []alert.Severity
			for _, a := range got.Alerts {
				severities = append(severities, a.Severity)
			}

			assert.Equal(t, tt.want, severities)
		})
	}
}

func TestEvaluate_BudgetMessageNamesCategory(t *testing.T) {
	got := engine().Evaluate(alert.Input{Now: now, Budgets: []*budget.Budget{spentBudget("Irrigation", 100000, 85000)}})

	require.Len(t, got.Alerts, 1)
	assert.Contains(t, got.Alerts[0].Message, "Irrigation")
	assert.Contains(t, got.Alerts[0].Message, "85.0%")
}

func TestEvaluate_ZeroBudgetNoAlert(t *testing.T) {
	got := engine().Evaluate(alert.Input{Now: now, Budgets: []*budget.Budget{spentBudget("Empty", 0, 500)}})
	assert.Empty(t, got.Alerts)
}

func TestEvaluate_UpcomingPayments(t *testing.T) {
	plan := func(status budget.PlanStatus, due time.Time) *budget.PaymentPlan {
		return &budget.PaymentPlan{ID: uuid.New(), PlanName: "Fertiliser", Amount: decimal.NewFromInt(250000), Status: status, DueDate: due}
	}

	tests := []struct {
		name string
		plan *budget.PaymentPlan
		want []alert.Severity
	}{
		{name: "TwoDays", plan: plan(budget.PlanScheduled, now.AddDate(0, 0, 2)), want: []alert.Severity{alert.SeverityWarning}},
		{name: "SixDays", plan: plan(budget.PlanPending, now.AddDate(0, 0, 6)), want: []alert.Severity{alert.SeverityInfo}},
		{name: "OutsideWindow", plan: plan(budget.PlanScheduled, now.AddDate(0, 0, 9)), want: nil},
		{name: "NextMonth", plan: plan(budget.PlanScheduled, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)), want: nil},
		{name: "Paid", plan: plan(budget.PlanPaid, now.AddDate(0, 0, 1)), want: nil},
		{name: "StoredOverdue", plan: plan(budget.PlanOverdue, now.AddDate(0, 0, -20)), want: []alert.Severity{alert.SeverityCritical}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine().Evaluate(alert.Input{Now: now, Plans: []*budget.PaymentPlan{tt.plan}})

			var severities []alert.Severity
			for _, a := range got.Alerts {
				severities = append(severities, a.Severity)
				assert.Equal(t, alert.TypePayment, a.Type)
			}

			assert.Equal(t, tt.want, severities)
		})
	}
}

func TestEvaluate_UpcomingTrainingMentionsRegistrations(t *testing.T) {
	trainings := []*training.Training{
		{ID: uuid.New(), Topic: "Composting", Date: now.AddDate(0, 0, 3), Status: training.StatusUpcoming, RegisteredCount: 12},
		{ID: uuid.New(), Topic: "Cancelled", Date: now.AddDate(0, 0, 1), Status: training.StatusCancelled},
	}

	got := engine().Evaluate(alert.Input{Now: now, Trainings: trainings})

	require.Len(t, got.Alerts, 1)
	assert.Equal(t, alert.SeverityWarning, got.Alerts[0].Severity)
	assert.Contains(t, got.Alerts[0].Message, "registered: 12")
}

func TestEvaluate_CapsEachRule(t *testing.T) {
	var tasks []*task.Task
	for i := range 8 {
		tasks = append(tasks, &task.Task{ID: uuid.New(), Name: fmt.Sprintf("t%d", i), Status: task.StatusNotStarted, DueDate: now.AddDate(0, 0, -1)})
	}

	got := engine().Evaluate(alert.Input{Now: now, Tasks: tasks})

	assert.Equal(t, 5, got.Count)
	assert.Equal(t, `"t0" is past its due date`, got.Alerts[0].Message)
}

func TestEvaluate_SortsBySeverityStably(t *testing.T) {
	in := alert.Input{
		Now: now,
		Tasks: []*task.Task{
			{ID: uuid.New(), Name: "today-1", Status: task.StatusNotStarted, DueDate: now.Add(time.Hour)},
			{ID: uuid.New(), Name: "late-1", Status: task.StatusNotStarted, DueDate: now.AddDate(0, 0, -1)},
			{ID: uuid.New(), Name: "today-2", Status: task.StatusInProgress, DueDate: now.Add(2 * time.Hour)},
		},
		Trainings: []*training.Training{
			{ID: uuid.New(), Topic: "Seed saving", Date: now.AddDate(0, 0, 5), Status: training.StatusUpcoming},
		},
		Budgets: []*budget.Budget{spentBudget("Tools", 100, 95)},
	}

	got := engine().Evaluate(in)

	var order []string
	for _, a := range got.Alerts {
		order = append(order, string(a.Severity)+":"+a.Title)
	}

	assert.Equal(t, []string{
		"critical:Overdue task",
		"critical:Budget critical",
		"warning:Task due today",
		"warning:Task due today",
		"info:Upcoming training session",
	}, order)
	assert.Contains(t, got.Alerts[2].Message, "today-1")
	assert.Contains(t, got.Alerts[3].Message, "today-2")

	assert.Equal(t, 5, got.Count)
	assert.Equal(t, 2, got.CriticalCount)
	assert.Equal(t, 2, got.WarningCount)
	assert.Equal(t, 1, got.InfoCount)
}

func TestEvaluate_Empty(t *testing.T) {
	got := engine().Evaluate(alert.Input{Now: now})
	assert.NotNil(t, got.Alerts)
	assert.Zero(t, got.Count)
}
