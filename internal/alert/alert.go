// Package alert evaluates threshold rules over current project data.
package alert

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/taka-daredemo/JICA/internal/budget"
	"github.com/taka-daredemo/JICA/internal/metrics"
	"github.com/taka-daredemo/JICA/internal/task"
	"github.com/taka-daredemo/JICA/internal/training"
)

type Type string

const (
	TypeTask     Type = "task"
	TypeBudget   Type = "budget"
	TypePayment  Type = "payment"
	TypeTraining Type = "training"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

func (s Severity) rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

type Alert struct {
	Type       Type       `json:"type"`
	Severity   Severity   `json:"severity"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	EntityID   *uuid.UUID `json:"entityId,omitempty"`
	EntityType string     `json:"entityType,omitempty"`
}

type Summary struct {
	Alerts        []Alert `json:"alerts"`
	Count         int     `json:"count"`
	CriticalCount int     `json:"criticalCount"`
	WarningCount  int     `json:"warningCount"`
	InfoCount     int     `json:"infoCount"`
}

// Input is the raw data the rules run over. Budgets should carry their plans
// and expenses; Trainings should carry their registration counts.
type Input struct {
	Now       time.Time
	Tasks     []*task.Task
	Budgets   []*budget.Budget
	Plans     []*budget.PaymentPlan
	Trainings []*training.Training
}

type Engine struct {
	th metrics.Thresholds
}

func NewEngine(th metrics.Thresholds) *Engine {
	return &Engine{th: th}
}

type rule func(in Input) []Alert

// Evaluate runs every rule, caps each rule's output and orders the result by
// severity. Alerts of equal severity keep rule order.
func (e *Engine) Evaluate(in Input) Summary {
	rules := []rule{
		e.overdueTasks,
		e.tasksDueToday,
		e.budgetExecution,
		e.overduePayments,
		e.upcomingPayments,
		e.upcomingTrainings,
	}

	alerts := []Alert{}

	for _, r := range rules {
		out := r(in)
		if e.th.AlertsPerRule > 0 && len(out) > e.th.AlertsPerRule {
			out = out[:e.th.AlertsPerRule]
		}

		alerts = append(alerts, out...)
	}

	slices.SortStableFunc(alerts, func(a, b Alert) int {
		return a.Severity.rank() - b.Severity.rank()
	})

	s := Summary{Alerts: alerts, Count: len(alerts)}

	for _, a := range alerts {
		switch a.Severity {
		case SeverityCritical:
			s.CriticalCount++
		case SeverityWarning:
			s.WarningCount++
		case SeverityInfo:
			s.InfoCount++
		}
	}

	return s
}

func assigneeSuffix(t *task.Task) string {
	if t.Assignee == nil || t.Assignee.Name == "" {
		return ""
	}

	return fmt.Sprintf(" (assignee: %s)", t.Assignee.Name)
}

func (e *Engine) overdueTasks(in Input) []Alert {
	var out []Alert

	for _, t := range in.Tasks {
		if !metrics.IsOverdue(t, in.Now) {
			continue
		}

		out = append(out, Alert{
			Type:       TypeTask,
			Severity:   SeverityCritical,
			Title:      "Overdue task",
			Message:    fmt.Sprintf("%q is past its due date%s", t.Name, assigneeSuffix(t)),
			EntityID:   new(t.ID),
			EntityType: "task",
		})
	}

	return out
}

func (e *Engine) tasksDueToday(in Input) []Alert {
	var out []Alert

	for _, t := range in.Tasks {
		if !metrics.IsDueToday(t, in.Now) {
			continue
		}

		out = append(out, Alert{
			Type:       TypeTask,
			Severity:   SeverityWarning,
			Title:      "Task due today",
			Message:    fmt.Sprintf("%q is due today%s", t.Name, assigneeSuffix(t)),
			EntityID:   new(t.ID),
			EntityType: "task",
		})
	}

	return out
}

func (e *Engine) budgetExecution(in Input) []Alert {
	var out []Alert

	for _, b := range in.Budgets {
		rate := metrics.ExecutionRate(b.Spent(), b.TotalBudget)

		var (
			severity Severity
			title    string
			message  string
		)

		switch {
		case rate >= e.th.BudgetCriticalPercent:
			severity, title = SeverityCritical, "Budget critical"
			message = fmt.Sprintf("%q has reached %.1f%% execution", b.Name, rate)
		case rate >= e.th.BudgetWarningPercent:
			severity, title = SeverityWarning, "Budget warning"
			message = fmt.Sprintf("%q is at %.1f%% execution", b.Name, rate)
		default:
			continue
		}

		out = append(out, Alert{
			Type:       TypeBudget,
			Severity:   severity,
			Title:      title,
			Message:    message,
			EntityID:   new(b.ID),
			EntityType: "budget",
		})
	}

	return out
}

func (e *Engine) overduePayments(in Input) []Alert {
	var out []Alert

	for _, p := range in.Plans {
		if p.Status != budget.PlanOverdue {
			continue
		}

		out = append(out, Alert{
			Type:       TypePayment,
			Severity:   SeverityCritical,
			Title:      "Payment overdue",
			Message:    fmt.Sprintf("%q (%s) is past its due date", p.PlanName, p.Amount.StringFixed(0)),
			EntityID:   new(p.ID),
			EntityType: "paymentPlan",
		})
	}

	return out
}

// windowSeverity classifies an upcoming event. ok is false when the event is
// outside the alert window.
func (e *Engine) windowSeverity(days int) (Severity, bool) {
	if days > e.th.AlertWindowDays {
		return "", false
	}

	if days <= e.th.AlertUrgentDays {
		return SeverityWarning, true
	}

	return SeverityInfo, true
}

func inMonth(t, now time.Time) bool {
	return !t.Before(metrics.StartOfMonth(now)) && !t.After(metrics.EndOfMonth(now))
}

func (e *Engine) upcomingPayments(in Input) []Alert {
	var out []Alert

	for _, p := range in.Plans {
		if p.Status != budget.PlanScheduled && p.Status != budget.PlanPending {
			continue
		}

		if !inMonth(p.DueDate, in.Now) {
			continue
		}

		days := metrics.DaysUntil(in.Now, p.DueDate)

		severity, ok := e.windowSeverity(days)
		if !ok {
			continue
		}

		out = append(out, Alert{
			Type:       TypePayment,
			Severity:   severity,
			Title:      "Payment due",
			Message:    fmt.Sprintf("%q (%s) is due in %d day(s)", p.PlanName, p.Amount.StringFixed(0), days),
			EntityID:   new(p.ID),
			EntityType: "paymentPlan",
		})
	}

	return out
}

func (e *Engine) upcomingTrainings(in Input) []Alert {
	var out []Alert

	for _, t := range in.Trainings {
		if t.Status != training.StatusUpcoming || !inMonth(t.Date, in.Now) {
			continue
		}

		days := metrics.DaysUntil(in.Now, t.Date)

		severity, ok := e.windowSeverity(days)
		if !ok {
			continue
		}

		out = append(out, Alert{
			Type:       TypeTraining,
			Severity:   severity,
			Title:      "Upcoming training session",
			Message:    fmt.Sprintf("%q takes place in %d day(s) (registered: %d)", t.Topic, days, t.RegisteredCount),
			EntityID:   new(t.ID),
			EntityType: "training",
		})
	}

	return out
}
