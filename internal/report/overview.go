package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/taka-daredemo/JICA/internal/budget"
	"github.com/taka-daredemo/JICA/internal/metrics"
)

type OverviewFilter struct {
	FiscalYear *int
	From       *time.Time
	To         *time.Time
}

type BudgetOverview struct {
	TotalBudget      decimal.Decimal           `json:"totalBudget"`
	TotalSpent       decimal.Decimal           `json:"totalSpent"`
	Remaining        decimal.Decimal           `json:"remaining"`
	ExecutionRate    float64                   `json:"executionRate"`
	Categories       []metrics.CategorySummary `json:"categories"`
	PendingPayments  int                       `json:"pendingPayments"`
	UpcomingPayments int                       `json:"upcomingPayments"`
	OverduePayments  int                       `json:"overduePayments"`
}

// BudgetOverview rolls up budgets and classifies their plans: Pending plans
// are pending; Scheduled plans are overdue once past due and upcoming when due
// within the upcoming-payment window; stored Overdue plans count as overdue.
func (s *Service) BudgetOverview(ctx context.Context, filter OverviewFilter) (*BudgetOverview, error) {
	now := s.clock()

	budgets, err := s.r.Budgets.ListBudgets(ctx, budget.BudgetFilter{
		FiscalYear:  filter.FiscalYear,
		ExpenseFrom: filter.From,
		ExpenseTo:   filter.To,
	})
	if err != nil {
		return nil, wrap("listing budgets", err)
	}

	sum := metrics.SummarizeBudgets(budgets)

	out := &BudgetOverview{
		TotalBudget:   sum.TotalBudget,
		TotalSpent:    sum.TotalSpent,
		Remaining:     sum.TotalRemaining,
		ExecutionRate: sum.ExecutionRate,
		Categories:    sum.Categories,
	}

	horizon := now.AddDate(0, 0, s.th.UpcomingPaymentDays)

	for _, b := range budgets {
		for _, p := range b.Plans {
			switch p.Status {
			case budget.PlanPending:
				out.PendingPayments++
			case budget.PlanOverdue:
				out.OverduePayments++
			case budget.PlanScheduled:
				if p.DueDate.Before(now) {
					out.OverduePayments++
				} else if !p.DueDate.After(horizon) {
					out.UpcomingPayments++
				}
			}
		}
	}

	return out, nil
}
