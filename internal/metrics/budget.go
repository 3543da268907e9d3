package metrics

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taka-daredemo/JICA/internal/budget"
)

type CategorySummary struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	TotalBudget   decimal.Decimal `json:"totalBudget"`
	Spent         decimal.Decimal `json:"spent"`
	Remaining     decimal.Decimal `json:"remaining"`
	ExecutionRate float64         `json:"executionRate"`
}

type BudgetSummary struct {
	Categories     []CategorySummary `json:"categories"`
	TotalBudget    decimal.Decimal   `json:"totalBudget"`
	TotalSpent     decimal.Decimal   `json:"totalSpent"`
	TotalRemaining decimal.Decimal   `json:"totalRemaining"`
	ExecutionRate  float64           `json:"executionRate"`
}

// ExecutionRate is spent/total*100, or 0 for a zero budget.
func ExecutionRate(spent, total decimal.Decimal) float64 {
	return percentDecimal(spent, total)
}

// SummarizeBudget rolls up the loaded expenses of one budget. Remaining may
// be negative when the budget is overspent.
func SummarizeBudget(b *budget.Budget) CategorySummary {
	spent := b.Spent()

	return CategorySummary{
		ID:            b.ID,
		Name:          b.Name,
		TotalBudget:   b.TotalBudget,
		Spent:         spent,
		Remaining:     b.TotalBudget.Sub(spent),
		ExecutionRate: Round1(ExecutionRate(spent, b.TotalBudget)),
	}
}

func SummarizeBudgets(budgets []*budget.Budget) BudgetSummary {
	s := BudgetSummary{
		Categories:     make([]CategorySummary, 0, len(budgets)),
		TotalBudget:    decimal.Zero,
		TotalSpent:     decimal.Zero,
		TotalRemaining: decimal.Zero,
	}

	for _, b := range budgets {
		c := SummarizeBudget(b)

		s.Categories = append(s.Categories, c)
		s.TotalBudget = s.TotalBudget.Add(c.TotalBudget)
		s.TotalSpent = s.TotalSpent.Add(c.Spent)
		s.TotalRemaining = s.TotalRemaining.Add(c.Remaining)
	}

	s.ExecutionRate = Round1(ExecutionRate(s.TotalSpent, s.TotalBudget))

	return s
}
