package budget

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taka-daredemo/JICA/internal/apperr"
)

var (
	ErrBudgetNotFound = apperr.NotFound("budget not found")
	ErrPlanNotFound   = apperr.NotFound("payment plan not found")
)

// Budget is a spending envelope for one fiscal year.
type Budget struct {
	ID          uuid.UUID
	Name        string
	TotalBudget decimal.Decimal
	FiscalYear  int
	Plans       []*PaymentPlan // Loaded by ListBudgets
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Spent sums every loaded expense across the budget's plans.
func (b *Budget) Spent() decimal.Decimal {
	spent := decimal.Zero
	for _, p := range b.Plans {
		spent = spent.Add(p.PaidAmount())
	}

	return spent
}

type PlanStatus string

const (
	PlanScheduled PlanStatus = "Scheduled"
	PlanPending   PlanStatus = "Pending"
	PlanPaid      PlanStatus = "Paid"
	PlanOverdue   PlanStatus = "Overdue"
)

func (s PlanStatus) Valid() bool {
	switch s {
	case PlanScheduled, PlanPending, PlanPaid, PlanOverdue:
		return true
	}

	return false
}

// PaymentPlan is a scheduled disbursement against a budget.
type PaymentPlan struct {
	ID          uuid.UUID
	PlanName    string
	BudgetID    *uuid.UUID
	Amount      decimal.Decimal
	DueDate     time.Time
	Vendor      string
	Description string
	Status      PlanStatus
	Expenses    []*Expense
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *PaymentPlan) PaidAmount() decimal.Decimal {
	paid := decimal.Zero
	for _, e := range p.Expenses {
		paid = paid.Add(e.Amount)
	}

	return paid
}

// Expense is an actual payment. Expenses are never edited after creation.
type Expense struct {
	ID              uuid.UUID
	PlanID          *uuid.UUID
	PlanName        string // Loaded via JOIN
	BudgetName      string // Loaded via JOIN
	Amount          decimal.Decimal
	PaymentDate     time.Time
	PaymentMethod   string
	Vendor          string
	Description     string
	ReceiptFilename string
	ReceiptURL      string
	Notes           string
	CreatedByID     *uuid.UUID
	CreatedByName   string // Loaded via JOIN
	CreatedAt       time.Time
}

// RecomputeStatus derives a plan's status from the total paid against it.
// Plans with nothing paid keep their current status.
func RecomputeStatus(current PlanStatus, amount, paid decimal.Decimal) PlanStatus {
	switch {
	case paid.GreaterThanOrEqual(amount):
		return PlanPaid
	case paid.IsPositive():
		return PlanPending
	default:
		return current
	}
}
