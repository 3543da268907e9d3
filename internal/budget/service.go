package budget

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taka-daredemo/JICA/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=budget
type Repository interface {
	CreateBudget(ctx context.Context, b *Budget) error
	ListBudgets(ctx context.Context, filter BudgetFilter) ([]*Budget, error)

	CreatePlan(ctx context.Context, p *PaymentPlan) error
	ListPlans(ctx context.Context, filter PlanFilter) ([]*PaymentPlan, error)

	ListExpenses(ctx context.Context, filter ExpenseFilter) ([]*Expense, error)

	BeginExpense(ctx context.Context) (ExpenseTx, error)
}

// ExpenseTx records an expense and settles its plan atomically.
type ExpenseTx interface {
	LockPlan(ctx context.Context, id uuid.UUID) (*PaymentPlan, error)
	InsertExpense(ctx context.Context, e *Expense) error
	SumExpenses(ctx context.Context, planID uuid.UUID) (decimal.Decimal, error)
	UpdatePlanStatus(ctx context.Context, planID uuid.UUID, status PlanStatus) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// BudgetFilter selects budgets. ExpenseFrom/ExpenseTo restrict which loaded
// expenses count towards each plan, not which budgets are returned.
type BudgetFilter struct {
	FiscalYear  *int
	ExpenseFrom *time.Time
	ExpenseTo   *time.Time
}

type PlanFilter struct {
	Statuses []PlanStatus
	BudgetID *uuid.UUID
	DueFrom  *time.Time
	DueTo    *time.Time
}

type ExpenseFilter struct {
	PlanID *uuid.UUID
	From   *time.Time
	To     *time.Time
}

type CreateBudgetParams struct {
	Name        string
	TotalBudget decimal.Decimal
	FiscalYear  int
}

type CreatePlanParams struct {
	PlanName    string
	BudgetID    *uuid.UUID
	Amount      decimal.Decimal
	DueDate     time.Time
	Vendor      string
	Description string
	Status      PlanStatus
}

type RecordExpenseParams struct {
	PlanID          *uuid.UUID
	Amount          decimal.Decimal
	PaymentDate     time.Time
	PaymentMethod   string
	Vendor          string
	Description     string
	ReceiptFilename string
	ReceiptURL      string
	Notes           string
	CreatedByID     *uuid.UUID
}

func (s *Service) CreateBudget(ctx context.Context, params CreateBudgetParams) (*Budget, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, apperr.Validation("name is required")
	}

	if params.TotalBudget.IsNegative() {
		return nil, apperr.Validation("totalBudget must not be negative")
	}

	if params.FiscalYear <= 0 {
		return nil, apperr.Validation("fiscalYear is required")
	}

	b := &Budget{
		Name:        strings.TrimSpace(params.Name),
		TotalBudget: params.TotalBudget,
		FiscalYear:  params.FiscalYear,
	}
	if err := s.repo.CreateBudget(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) ListBudgets(ctx context.Context, filter BudgetFilter) ([]*Budget, error) {
	return s.repo.ListBudgets(ctx, filter)
}

func (s *Service) CreatePlan(ctx context.Context, params CreatePlanParams) (*PaymentPlan, error) {
	if strings.TrimSpace(params.PlanName) == "" {
		return nil, apperr.Validation("planName is required")
	}

	if !params.Amount.IsPositive() {
		return nil, apperr.Validation("amount must be positive")
	}

	if params.DueDate.IsZero() {
		return nil, apperr.Validation("dueDate is required")
	}

	if params.Status == "" {
		params.Status = PlanScheduled
	}

	if !params.Status.Valid() {
		return nil, apperr.Validation("invalid status: " + string(params.Status))
	}

	p := &PaymentPlan{
		PlanName:    strings.TrimSpace(params.PlanName),
		BudgetID:    params.BudgetID,
		Amount:      params.Amount,
		DueDate:     params.DueDate,
		Vendor:      params.Vendor,
		Description: params.Description,
		Status:      params.Status,
	}
	if err := s.repo.CreatePlan(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) ListPlans(ctx context.Context, filter PlanFilter) ([]*PaymentPlan, error) {
	return s.repo.ListPlans(ctx, filter)
}

func (s *Service) ListExpenses(ctx context.Context, filter ExpenseFilter) ([]*Expense, error) {
	return s.repo.ListExpenses(ctx, filter)
}

// RecordExpense inserts an expense and, when it is linked to a plan,
// recomputes the plan status inside the same transaction.
func (s *Service) RecordExpense(ctx context.Context, params RecordExpenseParams) (*Expense, error) {
	if !params.Amount.IsPositive() {
		return nil, apperr.Validation("amount is required")
	}

	if params.PaymentDate.IsZero() {
		return nil, apperr.Validation("paymentDate is required")
	}

	etx, err := s.repo.BeginExpense(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin expense: %w", err)
	}
	defer etx.Rollback()

	var plan *PaymentPlan

	if params.PlanID != nil {
		plan, err = etx.LockPlan(ctx, *params.PlanID)
		if err != nil {
			return nil, fmt.Errorf("lock plan: %w", err)
		}
	}

	e := &Expense{
		PlanID:          params.PlanID,
		Amount:          params.Amount,
		PaymentDate:     params.PaymentDate,
		PaymentMethod:   params.PaymentMethod,
		Vendor:          params.Vendor,
		Description:     params.Description,
		ReceiptFilename: params.ReceiptFilename,
		ReceiptURL:      params.ReceiptURL,
		Notes:           params.Notes,
		CreatedByID:     params.CreatedByID,
	}
	if err := etx.InsertExpense(ctx, e); err != nil {
		return nil, fmt.Errorf("insert expense: %w", err)
	}

	if plan != nil {
		e.PlanName = plan.PlanName

		paid, err := etx.SumExpenses(ctx, plan.ID)
		if err != nil {
			return nil, fmt.Errorf("sum expenses: %w", err)
		}

		if next := RecomputeStatus(plan.Status, plan.Amount, paid); next != plan.Status {
			if err := etx.UpdatePlanStatus(ctx, plan.ID, next); err != nil {
				return nil, fmt.Errorf("update plan status: %w", err)
			}
		}
	}

	if err := etx.Commit(); err != nil {
		return nil, fmt.Errorf("commit expense: %w", err)
	}

	return e, nil
}
