package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taka-daredemo/JICA/internal/budget"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func (s *Store) CreateBudget(ctx context.Context, b *budget.Budget) error {
	query := `
		INSERT INTO budgets (name, total_budget, fiscal_year, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query, b.Name, b.TotalBudget, b.FiscalYear).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating budget: %w", err)
	}

	return nil
}

// ListBudgets loads budgets with their plans and the expenses that fall inside
// the filter's expense window, in one joined query.
func (s *Store) ListBudgets(ctx context.Context, filter budget.BudgetFilter) ([]*budget.Budget, error) {
	var args []any

	argIdx := 1

	expenseJoin := "LEFT JOIN expenses e ON e.plan_id = p.id"

	if filter.ExpenseFrom != nil {
		expenseJoin += fmt.Sprintf(" AND e.payment_date >= $%d", argIdx)

		args = append(args, *filter.ExpenseFrom)
		argIdx++
	}

	if filter.ExpenseTo != nil {
		expenseJoin += fmt.Sprintf(" AND e.payment_date <= $%d", argIdx)

		args = append(args, *filter.ExpenseTo)
		argIdx++
	}

	query := `
		SELECT b.id, b.name, b.total_budget, b.fiscal_year, b.created_at, b.updated_at,
			p.id, p.plan_name, p.amount, p.due_date, p.status,
			e.id, e.amount, e.payment_date
		FROM budgets b
		LEFT JOIN payment_plans p ON p.budget_id = b.id
		` + expenseJoin + `
		WHERE 1 = 1`

	if filter.FiscalYear != nil {
		query += fmt.Sprintf(" AND b.fiscal_year = $%d", argIdx)

		args = append(args, *filter.FiscalYear)
		argIdx++
	}

	query += " ORDER BY b.name ASC, b.id, p.due_date ASC, p.id, e.payment_date ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}
	defer rows.Close()

	var budgets []*budget.Budget

	byID := make(map[uuid.UUID]*budget.Budget)
	plans := make(map[uuid.UUID]*budget.PaymentPlan)

	for rows.Next() {
		var b budget.Budget

		var planID, expenseID *uuid.UUID

		var planName, planStatus sql.NullString

		var planAmount, expenseAmount decimal.NullDecimal

		var planDue, paymentDate sql.NullTime

		if err := rows.Scan(
			&b.ID, &b.Name, &b.TotalBudget, &b.FiscalYear, &b.CreatedAt, &b.UpdatedAt,
			&planID, &planName, &planAmount, &planDue, &planStatus,
			&expenseID, &expenseAmount, &paymentDate,
		); err != nil {
			return nil, fmt.Errorf("scanning budget: %w", err)
		}

		cur, ok := byID[b.ID]
		if !ok {
			cur = &b
			byID[b.ID] = cur
			budgets = append(budgets, cur)
		}

		if planID == nil {
			continue
		}

		plan, ok := plans[*planID]
		if !ok {
			plan = &budget.PaymentPlan{
				ID:       *planID,
				PlanName: planName.String,
				BudgetID: &cur.ID,
				Amount:   planAmount.Decimal,
				DueDate:  planDue.Time,
				Status:   budget.PlanStatus(planStatus.String),
			}
			plans[*planID] = plan
			cur.Plans = append(cur.Plans, plan)
		}

		if expenseID != nil {
			plan.Expenses = append(plan.Expenses, &budget.Expense{
				ID:          *expenseID,
				PlanID:      planID,
				Amount:      expenseAmount.Decimal,
				PaymentDate: paymentDate.Time,
			})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating budget rows: %w", err)
	}

	return budgets, nil
}

const selectPlanColumns = `
	p.id, p.plan_name, p.budget_id, p.amount, p.due_date, p.vendor, p.description, p.status, p.created_at, p.updated_at
`

func scanPlan(s scanner) (*budget.PaymentPlan, error) {
	var p budget.PaymentPlan

	var statusStr string

	if err := s.Scan(
		&p.ID, &p.PlanName, &p.BudgetID, &p.Amount, &p.DueDate, &p.Vendor, &p.Description, &statusStr,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	p.Status = budget.PlanStatus(statusStr)

	return &p, nil
}

func (s *Store) CreatePlan(ctx context.Context, p *budget.PaymentPlan) error {
	query := `
		INSERT INTO payment_plans (plan_name, budget_id, amount, due_date, vendor, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.PlanName,
		p.BudgetID,
		p.Amount,
		p.DueDate,
		p.Vendor,
		p.Description,
		p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating payment plan: %w", err)
	}

	return nil
}

func (s *Store) ListPlans(ctx context.Context, filter budget.PlanFilter) ([]*budget.PaymentPlan, error) {
	query := `SELECT ` + selectPlanColumns + ` FROM payment_plans p WHERE 1 = 1`

	var args []any

	argIdx := 1

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, st := range filter.Statuses {
			placeholders[i] = fmt.Sprintf("$%d", argIdx)

			args = append(args, st)
			argIdx++
		}

		query += " AND p.status IN (" + strings.Join(placeholders, ", ") + ")"
	}

	if filter.BudgetID != nil {
		query += fmt.Sprintf(" AND p.budget_id = $%d", argIdx)

		args = append(args, *filter.BudgetID)
		argIdx++
	}

	if filter.DueFrom != nil {
		query += fmt.Sprintf(" AND p.due_date >= $%d", argIdx)

		args = append(args, *filter.DueFrom)
		argIdx++
	}

	if filter.DueTo != nil {
		query += fmt.Sprintf(" AND p.due_date <= $%d", argIdx)

		args = append(args, *filter.DueTo)
		argIdx++
	}

	query += " ORDER BY p.due_date ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing payment plans: %w", err)
	}
	defer rows.Close()

	var plans []*budget.PaymentPlan

	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning payment plan: %w", err)
		}

		plans = append(plans, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payment plan rows: %w", err)
	}

	return plans, nil
}

func (s *Store) ListExpenses(ctx context.Context, filter budget.ExpenseFilter) ([]*budget.Expense, error) {
	query := `
		SELECT e.id, e.plan_id, COALESCE(p.plan_name, ''), COALESCE(b.name, ''), e.amount, e.payment_date,
			e.payment_method, e.vendor, e.description, e.receipt_filename, e.receipt_url, e.notes,
			e.created_by, COALESCE(u.name, ''), e.created_at
		FROM expenses e
		LEFT JOIN payment_plans p ON e.plan_id = p.id
		LEFT JOIN budgets b ON p.budget_id = b.id
		LEFT JOIN users u ON e.created_by = u.id
		WHERE 1 = 1`

	var args []any

	argIdx := 1

	if filter.PlanID != nil {
		query += fmt.Sprintf(" AND e.plan_id = $%d", argIdx)

		args = append(args, *filter.PlanID)
		argIdx++
	}

	if filter.From != nil {
		query += fmt.Sprintf(" AND e.payment_date >= $%d", argIdx)

		args = append(args, *filter.From)
		argIdx++
	}

	if filter.To != nil {
		query += fmt.Sprintf(" AND e.payment_date <= $%d", argIdx)

		args = append(args, *filter.To)
		argIdx++
	}

	query += " ORDER BY e.payment_date DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*budget.Expense

	for rows.Next() {
		var e budget.Expense
		if err := rows.Scan(
			&e.ID, &e.PlanID, &e.PlanName, &e.BudgetName, &e.Amount, &e.PaymentDate,
			&e.PaymentMethod, &e.Vendor, &e.Description, &e.ReceiptFilename, &e.ReceiptURL, &e.Notes,
			&e.CreatedByID, &e.CreatedByName, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		expenses = append(expenses, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expense rows: %w", err)
	}

	return expenses, nil
}

type expenseTx struct {
	tx *sql.Tx
}

func (s *Store) BeginExpense(ctx context.Context) (budget.ExpenseTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning expense tx: %w", err)
	}

	return &expenseTx{tx: dbTx}, nil
}

func (etx *expenseTx) Commit() error   { return etx.tx.Commit() }
func (etx *expenseTx) Rollback() error { return etx.tx.Rollback() }

func (etx *expenseTx) LockPlan(ctx context.Context, id uuid.UUID) (*budget.PaymentPlan, error) {
	query := `SELECT ` + selectPlanColumns + ` FROM payment_plans p WHERE p.id = $1 FOR UPDATE`

	p, err := scanPlan(etx.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, budget.ErrPlanNotFound
		}

		return nil, fmt.Errorf("locking payment plan: %w", err)
	}

	return p, nil
}

func (etx *expenseTx) InsertExpense(ctx context.Context, e *budget.Expense) error {
	query := `
		INSERT INTO expenses (plan_id, amount, payment_date, payment_method, vendor, description,
			receipt_filename, receipt_url, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING id, created_at
	`

	err := etx.tx.QueryRowContext(ctx, query,
		e.PlanID,
		e.Amount,
		e.PaymentDate,
		e.PaymentMethod,
		e.Vendor,
		e.Description,
		e.ReceiptFilename,
		e.ReceiptURL,
		e.Notes,
		e.CreatedByID,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating expense: %w", err)
	}

	return nil
}

func (etx *expenseTx) SumExpenses(ctx context.Context, planID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal

	query := `SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE plan_id = $1`
	if err := etx.tx.QueryRowContext(ctx, query, planID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("summing expenses: %w", err)
	}

	return total, nil
}

func (etx *expenseTx) UpdatePlanStatus(ctx context.Context, planID uuid.UUID, status budget.PlanStatus) error {
	query := `
		UPDATE payment_plans
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	if _, err := etx.tx.ExecContext(ctx, query, status, planID); err != nil {
		return fmt.Errorf("updating payment plan status: %w", err)
	}

	return nil
}
