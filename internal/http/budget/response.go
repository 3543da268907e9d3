package budget

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taka-daredemo/JICA/internal/budget"
)

type budgetResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	TotalBudget decimal.Decimal `json:"totalBudget"`
	FiscalYear  int             `json:"fiscalYear"`
	Spent       decimal.Decimal `json:"spent"`
	PlanCount   int             `json:"planCount"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type planResponse struct {
	ID              uuid.UUID         `json:"id"`
	PlanName        string            `json:"planName"`
	BudgetID        *uuid.UUID        `json:"budgetId"`
	Amount          decimal.Decimal   `json:"amount"`
	DueDate         time.Time         `json:"dueDate"`
	Vendor          string            `json:"vendor,omitempty"`
	Description     string            `json:"description,omitempty"`
	Status          budget.PlanStatus `json:"status"`
	PaidAmount      decimal.Decimal   `json:"paidAmount"`
	RemainingAmount decimal.Decimal   `json:"remainingAmount"`
	Expenses        []expenseResponse `json:"expenses"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

type expenseResponse struct {
	ID              uuid.UUID       `json:"id"`
	PlanID          *uuid.UUID      `json:"planId"`
	PlanName        string          `json:"planName,omitempty"`
	BudgetName      string          `json:"budgetName,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentDate     time.Time       `json:"paymentDate"`
	PaymentMethod   string          `json:"paymentMethod,omitempty"`
	Vendor          string          `json:"vendor,omitempty"`
	Description     string          `json:"description,omitempty"`
	ReceiptFilename string          `json:"receiptFilename,omitempty"`
	ReceiptURL      string          `json:"receiptUrl,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedByID     *uuid.UUID      `json:"createdById,omitempty"`
	CreatedByName   string          `json:"createdByName,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

func toBudgetResponse(b *budget.Budget) budgetResponse {
	return budgetResponse{
		ID:          b.ID,
		Name:        b.Name,
		TotalBudget: b.TotalBudget,
		FiscalYear:  b.FiscalYear,
		Spent:       b.Spent(),
		PlanCount:   len(b.Plans),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toBudgetResponseList(budgets []*budget.Budget) []budgetResponse {
	resp := make([]budgetResponse, len(budgets))
	for i, b := range budgets {
		resp[i] = toBudgetResponse(b)
	}

	return resp
}

func toPlanResponse(p *budget.PaymentPlan) planResponse {
	paid := p.PaidAmount()

	return planResponse{
		ID:              p.ID,
		PlanName:        p.PlanName,
		BudgetID:        p.BudgetID,
		Amount:          p.Amount,
		DueDate:         p.DueDate,
		Vendor:          p.Vendor,
		Description:     p.Description,
		Status:          p.Status,
		PaidAmount:      paid,
		RemainingAmount: p.Amount.Sub(paid),
		Expenses:        toExpenseResponseList(p.Expenses),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toPlanResponseList(plans []*budget.PaymentPlan) []planResponse {
	resp := make([]planResponse, len(plans))
	for i, p := range plans {
		resp[i] = toPlanResponse(p)
	}

	return resp
}

func toExpenseResponse(e *budget.Expense) expenseResponse {
	return expenseResponse{
		ID:              e.ID,
		PlanID:          e.PlanID,
		PlanName:        e.PlanName,
		BudgetName:      e.BudgetName,
		Amount:          e.Amount,
		PaymentDate:     e.PaymentDate,
		PaymentMethod:   e.PaymentMethod,
		Vendor:          e.Vendor,
		Description:     e.Description,
		ReceiptFilename: e.ReceiptFilename,
		ReceiptURL:      e.ReceiptURL,
		Notes:           e.Notes,
		CreatedByID:     e.CreatedByID,
		CreatedByName:   e.CreatedByName,
		CreatedAt:       e.CreatedAt,
	}
}

func toExpenseResponseList(expenses []*budget.Expense) []expenseResponse {
	resp := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		resp[i] = toExpenseResponse(e)
	}

	return resp
}
