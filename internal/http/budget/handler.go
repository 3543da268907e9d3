package budget

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taka-daredemo/JICA/internal/apperr"
	"github.com/taka-daredemo/JICA/internal/auth"
	"github.com/taka-daredemo/JICA/internal/budget"
	"github.com/taka-daredemo/JICA/internal/http/request"
	"github.com/taka-daredemo/JICA/internal/http/respond"
	"github.com/taka-daredemo/JICA/internal/report"
	"github.com/taka-daredemo/JICA/internal/storage"
)

const maxReceiptSize = 10 << 20

type ReceiptUploader interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader, size int64) (*storage.Object, error)
}

type Handler struct {
	svc      *budget.Service
	reports  *report.Service
	receipts ReceiptUploader
	loc      *time.Location
	now      func() time.Time
}

// NewHandler builds the budget and payment handlers. receipts may be nil when
// object storage is not configured.
func NewHandler(svc *budget.Service, reports *report.Service, receipts ReceiptUploader, loc *time.Location) *Handler {
	return &Handler{svc: svc, reports: reports, receipts: receipts, loc: loc, now: time.Now}
}

// Routes mounts /budget.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/overview", h.overview)
	r.Get("/categories", h.listCategories)
	r.Post("/categories", h.createCategory)
}

// PaymentRoutes mounts /payments.
func (h *Handler) PaymentRoutes(r chi.Router) {
	r.Get("/", h.listExpenses)
	r.Post("/", h.recordExpense)
	r.Get("/plans", h.listPlans)
	r.Post("/plans", h.createPlan)
	r.Post("/receipts", h.uploadReceipt)
}

func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	fy, err := request.Int(q, "fiscalYear")
	if err != nil {
		respond.Error(w, err)
		return
	}

	from, err := request.Date(q, "startDate", h.loc)
	if err != nil {
		respond.Error(w, err)
		return
	}

	to, err := request.EndDate(q, "endDate", h.loc)
	if err != nil {
		respond.Error(w, err)
		return
	}

	out, err := h.reports.BudgetOverview(r.Context(), report.OverviewFilter{FiscalYear: fy, From: from, To: to})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.OK(w, out)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	fy, err := request.Int(r.URL.Query(), "fiscalYear")
	if err != nil {
		respond.Error(w, err)
		return
	}

	budgets, err := h.svc.ListBudgets(r.Context(), budget.BudgetFilter{FiscalYear: fy})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.OK(w, toBudgetResponseList(budgets))
}

type createCategoryRequest struct {
	Name        string          `json:"name" validate:"required"`
	TotalBudget decimal.Decimal `json:"totalBudget"`
	FiscalYear  int             `json:"fiscalYear" validate:"required,gte=2000"`
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	b, err := h.svc.CreateBudget(r.Context(), budget.CreateBudgetParams{
		Name:        req.Name,
		TotalBudget: req.TotalBudget,
		FiscalYear:  req.FiscalYear,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.Created(w, toBudgetResponse(b))
}

// listPlans accepts status, budgetId and overdue=true.
func (h *Handler) listPlans(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := budget.PlanFilter{}

	if s := q.Get("status"); s != "" {
		status := budget.PlanStatus(s)
		if !status.Valid() {
			respond.Error(w, apperr.Validation("invalid status: "+s))
			return
		}

		filter.Statuses = []budget.PlanStatus{status}
	}

	if s := q.Get("budgetId"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			respond.Error(w, apperr.Validation("invalid budgetId"))
			return
		}

		filter.BudgetID = &id
	}

	if q.Get("overdue") == "true" {
		filter.Statuses = []budget.PlanStatus{budget.PlanScheduled, budget.PlanPending, budget.PlanOverdue}
		filter.DueTo = new(h.now())
	}

	plans, err := h.svc.ListPlans(r.Context(), filter)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.OK(w, toPlanResponseList(plans))
}

type createPlanRequest struct {
	PlanName    string            `json:"planName" validate:"required"`
	BudgetID    *uuid.UUID        `json:"budgetId"`
	Amount      decimal.Decimal   `json:"amount"`
	DueDate     request.Time      `json:"dueDate" validate:"required"`
	Vendor      string            `json:"vendor"`
	Description string            `json:"description"`
	Status      budget.PlanStatus `json:"status" validate:"omitempty,oneof=Scheduled Pending Paid Overdue"`
}

func (h *Handler) createPlan(w http.ResponseWriter, r *http.Request) {
	var req createPlanRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	p, err := h.svc.CreatePlan(r.Context(), budget.CreatePlanParams{
		PlanName:    req.PlanName,
		BudgetID:    req.BudgetID,
		Amount:      req.Amount,
		DueDate:     req.DueDate.Time,
		Vendor:      req.Vendor,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.Created(w, toPlanResponse(p))
}

func (h *Handler) listExpenses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := budget.ExpenseFilter{}

	if s := q.Get("planId"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			respond.Error(w, apperr.Validation("invalid planId"))
			return
		}

		filter.PlanID = &id
	}

	var err error

	if filter.From, err = request.Date(q, "startDate", h.loc); err != nil {
		respond.Error(w, err)
		return
	}

	if filter.To, err = request.EndDate(q, "endDate", h.loc); err != nil {
		respond.Error(w, err)
		return
	}

	expenses, err := h.svc.ListExpenses(r.Context(), filter)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.OK(w, toExpenseResponseList(expenses))
}

type recordExpenseRequest struct {
	PlanID          *uuid.UUID      `json:"planId"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentDate     request.Time    `json:"paymentDate" validate:"required"`
	PaymentMethod   string          `json:"paymentMethod"`
	Vendor          string          `json:"vendor"`
	Description     string          `json:"description"`
	ReceiptFilename string          `json:"receiptFilename"`
	ReceiptURL      string          `json:"receiptUrl"`
	Notes           string          `json:"notes"`
}

func (h *Handler) recordExpense(w http.ResponseWriter, r *http.Request) {
	var req recordExpenseRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	params := budget.RecordExpenseParams{
		PlanID:          req.PlanID,
		Amount:          req.Amount,
		PaymentDate:     req.PaymentDate.Time,
		PaymentMethod:   req.PaymentMethod,
		Vendor:          req.Vendor,
		Description:     req.Description,
		ReceiptFilename: req.ReceiptFilename,
		ReceiptURL:      req.ReceiptURL,
		Notes:           req.Notes,
	}

	if s, ok := auth.FromContext(r.Context()); ok {
		params.CreatedByID = &s.UserID
	}

	e, err := h.svc.RecordExpense(r.Context(), params)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.Created(w, toExpenseResponse(e))
}

func (h *Handler) uploadReceipt(w http.ResponseWriter, r *http.Request) {
	if h.receipts == nil {
		respond.Error(w, storage.ErrNotConfigured)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxReceiptSize+1<<20)
	if err := r.ParseMultipartForm(maxReceiptSize); err != nil {
		respond.BadRequest(w, "failed to parse form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respond.BadRequest(w, "file field is required")
		return
	}
	defer file.Close()

	obj, err := h.receipts.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.Created(w, obj)
}
