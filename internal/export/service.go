package export

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/taka-daredemo/JICA/internal/budget"
	"github.com/taka-daredemo/JICA/internal/farmer"
	"github.com/taka-daredemo/JICA/internal/task"
	"github.com/taka-daredemo/JICA/internal/training"
)

type TaskLister interface {
	List(ctx context.Context, filter task.ListFilter) ([]*task.Task, error)
}

type FarmerLister interface {
	List(ctx context.Context, filter farmer.ListFilter) ([]*farmer.Farmer, error)
}

type ExpenseLister interface {
	ListExpenses(ctx context.Context, filter budget.ExpenseFilter) ([]*budget.Expense, error)
}

type TrainingLister interface {
	List(ctx context.Context, filter training.ListFilter) ([]*training.Training, error)
}

type Service struct {
	tasks     TaskLister
	farmers   FarmerLister
	expenses  ExpenseLister
	trainings TrainingLister
}

func NewService(tasks TaskLister, farmers FarmerLister, expenses ExpenseLister, trainings TrainingLister) *Service {
	return &Service{
		tasks:     tasks,
		farmers:   farmers,
		expenses:  expenses,
		trainings: trainings,
	}
}

// Range restricts tasks by due date, payments by payment date and training
// sessions by date. Farmers are always exported in full. Both bounds must be
// set for the range to apply.
type Range struct {
	From *time.Time
	To   *time.Time
}

func (r Range) bounds() (*time.Time, *time.Time) {
	if r.From == nil || r.To == nil {
		return nil, nil
	}

	return r.From, r.To
}

const isoMillis = "2006-01-02T15:04:05.000Z"

func iso(t time.Time) string {
	return t.UTC().Format(isoMillis)
}

func optDecimal(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}

	return d.String()
}

func optInt(i *int) string {
	if i == nil {
		return ""
	}

	return fmt.Sprint(*i)
}

func (s *Service) Export(ctx context.Context, e Entity, r Range) (*Dataset, error) {
	from, to := r.bounds()

	switch e {
	case EntityTasks:
		return s.exportTasks(ctx, from, to)
	case EntityFarmers:
		return s.exportFarmers(ctx)
	case EntityPayments:
		return s.exportPayments(ctx, from, to)
	case EntityTraining:
		return s.exportTraining(ctx, from, to)
	default:
		return nil, fmt.Errorf("unknown entity %q", e)
	}
}

func (s *Service) exportTasks(ctx context.Context, from, to *time.Time) (*Dataset, error) {
	tasks, err := s.tasks.List(ctx, task.ListFilter{DueFrom: from, DueTo: to})
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}

	d := &Dataset{
		Entity: EntityTasks,
		Columns: []string{
			"id", "name", "description", "assignee", "assigneeEmail", "creator",
			"dueDate", "status", "priority", "isRecurring", "createdAt", "updatedAt",
		},
		Rows: make([]Row, 0, len(tasks)),
	}

	for _, t := range tasks {
		var name, email string
		if t.Assignee != nil {
			name, email = t.Assignee.Name, t.Assignee.Email
		}

		d.Rows = append(d.Rows, Row{
			t.ID.String(), t.Name, t.Description, name, email, t.CreatorName,
			iso(t.DueDate), string(t.Status), string(t.Priority), t.IsRecurring,
			iso(t.CreatedAt), iso(t.UpdatedAt),
		})
	}

	return d, nil
}

func (s *Service) exportFarmers(ctx context.Context) (*Dataset, error) {
	farmers, err := s.farmers.List(ctx, farmer.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing farmers: %w", err)
	}

	d := &Dataset{
		Entity: EntityFarmers,
		Columns: []string{
			"id", "farmerCode", "name", "location", "contactPhone", "contactEmail",
			"landSizeHectares", "yearGroup", "status", "baselineIncome",
			"trainingAttendanceCount", "incomeRecordCount", "createdAt", "updatedAt",
		},
		Rows: make([]Row, 0, len(farmers)),
	}

	for _, f := range farmers {
		d.Rows = append(d.Rows, Row{
			f.ID.String(), f.FarmerCode, f.Name, f.Location, f.ContactPhone, f.ContactEmail,
			optDecimal(f.LandSizeHectares), optInt(f.YearGroup), f.Status, optDecimal(f.BaselineIncome),
			f.TrainingCount, f.IncomeRecordCount, iso(f.CreatedAt), iso(f.UpdatedAt),
		})
	}

	return d, nil
}

func (s *Service) exportPayments(ctx context.Context, from, to *time.Time) (*Dataset, error) {
	expenses, err := s.expenses.ListExpenses(ctx, budget.ExpenseFilter{From: from, To: to})
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}

	d := &Dataset{
		Entity: EntityPayments,
		Columns: []string{
			"id", "planName", "budgetCategory", "amount", "paymentDate", "paymentMethod",
			"vendor", "description", "receiptUrl", "createdBy", "createdAt",
		},
		Rows: make([]Row, 0, len(expenses)),
	}

	for _, e := range expenses {
		d.Rows = append(d.Rows, Row{
			e.ID.String(), e.PlanName, e.BudgetName, e.Amount.String(), iso(e.PaymentDate), e.PaymentMethod,
			e.Vendor, e.Description, e.ReceiptURL, e.CreatedByName, iso(e.CreatedAt),
		})
	}

	return d, nil
}

func (s *Service) exportTraining(ctx context.Context, from, to *time.Time) (*Dataset, error) {
	trainings, err := s.trainings.List(ctx, training.ListFilter{From: from, To: to})
	if err != nil {
		return nil, fmt.Errorf("listing trainings: %w", err)
	}

	d := &Dataset{
		Entity: EntityTraining,
		Columns: []string{
			"id", "topic", "description", "date", "location", "facilitator",
			"facilitatorEmail", "capacity", "status", "registeredCount", "createdAt",
		},
		Rows: make([]Row, 0, len(trainings)),
	}

	for _, t := range trainings {
		d.Rows = append(d.Rows, Row{
			t.ID.String(), t.Topic, t.Description, iso(t.Date), t.Location, t.FacilitatorName,
			t.FacilitatorEmail, optInt(t.Capacity), string(t.Status), t.RegisteredCount, iso(t.CreatedAt),
		})
	}

	return d, nil
}
