package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/taka-daredemo/JICA/internal/apperr"
	"github.com/taka-daredemo/JICA/internal/budget"
	"github.com/taka-daredemo/JICA/internal/farmer"
	"github.com/taka-daredemo/JICA/internal/metrics"
	"github.com/taka-daredemo/JICA/internal/task"
	"github.com/taka-daredemo/JICA/internal/training"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

var (
	ErrCSVUnsupported = apperr.Unimplemented("CSV format not yet implemented")
	ErrPDFUnsupported = apperr.Unimplemented("PDF format not yet implemented")
)

// checkFormat accepts only formats that can be produced.
func checkFormat(f Format) error {
	switch f {
	case "", FormatJSON:
		return nil
	case FormatCSV:
		return ErrCSVUnsupported
	case FormatPDF:
		return ErrPDFUnsupported
	default:
		return apperr.Validation("Invalid format: " + string(f))
	}
}

type Request struct {
	Period      PeriodRequest
	Format      Format
	GeneratedBy string
}

type PeriodTasks struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	InProgress     int     `json:"inProgress"`
	NotStarted     int     `json:"notStarted"`
	Overdue        int     `json:"overdue"`
	CompletionRate float64 `json:"completionRate"`
}

type PeriodFarmers struct {
	farmer.GroupCounts
	metrics.IncomeTargetSummary
}

type PeriodTraining struct {
	TotalSessions     int     `json:"totalSessions"`
	CompletedSessions int     `json:"completedSessions"`
	TotalParticipants int     `json:"totalParticipants"`
	AvgAttendanceRate float64 `json:"avgAttendanceRate"`
}

type Report struct {
	Period      Period                `json:"period"`
	Tasks       PeriodTasks           `json:"tasks"`
	Budget      metrics.BudgetSummary `json:"budget"`
	Farmers     PeriodFarmers         `json:"farmers"`
	Training    PeriodTraining        `json:"training"`
	GeneratedAt time.Time             `json:"generatedAt"`
	GeneratedBy string                `json:"generatedBy"`
}

// Generate builds a periodic report. The format is checked before anything
// is read. Budgets are those of the fiscal year the period ends in, with only
// expenses paid inside the period counted as spent.
func (s *Service) Generate(ctx context.Context, req Request) (*Report, error) {
	if err := checkFormat(req.Format); err != nil {
		return nil, err
	}

	now := s.clock()

	period, err := ResolvePeriod(req.Period, now, s.loc)
	if err != nil {
		return nil, err
	}

	from, to := period.StartDate, period.EndDate
	fiscalYear := to.Year()

	var (
		tasks     []*task.Task
		budgets   []*budget.Budget
		counts    farmer.GroupCounts
		farmers   []*farmer.Farmer
		incomes   []*farmer.IncomeRecord
		trainings []*training.Training
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		tasks, err = s.r.Tasks.List(ctx, task.ListFilter{DueFrom: &from, DueTo: &to})
		return wrap("listing tasks", err)
	})
	g.Go(func() (err error) {
		budgets, err = s.r.Budgets.ListBudgets(ctx, budget.BudgetFilter{FiscalYear: &fiscalYear, ExpenseFrom: &from, ExpenseTo: &to})
		return wrap("listing budgets", err)
	})
	g.Go(func() (err error) {
		counts, err = s.r.Farmers.CountByYearGroup(ctx)
		return wrap("counting farmers", err)
	})
	g.Go(func() (err error) {
		farmers, err = s.r.Farmers.List(ctx, farmer.ListFilter{HasBaseline: true})
		return wrap("listing farmers", err)
	})
	g.Go(func() (err error) {
		incomes, err = s.r.Farmers.ListIncome(ctx, farmer.IncomeFilter{
			Types: []farmer.RecordType{farmer.RecordAnnual, farmer.RecordSale},
			From:  &from,
			To:    &to,
		})
		return wrap("listing income records", err)
	})
	g.Go(func() (err error) {
		trainings, err = s.r.Trainings.List(ctx, training.ListFilter{From: &from, To: &to})
		return wrap("listing trainings", err)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	ts := metrics.SummarizeTasks(tasks, now, s.th)

	byFarmer := make(map[uuid.UUID][]*farmer.IncomeRecord)
	for _, r := range incomes {
		byFarmer[r.FarmerID] = append(byFarmer[r.FarmerID], r)
	}

	return &Report{
		Period: period,
		Tasks: PeriodTasks{
			Total:          ts.Total,
			Completed:      ts.Completed,
			InProgress:     ts.InProgress,
			NotStarted:     ts.NotStarted,
			Overdue:        ts.Overdue,
			CompletionRate: ts.CompletionRate,
		},
		Budget: metrics.SummarizeBudgets(budgets),
		Farmers: PeriodFarmers{
			GroupCounts:         counts,
			IncomeTargetSummary: metrics.SummarizeIncomeTargets(farmers, byFarmer, s.th),
		},
		Training:    summarizeTrainings(trainings),
		GeneratedAt: now,
		GeneratedBy: req.GeneratedBy,
	}, nil
}

func summarizeTrainings(trainings []*training.Training) PeriodTraining {
	out := PeriodTraining{TotalSessions: len(trainings)}

	for _, t := range trainings {
		if t.Status == training.StatusCompleted {
			out.CompletedSessions++
		}

		out.TotalParticipants += t.RegisteredCount
	}

	out.AvgAttendanceRate = metrics.AverageAttendanceRate(trainings)

	return out
}
