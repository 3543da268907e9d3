package reports_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/taka-daredemo/JICA/internal/auth"
	"github.com/taka-daredemo/JICA/internal/budget"
	"github.com/taka-daredemo/JICA/internal/export"
	"github.com/taka-daredemo/JICA/internal/farmer"
	reportsHandler "github.com/taka-daredemo/JICA/internal/http/reports"
	"github.com/taka-daredemo/JICA/internal/metrics"
	"github.com/taka-daredemo/JICA/internal/report"
	"github.com/taka-daredemo/JICA/internal/task"
	"github.com/taka-daredemo/JICA/internal/training"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

var now = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

type repos struct {
	tasks     *task.MockRepository
	budgets   *budget.MockRepository
	farmers   *farmer.MockRepository
	trainings *training.MockRepository
}

func newRepos(t *testing.T) repos {
	ctrl := gomock.NewController(t)

	return repos{
		tasks:     task.NewMockRepository(ctrl),
		budgets:   budget.NewMockRepository(ctrl),
		farmers:   farmer.NewMockRepository(ctrl),
		trainings: training.NewMockRepository(ctrl),
	}
}

func serve(t *testing.T, m repos, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	return serveIn(t, m, req, time.UTC)
}

func serveIn(t *testing.T, m repos, req *http.Request, loc *time.Location) *httptest.ResponseRecorder {
	t.Helper()

	tasks, budgets := task.NewService(m.tasks), budget.NewService(m.budgets)
	farmers, trainings := farmer.NewService(m.farmers), training.NewService(m.trainings)

	reports := report.NewService(report.Readers{
		Tasks:     tasks,
		Budgets:   budgets,
		Farmers:   farmers,
		Trainings: trainings,
	}, metrics.DefaultThresholds(), report.WithClock(func() time.Time { return now }), report.WithLocation(loc))

	router := chi.NewRouter()
	router.Route("/reports", reportsHandler.NewHandler(reports, export.NewService(tasks, farmers, budgets, trainings), loc).Routes)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

	return env
}

func TestHandler_Generate(t *testing.T) {
	m := newRepos(t)

	m.tasks.EXPECT().
		ListTasks(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f task.ListFilter) ([]*task.Task, error) {
			assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), *f.DueFrom)
			return []*task.Task{
				{ID: uuid.New(), Status: task.StatusCompleted, DueDate: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
				{ID: uuid.New(), Status: task.StatusInProgress, DueDate: time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)},
			}, nil
		})
	m.budgets.EXPECT().ListBudgets(gomock.Any(), gomock.Any()).Return(nil, nil)
	m.farmers.EXPECT().CountByYearGroup(gomock.Any()).Return(farmer.GroupCounts{Total: 3, Year1: 3}, nil)

	farmerID := uuid.New()
	m.farmers.EXPECT().ListFarmers(gomock.Any(), farmer.ListFilter{HasBaseline: true}).Return([]*farmer.Farmer{
		{ID: farmerID, FarmerCode: "F-1", BaselineIncome: new(decimal.NewFromInt(1000))},
	}, nil)
	m.farmers.EXPECT().ListIncomeRecords(gomock.Any(), gomock.Any()).Return([]*farmer.IncomeRecord{
		{FarmerID: farmerID, RecordType: farmer.RecordAnnual, IncomeAmount: decimal.NewFromInt(1200), RecordDate: time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)},
	}, nil)
	m.trainings.EXPECT().ListTrainings(gomock.Any(), gomock.Any()).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/reports/generate?type=quarterly&year=2025&quarter=2", nil)
	req = req.WithContext(auth.WithSession(req.Context(), &auth.Session{UserID: uuid.New(), Email: "pm@example.org"}))

	rec := serve(t, m, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got report.Report
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &got))
	assert.Equal(t, report.Quarterly, got.Period.Type)
	assert.Equal(t, time.Date(2025, 6, 30, 23, 59, 59, 999999999, time.UTC), got.Period.EndDate)
	assert.Equal(t, 2, got.Tasks.Total)
	assert.Equal(t, 50.0, got.Tasks.CompletionRate)
	assert.Equal(t, 1, got.Farmers.TargetAchievers)
	assert.Equal(t, 100.0, got.Farmers.TargetAchievementRate)
	assert.Equal(t, "pm@example.org", got.GeneratedBy)
}

func TestHandler_Generate_Rejected(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantError  string
	}{
		{"PDF", "format=pdf", http.StatusNotImplemented, "PDF format not yet implemented"},
		{"CSV", "format=csv", http.StatusNotImplemented, "CSV format not yet implemented"},
		{"UnknownFormat", "format=xml", http.StatusBadRequest, "Invalid format: xml"},
		{"UnknownType", "type=weekly", http.StatusBadRequest, "Invalid report type: weekly"},
		{"BadQuarter", "type=quarterly&year=2025&quarter=5", http.StatusBadRequest, "Invalid quarter: 5"},
		{"BadYear", "year=twenty", http.StatusBadRequest, "invalid year: twenty"},
		{"BadDate", "startDate=yesterday&endDate=2025-01-01", http.StatusBadRequest, "invalid startDate: yesterday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, newRepos(t), httptest.NewRequest(http.MethodGet, "/reports/generate?"+tt.query, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantError, decode(t, rec).Error)
		})
	}
}

func TestHandler_Export_CSV(t *testing.T) {
	m := newRepos(t)

	id := uuid.New()
	m.farmers.EXPECT().ListFarmers(gomock.Any(), farmer.ListFilter{}).Return([]*farmer.Farmer{
		{
			ID:         id,
			FarmerCode: "F-001",
			Name:       "Tanaka, Hiro",
			YearGroup:  new(2),
			Status:     "Active",
			CreatedAt:  now,
			UpdatedAt:  now,
		},
	}, nil)

	rec := serve(t, m, httptest.NewRequest(http.MethodGet, "/reports/export?entity=farmers", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Regexp(t, `^attachment; filename="farmers_export_\d{4}-\d{2}-\d{2}\.csv"$`, rec.Header().Get("Content-Disposition"))

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "id,farmerCode,name,"))
	assert.Contains(t, lines[1], `"Tanaka, Hiro"`)
}

func TestHandler_Export_Empty(t *testing.T) {
	m := newRepos(t)
	m.tasks.EXPECT().ListTasks(gomock.Any(), gomock.Any()).Return(nil, nil)

	rec := serve(t, m, httptest.NewRequest(http.MethodGet, "/reports/export", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	env := decode(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "No data to export", env.Message)
	assert.JSONEq(t, `""`, string(env.Data))
}

func TestHandler_Export_JSON(t *testing.T) {
	m := newRepos(t)

	from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	m.budgets.EXPECT().
		ListExpenses(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f budget.ExpenseFilter) ([]*budget.Expense, error) {
			require.NotNil(t, f.From)
			require.NotNil(t, f.To)
			assert.Equal(t, from, *f.From)
			assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), *f.To)

			return []*budget.Expense{{ID: uuid.New(), Amount: decimal.RequireFromString("1250.50"), PaymentDate: from}}, nil
		})

	rec := serve(t, m, httptest.NewRequest(http.MethodGet, "/reports/export?entity=payments&format=json&startDate=2025-05-01&endDate=2025-05-31", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Entity string           `json:"entity"`
		Count  int              `json:"count"`
		Data   []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &got))
	assert.Equal(t, "payments", got.Entity)
	assert.Equal(t, 1, got.Count)
	assert.Equal(t, "1250.5", got.Data[0]["amount"])
}

func TestHandler_Export_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantError string
	}{
		{"Entity", "entity=crops", "Invalid entity type: crops"},
		{"Format", "format=xlsx", "Invalid format: xlsx"},
		{"Date", "endDate=31/05/2025", "invalid endDate: 31/05/2025"},
		{"StartOnly", "startDate=2025-05-01", "startDate and endDate must be given together"},
		{"EndOnly", "endDate=2025-05-31", "startDate and endDate must be given together"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, newRepos(t), httptest.NewRequest(http.MethodGet, "/reports/export?"+tt.query, nil))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantError, decode(t, rec).Error)
		})
	}
}

func TestHandler_Export_IncludesEndDay(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)

	// Date-only payment dates are stored as midnight UTC.
	paid := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	m := newRepos(t)
	m.budgets.EXPECT().
		ListExpenses(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f budget.ExpenseFilter) ([]*budget.Expense, error) {
			require.NotNil(t, f.From)
			require.NotNil(t, f.To)
			assert.False(t, paid.Before(*f.From), "from %s", f.From)
			assert.False(t, paid.After(*f.To), "to %s", f.To)

			return []*budget.Expense{{ID: uuid.New(), Amount: decimal.NewFromInt(5000), PaymentDate: paid}}, nil
		})

	rec := serveIn(t, m, httptest.NewRequest(http.MethodGet, "/reports/export?entity=payments&format=json&startDate=2026-03-01&endDate=2026-03-31", nil), tokyo)
	require.Equal(t, http.StatusOK, rec.Code)
}
