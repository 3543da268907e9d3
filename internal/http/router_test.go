package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/taka-daredemo/JICA/internal/auth"
	"github.com/taka-daredemo/JICA/internal/budget"
	"github.com/taka-daredemo/JICA/internal/export"
	"github.com/taka-daredemo/JICA/internal/farmer"
	apphttp "github.com/taka-daredemo/JICA/internal/http"
	budgetHandler "github.com/taka-daredemo/JICA/internal/http/budget"
	dashboardHandler "github.com/taka-daredemo/JICA/internal/http/dashboard"
	farmerHandler "github.com/taka-daredemo/JICA/internal/http/farmer"
	reportsHandler "github.com/taka-daredemo/JICA/internal/http/reports"
	taskHandler "github.com/taka-daredemo/JICA/internal/http/task"
	teamHandler "github.com/taka-daredemo/JICA/internal/http/team"
	trainingHandler "github.com/taka-daredemo/JICA/internal/http/training"
	"github.com/taka-daredemo/JICA/internal/metrics"
	"github.com/taka-daredemo/JICA/internal/report"
	"github.com/taka-daredemo/JICA/internal/task"
	"github.com/taka-daredemo/JICA/internal/team"
	"github.com/taka-daredemo/JICA/internal/training"
)

const secret = "router-test-secret"

func newRouter(t *testing.T) (http.Handler, *team.MockRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)

	teamRepo := team.NewMockRepository(ctrl)

	var (
		tasks     = task.NewService(task.NewMockRepository(ctrl))
		budgets   = budget.NewService(budget.NewMockRepository(ctrl))
		farmers   = farmer.NewService(farmer.NewMockRepository(ctrl))
		trainings = training.NewService(training.NewMockRepository(ctrl))
		members   = team.NewService(teamRepo)
	)

	reports := report.NewService(report.Readers{
		Tasks:     tasks,
		Budgets:   budgets,
		Farmers:   farmers,
		Trainings: trainings,
		Team:      members,
	}, metrics.DefaultThresholds())

	verifier := auth.NewVerifier(auth.Config{Secret: secret, CookieName: "sb-access-token"})

	return apphttp.New(apphttp.Handlers{
		Tasks:     taskHandler.NewHandler(tasks, time.UTC),
		Budget:    budgetHandler.NewHandler(budgets, reports, nil, time.UTC),
		Farmers:   farmerHandler.NewHandler(farmers, reports, time.UTC),
		Training:  trainingHandler.NewHandler(trainings, reports, time.UTC),
		Team:      teamHandler.NewHandler(members, reports),
		Dashboard: dashboardHandler.NewHandler(reports),
		Reports:   reportsHandler.NewHandler(reports, export.NewService(tasks, farmers, budgets, trainings), time.UTC),
	}, verifier.Middleware, []string{"http://localhost:3000"}), teamRepo
}

func token(t *testing.T) string {
	t.Helper()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Email: "staff@example.org",
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	return signed
}

func TestRouter_Health(t *testing.T) {
	router, _ := newRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"status":"ok"}}`, rec.Body.String())
}

func TestRouter_RequiresAuth(t *testing.T) {
	router, teamRepo := newRouter(t)
	teamRepo.EXPECT().ListUsers(gomock.Any(), gomock.Any()).Return([]*team.User{}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/team/members", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/team/members", nil)
	req.Header.Set("Authorization", "Bearer "+token(t))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, rec.Body.String())
}

func TestRouter_CORSPreflight(t *testing.T) {
	router, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/tasks", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRouter_TasksRejectNonJSON(t *testing.T) {
	router, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token(t))
	req.Header.Set("Content-Type", "text/plain")
	req.ContentLength = 4

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}
