package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/taka-daredemo/JICA/internal/http/budget"
	"github.com/taka-daredemo/JICA/internal/http/dashboard"
	"github.com/taka-daredemo/JICA/internal/http/farmer"
	"github.com/taka-daredemo/JICA/internal/http/reports"
	"github.com/taka-daredemo/JICA/internal/http/respond"
	"github.com/taka-daredemo/JICA/internal/http/task"
	"github.com/taka-daredemo/JICA/internal/http/team"
	"github.com/taka-daredemo/JICA/internal/http/training"
)

type Handlers struct {
	Tasks     *task.Handler
	Budget    *budget.Handler
	Farmers   *farmer.Handler
	Training  *training.Handler
	Team      *team.Handler
	Dashboard *dashboard.Handler
	Reports   *reports.Handler
}

// New builds the API router. Everything under /api/v1 passes through authn.
func New(h Handlers, authn func(http.Handler) http.Handler, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respond.OK(w, map[string]string{"status": "ok"})
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(authn)

		r.Route("/tasks", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Tasks.Routes(r)
		})

		r.Route("/budget", h.Budget.Routes)
		r.Route("/payments", h.Budget.PaymentRoutes)
		r.Route("/farmers", h.Farmers.Routes)

		r.Route("/training/sessions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Training.Routes(r)
		})

		r.Route("/team", h.Team.Routes)
		r.Route("/dashboard", h.Dashboard.Routes)
		r.Route("/reports", h.Reports.Routes)
	})

	return router
}
