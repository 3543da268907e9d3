package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/taka-daredemo/JICA/internal/auth"
	"github.com/taka-daredemo/JICA/internal/budget"
	budgetStore "github.com/taka-daredemo/JICA/internal/budget/store"
	"github.com/taka-daredemo/JICA/internal/config"
	"github.com/taka-daredemo/JICA/internal/database"
	"github.com/taka-daredemo/JICA/internal/export"
	"github.com/taka-daredemo/JICA/internal/farmer"
	farmerStore "github.com/taka-daredemo/JICA/internal/farmer/store"
	apphttp "github.com/taka-daredemo/JICA/internal/http"
	budgetHandler "github.com/taka-daredemo/JICA/internal/http/budget"
	dashboardHandler "github.com/taka-daredemo/JICA/internal/http/dashboard"
	farmerHandler "github.com/taka-daredemo/JICA/internal/http/farmer"
	reportsHandler "github.com/taka-daredemo/JICA/internal/http/reports"
	taskHandler "github.com/taka-daredemo/JICA/internal/http/task"
	teamHandler "github.com/taka-daredemo/JICA/internal/http/team"
	trainingHandler "github.com/taka-daredemo/JICA/internal/http/training"
	"github.com/taka-daredemo/JICA/internal/report"
	"github.com/taka-daredemo/JICA/internal/storage"
	"github.com/taka-daredemo/JICA/internal/task"
	taskStore "github.com/taka-daredemo/JICA/internal/task/store"
	"github.com/taka-daredemo/JICA/internal/team"
	teamStore "github.com/taka-daredemo/JICA/internal/team/store"
	"github.com/taka-daredemo/JICA/internal/training"
	trainingStore "github.com/taka-daredemo/JICA/internal/training/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(cfg))

	if err := run(cfg); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}

	if cfg.Log.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	db, err := database.New(ctx, cfg.ConnectionString(), cfg.Pool())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
	}

	var (
		taskService     = task.NewService(taskStore.New(db))
		budgetService   = budget.NewService(budgetStore.New(db))
		farmerService   = farmer.NewService(farmerStore.New(db))
		trainingService = training.NewService(trainingStore.New(db))
		teamService     = team.NewService(teamStore.New(db))
		exportService   = export.NewService(taskService, farmerService, budgetService, trainingService)
		reportService   = report.NewService(report.Readers{
			Tasks:     taskService,
			Budgets:   budgetService,
			Farmers:   farmerService,
			Trainings: trainingService,
			Team:      teamService,
		}, cfg.MetricThresholds(), report.WithLocation(loc))
	)

	var receipts budgetHandler.ReceiptUploader

	if sc := cfg.StorageConfig(); sc.Configured() {
		r, err := storage.New(ctx, sc)
		if err != nil {
			return fmt.Errorf("configuring receipt storage: %w", err)
		}

		receipts = r
	} else {
		slog.Warn("receipt storage not configured, uploads are disabled")
	}

	router := apphttp.New(apphttp.Handlers{
		Tasks:     taskHandler.NewHandler(taskService, loc),
		Budget:    budgetHandler.NewHandler(budgetService, reportService, receipts, loc),
		Farmers:   farmerHandler.NewHandler(farmerService, reportService, loc),
		Training:  trainingHandler.NewHandler(trainingService, reportService, loc),
		Team:      teamHandler.NewHandler(teamService, reportService),
		Dashboard: dashboardHandler.NewHandler(reportService),
		Reports:   reportsHandler.NewHandler(reportService, exportService, loc),
	}, auth.NewVerifier(cfg.AuthConfig()).Middleware, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "addr", srv.Addr, "timezone", loc.String())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
