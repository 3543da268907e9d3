package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/taka-daredemo/JICA/cmd/tui/internal/view"
	"github.com/taka-daredemo/JICA/internal/budget"
	budgetStore "github.com/taka-daredemo/JICA/internal/budget/store"
	"github.com/taka-daredemo/JICA/internal/config"
	"github.com/taka-daredemo/JICA/internal/database"
	"github.com/taka-daredemo/JICA/internal/export"
	"github.com/taka-daredemo/JICA/internal/farmer"
	farmerStore "github.com/taka-daredemo/JICA/internal/farmer/store"
	"github.com/taka-daredemo/JICA/internal/report"
	"github.com/taka-daredemo/JICA/internal/task"
	taskStore "github.com/taka-daredemo/JICA/internal/task/store"
	"github.com/taka-daredemo/JICA/internal/team"
	teamStore "github.com/taka-daredemo/JICA/internal/team/store"
	"github.com/taka-daredemo/JICA/internal/training"
	trainingStore "github.com/taka-daredemo/JICA/internal/training/store"
)

type model struct {
	taskService   *task.Service
	reportService *report.Service
	exportService *export.Service
	loc           *time.Location

	currentView View
	size        tea.WindowSizeMsg

	dashboardView view.DashboardModel
	alertsView    view.AlertsModel
	tasksView     view.TaskListModel
	workloadView  view.WorkloadModel
	reportView    view.ReportModel
	exportView    view.ExportModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewAlerts    View = 2
	ViewTasks     View = 3
	ViewWorkload  View = 4
	ViewReport    View = 5
	ViewExport    View = 6
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("failed to load time zone", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.New(ctx, cfg.ConnectionString(), cfg.Pool())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	var (
		taskSvc     = task.NewService(taskStore.New(db))
		budgetSvc   = budget.NewService(budgetStore.New(db))
		farmerSvc   = farmer.NewService(farmerStore.New(db))
		trainingSvc = training.NewService(trainingStore.New(db))
		teamSvc     = team.NewService(teamStore.New(db))
		expSvc      = export.NewService(taskSvc, farmerSvc, budgetSvc, trainingSvc)
		reportSvc   = report.NewService(report.Readers{
			Tasks:     taskSvc,
			Budgets:   budgetSvc,
			Farmers:   farmerSvc,
			Trainings: trainingSvc,
			Team:      teamSvc,
		}, cfg.MetricThresholds(), report.WithLocation(loc))
	)

	return model{
		taskService:   taskSvc,
		reportService: reportSvc,
		exportService: expSvc,
		loc:           loc,
		currentView:   ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

// open switches to v with a fresh model, replaying the last known window size.
func (m model) open(v View) (tea.Model, tea.Cmd) {
	m.currentView = v

	var cmd tea.Cmd

	switch v {
	case ViewDashboard:
		m.dashboardView = view.NewDashboardModel(m.reportService, m.loc)
		cmd = m.dashboardView.Init()
	case ViewAlerts:
		m.alertsView = view.NewAlertsModel(m.reportService)
		cmd = m.alertsView.Init()
	case ViewTasks:
		m.tasksView = view.NewTaskListModel(m.taskService, m.loc)
		cmd = m.tasksView.Init()
	case ViewWorkload:
		m.workloadView = view.NewWorkloadModel(m.reportService)
		cmd = m.workloadView.Init()
	case ViewReport:
		m.reportView = view.NewReportModel(m.reportService, m.loc)
		cmd = m.reportView.Init()
	case ViewExport:
		m.exportView = view.NewExportModel(m.exportService, m.loc)
		cmd = m.exportView.Init()
	}

	if m.size.Width == 0 {
		return m, cmd
	}

	next, sizeCmd := m.forward(m.size)

	return next, tea.Batch(cmd, sizeCmd)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.size = msg
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				return m.open(ViewDashboard)
			case "2":
				return m.open(ViewAlerts)
			case "3":
				return m.open(ViewTasks)
			case "4":
				return m.open(ViewWorkload)
			case "5":
				return m.open(ViewReport)
			case "6":
				return m.open(ViewExport)
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	return m.forward(msg)
}

func (m model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		newModel tea.Model
		cmd      tea.Cmd
	)

	switch m.currentView {
	case ViewDashboard:
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewAlerts:
		newModel, cmd = m.alertsView.Update(msg)
		m.alertsView = newModel.(view.AlertsModel)
	case ViewTasks:
		newModel, cmd = m.tasksView.Update(msg)
		m.tasksView = newModel.(view.TaskListModel)
	case ViewWorkload:
		newModel, cmd = m.workloadView.Update(msg)
		m.workloadView = newModel.(view.WorkloadModel)
	case ViewReport:
		newModel, cmd = m.reportView.Update(msg)
		m.reportView = newModel.(view.ReportModel)
	case ViewExport:
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"JICA Project Console\n\n" +
				"1. Dashboard\n" +
				"2. Alerts\n" +
				"3. Tasks\n" +
				"4. Team Workload\n" +
				"5. Generate Report\n" +
				"6. Export Data\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewAlerts:
		return m.alertsView.View()
	case ViewTasks:
		return m.tasksView.View()
	case ViewWorkload:
		return m.workloadView.View()
	case ViewReport:
		return m.reportView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
