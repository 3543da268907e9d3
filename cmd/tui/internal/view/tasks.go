package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/taka-daredemo/JICA/internal/metrics"
	"github.com/taka-daredemo/JICA/internal/task"
)

type taskListState int

const (
	taskStateBrowse taskListState = iota
	taskStateEdit
)

var (
	taskStatusFilters = []*task.Status{
		nil,
		new(task.StatusNotStarted),
		new(task.StatusInProgress),
		new(task.StatusCompleted),
		new(task.StatusOverdue),
	}
	taskStatusLabels = []string{"All", "Not Started", "In Progress", "Completed", "Overdue"}
	taskDateLabels   = []string{"All Time", "This Month", "Next Month"}
)

// TaskListModel browses tasks and updates their status.
type TaskListModel struct {
	CommonModel
	taskService *task.Service
	loc         *time.Location

	state taskListState
	table table.Model
	tasks []*task.Task
	form  *huh.Form

	statusFilterIdx int
	dateFilterIdx   int

	filter  task.ListFilter
	loading bool
	err     error
	status  string
}

func NewTaskListModel(svc *task.Service, loc *time.Location) TaskListModel {
	columns := []table.Column{
		{Title: "Due", Width: 12},
		{Title: "Status", Width: 12},
		{Title: "Priority", Width: 9},
		{Title: "Name", Width: 36},
		{Title: "Assignee", Width: 18},
	}

	return TaskListModel{
		taskService: svc,
		loc:         loc,
		table:       newTable(columns, 15),
		loading:     true,
	}
}

func (m TaskListModel) Title() string { return "Tasks" }

func (m TaskListModel) ShortHelp() string {
	if m.state == taskStateEdit {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | e: change status | s: status filter | d: date filter | r: refresh"
}

func (m TaskListModel) Init() tea.Cmd {
	return m.loadTasksCmd()
}

func (m TaskListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadTasksMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.tasks = msg.tasks
		m.refreshTable()

		return m, nil

	case taskSaveMsg:
		m.status = ""
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		}

		m.state = taskStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadTasksCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-10, 5))
		return m, nil
	}

	switch m.state {
	case taskStateBrowse:
		return m.updateBrowse(msg)
	case taskStateEdit:
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m TaskListModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadTasksCmd()
		case "e":
			return m.enterEditMode()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % len(taskStatusFilters)
			m.applyFilter()

			return m, m.loadTasksCmd()
		case "d":
			m.dateFilterIdx = (m.dateFilterIdx + 1) % len(taskDateLabels)
			m.applyFilter()

			return m, m.loadTasksCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m TaskListModel) enterEditMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.tasks) {
		return m, nil
	}

	current := m.tasks[idx].Status

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[task.Status]().
				Key("status").
				Title("Status").
				Options(
					huh.NewOption("Not Started", task.StatusNotStarted),
					huh.NewOption("In Progress", task.StatusInProgress),
					huh.NewOption("Completed", task.StatusCompleted),
					huh.NewOption("Overdue", task.StatusOverdue),
				).
				Value(&current),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = taskStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m TaskListModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = taskStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m TaskListModel) View() string {
	if m.loading {
		return loadingView("tasks")
	}

	if m.err != nil {
		return errorView(m.err)
	}

	header := fmt.Sprintf(
		"Filter: [s] Status: %s | [d] Due: %s",
		activeStyle(taskStatusLabels[m.statusFilterIdx]),
		activeStyle(taskDateLabels[m.dateFilterIdx]),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorSubtle).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == taskStateEdit && m.form != nil {
		name := ""
		if idx := m.table.Cursor(); idx >= 0 && idx < len(m.tasks) {
			name = m.tasks[idx].Name
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("Update Task\n\n%s\n\n%s", name, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *TaskListModel) applyFilter() {
	m.filter.Status = taskStatusFilters[m.statusFilterIdx]

	month := metrics.StartOfMonth(time.Now().In(m.loc))

	switch m.dateFilterIdx {
	case 1:
		m.filter.DueFrom, m.filter.DueTo = new(month), new(metrics.EndOfMonth(month))
	case 2:
		next := month.AddDate(0, 1, 0)
		m.filter.DueFrom, m.filter.DueTo = new(next), new(metrics.EndOfMonth(next))
	default:
		m.filter.DueFrom, m.filter.DueTo = nil, nil
	}
}

func (m *TaskListModel) refreshTable() {
	now := time.Now()

	rows := make([]table.Row, 0, len(m.tasks))
	for _, t := range m.tasks {
		status := string(t.Status)
		if metrics.IsOverdue(t, now) && t.Status != task.StatusOverdue {
			status += " !"
		}

		rows = append(rows, table.Row{
			FormatDate(t.DueDate.In(m.loc)),
			status,
			string(t.Priority),
			t.Name,
			t.AssigneeName(),
		})
	}

	m.table.SetRows(rows)
}

type loadTasksMsg struct {
	tasks []*task.Task
	err   error
}

func (m TaskListModel) loadTasksCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		tasks, err := m.taskService.List(ctx, filter)

		return loadTasksMsg{tasks: tasks, err: err}
	}
}

type taskSaveMsg struct {
	err error
}

func (m TaskListModel) saveCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.tasks) {
		return nil
	}

	id := m.tasks[idx].ID

	status, ok := m.form.Get("status").(task.Status)
	if !ok {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return taskSaveMsg{err: m.taskService.UpdateStatus(ctx, id, status)}
	}
}
