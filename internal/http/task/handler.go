package task

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/taka-daredemo/JICA/internal/apperr"
	"github.com/taka-daredemo/JICA/internal/auth"
	"github.com/taka-daredemo/JICA/internal/http/request"
	"github.com/taka-daredemo/JICA/internal/http/respond"
	"github.com/taka-daredemo/JICA/internal/metrics"
	"github.com/taka-daredemo/JICA/internal/task"
)

type Handler struct {
	svc *task.Service
	loc *time.Location
	now func() time.Time
}

func NewHandler(svc *task.Service, loc *time.Location) *Handler {
	return &Handler{svc: svc, loc: loc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/overdue", h.overdue)
	r.Get("/{id}", h.get)
	r.Patch("/{id}/status", h.updateStatus)
	r.Put("/{id}/status", h.updateStatus)
	r.Post("/{id}/assign", h.assign)
	r.Patch("/{id}/assign", h.assign)
}

type recurrenceRequest struct {
	Pattern      string        `json:"pattern" validate:"required,oneof=daily weekly monthly"`
	Interval     int           `json:"interval" validate:"omitempty,gte=1"`
	EndCondition string        `json:"endCondition" validate:"omitempty,oneof=never after on"`
	Occurrences  *int          `json:"occurrences" validate:"omitempty,gte=1"`
	EndDate      *request.Time `json:"endDate"`
}

type createTaskRequest struct {
	Name             string             `json:"name" validate:"required"`
	Description      string             `json:"description"`
	AssigneeID       *uuid.UUID         `json:"assigneeId"`
	DueDate          request.Time       `json:"dueDate" validate:"required"`
	Priority         task.Priority      `json:"priority" validate:"omitempty,oneof=Critical High Medium Low"`
	IsRecurring      bool               `json:"isRecurring"`
	RecurringPattern *recurrenceRequest `json:"recurringPattern"`
	ParentTaskID     *uuid.UUID         `json:"parentTaskId"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	params := task.CreateParams{
		Name:         req.Name,
		Description:  req.Description,
		AssigneeID:   req.AssigneeID,
		DueDate:      req.DueDate.Time,
		Priority:     req.Priority,
		ParentTaskID: req.ParentTaskID,
	}

	if req.IsRecurring && req.RecurringPattern != nil {
		p := req.RecurringPattern

		interval := p.Interval
		if interval == 0 {
			interval = 1
		}

		endCondition := p.EndCondition
		if endCondition == "" {
			endCondition = "never"
		}

		params.Recurrence = &task.RecurringPattern{
			Pattern:      p.Pattern,
			Interval:     interval,
			EndCondition: endCondition,
			Occurrences:  p.Occurrences,
			EndDate:      p.EndDate.Ptr(),
		}
	}

	if s, ok := auth.FromContext(r.Context()); ok {
		params.CreatedByID = &s.UserID
	}

	t, err := h.svc.Create(r.Context(), params)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.Created(w, toResponse(t))
}

// list accepts status, assigneeId, month (YYYY-MM) and overdue=true.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := task.ListFilter{}

	if s := q.Get("status"); s != "" {
		status := task.Status(s)
		if !status.Valid() {
			respond.Error(w, apperr.Validation("invalid status: "+s))
			return
		}

		filter.Status = &status
	}

	if s := q.Get("assigneeId"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			respond.Error(w, apperr.Validation("invalid assigneeId"))
			return
		}

		filter.AssigneeID = &id
	}

	if s := q.Get("month"); s != "" {
		m, err := time.ParseInLocation("2006-01", s, h.loc)
		if err != nil {
			respond.Error(w, apperr.Validation("invalid month: "+s))
			return
		}

		filter.DueFrom = new(metrics.StartOfMonth(m))
		filter.DueTo = new(metrics.EndOfMonth(m))
	}

	if q.Get("overdue") == "true" {
		filter.Status = nil
		filter.ExcludeStatus = new(task.StatusCompleted)
		filter.DueTo = new(h.now())
	}

	tasks, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.OK(w, toResponseList(tasks))
}

func (h *Handler) overdue(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.svc.Overdue(r.Context(), h.now())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.OK(w, toResponseList(tasks))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := request.UUIDParam(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	t, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.OK(w, toResponse(t))
}

type updateStatusRequest struct {
	Status task.Status `json:"status" validate:"required"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := request.UUIDParam(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	var req updateStatusRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	if err := h.svc.UpdateStatus(r.Context(), id, req.Status); err != nil {
		respond.Error(w, err)
		return
	}

	h.respondUpdated(w, r, id, "Task status updated successfully")
}

type assignRequest struct {
	AssigneeID *uuid.UUID `json:"assigneeId"`
}

func (h *Handler) assign(w http.ResponseWriter, r *http.Request) {
	id, err := request.UUIDParam(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	var req assignRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	if err := h.svc.Assign(r.Context(), id, req.AssigneeID); err != nil {
		respond.Error(w, err)
		return
	}

	h.respondUpdated(w, r, id, "Task assigned successfully")
}

func (h *Handler) respondUpdated(w http.ResponseWriter, r *http.Request, id uuid.UUID, msg string) {
	t, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.OKMessage(w, toResponse(t), msg)
}
