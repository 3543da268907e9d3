package training

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/taka-daredemo/JICA/internal/apperr"
	"github.com/taka-daredemo/JICA/internal/http/request"
	"github.com/taka-daredemo/JICA/internal/http/respond"
	"github.com/taka-daredemo/JICA/internal/metrics"
	"github.com/taka-daredemo/JICA/internal/report"
	"github.com/taka-daredemo/JICA/internal/training"
)

type Handler struct {
	svc     *training.Service
	reports *report.Service
	loc     *time.Location
	now     func() time.Time
}

func NewHandler(svc *training.Service, reports *report.Service, loc *time.Location) *Handler {
	return &Handler{svc: svc, reports: reports, loc: loc, now: time.Now}
}

// Routes mounts /training/sessions.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Post("/{id}/register", h.register)
	r.Get("/{id}/attendance", h.attendance)
	r.Put("/{id}/attendance", h.replaceAttendance)
}

// list accepts status, month (YYYY-MM) and upcoming=true.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := training.ListFilter{}

	if s := q.Get("status"); s != "" {
		status := training.Status(s)
		if !status.Valid() {
			respond.Error(w, apperr.Validation("invalid status: "+s))
			return
		}

		filter.Status = &status
	}

	if s := q.Get("month"); s != "" {
		m, err := time.ParseInLocation("2006-01", s, h.loc)
		if err != nil {
			respond.Error(w, apperr.Validation("invalid month: "+s))
			return
		}

		filter.From = new(metrics.StartOfMonth(m))
		filter.To = new(metrics.EndOfMonth(m))
	}

	if q.Get("upcoming") == "true" {
		filter.Status = new(training.StatusUpcoming)
		filter.From = new(h.now())
	}

	sessions, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.OK(w, toResponseList(sessions))
}

type createSessionRequest struct {
	Topic         string          `json:"topic" validate:"required"`
	Description   string          `json:"description"`
	Date          request.Time    `json:"date" validate:"required"`
	Location      string          `json:"location"`
	FacilitatorID *uuid.UUID      `json:"facilitatorId"`
	Capacity      *int            `json:"capacity" validate:"omitempty,gte=0"`
	Status        training.Status `json:"status" validate:"omitempty,oneof=Upcoming Completed Cancelled"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	t, err := h.svc.Create(r.Context(), training.CreateParams{
		Topic:         req.Topic,
		Description:   req.Description,
		Date:          req.Date.Time,
		Location:      req.Location,
		FacilitatorID: req.FacilitatorID,
		Capacity:      req.Capacity,
		Status:        req.Status,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.Created(w, toResponse(t))
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

type registerRequest struct {
	FarmerID uuid.UUID `json:"farmerId" validate:"required"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	id, err := request.UUIDParam(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	var req registerRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	a, err := h.svc.Register(r.Context(), id, req.FarmerID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.Created(w, toAttendanceResponse(a))
}

func (h *Handler) attendance(w http.ResponseWriter, r *http.Request) {
	id, err := request.UUIDParam(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	sa, err := h.reports.SessionAttendance(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.OK(w, toSessionAttendanceResponse(sa))
}

type attendanceEntry struct {
	FarmerID uuid.UUID                 `json:"farmerId" validate:"required"`
	Status   training.AttendanceStatus `json:"status"`
}

type replaceAttendanceRequest struct {
	Attendance []attendanceEntry `json:"attendance" validate:"required,dive"`
}

func (h *Handler) replaceAttendance(w http.ResponseWriter, r *http.Request) {
	id, err := request.UUIDParam(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	var req replaceAttendanceRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	entries := make([]training.AttendanceEntry, len(req.Attendance))
	for i, e := range req.Attendance {
		entries[i] = training.AttendanceEntry{FarmerID: e.FarmerID, Status: e.Status}
	}

	if _, err := h.svc.ReplaceAttendance(r.Context(), id, entries); err != nil {
		respond.Error(w, err)
		return
	}

	sa, err := h.reports.SessionAttendance(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.OKMessage(w, toSessionAttendanceResponse(sa), "Attendance updated successfully")
}
