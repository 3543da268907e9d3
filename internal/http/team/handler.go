package team

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taka-daredemo/JICA/internal/http/respond"
	"github.com/taka-daredemo/JICA/internal/report"
	"github.com/taka-daredemo/JICA/internal/team"
)

type Handler struct {
	svc     *team.Service
	reports *report.Service
}

func NewHandler(svc *team.Service, reports *report.Service) *Handler {
	return &Handler{svc: svc, reports: reports}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/members", h.members)
	r.Get("/workload", h.workload)
	r.Get("/stats", h.stats)
}

func (h *Handler) members(w http.ResponseWriter, r *http.Request) {
	filter := team.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(team.Status(s))
	}

	users, err := h.svc.Members(r.Context(), filter)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.OK(w, toResponseList(users))
}

func (h *Handler) workload(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reports.TeamWorkload(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.OK(w, summary)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reports.TeamStats(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.OK(w, stats)
}
