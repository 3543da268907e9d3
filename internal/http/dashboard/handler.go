package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taka-daredemo/JICA/internal/http/respond"
	"github.com/taka-daredemo/JICA/internal/report"
)

type Handler struct {
	reports *report.Service
}

func NewHandler(reports *report.Service) *Handler {
	return &Handler{reports: reports}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/alerts", h.alerts)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	d, err := h.reports.Dashboard(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.OK(w, d)
}

func (h *Handler) alerts(w http.ResponseWriter, r *http.Request) {
	s, err := h.reports.Alerts(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.OK(w, s)
}
