package reports

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taka-daredemo/JICA/internal/apperr"
	"github.com/taka-daredemo/JICA/internal/auth"
	"github.com/taka-daredemo/JICA/internal/export"
	"github.com/taka-daredemo/JICA/internal/http/request"
	"github.com/taka-daredemo/JICA/internal/http/respond"
	"github.com/taka-daredemo/JICA/internal/report"
)

type Handler struct {
	reports *report.Service
	exports *export.Service
	loc     *time.Location
	now     func() time.Time
}

func NewHandler(reports *report.Service, exports *export.Service, loc *time.Location) *Handler {
	return &Handler{reports: reports, exports: exports, loc: loc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/generate", h.generate)
	r.Get("/export", h.export)
}

// generate accepts type, format, startDate, endDate, year, quarter and month.
func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	period := report.PeriodRequest{Type: report.PeriodType(q.Get("type"))}

	var err error

	if period.Start, err = request.Date(q, "startDate", h.loc); err != nil {
		respond.Error(w, err)
		return
	}

	if period.End, err = request.Date(q, "endDate", h.loc); err != nil {
		respond.Error(w, err)
		return
	}

	for key, dst := range map[string]*int{"year": &period.Year, "quarter": &period.Quarter, "month": &period.Month} {
		n, err := request.Int(q, key)
		if err != nil {
			respond.Error(w, err)
			return
		}

		if n != nil {
			*dst = *n
		}
	}

	req := report.Request{
		Period: period,
		Format: report.Format(q.Get("format")),
	}

	if s, ok := auth.FromContext(r.Context()); ok {
		req.GeneratedBy = s.Email
	}

	rep, err := h.reports.Generate(r.Context(), req)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.OK(w, rep)
}

// export accepts entity, format (csv or json), startDate and endDate. CSV is
// sent as a file download; JSON is wrapped in the usual envelope.
func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	entity, err := export.ParseEntity(q.Get("entity"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	format, err := export.ParseFormat(q.Get("format"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	var rng export.Range

	if rng.From, err = request.Date(q, "startDate", h.loc); err != nil {
		respond.Error(w, err)
		return
	}

	if rng.To, err = request.EndDate(q, "endDate", h.loc); err != nil {
		respond.Error(w, err)
		return
	}

	if (rng.From == nil) != (rng.To == nil) {
		respond.Error(w, apperr.Validation("startDate and endDate must be given together"))
		return
	}

	data, err := h.exports.Export(r.Context(), entity, rng)
	if err != nil {
		respond.Error(w, err)
		return
	}

	if format == export.FormatJSON {
		respond.OK(w, data)
		return
	}

	if data.Len() == 0 {
		respond.OKMessage(w, "", "No data to export")
		return
	}

	var buf bytes.Buffer
	if err := data.WriteCSV(&buf); err != nil {
		respond.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(entity, export.FormatCSV, h.now().In(h.loc))+`"`)

	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("failed to write export", "entity", entity, "error", err)
	}
}
