package farmer

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/taka-daredemo/JICA/internal/apperr"
	"github.com/taka-daredemo/JICA/internal/farmer"
	"github.com/taka-daredemo/JICA/internal/http/request"
	"github.com/taka-daredemo/JICA/internal/http/respond"
	"github.com/taka-daredemo/JICA/internal/importer/roster"
	"github.com/taka-daredemo/JICA/internal/report"
)

const maxRosterSize = 10 << 20

type Handler struct {
	svc     *farmer.Service
	reports *report.Service
	roster  *roster.Parser
	loc     *time.Location
}

func NewHandler(svc *farmer.Service, reports *report.Service, loc *time.Location) *Handler {
	return &Handler{svc: svc, reports: reports, roster: roster.NewParser(), loc: loc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Post("/import", h.importRoster)
	r.Get("/{id}", h.get)
	r.Get("/{id}/income", h.income)
	r.Post("/{id}/income", h.addIncome)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	yg, err := request.Int(q, "yearGroup")
	if err != nil {
		respond.Error(w, err)
		return
	}

	farmers, err := h.svc.List(r.Context(), farmer.ListFilter{
		YearGroup:   yg,
		Search:      strings.TrimSpace(q.Get("search")),
		HasBaseline: q.Get("hasBaseline") == "true",
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.OK(w, toResponseList(farmers))
}

type createFarmerRequest struct {
	FarmerCode       string           `json:"farmerCode" validate:"required"`
	Name             string           `json:"name" validate:"required"`
	Location         string           `json:"location"`
	ContactPhone     string           `json:"contactPhone"`
	ContactEmail     string           `json:"contactEmail" validate:"omitempty,email"`
	LandSizeHectares *decimal.Decimal `json:"landSizeHectares"`
	YearGroup        *int             `json:"yearGroup" validate:"omitempty,gte=1,lte=3"`
	Status           string           `json:"status"`
	BaselineIncome   *decimal.Decimal `json:"baselineIncome"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createFarmerRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	f, err := h.svc.Create(r.Context(), farmer.CreateParams{
		FarmerCode:       req.FarmerCode,
		Name:             req.Name,
		Location:         req.Location,
		ContactPhone:     req.ContactPhone,
		ContactEmail:     req.ContactEmail,
		LandSizeHectares: req.LandSizeHectares,
		YearGroup:        req.YearGroup,
		Status:           req.Status,
		BaselineIncome:   req.BaselineIncome,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.Created(w, toResponse(f))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := request.UUIDParam(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	f, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.OK(w, toResponse(f))
}

// income accepts recordType, year, startDate and endDate. year wins over the
// explicit range.
func (h *Handler) income(w http.ResponseWriter, r *http.Request) {
	id, err := request.UUIDParam(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	q := r.URL.Query()
	filter := report.IncomeFilter{}

	if s := q.Get("recordType"); s != "" {
		rt := farmer.RecordType(s)
		if !rt.Valid() {
			respond.Error(w, apperr.Validation("invalid recordType: "+s))
			return
		}

		filter.RecordType = &rt
	}

	if filter.From, err = request.Date(q, "startDate", h.loc); err != nil {
		respond.Error(w, err)
		return
	}

	if filter.To, err = request.EndDate(q, "endDate", h.loc); err != nil {
		respond.Error(w, err)
		return
	}

	year, err := request.Int(q, "year")
	if err != nil {
		respond.Error(w, err)
		return
	}

	if year != nil {
		start := time.Date(*year, time.January, 1, 0, 0, 0, 0, h.loc)
		filter.From = &start
		filter.To = new(start.AddDate(1, 0, 0).Add(-time.Nanosecond))
	}

	out, err := h.reports.FarmerIncome(r.Context(), id, filter)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.OK(w, toIncomeResponse(out))
}

type addIncomeRequest struct {
	RecordDate   request.Time      `json:"recordDate" validate:"required"`
	IncomeAmount *decimal.Decimal  `json:"incomeAmount" validate:"required"`
	RecordType   farmer.RecordType `json:"recordType" validate:"required,oneof=Annual Sale Other"`
	Notes        string            `json:"notes"`
}

func (h *Handler) addIncome(w http.ResponseWriter, r *http.Request) {
	id, err := request.UUIDParam(r, "id")
	if err != nil {
		respond.Error(w, err)
		return
	}

	var req addIncomeRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	rec, err := h.svc.AddIncome(r.Context(), id, farmer.AddIncomeParams{
		RecordDate:   req.RecordDate.Time,
		IncomeAmount: *req.IncomeAmount,
		RecordType:   req.RecordType,
		Notes:        req.Notes,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.Created(w, toRecordResponse(rec))
}

// importRoster registers every farmer in an uploaded roster CSV, or none of
// them when any farmer code is already taken.
func (h *Handler) importRoster(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRosterSize+1<<20)
	if err := r.ParseMultipartForm(maxRosterSize); err != nil {
		respond.BadRequest(w, "failed to parse form: "+err.Error())
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.BadRequest(w, "file field is required")
		return
	}
	defer file.Close()

	parsed, err := h.roster.Parse(file)
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	result, err := h.svc.ImportRoster(r.Context(), parsed.Farmers)
	if err != nil {
		respond.Error(w, err)
		return
	}

	if len(result.Conflicts) > 0 {
		respond.Conflict(w,
			fmt.Sprintf("Farmer code already exists: %s", strings.Join(result.Conflicts, ", ")),
			importConflictResponse{Conflicts: result.Conflicts})

		return
	}

	respond.Created(w, importResponse{
		Imported: len(result.Imported),
		Charset:  parsed.Charset,
		Farmers:  toResponseList(result.Imported),
	})
}
