package farmer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taka-daredemo/JICA/internal/farmer"
	"github.com/taka-daredemo/JICA/internal/metrics"
	"github.com/taka-daredemo/JICA/internal/report"
)

type farmerResponse struct {
	ID                uuid.UUID        `json:"id"`
	FarmerCode        string           `json:"farmerCode"`
	Name              string           `json:"name"`
	Location          string           `json:"location,omitempty"`
	ContactPhone      string           `json:"contactPhone,omitempty"`
	ContactEmail      string           `json:"contactEmail,omitempty"`
	LandSizeHectares  *decimal.Decimal `json:"landSizeHectares"`
	YearGroup         *int             `json:"yearGroup"`
	Status            string           `json:"status"`
	BaselineIncome    *decimal.Decimal `json:"baselineIncome"`
	TrainingCount     int              `json:"trainingCount"`
	IncomeRecordCount int              `json:"incomeRecordCount"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

type incomeRecordResponse struct {
	ID           uuid.UUID         `json:"id"`
	FarmerID     uuid.UUID         `json:"farmerId"`
	RecordDate   time.Time         `json:"recordDate"`
	IncomeAmount decimal.Decimal   `json:"incomeAmount"`
	RecordType   farmer.RecordType `json:"recordType"`
	Notes        string            `json:"notes,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
}

type incomeResponse struct {
	Farmer   farmerResponse          `json:"farmer"`
	Records  []incomeRecordResponse  `json:"incomeRecords"`
	Counts   report.RecordCounts     `json:"recordCounts"`
	Analysis *metrics.IncomeAnalysis `json:"analysis"`
}

type importResponse struct {
	Imported int              `json:"imported"`
	Charset  string           `json:"charset"`
	Farmers  []farmerResponse `json:"farmers"`
}

type importConflictResponse struct {
	Conflicts []string `json:"conflicts"`
}

func toResponse(f *farmer.Farmer) farmerResponse {
	return farmerResponse{
		ID:                f.ID,
		FarmerCode:        f.FarmerCode,
		Name:              f.Name,
		Location:          f.Location,
		ContactPhone:      f.ContactPhone,
		ContactEmail:      f.ContactEmail,
		LandSizeHectares:  f.LandSizeHectares,
		YearGroup:         f.YearGroup,
		Status:            f.Status,
		BaselineIncome:    f.BaselineIncome,
		TrainingCount:     f.TrainingCount,
		IncomeRecordCount: f.IncomeRecordCount,
		CreatedAt:         f.CreatedAt,
		UpdatedAt:         f.UpdatedAt,
	}
}

func toResponseList(farmers []*farmer.Farmer) []farmerResponse {
	resp := make([]farmerResponse, len(farmers))
	for i, f := range farmers {
		resp[i] = toResponse(f)
	}

	return resp
}

func toRecordResponse(r *farmer.IncomeRecord) incomeRecordResponse {
	return incomeRecordResponse{
		ID:           r.ID,
		FarmerID:     r.FarmerID,
		RecordDate:   r.RecordDate,
		IncomeAmount: r.IncomeAmount,
		RecordType:   r.RecordType,
		Notes:        r.Notes,
		CreatedAt:    r.CreatedAt,
	}
}

func toIncomeResponse(in *report.FarmerIncome) incomeResponse {
	records := make([]incomeRecordResponse, len(in.Records))
	for i, r := range in.Records {
		records[i] = toRecordResponse(r)
	}

	return incomeResponse{
		Farmer:   toResponse(in.Farmer),
		Records:  records,
		Counts:   in.Counts,
		Analysis: in.Analysis,
	}
}
