package farmer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taka-daredemo/JICA/internal/apperr"
)

var (
	ErrNotFound      = apperr.NotFound("farmer not found")
	ErrDuplicateCode = apperr.Conflict("Farmer code already exists")
)

// Farmer is a project beneficiary. YearGroup is the enrolment cohort (1-3).
type Farmer struct {
	ID                uuid.UUID
	FarmerCode        string
	Name              string
	Location          string
	ContactPhone      string
	ContactEmail      string
	LandSizeHectares  *decimal.Decimal
	YearGroup         *int
	Status            string
	BaselineIncome    *decimal.Decimal
	TrainingCount     int // Loaded via COUNT
	IncomeRecordCount int // Loaded via COUNT
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type RecordType string

const (
	RecordAnnual RecordType = "Annual"
	RecordSale   RecordType = "Sale"
	RecordOther  RecordType = "Other"
)

func (t RecordType) Valid() bool {
	switch t {
	case RecordAnnual, RecordSale, RecordOther:
		return true
	}

	return false
}

// IncomeRecord is a dated income observation for a farmer.
type IncomeRecord struct {
	ID           uuid.UUID
	FarmerID     uuid.UUID
	RecordDate   time.Time
	IncomeAmount decimal.Decimal
	RecordType   RecordType
	Notes        string
	CreatedAt    time.Time
}

// GroupCounts is the farmer population by enrolment cohort.
type GroupCounts struct {
	Total int `json:"total"`
	Year1 int `json:"year1"`
	Year2 int `json:"year2"`
	Year3 int `json:"year3"`
}
