package farmer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taka-daredemo/JICA/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=farmer
type Repository interface {
	CreateFarmer(ctx context.Context, f *Farmer) error
	GetFarmer(ctx context.Context, id uuid.UUID) (*Farmer, error)
	ListFarmers(ctx context.Context, filter ListFilter) ([]*Farmer, error)
	CountByYearGroup(ctx context.Context) (GroupCounts, error)

	CreateIncomeRecord(ctx context.Context, r *IncomeRecord) error
	ListIncomeRecords(ctx context.Context, filter IncomeFilter) ([]*IncomeRecord, error)

	BeginImport(ctx context.Context) (ImportTx, error)
}

type ImportTx interface {
	ExistingCodes(ctx context.Context, codes []string) ([]string, error)
	CreateFarmers(ctx context.Context, farmers []*Farmer) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	FarmerCode       string
	Name             string
	Location         string
	ContactPhone     string
	ContactEmail     string
	LandSizeHectares *decimal.Decimal
	YearGroup        *int
	Status           string
	BaselineIncome   *decimal.Decimal
}

type ListFilter struct {
	YearGroup   *int
	Search      string
	HasBaseline bool
}

// IncomeFilter selects income records. Records are returned newest first.
type IncomeFilter struct {
	FarmerID *uuid.UUID
	Types    []RecordType
	From     *time.Time
	To       *time.Time
}

type AddIncomeParams struct {
	RecordDate   time.Time
	IncomeAmount decimal.Decimal
	RecordType   RecordType
	Notes        string
}

func (p CreateParams) validate() error {
	if strings.TrimSpace(p.FarmerCode) == "" {
		return apperr.Validation("farmerCode is required")
	}

	if strings.TrimSpace(p.Name) == "" {
		return apperr.Validation("name is required")
	}

	if p.YearGroup != nil && (*p.YearGroup < 1 || *p.YearGroup > 3) {
		return apperr.Validation("yearGroup must be between 1 and 3")
	}

	if p.BaselineIncome != nil && p.BaselineIncome.IsNegative() {
		return apperr.Validation("baselineIncome must not be negative")
	}

	return nil
}

func (p CreateParams) farmer() *Farmer {
	status := p.Status
	if status == "" {
		status = "Active"
	}

	return &Farmer{
		FarmerCode:       strings.TrimSpace(p.FarmerCode),
		Name:             strings.TrimSpace(p.Name),
		Location:         p.Location,
		ContactPhone:     p.ContactPhone,
		ContactEmail:     p.ContactEmail,
		LandSizeHectares: p.LandSizeHectares,
		YearGroup:        p.YearGroup,
		Status:           status,
		BaselineIncome:   p.BaselineIncome,
	}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Farmer, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	f := params.farmer()
	if err := s.repo.CreateFarmer(ctx, f); err != nil {
		return nil, err
	}

	return f, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Farmer, error) {
	return s.repo.GetFarmer(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Farmer, error) {
	return s.repo.ListFarmers(ctx, filter)
}

func (s *Service) CountByYearGroup(ctx context.Context) (GroupCounts, error) {
	return s.repo.CountByYearGroup(ctx)
}

func (s *Service) AddIncome(ctx context.Context, farmerID uuid.UUID, params AddIncomeParams) (*IncomeRecord, error) {
	if params.RecordDate.IsZero() {
		return nil, apperr.Validation("recordDate is required")
	}

	if params.IncomeAmount.IsNegative() {
		return nil, apperr.Validation("incomeAmount must not be negative")
	}

	if !params.RecordType.Valid() {
		return nil, apperr.Validation("invalid recordType: " + string(params.RecordType))
	}

	if _, err := s.repo.GetFarmer(ctx, farmerID); err != nil {
		return nil, err
	}

	r := &IncomeRecord{
		FarmerID:     farmerID,
		RecordDate:   params.RecordDate,
		IncomeAmount: params.IncomeAmount,
		RecordType:   params.RecordType,
		Notes:        params.Notes,
	}
	if err := s.repo.CreateIncomeRecord(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

func (s *Service) ListIncome(ctx context.Context, filter IncomeFilter) ([]*IncomeRecord, error) {
	return s.repo.ListIncomeRecords(ctx, filter)
}

type ImportResult struct {
	Imported  []*Farmer
	Conflicts []string // farmer codes that are duplicated in the file or already registered
}

// ImportRoster registers a batch of farmers. If any farmer code collides with
// another row or an existing farmer, nothing is written and the collisions are
// returned.
func (s *Service) ImportRoster(ctx context.Context, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	codes := make([]string, 0, len(params))
	seen := make(map[string]bool, len(params))

	var conflicts []string

	for i, p := range params {
		if err := p.validate(); err != nil {
			return nil, apperr.Validation(fmt.Sprintf("row %d: %s", i+1, apperr.Message(err)))
		}

		code := strings.TrimSpace(p.FarmerCode)
		if seen[code] {
			conflicts = append(conflicts, code)
			continue
		}

		seen[code] = true
		codes = append(codes, code)
	}

	itx, err := s.repo.BeginImport(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	existing, err := itx.ExistingCodes(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("find existing codes: %w", err)
	}

	conflicts = append(conflicts, existing...)
	if len(conflicts) > 0 {
		return &ImportResult{Conflicts: conflicts}, nil
	}

	farmers := make([]*Farmer, len(params))
	for i, p := range params {
		farmers[i] = p.farmer()
	}

	if err := itx.CreateFarmers(ctx, farmers); err != nil {
		return nil, fmt.Errorf("create farmers: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return &ImportResult{Imported: farmers}, nil
}
