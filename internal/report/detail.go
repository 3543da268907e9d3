package report

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/taka-daredemo/JICA/internal/farmer"
	"github.com/taka-daredemo/JICA/internal/metrics"
	"github.com/taka-daredemo/JICA/internal/training"
)

type IncomeFilter struct {
	RecordType *farmer.RecordType
	From       *time.Time
	To         *time.Time
}

type RecordCounts struct {
	Annual int `json:"annual"`
	Sale   int `json:"sale"`
	Total  int `json:"total"`
}

type FarmerIncome struct {
	Farmer   *farmer.Farmer
	Records  []*farmer.IncomeRecord
	Counts   RecordCounts
	Analysis *metrics.IncomeAnalysis // nil when there is no signal
}

// FarmerIncome returns a farmer's income records, newest first, with the
// analysis against baseline over the same records.
func (s *Service) FarmerIncome(ctx context.Context, farmerID uuid.UUID, filter IncomeFilter) (*FarmerIncome, error) {
	f, err := s.r.Farmers.Get(ctx, farmerID)
	if err != nil {
		return nil, err
	}

	inc := farmer.IncomeFilter{FarmerID: &farmerID, From: filter.From, To: filter.To}
	if filter.RecordType != nil {
		inc.Types = []farmer.RecordType{*filter.RecordType}
	}

	records, err := s.r.Farmers.ListIncome(ctx, inc)
	if err != nil {
		return nil, wrap("listing income records", err)
	}

	counts := RecordCounts{Total: len(records)}

	for _, r := range records {
		switch r.RecordType {
		case farmer.RecordAnnual:
			counts.Annual++
		case farmer.RecordSale:
			counts.Sale++
		}
	}

	return &FarmerIncome{
		Farmer:   f,
		Records:  records,
		Counts:   counts,
		Analysis: metrics.AnalyzeIncome(f, records, s.th),
	}, nil
}

type SessionAttendance struct {
	Session    *training.Training
	Rows       []*training.Attendance
	Statistics metrics.AttendanceSummary
}

func (s *Service) SessionAttendance(ctx context.Context, sessionID uuid.UUID) (*SessionAttendance, error) {
	t, rows, err := s.r.Trainings.Attendance(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &SessionAttendance{
		Session:    t,
		Rows:       rows,
		Statistics: metrics.SummarizeAttendance(t, rows),
	}, nil
}
