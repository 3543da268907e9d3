package metrics

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taka-daredemo/JICA/internal/farmer"
)

// IncomeAnalysis compares a farmer's latest qualifying income with the
// baseline.
type IncomeAnalysis struct {
	FarmerID      uuid.UUID       `json:"farmerId"`
	FarmerCode    string          `json:"farmerCode"`
	Name          string          `json:"name"`
	Baseline      decimal.Decimal `json:"baseline"`
	Current       decimal.Decimal `json:"current"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent float64         `json:"changePercent"`
	TargetIncome  decimal.Decimal `json:"targetIncome"`
	MeetsTarget   bool            `json:"meetsTarget"`
}

type IncomeTargetSummary struct {
	Analyses              []*IncomeAnalysis `json:"incomeAnalysis"`
	TargetAchievers       int               `json:"targetAchievers"`
	TotalAnalyzed         int               `json:"totalAnalyzed"`
	TargetAchievementRate float64           `json:"targetAchievementRate"`
}

func qualifies(t farmer.RecordType) bool {
	return t == farmer.RecordAnnual || t == farmer.RecordSale
}

// AnalyzeIncome returns nil when there is no signal: no positive baseline or
// no Annual/Sale record among records. The latest qualifying record by
// RecordDate is used regardless of input order.
func AnalyzeIncome(f *farmer.Farmer, records []*farmer.IncomeRecord, th Thresholds) *IncomeAnalysis {
	if f.BaselineIncome == nil || !f.BaselineIncome.IsPositive() {
		return nil
	}

	var latest *farmer.IncomeRecord

	for _, r := range records {
		if !qualifies(r.RecordType) {
			continue
		}

		if latest == nil || r.RecordDate.After(latest.RecordDate) {
			latest = r
		}
	}

	if latest == nil {
		return nil
	}

	baseline := *f.BaselineIncome
	change := latest.IncomeAmount.Sub(baseline)
	changePercent := change.Div(baseline).Mul(decimal.NewFromInt(100)).InexactFloat64()
	target := baseline.Add(baseline.Mul(decimal.NewFromFloat(th.IncomeTargetPercent)).Div(decimal.NewFromInt(100)))

	return &IncomeAnalysis{
		FarmerID:      f.ID,
		FarmerCode:    f.FarmerCode,
		Name:          f.Name,
		Baseline:      baseline,
		Current:       latest.IncomeAmount,
		Change:        change,
		ChangePercent: Round1(changePercent),
		TargetIncome:  target,
		MeetsTarget:   changePercent >= th.IncomeTargetPercent,
	}
}

// SummarizeIncomeTargets analyses every farmer against its own records and
// reports the share of analysable farmers meeting the target. Farmers with no
// signal are left out of the denominator.
func SummarizeIncomeTargets(farmers []*farmer.Farmer, records map[uuid.UUID][]*farmer.IncomeRecord, th Thresholds) IncomeTargetSummary {
	s := IncomeTargetSummary{Analyses: []*IncomeAnalysis{}}

	for _, f := range farmers {
		a := AnalyzeIncome(f, records[f.ID], th)
		if a == nil {
			continue
		}

		s.Analyses = append(s.Analyses, a)

		if a.MeetsTarget {
			s.TargetAchievers++
		}
	}

	s.TotalAnalyzed = len(s.Analyses)
	s.TargetAchievementRate = Round1(Percent(s.TargetAchievers, s.TotalAnalyzed))

	return s
}
