// Package metrics holds the pure aggregation functions shared by the
// dashboard, alerts and periodic reports.
package metrics

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Thresholds are the tunable limits used by the aggregators and the alert
// engine.
type Thresholds struct {
	// Workload tiers: active > OverloadedAbove is Overloaded, >= HighFrom is
	// High, >= NormalFrom is Normal, anything less is Low.
	OverloadedAbove int
	HighFrom        int
	NormalFrom      int

	// IncomeTargetPercent is the minimum income growth over baseline.
	IncomeTargetPercent float64

	BudgetWarningPercent  float64
	BudgetCriticalPercent float64

	// AlertWindowDays bounds upcoming payment and training alerts;
	// AlertUrgentDays promotes them from info to warning.
	AlertWindowDays int
	AlertUrgentDays int
	AlertsPerRule   int

	DueSoonDays         int
	UpcomingPaymentDays int
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		OverloadedAbove:       5,
		HighFrom:              4,
		NormalFrom:            1,
		IncomeTargetPercent:   10,
		BudgetWarningPercent:  80,
		BudgetCriticalPercent: 90,
		AlertWindowDays:       7,
		AlertUrgentDays:       3,
		AlertsPerRule:         5,
		DueSoonDays:           7,
		UpcomingPaymentDays:   30,
	}
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Percent returns part/whole*100, or 0 when whole is zero.
func Percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}

	return float64(part) / float64(whole) * 100
}

func percentDecimal(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}

	return part.Div(whole).Mul(decimal.NewFromInt(100)).InexactFloat64()
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// DaysUntil counts whole days from now to t, rounding partial days up.
// Past instants yield zero or negative values.
func DaysUntil(now, t time.Time) int {
	return int(math.Ceil(t.Sub(now).Hours() / 24))
}
