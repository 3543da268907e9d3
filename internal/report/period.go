package report

import (
	"fmt"
	"time"

	"github.com/taka-daredemo/JICA/internal/apperr"
	"github.com/taka-daredemo/JICA/internal/metrics"
)

type PeriodType string

const (
	Monthly   PeriodType = "monthly"
	Quarterly PeriodType = "quarterly"
	Annual    PeriodType = "annual"
)

func (t PeriodType) Valid() bool {
	switch t {
	case Monthly, Quarterly, Annual:
		return true
	}

	return false
}

type Period struct {
	Type      PeriodType `json:"type"`
	StartDate time.Time  `json:"startDate"`
	EndDate   time.Time  `json:"endDate"`
}

// PeriodRequest describes a reporting window. Explicit Start and End win over
// Year; with neither, the current month is used.
type PeriodRequest struct {
	Type    PeriodType
	Start   *time.Time
	End     *time.Time
	Year    int
	Quarter int
	Month   int
}

// ResolvePeriod turns a request into concrete inclusive bounds in loc.
// Quarter q covers months (q-1)*3+1 through q*3. Quarter and month default
// to 1 when a year is given without them.
func ResolvePeriod(req PeriodRequest, now time.Time, loc *time.Location) (Period, error) {
	if req.Type == "" {
		req.Type = Monthly
	}

	if !req.Type.Valid() {
		return Period{}, apperr.Validation("Invalid report type: " + string(req.Type))
	}

	p := Period{Type: req.Type}

	switch {
	case req.Start != nil && req.End != nil:
		p.StartDate = metrics.StartOfDay(req.Start.In(loc))
		p.EndDate = metrics.EndOfDay(req.End.In(loc))

		if p.EndDate.Before(p.StartDate) {
			return Period{}, apperr.Validation("endDate must not be before startDate")
		}
	case req.Year != 0:
		switch req.Type {
		case Annual:
			start := time.Date(req.Year, time.January, 1, 0, 0, 0, 0, loc)
			p.StartDate, p.EndDate = start, start.AddDate(1, 0, 0).Add(-time.Nanosecond)
		case Quarterly:
			q := req.Quarter
			if q == 0 {
				q = 1
			}

			if q < 1 || q > 4 {
				return Period{}, apperr.Validation(fmt.Sprintf("Invalid quarter: %d", q))
			}

			start := time.Date(req.Year, time.Month((q-1)*3+1), 1, 0, 0, 0, 0, loc)
			p.StartDate, p.EndDate = start, start.AddDate(0, 3, 0).Add(-time.Nanosecond)
		default:
			m := req.Month
			if m == 0 {
				m = 1
			}

			if m < 1 || m > 12 {
				return Period{}, apperr.Validation(fmt.Sprintf("Invalid month: %d", m))
			}

			start := time.Date(req.Year, time.Month(m), 1, 0, 0, 0, 0, loc)
			p.StartDate, p.EndDate = start, metrics.EndOfMonth(start)
		}
	default:
		now = now.In(loc)
		p.StartDate, p.EndDate = metrics.StartOfMonth(now), metrics.EndOfMonth(now)
	}

	return p, nil
}
