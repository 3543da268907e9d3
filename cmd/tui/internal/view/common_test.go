package view_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/taka-daredemo/JICA/cmd/tui/internal/view"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "Zero", in: "0", want: "¥0"},
		{name: "Hundreds", in: "999", want: "¥999"},
		{name: "Thousands", in: "1234", want: "¥1,234"},
		{name: "Millions", in: "12345678", want: "¥12,345,678"},
		{name: "Rounds", in: "1499.5", want: "¥1,500"},
		{name: "Negative", in: "-250000", want: "-¥250,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, view.FormatAmount(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestTimeframe_Range(t *testing.T) {
	loc := time.FixedZone("JST", 9*60*60)
	now := time.Date(2025, time.May, 14, 15, 0, 0, 0, loc)

	tests := []struct {
		tf        view.Timeframe
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			tf:        view.TimeframeThisMonth,
			wantStart: time.Date(2025, time.May, 1, 0, 0, 0, 0, loc),
			wantEnd:   time.Date(2025, time.June, 1, 0, 0, 0, 0, loc).Add(-time.Nanosecond),
		},
		{
			tf:        view.TimeframeLastMonth,
			wantStart: time.Date(2025, time.April, 1, 0, 0, 0, 0, loc),
			wantEnd:   time.Date(2025, time.May, 1, 0, 0, 0, 0, loc).Add(-time.Nanosecond),
		},
		{
			tf:        view.TimeframeNextMonth,
			wantStart: time.Date(2025, time.June, 1, 0, 0, 0, 0, loc),
			wantEnd:   time.Date(2025, time.July, 1, 0, 0, 0, 0, loc).Add(-time.Nanosecond),
		},
		{
			tf:        view.TimeframeThisQuarter,
			wantStart: time.Date(2025, time.April, 1, 0, 0, 0, 0, loc),
			wantEnd:   time.Date(2025, time.July, 1, 0, 0, 0, 0, loc).Add(-time.Nanosecond),
		},
		{
			tf:        view.TimeframeThisYear,
			wantStart: time.Date(2025, time.January, 1, 0, 0, 0, 0, loc),
			wantEnd:   time.Date(2026, time.January, 1, 0, 0, 0, 0, loc).Add(-time.Nanosecond),
		},
		{tf: view.TimeframeAll},
	}

	for _, tt := range tests {
		t.Run(tt.tf.String(), func(t *testing.T) {
			start, end := tt.tf.Range(now)
			assert.True(t, tt.wantStart.Equal(start), "start %s", start)
			assert.True(t, tt.wantEnd.Equal(end), "end %s", end)
		})
	}
}
