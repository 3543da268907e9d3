package roster

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount accepts amounts with thousands separators in either the
// "1,234.56" or the "1.234,56" convention, with optional currency marks.
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '¥', '円', '$', '€':
			return -1
		}

		return r
	}, s)

	commas := strings.Count(clean, ",")
	dots := strings.Count(clean, ".")

	switch {
	case commas > 0 && dots > 0:
		if strings.LastIndex(clean, ",") > strings.LastIndex(clean, ".") {
			clean = strings.ReplaceAll(clean, ".", "")
			clean = strings.ReplaceAll(clean, ",", ".")
		} else {
			clean = strings.ReplaceAll(clean, ",", "")
		}
	case commas == 1 && len(clean)-strings.Index(clean, ",")-1 <= 2:
		clean = strings.ReplaceAll(clean, ",", ".")
	case commas > 0:
		clean = strings.ReplaceAll(clean, ",", "")
	case dots > 1:
		clean = strings.ReplaceAll(clean, ".", "")
	}

	return decimal.NewFromString(clean)
}
