package roster

import "strings"

type field int

const (
	fieldCode field = iota
	fieldName
	fieldLocation
	fieldPhone
	fieldEmail
	fieldLandSize
	fieldYearGroup
	fieldStatus
	fieldBaseline
)

// aliases lists accepted header names per field. Matching ignores case and
// surrounding whitespace. Japanese headers come from the field office
// spreadsheets.
var aliases = map[field][]string{
	fieldCode:      {"farmercode", "farmer code", "farmer_code", "code", "農家コード", "農家番号", "コード"},
	fieldName:      {"name", "farmer name", "氏名", "名前", "農家名"},
	fieldLocation:  {"location", "village", "地域", "所在地", "村"},
	fieldPhone:     {"contactphone", "phone", "contact phone", "電話番号", "電話"},
	fieldEmail:     {"contactemail", "email", "contact email", "メール", "メールアドレス"},
	fieldLandSize:  {"landsizehectares", "land size", "land size (ha)", "land_size_hectares", "農地面積", "農地面積(ha)"},
	fieldYearGroup: {"yeargroup", "year group", "year_group", "cohort", "年次", "グループ"},
	fieldStatus:    {"status", "ステータス", "状態"},
	fieldBaseline:  {"baselineincome", "baseline income", "baseline_income", "基準収入", "ベースライン収入"},
}

var required = []field{fieldCode, fieldName}

var lookup = func() map[string]field {
	m := make(map[string]field)
	for f, names := range aliases {
		for _, n := range names {
			m[n] = f
		}
	}

	return m
}()

func normalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// colIndex maps each recognised field to its column.
type colIndex map[field]int

func matchHeader(row []string) (colIndex, bool) {
	cols := make(colIndex)

	for i, cell := range row {
		f, ok := lookup[normalizeHeader(cell)]
		if !ok {
			continue
		}

		if _, dup := cols[f]; !dup {
			cols[f] = i
		}
	}

	for _, f := range required {
		if _, ok := cols[f]; !ok {
			return nil, false
		}
	}

	return cols, true
}
