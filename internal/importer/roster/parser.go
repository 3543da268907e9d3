// Package roster reads farmer roster spreadsheets exported as CSV.
package roster

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	enc "github.com/taka-daredemo/JICA/internal/encoding"
	"github.com/taka-daredemo/JICA/internal/farmer"
)

type Result struct {
	Farmers []farmer.CreateParams
	Charset string
}

// Parser auto-detects the file encoding, the delimiter and the header row.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) (*Result, error) {
	utf8r, charset, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx, ok := findHeader(rows)
	if !ok {
		return nil, errors.New("no roster header found: expected farmer code and name columns")
	}

	farmers, err := parseRows(cols, rows[headerIdx+1:], headerIdx)
	if err != nil {
		return nil, err
	}

	return &Result{Farmers: farmers, Charset: charset}, nil
}

// detectDelimiter picks ';' when the first non-blank line has more semicolons
// than commas.
func detectDelimiter(data []byte) rune {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.Count(line, ";") > strings.Count(line, ",") {
			return ';'
		}

		return ','
	}

	return ','
}

func findHeader(rows [][]string) (colIndex, int, bool) {
	for i, row := range rows {
		if cols, ok := matchHeader(row); ok {
			return cols, i, true
		}
	}

	return nil, 0, false
}

// parseRows converts data rows. headerIdx is the 0-based header position,
// used to report 1-based record numbers.
func parseRows(cols colIndex, rows [][]string, headerIdx int) ([]farmer.CreateParams, error) {
	var out []farmer.CreateParams

	for i, row := range rows {
		rowNum := headerIdx + i + 2

		if blank(row) {
			continue
		}

		params, err := parseRow(cols, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		out = append(out, params)
	}

	return out, nil
}

func parseRow(cols colIndex, row []string) (farmer.CreateParams, error) {
	get := func(f field) string {
		idx, ok := cols[f]
		if !ok {
			return ""
		}

		return cellValue(row, idx)
	}

	p := farmer.CreateParams{
		FarmerCode:   get(fieldCode),
		Name:         get(fieldName),
		Location:     get(fieldLocation),
		ContactPhone: get(fieldPhone),
		ContactEmail: get(fieldEmail),
		Status:       get(fieldStatus),
	}

	if p.FarmerCode == "" {
		return p, fmt.Errorf("missing farmer code")
	}

	if p.Name == "" {
		return p, fmt.Errorf("missing name")
	}

	if s := get(fieldYearGroup); s != "" {
		yg, err := strconv.Atoi(strings.TrimPrefix(strings.ToLower(s), "year "))
		if err != nil {
			return p, fmt.Errorf("invalid year group %q", s)
		}

		p.YearGroup = &yg
	}

	var err error

	if p.LandSizeHectares, err = optionalAmount(get(fieldLandSize)); err != nil {
		return p, fmt.Errorf("invalid land size: %w", err)
	}

	if p.BaselineIncome, err = optionalAmount(get(fieldBaseline)); err != nil {
		return p, fmt.Errorf("invalid baseline income: %w", err)
	}

	return p, nil
}

func optionalAmount(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}

	d, err := parseAmount(s)
	if err != nil {
		return nil, err
	}

	return &d, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
