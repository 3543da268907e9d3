// Package export flattens domain records into tabular datasets for CSV and
// JSON download.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/taka-daredemo/JICA/internal/apperr"
)

type Entity string

const (
	EntityTasks    Entity = "tasks"
	EntityFarmers  Entity = "farmers"
	EntityPayments Entity = "payments"
	EntityTraining Entity = "training"
)

// ParseEntity defaults to tasks when s is empty.
func ParseEntity(s string) (Entity, error) {
	switch e := Entity(s); e {
	case "":
		return EntityTasks, nil
	case EntityTasks, EntityFarmers, EntityPayments, EntityTraining:
		return e, nil
	default:
		return "", apperr.Validation("Invalid entity type: " + s)
	}
}

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat defaults to csv when s is empty.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", apperr.Validation("Invalid format: " + s)
	}
}

// Filename is the file name of an export in format f taken on day now.
func Filename(e Entity, f Format, now time.Time) string {
	return fmt.Sprintf("%s_export_%s.%s", e, now.Format(time.DateOnly), f)
}

// Row is one exported record. Values line up with Dataset.Columns.
type Row []any

// Dataset is an ordered table. Column order is stable across CSV and JSON.
type Dataset struct {
	Entity  Entity
	Columns []string
	Rows    []Row
}

func (d *Dataset) Len() int {
	return len(d.Rows)
}

// WriteCSV writes a header row followed by every record. Fields containing
// commas, quotes or newlines are quoted.
func (d *Dataset) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(d.Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	record := make([]string, len(d.Columns))

	for _, row := range d.Rows {
		for i := range record {
			record[i] = cell(row[i])
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}

func cell(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// MarshalJSON encodes {entity, count, data} with each record's keys in column
// order.
func (d *Dataset) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`{"entity":`)

	if err := writeJSON(&buf, d.Entity); err != nil {
		return nil, err
	}

	fmt.Fprintf(&buf, `,"count":%d,"data":[`, len(d.Rows))

	for i, row := range d.Rows {
		if i > 0 {
			buf.WriteByte(',')
		}

		buf.WriteByte('{')

		for j, col := range d.Columns {
			if j > 0 {
				buf.WriteByte(',')
			}

			if err := writeJSON(&buf, col); err != nil {
				return nil, err
			}

			buf.WriteByte(':')

			if err := writeJSON(&buf, row[j]); err != nil {
				return nil, err
			}
		}

		buf.WriteByte('}')
	}

	buf.WriteString("]}")

	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %v: %w", v, err)
	}

	buf.Write(b)

	return nil
}
