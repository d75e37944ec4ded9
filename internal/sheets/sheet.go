package sheets

import (
	"strings"

	"github.com/cleared-dev/moneytrail/internal/model"
)

// Record is one worksheet row keyed by original header. Values are strings,
// float64 serials, time.Time or nil.
type Record map[string]any

// BuildSheet classifies a worksheet and processes its records into rows
// carrying normalized fields plus the _orig_ and _raw_ namespaces.
func BuildSheet(name string, headers []string, records []Record) model.SheetData {
	var original []string
	fields := make([]string, 0, len(headers))
	seen := make(map[string]bool)
	var columns []string
	for _, h := range headers {
		if strings.TrimSpace(h) == "" {
			continue
		}
		original = append(original, h)
		f := NormalizeColumnName(h)
		fields = append(fields, f)
		if !seen[f] {
			seen[f] = true
			columns = append(columns, f)
		}
	}

	rows := make([]model.Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, processRecord(rec, original, fields))
	}

	return model.SheetData{
		Name:            name,
		Category:        ClassifySheet(name),
		Rows:            rows,
		Columns:         columns,
		OriginalColumns: original,
	}
}

func processRecord(rec Record, headers, fields []string) model.Row {
	row := make(model.Row, len(headers)*3)
	for _, h := range headers {
		row[model.OrigPrefix+h] = rec[h]
	}

	// Later headers overwrite earlier ones that resolve to the same field.
	for i, h := range headers {
		v := rec[h]
		switch fields[i] {
		case model.FieldAmount:
			row[fields[i]] = CleanAmount(v)
		case model.FieldDate:
			row[fields[i]] = CleanDate(v)
		case model.FieldLayer:
			row[fields[i]] = ParseLayer(v)
		default:
			row[fields[i]] = model.CellText(v)
		}
		row[model.RawPrefix+h] = v
	}
	return row
}
