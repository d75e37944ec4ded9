package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cleared-dev/moneytrail/internal/model"
	"github.com/cleared-dev/moneytrail/internal/sheets"
)

// CSVParser reads a single-sheet CSV export. The sheet is named after the
// file, so "Money Transfer.csv" is classified as a transfer sheet.
type CSVParser struct{}

// Format returns the parser name.
func (p *CSVParser) Format() string { return "csv" }

// Parse reads the CSV. Rows may be ragged; missing cells are blank.
func (p *CSVParser) Parse(name string, r io.Reader) ([]model.SheetData, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	if len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	headers := uniqueHeaders(rows[0])

	var records []sheets.Record
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		rec := make(sheets.Record, len(headers))
		for j, h := range headers {
			rec[h] = cell(row, j)
		}
		records = append(records, rec)
	}

	sheetName := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	return []model.SheetData{sheets.BuildSheet(sheetName, headers, records)}, nil
}
