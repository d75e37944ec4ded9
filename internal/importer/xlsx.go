package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/moneytrail/internal/model"
	"github.com/cleared-dev/moneytrail/internal/sheets"
)

// XLSXParser reads every worksheet of an Excel workbook. The first row of a
// sheet is its header row.
type XLSXParser struct{}

// Format returns the parser name.
func (p *XLSXParser) Format() string { return "xlsx" }

// Parse reads the workbook. Cells keep their formatted text, so zero-padded
// account numbers survive; date columns holding a spreadsheet serial are read
// as the raw number. Sheets without a header row are skipped.
func (p *XLSXParser) Parse(name string, r io.Reader) ([]model.SheetData, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	var out []model.SheetData
	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, fmt.Errorf("reading sheet %q: %w", sheetName, err)
		}
		if len(rows) == 0 {
			continue
		}
		raw, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("reading raw values of sheet %q: %w", sheetName, err)
		}

		headers := uniqueHeaders(rows[0])
		dateCols := make(map[int]bool)
		for j, h := range headers {
			if sheets.NormalizeColumnName(h) == model.FieldDate {
				dateCols[j] = true
			}
		}

		var records []sheets.Record
		for i := 1; i < len(rows); i++ {
			if blankRow(rows[i]) {
				continue
			}
			rec := make(sheets.Record, len(headers))
			for j, h := range headers {
				v := cell(rows[i], j)
				if dateCols[j] && i < len(raw) {
					if serial, err := strconv.ParseFloat(cell(raw[i], j), 64); err == nil {
						rec[h] = serial
						continue
					}
				}
				rec[h] = v
			}
			records = append(records, rec)
		}
		out = append(out, sheets.BuildSheet(sheetName, headers, records))
	}
	return out, nil
}

func cell(row []string, j int) string {
	if j < len(row) {
		return row[j]
	}
	return ""
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
