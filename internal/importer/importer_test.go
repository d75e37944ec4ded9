package importer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/moneytrail/internal/model"
)

// writeWorkbook saves a workbook with a transfer sheet, an ATM sheet and an
// empty sheet.
func writeWorkbook(t *testing.T, dir string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "Money Transfer to"))
	require.NoError(t, f.SetSheetRow("Money Transfer to", "A1", &[]interface{}{
		"Layer", "Account No./ (Wallet /PG/PA) Id", "Account No", "Amount",
		"Transaction ID / UTR Number2", "Transaction Id / UTR Number", "Transaction Date",
	}))
	require.NoError(t, f.SetSheetRow("Money Transfer to", "A2", &[]interface{}{
		1, "00123", "0456", 1500, "S1", "L1", 45000,
	}))
	require.NoError(t, f.SetSheetRow("Money Transfer to", "A3", &[]interface{}{
		2, "0456", "789", 700, "S2", "S1", "2024-01-16",
	}))

	_, err := f.NewSheet("ATM Withdrawal")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("ATM Withdrawal", "A1", &[]interface{}{"Account No", "Withdrawal Amount", "ATM ID"}))
	require.NoError(t, f.SetSheetRow("ATM Withdrawal", "A2", &[]interface{}{"789", 200, "T-01"}))

	_, err = f.NewSheet("Notes")
	require.NoError(t, err)

	path := filepath.Join(dir, "case.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestXLSXParser_Parse(t *testing.T) {
	path := writeWorkbook(t, t.TempDir())

	sheets, err := DefaultRegistry().ReadFile(path)
	require.NoError(t, err)
	require.Len(t, sheets, 2, "empty sheets are skipped")

	transfer := sheets[0]
	assert.Equal(t, "Money Transfer to", transfer.Name)
	assert.Equal(t, model.CategoryTransfer, transfer.Category)
	require.Len(t, transfer.Rows, 2)
	assert.Contains(t, transfer.OriginalColumns, "Transaction ID / UTR Number2")

	row := transfer.Rows[0]
	assert.Equal(t, "00123", row[model.OrigPrefix+"Account No./ (Wallet /PG/PA) Id"], "zero padding survives")
	assert.Equal(t, "2023-03-15", row.Text(model.FieldDate), "serial dates are converted")
	assert.True(t, decimal.NewFromInt(1500).Equal(row.Amount()))
	layer, ok := row.Layer()
	require.True(t, ok)
	assert.Equal(t, 1, layer)

	assert.Equal(t, "2024-01-16", transfer.Rows[1].Text(model.FieldDate))

	atm := sheets[1]
	assert.Equal(t, model.CategoryATM, atm.Category)
	require.Len(t, atm.Rows, 1)
	assert.Equal(t, "T-01", atm.Rows[0].Text(model.FieldTerminalID))
}

func TestXLSXParser_DuplicateHeaders(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Amount", "Remarks", "Amount", "Amount"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{10, "x", 20, 30}))
	path := filepath.Join(t.TempDir(), "dup.xlsx")
	require.NoError(t, f.SaveAs(path))

	sheets, err := DefaultRegistry().ReadFile(path)
	require.NoError(t, err)
	require.Len(t, sheets, 1)

	assert.Equal(t, []string{"Amount", "Remarks", "Amount_1", "Amount_2"}, sheets[0].OriginalColumns)
	row := sheets[0].Rows[0]
	assert.Equal(t, "10", row[model.OrigPrefix+"Amount"])
	assert.Equal(t, "20", row[model.OrigPrefix+"Amount_1"])
	assert.Equal(t, "30", row[model.OrigPrefix+"Amount_2"])
}

func TestUniqueHeaders(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"distinct", []string{"A", "B"}, []string{"A", "B"}},
		{"repeated", []string{"A", "A", "A"}, []string{"A", "A_1", "A_2"}},
		{"suffix already used", []string{"A", "A_1", "A"}, []string{"A", "A_1", "A_2"}},
		{"blank left alone", []string{"", "A", "", "A"}, []string{"", "A", "", "A_1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, uniqueHeaders(tt.in))
		})
	}
}

func TestXLSXParser_InvalidWorkbook(t *testing.T) {
	p := &XLSXParser{}
	_, err := p.Parse("bad.xlsx", strings.NewReader("not a workbook"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "opening workbook")
}

func TestXLSXParser_Format(t *testing.T) {
	p := &XLSXParser{}
	assert.Equal(t, "xlsx", p.Format())
}

func TestCSVParser_Parse(t *testing.T) {
	sheets, err := DefaultRegistry().ReadFile(filepath.Join("testdata", "Money Transfer.csv"))
	require.NoError(t, err)
	require.Len(t, sheets, 1)

	sheet := sheets[0]
	assert.Equal(t, "Money Transfer", sheet.Name)
	assert.Equal(t, model.CategoryTransfer, sheet.Category)
	require.Len(t, sheet.Rows, 3, "blank rows are skipped")
	assert.Len(t, sheet.OriginalColumns, 9)

	first := sheet.Rows[0]
	assert.Equal(t, "0011", first[model.OrigPrefix+"Account No./ (Wallet /PG/PA) Id"])
	assert.Equal(t, "1000", first.Amount().String())
	assert.Equal(t, "2024-01-15", first.Text(model.FieldDate))

	ragged := sheet.Rows[2]
	assert.Equal(t, "L3", ragged[model.OrigPrefix+"Transaction Id / UTR Number"])
	assert.Equal(t, "", ragged[model.OrigPrefix+"Bank/FIs"])
}

func TestCSVParser_StripsBOM(t *testing.T) {
	p := &CSVParser{}
	sheets, err := p.Parse("x.csv", strings.NewReader("\ufeffAmount,Account No\n5,42\n"))
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	assert.Equal(t, []string{"Amount", "Account No"}, sheets[0].OriginalColumns)
}

func TestCSVParser_DuplicateHeaders(t *testing.T) {
	p := &CSVParser{}
	sheets, err := p.Parse("Money Transfer.csv", strings.NewReader(
		"Account No,Transaction Id / UTR Number,Transaction Id / UTR Number\n0011,S1,L1\n"))
	require.NoError(t, err)
	require.Len(t, sheets, 1)

	sheet := sheets[0]
	assert.Equal(t, []string{"Account No", "Transaction Id / UTR Number", "Transaction Id / UTR Number_1"}, sheet.OriginalColumns)
	row := sheet.Rows[0]
	assert.Equal(t, "S1", row[model.OrigPrefix+"Transaction Id / UTR Number"])
	assert.Equal(t, "L1", row[model.OrigPrefix+"Transaction Id / UTR Number_1"])
}

func TestCSVParser_Empty(t *testing.T) {
	p := &CSVParser{}
	sheets, err := p.Parse("empty.csv", strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, sheets)
}

func TestCSVParser_Format(t *testing.T) {
	p := &CSVParser{}
	assert.Equal(t, "csv", p.Format())
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("nonexistent"))
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := NewRegistry()
	r.Register(&CSVParser{})
	assert.NotNil(t, r.Get("CSV"))
	assert.NotNil(t, r.Get("Csv"))
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&CSVParser{})
	assert.Panics(t, func() { r.Register(&CSVParser{}) })
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("xlsx"))
	assert.NotNil(t, r.Get("csv"))
}

func TestReadFile_UnsupportedFormat(t *testing.T) {
	_, err := DefaultRegistry().ReadFile("statement.pdf")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := DefaultRegistry().ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "opening")
}

func TestScan_FindsStatements(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.XLSX"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("data"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested.csv"), 0o755))

	files, err := DefaultRegistry().Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.csv", files[0].Name)
	assert.Equal(t, "b.XLSX", files[1].Name)
	assert.Equal(t, int64(4), files[0].Size)
}

func TestScan_MissingDir(t *testing.T) {
	files, err := DefaultRegistry().Scan(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestFileSource_Load(t *testing.T) {
	path := writeWorkbook(t, t.TempDir())
	src := NewFileSource()

	sheets, err := src.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, sheets, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.Load(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}
