package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies a worksheet by the kind of transactions it holds.
type Category string

const (
	CategoryTransfer Category = "transfer"
	CategoryATM      Category = "atm"
	CategoryPOS      Category = "pos"
	CategoryCheque   Category = "cheque"
	CategoryAEPS     Category = "aeps"
	CategoryHold     Category = "hold"
	CategoryOther    Category = "other"
	CategoryUnknown  Category = "unknown"
)

// WithdrawalCategories lists the terminal cash-out categories in extraction order.
var WithdrawalCategories = []Category{CategoryATM, CategoryPOS, CategoryCheque}

// IsWithdrawal reports whether c is a terminal cash-out category.
func (c Category) IsWithdrawal() bool {
	return c == CategoryATM || c == CategoryPOS || c == CategoryCheque
}

// IsOther reports whether c belongs to the non-transfer, non-withdrawal sheets.
func (c Category) IsOther() bool {
	return c == CategoryAEPS || c == CategoryHold || c == CategoryOther
}

// Auxiliary row namespaces. Both are keyed by the original column header.
const (
	OrigPrefix = "_orig_" // verbatim cell text
	RawPrefix  = "_raw_"  // value before field normalization
)

// Field names produced by the column resolver.
const (
	FieldAccount     = "account"
	FieldAmount      = "amount"
	FieldDate        = "date"
	FieldReference   = "utr"
	FieldBank        = "bank"
	FieldIFSC        = "ifsc"
	FieldLayer       = "layer"
	FieldFromAccount = "fromAccount"
	FieldToAccount   = "toAccount"
	FieldTerminalID  = "terminalId"
)

// Row is one processed sheet row keyed by field name.
type Row map[string]any

// Text returns the trimmed string form of a field, or "" when absent.
func (r Row) Text(field string) string {
	return CellText(r[field])
}

// Amount returns the amount field. Unparseable values are zero.
func (r Row) Amount() decimal.Decimal {
	switch v := r[FieldAmount].(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// Layer returns the layer field and whether it held an integer.
func (r Row) Layer() (int, bool) {
	switch v := r[FieldLayer].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// CellText renders a cell value as trimmed text. Nil is "".
func CellText(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case decimal.Decimal:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		return t.Format("2006-01-02")
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// SheetData is one parsed worksheet. It is not modified after parsing.
type SheetData struct {
	Name            string
	Category        Category
	Rows            []Row
	Columns         []string // normalized field names, first-seen order
	OriginalColumns []string // raw header text, sheet order
}

// FirstOfCategory returns the first sheet classified as c.
func FirstOfCategory(sheets []SheetData, c Category) (*SheetData, bool) {
	for i := range sheets {
		if sheets[i].Category == c {
			return &sheets[i], true
		}
	}
	return nil, false
}
