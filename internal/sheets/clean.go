package sheets

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const isoDate = "2006-01-02"

// dateLayouts are tried in order for textual dates.
var dateLayouts = []string{
	isoDate,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01/02/2006 15:04:05",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"02-Jan-2006",
	"02 Jan 2006 15:04:05",
}

// CleanAmount parses a currency value. Currency symbols, thousands separators,
// whitespace and parentheses are stripped; negatives become their absolute
// value and anything unparseable is zero.
func CleanAmount(v any) decimal.Decimal {
	switch t := v.(type) {
	case decimal.Decimal:
		return t.Abs()
	case float64:
		return decimal.NewFromFloat(t).Abs()
	case int:
		return decimal.NewFromInt(int64(t)).Abs()
	case int64:
		return decimal.NewFromInt(t).Abs()
	case string:
		s := strings.Map(func(r rune) rune {
			switch r {
			case '₹', '$', '€', '£', ',', '(', ')':
				return -1
			}
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, t)
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero
		}
		return d.Abs()
	default:
		return decimal.Zero
	}
}

// CleanDate renders a cell value as YYYY-MM-DD where possible. Numbers are
// spreadsheet serial dates; unparseable text is returned trimmed.
func CleanDate(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format(isoDate)
	case float64:
		return serialDate(t)
	case int:
		return serialDate(float64(t))
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return ""
		}
		for _, layout := range dateLayouts {
			if d, err := time.Parse(layout, s); err == nil {
				return d.Format(isoDate)
			}
		}
		return s
	default:
		return ""
	}
}

func serialDate(f float64) string {
	d, err := excelize.ExcelDateToTime(f, false)
	if err != nil {
		return decimal.NewFromFloat(f).String()
	}
	return d.Format(isoDate)
}

// ParseLayer reads the leading integer of a layer cell. Missing, unparseable
// or out-of-range values, and anything below 1, default to 1.
func ParseLayer(v any) int {
	var s string
	switch t := v.(type) {
	case int:
		s = decimal.NewFromInt(int64(t)).String()
	case float64:
		s = decimal.NewFromFloat(t).String()
	case string:
		s = strings.TrimSpace(t)
	default:
		return 1
	}

	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n < 1 {
		return 1
	}
	return n
}
