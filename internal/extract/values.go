package extract

import "github.com/cleared-dev/moneytrail/internal/model"

// Original header names consulted when a normalized field is blank.
const (
	HeaderSourceAccount = "Account No./ (Wallet /PG/PA) Id"
	HeaderAccountNo     = "Account No"
	HeaderAccountNumber = "Account Number"
	HeaderBank          = "Bank/FIs"
	HeaderIFSC          = "Ifsc Code"
	HeaderATMID         = "ATM ID"
)

var withdrawalAccountHeaders = []string{HeaderSourceAccount, HeaderAccountNo, HeaderAccountNumber}

var withdrawalReferenceHeaders = []string{
	"Transaction Id / UTR Number",
	"Transaction ID / UTR Number",
	"Transaction Id / UTR Number2",
	"UTR Number",
	"UTR",
}

// OriginalValue returns the verbatim cell text stored for header, trying the
// _orig_ namespace before _raw_. Missing, blank and placeholder values give
// model.NotAvailable.
func OriginalValue(row model.Row, header string) string {
	for _, key := range []string{model.OrigPrefix + header, model.RawPrefix + header} {
		s := model.CellText(row[key])
		if s != "" && !model.IsPlaceholder(s) {
			return s
		}
	}
	return model.NotAvailable
}

// fieldOr returns the normalized field, or the first usable original value
// among headers, or "".
func fieldOr(row model.Row, field string, headers ...string) string {
	if v := row.Text(field); v != "" && !model.IsPlaceholder(v) {
		return v
	}
	for _, h := range headers {
		if v := OriginalValue(row, h); v != model.NotAvailable {
			return v
		}
	}
	return ""
}
