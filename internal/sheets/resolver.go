package sheets

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/cleared-dev/moneytrail/internal/model"
)

type columnMapping struct {
	field    string
	keywords []string
}

// columnMappings is tested in order; the first field with a matching keyword
// wins.
var columnMappings = []columnMapping{
	{model.FieldAccount, []string{"account", "account_no", "account_number", "acc_no", "a/c", "a/c no", "account no", "sender account", "receiver account", "from account", "to account", "acct"}},
	{model.FieldAmount, []string{"amount", "amt", "transaction_amount", "txn_amount", "value", "transfer_amount", "credited", "debited", "credit", "debit", "disputed amount", "disputed_amount", "withdrawal amount", "withdrawal_amount"}},
	{model.FieldDate, []string{"date", "transaction_date", "txn_date", "value_date", "posting_date", "trans_date", "dt"}},
	{model.FieldReference, []string{"utr", "utr_no", "utr_number", "reference", "ref_no", "reference_no", "transaction_id", "txn_id", "trans_id", "rrn"}},
	{model.FieldBank, []string{"bank", "bank_name", "beneficiary_bank", "remitter_bank", "sender_bank", "receiver_bank", "bank/fis"}},
	{model.FieldIFSC, []string{"ifsc", "ifsc_code", "ifsc code", "bank_code"}},
	{model.FieldLayer, []string{"layer", "level", "tier", "hop"}},
	{model.FieldFromAccount, []string{"from_account", "sender", "sender_account", "remitter", "remitter_account", "source", "from", "account no./ (wallet /pg/pa) id"}},
	{model.FieldToAccount, []string{"to_account", "receiver", "receiver_account", "beneficiary", "beneficiary_account", "destination", "to", "account no"}},
	{model.FieldTerminalID, []string{"atm id", "atm_id", "terminal id", "terminal_id"}},
}

type categoryPatterns struct {
	category model.Category
	patterns []*regexp.Regexp
}

// sheetCategories is tested in declaration order. Later entries are broad
// fallbacks, so the order matters more than pattern specificity.
var sheetCategories = []categoryPatterns{
	{model.CategoryTransfer, compile(`money\s*transfer`, `transfer\s*to`, `fund\s*transfer`)},
	{model.CategoryATM, compile(`withdrawal\s*through\s*atm`, `atm\s*withdrawal`, `atm`)},
	{model.CategoryPOS, compile(`withdrawal\s*through\s*pos`, `pos\s*withdrawal`, `pos`)},
	{model.CategoryCheque, compile(`cash\s*withdrawal\s*through\s*cheque`, `cheque\s*withdrawal`, `cheque`, `check`)},
	{model.CategoryAEPS, compile(`aeps`, `aadhaar`, `micro\s*atm`)},
	{model.CategoryHold, compile(`transaction\s*put\s*on\s*hold`, `hold`, `frozen`, `blocked`, `lien`)},
	{model.CategoryOther, compile(`others?\s*less\s*th[ae]n`, `other`, `misc`)},
}

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(`(?i)` + p)
	}
	return out
}

// NormalizeColumnName maps a free-text header onto a semantic field name.
// Headers that match no field are returned in their cleaned form.
func NormalizeColumnName(header string) string {
	lower := strings.ToLower(norm.NFKC.String(header))
	cleaned := cleanKey(strings.TrimSpace(lower))

	for _, m := range columnMappings {
		for _, kw := range m.keywords {
			if strings.Contains(cleaned, cleanKey(kw)) || strings.Contains(lower, kw) {
				return m.field
			}
		}
	}
	return cleaned
}

// ClassifySheet returns the category of a sheet from its name.
func ClassifySheet(name string) model.Category {
	folded := norm.NFKC.String(name)
	for _, c := range sheetCategories {
		for _, p := range c.patterns {
			if p.MatchString(folded) {
				return c.category
			}
		}
	}
	return model.CategoryUnknown
}

// cleanKey replaces every character outside [a-z0-9] with an underscore.
func cleanKey(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, s)
}
