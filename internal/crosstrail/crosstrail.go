package crosstrail

import (
	"sort"
	"strings"

	"github.com/cleared-dev/moneytrail/internal/accounts"
	"github.com/cleared-dev/moneytrail/internal/id"
	"github.com/cleared-dev/moneytrail/internal/model"
)

// AccountHeaders are the only columns read for cross-trail matching.
var AccountHeaders = []string{"Account No./ (Wallet /PG/PA) Id", "Account No"}

// Trail is the set of accounts found in one loaded file.
type Trail struct {
	ID       string
	Name     string
	Accounts *accounts.Index
}

// TrailRef identifies a trail containing a common account.
type TrailRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CommonAccount is an account present in more than one trail.
type CommonAccount struct {
	Account   string     `json:"account"` // longest original form
	Canonical string     `json:"canonical"`
	FoundIn   []TrailRef `json:"foundIn"`
	Count     int        `json:"count"`
}

// Result is the outcome of FindCommonAccounts.
type Result struct {
	Trails              []Trail         `json:"-"`
	CommonAccounts      []CommonAccount `json:"commonAccounts"`
	TotalUniqueAccounts int             `json:"totalUniqueAccounts"`
}

// ExtractAccounts collects the accounts in the account-number columns of
// every sheet. Matching on the header is case-insensitive after trimming.
// All-zero accounts are ignored.
func ExtractAccounts(name string, sheets []model.SheetData) Trail {
	trail := Trail{ID: id.NewOpaque(), Name: name, Accounts: accounts.NewIndex()}
	for _, sheet := range sheets {
		cols := accountColumns(sheet.OriginalColumns)
		for _, row := range sheet.Rows {
			for _, col := range cols {
				v := model.CellText(row[model.OrigPrefix+col])
				if accounts.Canonical(v) == "0" {
					continue
				}
				trail.Accounts.Add(v)
			}
		}
	}
	return trail
}

func accountColumns(headers []string) []string {
	var out []string
	for _, h := range headers {
		key := strings.ToLower(strings.TrimSpace(h))
		for _, target := range AccountHeaders {
			if key == strings.ToLower(target) {
				out = append(out, h)
				break
			}
		}
	}
	return out
}

// FindCommonAccounts reports the accounts that appear in more than one
// trail, most widespread first and then by account.
func FindCommonAccounts(trails []Trail) Result {
	res := Result{Trails: trails}
	if len(trails) < 2 {
		if len(trails) == 1 {
			res.TotalUniqueAccounts = trails[0].Accounts.Len()
		}
		return res
	}

	all := accounts.NewIndex()
	for _, trail := range trails {
		for _, entry := range trail.Accounts.All() {
			all.Add(entry.Display)
		}
	}

	for _, entry := range all.All() {
		ca := CommonAccount{Account: entry.Display, Canonical: entry.Canonical}
		for _, trail := range trails {
			if trail.Accounts.Exists(entry.Canonical) {
				ca.FoundIn = append(ca.FoundIn, TrailRef{ID: trail.ID, Name: trail.Name})
				ca.Count++
			}
		}
		if ca.Count > 1 {
			res.CommonAccounts = append(res.CommonAccounts, ca)
		}
	}
	sort.SliceStable(res.CommonAccounts, func(i, j int) bool {
		a, b := res.CommonAccounts[i], res.CommonAccounts[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Account < b.Account
	})
	res.TotalUniqueAccounts = all.Len()
	return res
}
