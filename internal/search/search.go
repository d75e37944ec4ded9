package search

import (
	"strings"

	"github.com/cleared-dev/moneytrail/internal/accounts"
	"github.com/cleared-dev/moneytrail/internal/model"
)

// Results holds every record mentioning a queried account, in input order.
type Results struct {
	Query       string                    `json:"query"`
	Incoming    []*model.MoneyTransfer    `json:"incoming"`
	Outgoing    []*model.MoneyTransfer    `json:"outgoing"`
	Withdrawals []*model.Withdrawal       `json:"withdrawals"`
	Other       []*model.OtherTransaction `json:"other"`
}

// Empty reports whether nothing matched.
func (r Results) Empty() bool {
	return len(r.Incoming)+len(r.Outgoing)+len(r.Withdrawals)+len(r.Other) == 0
}

// SearchAccount matches query as a case-insensitive substring against
// transfer destinations (incoming), transfer sources (outgoing), withdrawal
// accounts and other-sheet accounts. A blank query matches nothing.
func SearchAccount(query string, transfers []*model.MoneyTransfer, withdrawals []*model.Withdrawal, others []*model.OtherTransaction) Results {
	term := strings.ToLower(strings.TrimSpace(query))
	res := Results{Query: strings.TrimSpace(query)}
	if term == "" {
		return res
	}

	contains := func(s string) bool {
		return strings.Contains(strings.ToLower(s), term)
	}

	for _, t := range transfers {
		if contains(t.ToAccount) {
			res.Incoming = append(res.Incoming, t)
		}
	}
	for _, t := range transfers {
		if contains(t.FromAccount) {
			res.Outgoing = append(res.Outgoing, t)
		}
	}
	for _, w := range withdrawals {
		if contains(w.Account) {
			res.Withdrawals = append(res.Withdrawals, w)
		}
	}
	for _, o := range others {
		if contains(o.Account) || contains(o.RawData.Text(model.FieldFromAccount)) {
			res.Other = append(res.Other, o)
		}
	}
	return res
}

// GraphSearch resolves query to a node id. It tries, in order: canonical
// account equality, case-insensitive account substring, a reference carried
// by a node or its transactions, and finally an edge reference (resolving to
// the edge's target).
func GraphSearch(query string, g *model.Graph) (string, bool) {
	q := strings.TrimSpace(query)
	if q == "" || g == nil {
		return "", false
	}

	if canonical := accounts.Canonical(q); canonical != "" {
		for _, n := range g.Nodes {
			if accounts.Canonical(n.Account) == canonical {
				return n.ID, true
			}
		}
	}

	lower := strings.ToLower(q)
	for _, n := range g.Nodes {
		if strings.Contains(strings.ToLower(n.Account), lower) {
			return n.ID, true
		}
	}

	if model.IsPlaceholder(q) {
		return "", false
	}

	for _, n := range g.Nodes {
		if nodeCarriesReference(n, q) {
			return n.ID, true
		}
	}
	for _, e := range g.Edges {
		if strings.EqualFold(e.Reference, q) {
			return e.Target, true
		}
	}
	return "", false
}

func nodeCarriesReference(n *model.GraphNode, ref string) bool {
	if strings.EqualFold(n.ReferenceSent, ref) || strings.EqualFold(n.ReferenceReceived, ref) {
		return true
	}
	for _, txn := range n.Transactions {
		if strings.EqualFold(txn.Base().Reference, ref) {
			return true
		}
		if t, ok := txn.(*model.MoneyTransfer); ok {
			if strings.EqualFold(t.ReferenceSent, ref) || strings.EqualFold(t.ReferenceReceived, ref) {
				return true
			}
		}
	}
	return false
}
