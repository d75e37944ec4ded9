package search

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Trail is the money summary of one searched account.
type Trail struct {
	Account          string          `json:"account"`
	LayersInvolved   []int           `json:"layersInvolved"`
	TotalInflow      decimal.Decimal `json:"totalInflow"`
	TotalOutflow     decimal.Decimal `json:"totalOutflow"`
	TotalWithdrawals decimal.Decimal `json:"totalWithdrawals"`
	TransactionCount int             `json:"transactionCount"`
}

// Summarize totals search results. Incoming transfers place the account one
// layer below the sender; withdrawals count their linked layer when known.
func Summarize(r Results) Trail {
	trail := Trail{
		Account:          r.Query,
		TotalInflow:      decimal.Zero,
		TotalOutflow:     decimal.Zero,
		TotalWithdrawals: decimal.Zero,
		TransactionCount: len(r.Incoming) + len(r.Outgoing) + len(r.Withdrawals) + len(r.Other),
	}

	layers := make(map[int]bool)
	for _, t := range r.Incoming {
		trail.TotalInflow = trail.TotalInflow.Add(t.Amount)
		layers[t.Layer+1] = true
	}
	for _, t := range r.Outgoing {
		trail.TotalOutflow = trail.TotalOutflow.Add(t.Amount)
		layers[t.Layer] = true
	}
	for _, w := range r.Withdrawals {
		trail.TotalWithdrawals = trail.TotalWithdrawals.Add(w.Amount)
		if w.Linked() {
			layers[w.LinkedLayer] = true
		}
	}

	trail.LayersInvolved = make([]int, 0, len(layers))
	for l := range layers {
		trail.LayersInvolved = append(trail.LayersInvolved, l)
	}
	sort.Ints(trail.LayersInvolved)
	return trail
}
