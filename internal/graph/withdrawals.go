package graph

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/moneytrail/internal/accounts"
	"github.com/cleared-dev/moneytrail/internal/id"
	"github.com/cleared-dev/moneytrail/internal/model"
)

// linkWithdrawals attaches each withdrawal to the account node that funded
// it. Withdrawals that cannot be placed are reported and left out.
func (st *build) linkWithdrawals(withdrawals []*model.Withdrawal) {
	byCanonical := make(map[string]*model.GraphNode)
	for _, n := range st.nodes.list() {
		if n.Kind != model.NodeAccount || n.Account == "" {
			continue
		}
		if c := accounts.Canonical(n.Account); c != "" {
			byCanonical[c] = n
		}
	}

	for _, w := range withdrawals {
		w.LinkedLayer = 0
		w.LinkedReference = ""
		st.linkWithdrawal(w, byCanonical)
	}
}

func (st *build) linkWithdrawal(w *model.Withdrawal, byCanonical map[string]*model.GraphNode) {
	account := strings.TrimSpace(w.Account)
	ref := strings.TrimSpace(w.Reference)
	issue := Issue{WithdrawalID: w.ID, Account: account, Reference: ref}

	canonical := accounts.Canonical(account)
	if canonical == "" {
		issue.Code = IssueInvalidAccount
		st.drop(issue)
		return
	}

	matched, ok := byCanonical[canonical]
	if !ok {
		matched = st.findAccount(canonical, 0)
	}
	if matched == nil {
		issue.Code = IssueAccountNotInGraph
		st.drop(issue)
		return
	}

	layer, ok := st.refs.Layer(ref)
	if !ok {
		layer = matched.Layer
	}
	issue.Layer = layer
	if layer > st.params.MaxLayer {
		issue.Code = IssueLayerOutOfWindow
		issue.Detail = fmt.Sprintf("layer %d exceeds max layer %d", layer, st.params.MaxLayer)
		st.drop(issue)
		return
	}

	funding := matched
	if n := st.findAccount(canonical, layer); n != nil {
		funding = n
	} else if matched.Layer != layer {
		mismatch := issue
		mismatch.Code = IssueLayerMismatch
		mismatch.Detail = fmt.Sprintf("funding node %s is at layer %d", matched.ID, matched.Layer)
		st.report.addIssue(mismatch)
		st.log.Warn().Str("withdrawal", w.ID).Str("node", matched.ID).Int("layer", layer).Msg("withdrawal layer mismatch")
	}

	w.LinkedLayer = layer
	w.LinkedReference = ref

	nodeID := id.FormatWithdrawalNodeID(string(w.Category), canonical, w.ID)
	st.nodes.add(&model.GraphNode{
		ID:                 nodeID,
		Account:            account,
		Layer:              layer,
		Kind:               model.NodeWithdrawal,
		WithdrawalCategory: w.Category,
		TotalInflow:        w.Amount,
		TotalOutflow:       decimal.Zero,
		Transactions:       []model.Transaction{w},
		Bank:               w.Bank,
		IFSC:               w.IFSC,
	})

	matchedRef := referenceMatched(funding, ref)
	st.edges = append(st.edges, &model.GraphEdge{
		ID:               st.seq.Next(),
		Source:           funding.ID,
		Target:           nodeID,
		Amount:           w.Amount,
		Reference:        ref,
		Date:             w.Date,
		Kind:             model.EdgeWithdrawal,
		ReferenceMatched: matchedRef,
	})
	st.report.WithdrawalsLinked++

	if matchedRef {
		st.report.ReferencesMatched++
		return
	}
	unmatched := issue
	unmatched.Code = IssueReferenceUnmatched
	if ref == "" {
		unmatched.Detail = "withdrawal has no reference"
	} else {
		unmatched.Detail = fmt.Sprintf("no transfer on %s carries the reference", funding.ID)
	}
	st.report.addIssue(unmatched)
	st.log.Debug().Str("withdrawal", w.ID).Str("node", funding.ID).Str("reference", ref).Msg("withdrawal linked without reference match")
}

// findAccount scans account nodes for canonical. A layer of 0 matches any
// layer.
func (st *build) findAccount(canonical string, layer int) *model.GraphNode {
	for _, n := range st.nodes.list() {
		if n.Kind != model.NodeAccount {
			continue
		}
		if layer != 0 && n.Layer != layer {
			continue
		}
		if accounts.Canonical(n.Account) == canonical {
			return n
		}
	}
	return nil
}

func (st *build) drop(issue Issue) {
	st.report.addIssue(issue)
	st.log.Warn().
		Str("code", string(issue.Code)).
		Str("withdrawal", issue.WithdrawalID).
		Str("account", issue.Account).
		Str("reference", issue.Reference).
		Int("layer", issue.Layer).
		Msg("withdrawal not linked")
}

// referenceMatched reports whether ref appears on the funding node or on any
// transfer it absorbed.
func referenceMatched(n *model.GraphNode, ref string) bool {
	if ref == "" {
		return false
	}
	if n.ReferenceSent == ref {
		return true
	}
	for _, txn := range n.Transactions {
		t, ok := txn.(*model.MoneyTransfer)
		if !ok {
			continue
		}
		if t.ReferenceSent == ref || t.ReferenceReceived == ref {
			return true
		}
	}
	return false
}
