package graph

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/moneytrail/internal/accounts"
	"github.com/cleared-dev/moneytrail/internal/id"
	"github.com/cleared-dev/moneytrail/internal/model"
)

// Builder constructs money-trail graphs from extracted transactions.
type Builder struct {
	log zerolog.Logger
}

// NewBuilder creates a Builder that logs to log.
func NewBuilder(log zerolog.Logger) *Builder {
	return &Builder{log: log}
}

// build is the state of one Build call.
type build struct {
	log    zerolog.Logger
	params Params
	refs   model.ReferenceIndex
	nodes  *nodeSet
	edges  []*model.GraphEdge
	seq    id.Sequence
	report *Report
}

// Build links transfers into layered account nodes, merges duplicate
// identities and attaches withdrawals as terminal nodes. Every call starts
// from scratch; the only side effect is resetting and setting LinkedLayer and
// LinkedReference on the withdrawals.
func (b *Builder) Build(transfers []*model.MoneyTransfer, withdrawals []*model.Withdrawal, refs model.ReferenceIndex, params Params) (*model.Graph, *Report, error) {
	if err := params.Validate(); err != nil {
		return nil, nil, err
	}

	st := &build{
		log:    b.log,
		params: params,
		refs:   refs,
		nodes:  newNodeSet(),
		report: &Report{},
	}
	st.addTransfers(transfers)
	st.report.NodesMerged = mergeDuplicates(st.nodes, st.edges, b.log)
	st.linkWithdrawals(withdrawals)

	g := &model.Graph{Nodes: st.nodes.list(), Edges: st.edges}
	if g.Edges == nil {
		g.Edges = []*model.GraphEdge{}
	}

	b.log.Info().
		Int("nodes", len(g.Nodes)).
		Int("edges", len(g.Edges)).
		Int("max_layer", params.MaxLayer).
		Str("min_amount", params.MinAmount.String()).
		Int("withdrawals_linked", st.report.WithdrawalsLinked).
		Int("withdrawals_dropped", st.report.WithdrawalsDropped).
		Msg("graph built")
	return g, st.report, nil
}

// addTransfers creates account nodes and transfer edges.
func (st *build) addTransfers(transfers []*model.MoneyTransfer) {
	for _, t := range transfers {
		st.report.TransfersConsidered++
		if !st.params.admits(t.Layer, t.Amount) {
			st.report.TransfersFiltered++
			continue
		}

		from := accounts.Canonical(t.FromAccount)
		to := accounts.Canonical(t.ToAccount)
		if from == "" || to == "" {
			st.report.TransfersInvalid++
			continue
		}

		src := st.accountNode(id.FormatNodeID(from, t.Layer), t.FromAccount, t.Layer, t, false)
		src.TotalOutflow = src.TotalOutflow.Add(t.Amount)
		src.Transactions = append(src.Transactions, t)

		targetLayer := t.Layer + 1
		if targetLayer > st.params.MaxLayer {
			st.report.FlowsLeavingWindow++
			continue
		}

		tgt := st.accountNode(id.FormatNodeID(to, targetLayer), t.ToAccount, targetLayer, t, true)
		tgt.TotalInflow = tgt.TotalInflow.Add(t.Amount)
		tgt.Transactions = append(tgt.Transactions, t)

		st.edges = append(st.edges, &model.GraphEdge{
			ID:              st.seq.Next(),
			Source:          src.ID,
			Target:          tgt.ID,
			Amount:          t.Amount,
			Reference:       t.ReferenceSent,
			Date:            t.Date,
			Kind:            model.EdgeTransfer,
			LinkageVerified: t.LinkageVerified,
			Bank:            t.Bank,
			IFSC:            t.IFSC,
		})
	}
}

// accountNode returns the node for nodeID, creating it from t when absent,
// and upgrades its display account when account is more complete.
func (st *build) accountNode(nodeID, account string, layer int, t *model.MoneyTransfer, target bool) *model.GraphNode {
	n, ok := st.nodes.get(nodeID)
	if !ok {
		n = &model.GraphNode{
			ID:                nodeID,
			Account:           account,
			Layer:             layer,
			Kind:              model.NodeAccount,
			TotalInflow:       decimal.Zero,
			TotalOutflow:      decimal.Zero,
			Transactions:      []model.Transaction{},
			Bank:              t.Bank,
			IFSC:              t.IFSC,
			ReferenceSent:     t.ReferenceSent,
			ReferenceReceived: t.ReferenceReceived,
		}
		if target {
			n.LinkageVerified = t.LinkageVerified
		}
		st.nodes.add(n)
		return n
	}
	if accounts.MoreComplete(account, n.Account) {
		n.Account = account
	}
	return n
}

// mergeDuplicates folds account nodes that share a canonical account and
// layer into the first one seen, rewriting edge endpoints. It returns the
// number of nodes merged away.
func mergeDuplicates(nodes *nodeSet, edges []*model.GraphEdge, log zerolog.Logger) int {
	survivors := make(map[string]*model.GraphNode)
	merged := 0
	for _, n := range nodes.list() {
		if n.Kind != model.NodeAccount {
			continue
		}
		canonical := accounts.Canonical(n.Account)
		if canonical == "" {
			continue
		}
		key := id.FormatNodeID(canonical, n.Layer)
		keep, ok := survivors[key]
		if !ok {
			survivors[key] = n
			continue
		}

		keep.TotalInflow = keep.TotalInflow.Add(n.TotalInflow)
		keep.TotalOutflow = keep.TotalOutflow.Add(n.TotalOutflow)
		keep.Transactions = append(keep.Transactions, n.Transactions...)
		if accounts.MoreComplete(n.Account, keep.Account) {
			keep.Account = n.Account
		}
		if keep.Bank == "" {
			keep.Bank = n.Bank
		}
		if keep.IFSC == "" {
			keep.IFSC = n.IFSC
		}

		for _, e := range edges {
			if e.Source == n.ID {
				e.Source = keep.ID
			}
			if e.Target == n.ID {
				e.Target = keep.ID
			}
		}
		nodes.remove(n.ID)
		merged++
		log.Debug().Str("survivor", keep.ID).Str("merged", n.ID).Msg("merged duplicate account node")
	}
	return merged
}
