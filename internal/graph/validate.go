package graph

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/moneytrail/internal/accounts"
	"github.com/cleared-dev/moneytrail/internal/id"
	"github.com/cleared-dev/moneytrail/internal/model"
)

// Graph invariants checked by Validate.
const (
	InvariantConservation = iota + 1
	InvariantMonotonicity
	InvariantWindow
	InvariantUniqueness
	InvariantWithdrawalShape
	InvariantNodeID
	InvariantEndpoints
)

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Invariant   int
	Subject     string // node or edge id
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [%s]: %s", e.Invariant, e.Subject, e.Description)
}

// Validate checks a built graph against the invariants every build must
// satisfy for params.
func Validate(g *model.Graph, params Params) []ValidationError {
	var errs []ValidationError
	idx := g.NodeIndex()

	inflow := make(map[string]decimal.Decimal)
	outflow := make(map[string]decimal.Decimal)
	withdrawalEdges := make(map[string]int)

	for _, e := range g.Edges {
		src, srcOK := idx[e.Source]
		tgt, tgtOK := idx[e.Target]

		// Invariant 7: Edge endpoints exist.
		if !srcOK || !tgtOK {
			errs = append(errs, ValidationError{
				Invariant:   InvariantEndpoints,
				Subject:     e.ID,
				Description: fmt.Sprintf("edge %s -> %s references a missing node", e.Source, e.Target),
			})
			continue
		}

		if e.Kind == model.EdgeWithdrawal {
			withdrawalEdges[e.Target]++
			continue
		}

		inflow[e.Target] = inflow[e.Target].Add(e.Amount)
		outflow[e.Source] = outflow[e.Source].Add(e.Amount)

		// Invariant 2: Transfer edges advance exactly one layer.
		if tgt.Layer != src.Layer+1 {
			errs = append(errs, ValidationError{
				Invariant:   InvariantMonotonicity,
				Subject:     e.ID,
				Description: fmt.Sprintf("edge joins layer %d to layer %d", src.Layer, tgt.Layer),
			})
		}

		// Invariant 3: No transfer below the amount floor.
		if e.Amount.LessThan(params.MinAmount) {
			errs = append(errs, ValidationError{
				Invariant:   InvariantWindow,
				Subject:     e.ID,
				Description: fmt.Sprintf("amount %s below min amount %s", e.Amount.StringFixed(2), params.MinAmount.StringFixed(2)),
			})
		}
	}

	seen := make(map[string]string)
	for _, n := range g.Nodes {
		// Invariant 3: No node outside the layer window.
		if n.Layer < 1 {
			errs = append(errs, ValidationError{
				Invariant:   InvariantWindow,
				Subject:     n.ID,
				Description: fmt.Sprintf("layer %d is below 1", n.Layer),
			})
		}
		if n.Layer > params.MaxLayer {
			errs = append(errs, ValidationError{
				Invariant:   InvariantWindow,
				Subject:     n.ID,
				Description: fmt.Sprintf("layer %d exceeds max layer %d", n.Layer, params.MaxLayer),
			})
		}

		if n.Kind == model.NodeWithdrawal {
			errs = append(errs, validateWithdrawalNode(n, withdrawalEdges[n.ID])...)
			continue
		}

		canonical := accounts.Canonical(n.Account)

		// Invariant 4: One account node per canonical account and layer.
		key := id.FormatNodeID(canonical, n.Layer)
		if other, dup := seen[key]; dup {
			errs = append(errs, ValidationError{
				Invariant:   InvariantUniqueness,
				Subject:     n.ID,
				Description: fmt.Sprintf("duplicates node %s", other),
			})
		} else {
			seen[key] = n.ID
		}

		// Invariant 6: Account node ids encode canonical account and layer.
		idCanonical, idLayer, err := id.ParseNodeID(n.ID)
		if err != nil {
			errs = append(errs, ValidationError{
				Invariant:   InvariantNodeID,
				Subject:     n.ID,
				Description: fmt.Sprintf("invalid node ID: %v", err),
			})
		} else if idCanonical != canonical || idLayer != n.Layer {
			errs = append(errs, ValidationError{
				Invariant:   InvariantNodeID,
				Subject:     n.ID,
				Description: fmt.Sprintf("node ID does not match account %q at layer %d", n.Account, n.Layer),
			})
		}

		// Invariant 1: Accumulators equal the transfer edges, plus flows
		// that leave the window on the outflow side.
		if !n.TotalInflow.Equal(inflow[n.ID]) {
			errs = append(errs, ValidationError{
				Invariant:   InvariantConservation,
				Subject:     n.ID,
				Description: fmt.Sprintf("inflow %s != incoming edges %s", n.TotalInflow.StringFixed(2), inflow[n.ID].StringFixed(2)),
			})
		}
		expectedOut := outflow[n.ID].Add(leavingWindow(n, canonical, params))
		if !n.TotalOutflow.Equal(expectedOut) {
			errs = append(errs, ValidationError{
				Invariant:   InvariantConservation,
				Subject:     n.ID,
				Description: fmt.Sprintf("outflow %s != outgoing edges %s", n.TotalOutflow.StringFixed(2), expectedOut.StringFixed(2)),
			})
		}
	}

	return errs
}

// leavingWindow sums the transfers sent from n whose target layer is beyond
// the window.
func leavingWindow(n *model.GraphNode, canonical string, params Params) decimal.Decimal {
	total := decimal.Zero
	for _, txn := range n.Transactions {
		t, ok := txn.(*model.MoneyTransfer)
		if !ok || t.Layer != n.Layer || t.Layer+1 <= params.MaxLayer {
			continue
		}
		if accounts.Canonical(t.FromAccount) == canonical {
			total = total.Add(t.Amount)
		}
	}
	return total
}

func validateWithdrawalNode(n *model.GraphNode, incoming int) []ValidationError {
	var errs []ValidationError
	fail := func(format string, args ...any) {
		errs = append(errs, ValidationError{
			Invariant:   InvariantWithdrawalShape,
			Subject:     n.ID,
			Description: fmt.Sprintf(format, args...),
		})
	}

	if len(n.Transactions) != 1 {
		fail("withdrawal node has %d transactions", len(n.Transactions))
	} else if amount := n.Transactions[0].Base().Amount; !n.TotalInflow.Equal(amount) {
		fail("inflow %s != withdrawal amount %s", n.TotalInflow.StringFixed(2), amount.StringFixed(2))
	}
	if !n.TotalOutflow.IsZero() {
		fail("withdrawal node has outflow %s", n.TotalOutflow.StringFixed(2))
	}
	if incoming != 1 {
		fail("withdrawal node has %d incoming edges", incoming)
	}
	return errs
}
