package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/moneytrail/internal/graph"
	"github.com/cleared-dev/moneytrail/internal/model"
)

type locateOutput struct {
	Flow      graph.FlowSummary  `json:"flow"`
	ChainUp   []*model.GraphNode `json:"chainUp,omitempty"`
	ChainDown []*model.GraphNode `json:"chainDown,omitempty"`
}

func newLocateCommand(a *app) *cobra.Command {
	var asJSON bool
	var chain bool

	cmd := &cobra.Command{
		Use:   "locate <workbook> <account-or-reference>",
		Short: "Find a graph node and summarize the money through it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd, args[0])
			if err != nil {
				return err
			}
			nodeID, err := s.Locate(args[1])
			if err != nil {
				return err
			}
			flow, err := s.Flow(nodeID)
			if err != nil {
				return err
			}

			res := locateOutput{Flow: flow}
			if chain {
				res.ChainUp = graph.ChainUp(s.Graph, nodeID)
				res.ChainDown = graph.ChainDown(s.Graph, nodeID)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, res)
			}
			printLocate(out, res, chain)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the flow summary as JSON")
	cmd.Flags().BoolVar(&chain, "chain", false, "include every upstream and downstream node")

	return cmd
}

func printLocate(w io.Writer, res locateOutput, chain bool) {
	f := res.Flow
	n := f.Node
	fmt.Fprintf(w, "Node %s (%s, layer %d): %s\n", n.ID, n.Kind, n.Layer, n.Account)
	fmt.Fprintf(w, "  in %s from %d edges, out %s over %d edges, withdrawn %s\n",
		f.IncomingTotal.StringFixed(2), len(f.Incoming), f.OutgoingTotal.StringFixed(2), len(f.Outgoing), f.WithdrawalTotal.StringFixed(2))
	fmt.Fprintf(w, "  from: %s\n", nodeIDs(f.Predecessors))
	fmt.Fprintf(w, "  to:   %s\n", nodeIDs(f.Successors))
	if chain {
		fmt.Fprintf(w, "  upstream:   %s\n", nodeIDs(res.ChainUp))
		fmt.Fprintf(w, "  downstream: %s\n", nodeIDs(res.ChainDown))
	}
}

func nodeIDs(nodes []*model.GraphNode) string {
	if len(nodes) == 0 {
		return "-"
	}
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return strings.Join(ids, ", ")
}
