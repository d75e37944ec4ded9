package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/moneytrail/internal/search"
)

type searchOutput struct {
	Results search.Results `json:"results"`
	Trail   search.Trail   `json:"trail"`
}

func newSearchCommand(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <workbook> <account>",
		Short: "List every transaction touching an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd, args[0])
			if err != nil {
				return err
			}
			res, err := s.Search(args[1])
			if err != nil {
				return err
			}
			trail := search.Summarize(res)

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, searchOutput{Results: res, Trail: trail})
			}
			if res.Empty() {
				fmt.Fprintf(out, "No transactions found for %q\n", res.Query)
				return nil
			}
			printSearch(out, res, trail)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")

	return cmd
}

func printSearch(w io.Writer, res search.Results, trail search.Trail) {
	fmt.Fprintf(w, "Account %q: %d transactions, layers %v\n", res.Query, trail.TransactionCount, trail.LayersInvolved)
	fmt.Fprintf(w, "  inflow %s, outflow %s, withdrawals %s\n",
		trail.TotalInflow.StringFixed(2), trail.TotalOutflow.StringFixed(2), trail.TotalWithdrawals.StringFixed(2))

	for _, t := range res.Incoming {
		fmt.Fprintf(w, "  in   L%d %s <- %s %s ref %s\n", t.Layer+1, t.ToAccount, t.FromAccount, t.Amount.StringFixed(2), t.ReferenceSent)
	}
	for _, t := range res.Outgoing {
		fmt.Fprintf(w, "  out  L%d %s -> %s %s ref %s\n", t.Layer, t.FromAccount, t.ToAccount, t.Amount.StringFixed(2), t.ReferenceSent)
	}
	for _, wd := range res.Withdrawals {
		fmt.Fprintf(w, "  %-4s %s %s ref %s\n", wd.Category, wd.Account, wd.Amount.StringFixed(2), wd.Reference)
	}
	for _, o := range res.Other {
		fmt.Fprintf(w, "  %-4s %s %s (%s)\n", o.Category, o.Account, o.Amount.StringFixed(2), o.Sheet)
	}
}
