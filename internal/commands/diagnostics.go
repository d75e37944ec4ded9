package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/moneytrail/internal/diaglog"
)

func newDiagnosticsCommand(a *app) *cobra.Command {
	var filter diaglog.Filter
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "diagnostics [workbook]",
		Short: "List logged extraction and build diagnostics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				filter.Workbook = args[0]
			}
			dlog, err := diaglog.Open(a.cfg.Diagnostics.LogFile)
			if err != nil {
				return err
			}
			entries := dlog.Entries(filter)

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No diagnostics logged")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%s  %-7s %-28s %s  %s  %s\n",
					e.Timestamp.Format("2006-01-02 15:04"), e.Stage, e.Code, e.Workbook, e.Subject, e.Detail)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.Stage, "stage", "", "only entries from this stage (extract, build)")
	cmd.Flags().StringVar(&filter.Code, "code", "", "only entries with this code")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print entries as JSON")

	return cmd
}
