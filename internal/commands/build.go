package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/moneytrail/internal/diaglog"
	"github.com/cleared-dev/moneytrail/internal/graph"
	"github.com/cleared-dev/moneytrail/internal/investigation"
	"github.com/cleared-dev/moneytrail/internal/logger"
	"github.com/cleared-dev/moneytrail/internal/model"
)

type buildOutput struct {
	Graph  *model.Graph  `json:"graph"`
	Report *graph.Report `json:"report"`
}

func newBuildCommand(a *app) *cobra.Command {
	var asJSON bool
	var diagnostics bool

	cmd := &cobra.Command{
		Use:   "build <workbook>",
		Short: "Build the money-trail graph of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd, args[0])
			if err != nil {
				return err
			}

			if violations := graph.Validate(s.Graph, s.Params); len(violations) > 0 {
				log := logger.FromContext(cmd.Context())
				for _, v := range violations {
					log.Error().Int("invariant", v.Invariant).Str("subject", v.Subject).Msg(v.Description)
				}
				return fmt.Errorf("graph failed %d invariant checks", len(violations))
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if err := writeJSON(out, buildOutput{Graph: s.Graph, Report: s.Report}); err != nil {
					return err
				}
			} else {
				printBuildSummary(out, s)
			}

			if diagnostics {
				dlog, err := diaglog.Open(a.cfg.Diagnostics.LogFile)
				if err != nil {
					return err
				}
				entries := s.Diagnostics(time.Now().UTC())
				n, err := dlog.Record(entries)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Logged %d new diagnostics to %s (%d already recorded)\n",
					n, dlog.Path(), len(entries)-n)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the graph and build report as JSON")
	cmd.Flags().BoolVar(&diagnostics, "diagnostics", false, "append build diagnostics to the configured log file")

	return cmd
}

func printBuildSummary(w io.Writer, s *investigation.Session) {
	ext := s.Extraction
	r := s.Report

	fmt.Fprintf(w, "Workbook:    %s\n", s.Path)
	fmt.Fprintf(w, "Window:      layers 1-%d, min amount %s\n", s.Params.MaxLayer, s.Params.MinAmount.StringFixed(2))
	fmt.Fprintf(w, "Transfers:   %d extracted, %d skipped, %d filtered, %d leaving window\n",
		len(ext.Transfers), ext.TransferStats.SkippedTotal(), r.TransfersFiltered, r.FlowsLeavingWindow)
	fmt.Fprintf(w, "Withdrawals: %d extracted, %d linked, %d dropped, %d matched by reference\n",
		len(ext.Withdrawals), r.WithdrawalsLinked, r.WithdrawalsDropped, r.ReferencesMatched)
	fmt.Fprintf(w, "Graph:       %d nodes, %d edges, layers %v\n", len(s.Graph.Nodes), len(s.Graph.Edges), graph.Layers(s.Graph.Nodes))

	if len(r.Issues) > 0 {
		fmt.Fprintf(w, "Issues (%d):\n", len(r.Issues))
		for _, issue := range r.Issues {
			fmt.Fprintf(w, "  %s\n", issue)
		}
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}
