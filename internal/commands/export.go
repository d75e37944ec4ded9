package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/moneytrail/internal/config"
	"github.com/cleared-dev/moneytrail/internal/export"
	"github.com/cleared-dev/moneytrail/internal/gitops"
	"github.com/cleared-dev/moneytrail/internal/investigation"
)

// Export kinds accepted by --kind.
const (
	kindTransfers   = "transfers"
	kindWithdrawals = "withdrawals"
	kindNodes       = "nodes"
	kindEdges       = "edges"
	kindSheet       = "sheet"
)

func newExportCommand(a *app) *cobra.Command {
	var kind string
	var outPath string
	var sheetName string
	var commit bool

	cmd := &cobra.Command{
		Use:   "export <workbook>",
		Short: "Export extracted records or the built graph as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd, args[0])
			if err != nil {
				return err
			}

			if outPath == "" {
				if commit {
					return fmt.Errorf("--commit requires --out")
				}
				return runExport(cmd.OutOrStdout(), s, kind, sheetName)
			}

			if err := exportFile(outPath, s, kind, sheetName); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %s to %s\n", kind, outPath)

			if commit {
				hash, err := commitExport(outPath, s, kind, a.cfg)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Committed %s (%s)\n", outPath, hash)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", kindEdges, "what to export: transfers, withdrawals, nodes, edges or sheet")
	cmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")
	cmd.Flags().StringVar(&sheetName, "sheet", "", "sheet name, with --kind sheet")
	cmd.Flags().BoolVar(&commit, "commit", false, "commit the exported file to the enclosing git repository")

	return cmd
}

func exportFile(path string, s *investigation.Session, kind, sheetName string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := runExport(f, s, kind, sheetName); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func commitExport(path string, s *investigation.Session, kind string, cfg *config.Config) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	dir := filepath.Dir(abs)
	if _, err := gitops.Root(dir); err != nil {
		return "", fmt.Errorf("%s is not inside a git repository: %w", dir, err)
	}
	msg := fmt.Sprintf("export: %s of %s (max layer %d, min amount %s)",
		kind, filepath.Base(s.Path), s.Params.MaxLayer, s.Params.MinAmount.StringFixed(2))
	return gitops.Commit(dir, msg, evidenceAuthor(cfg), filepath.Base(abs))
}

func runExport(w io.Writer, s *investigation.Session, kind, sheetName string) error {
	switch kind {
	case kindTransfers:
		return export.WriteTransfers(w, s.Extraction.Transfers)
	case kindWithdrawals:
		return export.WriteWithdrawals(w, s.Extraction.Withdrawals)
	case kindNodes:
		return export.WriteNodes(w, s.Graph.Nodes)
	case kindEdges:
		return export.WriteEdges(w, s.Graph.Edges)
	case kindSheet:
		for _, sheet := range s.Sheets {
			if sheet.Name == sheetName {
				return export.WriteSheet(w, sheet)
			}
		}
		return fmt.Errorf("sheet %q not found in %s", sheetName, s.Path)
	default:
		return fmt.Errorf("unknown export kind %q", kind)
	}
}
