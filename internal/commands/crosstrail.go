package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/moneytrail/internal/crosstrail"
	"github.com/cleared-dev/moneytrail/internal/logger"
)

func newCrossTrailCommand(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "crosstrail <workbook|dir>...",
		Short: "Find accounts shared between several workbooks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := a.expandPaths(args)
			if err != nil {
				return err
			}

			log := logger.FromContext(cmd.Context())
			var trails []crosstrail.Trail
			for _, path := range paths {
				sheets, err := a.source.Load(cmd.Context(), path)
				if err != nil {
					return fmt.Errorf("loading %s: %w", path, err)
				}
				trail := crosstrail.ExtractAccounts(filepath.Base(path), sheets)
				log.Debug().Str("workbook", path).Int("accounts", trail.Accounts.Len()).Msg("trail loaded")
				trails = append(trails, trail)
			}

			res := crosstrail.FindCommonAccounts(trails)
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, res)
			}
			printCrossTrail(out, res, len(trails))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")

	return cmd
}

// expandPaths replaces each directory argument with the workbooks inside it.
func (a *app) expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		files, err := a.registry.Scan(arg)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			paths = append(paths, f.Path)
		}
	}
	return paths, nil
}

func printCrossTrail(w io.Writer, res crosstrail.Result, trails int) {
	fmt.Fprintf(w, "%d trails, %d unique accounts, %d shared\n", trails, res.TotalUniqueAccounts, len(res.CommonAccounts))
	for _, c := range res.CommonAccounts {
		names := make([]string, len(c.FoundIn))
		for i, ref := range c.FoundIn {
			names[i] = ref.Name
		}
		fmt.Fprintf(w, "  %s  in %d: %s\n", c.Account, c.Count, strings.Join(names, ", "))
	}
}
