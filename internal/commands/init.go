package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/moneytrail/internal/config"
	"github.com/cleared-dev/moneytrail/internal/gitops"
)

func newInitCommand(a *app) *cobra.Command {
	var useGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default " + config.FileName + " for a new investigation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(absDir, a.cfg); err != nil {
				return err
			}
			if !useGit {
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized investigation at %s\n", absDir)
				return nil
			}

			hash, err := initRepo(absDir, a.cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized investigation at %s (%s)\n", absDir, hash)
			return nil
		},
	}

	cmd.Flags().BoolVar(&useGit, "git", false, "track the investigation in a git repository")

	return cmd
}

func runInit(dir string, cfg *config.Config) error {
	path := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	for _, d := range []string{"cases", filepath.Dir(cfg.Diagnostics.LogFile), "exports"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func initRepo(dir string, cfg *config.Config) (string, error) {
	if !gitops.IsRepo(dir) {
		if err := gitops.Init(dir); err != nil {
			return "", err
		}
	}
	hash, err := gitops.Commit(dir, "init: open investigation", evidenceAuthor(cfg), config.FileName)
	if err != nil {
		return "", fmt.Errorf("initial commit: %w", err)
	}
	return hash, nil
}

func evidenceAuthor(cfg *config.Config) gitops.Author {
	return gitops.Author{Name: cfg.Evidence.AuthorName, Email: cfg.Evidence.AuthorEmail}
}
