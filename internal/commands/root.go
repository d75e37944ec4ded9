package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/moneytrail/internal/buildinfo"
	"github.com/cleared-dev/moneytrail/internal/config"
	"github.com/cleared-dev/moneytrail/internal/importer"
	"github.com/cleared-dev/moneytrail/internal/investigation"
	"github.com/cleared-dev/moneytrail/internal/logger"
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	configPath string
	maxLayer   int
	minAmount  string
	logLevel   string

	cfg      *config.Config
	registry *importer.Registry
	source   investigation.SheetSource
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	registry := importer.DefaultRegistry()
	a := &app{
		registry: registry,
		source:   &importer.FileSource{Registry: registry},
	}

	rootCmd := &cobra.Command{
		Use:     "moneytrail",
		Short:   "Forensic money-trail graphs from bank statement exports",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ./"+config.FileName+" when present)")
	flags.IntVar(&a.maxLayer, "max-layer", 0, "highest layer to include")
	flags.StringVar(&a.minAmount, "min-amount", "", "smallest transfer amount to include")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newInitCommand(a),
		newBuildCommand(a),
		newSearchCommand(a),
		newLocateCommand(a),
		newExportCommand(a),
		newCrossTrailCommand(a),
		newDiagnosticsCommand(a),
	)

	return rootCmd
}

// setup resolves the configuration, applies flag overrides and attaches a
// logger to the command context.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("max-layer") {
		cfg.Graph.MaxLayer = a.maxLayer
	}
	if flags.Changed("min-amount") {
		amount, err := decimal.NewFromString(a.minAmount)
		if err != nil {
			return fmt.Errorf("parsing --min-amount %q: %w", a.minAmount, err)
		}
		cfg.Graph.MinAmount = amount
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	log := logger.NewConsole(cmd.ErrOrStderr(), cfg.Logging.Level)
	cmd.SetContext(logger.WithContext(cmd.Context(), log))
	return nil
}

func (a *app) loadConfig() (*config.Config, error) {
	if a.configPath != "" {
		return config.Load(a.configPath)
	}
	cfg, err := config.Load(config.FileName)
	if errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

// open loads a workbook and builds its graph with the resolved parameters.
func (a *app) open(cmd *cobra.Command, path string) (*investigation.Session, error) {
	ctx := cmd.Context()
	return investigation.Open(ctx, a.source, path, a.cfg.Params(), logger.FromContext(ctx))
}
