package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/pfrederiksen/camara-gastos/internal/config"
	"github.com/pfrederiksen/camara-gastos/internal/extract"
	"github.com/pfrederiksen/camara-gastos/internal/ledger"
	"github.com/pfrederiksen/camara-gastos/internal/logger"
	"github.com/pfrederiksen/camara-gastos/internal/scraper"
	"github.com/pfrederiksen/camara-gastos/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
	ExitNoData  = 2
)

type options struct {
	year       int
	startMonth int
	endMonth   int
	configPath string
	outputDir  string
	ledgerPath string
	format     string
	noXLSX     bool
	verbose    bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "camara-gastos",
		Short: "Extract city council representatives' expenses from monthly disclosure pages",
		Long: `A CLI tool to extract the expenses disclosed monthly by the São Paulo city council.
Fetches one page per month, turns its tables into expense records and writes
per-month, per-representative and consolidated CSV files plus an XLSX workbook.`,
		Example: `  camara-gastos --year 2024 --start-month 1 --end-month 3
  camara-gastos --year 2023 --start-month 6 --end-month 6 --format json --ledger gastos.db`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, opts)
		},
	}

	now := time.Now()
	cmd.Flags().IntVar(&opts.year, "year", now.Year(), "Year to extract")
	cmd.Flags().IntVar(&opts.startMonth, "start-month", 1, "First month (1-12)")
	cmd.Flags().IntVar(&opts.endMonth, "end-month", int(now.Month()), "Last month (1-12)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to YAML config file")
	cmd.Flags().StringVar(&opts.outputDir, "output-dir", "", "Output directory (overrides config)")
	cmd.Flags().StringVar(&opts.ledgerPath, "ledger", "", "SQLite ledger path (overrides config)")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&opts.noXLSX, "no-xlsx", false, "Skip the XLSX workbook")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")

	return cmd
}

// runExtract is the main command logic
func runExtract(cmd *cobra.Command, opts *options) error {
	format := OutputFormat(strings.ToLower(opts.format))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", opts.format)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if opts.outputDir != "" {
		cfg.OutputDir = opts.outputDir
	}
	if opts.ledgerPath != "" {
		cfg.LedgerPath = opts.ledgerPath
	}
	if opts.noXLSX {
		cfg.WriteXLSX = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if opts.verbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))

	store, err := storage.New(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	sc := scraper.New(
		scraper.WithBaseURL(cfg.BaseURL),
		scraper.WithTimeout(cfg.Timeout),
		scraper.WithUserAgent(cfg.UserAgent),
	)

	extractOpts := []extract.Option{extract.WithXLSX(cfg.WriteXLSX)}
	if cfg.LedgerPath != "" {
		l, err := ledger.Open(cfg.LedgerPath)
		if err != nil {
			return fmt.Errorf("opening ledger: %w", err)
		}
		defer l.Close()
		extractOpts = append(extractOpts, extract.WithLedger(l))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	logger.Debug("Starting extraction", logger.Fields{
		"base_url":   cfg.BaseURL,
		"output_dir": store.Dir(),
		"ledger":     cfg.LedgerPath,
	})

	summary, runErr := extract.New(sc, store, extractOpts...).Run(ctx, extract.Request{
		Year:       opts.year,
		StartMonth: opts.startMonth,
		EndMonth:   opts.endMonth,
	})

	if opts.verbose {
		logger.Debug("Run metrics", logger.Fields{"metrics": logger.Metrics()})
	}

	if err := WriteOutput(cmd.OutOrStdout(), summary, format, opts.verbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return runErr
}

// ExitCode maps a run error to the process exit code
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, extract.ErrNoDataExtracted):
		return ExitNoData
	default:
		return ExitError
	}
}

// Execute runs the CLI
func Execute() {
	err := NewRootCmd().ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(ExitCode(err))
}
