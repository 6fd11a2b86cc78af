// Package main provides the CLI entry point for exaudit-go.
package main

import (
	"bytes"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/exaudit-go/pkg/exaudit"
	"github.com/ukaji3/exaudit-go/pkg/exaudit/categorize"
	"github.com/ukaji3/exaudit-go/pkg/exaudit/config"
	"github.com/ukaji3/exaudit-go/pkg/exaudit/entropy"
	"github.com/ukaji3/exaudit-go/pkg/exaudit/models"
	"github.com/ukaji3/exaudit-go/pkg/exaudit/output"
)

type flags struct {
	outputPath      string
	pretty          bool
	format          string
	categoriesPath  string
	heuristic       bool
	configPath      string
	metricsTextfile string
	logLevel        string
	concurrency     int
	sheetsDir       string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags
	rootCmd := &cobra.Command{
		Use:   "exaudit [input.xlsx]",
		Short: "Audit Excel files for duplicated or fabricated numbers",
		Long: `exaudit-go scores every number in a workbook by its entropy and reports
repeated high-entropy values, copy-pasted column runs and duplicated rows.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], f)
		},
	}

	fl := rootCmd.Flags()
	fl.StringVarP(&f.outputPath, "output", "o", "", "Output file path (default: stdout)")
	fl.BoolVar(&f.pretty, "pretty", false, "Pretty-print JSON output")
	fl.StringVar(&f.format, "format", "", "Output format: json, text (default from config: json)")
	fl.StringVar(&f.categoriesPath, "categories", "", "YAML file assigning column categories per sheet")
	fl.BoolVar(&f.heuristic, "heuristic", false, "Infer categories from headers and values for sheets the categories file does not cover")
	fl.StringVar(&f.configPath, "config", "", "YAML configuration file")
	fl.StringVar(&f.metricsTextfile, "metrics-textfile", "", "Write Prometheus metrics to this textfile")
	fl.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fl.IntVar(&f.concurrency, "concurrency", 0, "Sheets audited in parallel (default: GOMAXPROCS)")
	fl.StringVar(&f.sheetsDir, "sheets-dir", "", "Directory for per-sheet JSON files")

	return rootCmd
}

func run(cmd *cobra.Command, inputPath string, f flags) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg, f)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	opts := cfg.AuditOptions()
	opts.Logger = logger
	opts.Memo = entropy.NewMemo()
	opts.Categorizer, err = buildCategorizer(f, opts)
	if err != nil {
		return err
	}
	if cfg.Output.MetricsTextfile != "" {
		opts.Metrics = exaudit.NewMetrics()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	report, err := exaudit.AuditFile(ctx, inputPath, opts)
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}
	logger.Info("audit complete",
		zap.String("book", report.BookName),
		zap.String("run_id", report.RunID),
		zap.Int("sheets", len(report.Sheets)),
		zap.Duration("elapsed", report.Elapsed))

	data, err := render(report, cfg.Output.Format, cfg.Output.Pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if f.outputPath != "" {
		if err := os.WriteFile(f.outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if f.sheetsDir == "" {
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return err
		}
	}

	if f.sheetsDir != "" {
		if err := writeSheetFiles(report, f.sheetsDir, cfg.Output.Pretty); err != nil {
			return fmt.Errorf("failed to write sheet files: %w", err)
		}
	}

	if opts.Metrics != nil {
		if err := opts.Metrics.WriteTextfile(cfg.Output.MetricsTextfile); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}

// applyFlags lets explicitly set flags override the loaded configuration.
func applyFlags(cmd *cobra.Command, cfg *config.Config, f flags) {
	changed := cmd.Flags().Changed
	if changed("format") {
		cfg.Output.Format = f.format
	}
	if changed("pretty") {
		cfg.Output.Pretty = f.pretty
	}
	if changed("metrics-textfile") {
		cfg.Output.MetricsTextfile = f.metricsTextfile
	}
	if changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	if changed("concurrency") {
		cfg.Detection.Concurrency = f.concurrency
	}
}

// buildCategorizer returns the static categories, the heuristic, or the
// static categories backed by the heuristic.
func buildCategorizer(f flags, opts exaudit.Options) (categorize.ColumnCategorizer, error) {
	heuristic := categorize.NewHeuristic(opts.Heuristic, opts.Memo)
	if f.categoriesPath == "" {
		return heuristic, nil
	}

	static, err := categorize.LoadStatic(f.categoriesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	if f.heuristic {
		return categorize.Chain{static, heuristic}, nil
	}
	return static, nil
}

func render(report *models.Report, format string, pretty bool) ([]byte, error) {
	if format == "text" {
		var buf bytes.Buffer
		if err := output.WriteText(&buf, report); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	data, err := output.ToJSON(report, pretty)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func writeSheetFiles(report *models.Report, dir string, pretty bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for i := range report.Sheets {
		jsonData, err := output.SheetToJSON(&report.Sheets[i], pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, report.Sheets[i].SheetName+".json")
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}

	return nil
}

