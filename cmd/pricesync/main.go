package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Thesaidctm/automate/internal/adapter/browser"
	"github.com/Thesaidctm/automate/internal/adapter/recorder"
	"github.com/Thesaidctm/automate/internal/adapter/spreadsheet"
	"github.com/Thesaidctm/automate/internal/domain"
	"github.com/Thesaidctm/automate/internal/infrastructure/config"
	"github.com/Thesaidctm/automate/internal/infrastructure/idgen"
	"github.com/Thesaidctm/automate/internal/infrastructure/logger"
	"github.com/Thesaidctm/automate/internal/infrastructure/metrics"
	"github.com/Thesaidctm/automate/internal/infrastructure/retry"
	"github.com/Thesaidctm/automate/internal/usecase"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// overrides are the command line values that take precedence over the environment.
type overrides struct {
	workbook       string
	sheet          string
	browserURL     string
	pagePattern    string
	auditLog       string
	diagnosticsDir string
	metricsPath    string
	logLevel       string
	logFormat      string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pricesync",
		Short:         "Price synchronization for the works budget application",
		Long:          `Reads target unit prices from a workbook and applies them, record by record, to the list/edit interface open in an attached browser.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var o overrides
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&o.workbook, "workbook", "", "Workbook path (WORKBOOK_PATH)")
	flags.StringVar(&o.sheet, "sheet", "", "Worksheet name (WORKBOOK_SHEET)")
	flags.StringVar(&o.logLevel, "log-level", "", "Log level (LOG_LEVEL)")
	flags.StringVar(&o.logFormat, "log-format", "", "Log format: console or json (LOG_FORMAT)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Apply the workbook prices through the attached browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, o)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runSync(ctx, cfg, cmd.OutOrStdout())
		},
	}
	runCmd.Flags().StringVar(&o.browserURL, "browser-url", "", "Remote debugging endpoint (BROWSER_URL)")
	runCmd.Flags().StringVar(&o.pagePattern, "page-pattern", "", "Pattern of the tab URL to attach to (PAGE_URL_PATTERN)")
	runCmd.Flags().StringVar(&o.auditLog, "audit-log", "", "Audit log path (AUDIT_LOG_PATH)")
	runCmd.Flags().StringVar(&o.diagnosticsDir, "diagnostics-dir", "", "Screenshot directory (DIAGNOSTICS_DIR)")
	runCmd.Flags().StringVar(&o.metricsPath, "metrics-path", "", "Prometheus textfile to write at the end (METRICS_PATH)")

	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the ordered instructions without touching the browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, o)
			if err != nil {
				return err
			}
			return printPlan(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pricesync %s\n", version)
		},
	}

	rootCmd.AddCommand(runCmd, planCmd, versionCmd)
	return rootCmd
}

func loadConfig(cmd *cobra.Command, o overrides) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	set := func(name string, dst *string, value string) {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			*dst = value
		}
	}
	set("workbook", &cfg.WorkbookPath, o.workbook)
	set("sheet", &cfg.WorkbookSheet, o.sheet)
	set("browser-url", &cfg.BrowserURL, o.browserURL)
	set("page-pattern", &cfg.PageURLPattern, o.pagePattern)
	set("audit-log", &cfg.AuditLogPath, o.auditLog)
	set("diagnostics-dir", &cfg.DiagnosticsDir, o.diagnosticsDir)
	set("metrics-path", &cfg.MetricsPath, o.metricsPath)
	set("log-level", &cfg.LogLevel, o.logLevel)
	set("log-format", &cfg.LogFormat, o.logFormat)

	return cfg, nil
}

func newLogger(cfg *config.Config, run idgen.RunID) zerolog.Logger {
	return logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}).
		With().
		Stringer("run_id", run).
		Logger()
}

func newSource(cfg *config.Config, log zerolog.Logger) usecase.InstructionSource {
	return spreadsheet.NewReader(spreadsheet.Config{
		Path:             cfg.WorkbookPath,
		Sheet:            cfg.WorkbookSheet,
		HeaderRow:        cfg.HeaderRow,
		IDColumns:        cfg.IDColumns,
		ValueColumns:     cfg.ValueColumns,
		IDColumnIndex:    cfg.IDColumnIndex,
		ValueColumnIndex: cfg.ValueColumnIndex,
	}, log)
}

// loadInstructions reads the source rows and logs every row it had to drop.
func loadInstructions(ctx context.Context, source usecase.InstructionSource, log zerolog.Logger) ([]domain.Instruction, []domain.RejectedRow, error) {
	rows, err := source.ReadRows(ctx)
	if err != nil {
		return nil, nil, err
	}

	instructions, rejected := domain.BuildInstructions(rows)
	for _, r := range rejected {
		log.Warn().
			Int("line", r.Row.Line).
			Str("code", r.Row.Code).
			Str("value", r.Row.Value).
			Str("reason", r.Reason).
			Msg("row rejected")
	}
	log.Info().
		Int("rows", len(rows)).
		Int("instructions", len(instructions)).
		Int("rejected", len(rejected)).
		Msg("workbook loaded")

	return instructions, rejected, nil
}

func printPlan(ctx context.Context, cfg *config.Config, out io.Writer) error {
	log := newLogger(cfg, idgen.NewRunID(time.Now()))

	instructions, rejected, err := loadInstructions(ctx, newSource(cfg, log), log)
	if err != nil {
		return err
	}

	for _, ins := range instructions {
		fmt.Fprintf(out, "%s\t%s\n", ins.Code, ins.TargetText())
	}
	fmt.Fprintf(out, "%d instructions, %d rows rejected\n", len(instructions), len(rejected))
	return nil
}

func syncOptions(cfg *config.Config) usecase.Options {
	opts := usecase.DefaultOptions()
	opts.IdentityRetries = cfg.IdentityRetries
	opts.MaxScrolls = cfg.MaxScrolls
	opts.MaxContainers = cfg.MaxContainers
	opts.ContainerScrollStep = cfg.ContainerScrollStep
	opts.ViewportScrollStep = cfg.ViewportScrollStep
	opts.ScrollPause = cfg.ScrollPause
	opts.ElementTimeout = cfg.ElementTimeout
	opts.ListReadyTimeout = cfg.ListReadyTimeout
	opts.NetworkIdleTimeout = cfg.NetworkIdleTimeout
	opts.SuccessTimeout = cfg.SuccessTimeout
	opts.NavigationDeadline = cfg.NavigationDeadline
	opts.TypeDelay = cfg.TypeDelay
	opts.SettleDelay = cfg.SettleDelay
	return opts
}

func syncSelectors(cfg *config.Config) usecase.Selectors {
	return usecase.NewSelectors(usecase.Vocabulary{
		EditText:     cfg.EditText,
		SaveText:     cfg.SaveText,
		PriceLabels:  cfg.PriceLabels,
		PriceHooks:   cfg.PriceSelectors,
		MacroLabel:   cfg.MacroLabel,
		ItemLabel:    cfg.ItemLabel,
		SuccessTexts: cfg.SuccessTexts,
	})
}

func runSync(ctx context.Context, cfg *config.Config, out io.Writer) error {
	run := idgen.NewRunID(time.Now())
	log := newLogger(cfg, run)
	log.Info().Time("started_at", run.StartedAt()).Str("workbook", cfg.WorkbookPath).Msg("run started")
	m := metrics.New()

	instructions, rejected, err := loadInstructions(ctx, newSource(cfg, log), log)
	if err != nil {
		return err
	}
	m.Instructions.Set(float64(len(instructions)))
	m.RejectedRows.Set(float64(len(rejected)))

	audit, err := recorder.OpenAuditLog(cfg.AuditLogPath)
	if err != nil {
		return err
	}
	diagnostics, err := recorder.NewDiagnosticDir(cfg.DiagnosticsDir)
	if err != nil {
		return err
	}

	page, err := browser.Connect(ctx, browser.Config{
		BrowserURL:        cfg.BrowserURL,
		URLPattern:        cfg.PageURLPattern,
		NavigationTimeout: cfg.NavigationDeadline,
	})
	if err != nil {
		return err
	}
	log.Info().Str("browser", cfg.BrowserURL).Msg("attached to browser")

	uc := usecase.NewSyncUseCase(usecase.SyncConfig{
		Page:        page,
		Recorder:    audit,
		Diagnostics: diagnostics,
		Retrier:     retry.NewRetrier(cfg.RetryInterval, log),
		Metrics:     m,
		Selectors:   syncSelectors(cfg),
		Options:     syncOptions(cfg),
		Logger:      log,
	})

	summary, runErr := uc.Run(ctx, instructions)
	log.Info().
		Int("total", summary.Total).
		Int("succeeded", summary.Succeeded).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Dur("elapsed", time.Since(run.StartedAt())).
		Msg("run finished")

	if cfg.MetricsPath != "" {
		if err := m.WriteToTextfile(cfg.MetricsPath); err != nil {
			log.Warn().Err(err).Str("path", cfg.MetricsPath).Msg("failed to write metrics")
		}
	}

	printSummary(out, summary, audit.Path(), diagnostics.Dir())

	if runErr != nil {
		return runErr
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("%w before every record was processed", domain.ErrCanceled)
	}
	return nil
}

func printSummary(out io.Writer, s usecase.Summary, auditPath, diagnosticsDir string) {
	fmt.Fprintf(out, "Processed %d records: %d updated, %d already correct, %d failed\n",
		s.Total, s.Succeeded, s.Skipped, s.Failed)
	fmt.Fprintf(out, "Audit log: %s\n", auditPath)
	if s.Failed > 0 {
		fmt.Fprintf(out, "Screenshots of failures: %s\n", diagnosticsDir)
	}
}
