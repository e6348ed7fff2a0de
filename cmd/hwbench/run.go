package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hwbench/internal/benchmark"
	"hwbench/internal/config"
	"hwbench/internal/metrics"
	"hwbench/internal/report"
	"hwbench/internal/sysinfo"
	"hwbench/internal/telemetry"
	"hwbench/internal/ui"
)

// suiteRunner is the part of benchmark.Suite the CLI needs.
type suiteRunner interface {
	Run(ctx context.Context) (*benchmark.Table, error)
	Profile() benchmark.ScalingProfile
}

// systemReader is the part of sysinfo.Reader the CLI needs.
type systemReader interface {
	Collect(ctx context.Context) sysinfo.Info
	Temperature(ctx context.Context) float64
}

// Factories allow mocking in tests.
var (
	newSuiteFunc = func(cfg benchmark.Config, opts ...benchmark.Option) suiteRunner {
		return benchmark.NewSuite(cfg, opts...)
	}
	newSystemReaderFunc = func(logger *slog.Logger) systemReader {
		return sysinfo.NewReader(sysinfo.DefaultSources(), logger)
	}
	runProgramFunc = func(m tea.Model) (tea.Model, error) {
		return tea.NewProgram(m).Run()
	}
	serveMetricsFunc = telemetry.StartMetricsServer
)

type runOptions struct {
	format string
	render bool
	quick  bool
}

func addRunFlags(cmd *cobra.Command, opts *runOptions) {
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(report.FormatText), "Output format: text, md, json or tui")
	cmd.Flags().BoolVar(&opts.render, "render", false, "Render markdown output for the terminal")
	cmd.Flags().BoolVar(&opts.quick, "quick", false, "Use short durations and small working sets")
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full benchmark suite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuite(cmd, opts)
		},
	}
	addRunFlags(cmd, opts)
	return cmd
}

func runSuite(cmd *cobra.Command, opts *runOptions) error {
	format := report.Format(opts.format)
	switch format {
	case report.FormatText, report.FormatMarkdown, report.FormatJSON, report.FormatTUI:
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}

	cfg, err := config.Benchmark()
	if err != nil {
		return err
	}
	if opts.quick {
		cfg = config.Quick(cfg)
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer stop()

	logger := slog.Default()
	m := metrics.NewMetrics()

	system := newSystemReaderFunc(logger).Collect(ctx)
	logger.Debug("System identified", "cpu", system.CPU, "cores", system.LogicalCores)

	suite := newSuiteFunc(cfg, benchmark.WithLogger(logger), benchmark.WithObserver(m.Observe))
	table, err := suite.Run(ctx)
	if err != nil {
		return fmt.Errorf("benchmark run interrupted: %w", err)
	}
	m.RecordScaling(suite.Profile())
	m.RecordSuite(time.Now())
	// No scrape endpoint while benchmarks run.
	startMetrics(m)

	if err := writeMetricsFile(m); err != nil {
		return err
	}

	r := report.Report{System: system, Table: table}
	out := cmd.OutOrStdout()

	switch {
	case format == report.FormatTUI:
		_, err := runProgramFunc(ui.NewResultsModel(r))
		return err
	case format == report.FormatMarkdown && opts.render:
		var buf bytes.Buffer
		if err := report.WriteMarkdown(&buf, r); err != nil {
			return err
		}
		rendered, err := report.RenderMarkdown(buf.String(), 80)
		if err != nil {
			return fmt.Errorf("failed to render markdown: %w", err)
		}
		_, err = fmt.Fprint(out, rendered)
		return err
	default:
		return report.Write(out, format, r)
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// startMetrics serves m in the background when metrics_addr is set.
func startMetrics(m *metrics.Metrics) {
	addr := viper.GetString("metrics_addr")
	if addr == "" {
		return
	}
	go func() {
		if err := serveMetricsFunc(addr, m.Handler()); err != nil {
			telemetry.LogError("Metrics server stopped", err, "addr", addr)
		}
	}()
}

func writeMetricsFile(m *metrics.Metrics) error {
	path := viper.GetString("metrics_file")
	if path == "" {
		return nil
	}
	if err := m.WriteTextfile(path); err != nil {
		return fmt.Errorf("failed to write metrics file %s: %w", path, err)
	}
	slog.Info("Metrics written", "path", path)
	return nil
}
