package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"hwbench/internal/benchmark"
	"hwbench/internal/clock"
	"hwbench/internal/config"
	"hwbench/internal/metrics"
	"hwbench/internal/ui"
)

// stressCycle is how long each integer load cycle runs.
const stressCycle = time.Second

func newStressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stress <seconds>",
		Short: "Load the CPU and watch the temperature",
		Long: `Repeatedly runs the integer benchmark for one second at a time and
shows the last throughput and the current CPU temperature until the
requested number of seconds has elapsed.`,
		Args: cobra.ExactArgs(1),
		RunE: runStress,
	}
}

func runStress(cmd *cobra.Command, args []string) error {
	seconds, err := strconv.Atoi(args[0])
	if err != nil || seconds <= 0 {
		return fmt.Errorf("invalid duration %q: expected a positive number of seconds", args[0])
	}

	cfg, err := config.Benchmark()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer stop()

	logger := slog.Default()
	reader := newSystemReaderFunc(logger)
	runner := benchmark.NewRunner(clock.Real(), cfg.CheckInterval)
	m := metrics.NewMetrics()
	startMetrics(m)

	logger.Info("Stress started", "seconds", seconds)
	model := ui.NewStressModel(ui.StressConfig{
		Duration: time.Duration(seconds) * time.Second,
		Cycle: func() benchmark.Result {
			return runner.Integer(stressCycle)
		},
		Temperature: func() float64 {
			return reader.Temperature(ctx)
		},
		OnCycle: m.RecordStress,
	})

	final, err := runProgramFunc(model)
	if err != nil {
		return fmt.Errorf("stress UI failed: %w", err)
	}

	if sm, ok := final.(ui.StressModel); ok {
		status := "completed"
		if sm.Interrupted() {
			status = "interrupted"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stress %s after %d cycles\n", status, sm.Cycles())
		logger.Info("Stress finished", "cycles", sm.Cycles(), "status", status)
	}

	return writeMetricsFile(m)
}
