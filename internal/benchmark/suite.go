package benchmark

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"hwbench/internal/clock"
)

// Config controls durations and working-set sizes of a suite run.
type Config struct {
	ComputeDuration time.Duration
	CheckInterval   int

	ThreadsDuration time.Duration
	// ThreadLevels are run in order before the max level.
	ThreadLevels []int
	// MaxThreads is the hardware concurrency. Zero means runtime.NumCPU.
	MaxThreads int

	L1Size  int
	L2Size  int
	L3Size  int
	RAMSize int

	LatencySize  int
	LatencyChain ChainOrder
	LatencySeed  uint64
}

// DefaultConfig mirrors the stock hwbench run.
func DefaultConfig() Config {
	return Config{
		ComputeDuration: 2 * time.Second,
		CheckInterval:   DefaultCheckInterval,
		ThreadsDuration: 2 * time.Second,
		ThreadLevels:    []int{1, 2, 4, 8},
		L1Size:          1 * MiB,
		L2Size:          4 * MiB,
		L3Size:          16 * MiB,
		RAMSize:         512 * MiB,
		LatencySize:     128 * MiB,
		LatencyChain:    ChainRandom,
		LatencySeed:     1,
	}
}

// QuickConfig is a short smoke run.
func QuickConfig() Config {
	cfg := DefaultConfig()
	cfg.ComputeDuration = 250 * time.Millisecond
	cfg.ThreadsDuration = 250 * time.Millisecond
	cfg.RAMSize = 64 * MiB
	cfg.LatencySize = 16 * MiB
	return cfg
}

// Observer is notified after each benchmark with its result and how long
// it took.
type Observer func(m Metric, took time.Duration)

// Suite runs every benchmark once, strictly one after another.
type Suite struct {
	cfg      Config
	clock    clock.Clock
	detect   FeatureDetector
	logger   *slog.Logger
	observer Observer

	profile ScalingProfile
}

// Option configures a Suite.
type Option func(*Suite)

func WithClock(c clock.Clock) Option {
	return func(s *Suite) { s.clock = c }
}

func WithDetector(d FeatureDetector) Option {
	return func(s *Suite) { s.detect = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Suite) { s.logger = l }
}

func WithObserver(o Observer) Option {
	return func(s *Suite) { s.observer = o }
}

func NewSuite(cfg Config, opts ...Option) *Suite {
	s := &Suite{
		cfg:    cfg,
		clock:  clock.Real(),
		detect: DetectAVX2,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cfg.MaxThreads <= 0 {
		s.cfg.MaxThreads = runtime.NumCPU()
	}
	return s
}

// Config returns the effective configuration.
func (s *Suite) Config() Config {
	return s.cfg
}

// Profile returns the scaling points measured by the last Run, in
// execution order. A cancelled run leaves a partial profile.
func (s *Suite) Profile() ScalingProfile {
	out := make(ScalingProfile, len(s.profile))
	copy(out, s.profile)
	return out
}

type step struct {
	name string
	unit Unit
	run  func() Result
}

func (s *Suite) steps() []step {
	runner := NewRunner(s.clock, s.cfg.CheckInterval)
	steps := []step{
		{MetricInteger, UnitMops, func() Result { return runner.Integer(s.cfg.ComputeDuration) }},
		{MetricFloat, UnitMops, func() Result { return runner.Float(s.cfg.ComputeDuration) }},
		{MetricAVX2, UnitMops, func() Result { return ProbeVector(s.detect) }},
	}

	for _, pt := range ScalingLevels(s.cfg.ThreadLevels, s.cfg.MaxThreads) {
		steps = append(steps, step{pt.Metric(), UnitMops, func() Result {
			measured := pt.Measure(s.clock, s.cfg.ThreadsDuration, s.cfg.MaxThreads)
			s.profile = append(s.profile, measured)
			return measured.Result
		}})
	}

	return append(steps,
		step{MetricL1, UnitMBps, func() Result { return Bandwidth(s.clock, s.cfg.L1Size) }},
		step{MetricL2, UnitMBps, func() Result { return Bandwidth(s.clock, s.cfg.L2Size) }},
		step{MetricL3, UnitMBps, func() Result { return Bandwidth(s.clock, s.cfg.L3Size) }},
		step{MetricRAM, UnitMBps, func() Result { return Bandwidth(s.clock, s.cfg.RAMSize) }},
		step{MetricLatency, UnitNs, func() Result {
			return Latency(s.clock, s.cfg.LatencySize, s.cfg.LatencyChain, s.cfg.LatencySeed)
		}},
	)
}

// Run executes the suite and returns the result table with final_score
// appended. Cancellation is checked between benchmarks only; a running
// benchmark always completes. A cancelled run returns no table.
func (s *Suite) Run(ctx context.Context) (*Table, error) {
	table := NewTable()
	s.profile = nil
	s.logger.Info("Starting benchmark suite", "max_threads", s.cfg.MaxThreads, "latency_chain", s.cfg.LatencyChain)

	for _, st := range s.steps() {
		if err := ctx.Err(); err != nil {
			s.logger.Info("Benchmark suite cancelled", "next", st.name)
			return nil, err
		}
		s.logger.Debug("Running benchmark", "name", st.name)

		start := s.clock.Now()
		m := Metric{Name: st.name, Unit: st.unit, Value: st.run()}
		took := s.clock.Now().Sub(start)

		table.add(m)
		s.logger.Info("Benchmark finished", "name", m.Name, "value", m.Value, "unit", m.Unit, "took", took)
		if s.observer != nil {
			s.observer(m, took)
		}
	}

	score := table.Score()
	final := Metric{Name: MetricFinal, Unit: UnitScore, Value: Result(score)}
	table.add(final)
	if !Defined(score) {
		s.logger.Warn("Final score undefined: no positive sub-scores")
	}
	s.logger.Info("Benchmark suite complete", "final_score", final.Value)
	if s.observer != nil {
		s.observer(final, 0)
	}
	return table, nil
}
