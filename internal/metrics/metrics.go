package metrics

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hwbench/internal/benchmark"
)

// Metrics holds the Prometheus collectors for one hwbench process.
type Metrics struct {
	registry *prometheus.Registry

	Result          *prometheus.GaugeVec
	FinalScore      prometheus.Gauge
	ScalingMops     *prometheus.GaugeVec
	BenchmarkTime   *prometheus.HistogramVec
	StressMops      prometheus.Gauge
	StressCycles    prometheus.Counter
	TemperatureC    prometheus.Gauge
	SuiteRunsTotal  prometheus.Counter
	SuiteLastUnixTS prometheus.Gauge
}

// NewMetrics creates the collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.Result = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hwbench_result",
			Help: "Latest benchmark result. Sentinels: 0 not run, -1 unsupported, -2 disabled",
		},
		[]string{"metric", "unit"},
	)

	m.FinalScore = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "hwbench_final_score",
			Help: "Geometric mean of the scored benchmarks",
		},
	)

	m.ScalingMops = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hwbench_scaling_mops",
			Help: "Contended counter throughput per worker count, 0 when the level was not run",
		},
		[]string{"workers", "max"},
	)

	m.BenchmarkTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hwbench_benchmark_seconds",
			Help:    "Wall time spent in each benchmark",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		},
		[]string{"metric"},
	)

	m.StressMops = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "hwbench_stress_mops",
			Help: "Integer throughput of the latest stress cycle",
		},
	)

	m.StressCycles = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hwbench_stress_cycles_total",
			Help: "Completed stress cycles",
		},
	)

	m.TemperatureC = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "hwbench_temperature_celsius",
			Help: "Latest temperature sensor reading, -1 when unavailable",
		},
	)

	m.SuiteRunsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hwbench_suite_runs_total",
			Help: "Completed benchmark suite runs",
		},
	)

	m.SuiteLastUnixTS = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "hwbench_suite_last_run_timestamp_seconds",
			Help: "Unix time of the last completed suite run",
		},
	)

	m.registry.MustRegister(
		m.Result,
		m.FinalScore,
		m.ScalingMops,
		m.BenchmarkTime,
		m.StressMops,
		m.StressCycles,
		m.TemperatureC,
		m.SuiteRunsTotal,
		m.SuiteLastUnixTS,
	)

	return m
}

// Observe records one suite metric. It matches benchmark.Observer.
func (m *Metrics) Observe(metric benchmark.Metric, took time.Duration) {
	v := float64(metric.Value)
	if metric.Name == benchmark.MetricFinal {
		if benchmark.Defined(v) {
			m.FinalScore.Set(v)
		} else {
			m.FinalScore.Set(math.NaN())
		}
		return
	}
	m.Result.WithLabelValues(metric.Name, string(metric.Unit)).Set(v)
	if took > 0 {
		m.BenchmarkTime.WithLabelValues(metric.Name).Observe(took.Seconds())
	}
}

// RecordScaling exports a measured scaling profile.
func (m *Metrics) RecordScaling(profile benchmark.ScalingProfile) {
	for _, pt := range profile {
		m.ScalingMops.WithLabelValues(strconv.Itoa(pt.Workers), strconv.FormatBool(pt.Max)).Set(float64(pt.Result))
	}
}

// RecordSuite marks a finished suite run.
func (m *Metrics) RecordSuite(at time.Time) {
	m.SuiteRunsTotal.Inc()
	m.SuiteLastUnixTS.Set(float64(at.Unix()))
}

// RecordStress records one stress cycle.
func (m *Metrics) RecordStress(mops benchmark.Result, tempC float64) {
	m.StressCycles.Inc()
	m.StressMops.Set(float64(mops))
	m.TemperatureC.Set(tempC)
}

// WriteTextfile writes the current metrics in the text exposition format,
// suitable for the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

// Handler returns the Prometheus HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
