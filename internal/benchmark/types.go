package benchmark

import (
	"log/slog"
	"math"
	"strconv"
)

// Result is one benchmark measurement. Measured values are strictly
// positive; zero and negative values are sentinels.
type Result float64

const (
	// NotRun marks a benchmark that was skipped.
	NotRun Result = 0
	// Unsupported marks a capability the CPU does not have.
	Unsupported Result = -1
	// Disabled marks a capability that was detected but whose workload
	// is intentionally not executed.
	Disabled Result = -2
)

// Valid reports whether r is a real measurement.
func (r Result) Valid() bool {
	return r > 0 && !math.IsInf(float64(r), 0)
}

func (r Result) String() string {
	switch {
	case math.IsNaN(float64(r)):
		return "n/a"
	case r == NotRun:
		return "not run"
	case r == Unsupported:
		return "unsupported"
	case r == Disabled:
		return "disabled"
	}
	return strconv.FormatFloat(float64(r), 'f', 2, 64)
}

// LogValue keeps undefined values out of numeric log fields, which JSON
// cannot represent.
func (r Result) LogValue() slog.Value {
	f := float64(r)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return slog.StringValue(r.String())
	}
	return slog.Float64Value(f)
}

// Unit is the implicit unit of a Result.
type Unit string

const (
	UnitMops  Unit = "Mops"
	UnitMBps  Unit = "MB/s"
	UnitNs    Unit = "ns"
	UnitScore Unit = "score"
)

// Metric names exposed in the result table.
const (
	MetricInteger    = "integer_mops"
	MetricFloat      = "float_mops"
	MetricAVX2       = "avx2_mops"
	MetricThreadsMax = "threads_max_mops"
	MetricL1         = "l1_bw_mbps"
	MetricL2         = "l2_bw_mbps"
	MetricL3         = "l3_bw_mbps"
	MetricRAM        = "ram_bw_mbps"
	MetricLatency    = "latency_ns"
	MetricFinal      = "final_score"
)

// ThreadsMetric returns the metric name for a scaling level.
func ThreadsMetric(workers int) string {
	return "threads_" + strconv.Itoa(workers) + "_mops"
}

// scoreInputs are the metrics that feed final_score.
var scoreInputs = []string{MetricInteger, MetricFloat, MetricAVX2, MetricRAM, MetricThreadsMax}

// Metric is a named entry in the result table.
type Metric struct {
	Name  string `json:"name"`
	Unit  Unit   `json:"unit"`
	Value Result `json:"value"`
}

// Table is the flat result of one suite run, in execution order.
type Table struct {
	metrics []Metric
	index   map[string]int
}

// NewTable builds a table from metrics in order. A repeated name
// replaces the earlier entry in place.
func NewTable(metrics ...Metric) *Table {
	t := &Table{index: make(map[string]int)}
	for _, m := range metrics {
		t.add(m)
	}
	return t
}

func (t *Table) add(m Metric) {
	if i, ok := t.index[m.Name]; ok {
		t.metrics[i] = m
		return
	}
	t.index[m.Name] = len(t.metrics)
	t.metrics = append(t.metrics, m)
}

// Metrics returns a copy of the table entries in execution order.
func (t *Table) Metrics() []Metric {
	out := make([]Metric, len(t.metrics))
	copy(out, t.metrics)
	return out
}

// Get looks up a metric by name.
func (t *Table) Get(name string) (Result, bool) {
	i, ok := t.index[name]
	if !ok {
		return NotRun, false
	}
	return t.metrics[i].Value, true
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.metrics)
}

// Score recomputes the aggregate score from the table. Missing inputs
// count as not run.
func (t *Table) Score() float64 {
	values := make([]Result, 0, len(scoreInputs))
	for _, name := range scoreInputs {
		v, _ := t.Get(name)
		values = append(values, v)
	}
	return GeoMean(values...)
}
