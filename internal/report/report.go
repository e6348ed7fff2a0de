// Package report renders a suite result table. It makes no
// measurement decisions: values are printed in table order.
package report

import (
	"strconv"
	"strings"

	"hwbench/internal/benchmark"
	"hwbench/internal/sysinfo"
)

// Report is everything a renderer needs.
type Report struct {
	System sysinfo.Info
	Table  *benchmark.Table
}

// Format names accepted by Write.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "md"
	FormatJSON     Format = "json"
	FormatTUI      Format = "tui"
)

var labels = map[string]string{
	benchmark.MetricInteger:    "Integer",
	benchmark.MetricFloat:      "Float",
	benchmark.MetricAVX2:       "AVX2",
	benchmark.MetricThreadsMax: "Threads max",
	benchmark.MetricL1:         "L1 approx",
	benchmark.MetricL2:         "L2 approx",
	benchmark.MetricL3:         "L3 approx",
	benchmark.MetricRAM:        "RAM",
	benchmark.MetricLatency:    "Latency",
	benchmark.MetricFinal:      "Final score",
}

// Label returns a human-readable name for a metric.
func Label(name string) string {
	if l, ok := labels[name]; ok {
		return l
	}
	if n, ok := strings.CutPrefix(name, "threads_"); ok {
		if n, ok := strings.CutSuffix(n, "_mops"); ok {
			if _, err := strconv.Atoi(n); err == nil {
				return "Threads " + n
			}
		}
	}
	return name
}

// isMemory reports whether a metric belongs in the memory section.
func isMemory(m benchmark.Metric) bool {
	return m.Unit == benchmark.UnitMBps || m.Unit == benchmark.UnitNs
}

// split separates the table into cpu and memory sections and the final
// score.
func split(t *benchmark.Table) (cpu, memory []benchmark.Metric, final benchmark.Result) {
	final = benchmark.NotRun
	for _, m := range t.Metrics() {
		switch {
		case m.Name == benchmark.MetricFinal:
			final = m.Value
		case isMemory(m):
			memory = append(memory, m)
		default:
			cpu = append(cpu, m)
		}
	}
	return cpu, memory, final
}

func formatValue(m benchmark.Metric) string {
	if !m.Value.Valid() {
		return m.Value.String()
	}
	return m.Value.String() + " " + string(m.Unit)
}
