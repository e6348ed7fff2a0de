package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"hwbench/internal/benchmark"
)

// WriteJSON writes the report as an indented JSON object with system,
// metrics and final_score keys. Metrics keep table order. An undefined
// or missing score is encoded as null.
func WriteJSON(w io.Writer, r Report) error {
	system, err := json.Marshal(r.System)
	if err != nil {
		return fmt.Errorf("failed to marshal system info: %w", err)
	}

	var b bytes.Buffer
	b.WriteString(`{"system":`)
	b.Write(system)
	b.WriteString(`,"metrics":`)
	b.Write(orderedMetrics(r.Table))
	b.WriteString(`,"final_score":`)
	b.WriteString(finalScore(r.Table))
	b.WriteString(`}`)

	var out bytes.Buffer
	if err := json.Indent(&out, b.Bytes(), "", "  "); err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}
	out.WriteByte('\n')
	_, err = w.Write(out.Bytes())
	return err
}

func orderedMetrics(t *benchmark.Table) []byte {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, m := range t.Metrics() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(m.Name))
		b.WriteByte(':')
		b.WriteString(jsonNumber(float64(m.Value)))
	}
	b.WriteByte('}')
	return b.Bytes()
}

func finalScore(t *benchmark.Table) string {
	v, ok := t.Get(benchmark.MetricFinal)
	if !ok {
		return "null"
	}
	return jsonNumber(float64(v))
}

func jsonNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
