package benchmark

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeoMean_Constant(t *testing.T) {
	for _, x := range []Result{0.001, 1, 7.5, 12345.678} {
		assert.InDelta(t, float64(x), GeoMean(x, x, x, x, x), float64(x)*1e-12)
	}
}

func TestGeoMean_ExcludesSentinels(t *testing.T) {
	assert.InDelta(t, 8.0, GeoMean(4, 16, 0, -1), 1e-12)
	assert.Equal(t, GeoMean(4, 16), GeoMean(4, 16, 0, -1))
	assert.InDelta(t, 8.0, GeoMean(4, 16, Disabled, NotRun, Unsupported), 1e-12)
}

func TestGeoMean_Undefined(t *testing.T) {
	tests := []struct {
		name   string
		values []Result
	}{
		{"empty", nil},
		{"zero and negative", []Result{0, -3}},
		{"only sentinels", []Result{NotRun, Unsupported, Disabled}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GeoMean(tt.values...)
			assert.True(t, math.IsNaN(got), "expected NaN, got %v", got)
			assert.False(t, Defined(got))
		})
	}
}

func TestDefined(t *testing.T) {
	assert.True(t, Defined(1.5))
	assert.False(t, Defined(0))
	assert.False(t, Defined(-1))
	assert.False(t, Defined(math.Inf(1)))
}

func TestResult_String(t *testing.T) {
	assert.Equal(t, "not run", NotRun.String())
	assert.Equal(t, "unsupported", Unsupported.String())
	assert.Equal(t, "disabled", Disabled.String())
	assert.Equal(t, "n/a", Result(math.NaN()).String())
	assert.Equal(t, "12.35", Result(12.345).String())
}

func TestResult_LogValue(t *testing.T) {
	assert.Equal(t, "n/a", Result(math.NaN()).LogValue().String())
	assert.Equal(t, 2.5, Result(2.5).LogValue().Float64())
}
