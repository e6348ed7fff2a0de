package benchmark

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntegerWorkload(t *testing.T) {
	w := NewIntegerWorkload()
	w.Step()
	assert.Equal(t, uint64(1*lcgMultiplier+lcgIncrement), w.Value())
	w.Step()
	assert.Equal(t, uint64(1*lcgMultiplier+lcgIncrement)*lcgMultiplier+lcgIncrement, w.Value())
}

func TestFloatWorkload_StaysFinite(t *testing.T) {
	w := NewFloatWorkload()
	for i := 0; i < 100000; i++ {
		w.Step()
	}
	x := math.Float64frombits(w.Value())
	assert.False(t, math.IsNaN(x))
	assert.False(t, math.IsInf(x, 0))
	assert.Greater(t, x, 0.0)
}

func TestProbeVector(t *testing.T) {
	tests := []struct {
		name   string
		detect FeatureDetector
		want   Result
	}{
		{"unsupported", func() bool { return false }, Unsupported},
		{"nil detector", nil, Unsupported},
		{"supported but disabled", func() bool { return true }, Disabled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProbeVector(tt.detect)
			assert.Equal(t, tt.want, got)
			assert.Less(t, float64(got), 0.0)
		})
	}
}

func TestProbeVector_ExcludedFromScore(t *testing.T) {
	avx := ProbeVector(func() bool { return false })
	assert.Equal(t, Unsupported, avx)

	withProbe := GeoMean(100, 400, avx)
	without := GeoMean(100, 400)
	assert.InDelta(t, 200.0, withProbe, 1e-9)
	assert.Equal(t, without, withProbe)
}

func TestDetectAVX2_DoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() { _ = ProbeVector(DetectAVX2) })
}
